package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/corey/mdicon/internal/app"
)

var previewOut string

var previewCmd = &cobra.Command{
	Use:   "preview <file.md>",
	Short: "Render a Markdown document to HTML",
	Long:  "Renders the (possibly icon-rewritten) document to HTML so replaced image references can be checked in a browser.",
	Args:  cobra.ExactArgs(1),
	RunE:  runPreview,
}

func runPreview(cmd *cobra.Command, args []string) error {
	text, err := app.LoadDocument(args[0])
	if err != nil {
		return err
	}

	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	var buf bytes.Buffer
	if err := md.Convert([]byte(text), &buf); err != nil {
		return fmt.Errorf("render markdown: %w", err)
	}

	if previewOut == "" {
		fmt.Print(buf.String())
		return nil
	}
	if err := os.WriteFile(previewOut, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write preview: %w", err)
	}
	fmt.Printf("wrote %s\n", previewOut)
	return nil
}

func init() {
	previewCmd.Flags().StringVarP(&previewOut, "out", "o", "", "write HTML to a file instead of stdout")
}
