package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/corey/mdicon/internal/app"
	"github.com/corey/mdicon/internal/domain/detect"
)

var scanCmd = &cobra.Command{
	Use:   "scan <file.md>",
	Short: "List emoji occurrences in a Markdown file",
	Args:  cobra.ExactArgs(1),
	RunE:  runScan,
}

func runScan(cmd *cobra.Command, args []string) error {
	text, err := app.LoadDocument(args[0])
	if err != nil {
		return err
	}

	occs := detect.Detect(text)
	if len(occs) == 0 {
		fmt.Println("no emoji found")
		return nil
	}

	for _, occ := range occs {
		fmt.Printf("%4d:%-3d %s  %s\n", occ.Line, occ.Offset, occ.Emoji, detect.ContextSummary(occ))
	}
	fmt.Printf("\n%d occurrence(s), %d distinct emoji\n", len(occs), len(detect.UniqueEmojis(occs)))
	return nil
}
