package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/corey/mdicon/internal/app"
)

var emojiCmd = &cobra.Command{
	Use:   "emoji",
	Short: "Manage the emoji knowledge base",
}

var emojiAddCmd = &cobra.Command{
	Use:   "add <emoji> <common-name> <keyword,keyword,...>",
	Short: "Add or replace a knowledge base entry",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		keywords := splitList(args[2])
		if err := a.Store.AddOrReplaceEmoji(args[0], args[1], keywords, nil); err != nil {
			return err
		}
		fmt.Printf("added %s (%s) with %d keyword(s)\n", args[0], args[1], len(keywords))
		return nil
	},
}

var emojiListCmd = &cobra.Command{
	Use:   "list",
	Short: "List knowledge base entries by usage",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		entries, err := a.Store.AllEmojis()
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("knowledge base is empty; run 'mdicon emoji seed'")
			return nil
		}
		for _, e := range entries {
			fmt.Printf("%s  %-20s used=%-4d %s\n",
				e.Emoji, e.CommonName, e.UsageCount, strings.Join(e.Keywords, ", "))
		}
		return nil
	},
}

var emojiKeywordsCmd = &cobra.Command{
	Use:   "keywords <emoji> <keyword,keyword,...>",
	Short: "Replace an entry's keywords",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.Store.UpdateKeywords(args[0], splitList(args[1])); err != nil {
			return err
		}
		fmt.Printf("updated keywords for %s\n", args[0])
		return nil
	},
}

var emojiRmCmd = &cobra.Command{
	Use:   "rm <emoji>",
	Short: "Delete a knowledge base entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.Store.DeleteEmoji(args[0]); err != nil {
			return err
		}
		fmt.Printf("deleted %s\n", args[0])
		return nil
	},
}

var emojiSeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the built-in emoji knowledge seed",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		added, err := app.Seed(a.Store)
		if err != nil {
			return err
		}
		fmt.Printf("seeded %d new entr%s\n", added, pluralY(added))
		return nil
	},
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func pluralY(n int) string {
	if n == 1 {
		return "y"
	}
	return "ies"
}

func init() {
	emojiCmd.AddCommand(emojiAddCmd)
	emojiCmd.AddCommand(emojiListCmd)
	emojiCmd.AddCommand(emojiKeywordsCmd)
	emojiCmd.AddCommand(emojiRmCmd)
	emojiCmd.AddCommand(emojiSeedCmd)
}
