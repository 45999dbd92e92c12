package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/corey/mdicon/internal/app"
	"github.com/corey/mdicon/internal/domain/detect"
)

var (
	suggestLibrary string
	suggestLimit   int
)

var suggestCmd = &cobra.Command{
	Use:   "suggest <file.md>",
	Short: "Suggest replacement icons for each emoji in a file",
	Args:  cobra.ExactArgs(1),
	RunE:  runSuggest,
}

func runSuggest(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	text, err := app.LoadDocument(args[0])
	if err != nil {
		return err
	}

	occs := detect.Detect(text)
	if len(occs) == 0 {
		fmt.Println("no emoji found")
		return nil
	}

	// One suggestion list per distinct emoji, from its first occurrence.
	for _, grouped := range groupFirstSeen(occs) {
		first := grouped[0]
		suggestions, err := a.Matcher.FindSuggestions(first, suggestLibrary, suggestLimit)
		if err != nil {
			return err
		}

		fmt.Printf("%s  (%d occurrence(s))\n", first.Emoji, len(grouped))
		if len(suggestions) == 0 {
			fmt.Println("    no suggestions; try 'mdicon emoji add' or 'mdicon emoji seed'")
			continue
		}
		for _, s := range suggestions {
			fmt.Printf("    %-24s score=%-4d %s\n", s.IconName, s.Score, a.Matcher.Explain(s))
		}
	}
	return nil
}

// groupFirstSeen groups occurrences by emoji, ordered by first appearance.
func groupFirstSeen(occs []detect.Occurrence) [][]detect.Occurrence {
	grouped := detect.GroupByEmoji(occs)
	var out [][]detect.Occurrence
	for _, emoji := range detect.UniqueEmojis(occs) {
		out = append(out, grouped[emoji])
	}
	return out
}

func init() {
	suggestCmd.Flags().StringVar(&suggestLibrary, "library", "", "icon library for learned preferences (e.g. iconify)")
	suggestCmd.Flags().IntVar(&suggestLimit, "limit", 10, "max suggestions per emoji")
}
