package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/corey/mdicon/internal/app"
	"github.com/corey/mdicon/internal/domain/detect"
	"github.com/corey/mdicon/internal/domain/replace"
)

var (
	replaceLibrary  string
	replaceIconPath string
	replaceAlt      string
	replaceNoBackup bool
	replaceForce    bool
)

var replaceCmd = &cobra.Command{
	Use:   "replace <file.md> <emoji> <icon-name>",
	Short: "Replace all occurrences of an emoji with an icon image reference",
	Long: `Rewrites the document, substituting every occurrence of the emoji with
![alt](icon-path). Records the replacement in a document session, learns the
icon choice, and warns when the icon was already used in a dissimilar context.`,
	Args: cobra.ExactArgs(3),
	RunE: runReplace,
}

func runReplace(cmd *cobra.Command, args []string) error {
	file, emoji, iconName := args[0], args[1], args[2]

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	text, err := app.LoadDocument(file)
	if err != nil {
		return err
	}

	occs := detect.GroupByEmoji(detect.Detect(text))[emoji]
	if len(occs) == 0 {
		fmt.Printf("emoji %s not found in %s\n", emoji, file)
		return nil
	}

	iconPath := replaceIconPath
	if iconPath == "" {
		// Fetch from the configured library so the reference points at a
		// real local file.
		iconPath, err = a.Icons.Fetch(cmd.Context(), replaceLibrary, iconName, 0)
		if err != nil {
			return fmt.Errorf("fetch icon: %w", err)
		}
	}
	alt := replaceAlt
	if alt == "" {
		alt = iconName
	}

	// Resume the document's open session so replacements from earlier runs
	// still count toward duplicate detection; only start fresh when none is
	// open. The session stays open after this process exits.
	docPath, err := filepath.Abs(file)
	if err != nil {
		return err
	}
	if _, err := a.Sessions.ResumeOrStart(docPath); err != nil {
		return err
	}

	// Duplicate check runs against the first occurrence before anything is
	// committed; later occurrences of the same emoji share its context fate.
	warning, err := a.Sessions.CheckForDuplicates(iconName, occs[0])
	if err != nil {
		return err
	}
	if warning != nil {
		severity := "warning"
		if warning.Critical {
			severity = "CRITICAL"
		}
		fmt.Printf("%s: icon %q already used at line %d (%q), similarity %d%%\n",
			severity, warning.IconName, warning.ExistingLine, warning.ExistingContext, warning.Similarity)
		if warning.Critical && !replaceForce {
			return fmt.Errorf("refusing critical duplicate reuse (use --force to override)")
		}
	}

	ref := replace.ImageRef(alt, iconPath)
	modified, count := replace.All(text, emoji, ref)
	if err := app.SaveDocument(file, modified, !replaceNoBackup); err != nil {
		return err
	}

	for _, occ := range occs {
		if err := a.Sessions.RecordReplacement(emoji, iconName, occ); err != nil {
			return err
		}
	}
	// Learn the choice only when the icon actually came from a library
	// fetch; a local --icon-path file says nothing about library preference.
	if replaceIconPath == "" && replaceLibrary != "" {
		if err := a.Store.RecordIconSelection(emoji, replaceLibrary, iconName); err != nil {
			return err
		}
	}
	if err := a.Store.IncrementUsage(emoji); err != nil {
		return err
	}

	fmt.Printf("replaced %d occurrence(s) of %s with %s\n", count, emoji, ref)
	return nil
}

func init() {
	replaceCmd.Flags().StringVar(&replaceLibrary, "library", "iconify", "icon library the icon comes from")
	replaceCmd.Flags().StringVar(&replaceIconPath, "icon-path", "", "use an existing local icon file instead of fetching")
	replaceCmd.Flags().StringVar(&replaceAlt, "alt", "", "alt text for the image reference (defaults to icon name)")
	replaceCmd.Flags().BoolVar(&replaceNoBackup, "no-backup", false, "skip writing a .bak backup")
	replaceCmd.Flags().BoolVar(&replaceForce, "force", false, "proceed despite a critical duplicate warning")
}
