package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/corey/mdicon/internal/app"
)

var (
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:          "mdicon",
	Short:        "Emoji-to-icon replacement for Markdown",
	Long:         "Scans Markdown for emoji, suggests replacement icons from icon libraries, and rewrites documents with image references.",
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// newLogger builds the process logger. Verbose mode switches to the
// human-oriented development encoder with debug output.
func newLogger() (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return cfg.Build()
}

// openApp loads config and wires the application. Callers must Close it.
func openApp() (*app.App, error) {
	log, err := newLogger()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	cfg, err := app.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	a, err := app.New(cfg, log)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to JSON config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(suggestCmd)
	rootCmd.AddCommand(replaceCmd)
	rootCmd.AddCommand(emojiCmd)
	rootCmd.AddCommand(iconsCmd)
	rootCmd.AddCommand(sessionsCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(previewCmd)
}
