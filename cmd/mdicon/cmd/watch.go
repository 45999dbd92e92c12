package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/corey/mdicon/internal/app"
	"github.com/corey/mdicon/internal/domain/detect"
)

var watchCmd = &cobra.Command{
	Use:   "watch <file.md>",
	Short: "Watch a document and report emoji occurrences on every save",
	Long: `Watches a Markdown file and re-scans it after each save, printing the
current emoji occurrences. While watching, old document sessions are pruned
daily per the configured retention. Stop with Ctrl-C.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	rescan := func(path string) {
		text, err := app.LoadDocument(path)
		if err != nil {
			a.Log.Warn("rescan failed", zap.String("path", path), zap.Error(err))
			return
		}
		occs := detect.Detect(text)
		fmt.Printf("%s: %d emoji occurrence(s), %d distinct\n",
			path, len(occs), len(detect.UniqueEmojis(occs)))
	}

	watcher, err := app.NewDocumentWatcher(a.Log)
	if err != nil {
		return err
	}
	defer watcher.Stop()
	if err := watcher.Watch(args[0], rescan); err != nil {
		return err
	}

	// Session retention runs on a schedule while the watcher is alive.
	retain := a.Config.SessionRetainDays
	c := cron.New()
	if _, err := c.AddFunc("@daily", func() {
		removed, err := a.Store.ClearSessionsOlderThan(retain)
		if err != nil {
			a.Log.Warn("session cleanup failed", zap.Error(err))
			return
		}
		if removed > 0 {
			a.Log.Info("pruned old sessions", zap.Int("removed", removed))
		}
	}); err != nil {
		return err
	}
	c.Start()
	defer c.Stop()

	rescan(args[0])
	fmt.Println("watching (Ctrl-C to stop)")

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
	return nil
}
