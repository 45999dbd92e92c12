package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

var sessionsClearDays int

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Inspect and prune document sessions",
}

var sessionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List sessions, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		sessions, err := a.Store.Sessions()
		if err != nil {
			return err
		}
		if len(sessions) == 0 {
			fmt.Println("no sessions")
			return nil
		}
		for _, s := range sessions {
			state := "open"
			if s.EndedAt != nil {
				state = "ended"
			}
			usages, err := a.Store.SessionUsages(s.ID, "")
			if err != nil {
				return err
			}
			fmt.Printf("%s  %-6s %s  %d replacement(s)\n",
				s.StartedAt.Format("2006-01-02 15:04"), state, s.DocumentPath, len(usages))
		}
		return nil
	},
}

var sessionsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete old sessions and their usage logs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		removed, err := a.Store.ClearSessionsOlderThan(sessionsClearDays)
		if err != nil {
			return err
		}
		fmt.Printf("removed %d session(s)\n", removed)
		return nil
	},
}

var sessionsEndCmd = &cobra.Command{
	Use:   "end <file.md>",
	Short: "End the open session for a document",
	Long:  "Closes the document's open session. Replace runs leave sessions open so duplicate detection spans invocations; end one when you are done editing the document.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		docPath, err := filepath.Abs(args[0])
		if err != nil {
			return err
		}
		_, ok, err := a.Sessions.Resume(docPath)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Printf("no open session for %s\n", docPath)
			return nil
		}
		if err := a.Sessions.EndSession(); err != nil {
			return err
		}
		fmt.Printf("ended session for %s\n", docPath)
		return nil
	},
}

func init() {
	sessionsClearCmd.Flags().IntVar(&sessionsClearDays, "days", 30, "delete sessions older than this many days (0 = all)")
	sessionsCmd.AddCommand(sessionsListCmd)
	sessionsCmd.AddCommand(sessionsClearCmd)
	sessionsCmd.AddCommand(sessionsEndCmd)
}
