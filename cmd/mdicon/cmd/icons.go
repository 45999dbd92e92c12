package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	iconsLimit int
	iconsSize  int
)

var iconsCmd = &cobra.Command{
	Use:   "icons",
	Short: "Search and fetch icons from the configured sources",
}

var iconsSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search all icon sources",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		results := a.Icons.Search(cmd.Context(), args[0], iconsLimit)
		if len(results) == 0 {
			fmt.Println("no icons found")
			return nil
		}
		for _, icon := range results {
			fmt.Printf("%-14s %-32s %s\n", icon.Library, icon.Name, icon.License)
		}
		return nil
	},
}

var iconsFetchCmd = &cobra.Command{
	Use:   "fetch <library> <icon-name>",
	Short: "Download an icon to the local cache",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		path, err := a.Icons.Fetch(cmd.Context(), args[0], args[1], iconsSize)
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	},
}

func init() {
	iconsSearchCmd.Flags().IntVar(&iconsLimit, "limit", 20, "max results per source")
	iconsFetchCmd.Flags().IntVar(&iconsSize, "size", 0, "pixel size hint (0 = source default)")
	iconsCmd.AddCommand(iconsSearchCmd)
	iconsCmd.AddCommand(iconsFetchCmd)
}
