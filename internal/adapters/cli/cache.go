package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/devbush/vid2srt/internal/adapters/cli/tui"
	"github.com/devbush/vid2srt/internal/config"
)

var clearAllFlag bool

// NewCacheCmd creates the cache subcommand
func NewCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Show cached transcripts",
		RunE:  runCacheStatus,
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove expired cache entries",
		RunE:  runCacheClear,
	}
	clearCmd.Flags().BoolVar(&clearAllFlag, "all", false, "Remove all cache entries")

	cmd.AddCommand(clearCmd)

	return cmd
}

func runCacheStatus(cmd *cobra.Command, args []string) error {
	app, err := GetApp()
	if err != nil {
		return err
	}

	stats, err := app.CacheSvc.Stats(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, tui.RenderTable([]string{"Setting", "Value"}, [][]string{
		{"Transcripts", strconv.Itoa(stats.ItemCount)},
		{"Size", tui.FormatSize(stats.TotalSize)},
		{"TTL", app.Config.Defaults.CacheTTL},
		{"Location", config.CacheDir()},
	}))

	return nil
}

func runCacheClear(cmd *cobra.Command, args []string) error {
	app, err := GetApp()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	if clearAllFlag {
		if err := app.CacheSvc.Clear(ctx); err != nil {
			return err
		}
		fmt.Fprintln(out, "All cache entries cleared")
		return nil
	}

	cleaned, err := app.CacheSvc.CleanExpired(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Removed %d expired entries\n", cleaned)
	return nil
}
