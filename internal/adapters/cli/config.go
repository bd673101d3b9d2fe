package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/devbush/vid2srt/internal/adapters/cli/tui"
	"github.com/devbush/vid2srt/internal/config"
)

// NewConfigCmd creates the config subcommand
func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change settings",
		RunE:  runConfigShow,
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the current settings",
		RunE:  runConfigShow,
	}

	setCmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change a setting, e.g. config set defaults.language fr-FR",
		Args:  cobra.ExactArgs(2),
		RunE:  runConfigSet,
	}

	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print the config file location",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), config.ConfigPath())
			return nil
		},
	}

	cmd.AddCommand(showCmd, setCmd, pathCmd)
	return cmd
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadDefault()
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), configTable(cfg))
	return nil
}

func configTable(cfg *config.Config) string {
	entries := cfg.Entries()
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		value := e.Value
		if e.Key == "openai.api_key" {
			value = maskSecret(value)
		}
		rows = append(rows, []string{e.Key, value})
	}
	return tui.RenderTable([]string{"Key", "Value"}, rows)
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFile(config.ConfigPath())
	if err != nil {
		return err
	}

	if err := cfg.Set(args[0], args[1]); err != nil {
		return err
	}

	if err := cfg.SaveDefault(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s updated\n", strings.ToLower(args[0]))
	return nil
}

// maskSecret keeps the last four characters of longer secrets
func maskSecret(s string) string {
	if s == "" {
		return ""
	}
	if len(s) <= 8 {
		return strings.Repeat("*", len(s))
	}
	return strings.Repeat("*", 8) + s[len(s)-4:]
}
