package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/devbush/vid2srt/internal/adapters/cli/tui"
	"github.com/devbush/vid2srt/internal/ports"
)

// NewModelCmd creates the model subcommand
func NewModelCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "model",
		Short: "Manage whisper.cpp models",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List available models",
		RunE:  runModelList,
	}

	downloadCmd := &cobra.Command{
		Use:   "download <model>",
		Short: "Download a model",
		Args:  cobra.ExactArgs(1),
		RunE:  runModelDownload,
	}

	removeCmd := &cobra.Command{
		Use:   "remove <model>",
		Short: "Remove a downloaded model",
		Args:  cobra.ExactArgs(1),
		RunE:  runModelRemove,
	}

	cmd.AddCommand(listCmd, downloadCmd, removeCmd)
	return cmd
}

func runModelList(cmd *cobra.Command, args []string) error {
	app, err := GetApp()
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), modelTable(app.Models.AvailableModels(), app.Config.Defaults.Model))
	return nil
}

func modelTable(models []ports.Model, defaultModel string) string {
	rows := make([][]string, 0, len(models))
	for _, m := range models {
		status := "not downloaded"
		if m.Downloaded {
			status = "downloaded"
		}
		if m.Name == defaultModel {
			status += " (default)"
		}
		rows = append(rows, []string{m.Name, tui.FormatSize(m.Size), m.Description, status})
	}
	return tui.RenderTable([]string{"Model", "Size", "Description", "Status"}, rows, 1)
}

func runModelDownload(cmd *cobra.Command, args []string) error {
	app, err := GetApp()
	if err != nil {
		return err
	}

	model := args[0]
	out := cmd.OutOrStdout()

	if app.Models.IsModelDownloaded(model) {
		fmt.Fprintf(out, "Model '%s' is already downloaded\n", model)
		return nil
	}

	progress := tui.NewProgressDisplay(cmd.ErrOrStderr(), []string{"Downloading " + model}, tui.ProgressEnabled(cmd.ErrOrStderr(), quietFlag))
	progress.StartStep(0)

	err = app.Models.DownloadModel(cmd.Context(), model, func(downloaded, total int64) {
		progress.UpdateProgress(0, downloaded, total)
	})
	if err != nil {
		progress.FailStep(0, err.Error())
		return err
	}
	progress.CompleteStep(0)

	fmt.Fprintf(out, "Model '%s' downloaded\n", model)
	return nil
}

func runModelRemove(cmd *cobra.Command, args []string) error {
	app, err := GetApp()
	if err != nil {
		return err
	}

	model := args[0]
	out := cmd.OutOrStdout()

	if !app.Models.IsModelDownloaded(model) {
		fmt.Fprintf(out, "Model '%s' is not downloaded\n", model)
		return nil
	}

	if err := app.Models.DeleteModel(model); err != nil {
		return err
	}

	fmt.Fprintf(out, "Model '%s' removed\n", model)
	return nil
}
