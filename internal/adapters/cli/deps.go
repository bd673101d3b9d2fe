package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/devbush/vid2srt/internal/adapters/cli/tui"
	"github.com/devbush/vid2srt/internal/config"
)

// NewDepsCmd creates the deps subcommand
func NewDepsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deps",
		Short: "Check external tools (ffmpeg, whisper.cpp)",
		RunE:  runDepsStatus,
	}

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show dependency status",
		RunE:  runDepsStatus,
	}

	cmd.AddCommand(statusCmd)
	return cmd
}

type depStatus struct {
	Name   string
	Status string
	Detail string
}

func runDepsStatus(cmd *cobra.Command, args []string) error {
	app, err := GetApp()
	if err != nil {
		return err
	}

	statuses := []depStatus{
		binaryStatus("ffmpeg", app.Extractor.BinaryPath(), app.Extractor.Instructions()),
		binaryStatus("whisper.cpp", app.Models.BinaryPath(), app.Models.Instructions()),
		modelStatus(app),
		openAIStatus(app.Config),
	}

	rows := make([][]string, 0, len(statuses))
	for _, s := range statuses {
		rows = append(rows, []string{s.Name, s.Status, s.Detail})
	}

	fmt.Fprintln(cmd.OutOrStdout(), tui.RenderTable([]string{"Dependency", "Status", "Detail"}, rows))
	fmt.Fprintf(cmd.OutOrStdout(), "Engine: %s\n", app.Recognizer.Name())
	return nil
}

func binaryStatus(name, path, instructions string) depStatus {
	if path == "" {
		return depStatus{Name: name, Status: "missing", Detail: instructions}
	}
	return depStatus{Name: name, Status: "installed", Detail: path}
}

func modelStatus(app *App) depStatus {
	models := app.Models.AvailableModels()
	downloaded := 0
	for _, m := range models {
		if m.Downloaded {
			downloaded++
		}
	}

	status := "ok"
	if !app.Models.IsModelDownloaded(app.Config.Defaults.Model) {
		status = "default not downloaded"
	}
	return depStatus{
		Name:   "whisper models",
		Status: status,
		Detail: fmt.Sprintf("%d/%d downloaded, default %s", downloaded, len(models), app.Config.Defaults.Model),
	}
}

func openAIStatus(cfg *config.Config) depStatus {
	if cfg.OpenAI.APIKey == "" {
		return depStatus{Name: "openai", Status: "no api key", Detail: "set openai.api_key or OPENAI_API_KEY"}
	}
	return depStatus{Name: "openai", Status: "configured", Detail: cfg.OpenAI.BaseURL + " (" + cfg.OpenAI.Model + ")"}
}
