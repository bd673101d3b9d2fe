package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/devbush/vid2srt/internal/adapters/cli/tui"
	"github.com/devbush/vid2srt/internal/application"
	"github.com/devbush/vid2srt/internal/config"
	"github.com/devbush/vid2srt/internal/domain"
)

const stepDependencies = 0

// generateSteps lists the progress lines: dependency checks, then one line
// per application.Step
func generateSteps() []string {
	steps := []string{"Checking dependencies"}
	for s := application.StepExtract; s <= application.StepSave; s++ {
		steps = append(steps, s.String())
	}
	return steps
}

func runGenerate(cmd *cobra.Command, input string) error {
	app, err := GetApp()
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}

	return generate(cmd, app, buildRequest(cmd.Flags(), app.Config, app.Recognizer.Name(), input))
}

func generate(cmd *cobra.Command, app *App, req application.GenerateRequest) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if video, err := domain.ParseVideoInput(req.VideoPath); err == nil && !video.HasKnownExtension() {
		app.Logger.Warn("unrecognized video extension, trying anyway", zap.String("video", video.Path))
	}

	started := time.Now()
	progress := tui.NewProgressDisplay(os.Stderr, generateSteps(), tui.ProgressEnabled(os.Stderr, quietFlag))

	progress.StartStep(stepDependencies)
	if err := ensureDependencies(ctx, app, req.Model, progress); err != nil {
		progress.FailStep(stepDependencies, err.Error())
		return err
	}
	progress.CompleteStep(stepDependencies)

	stopSpinner := progress.StartSpinner()
	req.OnStep = func(s application.Step) {
		progress.StartStep(int(s) + 1)
	}

	result, err := app.SubtitleSvc.Generate(ctx, req)
	stopSpinner()
	if err != nil {
		progress.FailRunning(err.Error())
		return err
	}
	progress.CompleteAll()

	if result.OutputPath == "" {
		fmt.Fprint(cmd.OutOrStdout(), result.Content)
		return nil
	}

	source := app.Recognizer.Name()
	if result.FromCache {
		source = "cache"
	}
	progress.Complete([]tui.Output{
		{Label: "Subtitles", Value: result.OutputPath},
		{Label: "Cues", Value: strconv.Itoa(len(result.Cues))},
		{Label: "Transcript", Value: source},
		{Label: "Elapsed", Value: tui.FormatElapsed(time.Since(started))},
	})
	if !quietFlag && !tui.ProgressEnabled(os.Stderr, false) {
		fmt.Fprintf(cmd.ErrOrStderr(), "Subtitles saved to: %s\n", result.OutputPath)
	}

	return nil
}

// ensureDependencies checks external tools and fetches a missing whisper model
func ensureDependencies(ctx context.Context, app *App, model string, progress *tui.ProgressDisplay) error {
	if !app.Extractor.IsAvailable() {
		return fmt.Errorf("%w: %s", domain.ErrFFmpegNotFound, app.Extractor.Instructions())
	}

	if app.Recognizer.Name() != config.EngineWhisper {
		return nil
	}

	if !app.Models.IsAvailable() {
		return fmt.Errorf("%w: %s", domain.ErrWhisperNotFound, app.Models.Instructions())
	}

	if !app.Models.IsModelDownloaded(model) {
		app.Logger.Debug("downloading whisper model", zap.String("model", model))
		err := app.Models.DownloadModel(ctx, model, func(d, t int64) {
			progress.UpdateProgress(stepDependencies, d, t)
		})
		if err != nil {
			return fmt.Errorf("failed to download model %s: %w", model, err)
		}
	}

	return nil
}
