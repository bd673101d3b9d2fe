package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/devbush/vid2srt/internal/adapters/cli/tui"
	"github.com/devbush/vid2srt/internal/domain"
)

func runInteractiveMenu(cmd *cobra.Command) error {
	options := []tui.MenuOption{
		{Label: "Generate subtitles for a video", Value: "generate"},
		{Label: "Manage cache", Value: "cache"},
		{Label: "Manage whisper models", Value: "models"},
		{Label: "Quit", Value: "quit"},
	}

	selected, err := tui.RunMenu("What would you like to do?", options)
	if err != nil {
		return err
	}

	switch selected {
	case "generate":
		return runGenerateInteractive(cmd)
	case "cache":
		return runCacheInteractive(cmd)
	case "models":
		return runModelsInteractive(cmd)
	}

	return nil
}

func runGenerateInteractive(cmd *cobra.Command) error {
	app, err := GetApp()
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}

	videoInput, ok, err := tui.RunPrompt("Path to the video file", "", validateVideoInput)
	if err != nil || !ok {
		return err
	}
	video, err := domain.ParseVideoInput(videoInput)
	if err != nil {
		return err
	}

	output, ok, err := tui.RunPrompt("Output subtitle file", video.DefaultSubtitlePath(), nil)
	if err != nil || !ok {
		return err
	}

	language, ok, err := tui.RunPrompt("Language code (e.g. en-US, es-ES, fr-FR)", app.Config.Defaults.Language, validateLanguage)
	if err != nil || !ok {
		return err
	}

	opts, err := tui.RunGenerateOptions(tui.GenerateOptions{Force: forceFlag, NoCache: noCacheFlag})
	if err != nil || opts == nil {
		return err
	}

	req := buildRequest(cmd.Flags(), app.Config, app.Recognizer.Name(), video.Path)
	req.OutputPath = output
	req.Language = language
	req.Force = opts.Force
	req.NoCache = opts.NoCache

	return generate(cmd, app, req)
}

func validateVideoInput(input string) error {
	video, err := domain.ParseVideoInput(input)
	if err != nil {
		return errors.New("enter the path to a video file")
	}
	info, err := os.Stat(video.Path)
	if err != nil {
		return fmt.Errorf("the video file %s does not exist", video.Path)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", video.Path)
	}
	if !video.HasKnownExtension() {
		return fmt.Errorf("%s is not a recognized video file", video.Path)
	}
	return nil
}

func validateLanguage(code string) error {
	if _, err := domain.NormalizeLanguage(code); err != nil {
		return fmt.Errorf("%q is not a valid language code", code)
	}
	return nil
}

func runCacheInteractive(cmd *cobra.Command) error {
	if err := runCacheStatus(cmd, nil); err != nil {
		return err
	}

	selected, err := tui.RunMenu("Clean up the cache?", []tui.MenuOption{
		{Label: "Remove expired transcripts", Value: "expired"},
		{Label: "Remove all transcripts", Value: "all"},
		{Label: "Back", Value: ""},
	})
	if err != nil || selected == "" {
		return err
	}

	clearAllFlag = selected == "all"
	return runCacheClear(cmd, nil)
}

func runModelsInteractive(cmd *cobra.Command) error {
	if err := runModelList(cmd, nil); err != nil {
		return err
	}

	app, err := GetApp()
	if err != nil {
		return err
	}

	var options []tui.MenuOption
	for _, m := range app.Models.AvailableModels() {
		if m.Downloaded {
			options = append(options, tui.MenuOption{
				Label: fmt.Sprintf("Remove %s (%s)", m.Name, tui.FormatSize(m.Size)),
				Value: "remove:" + m.Name,
			})
		} else {
			options = append(options, tui.MenuOption{
				Label: fmt.Sprintf("Download %s (%s)", m.Name, tui.FormatSize(m.Size)),
				Value: "download:" + m.Name,
			})
		}
	}
	options = append(options, tui.MenuOption{Label: "Back", Value: ""})

	selected, err := tui.RunMenu("Manage models", options)
	if err != nil || selected == "" {
		return err
	}

	action, name, _ := strings.Cut(selected, ":")
	if action == "remove" {
		return runModelRemove(cmd, []string{name})
	}
	return runModelDownload(cmd, []string{name})
}
