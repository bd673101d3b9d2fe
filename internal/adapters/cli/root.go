package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/devbush/vid2srt/internal/application"
	"github.com/devbush/vid2srt/internal/config"
)

var (
	// Global flags
	outputFlag   string
	languageFlag string
	engineFlag   string
	modelFlag    string
	wordsFlag    int
	secondsFlag  float64
	formatFlag   string
	noCacheFlag  bool
	forceFlag    bool
	quietFlag    bool
	verboseFlag  bool
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "vid2srt [video]",
		Short: "Generate SubRip subtitles from a video's speech",
		Long: `vid2srt extracts the audio track of a video, runs speech recognition
on it and writes the transcript as a SubRip (.srt) subtitle file.

The transcript is split into cues of a fixed number of words, each lasting
a fixed number of seconds, so timings are approximate.

Provide a video file to process it, or run without arguments for an
interactive menu.`,
		Args:          cobra.MaximumNArgs(1),
		RunE:          runRoot,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&outputFlag, "output", "o", "", "Output file path, - for stdout (default: next to the video)")
	flags.StringVarP(&languageFlag, "language", "l", "", "Spoken language as a BCP 47 code, e.g. en-US, es-ES, fr-FR, or auto")
	flags.StringVar(&engineFlag, "engine", "", "Recognition engine: whisper, openai")
	flags.StringVar(&modelFlag, "model", "", "Recognition model, e.g. small for whisper or whisper-1 for openai")
	flags.IntVarP(&wordsFlag, "words-per-segment", "w", 0, "Words per subtitle cue")
	flags.Float64VarP(&secondsFlag, "seconds-per-segment", "s", 0, "Duration of each subtitle cue in seconds")
	flags.StringVar(&formatFlag, "format", application.FormatSRT, "Output format: "+strings.Join(application.Formats, ", "))
	flags.BoolVar(&noCacheFlag, "no-cache", false, "Ignore cached transcripts")
	flags.BoolVar(&forceFlag, "force", false, "Overwrite an existing output file")
	flags.BoolVarP(&quietFlag, "quiet", "q", false, "Suppress progress and log output")
	flags.BoolVarP(&verboseFlag, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(NewCacheCmd())
	rootCmd.AddCommand(NewModelCmd())
	rootCmd.AddCommand(NewDepsCmd())
	rootCmd.AddCommand(NewConfigCmd())

	return rootCmd
}

func runRoot(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return runInteractiveMenu(cmd)
	}

	return runGenerate(cmd, args[0])
}

// buildRequest merges command line flags over configured defaults. Flags
// count only when given explicitly, so "-w 0" is rejected rather than ignored.
// The default model depends on the engine that will run.
func buildRequest(flags *pflag.FlagSet, cfg *config.Config, engine, videoPath string) application.GenerateRequest {
	req := application.GenerateRequest{
		VideoPath:         videoPath,
		OutputPath:        outputFlag,
		Format:            formatFlag,
		Language:          cfg.Defaults.Language,
		Model:             cfg.ModelFor(engine),
		WordsPerSegment:   cfg.Defaults.WordsPerSegment,
		SecondsPerSegment: cfg.Defaults.SecondsPerSegment,
		NoCache:           noCacheFlag,
		Force:             forceFlag,
	}

	if flags.Changed("language") {
		req.Language = languageFlag
	}
	if flags.Changed("model") {
		req.Model = modelFlag
	}
	if flags.Changed("words-per-segment") {
		req.WordsPerSegment = wordsFlag
	}
	if flags.Changed("seconds-per-segment") {
		req.SecondsPerSegment = secondsFlag
	}

	return req
}

// Execute runs the CLI
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := NewRootCmd().ExecuteContext(ctx)
	stop()

	if globalApp != nil {
		_ = globalApp.Logger.Sync()
	}

	if err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, "Cancelled")
		} else {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
