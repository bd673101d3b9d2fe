package cli

import (
	"reflect"
	"testing"

	"github.com/devbush/vid2srt/internal/config"
)

func TestBuildRequest(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Defaults.Language = "es-ES"
	cfg.Defaults.WordsPerSegment = 20

	tests := []struct {
		name        string
		engine      string
		args        []string
		wantLang    string
		wantModel   string
		wantWords   int
		wantSeconds float64
		wantOutput  string
		wantForce   bool
	}{
		{
			name:        "config defaults",
			engine:      config.EngineWhisper,
			args:        nil,
			wantLang:    "es-ES",
			wantModel:   "small",
			wantWords:   20,
			wantSeconds: 10,
		},
		{
			name:        "flags override",
			engine:      config.EngineWhisper,
			args:        []string{"-l", "fr-FR", "--model", "tiny", "-w", "5", "-s", "2.5", "-o", "out.srt", "--force"},
			wantLang:    "fr-FR",
			wantModel:   "tiny",
			wantWords:   5,
			wantSeconds: 2.5,
			wantOutput:  "out.srt",
			wantForce:   true,
		},
		{
			name:        "explicit zero is kept",
			engine:      config.EngineWhisper,
			args:        []string{"--words-per-segment", "0"},
			wantLang:    "es-ES",
			wantModel:   "small",
			wantWords:   0,
			wantSeconds: 10,
		},
		{
			name:        "openai engine uses openai model",
			engine:      config.EngineOpenAI,
			args:        nil,
			wantLang:    "es-ES",
			wantModel:   "whisper-1",
			wantWords:   20,
			wantSeconds: 10,
		},
		{
			name:        "openai engine with explicit model",
			engine:      config.EngineOpenAI,
			args:        []string{"--model", "gpt-4o-transcribe"},
			wantLang:    "es-ES",
			wantModel:   "gpt-4o-transcribe",
			wantWords:   20,
			wantSeconds: 10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := NewRootCmd()
			if err := cmd.ParseFlags(tt.args); err != nil {
				t.Fatalf("ParseFlags() error = %v", err)
			}

			req := buildRequest(cmd.Flags(), cfg, tt.engine, "/videos/talk.mp4")

			if req.VideoPath != "/videos/talk.mp4" {
				t.Errorf("VideoPath = %s", req.VideoPath)
			}
			if req.Language != tt.wantLang {
				t.Errorf("Language = %s, want %s", req.Language, tt.wantLang)
			}
			if req.Model != tt.wantModel {
				t.Errorf("Model = %s, want %s", req.Model, tt.wantModel)
			}
			if req.WordsPerSegment != tt.wantWords {
				t.Errorf("WordsPerSegment = %d, want %d", req.WordsPerSegment, tt.wantWords)
			}
			if req.SecondsPerSegment != tt.wantSeconds {
				t.Errorf("SecondsPerSegment = %v, want %v", req.SecondsPerSegment, tt.wantSeconds)
			}
			if req.OutputPath != tt.wantOutput {
				t.Errorf("OutputPath = %q, want %q", req.OutputPath, tt.wantOutput)
			}
			if req.Force != tt.wantForce {
				t.Errorf("Force = %v, want %v", req.Force, tt.wantForce)
			}
			if req.Format != "srt" {
				t.Errorf("Format = %s, want srt", req.Format)
			}
		})
	}
}

func TestGenerateSteps(t *testing.T) {
	want := []string{
		"Checking dependencies",
		"Extracting audio",
		"Recognizing speech",
		"Generating subtitles",
		"Saving subtitles",
	}
	if got := generateSteps(); !reflect.DeepEqual(got, want) {
		t.Errorf("generateSteps() = %v, want %v", got, want)
	}
}

func TestRootCmd_Subcommands(t *testing.T) {
	cmd := NewRootCmd()
	for _, name := range []string{"cache", "model", "deps", "config"} {
		if sub, _, err := cmd.Find([]string{name}); err != nil || sub.Name() != name {
			t.Errorf("subcommand %s not registered", name)
		}
	}
}
