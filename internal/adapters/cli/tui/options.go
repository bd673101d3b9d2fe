package tui

// GenerateOptions are the toggles offered before generating subtitles
type GenerateOptions struct {
	Force   bool
	NoCache bool
}

const (
	optionForce   = "force"
	optionNoCache = "no-cache"
)

// RunGenerateOptions asks which toggles to apply, starting from the given
// values. It returns nil when cancelled.
func RunGenerateOptions(current GenerateOptions) (*GenerateOptions, error) {
	options := []CheckboxOption{
		{Label: "Overwrite an existing subtitle file", Value: optionForce, Checked: current.Force},
		{Label: "Ignore cached transcripts", Value: optionNoCache, Checked: current.NoCache},
	}

	selected, err := RunCheckbox("Options", options, 0)
	if err != nil {
		return nil, err
	}
	if selected == nil {
		return nil, nil
	}

	opts := optionsFromSelection(selected)
	return &opts, nil
}

func optionsFromSelection(selected []string) GenerateOptions {
	var opts GenerateOptions
	for _, v := range selected {
		switch v {
		case optionForce:
			opts.Force = true
		case optionNoCache:
			opts.NoCache = true
		}
	}
	return opts
}
