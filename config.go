package flowmap

import (
	"context"
	"fmt"

	"github.com/viant/afs"
	"gopkg.in/yaml.v3"

	"github.com/flowmap/flowmap/diagram"
	"github.com/flowmap/flowmap/inspector/meta"
)

// OutputMode selects which sections the analysis output contains.
type OutputMode string

const (
	OutputDiagram  OutputMode = "diagram"
	OutputPathList OutputMode = "path_list"
	OutputBoth     OutputMode = "both"
)

// DefaultCeiling bounds the number of execution paths the generator will
// produce before refusing.
const DefaultCeiling = 1024

// Config is the full pipeline configuration.
type Config struct {
	// Ceiling is the maximum number of execution paths to enumerate.
	Ceiling int `yaml:"ceiling"`

	TrueLabel     string `yaml:"trueLabel"`
	FalseLabel    string `yaml:"falseLabel"`
	SignaledLabel string `yaml:"signaledLabel"`
	TimeoutLabel  string `yaml:"timeoutLabel"`
	StartLabel    string `yaml:"startLabel"`
	EndLabel      string `yaml:"endLabel"`

	// SplitNames splits CamelCase display names for rendering. Defaults to
	// true; node identity is never affected.
	SplitNames bool `yaml:"splitNames"`
	// IncludePathList controls whether the path list accompanies the
	// diagram in "both" mode. An explicit path_list output mode always
	// renders the list.
	IncludePathList bool       `yaml:"includePathList"`
	Output          OutputMode `yaml:"output"`

	Markers meta.Markers `yaml:"markers"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Ceiling:         DefaultCeiling,
		TrueLabel:       "yes",
		FalseLabel:      "no",
		SignaledLabel:   "Signaled",
		TimeoutLabel:    "Timeout",
		StartLabel:      "Start",
		EndLabel:        "End",
		SplitNames:      true,
		IncludePathList: true,
		Output:          OutputBoth,
		Markers:         meta.DefaultMarkers(),
	}
}

// Validate checks the configuration before any traversal begins.
func (c *Config) Validate() error {
	if c.Ceiling < 0 {
		return &meta.ConfigError{Option: "ceiling", Detail: fmt.Sprintf("must not be negative, got %d", c.Ceiling)}
	}
	switch c.Output {
	case OutputDiagram, OutputPathList, OutputBoth:
	default:
		return &meta.ConfigError{Option: "output", Detail: fmt.Sprintf("unrecognized mode %q, expected diagram, path_list or both", c.Output)}
	}
	return nil
}

// LoadConfig reads a YAML configuration file, overlaying the defaults.
func LoadConfig(ctx context.Context, URL string) (*Config, error) {
	fs := afs.New()
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", URL, err)
	}
	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", URL, err)
	}
	return config, nil
}

// diagramConfig maps the pipeline configuration onto the renderer options.
func (c *Config) diagramConfig() *diagram.Config {
	return &diagram.Config{
		TrueLabel:     c.TrueLabel,
		FalseLabel:    c.FalseLabel,
		SignaledLabel: c.SignaledLabel,
		TimeoutLabel:  c.TimeoutLabel,
		StartLabel:    c.StartLabel,
		EndLabel:      c.EndLabel,
		SplitNames:    c.SplitNames,
	}
}
