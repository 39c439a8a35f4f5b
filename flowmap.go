// Package flowmap converts Temporal-style Python workflow definitions into
// Mermaid flowcharts enumerating every possible execution path. The pipeline
// is a pure function of (source, configuration): extraction, path
// permutation and rendering share no state between invocations.
package flowmap

import (
	"context"
	"log/slog"
	"strings"

	"github.com/flowmap/flowmap/diagram"
	"github.com/flowmap/flowmap/inspector/meta"
	"github.com/flowmap/flowmap/inspector/python"
	"github.com/flowmap/flowmap/pathgen"
)

// Report is the result of one analysis run.
type Report struct {
	Workflow *meta.Workflow
	Paths    []*pathgen.Path
	Output   string
}

// Analyze runs the full pipeline over Python workflow source. Structural,
// explosion and configuration errors propagate unchanged.
func Analyze(src []byte, config *Config) (*Report, error) {
	return analyze(src, config, slog.Default())
}

// AnalyzeWith is Analyze with an explicit logger.
func AnalyzeWith(src []byte, config *Config, logger *slog.Logger) (*Report, error) {
	return analyze(src, config, logger)
}

// AnalyzeFile downloads a workflow source file and analyzes it.
func AnalyzeFile(ctx context.Context, URL string, config *Config) (*Report, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	inspector := python.NewInspector(config.Markers, nil)
	wf, err := inspector.InspectFile(ctx, URL)
	if err != nil {
		return nil, err
	}
	return assemble(wf, config, slog.Default())
}

func analyze(src []byte, config *Config, logger *slog.Logger) (*Report, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	inspector := python.NewInspector(config.Markers, logger)
	wf, err := inspector.InspectSource(src)
	if err != nil {
		return nil, err
	}
	return assemble(wf, config, logger)
}

func assemble(wf *meta.Workflow, config *Config, logger *slog.Logger) (*Report, error) {
	generator := pathgen.NewGenerator(config.Ceiling, logger)
	paths, err := generator.Generate(wf)
	if err != nil {
		return nil, err
	}

	renderer := diagram.NewRenderer(config.diagramConfig())
	var sections []string
	if config.Output == OutputDiagram || config.Output == OutputBoth {
		sections = append(sections, renderer.Render(paths))
	}
	if config.Output == OutputPathList || (config.Output == OutputBoth && config.IncludePathList) {
		sections = append(sections, renderer.RenderPathList(paths, wf.BranchCount()))
	}

	return &Report{
		Workflow: wf,
		Paths:    paths,
		Output:   strings.Join(sections, "\n"),
	}, nil
}
