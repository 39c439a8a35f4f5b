package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/viant/afs"
	"github.com/viant/afs/file"

	"github.com/flowmap/flowmap"
	"github.com/flowmap/flowmap/inspector/repository"
)

func main() {
	configURL := flag.String("config", "", "optional YAML configuration file")
	output := flag.String("out", "", "write the result to this location instead of stdout")
	mode := flag.String("mode", "", "output mode: diagram, path_list or both")
	ceiling := flag.Int("ceiling", 0, "override the execution path ceiling")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: flowmap [flags] <workflow.py | project-dir>")
		flag.PrintDefaults()
		os.Exit(2)
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	logger = logger.With("run", uuid.New().String())

	ctx := context.Background()
	config, err := loadConfig(ctx, *configURL)
	if err != nil {
		fail(logger, err)
	}
	if *mode != "" {
		config.Output = flowmap.OutputMode(*mode)
	}
	if *ceiling != 0 {
		config.Ceiling = *ceiling
	}

	result, err := run(ctx, flag.Arg(0), config, logger)
	if err != nil {
		fail(logger, err)
	}

	if *output == "" {
		fmt.Print(result)
		return
	}
	fs := afs.New()
	if err := fs.Upload(ctx, *output, file.DefaultFileOsMode, strings.NewReader(result)); err != nil {
		fail(logger, err)
	}
	logger.Info("result written", "url", *output)
}

func loadConfig(ctx context.Context, URL string) (*flowmap.Config, error) {
	if URL == "" {
		return flowmap.DefaultConfig(), nil
	}
	return flowmap.LoadConfig(ctx, URL)
}

// run analyzes a single file, or every workflow definition below a
// directory.
func run(ctx context.Context, location string, config *flowmap.Config, logger *slog.Logger) (string, error) {
	info, err := os.Stat(location)
	if err != nil {
		return "", err
	}
	fs := afs.New()

	if !info.IsDir() {
		src, err := fs.DownloadWithURL(ctx, location)
		if err != nil {
			return "", err
		}
		report, err := flowmap.AnalyzeWith(src, config, logger)
		if err != nil {
			return "", err
		}
		return report.Output, nil
	}

	if project, err := repository.New().DetectProject(location); err == nil {
		logger.Info("project detected", "name", project.Name, "root", project.RootPath)
	}

	scanner := repository.NewScanner(config.Markers, logger)
	sources, err := scanner.FindWorkflows(ctx, location)
	if err != nil {
		return "", err
	}
	if len(sources) == 0 {
		return "", fmt.Errorf("no workflow definitions found under %s", location)
	}

	var b strings.Builder
	for i, source := range sources {
		report, err := flowmap.AnalyzeWith(source.Data, config, logger)
		if err != nil {
			return "", fmt.Errorf("%s: %w", source.URL, err)
		}
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "== %s (%s)\n\n", report.Workflow.TypeName, source.URL)
		b.WriteString(report.Output)
	}
	return b.String(), nil
}

func fail(logger *slog.Logger, err error) {
	logger.Error("analysis failed", "error", err)
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
