package repository

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/viant/afs"

	"github.com/flowmap/flowmap/inspector/meta"
)

// Source is a discovered workflow definition file.
type Source struct {
	URL         string
	Data        []byte
	Fingerprint uint64
}

// Scanner discovers workflow definition files under a project root: Python
// sources containing the entry-type marker. Identical sources are reported
// once, keyed by content fingerprint.
type Scanner struct {
	fs     afs.Service
	marker string
	logger *slog.Logger
}

// NewScanner creates a Scanner recognizing the given marker set.
func NewScanner(markers meta.Markers, logger *slog.Logger) *Scanner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scanner{
		fs:     afs.New(),
		marker: markers.EntryType,
		logger: logger,
	}
}

// skipDirs are directory names never descended into.
var skipDirs = map[string]bool{
	"__pycache__":  true,
	".git":         true,
	".venv":        true,
	"venv":         true,
	"node_modules": true,
	".tox":         true,
}

// FindWorkflows walks the tree below rootURL and returns every Python file
// that declares a workflow, in a stable listing order.
func (s *Scanner) FindWorkflows(ctx context.Context, rootURL string) ([]*Source, error) {
	seen := map[uint64]string{}
	var sources []*Source
	if err := s.scan(ctx, rootURL, seen, &sources); err != nil {
		return nil, err
	}
	s.logger.Info("workflow scan completed", "root", rootURL, "workflows", len(sources))
	return sources, nil
}

func (s *Scanner) scan(ctx context.Context, parentURL string, seen map[uint64]string, sources *[]*Source) error {
	objects, err := s.fs.List(ctx, parentURL)
	if err != nil {
		return fmt.Errorf("failed to list %s: %w", parentURL, err)
	}
	for _, object := range objects {
		if sameLocation(object.URL(), parentURL) {
			continue
		}
		if object.IsDir() {
			if skipDirs[object.Name()] {
				continue
			}
			if err := s.scan(ctx, object.URL(), seen, sources); err != nil {
				return err
			}
			continue
		}
		if !strings.HasSuffix(object.Name(), ".py") {
			continue
		}

		data, err := s.fs.DownloadWithURL(ctx, object.URL())
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", object.URL(), err)
		}
		if !bytes.Contains(data, []byte("@"+s.marker)) {
			continue
		}

		fingerprint, err := meta.Fingerprint(data)
		if err != nil {
			return err
		}
		if first, ok := seen[fingerprint]; ok {
			s.logger.Debug("skipping duplicate workflow source", "url", object.URL(), "duplicateOf", first)
			continue
		}
		seen[fingerprint] = object.URL()
		*sources = append(*sources, &Source{URL: object.URL(), Data: data, Fingerprint: fingerprint})
		s.logger.Debug("workflow source discovered", "url", object.URL(), "fingerprint", fingerprint)
	}
	return nil
}

func sameLocation(a, b string) bool {
	return strings.TrimRight(a, "/") == strings.TrimRight(b, "/")
}
