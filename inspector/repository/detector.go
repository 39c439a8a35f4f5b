package repository

import (
	"os"
	"path/filepath"
	"regexp"
)

// Detector identifies workflow project root folders and provides
// project-related information
type Detector struct {
	// Common project root marker files/directories
	markers []string
}

// New creates a new project detector instance
func New() *Detector {
	return &Detector{
		markers: []string{
			"pyproject.toml",
			"setup.py",
			"requirements.txt",
			".git",
		},
	}
}

// DetectProject identifies the project root for the given file path and
// returns project info
func (d *Detector) DetectProject(filePath string) (*Project, error) {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return nil, err
	}

	startDir := absPath
	fileInfo, err := os.Stat(absPath)
	if err != nil {
		return nil, err
	}
	if !fileInfo.IsDir() {
		startDir = filepath.Dir(absPath)
	}

	rootPath, marker := d.findProjectRoot(startDir)

	info := &Project{
		RootPath: absPath,
	}
	if rootPath != "" {
		info.RootPath = rootPath
		info.Marker = marker
		info.Name = extractProjectName(rootPath)
	}

	relPath, err := filepath.Rel(info.RootPath, absPath)
	if err != nil {
		relPath = filepath.Base(absPath)
	}
	info.RelativePath = filepath.ToSlash(relPath)

	if info.Name == "" {
		info.Name = filepath.Base(info.RootPath)
	}
	return info, nil
}

// findProjectRoot searches up from the current directory for project markers
func (d *Detector) findProjectRoot(startDir string) (string, string) {
	dir := startDir
	for {
		for _, marker := range d.markers {
			markerPath := filepath.Join(dir, marker)
			if _, err := os.Stat(markerPath); err == nil {
				return dir, marker
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// We've reached the filesystem root with no match
			break
		}
		dir = parent
	}
	return "", ""
}

// extractProjectName attempts to extract a project name from pyproject.toml
func extractProjectName(rootPath string) string {
	data, err := os.ReadFile(filepath.Join(rootPath, "pyproject.toml"))
	if err != nil {
		return ""
	}

	// Not a full TOML parser but works for most cases
	nameRegex := regexp.MustCompile(`(?m)^name\s*=\s*["']([^"']+)["']`)
	matches := nameRegex.FindSubmatch(data)
	if len(matches) < 2 {
		return ""
	}
	return string(matches[1])
}
