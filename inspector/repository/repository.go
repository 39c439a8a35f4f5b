package repository

// Project represents information about a detected workflow project
type Project struct {
	RootPath     string // Absolute path to the project root directory
	Name         string // Name of the project (extracted from config files)
	Marker       string // Marker file that identified the root
	RelativePath string // Path from project root to the specified file
}
