package meta

import "fmt"

// StructuralError reports that the source tree is unusable for extraction,
// e.g. the workflow class or entry method marker is missing. It is fatal
// and always propagated to the caller.
type StructuralError struct {
	Line       int
	Detail     string
	Suggestion string
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("line %d: %s; %s", e.Line, e.Detail, e.Suggestion)
}

// ExplosionError reports that the requested combinatorial expansion exceeds
// the configured ceiling. It is raised before any path is materialized.
type ExplosionError struct {
	DecisionCount int
	SignalCount   int
	TotalPaths    int
	Ceiling       int
}

func (e *ExplosionError) Error() string {
	return fmt.Sprintf("workflow has %d decision and %d signal points yielding %d execution paths, which exceeds the ceiling of %d; raise the ceiling or reduce branch points",
		e.DecisionCount, e.SignalCount, e.TotalPaths, e.Ceiling)
}

// ConfigError reports an invalid configuration value. It is raised eagerly
// before any traversal.
type ConfigError struct {
	Option string
	Detail string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration option %q: %s", e.Option, e.Detail)
}

// MarkerDiagnostic records a non-fatal marker issue, e.g. an unsupported
// argument shape. Extraction falls back to a derived name and continues.
type MarkerDiagnostic struct {
	Line   int
	Marker string
	Detail string
}

func (d MarkerDiagnostic) String() string {
	return fmt.Sprintf("line %d: %s: %s", d.Line, d.Marker, d.Detail)
}
