package meta

import "sort"

// Workflow holds the extracted metadata of a single workflow definition.
// It is produced by the inspector in one traversal and consumed read-only
// by the path generator and renderer.
type Workflow struct {
	TypeName   string // workflow class name
	MethodName string // entry method name
	IsAsync    bool   // whether the entry method is declared async

	Activities      []Activity
	Decisions       []DecisionPoint
	Signals         []SignalPoint
	ChildWorkflows  []ChildWorkflowCall
	ExternalSignals []ExternalSignalCall
	SignalHandlers  []SignalHandler

	// Diagnostics records non-fatal marker issues encountered during
	// extraction, e.g. a decision marker whose display name is not a
	// string literal.
	Diagnostics []MarkerDiagnostic
}

// Activity is a plain activity invocation in the entry method.
type Activity struct {
	Name string
	Line int
}

// ChildWorkflowCall is a sub-workflow invocation.
type ChildWorkflowCall struct {
	Target string
	Line   int
}

// ExternalSignalCall is a signal sent to another workflow.
type ExternalSignalCall struct {
	Target string
	Line   int
}

// SignalHandler is a signal-receiving method declared on the workflow class.
// Handlers are informational; they do not take part in path generation.
type SignalHandler struct {
	SignalName string
	MethodName string
	Line       int
}

// DecisionPoint is a two-outcome branch guarded by a decision marker call.
// TrueLines and FalseLines hold the source lines of the calls lexically
// nested inside the corresponding conditional arm.
type DecisionPoint struct {
	ID         string
	Name       string
	Line       int
	TrueLines  map[int]bool
	FalseLines map[int]bool
}

// SignalPoint is a two-outcome branch guarded by a signal-wait marker call.
// The outcomes are "signaled" and "timeout"; the line sets play the same
// structural role as a decision point's true/false sets.
type SignalPoint struct {
	ID            string
	Name          string
	Line          int
	SignaledLines map[int]bool
	TimeoutLines  map[int]bool
}

// BranchKind discriminates decision and signal branch points.
type BranchKind int

const (
	KindDecision BranchKind = iota
	KindSignal
)

// BranchPoint is the generator-facing view common to decision and signal
// points. For signal points OnLines/OffLines alias the signaled/timeout sets.
type BranchPoint struct {
	ID       string
	Name     string
	Line     int
	Kind     BranchKind
	OnLines  map[int]bool
	OffLines map[int]bool
}

// BranchPoints merges decision and signal points into one list ordered by
// source line; ties keep declaration order (decisions before signals). IDs
// are unique across the union.
func (w *Workflow) BranchPoints() []BranchPoint {
	points := make([]BranchPoint, 0, len(w.Decisions)+len(w.Signals))
	for _, d := range w.Decisions {
		points = append(points, BranchPoint{
			ID:       d.ID,
			Name:     d.Name,
			Line:     d.Line,
			Kind:     KindDecision,
			OnLines:  d.TrueLines,
			OffLines: d.FalseLines,
		})
	}
	for _, s := range w.Signals {
		points = append(points, BranchPoint{
			ID:       s.ID,
			Name:     s.Name,
			Line:     s.Line,
			Kind:     KindSignal,
			OnLines:  s.SignaledLines,
			OffLines: s.TimeoutLines,
		})
	}
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Line < points[j].Line
	})
	return points
}

// BranchCount returns the number of branch points in the workflow.
func (w *Workflow) BranchCount() int {
	return len(w.Decisions) + len(w.Signals)
}
