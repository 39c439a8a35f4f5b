package pathgen

// Step is one element of an execution path. The concrete kinds form a
// closed set; consumers switch exhaustively over them and an unknown kind
// is a programming error.
type Step interface {
	isStep()
}

// ActivityStep is a plain activity invocation.
type ActivityStep struct {
	Name string
	Line int
}

// DecisionStep is a decision branch point with the outcome chosen for the
// owning path.
type DecisionStep struct {
	ID      string
	Name    string
	Line    int
	Outcome bool
}

// SignalStep is a signal-wait branch point with the outcome chosen for the
// owning path: signaled when true, timed out when false.
type SignalStep struct {
	ID       string
	Name     string
	Line     int
	Signaled bool
}

// ChildWorkflowStep is a sub-workflow invocation.
type ChildWorkflowStep struct {
	Target string
	Line   int
}

// ExternalSignalStep is a signal sent to another workflow.
type ExternalSignalStep struct {
	Target string
	Line   int
}

func (ActivityStep) isStep()       {}
func (DecisionStep) isStep()       {}
func (SignalStep) isStep()         {}
func (ChildWorkflowStep) isStep()  {}
func (ExternalSignalStep) isStep() {}

// Path is one concrete execution path from start to end. Outcomes holds
// exactly one entry per branch point the workflow declares.
type Path struct {
	ID       string
	Steps    []Step
	Outcomes map[string]bool
}
