package python

import (
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/flowmap/flowmap/inspector/meta"
)

// branchRef identifies a decision or signal point by kind and slice index.
type branchRef struct {
	kind meta.BranchKind
	idx  int
}

// walkState is the explicit traversal state threaded through visit calls.
// bound maps local variable names to the branch point whose marker result
// they hold.
type walkState struct {
	wf     *meta.Workflow
	source []byte
	method string
	bound  map[string]branchRef
}

// armSets returns the live line sets of a branch point.
func (st *walkState) armSets(ref branchRef) (on, off map[int]bool) {
	if ref.kind == meta.KindDecision {
		d := st.wf.Decisions[ref.idx]
		return d.TrueLines, d.FalseLines
	}
	s := st.wf.Signals[ref.idx]
	return s.SignaledLines, s.TimeoutLines
}

// walkNode visits a statement or expression in pre-order. capture holds the
// line sets of every conditional arm lexically enclosing the node; call
// markers found here are recorded into all of them.
func (i *Inspector) walkNode(node *sitter.Node, st *walkState, capture []map[int]bool) {
	switch node.Type() {
	case "if_statement":
		i.walkIf(node, st, capture)
	case "assignment":
		i.walkAssignment(node, st, capture)
	case "call":
		if i.classifyCall(node, st, capture) {
			return
		}
		i.walkChildren(node, st, capture)
	default:
		i.walkChildren(node, st, capture)
	}
}

func (i *Inspector) walkChildren(node *sitter.Node, st *walkState, capture []map[int]bool) {
	for j := 0; j < int(node.NamedChildCount()); j++ {
		i.walkNode(node.NamedChild(j), st, capture)
	}
}

// walkAssignment handles statements of the form name = <expr>. When the
// right-hand side is a decision or signal marker call, the branch point is
// created immediately and the name is bound so a later `if name:` attaches
// its arms to the same point.
func (i *Inspector) walkAssignment(node *sitter.Node, st *walkState, capture []map[int]bool) {
	left := node.ChildByFieldName("left")
	right := unwrap(node.ChildByFieldName("right"))
	if right == nil {
		return
	}
	if right.Type() == "call" {
		if ref, ok := i.branchMarker(right, st); ok {
			if left != nil && left.Type() == "identifier" {
				st.bound[left.Content(st.source)] = ref
			}
			return
		}
	}
	i.walkNode(right, st, capture)
}

// walkIf resolves the condition against the branch markers and captures the
// call lines of each arm. The elif chain and the else clause both feed the
// false/timeout arm of the owning branch point. Nested conditionals are
// walked fully, so a call line lands in every enclosing arm set.
func (i *Inspector) walkIf(node *sitter.Node, st *walkState, capture []map[int]bool) {
	cond := node.ChildByFieldName("condition")
	ref, owned := i.resolveBranch(cond, st)

	var onSet, offSet map[int]bool
	if owned {
		onSet, offSet = st.armSets(ref)
	} else if cond != nil {
		// Not a branch conditional; the test itself may still contain markers.
		i.walkNode(cond, st, capture)
	}

	if consequence := node.ChildByFieldName("consequence"); consequence != nil {
		i.walkNode(consequence, st, pushCapture(capture, onSet))
	}

	for j := 0; j < int(node.NamedChildCount()); j++ {
		child := node.NamedChild(j)
		switch child.Type() {
		case "elif_clause":
			next := pushCapture(capture, offSet)
			if econd := child.ChildByFieldName("condition"); econd != nil {
				i.walkNode(econd, st, next)
			}
			if econs := child.ChildByFieldName("consequence"); econs != nil {
				i.walkNode(econs, st, next)
			}
		case "else_clause":
			if body := child.ChildByFieldName("body"); body != nil {
				i.walkNode(body, st, pushCapture(capture, offSet))
			}
		}
	}
}

// pushCapture extends the capture stack without aliasing the caller's slice.
func pushCapture(capture []map[int]bool, set map[int]bool) []map[int]bool {
	if set == nil {
		return capture
	}
	next := make([]map[int]bool, 0, len(capture)+1)
	next = append(next, capture...)
	return append(next, set)
}

// resolveBranch decides whether an if condition is owned by a branch point:
// a direct (possibly awaited) marker call, or an identifier bound to one.
func (i *Inspector) resolveBranch(cond *sitter.Node, st *walkState) (branchRef, bool) {
	expr := unwrap(cond)
	if expr == nil {
		return branchRef{}, false
	}
	switch expr.Type() {
	case "call":
		return i.branchMarker(expr, st)
	case "identifier":
		ref, ok := st.bound[expr.Content(st.source)]
		return ref, ok
	}
	return branchRef{}, false
}

// branchMarker records a decision or signal point for a marker call. The
// display name comes from a string-literal argument; a malformed argument
// degrades to a derived name with a recorded diagnostic.
func (i *Inspector) branchMarker(call *sitter.Node, st *walkState) (branchRef, bool) {
	callee := calleeIdentity(call, st.source)
	line := nodeLine(call)

	switch {
	case matchesAny(callee, i.markers.Decision):
		idx := len(st.wf.Decisions)
		name := i.displayName(call, st, callee, fmt.Sprintf("%s_decision_%d", st.method, idx))
		st.wf.Decisions = append(st.wf.Decisions, meta.DecisionPoint{
			ID:         fmt.Sprintf("d%d", idx),
			Name:       name,
			Line:       line,
			TrueLines:  map[int]bool{},
			FalseLines: map[int]bool{},
		})
		i.logger.Debug("decision point detected", "name", name, "line", line)
		return branchRef{kind: meta.KindDecision, idx: idx}, true

	case matchesAny(callee, i.markers.Signal):
		idx := len(st.wf.Signals)
		name := i.displayName(call, st, callee, fmt.Sprintf("%s_signal_%d", st.method, idx))
		st.wf.Signals = append(st.wf.Signals, meta.SignalPoint{
			ID:            fmt.Sprintf("sg%d", idx),
			Name:          name,
			Line:          line,
			SignaledLines: map[int]bool{},
			TimeoutLines:  map[int]bool{},
		})
		i.logger.Debug("signal point detected", "name", name, "line", line)
		return branchRef{kind: meta.KindSignal, idx: idx}, true
	}
	return branchRef{}, false
}

func (i *Inspector) displayName(call *sitter.Node, st *walkState, callee, fallback string) string {
	name, isLiteral, hasArg := literalName(call, st.source)
	if isLiteral {
		return name
	}
	if hasArg {
		st.wf.Diagnostics = append(st.wf.Diagnostics, meta.MarkerDiagnostic{
			Line:   nodeLine(call),
			Marker: callee,
			Detail: "display name is not a string literal, using derived name " + fallback,
		})
		i.logger.Warn("marker name fallback", "marker", callee, "line", nodeLine(call), "derived", fallback)
	}
	return fallback
}

// classifyCall records plain call markers (activities, child workflows,
// external signals) and bare branch markers. Returns true when the call
// matched a marker family; matched calls are not descended into.
func (i *Inspector) classifyCall(call *sitter.Node, st *walkState, capture []map[int]bool) bool {
	callee := calleeIdentity(call, st.source)
	if callee == "" {
		return false
	}
	line := nodeLine(call)

	switch {
	case matchesAny(callee, i.markers.Activity):
		name, ok := stepTarget(call, st.source)
		if !ok {
			name = lastSegment(callee)
			st.wf.Diagnostics = append(st.wf.Diagnostics, meta.MarkerDiagnostic{
				Line:   line,
				Marker: callee,
				Detail: "activity reference is not a name or string literal",
			})
		}
		st.wf.Activities = append(st.wf.Activities, meta.Activity{Name: name, Line: line})
		recordLine(capture, line)
		i.logger.Debug("activity detected", "name", name, "line", line)
		return true

	case matchesAny(callee, i.markers.ChildWorkflow):
		target, ok := stepTarget(call, st.source)
		if !ok {
			target = lastSegment(callee)
		}
		st.wf.ChildWorkflows = append(st.wf.ChildWorkflows, meta.ChildWorkflowCall{Target: target, Line: line})
		recordLine(capture, line)
		i.logger.Debug("child workflow call detected", "target", target, "line", line)
		return true

	case matchesAny(callee, i.markers.ExternalSignal):
		target, ok := stepTarget(call, st.source)
		if !ok {
			target = lastSegment(callee)
		}
		st.wf.ExternalSignals = append(st.wf.ExternalSignals, meta.ExternalSignalCall{Target: target, Line: line})
		recordLine(capture, line)
		i.logger.Debug("external signal call detected", "target", target, "line", line)
		return true
	}

	// A branch marker used outside any conditional still yields a branch
	// point, with both arm sets left empty.
	if _, ok := i.branchMarker(call, st); ok {
		return true
	}
	return false
}

func recordLine(capture []map[int]bool, line int) {
	for _, set := range capture {
		set[line] = true
	}
}
