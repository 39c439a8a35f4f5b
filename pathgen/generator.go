package pathgen

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/flowmap/flowmap/inspector/meta"
)

// Generator expands workflow metadata into the full set of execution paths,
// refusing with an ExplosionError when the combinatorial expansion would
// exceed the configured ceiling.
type Generator struct {
	ceiling int
	logger  *slog.Logger
}

// NewGenerator creates a Generator with the given path ceiling.
func NewGenerator(ceiling int, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{ceiling: ceiling, logger: logger}
}

// entry is one slot of the merged execution order: either a plain step
// template or a branch point.
type entry struct {
	line   int
	step   Step
	branch *meta.BranchPoint
}

// Generate enumerates every execution path of the workflow. The output is
// deterministic: identical metadata yields an identical path list.
func (g *Generator) Generate(wf *meta.Workflow) ([]*Path, error) {
	branches := wf.BranchPoints()
	order := mergeOrder(wf, branches)

	b := len(branches)
	if b == 0 {
		path := &Path{ID: "path_0", Outcomes: map[string]bool{}}
		for _, en := range order {
			path.Steps = append(path.Steps, en.step)
		}
		return []*Path{path}, nil
	}

	if b >= 63 || 1<<b > g.ceiling {
		return nil, &meta.ExplosionError{
			DecisionCount: len(wf.Decisions),
			SignalCount:   len(wf.Signals),
			TotalPaths:    1 << b,
			Ceiling:       g.ceiling,
		}
	}

	total := 1 << b
	g.logger.Debug("enumerating execution paths", "branchPoints", b, "paths", total)

	paths := make([]*Path, 0, total)
	for index := 0; index < total; index++ {
		// Outcome tuple in lexicographic order: the first branch point is
		// the most significant position, true before false.
		choice := make([]bool, b)
		for j := 0; j < b; j++ {
			choice[j] = (index>>(b-1-j))&1 == 0
		}

		path := &Path{
			ID:       fmt.Sprintf("path_%d", index),
			Outcomes: make(map[string]bool, b),
		}
		branchIdx := 0
		for _, en := range order {
			if en.branch != nil {
				outcome := choice[branchIdx]
				path.Outcomes[en.branch.ID] = outcome
				path.Steps = append(path.Steps, branchStep(en.branch, outcome))
				branchIdx++
				continue
			}
			if included(en.line, branches, choice) {
				path.Steps = append(path.Steps, en.step)
			}
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// mergeOrder interleaves plain steps with branch points, sorted by source
// line; ties keep declaration order.
func mergeOrder(wf *meta.Workflow, branches []meta.BranchPoint) []entry {
	var order []entry
	for _, a := range wf.Activities {
		order = append(order, entry{line: a.Line, step: ActivityStep{Name: a.Name, Line: a.Line}})
	}
	for _, c := range wf.ChildWorkflows {
		order = append(order, entry{line: c.Line, step: ChildWorkflowStep{Target: c.Target, Line: c.Line}})
	}
	for _, e := range wf.ExternalSignals {
		order = append(order, entry{line: e.Line, step: ExternalSignalStep{Target: e.Target, Line: e.Line}})
	}
	for j := range branches {
		order = append(order, entry{line: branches[j].Line, branch: &branches[j]})
	}
	sort.SliceStable(order, func(i, j int) bool {
		return order[i].line < order[j].line
	})
	return order
}

// branchStep materializes the outcome step for a branch point.
func branchStep(bp *meta.BranchPoint, outcome bool) Step {
	switch bp.Kind {
	case meta.KindDecision:
		return DecisionStep{ID: bp.ID, Name: bp.Name, Line: bp.Line, Outcome: outcome}
	case meta.KindSignal:
		return SignalStep{ID: bp.ID, Name: bp.Name, Line: bp.Line, Signaled: outcome}
	}
	panic(fmt.Sprintf("unknown branch kind %d", bp.Kind))
}

// included applies the branch-local inclusion rule: a step recorded inside
// some branch point's arm is kept only when the chosen outcome selects that
// arm; a step recorded in no arm is kept on every path.
func included(line int, branches []meta.BranchPoint, choice []bool) bool {
	for j := range branches {
		inOn := branches[j].OnLines[line]
		inOff := branches[j].OffLines[line]
		if !inOn && !inOff {
			continue
		}
		if choice[j] {
			if !inOn {
				return false
			}
		} else if !inOff {
			return false
		}
	}
	return true
}
