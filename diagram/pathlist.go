package diagram

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/flowmap/flowmap/pathgen"
)

// RenderPathList emits the textual path list: a count header, the branch
// formula when branch points exist, and one line per path in enumeration
// order.
func (r *Renderer) RenderPathList(paths []*pathgen.Path, branchCount int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Total paths: %d\n", len(paths))
	if branchCount > 0 {
		fmt.Fprintf(&b, "Branch points: %d (2^%d = %d)\n", branchCount, branchCount, len(paths))
	}
	for i, path := range paths {
		names := make([]string, 0, len(path.Steps)+2)
		names = append(names, r.label(r.config.StartLabel))
		for _, step := range path.Steps {
			names = append(names, r.label(stepName(step)))
		}
		names = append(names, r.label(r.config.EndLabel))
		fmt.Fprintf(&b, "Path %d: %s\n", i+1, strings.Join(names, " → "))
	}
	return b.String()
}

// stepName returns the display name of a step.
func stepName(step pathgen.Step) string {
	switch s := step.(type) {
	case pathgen.ActivityStep:
		return s.Name
	case pathgen.DecisionStep:
		return s.Name
	case pathgen.SignalStep:
		return s.Name
	case pathgen.ChildWorkflowStep:
		return s.Target
	case pathgen.ExternalSignalStep:
		return s.Target
	}
	panic(fmt.Sprintf("unknown step kind %T", step))
}

// splitName inserts a space between a lowercase letter and a following
// uppercase letter, e.g. "ValidateOrder" -> "Validate Order".
func splitName(name string) string {
	var b strings.Builder
	runes := []rune(name)
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) && unicode.IsLower(runes[i-1]) {
			b.WriteRune(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}
