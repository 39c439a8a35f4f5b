package diagram

import (
	"fmt"
	"strings"

	"github.com/flowmap/flowmap/pathgen"
)

// Config holds the renderer options.
type Config struct {
	TrueLabel     string `yaml:"trueLabel"`
	FalseLabel    string `yaml:"falseLabel"`
	SignaledLabel string `yaml:"signaledLabel"`
	TimeoutLabel  string `yaml:"timeoutLabel"`
	StartLabel    string `yaml:"startLabel"`
	EndLabel      string `yaml:"endLabel"`
	// SplitNames inserts a space between a lowercase letter and a following
	// uppercase letter in displayed names. Display only; node identity and
	// deduplication are unaffected.
	SplitNames bool `yaml:"splitNames"`
}

// DefaultConfig returns the default renderer options.
func DefaultConfig() *Config {
	return &Config{
		TrueLabel:     "yes",
		FalseLabel:    "no",
		SignaledLabel: "Signaled",
		TimeoutLabel:  "Timeout",
		StartLabel:    "Start",
		EndLabel:      "End",
		SplitNames:    true,
	}
}

// Renderer turns execution paths into a Mermaid flowchart with nodes and
// edges deduplicated globally across all paths.
type Renderer struct {
	config *Config
}

// NewRenderer creates a Renderer; a nil config selects the defaults.
func NewRenderer(config *Config) *Renderer {
	if config == nil {
		config = DefaultConfig()
	}
	return &Renderer{config: config}
}

// Render emits the flowchart in two passes: first collect every distinct
// node definition and edge across all paths in insertion order, then emit
// the full node block followed by the full edge block. Interleaving nodes
// with edges would drop definitions shared between paths, so the passes
// stay separate.
func (r *Renderer) Render(paths []*pathgen.Path) string {
	nodeOrder := []string{"s"}
	nodeDefs := map[string]string{
		"s": fmt.Sprintf("s([%q])", r.label(r.config.StartLabel)),
	}
	var edgeOrder []string
	edgeSeen := map[string]bool{}

	addNode := func(id, def string) {
		if _, ok := nodeDefs[id]; ok {
			return
		}
		nodeDefs[id] = def
		nodeOrder = append(nodeOrder, id)
	}
	addEdge := func(from, to, label string) {
		key := from + "|" + label + "|" + to
		if edgeSeen[key] {
			return
		}
		edgeSeen[key] = true
		if label != "" {
			edgeOrder = append(edgeOrder, fmt.Sprintf("%s -->|%s| %s", from, label, to))
		} else {
			edgeOrder = append(edgeOrder, fmt.Sprintf("%s --> %s", from, to))
		}
	}

	for _, path := range paths {
		prevID := "s"
		var prev pathgen.Step
		for _, step := range path.Steps {
			id, def := r.nodeDef(step)
			addNode(id, def)
			addEdge(prevID, id, r.outcomeLabel(prev))
			prevID, prev = id, step
		}
		addEdge(prevID, "e", r.outcomeLabel(prev))
	}
	addNode("e", fmt.Sprintf("e([%q])", r.label(r.config.EndLabel)))

	var b strings.Builder
	b.WriteString("```mermaid\n")
	b.WriteString("flowchart TD\n")
	for _, id := range nodeOrder {
		b.WriteString("    ")
		b.WriteString(nodeDefs[id])
		b.WriteString("\n")
	}
	for _, edge := range edgeOrder {
		b.WriteString("    ")
		b.WriteString(edge)
		b.WriteString("\n")
	}
	b.WriteString("```\n")
	return b.String()
}

// nodeDef computes the node id and Mermaid definition for a step. Plain
// steps are keyed by call-site line, branch points reuse their metadata id.
func (r *Renderer) nodeDef(step pathgen.Step) (string, string) {
	switch s := step.(type) {
	case pathgen.ActivityStep:
		id := fmt.Sprintf("a%d", s.Line)
		return id, fmt.Sprintf("%s[%q]", id, r.label(s.Name))
	case pathgen.DecisionStep:
		return s.ID, fmt.Sprintf("%s{%q}", s.ID, r.label(s.Name))
	case pathgen.SignalStep:
		return s.ID, fmt.Sprintf("%s{{%q}}", s.ID, r.label(s.Name))
	case pathgen.ChildWorkflowStep:
		id := fmt.Sprintf("cw%d", s.Line)
		return id, fmt.Sprintf("%s[[%q]]", id, r.label(s.Target))
	case pathgen.ExternalSignalStep:
		id := fmt.Sprintf("es%d", s.Line)
		return id, fmt.Sprintf("%s>%q]", id, r.label(s.Target))
	}
	panic(fmt.Sprintf("unknown step kind %T", step))
}

// outcomeLabel returns the edge label owed by the preceding step: branch
// points label their outgoing edge with the chosen outcome, every other
// edge is unlabeled.
func (r *Renderer) outcomeLabel(prev pathgen.Step) string {
	switch s := prev.(type) {
	case pathgen.DecisionStep:
		if s.Outcome {
			return r.config.TrueLabel
		}
		return r.config.FalseLabel
	case pathgen.SignalStep:
		if s.Signaled {
			return r.config.SignaledLabel
		}
		return r.config.TimeoutLabel
	}
	return ""
}

func (r *Renderer) label(name string) string {
	if r.config.SplitNames {
		return splitName(name)
	}
	return name
}
