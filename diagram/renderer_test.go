package diagram

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowmap/flowmap/pathgen"
)

func decisionPaths() []*pathgen.Path {
	// One decision after activity A: B on the true arm, C on the false arm.
	return []*pathgen.Path{
		{
			ID: "path_0",
			Steps: []pathgen.Step{
				pathgen.ActivityStep{Name: "A", Line: 5},
				pathgen.DecisionStep{ID: "d0", Name: "X", Line: 7, Outcome: true},
				pathgen.ActivityStep{Name: "B", Line: 8},
			},
			Outcomes: map[string]bool{"d0": true},
		},
		{
			ID: "path_1",
			Steps: []pathgen.Step{
				pathgen.ActivityStep{Name: "A", Line: 5},
				pathgen.DecisionStep{ID: "d0", Name: "X", Line: 7, Outcome: false},
				pathgen.ActivityStep{Name: "C", Line: 10},
			},
			Outcomes: map[string]bool{"d0": false},
		},
	}
}

func TestRender_NodeAndEdgeDedup(t *testing.T) {
	output := NewRenderer(nil).Render(decisionPaths())

	// Activity A and the decision occur on both paths but are defined once.
	assert.Equal(t, 1, strings.Count(output, `a5["A"]`))
	assert.Equal(t, 1, strings.Count(output, `d0{"X"}`))
	assert.Equal(t, 1, strings.Count(output, `s --> a5`))
	assert.Equal(t, 1, strings.Count(output, `a5 --> d0`))
}

func TestRender_NodesPrecedeEdges(t *testing.T) {
	output := NewRenderer(nil).Render(decisionPaths())
	lines := strings.Split(strings.TrimSpace(output), "\n")

	require.Equal(t, "```mermaid", lines[0])
	require.Equal(t, "flowchart TD", lines[1])

	lastNode, firstEdge := -1, -1
	for i, line := range lines {
		if strings.Contains(line, "-->") {
			if firstEdge == -1 {
				firstEdge = i
			}
		} else if strings.Contains(line, "[") || strings.Contains(line, "{") {
			lastNode = i
		}
	}
	require.NotEqual(t, -1, firstEdge)
	assert.Less(t, lastNode, firstEdge, "node block must be emitted before the edge block")
}

func TestRender_StartFirstEndLast(t *testing.T) {
	output := NewRenderer(nil).Render(decisionPaths())
	lines := strings.Split(output, "\n")

	assert.Equal(t, `    s(["Start"])`, lines[2])
	var lastDef string
	for _, line := range lines {
		if strings.Contains(line, "([") {
			lastDef = strings.TrimSpace(line)
		}
	}
	assert.Equal(t, `e(["End"])`, lastDef)
}

func TestRender_OutcomeEdgeLabels(t *testing.T) {
	output := NewRenderer(nil).Render(decisionPaths())

	assert.Contains(t, output, "d0 -->|yes| a8")
	assert.Contains(t, output, "d0 -->|no| a10")
	assert.NotContains(t, output, "s -->|")
}

func TestRender_SignalShapesAndLabels(t *testing.T) {
	paths := []*pathgen.Path{
		{
			ID: "path_0",
			Steps: []pathgen.Step{
				pathgen.SignalStep{ID: "sg0", Name: "Payment", Line: 6, Signaled: true},
				pathgen.ActivityStep{Name: "P", Line: 7},
			},
			Outcomes: map[string]bool{"sg0": true},
		},
		{
			ID: "path_1",
			Steps: []pathgen.Step{
				pathgen.SignalStep{ID: "sg0", Name: "Payment", Line: 6, Signaled: false},
				pathgen.ActivityStep{Name: "Q", Line: 9},
			},
			Outcomes: map[string]bool{"sg0": false},
		},
	}

	output := NewRenderer(nil).Render(paths)
	assert.Contains(t, output, `sg0{{"Payment"}}`)
	assert.Contains(t, output, "sg0 -->|Signaled| a7")
	assert.Contains(t, output, "sg0 -->|Timeout| a9")
}

func TestRender_ChildAndExternalShapes(t *testing.T) {
	paths := []*pathgen.Path{{
		ID: "path_0",
		Steps: []pathgen.Step{
			pathgen.ChildWorkflowStep{Target: "Shipping", Line: 5},
			pathgen.ExternalSignalStep{Target: "Billing", Line: 6},
		},
		Outcomes: map[string]bool{},
	}}

	output := NewRenderer(nil).Render(paths)
	assert.Contains(t, output, `cw5[["Shipping"]]`)
	assert.Contains(t, output, `es6>"Billing"]`)
}

func TestRender_EmptyPathConnectsStartToEnd(t *testing.T) {
	paths := []*pathgen.Path{{ID: "path_0", Outcomes: map[string]bool{}}}
	output := NewRenderer(nil).Render(paths)
	assert.Contains(t, output, "s --> e")
}

func TestRender_SplitNamesAffectsLabelsOnly(t *testing.T) {
	paths := []*pathgen.Path{{
		ID:       "path_0",
		Steps:    []pathgen.Step{pathgen.ActivityStep{Name: "ValidateOrder", Line: 5}},
		Outcomes: map[string]bool{},
	}}

	split := NewRenderer(DefaultConfig()).Render(paths)
	assert.Contains(t, split, `a5["Validate Order"]`)

	config := DefaultConfig()
	config.SplitNames = false
	plain := NewRenderer(config).Render(paths)
	assert.Contains(t, plain, `a5["ValidateOrder"]`)
}

func TestRenderPathList(t *testing.T) {
	renderer := NewRenderer(nil)
	output := renderer.RenderPathList(decisionPaths(), 1)

	lines := strings.Split(strings.TrimSpace(output), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Total paths: 2", lines[0])
	assert.Equal(t, "Branch points: 1 (2^1 = 2)", lines[1])
	assert.Equal(t, "Path 1: Start → A → X → B → End", lines[2])
	assert.Equal(t, "Path 2: Start → A → X → C → End", lines[3])
}

func TestRenderPathList_NoBranchPoints(t *testing.T) {
	paths := []*pathgen.Path{{
		ID:       "path_0",
		Steps:    []pathgen.Step{pathgen.ActivityStep{Name: "A", Line: 5}},
		Outcomes: map[string]bool{},
	}}
	output := NewRenderer(nil).RenderPathList(paths, 0)

	assert.Contains(t, output, "Total paths: 1")
	assert.NotContains(t, output, "Branch points")
	assert.Contains(t, output, "Path 1: Start → A → End")
}

func TestSplitName(t *testing.T) {
	assert.Equal(t, "Validate Order", splitName("ValidateOrder"))
	assert.Equal(t, "ship", splitName("ship"))
	assert.Equal(t, "HTTPCall", splitName("HTTPCall"), "only lower-to-upper boundaries split")
	assert.Equal(t, "", splitName(""))
}
