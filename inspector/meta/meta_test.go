package meta

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBranchPoints_MergedBySourceLine(t *testing.T) {
	wf := &Workflow{
		Decisions: []DecisionPoint{
			{ID: "d0", Line: 12, TrueLines: map[int]bool{13: true}},
			{ID: "d1", Line: 30},
		},
		Signals: []SignalPoint{
			{ID: "sg0", Line: 20, SignaledLines: map[int]bool{21: true}},
		},
	}

	points := wf.BranchPoints()
	require.Len(t, points, 3)
	assert.Equal(t, []string{"d0", "sg0", "d1"}, []string{points[0].ID, points[1].ID, points[2].ID})
	assert.Equal(t, KindDecision, points[0].Kind)
	assert.Equal(t, KindSignal, points[1].Kind)

	// The generic view aliases the kind-specific line sets.
	assert.True(t, points[0].OnLines[13])
	assert.True(t, points[1].OnLines[21])
	assert.Equal(t, 3, wf.BranchCount())
}

func TestErrorMessagesAreSelfContained(t *testing.T) {
	structural := &StructuralError{Line: 14, Detail: "no workflow definition found", Suggestion: "annotate the workflow class with @workflow.defn"}
	assert.Contains(t, structural.Error(), "line 14")
	assert.Contains(t, structural.Error(), "annotate the workflow class")

	explosion := &ExplosionError{DecisionCount: 3, SignalCount: 1, TotalPaths: 16, Ceiling: 8}
	message := explosion.Error()
	assert.Contains(t, message, "3 decision")
	assert.Contains(t, message, "1 signal")
	assert.Contains(t, message, "16 execution paths")
	assert.Contains(t, message, "ceiling of 8")

	config := &ConfigError{Option: "output", Detail: `unrecognized mode "svg"`}
	assert.Contains(t, config.Error(), `"output"`)
	assert.Contains(t, config.Error(), "svg")
}

func TestFingerprint(t *testing.T) {
	a1, err := Fingerprint([]byte("class OrderWorkflow: pass"))
	require.NoError(t, err)
	a2, err := Fingerprint([]byte("class OrderWorkflow: pass"))
	require.NoError(t, err)
	b, err := Fingerprint([]byte("class OtherWorkflow: pass"))
	require.NoError(t, err)

	assert.Equal(t, a1, a2)
	assert.NotEqual(t, a1, b)
}
