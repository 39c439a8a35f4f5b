package repository

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"
	"github.com/viant/afs/file"

	"github.com/flowmap/flowmap/inspector/meta"
)

const workflowSource = `
@workflow.defn
class OrderWorkflow:
    @workflow.run
    async def run(self) -> None:
        await workflow.execute_activity("A")
`

const helperSource = `
def helper():
    return 42
`

func upload(t *testing.T, fs afs.Service, URL, content string) {
	t.Helper()
	err := fs.Upload(context.Background(), URL, file.DefaultFileOsMode, strings.NewReader(content))
	require.NoError(t, err)
}

func TestScanner_FindWorkflows(t *testing.T) {
	ctx := context.Background()
	fs := afs.New()
	root := "mem://localhost/scanner/project"

	upload(t, fs, root+"/order.py", workflowSource)
	upload(t, fs, root+"/util/helper.py", helperSource)
	upload(t, fs, root+"/util/copy_of_order.py", workflowSource)
	upload(t, fs, root+"/__pycache__/order.py", workflowSource)
	upload(t, fs, root+"/README.md", "docs")

	scanner := NewScanner(meta.DefaultMarkers(), nil)
	sources, err := scanner.FindWorkflows(ctx, root)
	require.NoError(t, err)

	// The helper has no workflow marker, the copy is deduplicated by
	// fingerprint, and __pycache__ is never descended into.
	require.Len(t, sources, 1)
	assert.Contains(t, sources[0].URL, "order.py")
	assert.Equal(t, []byte(workflowSource), sources[0].Data)
	assert.NotZero(t, sources[0].Fingerprint)
}

func TestScanner_DistinctWorkflows(t *testing.T) {
	ctx := context.Background()
	fs := afs.New()
	root := "mem://localhost/scanner/multi"

	upload(t, fs, root+"/a.py", workflowSource)
	upload(t, fs, root+"/b.py", strings.Replace(workflowSource, "OrderWorkflow", "ShippingWorkflow", 1))

	scanner := NewScanner(meta.DefaultMarkers(), nil)
	sources, err := scanner.FindWorkflows(ctx, root)
	require.NoError(t, err)
	assert.Len(t, sources, 2)
}
