package python

import (
	"context"
	"fmt"
	"log/slog"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/viant/afs"

	"github.com/flowmap/flowmap/inspector/meta"
)

// Inspector extracts workflow metadata from Python workflow definitions.
// A single traversal of the syntax tree produces a meta.Workflow; the tree
// is never mutated and no state survives a call.
type Inspector struct {
	markers meta.Markers
	logger  *slog.Logger
}

// NewInspector creates a new Inspector with the provided marker names.
func NewInspector(markers meta.Markers, logger *slog.Logger) *Inspector {
	if logger == nil {
		logger = slog.Default()
	}
	return &Inspector{markers: markers, logger: logger}
}

// InspectSource parses Python source code and extracts workflow metadata.
func (i *Inspector) InspectSource(src []byte) (*meta.Workflow, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(python.GetLanguage())

	tree, err := parser.ParseCtx(context.Background(), nil, src)
	if err != nil {
		return nil, fmt.Errorf("failed to parse source: %w", err)
	}

	return i.InspectTree(tree.RootNode(), src)
}

// InspectFile downloads and inspects a Python source file.
func (i *Inspector) InspectFile(ctx context.Context, URL string) (*meta.Workflow, error) {
	fs := afs.New()
	src, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", URL, err)
	}
	return i.InspectSource(src)
}

// InspectTree extracts workflow metadata from an already-parsed syntax tree.
func (i *Inspector) InspectTree(root *sitter.Node, src []byte) (*meta.Workflow, error) {
	classDef, err := i.findWorkflowClass(root, src)
	if err != nil {
		return nil, err
	}
	className := definitionName(classDef.node, src)

	methodDef, err := i.findEntryMethod(classDef, src)
	if err != nil {
		return nil, err
	}

	wf := &meta.Workflow{
		TypeName:   className,
		MethodName: definitionName(methodDef.node, src),
		IsAsync:    isAsyncDef(methodDef.node),
	}
	i.collectSignalHandlers(classDef, src, wf)

	if body := methodDef.node.ChildByFieldName("body"); body != nil {
		st := &walkState{
			wf:     wf,
			source: src,
			method: wf.MethodName,
			bound:  map[string]branchRef{},
		}
		i.walkNode(body, st, nil)
	}

	i.logger.Info("workflow inspected",
		"workflow", wf.TypeName,
		"method", wf.MethodName,
		"activities", len(wf.Activities),
		"decisions", len(wf.Decisions),
		"signals", len(wf.Signals),
		"childWorkflows", len(wf.ChildWorkflows),
		"externalSignals", len(wf.ExternalSignals),
		"diagnostics", len(wf.Diagnostics))
	return wf, nil
}

// findWorkflowClass locates the class decorated with the entry-type marker.
func (i *Inspector) findWorkflowClass(root *sitter.Node, src []byte) (definition, error) {
	firstClassLine := 1
	sawClass := false
	for _, def := range collectDefinitions(root) {
		if def.node.Type() != "class_definition" {
			continue
		}
		if !sawClass {
			firstClassLine = nodeLine(def.node)
			sawClass = true
		}
		if hasDecorator(def, src, i.markers.EntryType) {
			return def, nil
		}
	}
	return definition{}, &meta.StructuralError{
		Line:       firstClassLine,
		Detail:     "no workflow definition found",
		Suggestion: fmt.Sprintf("annotate the workflow class with @%s", i.markers.EntryType),
	}
}

// findEntryMethod locates the method decorated with the entry-method marker
// inside the workflow class.
func (i *Inspector) findEntryMethod(classDef definition, src []byte) (definition, error) {
	body := classDef.node.ChildByFieldName("body")
	if body != nil {
		for _, def := range collectDefinitions(body) {
			if def.node.Type() != "function_definition" {
				continue
			}
			if hasDecorator(def, src, i.markers.EntryMethod) {
				return def, nil
			}
		}
	}
	return definition{}, &meta.StructuralError{
		Line:       nodeLine(classDef.node),
		Detail:     fmt.Sprintf("workflow %s has no entry method", definitionName(classDef.node, src)),
		Suggestion: fmt.Sprintf("annotate the entry method with @%s", i.markers.EntryMethod),
	}
}

// collectSignalHandlers records methods decorated with the signal-handler
// marker. Handlers are informational only.
func (i *Inspector) collectSignalHandlers(classDef definition, src []byte, wf *meta.Workflow) {
	body := classDef.node.ChildByFieldName("body")
	if body == nil {
		return
	}
	for _, def := range collectDefinitions(body) {
		if def.node.Type() != "function_definition" {
			continue
		}
		if !hasDecorator(def, src, i.markers.SignalHandler) {
			continue
		}
		methodName := definitionName(def.node, src)
		signalName := methodName
		if name, ok := decoratorKeyword(def, src, "name"); ok {
			signalName = name
		}
		wf.SignalHandlers = append(wf.SignalHandlers, meta.SignalHandler{
			SignalName: signalName,
			MethodName: methodName,
			Line:       nodeLine(def.node),
		})
		i.logger.Debug("signal handler detected", "signal", signalName, "method", methodName)
	}
}
