package python

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// definition pairs a class or function node with its decorator nodes.
type definition struct {
	node       *sitter.Node
	decorators []*sitter.Node
}

// collectDefinitions gathers class and function definitions from a module or
// class body, unwrapping decorated_definition nodes.
func collectDefinitions(parent *sitter.Node) []definition {
	var defs []definition
	for j := 0; j < int(parent.NamedChildCount()); j++ {
		child := parent.NamedChild(j)
		switch child.Type() {
		case "decorated_definition":
			def := child.ChildByFieldName("definition")
			if def == nil {
				continue
			}
			var decorators []*sitter.Node
			for k := 0; k < int(child.NamedChildCount()); k++ {
				c := child.NamedChild(k)
				if c.Type() == "decorator" {
					decorators = append(decorators, c)
				}
			}
			defs = append(defs, definition{node: def, decorators: decorators})
		case "class_definition", "function_definition":
			defs = append(defs, definition{node: child})
		}
	}
	return defs
}

// decoratorIdentity returns the dotted name of a decorator, unwrapping a
// call form such as @workflow.defn(name="Order").
func decoratorIdentity(dec *sitter.Node, source []byte) string {
	expr := dec.NamedChild(0)
	if expr == nil {
		return ""
	}
	if expr.Type() == "call" {
		return calleeIdentity(expr, source)
	}
	return expr.Content(source)
}

// hasDecorator reports whether any decorator matches the configured marker,
// either by full dotted name or by last segment.
func hasDecorator(def definition, source []byte, marker string) bool {
	for _, dec := range def.decorators {
		identity := decoratorIdentity(dec, source)
		if identity == marker || lastSegment(identity) == lastSegment(marker) {
			return true
		}
	}
	return false
}

// decoratorKeyword extracts a string-literal keyword argument from a
// decorator call form, e.g. name in @workflow.signal(name="approve").
func decoratorKeyword(def definition, source []byte, keyword string) (string, bool) {
	for _, dec := range def.decorators {
		expr := dec.NamedChild(0)
		if expr == nil || expr.Type() != "call" {
			continue
		}
		arguments := expr.ChildByFieldName("arguments")
		if arguments == nil {
			continue
		}
		for j := 0; j < int(arguments.NamedChildCount()); j++ {
			arg := arguments.NamedChild(j)
			if arg.Type() != "keyword_argument" {
				continue
			}
			nameNode := arg.ChildByFieldName("name")
			valueNode := arg.ChildByFieldName("value")
			if nameNode == nil || valueNode == nil {
				continue
			}
			if nameNode.Content(source) == keyword && valueNode.Type() == "string" {
				return unquote(valueNode.Content(source)), true
			}
		}
	}
	return "", false
}

// definitionName returns the name of a class or function definition.
func definitionName(node *sitter.Node, source []byte) string {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return ""
	}
	return nameNode.Content(source)
}

// isAsyncDef reports whether a function definition carries the async keyword.
func isAsyncDef(node *sitter.Node) bool {
	for j := 0; j < int(node.ChildCount()); j++ {
		if node.Child(j).Type() == "async" {
			return true
		}
	}
	return false
}
