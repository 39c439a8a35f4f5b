package python

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// calleeIdentity returns the dotted callee text of a call expression,
// e.g. "workflow.execute_activity".
func calleeIdentity(call *sitter.Node, source []byte) string {
	fn := call.ChildByFieldName("function")
	if fn == nil {
		return ""
	}
	return fn.Content(source)
}

// lastSegment extracts the trailing identifier of a dotted name,
// e.g. "workflow.execute_activity" -> "execute_activity".
func lastSegment(name string) string {
	if idx := strings.LastIndex(name, "."); idx != -1 {
		return name[idx+1:]
	}
	return name
}

// matchesAny reports whether a callee identity matches one of the configured
// marker names, either exactly or by last segment.
func matchesAny(callee string, names []string) bool {
	for _, name := range names {
		if callee == name || lastSegment(callee) == lastSegment(name) {
			return true
		}
	}
	return false
}

// unwrap strips await and parenthesized wrappers from an expression node.
func unwrap(node *sitter.Node) *sitter.Node {
	for node != nil {
		switch node.Type() {
		case "await", "parenthesized_expression", "expression_statement":
			node = node.NamedChild(0)
		default:
			return node
		}
	}
	return nil
}

// positionalArgs returns the non-keyword arguments of a call expression.
func positionalArgs(call *sitter.Node) []*sitter.Node {
	arguments := call.ChildByFieldName("arguments")
	if arguments == nil {
		return nil
	}
	var args []*sitter.Node
	for j := 0; j < int(arguments.NamedChildCount()); j++ {
		arg := arguments.NamedChild(j)
		switch arg.Type() {
		case "keyword_argument", "comment":
			continue
		}
		args = append(args, arg)
	}
	return args
}

// unquote removes Python string quoting, including triple quotes and
// f/r/b/u prefixes.
func unquote(raw string) string {
	raw = strings.TrimLeft(raw, "rbfuRBFU")
	for _, q := range []string{`"""`, `'''`, `"`, `'`} {
		if strings.HasPrefix(raw, q) && strings.HasSuffix(raw, q) && len(raw) >= 2*len(q) {
			return raw[len(q) : len(raw)-len(q)]
		}
	}
	return raw
}

// stepTarget derives a display name from the first positional argument of a
// marker call: string literals verbatim, identifiers by name, attribute
// references by their last segment with a trailing ".run" stripped.
func stepTarget(call *sitter.Node, source []byte) (string, bool) {
	args := positionalArgs(call)
	if len(args) == 0 {
		return "", false
	}
	switch arg := args[0]; arg.Type() {
	case "string":
		return unquote(arg.Content(source)), true
	case "identifier":
		return arg.Content(source), true
	case "attribute":
		text := strings.TrimSuffix(arg.Content(source), ".run")
		return lastSegment(text), true
	}
	return "", false
}

// literalName extracts a string-literal display name from the first
// positional argument. The second result reports whether the call has any
// positional argument at all, used to distinguish a malformed name from an
// absent one.
func literalName(call *sitter.Node, source []byte) (name string, isLiteral, hasArg bool) {
	args := positionalArgs(call)
	if len(args) == 0 {
		return "", false, false
	}
	if args[0].Type() == "string" {
		return unquote(args[0].Content(source)), true, true
	}
	return "", false, true
}

// nodeLine returns the 1-based source line of a node.
func nodeLine(node *sitter.Node) int {
	return int(node.StartPoint().Row) + 1
}
