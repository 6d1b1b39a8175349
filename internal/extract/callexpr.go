package extract

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/codepathfinder/depgraph/internal/lang"
)

// callSpec describes how to find call expressions in one language's
// grammar and pull a callee's written form (raw) and unqualified name
// (simple, the part a same-file direct-call lookup matches against).
type callSpec struct {
	callTypes []string
	calleeOf  func(n *sitter.Node, content []byte) (raw, simple string)
}

func callSpecFor(l lang.Language) *callSpec {
	switch l {
	case lang.Go:
		return &callSpec{callTypes: []string{"call_expression"}, calleeOf: goCalleeName}
	case lang.Java:
		return &callSpec{callTypes: []string{"method_invocation"}, calleeOf: javaCalleeName}
	case lang.Python:
		return &callSpec{callTypes: []string{"call"}, calleeOf: pythonCalleeName}
	case lang.JavaScript, lang.TypeScript:
		return &callSpec{callTypes: []string{"call_expression"}, calleeOf: jsCalleeName}
	}
	return nil
}

func goCalleeName(n *sitter.Node, content []byte) (string, string) {
	fn := n.ChildByFieldName("function")
	if fn == nil {
		return "", ""
	}
	raw := fn.Content(content)
	if fn.Type() == "selector_expression" {
		if field := fn.ChildByFieldName("field"); field != nil {
			return raw, field.Content(content)
		}
	}
	return raw, raw
}

func javaCalleeName(n *sitter.Node, content []byte) (string, string) {
	name := n.ChildByFieldName("name")
	if name == nil {
		return "", ""
	}
	simple := name.Content(content)
	raw := simple
	if obj := n.ChildByFieldName("object"); obj != nil {
		raw = obj.Content(content) + "." + simple
	}
	return raw, simple
}

func pythonCalleeName(n *sitter.Node, content []byte) (string, string) {
	fn := n.ChildByFieldName("function")
	if fn == nil {
		return "", ""
	}
	raw := fn.Content(content)
	if fn.Type() == "attribute" {
		if attr := fn.ChildByFieldName("attribute"); attr != nil {
			return raw, attr.Content(content)
		}
	}
	return raw, raw
}

func jsCalleeName(n *sitter.Node, content []byte) (string, string) {
	fn := n.ChildByFieldName("function")
	if fn == nil {
		return "", ""
	}
	raw := fn.Content(content)
	if fn.Type() == "member_expression" {
		if prop := fn.ChildByFieldName("property"); prop != nil {
			return raw, prop.Content(content)
		}
	}
	return raw, raw
}
