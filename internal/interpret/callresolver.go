package interpret

import "strings"

// ResolvedCall is the Call Resolver's output for a callee the
// call-site extractor's direct (same-file) stage couldn't match.
type ResolvedCall struct {
	Raw      string
	Target   string
	Stage    string // alias/framework-known/unresolved
	Resolved bool
}

// CallResolver carries a callee through the remaining stages of
// graph/callgraph/resolution's staged call-target resolution: an
// alias-table lookup, then a known-framework prefix match, then the
// builtin-module table (also reported as the framework-known stage),
// then gives up. The direct (same-file) stage runs inside the call-site extractor
// itself, since it needs the file's own declaration table rather than
// anything this interpreter's Context carries.
type CallResolver struct{}

// NewCallResolver builds the call resolver interpreter.
func NewCallResolver() *CallResolver { return &CallResolver{} }

func (c *CallResolver) Name() string    { return "call-resolver" }
func (c *CallResolver) Version() string { return "1.0.0" }

func (c *CallResolver) Supports(dataType string) bool { return dataType == "call-target" }

func (c *CallResolver) Interpret(input any, ctx Context) (any, error) {
	raw, ok := input.(string)
	if !ok {
		return nil, errInvalidInput("call-resolver", "string", input)
	}

	for prefix, target := range ctx.Aliases {
		if raw == prefix || strings.HasPrefix(raw, prefix+".") || strings.HasPrefix(raw, prefix+"/") {
			resolved := target + strings.TrimPrefix(raw, prefix)
			return ResolvedCall{Raw: raw, Target: resolved, Stage: "alias", Resolved: true}, nil
		}
	}

	if name, ok := classifyFrameworkCall(raw); ok {
		return ResolvedCall{Raw: raw, Target: name, Stage: "framework-known", Resolved: true}, nil
	}
	if isBuiltinModule(raw) {
		return ResolvedCall{Raw: raw, Target: raw, Stage: "framework-known", Resolved: true}, nil
	}

	return ResolvedCall{Raw: raw, Stage: "unresolved", Resolved: false}, nil
}
