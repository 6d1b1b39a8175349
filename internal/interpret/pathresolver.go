package interpret

import (
	"path"
	"strings"
)

// ResolvedImport is the Path Resolver's output: the original text plus
// what it was staged-resolved to.
type ResolvedImport struct {
	Raw          string
	ResolvedPath string
	Kind         string // relative/alias/package/builtin/unknown
	Resolved     bool
}

// PathResolver implements the staged resolution strategy of the
// teacher's graph/callgraph/resolution package: relative path first,
// then an alias table, then the project's own package catalog, then a
// built-in module table, generalized here from call-target resolution
// to import-path resolution.
type PathResolver struct{}

// NewPathResolver builds the path resolver interpreter.
func NewPathResolver() *PathResolver { return &PathResolver{} }

func (p *PathResolver) Name() string    { return "path-resolver" }
func (p *PathResolver) Version() string { return "1.0.0" }

func (p *PathResolver) Supports(dataType string) bool { return dataType == "import-path" }

func (p *PathResolver) Interpret(input any, ctx Context) (any, error) {
	raw, ok := input.(string)
	if !ok {
		return nil, errInvalidInput("path-resolver", "string", input)
	}

	if strings.HasPrefix(raw, ".") {
		dir := path.Dir(ctx.FilePath)
		resolved := path.Clean(path.Join(dir, raw))
		return ResolvedImport{Raw: raw, ResolvedPath: resolved, Kind: "relative", Resolved: true}, nil
	}

	for prefix, target := range ctx.Aliases {
		if raw == prefix || strings.HasPrefix(raw, prefix+"/") {
			resolved := target + strings.TrimPrefix(raw, prefix)
			return ResolvedImport{Raw: raw, ResolvedPath: resolved, Kind: "alias", Resolved: true}, nil
		}
	}

	if ctx.Packages[raw] {
		return ResolvedImport{Raw: raw, ResolvedPath: raw, Kind: "package", Resolved: true}, nil
	}

	if isBuiltinModule(raw) {
		return ResolvedImport{Raw: raw, Kind: "builtin", Resolved: true}, nil
	}

	return ResolvedImport{Raw: raw, Kind: "unknown", Resolved: false}, nil
}
