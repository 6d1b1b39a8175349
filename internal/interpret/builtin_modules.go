package interpret

import "strings"

// builtinPrefixes is a prefix-match table in the style of the
// teacher's core.FrameworkDefinition/builtinFrameworks list
// (graph/callgraph/core/frameworks.go), narrowed from "known
// third-party framework" to "known standard-library module" for the
// Path Resolver's final resolution stage.
var builtinPrefixes = []string{
	"node:",                                      // Node.js built-in module protocol
	"fmt", "os", "io", "net", "net/http", "time", // common Go stdlib roots (unqualified == no dot)
	"context", "strings", "strconv", "sync", "errors", "bytes",
	"sys", "os.path", "json", "re", "collections", "itertools", // common Python stdlib
	"typing", "dataclasses", "asyncio", "unittest",
}

// isBuiltinModule reports whether raw matches a known standard-library
// entry, either by exact name or by "prefix." containment.
func isBuiltinModule(raw string) bool {
	for _, p := range builtinPrefixes {
		if raw == p || strings.HasPrefix(raw, p+".") || strings.HasPrefix(raw, p+"/") {
			return true
		}
	}
	return false
}
