package interpret

import "strings"

// frameworkCall is one known third-party entry point's call-prefix
// table entry, narrowed from core.FrameworkDefinition (which also
// tracks import prefixes and a category) down to the single field the
// Call Resolver's framework-known stage needs.
type frameworkCall struct {
	name     string
	prefixes []string
}

var knownFrameworkCalls = []frameworkCall{
	{name: "Django", prefixes: []string{"django."}},
	{name: "Flask", prefixes: []string{"flask.", "app.route", "app.run"}},
	{name: "FastAPI", prefixes: []string{"fastapi."}},
	{name: "SQLAlchemy", prefixes: []string{"session.query", "session.add", "session.commit"}},
	{name: "React", prefixes: []string{"React.", "useState", "useEffect", "useContext", "useMemo", "useCallback"}},
	{name: "Express", prefixes: []string{"express.", "router.get", "router.post"}},
	{name: "JUnit", prefixes: []string{"assertEquals", "assertTrue", "assertFalse", "assertNotNull"}},
	{name: "Spring", prefixes: []string{"ResponseEntity.", "@Autowired"}},
	{name: "testify", prefixes: []string{"assert.", "require."}},
}

// classifyFrameworkCall reports whether raw matches a well-known
// framework entry point, for callees the direct and alias stages
// couldn't resolve but that aren't meaningfully "missing" either.
func classifyFrameworkCall(raw string) (string, bool) {
	for _, f := range knownFrameworkCalls {
		for _, p := range f.prefixes {
			if raw == p || strings.HasPrefix(raw, p) {
				return f.name, true
			}
		}
	}
	return "", false
}
