// Package interpret implements interpreters: small, pure transforms
// over extractor output, registered and dispatched the same way
// internal/extract registers extractors.
package interpret

import "sync"

// Context carries the per-file state an Interpreter may need: a
// per-build resolution context (module registry + alias table)
// threaded through its resolution strategies.
type Context struct {
	FilePath    string
	Language    string
	ProjectRoot string
	Aliases     map[string]string
	Packages    map[string]bool
	Options     map[string]any
}

// Interpreter is the contract every built-in and registered interpreter implements.
type Interpreter interface {
	Name() string
	Version() string
	Supports(dataType string) bool
	Interpret(input any, ctx Context) (any, error)
}

// Registry holds interpreters by name, dispatched by data type.
type Registry struct {
	mu           sync.RWMutex
	interpreters map[string]Interpreter
}

// NewRegistry builds a registry preloaded with every built-in interpreter.
func NewRegistry() *Registry {
	r := &Registry{interpreters: make(map[string]Interpreter)}
	r.Register(NewPathResolver())
	r.Register(NewDependencySummary())
	r.Register(NewIdentifierAnalysis())
	r.Register(NewCallResolver())
	r.Register(NewCallSummary())
	return r
}

// Register installs or replaces an interpreter by name.
func (r *Registry) Register(i Interpreter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.interpreters[i.Name()] = i
}

// Unregister removes an interpreter by name.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.interpreters, name)
}

// For returns the registered interpreters that support dataType.
func (r *Registry) For(dataType string) []Interpreter {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Interpreter
	for _, i := range r.interpreters {
		if i.Supports(dataType) {
			out = append(out, i)
		}
	}
	return out
}

// Get returns a named interpreter.
func (r *Registry) Get(name string) (Interpreter, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i, ok := r.interpreters[name]
	return i, ok
}
