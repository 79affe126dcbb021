package resolve

import (
	"sort"

	"github.com/ceslang/go-ces/ast"
)

// Registry is the immutable name-to-definition map of one source file. It
// is built once per resolution and passed by reference into instantiation,
// never kept as shared process state, so independent files resolve in
// parallel without coordination.
type Registry struct {
	defs map[string]*ast.StructureDef
}

// NewRegistry collects the file's structure definitions in a single pass.
// A repeated name fails with *DuplicateNameError.
func NewRegistry(file *ast.File) (*Registry, error) {
	defs := make(map[string]*ast.StructureDef, len(file.Structures))
	for _, def := range file.Structures {
		if _, ok := defs[def.Name]; ok {
			return nil, &DuplicateNameError{Name: def.Name}
		}
		defs[def.Name] = def
	}
	return &Registry{defs: defs}, nil
}

// Lookup returns the definition registered under name.
func (r *Registry) Lookup(name string) (*ast.StructureDef, bool) {
	def, ok := r.defs[name]
	return def, ok
}

// Names returns all registered names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.defs))
	for name := range r.defs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
