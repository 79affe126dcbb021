// Package templates provides common cause-effect structure patterns
package templates

import (
	"fmt"

	"github.com/ceslang/go-ces/ast"
)

// Template defines a parameterized structure pattern. Generate returns an
// AST document ready to resolve from the Main root.
type Template interface {
	Name() string
	Description() string
	Parameters() []Parameter
	Generate(params map[string]interface{}) (*ast.File, error)
}

// Parameter defines a template parameter
type Parameter struct {
	Name        string
	Description string
	Type        string // "int", "string"
	Default     interface{}
	Required    bool
	Min         *float64 // For numeric types
	Max         *float64
}

// Registry holds all available templates
var Registry = map[string]Template{
	"arrow":     &ArrowTemplate{},
	"cycle":     &CycleTemplate{},
	"fork-join": &ForkJoinTemplate{},
	"choice":    &ChoiceTemplate{},
	"pipeline":  &PipelineTemplate{},
}

// Get returns a template by name
func Get(name string) (Template, error) {
	t, ok := Registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown template: %s", name)
	}
	return t, nil
}

// List returns all available template names
func List() []string {
	names := make([]string, 0, len(Registry))
	for name := range Registry {
		names = append(names, name)
	}
	return names
}

func getIntParam(params map[string]interface{}, name string, def int) int {
	v, ok := params[name]
	if !ok {
		return def
	}
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		return def
	}
}
