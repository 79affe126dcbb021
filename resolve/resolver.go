// Package resolve turns the typed AST of one .ces source file into a
// canonical, validated cause-effect structure. It hosts the structure
// registry, template instantiation, rule expression evaluation, context
// merging, and the per-file resolution pipeline.
//
// Resolution is a deterministic, purely functional transformation: each
// call builds its own registry and accumulators, so any number of files may
// be resolved concurrently with no shared state.
package resolve

import (
	"fmt"
	"log/slog"

	"github.com/ceslang/go-ces/ast"
	"github.com/ceslang/go-ces/ces"
	"github.com/ceslang/go-ces/rex"
	"github.com/ceslang/go-ces/validation"
)

// DefaultRoot is the implicit root structure name.
const DefaultRoot = "Main"

// Resolver resolves source files into structures.
type Resolver struct {
	root   string
	policy validation.Policy
	logger *slog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithRoot overrides the root structure name.
func WithRoot(name string) Option {
	return func(r *Resolver) { r.root = name }
}

// WithPolicy sets the coherence acceptance policy.
func WithPolicy(policy validation.Policy) Option {
	return func(r *Resolver) { r.policy = policy }
}

// WithLogger sets the structured logger used for per-phase reporting.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) { r.logger = logger }
}

// NewResolver creates a resolver with the given options.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{
		root:   DefaultRoot,
		policy: validation.Permissive,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve compiles one file into its structure. Resolution is
// all-or-nothing: any semantic error aborts the file and no partial
// structure escapes. Under the strict policy a candidate dangling node is
// such an error; otherwise it is reported through the validation result
// obtainable from the finished structure.
func (r *Resolver) Resolve(file *ast.File) (*ces.Structure, error) {
	reg, err := NewRegistry(file)
	if err != nil {
		return nil, err
	}
	r.logger.Debug("registry built", "definitions", len(reg.Names()), "root", r.root)

	rootDef, ok := reg.Lookup(r.root)
	if !ok {
		return nil, &MissingRootError{Root: r.root}
	}
	if rootDef.IsTemplate() {
		return nil, fmt.Errorf("root structure %q must not declare parameters", r.root)
	}

	// Seeding the visited set with the root bars instantiating it from
	// anywhere in the file and doubles as the base of cycle detection.
	ev := &evaluator{reg: reg}
	visited := map[string]bool{r.root: true}
	contrib, err := ev.eval(rootDef.Body, visited, []string{r.root})
	if err != nil {
		return nil, fmt.Errorf("resolving %q: %w", r.root, err)
	}

	structure := ces.NewStructure(r.root)
	contrib.apply(structure)
	r.logger.Debug("root evaluated",
		"structure", structure.ID,
		"nodes", structure.NodeCount(),
		"links", len(structure.Links()))

	if err := mergeContext(file, structure); err != nil {
		return nil, err
	}

	result := validation.Validate(structure, r.policy)
	for _, issue := range result.Warnings {
		r.logger.Warn(issue.Message, "category", issue.Category, "location", issue.Location)
	}
	if !result.Valid {
		if dangling := validation.DanglingNodes(structure); len(dangling) > 0 {
			return nil, &IncoherentStructureError{Nodes: dangling}
		}
		return nil, fmt.Errorf("structure %q failed validation: %s",
			r.root, result.Errors[0].Message)
	}

	r.logger.Info("file resolved",
		"structure", structure.ID,
		"root", r.root,
		"nodes", structure.NodeCount(),
		"links", len(structure.Links()),
		"inhibitors", len(structure.Inhibitors()))
	return structure, nil
}

// Evaluate resolves a bare rule expression against a registry into a fresh
// structure without context merging or validation. It serves callers that
// compose structures programmatically.
func (r *Resolver) Evaluate(reg *Registry, expr rex.Rex) (*ces.Structure, error) {
	ev := &evaluator{reg: reg}
	contrib, err := ev.eval(expr, map[string]bool{}, nil)
	if err != nil {
		return nil, err
	}
	structure := ces.NewStructure(r.root)
	contrib.apply(structure)
	return structure, nil
}
