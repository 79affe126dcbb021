package resolve

import (
	"fmt"

	"github.com/ceslang/go-ces/ast"
	"github.com/ceslang/go-ces/ces"
	"github.com/ceslang/go-ces/polynomial"
	"github.com/ceslang/go-ces/rex"
)

// contribution accumulates, per node, the cause and effect polynomials of
// an evaluated sub-expression, plus the set of every mentioned identifier
// so that nodes appearing only on the far side of a rule still materialize.
// Node order follows first mention for deterministic output.
type contribution struct {
	order  []string
	cause  map[string]polynomial.Polynomial
	effect map[string]polynomial.Polynomial
}

func newContribution() *contribution {
	return &contribution{
		cause:  make(map[string]polynomial.Polynomial),
		effect: make(map[string]polynomial.Polynomial),
	}
}

func (c *contribution) mention(id string) {
	if _, ok := c.cause[id]; ok {
		return
	}
	c.cause[id] = polynomial.New()
	c.effect[id] = polynomial.New()
	c.order = append(c.order, id)
}

// addRule folds one thin rule in: every node of the rule's list sends its
// effect polynomial and receives its cause polynomial.
func (c *contribution) addRule(rule rex.ThinArrowRule) {
	for _, n := range rule.Nodes {
		c.mention(n)
		if !rule.Effect.IsEmpty() {
			c.effect[n] = addPoly(c.effect[n], rule.Effect)
		}
		if !rule.Cause.IsEmpty() {
			c.cause[n] = addPoly(c.cause[n], rule.Cause)
		}
	}
	for _, id := range rule.Effect.Flatten() {
		c.mention(id)
	}
	for _, id := range rule.Cause.Flatten() {
		c.mention(id)
	}
}

// merge combines another contribution into this one. Sum branches combine
// per-node polynomials by addition (alternative behavior); product branches
// combine them by multiplication (joint behavior). Nodes present on only
// one side carry over unchanged in either mode.
func (c *contribution) merge(other *contribution, joint bool) {
	for _, id := range other.order {
		c.mention(id)
		c.cause[id] = combinePoly(c.cause[id], other.cause[id], joint)
		c.effect[id] = combinePoly(c.effect[id], other.effect[id], joint)
	}
}

// apply writes the accumulated polynomials into a structure and derives its
// links: each node occurrence in an effect polynomial contributes the
// effect half of a link, each occurrence in a cause polynomial the cause
// half, and halves over the same port pair coalesce into full links.
func (c *contribution) apply(s *ces.Structure) {
	for _, id := range c.order {
		node := s.EnsureNode(id)
		if !c.cause[id].IsEmpty() {
			node.AddCause(c.cause[id])
		}
		if !c.effect[id].IsEmpty() {
			node.AddEffect(c.effect[id])
		}
	}
	for _, id := range c.order {
		for _, target := range c.effect[id].Flatten() {
			s.AddEffectLink(id, target)
		}
		for _, source := range c.cause[id].Flatten() {
			s.AddCauseLink(source, id)
		}
	}
}

func addPoly(p, q polynomial.Polynomial) polynomial.Polynomial {
	if p.IsEmpty() {
		return q
	}
	if q.IsEmpty() {
		return p
	}
	return p.Add(q)
}

func combinePoly(p, q polynomial.Polynomial, joint bool) polynomial.Polynomial {
	if p.IsEmpty() {
		return q
	}
	if q.IsEmpty() {
		return p
	}
	if joint {
		return p.Multiply(q)
	}
	return p.Add(q)
}

// evaluator walks rule expression trees against an immutable registry. The
// visited set tracks the instantiation chain for cycle detection; it is
// seeded with the root name, which also bars instantiating the root from
// anywhere inside the file.
type evaluator struct {
	reg *Registry
}

func (ev *evaluator) eval(node rex.Rex, visited map[string]bool, path []string) (*contribution, error) {
	switch n := node.(type) {
	case *rex.Thin:
		c := newContribution()
		c.addRule(n.Rule)
		return c, nil

	case *rex.Fat:
		// FIT yields a sum of thin rules over pairwise-distinct node
		// lists, so folding them into one accumulator is the sum.
		c := newContribution()
		for _, rule := range n.Rule.FIT() {
			c.addRule(rule)
		}
		return c, nil

	case *rex.Instance:
		return ev.instantiate(n, visited, path)

	case *rex.Sum:
		return ev.evalOperands(n.Operands, false, visited, path)

	case *rex.Product:
		return ev.evalOperands(n.Operands, true, visited, path)

	default:
		return nil, fmt.Errorf("unsupported rule expression node %T", node)
	}
}

func (ev *evaluator) evalOperands(operands []rex.Rex, joint bool, visited map[string]bool, path []string) (*contribution, error) {
	acc := newContribution()
	for _, op := range operands {
		sub, err := ev.eval(op, visited, path)
		if err != nil {
			return nil, err
		}
		acc.merge(sub, joint)
	}
	return acc, nil
}

func (ev *evaluator) instantiate(inst *rex.Instance, visited map[string]bool, path []string) (*contribution, error) {
	if visited[inst.Name] {
		return nil, &CyclicInstantiationError{Name: inst.Name, Path: append([]string(nil), path...)}
	}
	def, ok := ev.reg.Lookup(inst.Name)
	if !ok {
		return nil, &UndefinedStructureError{Name: inst.Name}
	}

	body := def.Body
	if def.IsTemplate() {
		env, err := bindArguments(def, inst.Args)
		if err != nil {
			return nil, err
		}
		body = substitute(body, env)
	} else if len(inst.Args) != 0 {
		return nil, &ArityOrTypeMismatchError{Name: inst.Name, WantArity: 0, GotArity: len(inst.Args)}
	}

	visited[inst.Name] = true
	defer delete(visited, inst.Name)

	c, err := ev.eval(body, visited, append(path, inst.Name))
	if err != nil {
		return nil, fmt.Errorf("instantiating %q: %w", inst.Name, err)
	}
	return c, nil
}

// bindArguments checks the call against the declared parameter list and
// builds the substitution environment.
func bindArguments(def *ast.StructureDef, args []rex.Arg) (map[string]rex.Arg, error) {
	if len(args) != len(def.Params) {
		return nil, &ArityOrTypeMismatchError{
			Name:      def.Name,
			WantArity: len(def.Params),
			GotArity:  len(args),
		}
	}
	env := make(map[string]rex.Arg, len(args))
	for i, param := range def.Params {
		arg := args[i]
		var want rex.ArgKind
		switch param.Kind {
		case ast.NodeParam, ast.CesParam:
			want = rex.ArgIdentifier
		case ast.SizeParam:
			want = rex.ArgSize
		default:
			want = rex.ArgName
		}
		if arg.Kind != want {
			return nil, &ArityOrTypeMismatchError{
				Name:     def.Name,
				Param:    param.Name,
				WantKind: param.Kind.String(),
				GotKind:  arg.Kind.String(),
			}
		}
		env[param.Name] = arg
	}
	return env, nil
}

// substitute replaces every parameter occurrence in a body expression,
// returning a freshly built tree. The registered body is never mutated, so
// repeated instantiations of one template cannot alias each other.
func substitute(node rex.Rex, env map[string]rex.Arg) rex.Rex {
	switch n := node.(type) {
	case *rex.Thin:
		rule := n.Rule
		var ids []string
		for _, id := range rule.Nodes {
			ids = append(ids, renameID(id, env))
		}
		return &rex.Thin{Rule: rex.ThinArrowRule{
			Nodes:  polynomial.NewNodeList(ids...),
			Cause:  renamePoly(rule.Cause, env),
			Effect: renamePoly(rule.Effect, env),
		}}

	case *rex.Fat:
		parts := make([]rex.FatPart, len(n.Rule.Parts))
		for i, part := range n.Rule.Parts {
			parts[i] = rex.FatPart{
				Cause:  renamePoly(part.Cause, env),
				Effect: renamePoly(part.Effect, env),
			}
		}
		return &rex.Fat{Rule: rex.FatArrowRule{Parts: parts}}

	case *rex.Instance:
		name := n.Name
		if arg, ok := env[name]; ok && arg.Kind == rex.ArgIdentifier {
			name = arg.Identifier
		}
		args := make([]rex.Arg, len(n.Args))
		for i, arg := range n.Args {
			if arg.Kind == rex.ArgIdentifier {
				if bound, ok := env[arg.Identifier]; ok {
					args[i] = bound
					continue
				}
			}
			args[i] = arg
		}
		return &rex.Instance{Name: name, Args: args}

	case *rex.Sum:
		return &rex.Sum{Operands: substituteAll(n.Operands, env)}

	case *rex.Product:
		return &rex.Product{Operands: substituteAll(n.Operands, env)}

	default:
		return node
	}
}

func substituteAll(operands []rex.Rex, env map[string]rex.Arg) []rex.Rex {
	out := make([]rex.Rex, len(operands))
	for i, op := range operands {
		out[i] = substitute(op, env)
	}
	return out
}

func renameID(id string, env map[string]rex.Arg) string {
	if arg, ok := env[id]; ok && arg.Kind == rex.ArgIdentifier {
		return arg.Identifier
	}
	return id
}

func renamePoly(p polynomial.Polynomial, env map[string]rex.Arg) polynomial.Polynomial {
	if p.IsEmpty() {
		return p
	}
	monos := p.Monomials()
	for _, m := range monos {
		for i, id := range m {
			m[i] = renameID(id, env)
		}
	}
	return polynomial.FromParts(monos, p.IsPlain())
}
