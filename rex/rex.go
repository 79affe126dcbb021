// Package rex implements rule expressions for cause-effect structures:
// thin and fat arrow rules, their composition by addition and implicit
// multiplication, the FIT (fat-into-thin) normalization, and the derivation
// of ports and links from individual rules.
package rex

import (
	"fmt"

	"github.com/ceslang/go-ces/polynomial"
)

// Rex is a node of a rule expression tree. Leaves are thin arrow rules, fat
// arrow rules, and structure instantiations; interior nodes combine
// sub-expressions by addition (alternative) or implicit multiplication
// (joint composition).
type Rex interface {
	rexNode()
}

// Thin wraps a single thin arrow rule.
type Thin struct {
	Rule ThinArrowRule
}

// Fat wraps a single fat arrow rule.
type Fat struct {
	Rule FatArrowRule
}

// Instance references a structure definition by name, with bound arguments
// for the templated form. A zero-argument Instance is the immediate form.
type Instance struct {
	Name string
	Args []Arg
}

// Sum combines alternative sub-expressions.
type Sum struct {
	Operands []Rex
}

// Product combines jointly composed sub-expressions.
type Product struct {
	Operands []Rex
}

func (*Thin) rexNode()     {}
func (*Fat) rexNode()      {}
func (*Instance) rexNode() {}
func (*Sum) rexNode()      {}
func (*Product) rexNode()  {}

// ArgKind is the syntactic category of an instantiation argument.
type ArgKind int

const (
	// ArgIdentifier is a bare identifier: a node or structure reference.
	ArgIdentifier ArgKind = iota
	// ArgSize is an unsigned integer literal.
	ArgSize
	// ArgName is a quoted string literal.
	ArgName
)

func (k ArgKind) String() string {
	switch k {
	case ArgIdentifier:
		return "identifier"
	case ArgSize:
		return "size"
	default:
		return "name"
	}
}

// Arg is one bound template argument.
type Arg struct {
	Kind       ArgKind
	Identifier string
	Size       uint64
	Name       string
}

// Identifier returns an identifier argument.
func Identifier(id string) Arg { return Arg{Kind: ArgIdentifier, Identifier: id} }

// Size returns a size-literal argument.
func Size(v uint64) Arg { return Arg{Kind: ArgSize, Size: v} }

// Name returns a name-literal argument.
func Name(s string) Arg { return Arg{Kind: ArgName, Name: s} }

// ThinArrowRule pairs an explicit node list with cause and/or effect
// polynomials. The six surface shapes (effect-only, cause-only,
// cause-then-effect, effect-then-cause, forward, backward) all reduce to
// which of the two polynomials are present. A thin rule taken in isolation
// may leave a structure incoherent; coherence is judged over the whole
// resolved expression.
type ThinArrowRule struct {
	Nodes  polynomial.NodeList
	Cause  polynomial.Polynomial
	Effect polynomial.Polynomial
}

// NewThinRule builds a thin rule from a node-list polynomial. It fails with
// *polynomial.InvalidNodeListError when nodes is not plain.
func NewThinRule(nodes polynomial.Polynomial) (ThinArrowRule, error) {
	list, err := nodes.NodeList()
	if err != nil {
		return ThinArrowRule{}, err
	}
	return ThinArrowRule{Nodes: list}, nil
}

// WithCause returns a copy carrying the cause polynomial.
func (r ThinArrowRule) WithCause(cause polynomial.Polynomial) ThinArrowRule {
	r.Cause = cause
	return r
}

// WithEffect returns a copy carrying the effect polynomial.
func (r ThinArrowRule) WithEffect(effect polynomial.Polynomial) ThinArrowRule {
	r.Effect = effect
	return r
}

func (r ThinArrowRule) String() string {
	switch {
	case r.Cause.IsEmpty() && r.Effect.IsEmpty():
		return r.Nodes.String()
	case r.Cause.IsEmpty():
		return fmt.Sprintf("%s -> %s", r.Nodes, r.Effect)
	case r.Effect.IsEmpty():
		return fmt.Sprintf("%s <- %s", r.Nodes, r.Cause)
	default:
		return fmt.Sprintf("%s -> %s <- %s", r.Cause, r.Nodes, r.Effect)
	}
}

// FatOp is a directional operator joining the polynomials of a fat rule
// chain.
type FatOp int

const (
	// FatTx is the forward operator "=>".
	FatTx FatOp = iota
	// FatRx is the backward operator "<=".
	FatRx
	// FatDx is the bidirectional operator "<=>".
	FatDx
)

func (op FatOp) String() string {
	switch op {
	case FatTx:
		return "=>"
	case FatRx:
		return "<="
	default:
		return "<=>"
	}
}

// FatPart is one binary cause-effect step of a fat rule.
type FatPart struct {
	Cause  polynomial.Polynomial
	Effect polynomial.Polynomial
}

// FatArrowRule is a chain of two or more polynomials joined by directional
// operators, decomposed into binary parts. A bidirectional step contributes
// a part for each direction.
type FatArrowRule struct {
	Parts []FatPart
}

// ChainStep is one "op polynomial" element of a fat rule chain tail.
type ChainStep struct {
	Op   FatOp
	Poly polynomial.Polynomial
}

// NewFatRule decomposes a chain head op1 P1 op2 P2 ... into binary parts,
// pairing each adjacent polynomial pair under its operator's direction.
// The tail must be non-empty: a single polynomial is not a rule.
func NewFatRule(head polynomial.Polynomial, tail []ChainStep) (FatArrowRule, error) {
	if len(tail) == 0 {
		return FatArrowRule{}, fmt.Errorf("fat arrow rule needs at least two polynomials")
	}
	var far FatArrowRule
	prev := head
	for _, step := range tail {
		switch step.Op {
		case FatTx:
			far.Parts = append(far.Parts, FatPart{Cause: prev, Effect: step.Poly})
		case FatRx:
			far.Parts = append(far.Parts, FatPart{Cause: step.Poly, Effect: prev})
		case FatDx:
			far.Parts = append(far.Parts,
				FatPart{Cause: prev, Effect: step.Poly},
				FatPart{Cause: step.Poly, Effect: prev})
		default:
			return FatArrowRule{}, fmt.Errorf("operator %v not allowed in a fat arrow rule", step.Op)
		}
		prev = step.Poly
	}
	return far, nil
}
