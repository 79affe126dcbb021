// Package ast defines the file-level input contract of the resolution
// engine: structure definitions, template parameters, and context
// declaration blocks, as produced by an external grammar front end. The
// engine performs no text parsing; it consumes these already-typed values
// and only re-checks what it needs defensively, such as plainness of
// node-list operands.
package ast

import (
	"github.com/ceslang/go-ces/ces"
	"github.com/ceslang/go-ces/polynomial"
	"github.com/ceslang/go-ces/rex"
)

// File is the complete content of one .ces source file. Declaration order
// is preserved: later context declarations for the same key override
// earlier ones.
type File struct {
	Structures  []*StructureDef
	Labels      []LabelDecl
	Capacities  []CapacityDecl
	Multipliers []MultiplierDecl
	Inhibitors  []InhibitorDecl
}

// ParamKind is the declared kind of a template parameter.
type ParamKind int

const (
	// NodeParam binds a node identifier.
	NodeParam ParamKind = iota
	// CesParam binds the name of another structure definition.
	CesParam
	// SizeParam binds an unsigned integer literal.
	SizeParam
	// NameParam binds a quoted string literal.
	NameParam
)

func (k ParamKind) String() string {
	switch k {
	case NodeParam:
		return "node"
	case CesParam:
		return "ces"
	case SizeParam:
		return "size"
	default:
		return "name"
	}
}

// Param is one declared template parameter.
type Param struct {
	Name string
	Kind ParamKind
}

// StructureDef is a named, optionally templated structure definition. It is
// immutable once registered: instantiation never mutates the body, it
// substitutes into a fresh copy.
type StructureDef struct {
	Name   string
	Params []Param
	Body   rex.Rex
}

// IsTemplate reports whether the definition declares parameters.
func (d *StructureDef) IsTemplate() bool {
	return len(d.Params) > 0
}

// Face selects which side of a node a context declaration addresses,
// mirroring the two port polarities.
type Face int

const (
	// Tx addresses the sending face: the declaration's node set relates to
	// a post-set it transmits to.
	Tx Face = iota
	// Rx addresses the receiving face: the declaration's node set relates
	// to a pre-set it receives from.
	Rx
)

func (f Face) String() string {
	if f == Tx {
		return "tx"
	}
	return "rx"
}

// LabelDecl overrides the display label of one node.
type LabelDecl struct {
	Node  string
	Label string
}

// CapacityDecl sets the capacity of every node in a node-list polynomial.
// The polynomial must be plain; the merger rejects it otherwise.
type CapacityDecl struct {
	Nodes    polynomial.Polynomial
	Capacity ces.Capacity
}

// MultiplierDecl overrides the weight of the links between a node set and
// its suit set. For Tx the links run from each node to every member of the
// suit; for Rx from every member of the suit to each node.
type MultiplierDecl struct {
	Face   Face
	Nodes  polynomial.Polynomial
	Suit   polynomial.Polynomial
	Weight uint64
}

// InhibitorDecl declares inhibitor arcs between a node set and its suit
// set, oriented like MultiplierDecl. Inhibitors are purely additive and
// carry no weight.
type InhibitorDecl struct {
	Face  Face
	Nodes polynomial.Polynomial
	Suit  polynomial.Polynomial
}
