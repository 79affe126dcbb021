// Package parser handles JSON import of AST documents and JSON export of
// compiled structures. An AST document is the interchange form an external
// grammar front end emits after parsing .ces source text; this package does
// no text parsing of its own.
package parser

import (
	"encoding/json"
	"fmt"

	"github.com/ceslang/go-ces/ast"
	"github.com/ceslang/go-ces/ces"
	"github.com/ceslang/go-ces/polynomial"
	"github.com/ceslang/go-ces/rex"
)

// FromJSON decodes an AST document. The format is:
//
//	{
//	  "structures": [
//	    {"name": "Arrow",
//	     "params": [{"name": "x", "kind": "node"}],
//	     "body": {"fat": {"head": {"monomials": [["x"]], "plain": true},
//	              "tail": [{"op": "=>", "poly": {"monomials": [["y"]], "plain": true}}]}}}
//	  ],
//	  "labels": [{"node": "a", "label": "source"}],
//	  "capacities": [{"nodes": {...}, "capacity": 3}],
//	  "multipliers": [{"face": "tx", "nodes": {...}, "suit": {...}, "weight": 2}],
//	  "inhibitors": [{"face": "tx", "nodes": {...}, "suit": {...}}]
//	}
//
// A rule expression node carries exactly one of the keys "thin", "fat",
// "instance", "sum", "product". A capacity of 0 means unbounded.
func FromJSON(data []byte) (*ast.File, error) {
	var doc fileDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid AST document: %w", err)
	}

	file := &ast.File{}
	for _, sd := range doc.Structures {
		if sd.Name == "" {
			return nil, fmt.Errorf("structure definition without a name")
		}
		body, err := decodeRex(sd.Body)
		if err != nil {
			return nil, fmt.Errorf("structure %q: %w", sd.Name, err)
		}
		def := &ast.StructureDef{Name: sd.Name, Body: body}
		for _, pd := range sd.Params {
			kind, err := paramKind(pd.Kind)
			if err != nil {
				return nil, fmt.Errorf("structure %q: %w", sd.Name, err)
			}
			def.Params = append(def.Params, ast.Param{Name: pd.Name, Kind: kind})
		}
		file.Structures = append(file.Structures, def)
	}

	for _, ld := range doc.Labels {
		file.Labels = append(file.Labels, ast.LabelDecl{Node: ld.Node, Label: ld.Label})
	}
	for _, cd := range doc.Capacities {
		file.Capacities = append(file.Capacities, ast.CapacityDecl{
			Nodes:    decodePoly(cd.Nodes),
			Capacity: ces.Capacity(cd.Capacity),
		})
	}
	for _, md := range doc.Multipliers {
		face, err := declFace(md.Face)
		if err != nil {
			return nil, err
		}
		file.Multipliers = append(file.Multipliers, ast.MultiplierDecl{
			Face:   face,
			Nodes:  decodePoly(md.Nodes),
			Suit:   decodePoly(md.Suit),
			Weight: md.Weight,
		})
	}
	for _, id := range doc.Inhibitors {
		face, err := declFace(id.Face)
		if err != nil {
			return nil, err
		}
		file.Inhibitors = append(file.Inhibitors, ast.InhibitorDecl{
			Face:  face,
			Nodes: decodePoly(id.Nodes),
			Suit:  decodePoly(id.Suit),
		})
	}

	return file, nil
}

type fileDoc struct {
	Structures  []structureDoc  `json:"structures"`
	Labels      []labelDoc      `json:"labels,omitempty"`
	Capacities  []capacityDoc   `json:"capacities,omitempty"`
	Multipliers []multiplierDoc `json:"multipliers,omitempty"`
	Inhibitors  []inhibitorDoc  `json:"inhibitors,omitempty"`
}

type structureDoc struct {
	Name   string     `json:"name"`
	Params []paramDoc `json:"params,omitempty"`
	Body   *rexDoc    `json:"body"`
}

type paramDoc struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
}

type labelDoc struct {
	Node  string `json:"node"`
	Label string `json:"label"`
}

type capacityDoc struct {
	Nodes    polyDoc `json:"nodes"`
	Capacity uint64  `json:"capacity"`
}

type multiplierDoc struct {
	Face   string  `json:"face"`
	Nodes  polyDoc `json:"nodes"`
	Suit   polyDoc `json:"suit"`
	Weight uint64  `json:"weight"`
}

type inhibitorDoc struct {
	Face  string  `json:"face"`
	Nodes polyDoc `json:"nodes"`
	Suit  polyDoc `json:"suit"`
}

type polyDoc struct {
	Monomials [][]string `json:"monomials"`
	Plain     bool       `json:"plain"`
}

type rexDoc struct {
	Thin     *thinDoc     `json:"thin,omitempty"`
	Fat      *fatDoc      `json:"fat,omitempty"`
	Instance *instanceDoc `json:"instance,omitempty"`
	Sum      []*rexDoc    `json:"sum,omitempty"`
	Product  []*rexDoc    `json:"product,omitempty"`
}

type thinDoc struct {
	Nodes  polyDoc  `json:"nodes"`
	Cause  *polyDoc `json:"cause,omitempty"`
	Effect *polyDoc `json:"effect,omitempty"`
}

type fatDoc struct {
	Head polyDoc   `json:"head"`
	Tail []stepDoc `json:"tail"`
}

type stepDoc struct {
	Op   string  `json:"op"`
	Poly polyDoc `json:"poly"`
}

type instanceDoc struct {
	Name string   `json:"name"`
	Args []argDoc `json:"args,omitempty"`
}

type argDoc struct {
	Identifier string  `json:"identifier,omitempty"`
	Size       *uint64 `json:"size,omitempty"`
	Name       string  `json:"name,omitempty"`
}

func decodePoly(doc polyDoc) polynomial.Polynomial {
	monos := make([]polynomial.Monomial, len(doc.Monomials))
	for i, m := range doc.Monomials {
		monos[i] = polynomial.Monomial(m)
	}
	return polynomial.FromParts(monos, doc.Plain)
}

func decodeOptPoly(doc *polyDoc) polynomial.Polynomial {
	if doc == nil {
		return polynomial.New()
	}
	return decodePoly(*doc)
}

func decodeRex(doc *rexDoc) (rex.Rex, error) {
	if doc == nil {
		return nil, fmt.Errorf("missing rule expression")
	}
	set := 0
	if doc.Thin != nil {
		set++
	}
	if doc.Fat != nil {
		set++
	}
	if doc.Instance != nil {
		set++
	}
	if doc.Sum != nil {
		set++
	}
	if doc.Product != nil {
		set++
	}
	if set != 1 {
		return nil, fmt.Errorf("rule expression node must carry exactly one variant, got %d", set)
	}

	switch {
	case doc.Thin != nil:
		rule, err := rex.NewThinRule(decodePoly(doc.Thin.Nodes))
		if err != nil {
			return nil, err
		}
		rule = rule.WithCause(decodeOptPoly(doc.Thin.Cause)).WithEffect(decodeOptPoly(doc.Thin.Effect))
		return &rex.Thin{Rule: rule}, nil

	case doc.Fat != nil:
		steps := make([]rex.ChainStep, len(doc.Fat.Tail))
		for i, sd := range doc.Fat.Tail {
			op, err := fatOp(sd.Op)
			if err != nil {
				return nil, err
			}
			steps[i] = rex.ChainStep{Op: op, Poly: decodePoly(sd.Poly)}
		}
		rule, err := rex.NewFatRule(decodePoly(doc.Fat.Head), steps)
		if err != nil {
			return nil, err
		}
		return &rex.Fat{Rule: rule}, nil

	case doc.Instance != nil:
		inst := &rex.Instance{Name: doc.Instance.Name}
		for _, ad := range doc.Instance.Args {
			arg, err := decodeArg(ad)
			if err != nil {
				return nil, fmt.Errorf("instance %q: %w", doc.Instance.Name, err)
			}
			inst.Args = append(inst.Args, arg)
		}
		return inst, nil

	case doc.Sum != nil:
		operands, err := decodeAll(doc.Sum)
		if err != nil {
			return nil, err
		}
		return &rex.Sum{Operands: operands}, nil

	default:
		operands, err := decodeAll(doc.Product)
		if err != nil {
			return nil, err
		}
		return &rex.Product{Operands: operands}, nil
	}
}

func decodeAll(docs []*rexDoc) ([]rex.Rex, error) {
	operands := make([]rex.Rex, len(docs))
	for i, d := range docs {
		op, err := decodeRex(d)
		if err != nil {
			return nil, err
		}
		operands[i] = op
	}
	return operands, nil
}

func decodeArg(doc argDoc) (rex.Arg, error) {
	switch {
	case doc.Identifier != "":
		return rex.Identifier(doc.Identifier), nil
	case doc.Size != nil:
		return rex.Size(*doc.Size), nil
	case doc.Name != "":
		return rex.Name(doc.Name), nil
	default:
		return rex.Arg{}, fmt.Errorf("argument must carry one of identifier, size, name")
	}
}

func paramKind(s string) (ast.ParamKind, error) {
	switch s {
	case "node":
		return ast.NodeParam, nil
	case "ces":
		return ast.CesParam, nil
	case "size":
		return ast.SizeParam, nil
	case "name":
		return ast.NameParam, nil
	default:
		return 0, fmt.Errorf("unknown parameter kind %q", s)
	}
}

func declFace(s string) (ast.Face, error) {
	switch s {
	case "tx":
		return ast.Tx, nil
	case "rx":
		return ast.Rx, nil
	default:
		return 0, fmt.Errorf("unknown declaration face %q", s)
	}
}

func fatOp(s string) (rex.FatOp, error) {
	switch s {
	case "=>":
		return rex.FatTx, nil
	case "<=":
		return rex.FatRx, nil
	case "<=>":
		return rex.FatDx, nil
	default:
		return 0, fmt.Errorf("unknown fat arrow operator %q", s)
	}
}

// ToJSON serializes a compiled structure for the downstream engine. Node
// cause and effect polynomials are exported as monomial lists; a capacity
// of 0 means unbounded.
func ToJSON(s *ces.Structure) ([]byte, error) {
	out := structureOut{
		ID:    s.ID,
		Name:  s.Name,
		Nodes: make(map[string]nodeOut, s.NodeCount()),
	}
	for _, id := range s.NodeIDs() {
		node := s.Node(id)
		out.Nodes[id] = nodeOut{
			Label:    node.Label,
			Capacity: uint64(node.Capacity),
			Cause:    monomialsOut(node.Cause),
			Effect:   monomialsOut(node.Effect),
		}
	}
	for _, l := range s.Links() {
		out.Links = append(out.Links, linkOut{
			Source: l.Source,
			Target: l.Target,
			Kind:   l.Kind.String(),
			Weight: l.Weight,
		})
	}
	for _, inh := range s.Inhibitors() {
		out.Inhibitors = append(out.Inhibitors, inhibitorOut{
			Source: inh.Source,
			Target: inh.Target,
		})
	}
	return json.MarshalIndent(out, "", "  ")
}

type structureOut struct {
	ID         string             `json:"id"`
	Name       string             `json:"name"`
	Nodes      map[string]nodeOut `json:"nodes"`
	Links      []linkOut          `json:"links,omitempty"`
	Inhibitors []inhibitorOut     `json:"inhibitors,omitempty"`
}

type nodeOut struct {
	Label    string     `json:"label"`
	Capacity uint64     `json:"capacity"`
	Cause    [][]string `json:"cause,omitempty"`
	Effect   [][]string `json:"effect,omitempty"`
}

type linkOut struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Kind   string `json:"kind"`
	Weight uint64 `json:"weight"`
}

type inhibitorOut struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

func monomialsOut(p polynomial.Polynomial) [][]string {
	if p.IsEmpty() {
		return nil
	}
	monos := p.Monomials()
	out := make([][]string, len(monos))
	for i, m := range monos {
		out[i] = []string(m)
	}
	return out
}
