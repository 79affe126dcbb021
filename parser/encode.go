package parser

import (
	"encoding/json"
	"fmt"

	"github.com/ceslang/go-ces/ast"
	"github.com/ceslang/go-ces/polynomial"
	"github.com/ceslang/go-ces/rex"
)

// FileToJSON serializes an AST document in the format FromJSON accepts.
func FileToJSON(file *ast.File) ([]byte, error) {
	doc := fileDoc{}
	for _, def := range file.Structures {
		sd := structureDoc{Name: def.Name}
		for _, p := range def.Params {
			kind, err := paramKindName(p.Kind)
			if err != nil {
				return nil, fmt.Errorf("structure %q: %w", def.Name, err)
			}
			sd.Params = append(sd.Params, paramDoc{Name: p.Name, Kind: kind})
		}
		body, err := encodeRex(def.Body)
		if err != nil {
			return nil, fmt.Errorf("structure %q: %w", def.Name, err)
		}
		sd.Body = body
		doc.Structures = append(doc.Structures, sd)
	}

	for _, ld := range file.Labels {
		doc.Labels = append(doc.Labels, labelDoc{Node: ld.Node, Label: ld.Label})
	}
	for _, cd := range file.Capacities {
		doc.Capacities = append(doc.Capacities, capacityDoc{
			Nodes:    encodePoly(cd.Nodes),
			Capacity: uint64(cd.Capacity),
		})
	}
	for _, md := range file.Multipliers {
		doc.Multipliers = append(doc.Multipliers, multiplierDoc{
			Face:   faceName(md.Face),
			Nodes:  encodePoly(md.Nodes),
			Suit:   encodePoly(md.Suit),
			Weight: md.Weight,
		})
	}
	for _, id := range file.Inhibitors {
		doc.Inhibitors = append(doc.Inhibitors, inhibitorDoc{
			Face:  faceName(id.Face),
			Nodes: encodePoly(id.Nodes),
			Suit:  encodePoly(id.Suit),
		})
	}

	return json.MarshalIndent(doc, "", "  ")
}

func encodePoly(p polynomial.Polynomial) polyDoc {
	doc := polyDoc{Plain: p.IsPlain()}
	for _, m := range p.Monomials() {
		doc.Monomials = append(doc.Monomials, []string(m))
	}
	return doc
}

func encodeOptPoly(p polynomial.Polynomial) *polyDoc {
	if p.IsEmpty() {
		return nil
	}
	doc := encodePoly(p)
	return &doc
}

func encodeRex(r rex.Rex) (*rexDoc, error) {
	switch node := r.(type) {
	case *rex.Thin:
		// A node list is one plain monomial of distinct identifiers.
		nodes := polynomial.FromParts([]polynomial.Monomial{polynomial.Monomial(node.Rule.Nodes)}, true)
		return &rexDoc{Thin: &thinDoc{
			Nodes:  encodePoly(nodes),
			Cause:  encodeOptPoly(node.Rule.Cause),
			Effect: encodeOptPoly(node.Rule.Effect),
		}}, nil

	case *rex.Fat:
		if len(node.Rule.Parts) == 0 {
			return nil, fmt.Errorf("fat rule without parts")
		}
		// Each binary part round-trips as its own forward step chain;
		// accumulation over the sum reproduces the original semantics.
		docs := make([]*rexDoc, len(node.Rule.Parts))
		for i, part := range node.Rule.Parts {
			docs[i] = &rexDoc{Fat: &fatDoc{
				Head: encodePoly(part.Cause),
				Tail: []stepDoc{{Op: "=>", Poly: encodePoly(part.Effect)}},
			}}
		}
		if len(docs) == 1 {
			return docs[0], nil
		}
		return &rexDoc{Sum: docs}, nil

	case *rex.Instance:
		id := &instanceDoc{Name: node.Name}
		for _, arg := range node.Args {
			ad, err := encodeArg(arg)
			if err != nil {
				return nil, fmt.Errorf("instance %q: %w", node.Name, err)
			}
			id.Args = append(id.Args, ad)
		}
		return &rexDoc{Instance: id}, nil

	case *rex.Sum:
		docs, err := encodeAll(node.Operands)
		if err != nil {
			return nil, err
		}
		return &rexDoc{Sum: docs}, nil

	case *rex.Product:
		docs, err := encodeAll(node.Operands)
		if err != nil {
			return nil, err
		}
		return &rexDoc{Product: docs}, nil

	default:
		return nil, fmt.Errorf("unknown rule expression %T", r)
	}
}

func encodeAll(operands []rex.Rex) ([]*rexDoc, error) {
	docs := make([]*rexDoc, len(operands))
	for i, op := range operands {
		d, err := encodeRex(op)
		if err != nil {
			return nil, err
		}
		docs[i] = d
	}
	return docs, nil
}

func encodeArg(arg rex.Arg) (argDoc, error) {
	switch arg.Kind {
	case rex.ArgIdentifier:
		return argDoc{Identifier: arg.Identifier}, nil
	case rex.ArgSize:
		size := arg.Size
		return argDoc{Size: &size}, nil
	case rex.ArgName:
		return argDoc{Name: arg.Name}, nil
	default:
		return argDoc{}, fmt.Errorf("unknown argument kind %v", arg.Kind)
	}
}

func paramKindName(k ast.ParamKind) (string, error) {
	switch k {
	case ast.NodeParam:
		return "node", nil
	case ast.CesParam:
		return "ces", nil
	case ast.SizeParam:
		return "size", nil
	case ast.NameParam:
		return "name", nil
	default:
		return "", fmt.Errorf("unknown parameter kind %v", k)
	}
}

func faceName(f ast.Face) string {
	if f == ast.Rx {
		return "rx"
	}
	return "tx"
}
