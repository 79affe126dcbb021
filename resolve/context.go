package resolve

import (
	"fmt"

	"github.com/ceslang/go-ces/ast"
	"github.com/ceslang/go-ces/ces"
	"github.com/ceslang/go-ces/polynomial"
)

// mergeContext applies the file's context declarations onto the resolved
// structure: label and capacity overrides, link weight multipliers, and
// inhibitor arcs. Declarations apply in file order, so a later declaration
// for the same node or edge overrides an earlier one.
func mergeContext(file *ast.File, s *ces.Structure) error {
	for _, decl := range file.Labels {
		if node := s.Node(decl.Node); node != nil {
			node.Label = decl.Label
		}
	}

	for _, decl := range file.Capacities {
		nodes, err := nodeListOf(decl.Nodes, "capacity declaration")
		if err != nil {
			return err
		}
		for _, id := range nodes {
			if node := s.Node(id); node != nil {
				node.Capacity = decl.Capacity
			}
		}
	}

	for _, decl := range file.Multipliers {
		nodes, err := nodeListOf(decl.Nodes, "multiplier declaration")
		if err != nil {
			return err
		}
		suit, err := nodeListOf(decl.Suit, "multiplier declaration")
		if err != nil {
			return err
		}
		for _, id := range nodes {
			for _, other := range suit {
				if decl.Face == ast.Tx {
					s.SetWeight(id, other, decl.Weight)
				} else {
					s.SetWeight(other, id, decl.Weight)
				}
			}
		}
	}

	for _, decl := range file.Inhibitors {
		nodes, err := nodeListOf(decl.Nodes, "inhibitor declaration")
		if err != nil {
			return err
		}
		suit, err := nodeListOf(decl.Suit, "inhibitor declaration")
		if err != nil {
			return err
		}
		for _, id := range nodes {
			for _, other := range suit {
				source, target := id, other
				if decl.Face == ast.Rx {
					source, target = other, id
				}
				s.EnsureNode(source)
				s.EnsureNode(target)
				s.AddInhibitor(source, target)
			}
		}
	}

	return nil
}

func nodeListOf(p polynomial.Polynomial, where string) (polynomial.NodeList, error) {
	nodes, err := p.NodeList()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", where, err)
	}
	return nodes, nil
}
