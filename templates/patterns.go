package templates

import (
	"fmt"

	"github.com/ceslang/go-ces/ast"
	"github.com/ceslang/go-ces/polynomial"
	"github.com/ceslang/go-ces/rex"
)

// ArrowTemplate is the smallest structure: one node sending to another.
type ArrowTemplate struct{}

func (t *ArrowTemplate) Name() string {
	return "arrow"
}

func (t *ArrowTemplate) Description() string {
	return "Single arrow (a => b)"
}

func (t *ArrowTemplate) Parameters() []Parameter {
	return nil
}

func (t *ArrowTemplate) Generate(params map[string]interface{}) (*ast.File, error) {
	body, err := chain(polynomial.FromNode("a"), polynomial.FromNode("b"))
	if err != nil {
		return nil, err
	}
	return mainFile(body), nil
}

// CycleTemplate builds a ring of nodes, each causing the next. Every node
// both sends and receives, so the result is coherent under the strict
// policy.
type CycleTemplate struct{}

func (t *CycleTemplate) Name() string {
	return "cycle"
}

func (t *CycleTemplate) Description() string {
	return "Ring of nodes, each feeding the next (coherent)"
}

func (t *CycleTemplate) Parameters() []Parameter {
	min := 2.0
	return []Parameter{
		{
			Name:        "size",
			Description: "Number of nodes in the ring",
			Type:        "int",
			Default:     3,
			Required:    false,
			Min:         &min,
		},
	}
}

func (t *CycleTemplate) Generate(params map[string]interface{}) (*ast.File, error) {
	size := getIntParam(params, "size", 3)
	if size < 2 {
		return nil, fmt.Errorf("size must be >= 2")
	}

	rules := make([]rex.Rex, size)
	for i := 0; i < size; i++ {
		rule, err := chain(node("n", i), node("n", (i+1)%size))
		if err != nil {
			return nil, err
		}
		rules[i] = rule
	}
	return mainFile(&rex.Sum{Operands: rules}), nil
}

// ForkJoinTemplate broadcasts from one node to several branches and joins
// them back through a collector, closing the loop to stay coherent.
type ForkJoinTemplate struct{}

func (t *ForkJoinTemplate) Name() string {
	return "fork-join"
}

func (t *ForkJoinTemplate) Description() string {
	return "Broadcast to branches, join, and loop back (coherent)"
}

func (t *ForkJoinTemplate) Parameters() []Parameter {
	min := 2.0
	return []Parameter{
		{
			Name:        "branches",
			Description: "Number of parallel branches",
			Type:        "int",
			Default:     2,
			Required:    false,
			Min:         &min,
		},
	}
}

func (t *ForkJoinTemplate) Generate(params map[string]interface{}) (*ast.File, error) {
	branches := getIntParam(params, "branches", 2)
	if branches < 2 {
		return nil, fmt.Errorf("branches must be >= 2")
	}

	joint := make(polynomial.Monomial, branches)
	for i := range joint {
		joint[i] = fmt.Sprintf("b%d", i)
	}
	branchPoly := polynomial.FromParts([]polynomial.Monomial{joint}, true)

	fork, err := chain(polynomial.FromNode("a"), branchPoly)
	if err != nil {
		return nil, err
	}
	join, err := chain(branchPoly, polynomial.FromNode("c"))
	if err != nil {
		return nil, err
	}
	back, err := chain(polynomial.FromNode("c"), polynomial.FromNode("a"))
	if err != nil {
		return nil, err
	}
	return mainFile(&rex.Sum{Operands: []rex.Rex{fork, join, back}}), nil
}

// ChoiceTemplate sends to one of several alternatives, each of which feeds
// back to the chooser.
type ChoiceTemplate struct{}

func (t *ChoiceTemplate) Name() string {
	return "choice"
}

func (t *ChoiceTemplate) Description() string {
	return "Choice between alternatives with feedback (coherent)"
}

func (t *ChoiceTemplate) Parameters() []Parameter {
	min := 2.0
	return []Parameter{
		{
			Name:        "options",
			Description: "Number of alternatives",
			Type:        "int",
			Default:     2,
			Required:    false,
			Min:         &min,
		},
	}
}

func (t *ChoiceTemplate) Generate(params map[string]interface{}) (*ast.File, error) {
	options := getIntParam(params, "options", 2)
	if options < 2 {
		return nil, fmt.Errorf("options must be >= 2")
	}

	monos := make([]polynomial.Monomial, options)
	rules := make([]rex.Rex, 0, options+1)
	for i := 0; i < options; i++ {
		monos[i] = polynomial.Monomial{fmt.Sprintf("b%d", i)}
		back, err := chain(node("b", i), polynomial.FromNode("a"))
		if err != nil {
			return nil, err
		}
		rules = append(rules, back)
	}

	choose, err := chain(polynomial.FromNode("a"), polynomial.FromParts(monos, false))
	if err != nil {
		return nil, err
	}
	rules = append([]rex.Rex{choose}, rules...)
	return mainFile(&rex.Sum{Operands: rules}), nil
}

// PipelineTemplate chains stages through a parameterized Stage template,
// exercising instantiation rather than inline rules.
type PipelineTemplate struct{}

func (t *PipelineTemplate) Name() string {
	return "pipeline"
}

func (t *PipelineTemplate) Description() string {
	return "Linear pipeline of stages built from a Stage template"
}

func (t *PipelineTemplate) Parameters() []Parameter {
	min := 2.0
	return []Parameter{
		{
			Name:        "stages",
			Description: "Number of pipeline stages",
			Type:        "int",
			Default:     3,
			Required:    false,
			Min:         &min,
		},
	}
}

func (t *PipelineTemplate) Generate(params map[string]interface{}) (*ast.File, error) {
	stages := getIntParam(params, "stages", 3)
	if stages < 2 {
		return nil, fmt.Errorf("stages must be >= 2")
	}

	stageBody, err := chain(polynomial.FromNode("x"), polynomial.FromNode("y"))
	if err != nil {
		return nil, err
	}
	stage := &ast.StructureDef{
		Name: "Stage",
		Params: []ast.Param{
			{Name: "x", Kind: ast.NodeParam},
			{Name: "y", Kind: ast.NodeParam},
		},
		Body: stageBody,
	}

	instances := make([]rex.Rex, stages)
	for i := 0; i < stages; i++ {
		instances[i] = &rex.Instance{
			Name: "Stage",
			Args: []rex.Arg{
				rex.Identifier(fmt.Sprintf("s%d", i)),
				rex.Identifier(fmt.Sprintf("s%d", i+1)),
			},
		}
	}

	return &ast.File{Structures: []*ast.StructureDef{
		stage,
		{Name: "Main", Body: &rex.Sum{Operands: instances}},
	}}, nil
}

func node(prefix string, i int) polynomial.Polynomial {
	return polynomial.FromNode(fmt.Sprintf("%s%d", prefix, i))
}

func chain(head, tail polynomial.Polynomial) (rex.Rex, error) {
	rule, err := rex.NewFatRule(head, []rex.ChainStep{{Op: rex.FatTx, Poly: tail}})
	if err != nil {
		return nil, err
	}
	return &rex.Fat{Rule: rule}, nil
}

func mainFile(body rex.Rex) *ast.File {
	return &ast.File{Structures: []*ast.StructureDef{
		{Name: "Main", Body: body},
	}}
}
