package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ceslang/go-ces/ast"
	"github.com/ceslang/go-ces/ces"
	"github.com/ceslang/go-ces/polynomial"
	"github.com/ceslang/go-ces/resolve"
	"github.com/ceslang/go-ces/rex"
)

func TestFileToJSONRoundTrip(t *testing.T) {
	file, err := FromJSON([]byte(arrowDoc))
	require.NoError(t, err)

	data, err := FileToJSON(file)
	require.NoError(t, err)

	again, err := FromJSON(data)
	require.NoError(t, err)

	require.Len(t, again.Structures, 2)
	assert.Equal(t, "Arrow", again.Structures[0].Name)
	assert.Equal(t, file.Structures[0].Params, again.Structures[0].Params)
	assert.Equal(t, file.Labels, again.Labels)
	assert.Equal(t, file.Capacities[0].Capacity, again.Capacities[0].Capacity)
}

func TestFileToJSONPreservesResolution(t *testing.T) {
	// A bidirectional chain decomposes into binary parts on import; the
	// encoded form must resolve to the same structure.
	doc := `{
		"structures": [
			{"name": "Main", "body": {"fat": {
				"head": {"monomials": [["a"]], "plain": true},
				"tail": [{"op": "<=>", "poly": {"monomials": [["b"]], "plain": true}}]
			}}}
		]
	}`

	file, err := FromJSON([]byte(doc))
	require.NoError(t, err)

	data, err := FileToJSON(file)
	require.NoError(t, err)
	again, err := FromJSON(data)
	require.NoError(t, err)

	first, err := resolve.NewResolver().Resolve(file)
	require.NoError(t, err)
	second, err := resolve.NewResolver().Resolve(again)
	require.NoError(t, err)

	require.Equal(t, first.NodeCount(), second.NodeCount())
	for _, id := range first.NodeIDs() {
		assert.True(t, first.Node(id).Cause.Equal(second.Node(id).Cause), "cause of %s", id)
		assert.True(t, first.Node(id).Effect.Equal(second.Node(id).Effect), "effect of %s", id)
	}
	require.Len(t, second.Links(), len(first.Links()))
	for _, l := range first.Links() {
		got := second.Link(l.Source, l.Target)
		require.NotNil(t, got)
		assert.Equal(t, l.Kind, got.Kind)
	}
}

func TestFileToJSONThinAndArgs(t *testing.T) {
	rule, err := rex.NewThinRule(polynomial.FromParts(
		[]polynomial.Monomial{{"a", "b"}}, true,
	))
	require.NoError(t, err)
	rule = rule.WithEffect(polynomial.FromNode("c"))

	file := &ast.File{Structures: []*ast.StructureDef{
		{Name: "Pair", Params: []ast.Param{{Name: "n", Kind: ast.SizeParam}},
			Body: &rex.Thin{Rule: rule}},
		{Name: "Main", Body: &rex.Instance{
			Name: "Pair",
			Args: []rex.Arg{rex.Size(4)},
		}},
	}}

	data, err := FileToJSON(file)
	require.NoError(t, err)
	again, err := FromJSON(data)
	require.NoError(t, err)

	thin, ok := again.Structures[0].Body.(*rex.Thin)
	require.True(t, ok)
	assert.Equal(t, polynomial.NewNodeList("a", "b"), thin.Rule.Nodes)
	assert.True(t, thin.Rule.Effect.Equal(polynomial.FromNode("c")))

	inst, ok := again.Structures[1].Body.(*rex.Instance)
	require.True(t, ok)
	require.Len(t, inst.Args, 1)
	assert.Equal(t, rex.Size(4), inst.Args[0])
}

func TestFileToJSONContextDecls(t *testing.T) {
	file := &ast.File{
		Structures: []*ast.StructureDef{
			{Name: "Main", Body: &rex.Instance{Name: "Sub"}},
		},
		Multipliers: []ast.MultiplierDecl{{
			Face:   ast.Rx,
			Nodes:  polynomial.FromNode("b"),
			Suit:   polynomial.FromNode("a"),
			Weight: 2,
		}},
		Inhibitors: []ast.InhibitorDecl{{
			Face:  ast.Tx,
			Nodes: polynomial.FromNode("c"),
			Suit:  polynomial.FromNode("a"),
		}},
		Capacities: []ast.CapacityDecl{{
			Nodes:    polynomial.FromNode("b"),
			Capacity: ces.Omega,
		}},
	}

	data, err := FileToJSON(file)
	require.NoError(t, err)
	again, err := FromJSON(data)
	require.NoError(t, err)

	assert.Equal(t, ast.Rx, again.Multipliers[0].Face)
	assert.Equal(t, uint64(2), again.Multipliers[0].Weight)
	assert.Equal(t, ast.Tx, again.Inhibitors[0].Face)
	assert.True(t, again.Capacities[0].Capacity.IsOmega())
}
