package parser

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ceslang/go-ces/ast"
	"github.com/ceslang/go-ces/ces"
	"github.com/ceslang/go-ces/polynomial"
	"github.com/ceslang/go-ces/resolve"
	"github.com/ceslang/go-ces/rex"
)

const arrowDoc = `{
	"structures": [
		{
			"name": "Arrow",
			"params": [
				{"name": "x", "kind": "node"},
				{"name": "y", "kind": "node"}
			],
			"body": {
				"fat": {
					"head": {"monomials": [["x"]], "plain": true},
					"tail": [
						{"op": "=>", "poly": {"monomials": [["y"]], "plain": true}}
					]
				}
			}
		},
		{
			"name": "Main",
			"body": {
				"instance": {
					"name": "Arrow",
					"args": [{"identifier": "a"}, {"identifier": "b"}]
				}
			}
		}
	],
	"labels": [{"node": "a", "label": "source"}],
	"capacities": [
		{"nodes": {"monomials": [["b"]], "plain": true}, "capacity": 3}
	]
}`

func TestFromJSONArrow(t *testing.T) {
	file, err := FromJSON([]byte(arrowDoc))
	require.NoError(t, err)

	require.Len(t, file.Structures, 2)

	arrow := file.Structures[0]
	assert.Equal(t, "Arrow", arrow.Name)
	require.Len(t, arrow.Params, 2)
	assert.Equal(t, ast.Param{Name: "x", Kind: ast.NodeParam}, arrow.Params[0])
	assert.True(t, arrow.IsTemplate())

	fat, ok := arrow.Body.(*rex.Fat)
	require.True(t, ok, "Arrow body should be a fat rule, got %T", arrow.Body)
	require.Len(t, fat.Rule.Parts, 2)

	main := file.Structures[1]
	assert.Equal(t, "Main", main.Name)
	assert.False(t, main.IsTemplate())
	inst, ok := main.Body.(*rex.Instance)
	require.True(t, ok, "Main body should be an instance, got %T", main.Body)
	assert.Equal(t, "Arrow", inst.Name)
	require.Len(t, inst.Args, 2)
	assert.Equal(t, rex.Identifier("a"), inst.Args[0])

	require.Len(t, file.Labels, 1)
	assert.Equal(t, ast.LabelDecl{Node: "a", Label: "source"}, file.Labels[0])

	require.Len(t, file.Capacities, 1)
	assert.Equal(t, ces.Capacity(3), file.Capacities[0].Capacity)
	assert.True(t, file.Capacities[0].Nodes.Equal(polynomial.FromNode("b")))
}

func TestFromJSONResolvesEndToEnd(t *testing.T) {
	file, err := FromJSON([]byte(arrowDoc))
	require.NoError(t, err)

	s, err := resolve.NewResolver().Resolve(file)
	require.NoError(t, err)

	assert.Equal(t, 2, s.NodeCount())
	link := s.Link("a", "b")
	require.NotNil(t, link)
	assert.Equal(t, ces.Full, link.Kind)
	assert.Equal(t, "source", s.Node("a").Label)
	assert.Equal(t, ces.Capacity(3), s.Node("b").Capacity)
}

func TestFromJSONSumProductThin(t *testing.T) {
	doc := `{
		"structures": [
			{
				"name": "Main",
				"body": {
					"sum": [
						{"thin": {
							"nodes": {"monomials": [["a"]], "plain": true},
							"effect": {"monomials": [["b"]], "plain": true}
						}},
						{"product": [
							{"thin": {
								"nodes": {"monomials": [["b"]], "plain": true},
								"cause": {"monomials": [["a"]], "plain": true}
							}}
						]}
					]
				}
			}
		]
	}`

	file, err := FromJSON([]byte(doc))
	require.NoError(t, err)

	sum, ok := file.Structures[0].Body.(*rex.Sum)
	require.True(t, ok)
	require.Len(t, sum.Operands, 2)

	thin, ok := sum.Operands[0].(*rex.Thin)
	require.True(t, ok)
	assert.True(t, thin.Rule.Effect.Equal(polynomial.FromNode("b")))
	assert.True(t, thin.Rule.Cause.IsEmpty())

	prod, ok := sum.Operands[1].(*rex.Product)
	require.True(t, ok)
	require.Len(t, prod.Operands, 1)
}

func TestFromJSONContextDecls(t *testing.T) {
	doc := `{
		"structures": [
			{"name": "Main", "body": {"thin": {
				"nodes": {"monomials": [["a"]], "plain": true},
				"effect": {"monomials": [["b"]], "plain": true}
			}}}
		],
		"multipliers": [
			{"face": "rx",
			 "nodes": {"monomials": [["b"]], "plain": true},
			 "suit": {"monomials": [["a"]], "plain": true},
			 "weight": 2}
		],
		"inhibitors": [
			{"face": "tx",
			 "nodes": {"monomials": [["c"]], "plain": true},
			 "suit": {"monomials": [["a"]], "plain": true}}
		]
	}`

	file, err := FromJSON([]byte(doc))
	require.NoError(t, err)

	require.Len(t, file.Multipliers, 1)
	assert.Equal(t, ast.Rx, file.Multipliers[0].Face)
	assert.Equal(t, uint64(2), file.Multipliers[0].Weight)

	require.Len(t, file.Inhibitors, 1)
	assert.Equal(t, ast.Tx, file.Inhibitors[0].Face)
}

func TestFromJSONErrors(t *testing.T) {
	cases := []struct {
		name string
		doc  string
	}{
		{"not json", `{"structures": [`},
		{"unnamed structure", `{"structures": [{"body": {"sum": []}}]}`},
		{"missing body", `{"structures": [{"name": "Main"}]}`},
		{"two variants", `{"structures": [{"name": "Main",
			"body": {"sum": [], "product": []}}]}`},
		{"bad fat op", `{"structures": [{"name": "Main",
			"body": {"fat": {
				"head": {"monomials": [["a"]], "plain": true},
				"tail": [{"op": "->", "poly": {"monomials": [["b"]], "plain": true}}]
			}}}]}`},
		{"bad param kind", `{"structures": [{"name": "Main",
			"params": [{"name": "x", "kind": "polynomial"}],
			"body": {"sum": []}}]}`},
		{"empty argument", `{"structures": [{"name": "Main",
			"body": {"instance": {"name": "K", "args": [{}]}}}]}`},
		{"bad face", `{
			"structures": [{"name": "Main", "body": {"sum": []}}],
			"inhibitors": [{"face": "up",
				"nodes": {"monomials": [["a"]], "plain": true},
				"suit": {"monomials": [["b"]], "plain": true}}]}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := FromJSON([]byte(tc.doc))
			assert.Error(t, err)
		})
	}
}

func TestToJSON(t *testing.T) {
	s := ces.NewStructure("Main")
	s.EnsureNode("a").AddEffect(polynomial.FromNode("b"))
	s.EnsureNode("b").AddCause(polynomial.FromNode("a"))
	s.Node("b").Capacity = ces.Omega
	s.AddEffectLink("a", "b")
	s.AddCauseLink("a", "b")
	s.SetWeight("a", "b", 2)
	s.AddInhibitor("c", "a")

	data, err := ToJSON(s)
	require.NoError(t, err)

	var out struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Nodes map[string]struct {
			Label    string     `json:"label"`
			Capacity uint64     `json:"capacity"`
			Cause    [][]string `json:"cause"`
			Effect   [][]string `json:"effect"`
		} `json:"nodes"`
		Links []struct {
			Source string `json:"source"`
			Target string `json:"target"`
			Kind   string `json:"kind"`
			Weight uint64 `json:"weight"`
		} `json:"links"`
		Inhibitors []struct {
			Source string `json:"source"`
			Target string `json:"target"`
		} `json:"inhibitors"`
	}
	require.NoError(t, json.Unmarshal(data, &out))

	assert.Equal(t, s.ID, out.ID)
	assert.Equal(t, "Main", out.Name)
	require.Len(t, out.Nodes, 3)
	assert.Equal(t, [][]string{{"b"}}, out.Nodes["a"].Effect)
	assert.Equal(t, uint64(0), out.Nodes["b"].Capacity)
	assert.Equal(t, uint64(1), out.Nodes["a"].Capacity)

	require.Len(t, out.Links, 1)
	assert.Equal(t, "full", out.Links[0].Kind)
	assert.Equal(t, uint64(2), out.Links[0].Weight)

	require.Len(t, out.Inhibitors, 1)
	assert.Equal(t, "c", out.Inhibitors[0].Source)
}
