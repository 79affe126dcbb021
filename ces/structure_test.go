package ces

import (
	"testing"

	"github.com/ceslang/go-ces/polynomial"
)

func TestEnsureNodeDefaults(t *testing.T) {
	s := NewStructure("Main")
	n := s.EnsureNode("a")

	if n.Label != "a" {
		t.Errorf("expected label to default to identifier, got %q", n.Label)
	}
	if n.Capacity != DefaultCapacity {
		t.Errorf("expected default capacity 1, got %v", n.Capacity)
	}
	if s.EnsureNode("a") != n {
		t.Error("expected repeated mention to return the same node")
	}
	if s.NodeCount() != 1 {
		t.Errorf("expected 1 node, got %d", s.NodeCount())
	}
}

func TestStructureID(t *testing.T) {
	a := NewStructure("Main")
	b := NewStructure("Main")
	if a.ID == "" || a.ID == b.ID {
		t.Errorf("expected distinct non-empty structure IDs, got %q and %q", a.ID, b.ID)
	}
}

func TestHalfLinkCoalescing(t *testing.T) {
	s := NewStructure("Main")
	l := s.AddEffectLink("a", "b")
	if l.Kind != EffectOnly {
		t.Errorf("expected effect-only, got %v", l.Kind)
	}
	if l.Weight != 1 {
		t.Errorf("expected default weight 1, got %d", l.Weight)
	}

	l2 := s.AddCauseLink("a", "b")
	if l2 != l {
		t.Error("expected the cause half to merge into the existing link")
	}
	if l.Kind != Full {
		t.Errorf("expected full link after both halves, got %v", l.Kind)
	}
	if len(s.Links()) != 1 {
		t.Errorf("expected a single link, got %d", len(s.Links()))
	}
}

func TestOneSidedLinksStayOneSided(t *testing.T) {
	s := NewStructure("Main")
	s.AddEffectLink("a", "b")
	s.AddEffectLink("a", "b")
	if got := s.Link("a", "b").Kind; got != EffectOnly {
		t.Errorf("expected effect-only after repeated effect halves, got %v", got)
	}
}

func TestSetWeight(t *testing.T) {
	s := NewStructure("Main")
	s.AddEffectLink("a", "b")

	if !s.SetWeight("a", "b", 3) {
		t.Fatal("expected SetWeight to find the link")
	}
	if got := s.Link("a", "b").Weight; got != 3 {
		t.Errorf("expected weight 3, got %d", got)
	}
	if s.SetWeight("a", "missing", 2) {
		t.Error("expected SetWeight to report a missing link")
	}
}

func TestInhibitorDedup(t *testing.T) {
	s := NewStructure("Main")
	s.AddInhibitor("a", "b")
	s.AddInhibitor("a", "b")
	s.AddInhibitor("b", "a")
	if got := len(s.Inhibitors()); got != 2 {
		t.Errorf("expected 2 inhibitor arcs, got %d", got)
	}
}

func TestDegree(t *testing.T) {
	s := NewStructure("Main")
	s.AddEffectLink("a", "b")
	s.AddEffectLink("a", "c")
	s.AddEffectLink("c", "a")

	tests := []struct {
		id   string
		want int
	}{
		{"a", 3},
		{"b", 1},
		{"c", 2},
		{"d", 0},
	}
	for _, tt := range tests {
		if got := s.Degree(tt.id); got != tt.want {
			t.Errorf("Degree(%q): expected %d, got %d", tt.id, tt.want, got)
		}
	}
}

func TestNodePolynomialAccumulation(t *testing.T) {
	s := NewStructure("Main")
	n := s.EnsureNode("a")

	n.AddEffect(polynomial.FromNode("b"))
	if n.Effect.String() != "b" {
		t.Errorf("expected first accumulation to adopt the polynomial, got %q", n.Effect)
	}
	n.AddEffect(polynomial.FromNode("c"))
	if n.Effect.String() != "b + c" {
		t.Errorf("expected \"b + c\", got %q", n.Effect)
	}
	if !n.Cause.IsEmpty() {
		t.Error("cause polynomial must stay empty until a rule receives on the node")
	}
}

func TestCapacityString(t *testing.T) {
	if Omega.String() != "ω" {
		t.Errorf("expected omega rendering, got %q", Omega.String())
	}
	if Capacity(12).String() != "12" {
		t.Errorf("expected \"12\", got %q", Capacity(12).String())
	}
}
