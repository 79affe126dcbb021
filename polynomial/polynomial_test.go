package polynomial

import (
	"errors"
	"testing"
)

func TestFromNode(t *testing.T) {
	p := FromNode("a")
	if !p.IsPlain() {
		t.Error("expected single-node polynomial to be plain")
	}
	if p.Len() != 1 {
		t.Errorf("expected 1 monomial, got %d", p.Len())
	}
	if p.String() != "a" {
		t.Errorf("expected \"a\", got %q", p.String())
	}
}

func TestAddClearsPlain(t *testing.T) {
	p := FromNode("a").Add(FromNode("b"))
	if p.IsPlain() {
		t.Error("sum must not be plain")
	}
	if p.String() != "a + b" {
		t.Errorf("expected \"a + b\", got %q", p.String())
	}
}

func TestMultiplyKeepsPlain(t *testing.T) {
	p := FromNode("a").Multiply(FromNode("b")).Multiply(FromNode("c"))
	if !p.IsPlain() {
		t.Error("juxtaposition of identifiers must stay plain")
	}
	if p.Len() != 1 || p.String() != "a b c" {
		t.Errorf("expected single monomial \"a b c\", got %q", p.String())
	}
}

func TestGroupedClearsPlain(t *testing.T) {
	p := FromNode("a").Grouped()
	if p.IsPlain() {
		t.Error("parenthesized polynomial must not be plain, even with one monomial")
	}
	q := FromNode("b").Multiply(p)
	if q.IsPlain() {
		t.Error("plainness must not reappear after multiplication by a grouped factor")
	}
}

func TestMultiplyDistributes(t *testing.T) {
	// (a + b)(c + d) = ac + ad + bc + bd, order preserved.
	p := FromNode("a").Add(FromNode("b"))
	q := FromNode("c").Add(FromNode("d"))
	got := p.Multiply(q)
	want := [][]string{{"a", "c"}, {"a", "d"}, {"b", "c"}, {"b", "d"}}
	monos := got.Monomials()
	if len(monos) != len(want) {
		t.Fatalf("expected %d monomials, got %d", len(want), len(monos))
	}
	for i, w := range want {
		if !monos[i].Equal(Monomial(w)) {
			t.Errorf("monomial %d: expected %v, got %v", i, w, monos[i])
		}
	}
}

func TestDistributivity(t *testing.T) {
	// P(Q + R) == PQ + PR for assorted shapes.
	tests := []struct {
		name    string
		p, q, r Polynomial
	}{
		{"singletons", FromNode("a"), FromNode("b"), FromNode("c")},
		{"sum left", FromNode("a").Add(FromNode("b")), FromNode("c"), FromNode("d")},
		{"product right", FromNode("a"), FromNode("b").Multiply(FromNode("c")), FromNode("d")},
		{"empty addend", FromNode("a"), New(), FromNode("b")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lhs := tt.p.Multiply(tt.q.Add(tt.r))
			rhs := tt.p.Multiply(tt.q).Add(tt.p.Multiply(tt.r))
			if !lhs.Equal(rhs) {
				t.Errorf("P(Q+R) = %q, PQ+PR = %q", lhs, rhs)
			}
		})
	}
}

func TestAddKeepsDuplicates(t *testing.T) {
	p := FromNode("a").Add(FromNode("a"))
	if p.Len() != 2 {
		t.Errorf("addition must not deduplicate monomials, got %d", p.Len())
	}
}

func TestMonomialKeepsRepetition(t *testing.T) {
	p := FromNode("a").Multiply(FromNode("a"))
	monos := p.Monomials()
	if len(monos) != 1 || len(monos[0]) != 2 {
		t.Fatalf("expected one monomial with two occurrences, got %v", monos)
	}
}

func TestNodeList(t *testing.T) {
	tests := []struct {
		name    string
		poly    Polynomial
		want    NodeList
		wantErr bool
	}{
		{"plain product", FromNode("b").Multiply(FromNode("a")), NewNodeList("a", "b"), false},
		{"repeated occurrence dedups", FromNode("a").Multiply(FromNode("a")), NewNodeList("a"), false},
		{"empty", New(), nil, false},
		{"sum rejected", FromNode("a").Add(FromNode("b")), nil, true},
		{"grouped rejected", FromNode("a").Grouped(), nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.poly.NodeList()
			if tt.wantErr {
				var invErr *InvalidNodeListError
				if !errors.As(err, &invErr) {
					t.Fatalf("expected *InvalidNodeListError, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestFlatten(t *testing.T) {
	p := FromNode("b").Multiply(FromNode("a")).Add(FromNode("c").Multiply(FromNode("a")))
	got := p.Flatten()
	if !got.Equal(NewNodeList("a", "b", "c")) {
		t.Errorf("expected [a b c], got %v", got)
	}
}

func TestFromPartsForcesPlain(t *testing.T) {
	p := FromParts([]Monomial{{"a"}, {"b"}}, true)
	if p.IsPlain() {
		t.Error("multi-monomial polynomial must not be plain")
	}
}

func TestNodeListUnion(t *testing.T) {
	got := NewNodeList("b", "a").Union(NewNodeList("c", "a"))
	if !got.Equal(NewNodeList("a", "b", "c")) {
		t.Errorf("expected [a b c], got %v", got)
	}
}
