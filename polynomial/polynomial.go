// Package polynomial implements the sum-of-products algebra over node
// identifiers that underlies cause-effect rule expressions.
// A polynomial is a sum of monomials; a monomial is an ordered product of
// node occurrences. Both operations are structural: addition concatenates
// monomial lists and multiplication distributes fully, so no simplification
// happens behind the caller's back and output order is deterministic.
package polynomial

import (
	"fmt"
	"sort"
	"strings"
)

// Monomial is an ordered product of node occurrences. Repetition is allowed
// and meaningful (it carries multiplicity).
type Monomial []string

// Equal reports whether two monomials contain the same occurrences in the
// same order.
func (m Monomial) Equal(other Monomial) bool {
	if len(m) != len(other) {
		return false
	}
	for i, id := range m {
		if id != other[i] {
			return false
		}
	}
	return true
}

// String renders the monomial as juxtaposed identifiers.
func (m Monomial) String() string {
	return strings.Join(m, " ")
}

// Polynomial is a sum of monomials over node identifiers.
//
// The plain flag records how the value was built rather than what it
// contains: it is true only for polynomials constructed purely by
// juxtaposition of identifiers, with no '+' and no parenthesized
// sub-polynomial. The surface grammar reuses one production for general
// polynomials and for node lists, so positions that require a node list
// check this flag instead of re-deriving shape.
type Polynomial struct {
	monomials []Monomial
	plain     bool
}

// New returns the empty polynomial (zero monomials). It is plain.
func New() Polynomial {
	return Polynomial{plain: true}
}

// FromNode returns the single-occurrence polynomial for one identifier.
func FromNode(id string) Polynomial {
	return Polynomial{monomials: []Monomial{{id}}, plain: true}
}

// FromParts reconstructs a polynomial from explicit monomials and the plain
// flag carried by an external front end. A polynomial with more than one
// monomial can never be plain, whatever the flag claims.
func FromParts(monomials []Monomial, plain bool) Polynomial {
	ms := make([]Monomial, len(monomials))
	for i, m := range monomials {
		ms[i] = append(Monomial(nil), m...)
	}
	if len(ms) > 1 {
		plain = false
	}
	return Polynomial{monomials: ms, plain: plain}
}

// IsEmpty reports whether the polynomial has no monomials.
func (p Polynomial) IsEmpty() bool {
	return len(p.monomials) == 0
}

// IsPlain reports whether the polynomial was built solely by juxtaposition
// of identifiers.
func (p Polynomial) IsPlain() bool {
	return p.plain
}

// Len returns the number of monomials.
func (p Polynomial) Len() int {
	return len(p.monomials)
}

// Monomials returns a copy of the monomial list in construction order.
func (p Polynomial) Monomials() []Monomial {
	out := make([]Monomial, len(p.monomials))
	for i, m := range p.monomials {
		out[i] = append(Monomial(nil), m...)
	}
	return out
}

// Grouped returns a copy marked as parenthesized. Grouping does not change
// the monomials but disqualifies the value from node-list positions.
func (p Polynomial) Grouped() Polynomial {
	q := p.clone()
	q.plain = false
	return q
}

// Add returns the sum of p and q: the monomials of both, p's first.
// Monomial order is preserved and duplicates are kept, so repeated addition
// stays deterministic. The result is never plain.
func (p Polynomial) Add(q Polynomial) Polynomial {
	ms := make([]Monomial, 0, len(p.monomials)+len(q.monomials))
	ms = append(ms, p.clone().monomials...)
	ms = append(ms, q.clone().monomials...)
	return Polynomial{monomials: ms, plain: false}
}

// Multiply returns the product of p and q by full distribution: |p|*|q|
// monomials, each the concatenation of one monomial of p and one of q, with
// p's occurrences first. An empty operand yields the empty polynomial. The
// result is plain only when both operands are plain.
func (p Polynomial) Multiply(q Polynomial) Polynomial {
	if p.IsEmpty() || q.IsEmpty() {
		return Polynomial{plain: p.plain && q.plain}
	}
	ms := make([]Monomial, 0, len(p.monomials)*len(q.monomials))
	for _, pm := range p.monomials {
		for _, qm := range q.monomials {
			mono := make(Monomial, 0, len(pm)+len(qm))
			mono = append(mono, pm...)
			mono = append(mono, qm...)
			ms = append(ms, mono)
		}
	}
	return Polynomial{monomials: ms, plain: p.plain && q.plain}
}

// Equal reports structural equality: same monomials in the same order.
// The plain flag does not participate; it is provenance, not content.
func (p Polynomial) Equal(q Polynomial) bool {
	if len(p.monomials) != len(q.monomials) {
		return false
	}
	for i, m := range p.monomials {
		if !m.Equal(q.monomials[i]) {
			return false
		}
	}
	return true
}

// NodeList extracts the node list from a plain polynomial: the sorted,
// deduplicated set of identifiers of its single monomial. It fails with
// *InvalidNodeListError when the polynomial is not plain.
func (p Polynomial) NodeList() (NodeList, error) {
	if !p.plain || len(p.monomials) > 1 {
		return nil, &InvalidNodeListError{Polynomial: p.String()}
	}
	if len(p.monomials) == 0 {
		return nil, nil
	}
	return newNodeList(p.monomials[0]), nil
}

// Flatten collects every node occurring anywhere in the polynomial into one
// sorted, deduplicated node list. Unlike NodeList it accepts any shape; FIT
// uses it to derive the node list of a rule from an arbitrary polynomial.
func (p Polynomial) Flatten() NodeList {
	var all []string
	for _, m := range p.monomials {
		all = append(all, m...)
	}
	return newNodeList(all)
}

// String renders the polynomial with '+' between monomials, e.g. "a b + c".
func (p Polynomial) String() string {
	if len(p.monomials) == 0 {
		return "0"
	}
	parts := make([]string, len(p.monomials))
	for i, m := range p.monomials {
		parts[i] = m.String()
	}
	return strings.Join(parts, " + ")
}

func (p Polynomial) clone() Polynomial {
	ms := make([]Monomial, len(p.monomials))
	for i, m := range p.monomials {
		ms[i] = append(Monomial(nil), m...)
	}
	return Polynomial{monomials: ms, plain: p.plain}
}

// NodeList is a sorted, deduplicated list of node identifiers.
type NodeList []string

func newNodeList(ids []string) NodeList {
	if len(ids) == 0 {
		return nil
	}
	out := append(NodeList(nil), ids...)
	sort.Strings(out)
	n := 1
	for i := 1; i < len(out); i++ {
		if out[i] != out[i-1] {
			out[n] = out[i]
			n++
		}
	}
	return out[:n]
}

// NewNodeList builds a node list from identifiers, sorting and deduplicating.
func NewNodeList(ids ...string) NodeList {
	return newNodeList(ids)
}

// Union returns the merged, still sorted and deduplicated, node list.
func (l NodeList) Union(other NodeList) NodeList {
	return newNodeList(append(append([]string(nil), l...), other...))
}

// Equal reports whether two node lists contain the same identifiers.
func (l NodeList) Equal(other NodeList) bool {
	if len(l) != len(other) {
		return false
	}
	for i, id := range l {
		if id != other[i] {
			return false
		}
	}
	return true
}

// Contains reports whether id is a member of the list.
func (l NodeList) Contains(id string) bool {
	i := sort.SearchStrings(l, id)
	return i < len(l) && l[i] == id
}

// String renders the list as juxtaposed identifiers.
func (l NodeList) String() string {
	return strings.Join(l, " ")
}

// InvalidNodeListError is returned when a node-list position receives a
// polynomial that is not plain.
type InvalidNodeListError struct {
	Polynomial string
}

func (e *InvalidNodeListError) Error() string {
	return fmt.Sprintf("polynomial %q is not a node list", e.Polynomial)
}
