package rex

import (
	"github.com/ceslang/go-ces/ces"
)

// Ports returns the send and receive ports generated by a thin rule, one
// port per occurrence in the corresponding operand. The rule's node list
// sends when the rule has an effect polynomial and receives when it has a
// cause polynomial.
func (r ThinArrowRule) Ports() (sends, receives []ces.Port) {
	if !r.Effect.IsEmpty() {
		for _, n := range r.Nodes {
			sends = append(sends, ces.Port{Node: n, Polarity: ces.Send})
		}
		for _, m := range r.Effect.Monomials() {
			for _, id := range m {
				receives = append(receives, ces.Port{Node: id, Polarity: ces.Receive})
			}
		}
	}
	if !r.Cause.IsEmpty() {
		for _, m := range r.Cause.Monomials() {
			for _, id := range m {
				sends = append(sends, ces.Port{Node: id, Polarity: ces.Send})
			}
		}
		for _, n := range r.Nodes {
			receives = append(receives, ces.Port{Node: n, Polarity: ces.Receive})
		}
	}
	return sends, receives
}

// Links derives the classified links of a single thin rule. With node list
// N, cause C and effect E, the effect pair set is N x nodes(E) and the
// cause pair set is nodes(C) x N; a pair in only one set yields a one-sided
// link, a pair in both yields a full link. Every link carries the default
// weight. The pair sets grow as the product of the operand sizes, which is
// the cost bound callers should keep in mind for very large rules.
func (r ThinArrowRule) Links() []ces.Link {
	type pair struct{ source, target string }

	var txOrder []pair
	txSet := make(map[pair]struct{})
	if !r.Effect.IsEmpty() {
		for _, n := range r.Nodes {
			for _, e := range r.Effect.Flatten() {
				p := pair{n, e}
				if _, ok := txSet[p]; !ok {
					txSet[p] = struct{}{}
					txOrder = append(txOrder, p)
				}
			}
		}
	}

	var rxOrder []pair
	rxSet := make(map[pair]struct{})
	if !r.Cause.IsEmpty() {
		for _, c := range r.Cause.Flatten() {
			for _, n := range r.Nodes {
				p := pair{c, n}
				if _, ok := rxSet[p]; !ok {
					rxSet[p] = struct{}{}
					rxOrder = append(rxOrder, p)
				}
			}
		}
	}

	var links []ces.Link
	for _, p := range txOrder {
		kind := ces.EffectOnly
		if _, ok := rxSet[p]; ok {
			kind = ces.Full
		}
		links = append(links, ces.Link{Source: p.source, Target: p.target, Kind: kind, Weight: 1})
	}
	for _, p := range rxOrder {
		if _, ok := txSet[p]; ok {
			continue // already emitted as full
		}
		links = append(links, ces.Link{Source: p.source, Target: p.target, Kind: ces.CauseOnly, Weight: 1})
	}
	return links
}

// Apply accumulates one thin rule into a structure: it creates every
// mentioned node, adds the rule's polynomials to the node list's cause and
// effect accumulators, and records the rule's half-links.
func Apply(r ThinArrowRule, s *ces.Structure) {
	for _, n := range r.Nodes {
		node := s.EnsureNode(n)
		if !r.Effect.IsEmpty() {
			node.AddEffect(r.Effect)
		}
		if !r.Cause.IsEmpty() {
			node.AddCause(r.Cause)
		}
	}
	for _, id := range r.Effect.Flatten() {
		s.EnsureNode(id)
	}
	for _, id := range r.Cause.Flatten() {
		s.EnsureNode(id)
	}
	for _, l := range r.Links() {
		switch l.Kind {
		case ces.EffectOnly:
			s.AddEffectLink(l.Source, l.Target)
		case ces.CauseOnly:
			s.AddCauseLink(l.Source, l.Target)
		case ces.Full:
			s.AddEffectLink(l.Source, l.Target)
			s.AddCauseLink(l.Source, l.Target)
		}
	}
}
