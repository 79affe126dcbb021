package rex

import "github.com/ceslang/go-ces/polynomial"

// FIT transforms a fat arrow rule into a canonical sum of thin rules.
//
// Each binary part (C => E) first becomes two one-sided thin rules: an
// effect-only rule over the nodes of C and a cause-only rule over the nodes
// of E. The resulting sum is then simplified to a fixed point with two
// merge rules, each applied within one polarity:
//
//  1. rules sharing a node list merge by adding their polynomials;
//  2. rules sharing a polynomial merge by unioning their node lists.
//
// Finally an effect-only and a cause-only rule sharing a node list combine
// into a single two-sided rule. Every merge strictly reduces the rule
// count, so the loop terminates; the iteration bound below only guards
// against a future rewrite breaking that property. Note the converse does
// not hold: not every structure expressible through thin rules is reachable
// from fat rules alone.
func (far FatArrowRule) FIT() []ThinArrowRule {
	var txRules, rxRules []ThinArrowRule

	for _, part := range far.Parts {
		txRules = append(txRules, ThinArrowRule{
			Nodes:  part.Cause.Flatten(),
			Effect: part.Effect,
		})
		rxRules = append(rxRules, ThinArrowRule{
			Nodes: part.Effect.Flatten(),
			Cause: part.Cause,
		})
	}

	for bound := len(txRules) + len(rxRules); bound >= 0; bound-- {
		atFixpoint := true

		txRules = mergeByNodes(txRules, &atFixpoint)
		rxRules = mergeByNodes(rxRules, &atFixpoint)
		txRules = mergeByPolynomial(txRules, &atFixpoint)
		rxRules = mergeByPolynomial(rxRules, &atFixpoint)

		if atFixpoint {
			break
		}
	}

	// Pair up leftover one-sided rules over a common node list.
outer:
	for _, rx := range rxRules {
		for i := range txRules {
			if txRules[i].Nodes.Equal(rx.Nodes) {
				txRules[i].Cause = rx.Cause
				continue outer
			}
		}
		txRules = append(txRules, rx)
	}

	return txRules
}

// mergeByNodes folds together same-polarity rules with an identical node
// list by summing their polynomials.
func mergeByNodes(rules []ThinArrowRule, atFixpoint *bool) []ThinArrowRule {
	merged := rules[:0:0]
next:
	for _, rule := range rules {
		for i := range merged {
			if merged[i].Nodes.Equal(rule.Nodes) {
				merged[i].Cause = addNonEmpty(merged[i].Cause, rule.Cause)
				merged[i].Effect = addNonEmpty(merged[i].Effect, rule.Effect)
				*atFixpoint = false
				continue next
			}
		}
		merged = append(merged, rule)
	}
	return merged
}

// mergeByPolynomial folds together same-polarity rules with an identical
// non-list-side polynomial by unioning their node lists.
func mergeByPolynomial(rules []ThinArrowRule, atFixpoint *bool) []ThinArrowRule {
	merged := rules[:0:0]
next:
	for _, rule := range rules {
		for i := range merged {
			if merged[i].Cause.Equal(rule.Cause) && merged[i].Effect.Equal(rule.Effect) {
				merged[i].Nodes = merged[i].Nodes.Union(rule.Nodes)
				*atFixpoint = false
				continue next
			}
		}
		merged = append(merged, rule)
	}
	return merged
}

func addNonEmpty(p, q polynomial.Polynomial) polynomial.Polynomial {
	switch {
	case p.IsEmpty():
		return q
	case q.IsEmpty():
		return p
	default:
		return p.Add(q)
	}
}
