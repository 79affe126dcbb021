// Package validation provides structural and coherence analysis for
// compiled cause-effect structures.
package validation

import (
	"fmt"

	"github.com/ceslang/go-ces/ces"
)

// Policy selects the global acceptance judgment for candidate dangling
// nodes. The precise predicate for boundary source and sink nodes is a
// modeling choice, so it stays configurable instead of hard-coded: the
// default policy reports candidates as warnings, the strict policy rejects
// them.
type Policy int

const (
	// Permissive reports candidate dangling nodes as warnings.
	Permissive Policy = iota
	// Strict turns candidate dangling nodes into errors.
	Strict
)

// Result contains the outcome of validating one structure.
type Result struct {
	Valid    bool    `json:"valid"`
	Errors   []Issue `json:"errors,omitempty"`
	Warnings []Issue `json:"warnings,omitempty"`
	Info     []Issue `json:"info,omitempty"`
	Summary  Summary `json:"summary"`
}

// Issue represents one validation finding.
type Issue struct {
	Severity   string   `json:"severity"` // "error", "warning", "info"
	Category   string   `json:"category"` // "structure", "coherence", "weights"
	Message    string   `json:"message"`
	Location   []string `json:"location,omitempty"` // affected nodes
	Suggestion string   `json:"suggestion,omitempty"`
}

// Summary provides an overview of the validated structure.
type Summary struct {
	Nodes      int  `json:"nodes"`
	Links      int  `json:"links"`
	Inhibitors int  `json:"inhibitors"`
	Errors     int  `json:"errors"`
	Warnings   int  `json:"warnings"`
	Coherent   bool `json:"coherent"`
}

// Validator performs validation checks over one structure.
type Validator struct {
	structure *ces.Structure
	policy    Policy
	result    *Result
}

// NewValidator creates a validator with the given coherence policy.
func NewValidator(s *ces.Structure, policy Policy) *Validator {
	return &Validator{
		structure: s,
		policy:    policy,
		result: &Result{
			Valid: true,
			Summary: Summary{
				Nodes:      s.NodeCount(),
				Links:      len(s.Links()),
				Inhibitors: len(s.Inhibitors()),
			},
		},
	}
}

// Validate runs all checks and returns the collected result.
func (v *Validator) Validate() *Result {
	v.checkStructure()
	v.checkCoherence()

	v.result.Valid = len(v.result.Errors) == 0
	v.result.Summary.Errors = len(v.result.Errors)
	v.result.Summary.Warnings = len(v.result.Warnings)
	return v.result
}

// Validate is a convenience wrapper running a full validation pass.
func Validate(s *ces.Structure, policy Policy) *Result {
	return NewValidator(s, policy).Validate()
}

// DanglingNodes returns the identifiers of every node with at least one
// incident link whose cause and effect polynomials are not both empty and
// not both non-empty. These are the coherence candidates the policy judges.
func DanglingNodes(s *ces.Structure) []string {
	var dangling []string
	for _, id := range s.NodeIDs() {
		if s.Degree(id) == 0 {
			continue
		}
		node := s.Node(id)
		if node.Cause.IsEmpty() != node.Effect.IsEmpty() {
			dangling = append(dangling, id)
		}
	}
	return dangling
}

func (v *Validator) checkStructure() {
	if v.structure.NodeCount() == 0 {
		v.addWarning("structure", "structure has no nodes", nil,
			"Add at least one rule to the root definition")
		return
	}
	if len(v.structure.Links()) == 0 {
		v.addWarning("structure", "structure has no links", nil,
			"Add arrow rules to relate the nodes")
	}
	for _, l := range v.structure.Links() {
		if l.Weight == 0 {
			v.addError("weights", fmt.Sprintf("link %s -> %s has zero weight", l.Source, l.Target),
				[]string{l.Source, l.Target}, "Set the multiplier to a positive value")
		}
	}
}

// checkCoherence computes, per linked node, whether its cause and effect
// polynomials are both non-empty or both empty. A node with exactly one
// side non-empty dangles: it sends without ever receiving or the other way
// around.
func (v *Validator) checkCoherence() {
	dangling := DanglingNodes(v.structure)
	v.result.Summary.Coherent = len(dangling) == 0
	if len(dangling) == 0 {
		v.addInfo("coherence", "every linked node has both cause and effect polynomials", nil)
		return
	}

	for _, id := range dangling {
		node := v.structure.Node(id)
		side := "effect"
		if node.Effect.IsEmpty() {
			side = "cause"
		}
		msg := fmt.Sprintf("node %q has only a %s polynomial", id, side)
		suggestion := "Close the loop with a rule on the opposite side, or accept it as a boundary node"
		if v.policy == Strict {
			v.addError("coherence", msg, []string{id}, suggestion)
		} else {
			v.addWarning("coherence", msg, []string{id}, suggestion)
		}
	}
}

func (v *Validator) addError(category, message string, location []string, suggestion string) {
	v.result.Errors = append(v.result.Errors, Issue{
		Severity: "error", Category: category, Message: message,
		Location: location, Suggestion: suggestion,
	})
}

func (v *Validator) addWarning(category, message string, location []string, suggestion string) {
	v.result.Warnings = append(v.result.Warnings, Issue{
		Severity: "warning", Category: category, Message: message,
		Location: location, Suggestion: suggestion,
	})
}

func (v *Validator) addInfo(category, message string, location []string) {
	v.result.Info = append(v.result.Info, Issue{
		Severity: "info", Category: category, Message: message, Location: location,
	})
}
