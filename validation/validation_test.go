package validation

import (
	"testing"

	"github.com/ceslang/go-ces/ces"
	"github.com/ceslang/go-ces/polynomial"
)

// loop builds the smallest coherent structure: a <-> b with both sides of
// each node populated.
func loop() *ces.Structure {
	s := ces.NewStructure("Main")
	a := s.EnsureNode("a")
	b := s.EnsureNode("b")
	a.AddEffect(polynomial.FromNode("b"))
	a.AddCause(polynomial.FromNode("b"))
	b.AddEffect(polynomial.FromNode("a"))
	b.AddCause(polynomial.FromNode("a"))
	s.AddEffectLink("a", "b")
	s.AddCauseLink("a", "b")
	s.AddEffectLink("b", "a")
	s.AddCauseLink("b", "a")
	return s
}

// arrow builds the canonical dangling structure: a -> b with no closing
// rule, so a only sends and b only receives.
func arrow() *ces.Structure {
	s := ces.NewStructure("Main")
	s.EnsureNode("a").AddEffect(polynomial.FromNode("b"))
	s.EnsureNode("b").AddCause(polynomial.FromNode("a"))
	s.AddEffectLink("a", "b")
	s.AddCauseLink("a", "b")
	return s
}

func TestValidateCoherentLoop(t *testing.T) {
	result := Validate(loop(), Strict)
	if !result.Valid {
		t.Fatalf("expected a coherent loop to validate, got errors %v", result.Errors)
	}
	if !result.Summary.Coherent {
		t.Error("expected the summary to report coherence")
	}
	if len(result.Warnings) != 0 {
		t.Errorf("expected no warnings, got %v", result.Warnings)
	}
}

func TestDanglingNodes(t *testing.T) {
	got := DanglingNodes(arrow())
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("expected both arrow ends to dangle, got %v", got)
	}
}

func TestPolicyJudgment(t *testing.T) {
	tests := []struct {
		name         string
		policy       Policy
		wantValid    bool
		wantWarnings int
		wantErrors   int
	}{
		{"permissive warns", Permissive, true, 2, 0},
		{"strict rejects", Strict, false, 0, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Validate(arrow(), tt.policy)
			if result.Valid != tt.wantValid {
				t.Errorf("expected valid=%v, got %v", tt.wantValid, result.Valid)
			}
			if len(result.Warnings) != tt.wantWarnings {
				t.Errorf("expected %d warnings, got %v", tt.wantWarnings, result.Warnings)
			}
			if len(result.Errors) != tt.wantErrors {
				t.Errorf("expected %d errors, got %v", tt.wantErrors, result.Errors)
			}
			if result.Summary.Coherent {
				t.Error("expected the summary to report incoherence")
			}
		})
	}
}

func TestValidateEmptyStructure(t *testing.T) {
	result := Validate(ces.NewStructure("Main"), Permissive)
	if !result.Valid {
		t.Error("an empty structure warns but stays valid")
	}
	if len(result.Warnings) == 0 {
		t.Error("expected a structure warning for the empty structure")
	}
}

func TestValidateZeroWeight(t *testing.T) {
	s := loop()
	s.SetWeight("a", "b", 0)
	result := Validate(s, Permissive)
	if result.Valid {
		t.Error("expected zero-weight link to be an error")
	}
}

func TestIsolatedNodeIsNotDangling(t *testing.T) {
	s := loop()
	s.EnsureNode("z")
	if got := DanglingNodes(s); len(got) != 0 {
		t.Errorf("a node with no incident links must not count as dangling, got %v", got)
	}
}
