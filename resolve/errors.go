package resolve

import (
	"fmt"
	"strings"
)

// DuplicateNameError reports two structure definitions sharing a name.
type DuplicateNameError struct {
	Name string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("structure %q is defined more than once", e.Name)
}

// UndefinedStructureError reports an instantiation of an unknown name.
type UndefinedStructureError struct {
	Name string
}

func (e *UndefinedStructureError) Error() string {
	return fmt.Sprintf("structure %q is not defined", e.Name)
}

// ArityOrTypeMismatchError reports a template call whose argument count or
// kinds do not match the declared parameter list. Param is empty for pure
// arity mismatches.
type ArityOrTypeMismatchError struct {
	Name      string
	WantArity int
	GotArity  int
	Param     string
	WantKind  string
	GotKind   string
}

func (e *ArityOrTypeMismatchError) Error() string {
	if e.Param == "" {
		return fmt.Sprintf("structure %q expects %d arguments, got %d",
			e.Name, e.WantArity, e.GotArity)
	}
	return fmt.Sprintf("structure %q parameter %q expects a %s argument, got %s",
		e.Name, e.Param, e.WantKind, e.GotKind)
}

// CyclicInstantiationError reports a structure that transitively
// instantiates itself. Path lists the instantiation chain from the root to
// the repeated name.
type CyclicInstantiationError struct {
	Name string
	Path []string
}

func (e *CyclicInstantiationError) Error() string {
	return fmt.Sprintf("cyclic instantiation of %q via %s",
		e.Name, strings.Join(append(append([]string(nil), e.Path...), e.Name), " -> "))
}

// MissingRootError reports a file without the root structure definition.
type MissingRootError struct {
	Root string
}

func (e *MissingRootError) Error() string {
	return fmt.Sprintf("missing root structure %q", e.Root)
}

// IncoherentStructureError reports candidate dangling nodes rejected under
// the strict coherence policy.
type IncoherentStructureError struct {
	Nodes []string
}

func (e *IncoherentStructureError) Error() string {
	return fmt.Sprintf("incoherent structure: dangling nodes %s", strings.Join(e.Nodes, ", "))
}
