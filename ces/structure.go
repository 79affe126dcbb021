// Package ces implements the core cause-effect structure data model.
// A c-e structure consists of Nodes (atomic identifiers with a label and a
// capacity), directed weighted Links between send and receive ports, and
// inhibitor arcs layered over the ordinary links.
package ces

import (
	"sort"
	"strconv"

	"github.com/google/uuid"

	"github.com/ceslang/go-ces/polynomial"
)

// Capacity bounds the token count a node can hold. Zero is the omega
// marker: unbounded.
type Capacity uint64

// Omega is the unbounded capacity marker.
const Omega Capacity = 0

// DefaultCapacity applies to every node without an explicit override.
const DefaultCapacity Capacity = 1

// IsOmega reports whether the capacity is unbounded.
func (c Capacity) IsOmega() bool { return c == Omega }

func (c Capacity) String() string {
	if c.IsOmega() {
		return "ω"
	}
	return strconv.FormatUint(uint64(c), 10)
}

// Polarity distinguishes the two faces of a port.
type Polarity int

const (
	// Send is the transmitting face of a node.
	Send Polarity = iota
	// Receive is the accepting face of a node.
	Receive
)

func (p Polarity) String() string {
	if p == Send {
		return "send"
	}
	return "receive"
}

// Port is one face of a node, generated by a rule.
type Port struct {
	Node     string
	Polarity Polarity
}

// LinkKind classifies a link by which rule polarities produced it.
// A link derived only from an effect polynomial is EffectOnly, only from a
// cause polynomial CauseOnly, and from both Full.
type LinkKind int

const (
	// EffectOnly marks a link backed solely by a sender's effect polynomial.
	EffectOnly LinkKind = iota
	// CauseOnly marks a link backed solely by a receiver's cause polynomial.
	CauseOnly
	// Full marks a link backed by both faces.
	Full
)

func (k LinkKind) String() string {
	switch k {
	case EffectOnly:
		return "effect"
	case CauseOnly:
		return "cause"
	default:
		return "full"
	}
}

// Node is the basic unit of a c-e structure. The label defaults to the
// identifier and the capacity to one. Cause and Effect accumulate, across
// the whole resolved rule expression, the polynomials of every rule in
// which the node receives or sends.
type Node struct {
	ID       string
	Label    string
	Capacity Capacity
	Cause    polynomial.Polynomial
	Effect   polynomial.Polynomial
}

// AddCause accumulates a cause polynomial onto the node.
func (n *Node) AddCause(p polynomial.Polynomial) {
	if n.Cause.IsEmpty() {
		n.Cause = p
		return
	}
	n.Cause = n.Cause.Add(p)
}

// AddEffect accumulates an effect polynomial onto the node.
func (n *Node) AddEffect(p polynomial.Polynomial) {
	if n.Effect.IsEmpty() {
		n.Effect = p
		return
	}
	n.Effect = n.Effect.Add(p)
}

// Link is a directed, weighted, kind-tagged relation between a send port
// and a receive port.
type Link struct {
	Source string
	Target string
	Kind   LinkKind
	Weight uint64
}

// InhibitorArc suppresses its target while the source holds tokens. It has
// no weight and never replaces an ordinary link.
type InhibitorArc struct {
	Source string
	Target string
}

// Structure is the compiled c-e structure: the final artifact of resolving
// one source file. It is built once per resolution and must not be mutated
// after validation accepts it.
type Structure struct {
	ID    string
	Name  string
	nodes map[string]*Node

	links     []*Link
	linkIndex map[[2]string]*Link

	inhibitors   []InhibitorArc
	inhibitorSet map[[2]string]struct{}
}

// NewStructure creates an empty structure for the named root definition,
// tagged with a fresh unique identifier.
func NewStructure(name string) *Structure {
	return &Structure{
		ID:           uuid.New().String(),
		Name:         name,
		nodes:        make(map[string]*Node),
		linkIndex:    make(map[[2]string]*Link),
		inhibitorSet: make(map[[2]string]struct{}),
	}
}

// EnsureNode returns the node with the given identifier, creating it lazily
// on first mention with the default label and capacity.
func (s *Structure) EnsureNode(id string) *Node {
	if n, ok := s.nodes[id]; ok {
		return n
	}
	n := &Node{ID: id, Label: id, Capacity: DefaultCapacity}
	s.nodes[id] = n
	return n
}

// Node returns the node with the given identifier, or nil.
func (s *Structure) Node(id string) *Node {
	return s.nodes[id]
}

// NodeCount returns the number of nodes.
func (s *Structure) NodeCount() int { return len(s.nodes) }

// NodeIDs returns all node identifiers in sorted order.
func (s *Structure) NodeIDs() []string {
	ids := make([]string, 0, len(s.nodes))
	for id := range s.nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// AddEffectLink records the effect half of a link from source to target.
// If the cause half is already present the link becomes Full.
func (s *Structure) AddEffectLink(source, target string) *Link {
	return s.addHalfLink(source, target, EffectOnly)
}

// AddCauseLink records the cause half of a link from source to target.
// If the effect half is already present the link becomes Full.
func (s *Structure) AddCauseLink(source, target string) *Link {
	return s.addHalfLink(source, target, CauseOnly)
}

func (s *Structure) addHalfLink(source, target string, kind LinkKind) *Link {
	key := [2]string{source, target}
	if l, ok := s.linkIndex[key]; ok {
		if l.Kind != kind {
			l.Kind = Full
		}
		return l
	}
	l := &Link{Source: source, Target: target, Kind: kind, Weight: 1}
	s.linkIndex[key] = l
	s.links = append(s.links, l)
	return l
}

// Link returns the link from source to target, or nil.
func (s *Structure) Link(source, target string) *Link {
	return s.linkIndex[[2]string{source, target}]
}

// Links returns all links in insertion order.
func (s *Structure) Links() []*Link {
	return s.links
}

// SetWeight overrides the weight of an existing link and reports whether
// the link was found.
func (s *Structure) SetWeight(source, target string, weight uint64) bool {
	l := s.Link(source, target)
	if l == nil {
		return false
	}
	l.Weight = weight
	return true
}

// AddInhibitor records an inhibitor arc. Repeated declarations of the same
// arc collapse into one.
func (s *Structure) AddInhibitor(source, target string) {
	key := [2]string{source, target}
	if _, ok := s.inhibitorSet[key]; ok {
		return
	}
	s.inhibitorSet[key] = struct{}{}
	s.inhibitors = append(s.inhibitors, InhibitorArc{Source: source, Target: target})
}

// Inhibitors returns all inhibitor arcs in insertion order.
func (s *Structure) Inhibitors() []InhibitorArc {
	return s.inhibitors
}

// Degree returns the number of links incident to the node, in either
// direction.
func (s *Structure) Degree(id string) int {
	count := 0
	for _, l := range s.links {
		if l.Source == id || l.Target == id {
			count++
		}
	}
	return count
}

