// Package graph models one resolved dependency tree per analysis run.
//
// Nodes live in a pre-order arena and reference each other by arena ID, so
// the structure carries no cyclic pointers. A (group, artifact) pair may
// occur at several positions when the build tool resolved it redundantly
// (diamond dependency); each position is a distinct node and a side index
// from library identity to occurrence IDs supports aggregate queries.
package graph

import (
	"github.com/ethanolivertroy/depfix/internal/models"
)

// NodeID addresses a node within its run's arena.
type NodeID int

// NoParent is the parent ID of the root node.
const NoParent NodeID = -1

// Node is one occurrence of a dependency in the resolved tree.
type Node struct {
	ID         NodeID
	Coordinate models.Coordinate
	Depth      int  // distance from the root; root is 0
	Direct     bool // declared by the project itself, i.e. depth == 1
	Parent     NodeID
	Children   []NodeID // insertion order follows the input tree traversal
	Centrality float64  // shared across occurrences of the same coordinate

	// Finding is attached by the merge layer; nil until then.
	Finding *models.VulnerabilityFinding
}

// MalformedTreeError reports a structurally invalid input tree: a cycle, a
// missing parent or a second root. It aborts the whole run; no partial
// graph accompanies it.
type MalformedTreeError struct {
	Reason string
}

func (e *MalformedTreeError) Error() string {
	return "malformed dependency tree: " + e.Reason
}

// Graph is the populated dependency graph for one analysis run.
type Graph struct {
	nodes []*Node
	byGA  map[string][]NodeID
}

func newGraph() *Graph {
	return &Graph{byGA: make(map[string][]NodeID)}
}

// add appends a node under parent, assigning depth and the direct flag,
// and records it in the coordinate index. The root must come first and be
// unique; every other node's parent must already exist.
func (g *Graph) add(c models.Coordinate, parent NodeID) (*Node, error) {
	if parent == NoParent && len(g.nodes) > 0 {
		return nil, &MalformedTreeError{Reason: "second root " + c.String()}
	}
	if parent != NoParent && (parent < 0 || int(parent) >= len(g.nodes)) {
		return nil, &MalformedTreeError{Reason: "node " + c.String() + " references a parent that does not exist"}
	}

	depth := 0
	if parent != NoParent {
		depth = g.nodes[parent].Depth + 1
	}
	n := &Node{
		ID:         NodeID(len(g.nodes)),
		Coordinate: c,
		Depth:      depth,
		Direct:     depth == 1,
		Parent:     parent,
	}
	g.nodes = append(g.nodes, n)
	if parent != NoParent {
		p := g.nodes[parent]
		p.Children = append(p.Children, n.ID)
	}
	g.byGA[c.GA()] = append(g.byGA[c.GA()], n.ID)
	return n, nil
}

// Root returns the root node.
func (g *Graph) Root() *Node {
	return g.nodes[0]
}

// Node returns the node with the given arena ID.
func (g *Graph) Node(id NodeID) *Node {
	return g.nodes[id]
}

// Len returns the number of nodes, the root included.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// AllNodes returns every node in deterministic pre-order.
func (g *Graph) AllNodes() []*Node {
	out := make([]*Node, len(g.nodes))
	copy(out, g.nodes)
	return out
}

// Occurrences returns every node sharing c's library identity
// (group and artifact, any version), in pre-order.
func (g *Graph) Occurrences(c models.Coordinate) []*Node {
	ids := g.byGA[c.GA()]
	out := make([]*Node, 0, len(ids))
	for _, id := range ids {
		out = append(out, g.nodes[id])
	}
	return out
}

// OccurrencesExact returns every node matching the full
// (group, artifact, version) triple, in pre-order.
func (g *Graph) OccurrencesExact(c models.Coordinate) []*Node {
	var out []*Node
	for _, id := range g.byGA[c.GA()] {
		if g.nodes[id].Coordinate.Version == c.Version {
			out = append(out, g.nodes[id])
		}
	}
	return out
}

// ParentChain returns the coordinates from the node's parent up to the
// root, nearest first.
func (g *Graph) ParentChain(id NodeID) []models.Coordinate {
	var chain []models.Coordinate
	for p := g.nodes[id].Parent; p != NoParent; p = g.nodes[p].Parent {
		chain = append(chain, g.nodes[p].Coordinate)
	}
	return chain
}

// MaxDepth returns the deepest node's depth.
func (g *Graph) MaxDepth() int {
	max := 0
	for _, n := range g.nodes {
		if n.Depth > max {
			max = n.Depth
		}
	}
	return max
}

// DirectCount returns the number of direct dependency occurrences.
func (g *Graph) DirectCount() int {
	count := 0
	for _, n := range g.nodes {
		if n.Direct {
			count++
		}
	}
	return count
}
