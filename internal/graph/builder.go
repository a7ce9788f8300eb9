package graph

import (
	"github.com/ethanolivertroy/depfix/internal/models"
)

// TreeNode is the nested input form produced by a build tool dependency
// listing: a coordinate plus ordered children.
type TreeNode struct {
	Coordinate models.Coordinate
	Children   []*TreeNode
}

// Build converts a nested dependency tree into a populated Graph: pre-order
// traversal assigning depth and parent/child links, direct classification
// at depth 1, and a centrality score per distinct coordinate. A nil root or
// a cycle yields a MalformedTreeError and no graph at all.
func Build(root *TreeNode) (*Graph, error) {
	if root == nil {
		return nil, &MalformedTreeError{Reason: "empty tree"}
	}
	g := newGraph()
	// Visited is keyed by object identity, not coordinate: diamonds repeat
	// coordinates but never objects, so only a genuine cycle trips it.
	visited := make(map[*TreeNode]bool)
	if err := buildNode(g, root, NoParent, visited); err != nil {
		return nil, err
	}
	computeCentrality(g)
	return g, nil
}

func buildNode(g *Graph, t *TreeNode, parent NodeID, visited map[*TreeNode]bool) error {
	if visited[t] {
		return &MalformedTreeError{Reason: "cycle through " + t.Coordinate.String()}
	}
	visited[t] = true

	n, err := g.add(t.Coordinate, parent)
	if err != nil {
		return err
	}
	for _, child := range t.Children {
		if child == nil {
			return &MalformedTreeError{Reason: "nil child under " + t.Coordinate.String()}
		}
		if err := buildNode(g, child, n.ID, visited); err != nil {
			return err
		}
	}
	return nil
}

// computeCentrality scores each distinct coordinate as
//
//	occurrences + Σ 1/depth(occurrence)
//
// and stamps the value on every occurrence. The occurrence count dominates
// for widely duplicated libraries while the bounded 1/depth term breaks
// ties toward shallow placements. The root's own term is 1: a node cannot
// sit closer to the root than the root.
func computeCentrality(g *Graph) {
	for _, ids := range g.byGA {
		score := float64(len(ids))
		for _, id := range ids {
			if d := g.nodes[id].Depth; d > 0 {
				score += 1 / float64(d)
			} else {
				score++
			}
		}
		for _, id := range ids {
			g.nodes[id].Centrality = score
		}
	}
}
