package parsers

import (
	"fmt"
	"strings"

	"github.com/ethanolivertroy/depfix/internal/graph"
	"github.com/ethanolivertroy/depfix/internal/models"
)

// TreeTextParser parses the box-drawing output of `mvn dependency:tree`
// and `gradle dependencies` listings. Both the unicode (│ ├ └) and the
// ASCII (| + \) drawing styles are accepted.
type TreeTextParser struct{}

// CanParse accepts anything that is not claimed by a more specific parser.
func (p *TreeTextParser) CanParse(filename string) bool {
	return !strings.HasSuffix(filename, ".json")
}

// Parse converts tree text into a nested TreeNode. The first line is the
// root project; nesting depth comes from the drawing prefix.
func (p *TreeTextParser) Parse(path string, content []byte) (*graph.TreeNode, error) {
	var root *graph.TreeNode
	// Last node seen at each depth; the parent of a depth-d line is the
	// node most recently seen at depth d-1.
	last := make(map[int]*graph.TreeNode)

	for i, line := range strings.Split(string(content), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		depth, rest := splitPrefix(line)
		coord, ok := extractCoordinate(rest)
		if !ok {
			continue
		}

		node := &graph.TreeNode{Coordinate: coord}
		if depth == 0 {
			if root != nil {
				return nil, fmt.Errorf("%s:%d: multiple roots", path, i+1)
			}
			root = node
			last[0] = node
			continue
		}
		parent := last[depth-1]
		if parent == nil {
			return nil, fmt.Errorf("%s:%d: no parent at depth %d for %s", path, i+1, depth, coord)
		}
		parent.Children = append(parent.Children, node)
		last[depth] = node
		// Deeper entries are stale once we pop back up.
		for d := range last {
			if d > depth {
				delete(last, d)
			}
		}
	}

	if root == nil {
		return nil, fmt.Errorf("%s: no dependencies found", path)
	}
	return root, nil
}

// splitPrefix counts the drawing prefix and returns the remaining content.
// Each vertical bar is one ancestor level; a branch character marks the
// node's own level.
func splitPrefix(line string) (int, string) {
	depth := 0
	branch := false
	for i, r := range line {
		switch r {
		case '│', '|':
			depth++
		case '├', '└', '+', '\\':
			branch = true
		case '─', '-', ' ', '\t':
			// connector or padding, keep scanning
		default:
			if branch {
				depth++
			}
			return depth, line[i:]
		}
	}
	return 0, ""
}

// extractCoordinate pulls group:artifact:version out of a tree line,
// dropping parenthetical notes like "(conflict resolved)" and a trailing
// maven scope segment.
func extractCoordinate(rest string) (models.Coordinate, bool) {
	if idx := strings.Index(rest, "("); idx >= 0 {
		rest = rest[:idx]
	}
	rest = strings.TrimSpace(rest)
	if rest == "" {
		return models.Coordinate{}, false
	}

	parts := strings.Split(rest, ":")
	if len(parts) >= 4 && mavenScopes[parts[len(parts)-1]] {
		parts = parts[:len(parts)-1]
	}
	if len(parts) < 3 {
		return models.Coordinate{}, false
	}
	return models.Coordinate{
		Group:    parts[0],
		Artifact: parts[1],
		Version:  parts[len(parts)-1],
	}, true
}

var mavenScopes = map[string]bool{
	"compile":  true,
	"provided": true,
	"runtime":  true,
	"test":     true,
	"system":   true,
	"import":   true,
}
