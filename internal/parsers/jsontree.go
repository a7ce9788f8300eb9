package parsers

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ethanolivertroy/depfix/internal/graph"
	"github.com/ethanolivertroy/depfix/internal/models"
)

// TreeJSONParser parses a pre-structured nested dependency tree, the format
// emitted by build system plugins that already resolved the hierarchy.
type TreeJSONParser struct{}

// CanParse returns true for .json files.
func (p *TreeJSONParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".json")
}

// jsonTreeNode is one node of the JSON tree input. A node names its
// coordinate either with explicit fields or a combined "coordinate" string.
type jsonTreeNode struct {
	Coordinate string         `json:"coordinate"`
	Group      string         `json:"group"`
	Artifact   string         `json:"artifact"`
	Version    string         `json:"version"`
	Children   []jsonTreeNode `json:"children"`
}

// Parse converts JSON tree content into a nested TreeNode.
func (p *TreeJSONParser) Parse(path string, content []byte) (*graph.TreeNode, error) {
	var root jsonTreeNode
	if err := json.Unmarshal(content, &root); err != nil {
		return nil, fmt.Errorf("failed to parse dependency tree %s: %w", path, err)
	}
	return convertJSONNode(path, root)
}

func convertJSONNode(path string, jn jsonTreeNode) (*graph.TreeNode, error) {
	var coord models.Coordinate
	switch {
	case jn.Coordinate != "":
		c, err := models.ParseCoordinate(jn.Coordinate)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		coord = c
	case jn.Group != "" && jn.Artifact != "":
		coord = models.Coordinate{Group: jn.Group, Artifact: jn.Artifact, Version: jn.Version}
	default:
		return nil, fmt.Errorf("%s: tree node without a coordinate", path)
	}

	node := &graph.TreeNode{Coordinate: coord}
	for _, child := range jn.Children {
		cn, err := convertJSONNode(path, child)
		if err != nil {
			return nil, err
		}
		node.Children = append(node.Children, cn)
	}
	return node, nil
}
