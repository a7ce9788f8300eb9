package parsers

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ethanolivertroy/depfix/internal/graph"
)

// Parser is the interface for dependency tree listing parsers.
type Parser interface {
	// CanParse returns true if this parser can handle the given filename
	CanParse(filename string) bool

	// Parse converts the listing content into a nested dependency tree
	Parse(path string, content []byte) (*graph.TreeNode, error)
}

// GetAllParsers returns all available parsers, most specific first.
func GetAllParsers() []Parser {
	return []Parser{
		&TreeJSONParser{},
		&TreeTextParser{},
	}
}

// ParseFile reads path and parses it with the first matching parser.
func ParseFile(path string) (*graph.TreeNode, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dependency tree %s: %w", path, err)
	}
	filename := filepath.Base(path)
	for _, p := range GetAllParsers() {
		if p.CanParse(filename) {
			return p.Parse(path, content)
		}
	}
	return nil, fmt.Errorf("no parser for %s", filename)
}
