package models

import (
	"fmt"
	"strings"
)

// Coordinate is the immutable identity of a library occurrence:
// group (organization), artifact (module name) and version.
type Coordinate struct {
	Group    string `json:"group"`
	Artifact string `json:"artifact"`
	Version  string `json:"version"`
}

// GA returns the group:artifact identity, used for
// "same library, different version" comparisons.
func (c Coordinate) GA() string {
	return c.Group + ":" + c.Artifact
}

// String returns the full group:artifact:version triple.
func (c Coordinate) String() string {
	return c.GA() + ":" + c.Version
}

// SameLibrary reports whether o names the same library, ignoring version.
func (c Coordinate) SameLibrary(o Coordinate) bool {
	return c.Group == o.Group && c.Artifact == o.Artifact
}

// ParseCoordinate parses "group:artifact:version". Build tools sometimes
// emit extra segments (group:artifact:packaging:version); the last segment
// is taken as the version.
func ParseCoordinate(s string) (Coordinate, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 3 {
		return Coordinate{}, fmt.Errorf("invalid coordinate %q: want group:artifact:version", s)
	}
	return Coordinate{
		Group:    parts[0],
		Artifact: parts[1],
		Version:  parts[len(parts)-1],
	}, nil
}
