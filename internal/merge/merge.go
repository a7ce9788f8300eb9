// Package merge joins scanner findings onto graph nodes.
package merge

import (
	"github.com/ethanolivertroy/depfix/internal/graph"
	"github.com/ethanolivertroy/depfix/internal/models"
)

// UnresolvedFindingWarning records a scan finding whose coordinate does not
// appear in the resolved tree. It is collected and surfaced to the caller,
// never raised as an error.
type UnresolvedFindingWarning struct {
	Finding models.VulnerabilityFinding
	Reason  string
}

// Apply attaches findings to every graph occurrence matching the full
// (group, artifact, version) triple. Duplicate advisories for the same
// coordinate merge into one finding: the union of candidate fixed versions,
// the maximum severity under scale, and the extra advisory ids kept as
// aliases. All matching occurrences share the merged finding. Applying the
// same finding list again reproduces the same attached state.
func Apply(g *graph.Graph, findings []models.VulnerabilityFinding, scale models.SeverityScale) []UnresolvedFindingWarning {
	var warnings []UnresolvedFindingWarning
	merged := make(map[string]*models.VulnerabilityFinding)

	for _, f := range findings {
		key := f.Coordinate.String()
		if m, ok := merged[key]; ok {
			mergeInto(m, f, scale)
			continue
		}

		nodes := g.OccurrencesExact(f.Coordinate)
		if len(nodes) == 0 {
			warnings = append(warnings, UnresolvedFindingWarning{
				Finding: f,
				Reason:  "coordinate not present in resolved tree",
			})
			continue
		}

		m := cloneFinding(f)
		merged[key] = m
		for _, n := range nodes {
			n.Finding = m
		}
	}
	return warnings
}

// cloneFinding copies f so merging never mutates the caller's slice, and
// dedupes the reported fixed versions while keeping their order.
func cloneFinding(f models.VulnerabilityFinding) *models.VulnerabilityFinding {
	m := f
	m.FixedVersions = nil
	m.Aliases = append([]string(nil), f.Aliases...)
	seen := make(map[string]bool, len(f.FixedVersions))
	for _, v := range f.FixedVersions {
		if !seen[v] {
			seen[v] = true
			m.FixedVersions = append(m.FixedVersions, v)
		}
	}
	return &m
}

func mergeInto(m *models.VulnerabilityFinding, f models.VulnerabilityFinding, scale models.SeverityScale) {
	m.Severity = scale.Max(m.Severity, f.Severity)

	known := make(map[string]bool, len(m.FixedVersions))
	for _, v := range m.FixedVersions {
		known[v] = true
	}
	for _, v := range f.FixedVersions {
		if !known[v] {
			known[v] = true
			m.FixedVersions = append(m.FixedVersions, v)
		}
	}

	if f.ID != "" && f.ID != m.ID && !contains(m.Aliases, f.ID) {
		m.Aliases = append(m.Aliases, f.ID)
	}
	for _, a := range f.Aliases {
		if a != m.ID && !contains(m.Aliases, a) {
			m.Aliases = append(m.Aliases, a)
		}
	}
	if m.Description == "" {
		m.Description = f.Description
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
