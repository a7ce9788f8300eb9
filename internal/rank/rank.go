// Package rank orders the candidate fixed versions attached to a
// vulnerable graph node. It never rejects a candidate; the decision of
// which to recommend is delegated to the reasoning collaborator, which
// receives the full ordered list.
package rank

import (
	"sort"

	"github.com/ethanolivertroy/depfix/internal/graph"
	"github.com/ethanolivertroy/depfix/internal/models"
)

// Ranking holds both candidate orderings for one vulnerable node.
//
// MinimalDiff puts the smallest safe step first: strict upgrades before
// non-upgrades, same-major before cross-major, lowest version first within
// each class. RecommendedSafe is the reviewer's top-down view: the same
// class order with the highest version first within each class.
type Ranking struct {
	MinimalDiff     []models.RankedCandidate `json:"minimal_diff"`
	RecommendedSafe []models.RankedCandidate `json:"recommended_safe"`
}

// Rank orders the finding's candidate fixed versions for one occurrence.
// Strict upgrades always rank above candidates at or below the current
// version: scanners list backport-branch fixes that would be a downgrade
// here, and those must never lead either ordering. The result is
// deterministic regardless of the input candidate order: ties resolve by
// numeric per-segment version comparison.
func Rank(n *graph.Node) Ranking {
	if n.Finding == nil || len(n.Finding.FixedVersions) == 0 {
		return Ranking{}
	}
	current := n.Coordinate.Version

	seen := make(map[string]bool, len(n.Finding.FixedVersions))
	cands := make([]models.RankedCandidate, 0, len(n.Finding.FixedVersions))
	for _, v := range n.Finding.FixedVersions {
		if seen[v] {
			continue
		}
		seen[v] = true
		cands = append(cands, models.RankedCandidate{
			Version:    v,
			Upgrade:    Compare(current, v) < 0,
			SameMajor:  SameMajor(current, v),
			Jump:       JumpType(current, v),
			Depth:      n.Depth,
			Direct:     n.Direct,
			Centrality: n.Centrality,
		})
	}

	minimal := make([]models.RankedCandidate, len(cands))
	copy(minimal, cands)
	sort.SliceStable(minimal, candidateLess(minimal, true))

	safe := make([]models.RankedCandidate, len(cands))
	copy(safe, cands)
	sort.SliceStable(safe, candidateLess(safe, false))

	return Ranking{MinimalDiff: minimal, RecommendedSafe: safe}
}

// candidateLess orders strict upgrades first, same-major before cross-major
// within each class, then by version, ascending or descending.
func candidateLess(c []models.RankedCandidate, ascending bool) func(i, j int) bool {
	return func(i, j int) bool {
		if c[i].Upgrade != c[j].Upgrade {
			return c[i].Upgrade
		}
		if c[i].SameMajor != c[j].SameMajor {
			return c[i].SameMajor
		}
		if ascending {
			return Compare(c[i].Version, c[j].Version) < 0
		}
		return Compare(c[i].Version, c[j].Version) > 0
	}
}
