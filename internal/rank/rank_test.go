package rank_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ethanolivertroy/depfix/internal/graph"
	"github.com/ethanolivertroy/depfix/internal/models"
	"github.com/ethanolivertroy/depfix/internal/rank"
)

func vulnerableNode(t *testing.T, version string, fixes ...string) *graph.Node {
	t.Helper()
	g, err := graph.Build(&graph.TreeNode{
		Coordinate: models.Coordinate{Group: "com.example", Artifact: "app", Version: "1.0"},
		Children: []*graph.TreeNode{
			{Coordinate: models.Coordinate{Group: "com.example", Artifact: "core-util", Version: version}},
		},
	})
	require.NoError(t, err)
	n := g.AllNodes()[1]
	n.Finding = &models.VulnerabilityFinding{
		ID:            "CVE-2026-0001",
		Coordinate:    n.Coordinate,
		FixedVersions: fixes,
		Severity:      models.SeverityHigh,
	}
	return n
}

func versionsOf(cands []models.RankedCandidate) []string {
	out := make([]string, 0, len(cands))
	for _, c := range cands {
		out = append(out, c.Version)
	}
	return out
}

func TestRank(t *testing.T) {
	t.Run("same-major smallest step first", func(t *testing.T) {
		n := vulnerableNode(t, "0.9", "0.9.3", "1.0.0")

		r := rank.Rank(n)

		assert.Equal(t, []string{"0.9.3", "1.0.0"}, versionsOf(r.MinimalDiff))
		assert.Equal(t, []string{"0.9.3", "1.0.0"}, versionsOf(r.RecommendedSafe))
	})

	t.Run("same-major downgrades rank after genuine upgrades", func(t *testing.T) {
		// a backport-branch fix below the current version must never lead
		n := vulnerableNode(t, "2.13.0", "2.12.7", "2.13.4")

		r := rank.Rank(n)

		assert.Equal(t, []string{"2.13.4", "2.12.7"}, versionsOf(r.MinimalDiff))
		assert.Equal(t, []string{"2.13.4", "2.12.7"}, versionsOf(r.RecommendedSafe))
		assert.True(t, r.MinimalDiff[0].Upgrade)
		assert.False(t, r.MinimalDiff[1].Upgrade)
	})

	t.Run("cross-major upgrade beats a same-major downgrade", func(t *testing.T) {
		n := vulnerableNode(t, "2.13.0", "2.12.7", "3.0.0")

		r := rank.Rank(n)

		assert.Equal(t, []string{"3.0.0", "2.12.7"}, versionsOf(r.MinimalDiff))
		assert.Equal(t, []string{"3.0.0", "2.12.7"}, versionsOf(r.RecommendedSafe))
	})

	t.Run("the current version itself is not an upgrade", func(t *testing.T) {
		n := vulnerableNode(t, "2.13.0", "2.13.0", "2.13.4")

		r := rank.Rank(n)

		assert.Equal(t, []string{"2.13.4", "2.13.0"}, versionsOf(r.MinimalDiff))
	})

	t.Run("recommended-safe prefers the highest same-major", func(t *testing.T) {
		n := vulnerableNode(t, "10.1.42", "10.1.43", "10.1.45", "11.0.1", "10.1.44")

		r := rank.Rank(n)

		assert.Equal(t, []string{"10.1.43", "10.1.44", "10.1.45", "11.0.1"}, versionsOf(r.MinimalDiff))
		assert.Equal(t, []string{"10.1.45", "10.1.44", "10.1.43", "11.0.1"}, versionsOf(r.RecommendedSafe))
	})

	t.Run("deterministic under shuffled input order", func(t *testing.T) {
		perms := [][]string{
			{"10.1.43", "10.1.45", "11.0.1", "10.1.44"},
			{"11.0.1", "10.1.44", "10.1.43", "10.1.45"},
			{"10.1.45", "11.0.1", "10.1.43", "10.1.44"},
		}
		var want []string
		for i, fixes := range perms {
			r := rank.Rank(vulnerableNode(t, "10.1.42", fixes...))
			got := versionsOf(r.MinimalDiff)
			if i == 0 {
				want = got
				continue
			}
			assert.Equal(t, want, got)
		}
	})

	t.Run("never drops a candidate", func(t *testing.T) {
		n := vulnerableNode(t, "2.19.1", "2.19.5", "2.19.4", "2.19.3", "2.19.2")

		r := rank.Rank(n)

		assert.Len(t, r.MinimalDiff, 4)
		assert.Len(t, r.RecommendedSafe, 4)
	})

	t.Run("duplicate candidates collapse", func(t *testing.T) {
		n := vulnerableNode(t, "0.9", "0.9.3", "0.9.3", "1.0.0")

		r := rank.Rank(n)

		assert.Equal(t, []string{"0.9.3", "1.0.0"}, versionsOf(r.MinimalDiff))
	})

	t.Run("numeric segment ordering breaks ties", func(t *testing.T) {
		n := vulnerableNode(t, "10.1.2", "10.1.10", "10.1.9")

		r := rank.Rank(n)

		assert.Equal(t, []string{"10.1.9", "10.1.10"}, versionsOf(r.MinimalDiff))
	})

	t.Run("candidates carry graph signals", func(t *testing.T) {
		n := vulnerableNode(t, "0.9", "0.9.3")

		r := rank.Rank(n)

		require.Len(t, r.MinimalDiff, 1)
		c := r.MinimalDiff[0]
		assert.Equal(t, 1, c.Depth)
		assert.True(t, c.Direct)
		assert.Equal(t, n.Centrality, c.Centrality)
		assert.True(t, c.Upgrade)
		assert.True(t, c.SameMajor)
		assert.Equal(t, "patch", c.Jump)
	})

	t.Run("empty candidate list yields empty ranking", func(t *testing.T) {
		n := vulnerableNode(t, "0.9")

		r := rank.Rank(n)

		assert.Empty(t, r.MinimalDiff)
		assert.Empty(t, r.RecommendedSafe)
	})
}
