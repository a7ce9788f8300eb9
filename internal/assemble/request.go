// Package assemble builds the structured request handed to the external
// reasoning collaborator and parses its response back into a typed
// recommendation. The graph is read-only by the time it reaches this
// package.
package assemble

import (
	"github.com/ethanolivertroy/depfix/internal/graph"
	"github.com/ethanolivertroy/depfix/internal/models"
	"github.com/ethanolivertroy/depfix/internal/rank"
)

// Request is the payload for one vulnerable coordinate: its position in the
// graph, the merged finding, both candidate orderings and the upgrade
// strategy the graph position dictates.
type Request struct {
	Project    string              `json:"project"`
	Coordinate models.Coordinate   `json:"coordinate"`
	Strategy   models.Strategy     `json:"strategy"`
	UpgradeVia string              `json:"upgrade_via,omitempty"` // direct dependency pinning a transitive coordinate
	Context    GraphContext        `json:"graph_context"`
	Finding    FindingContext      `json:"finding"`
	Candidates rank.Ranking        `json:"candidates"`
	Changelogs map[string]string   `json:"changelogs,omitempty"` // version -> release notes excerpt
}

// GraphContext is the primary occurrence's position plus aggregate signals.
type GraphContext struct {
	Depth        int                 `json:"depth"`
	Direct       bool                `json:"direct"`
	Centrality   float64             `json:"centrality"`
	ParentChain  []string            `json:"parent_chain"` // nearest ancestor first, up to the root
	Occurrences  []OccurrenceContext `json:"occurrences"`
	TotalNodes   int                 `json:"total_dependencies"`
	DirectCount  int                 `json:"direct_dependencies"`
	MaxTreeDepth int                 `json:"max_depth"`
}

// OccurrenceContext describes one placement of the coordinate in the tree.
type OccurrenceContext struct {
	Depth  int    `json:"depth"`
	Direct bool   `json:"direct"`
	Parent string `json:"parent,omitempty"`
}

// FindingContext is the merged finding, flattened for the collaborator.
type FindingContext struct {
	ID          string   `json:"id"`
	Aliases     []string `json:"aliases,omitempty"`
	Severity    string   `json:"severity"`
	Description string   `json:"description,omitempty"`
}

// NewRequest serializes the graph position, merged finding and ranked
// candidates for one vulnerable coordinate. The primary node supplies the
// headline context; every occurrence is still listed.
func NewRequest(g *graph.Graph, primary *graph.Node, ranking rank.Ranking) Request {
	ctx := GraphContext{
		Depth:        primary.Depth,
		Direct:       primary.Direct,
		Centrality:   primary.Centrality,
		TotalNodes:   g.Len(),
		DirectCount:  g.DirectCount(),
		MaxTreeDepth: g.MaxDepth(),
	}
	for _, c := range g.ParentChain(primary.ID) {
		ctx.ParentChain = append(ctx.ParentChain, c.String())
	}
	for _, occ := range g.OccurrencesExact(primary.Coordinate) {
		oc := OccurrenceContext{Depth: occ.Depth, Direct: occ.Direct}
		if occ.Parent != graph.NoParent {
			oc.Parent = g.Node(occ.Parent).Coordinate.String()
		}
		ctx.Occurrences = append(ctx.Occurrences, oc)
	}

	// A direct occurrence is bumped in the project's own declaration. A
	// transitive one moves only when the direct dependency pinning it does,
	// so that ancestor is named as the upgrade path.
	strategy := models.StrategyDirectUpgrade
	via := ""
	if primary.Depth > 1 {
		strategy = models.StrategyParentUpgrade
		if chain := g.ParentChain(primary.ID); len(chain) >= 2 {
			via = chain[len(chain)-2].String()
		}
	}

	f := primary.Finding
	return Request{
		Project:    g.Root().Coordinate.String(),
		Coordinate: primary.Coordinate,
		Strategy:   strategy,
		UpgradeVia: via,
		Context:    ctx,
		Finding: FindingContext{
			ID:          f.ID,
			Aliases:     f.Aliases,
			Severity:    string(f.Severity),
			Description: f.Description,
		},
		Candidates: ranking,
	}
}

// OfferedVersions returns the candidate versions this request presents, in
// minimal-diff order.
func (r Request) OfferedVersions() []string {
	out := make([]string, 0, len(r.Candidates.MinimalDiff))
	for _, c := range r.Candidates.MinimalDiff {
		out = append(out, c.Version)
	}
	return out
}

// Offers reports whether version is among the presented candidates.
func (r Request) Offers(version string) bool {
	for _, c := range r.Candidates.MinimalDiff {
		if c.Version == version {
			return true
		}
	}
	return false
}
