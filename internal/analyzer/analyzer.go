// Package analyzer orchestrates one remediation run: build the graph,
// merge scan findings, rank candidates, assemble requests and collect the
// reasoning agent's recommendations. Structural tree errors abort the run;
// everything per-coordinate is isolated so one bad finding or response
// never blocks recommendations for unrelated dependencies.
package analyzer

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/ethanolivertroy/depfix/internal/agent"
	"github.com/ethanolivertroy/depfix/internal/assemble"
	"github.com/ethanolivertroy/depfix/internal/clients"
	"github.com/ethanolivertroy/depfix/internal/graph"
	"github.com/ethanolivertroy/depfix/internal/merge"
	"github.com/ethanolivertroy/depfix/internal/models"
	"github.com/ethanolivertroy/depfix/internal/rank"
)

// Analyzer runs the remediation pipeline. Each run owns its graph
// exclusively; the Analyzer itself carries only configuration and
// collaborators and may be reused across runs.
type Analyzer struct {
	config     *models.Config
	agent      agent.ReasoningAgent
	changelogs *clients.ChangelogFetcher // nil disables changelog retrieval
	log        *zap.Logger
}

// New creates an Analyzer.
func New(config *models.Config, ag agent.ReasoningAgent, fetcher *clients.ChangelogFetcher, log *zap.Logger) *Analyzer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Analyzer{config: config, agent: ag, changelogs: fetcher, log: log}
}

// Report accumulates per-coordinate outcomes for one run.
type Report struct {
	Project            string
	TotalDependencies  int
	DirectDependencies int
	MaxDepth           int

	Recommendations []models.Recommendation
	Failures        []Failure
	Skipped         []Skip
	Warnings        []merge.UnresolvedFindingWarning
}

// Failure records a coordinate whose recommendation could not be produced.
type Failure struct {
	Coordinate models.Coordinate
	Err        string
}

// Skip records a coordinate intentionally left without a recommendation.
type Skip struct {
	Coordinate models.Coordinate
	Reason     string
}

// Run executes the pipeline over one dependency tree and scan finding list.
func (a *Analyzer) Run(ctx context.Context, tree *graph.TreeNode, findings []models.VulnerabilityFinding) (*Report, error) {
	g, err := graph.Build(tree)
	if err != nil {
		return nil, err
	}
	a.log.Info("dependency graph built",
		zap.Int("nodes", g.Len()),
		zap.Int("direct", g.DirectCount()),
		zap.Int("max_depth", g.MaxDepth()))

	scale := a.config.Scale()
	warnings := merge.Apply(g, findings, scale)
	for _, w := range warnings {
		a.log.Warn("finding does not match resolved tree",
			zap.String("coordinate", w.Finding.Coordinate.String()),
			zap.String("advisory", w.Finding.ID))
	}

	report := &Report{
		Project:            g.Root().Coordinate.String(),
		TotalDependencies:  g.Len() - 1,
		DirectDependencies: g.DirectCount(),
		MaxDepth:           g.MaxDepth(),
		Warnings:           warnings,
	}

	for _, n := range primaryVulnerableNodes(g) {
		a.analyzeCoordinate(ctx, g, n, report)
	}
	return report, nil
}

func (a *Analyzer) analyzeCoordinate(ctx context.Context, g *graph.Graph, n *graph.Node, report *Report) {
	coord := n.Coordinate
	log := a.log.With(zap.String("coordinate", coord.String()))

	if len(n.Finding.FixedVersions) == 0 {
		if a.config.FailOnEmptyCandidates {
			report.Failures = append(report.Failures, Failure{
				Coordinate: coord,
				Err:        "scanner reported no fixed versions",
			})
		} else {
			report.Skipped = append(report.Skipped, Skip{
				Coordinate: coord,
				Reason:     "scanner reported no fixed versions",
			})
		}
		log.Warn("no candidate fixed versions")
		return
	}

	ranking := rank.Rank(n)
	req := assemble.NewRequest(g, n, ranking)
	if a.changelogs != nil {
		req.Changelogs = a.fetchChangelogs(ctx, coord, req.OfferedVersions())
	}

	raw, err := a.agent.Recommend(ctx, req)
	if err != nil {
		log.Warn("reasoning agent failed", zap.Error(err))
		report.Failures = append(report.Failures, Failure{Coordinate: coord, Err: err.Error()})
		return
	}

	rec, err := assemble.ParseResponse(req, raw)
	if err != nil {
		log.Warn("reasoning response rejected", zap.Error(err))
		report.Failures = append(report.Failures, Failure{Coordinate: coord, Err: err.Error()})
		return
	}

	log.Info("recommendation produced", zap.String("chosen", rec.ChosenVersion))
	report.Recommendations = append(report.Recommendations, rec)
}

// fetchChangelogs collects release notes for the offered versions. Missing
// changelogs are omissions, not failures.
func (a *Analyzer) fetchChangelogs(ctx context.Context, coord models.Coordinate, versions []string) map[string]string {
	out := make(map[string]string, len(versions))
	for _, v := range versions {
		cl, err := a.changelogs.Fetch(ctx, coord, v)
		if err != nil {
			if !errors.Is(err, clients.ErrChangelogNotFound) {
				a.log.Warn("changelog fetch failed",
					zap.String("coordinate", coord.String()),
					zap.String("version", v),
					zap.Error(err))
			}
			continue
		}
		body := cl.Body
		if limit := a.config.ChangelogLimit; limit > 0 && len(body) > limit {
			body = body[:limit]
		}
		out[v] = body
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// primaryVulnerableNodes returns one occurrence per vulnerable coordinate:
// the shallowest, earliest in pre-order on ties. Every occurrence still
// carries the finding; the primary one just anchors the request context.
func primaryVulnerableNodes(g *graph.Graph) []*graph.Node {
	seen := make(map[string]bool)
	var out []*graph.Node
	for _, n := range g.AllNodes() {
		if n.Finding == nil || seen[n.Coordinate.String()] {
			continue
		}
		seen[n.Coordinate.String()] = true

		best := n
		for _, occ := range g.OccurrencesExact(n.Coordinate) {
			if occ.Depth < best.Depth {
				best = occ
			}
		}
		out = append(out, best)
	}
	return out
}
