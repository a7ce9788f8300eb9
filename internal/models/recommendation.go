package models

// RankedCandidate is one candidate fixed version together with the
// graph-derived signals used to order it relative to its siblings. It
// carries no natural-language content; the rationale comes later from the
// reasoning agent.
type RankedCandidate struct {
	Version    string  `json:"version"`
	Upgrade    bool    `json:"upgrade"` // strictly above the current version
	SameMajor  bool    `json:"same_major"`
	Jump       string  `json:"jump"` // "patch", "minor" or "major"
	Depth      int     `json:"depth"`
	Direct     bool    `json:"direct"`
	Centrality float64 `json:"centrality"`
}

// Strategy classifies how an upgrade is applied. A direct dependency is
// bumped in the project's own declaration; a transitive one is pinned by
// a direct dependency, which is what actually has to move.
type Strategy string

const (
	StrategyDirectUpgrade Strategy = "DIRECT_UPGRADE"
	StrategyParentUpgrade Strategy = "PARENT_UPGRADE"
)

// Recommendation is the final per-coordinate output record. Rationale is
// opaque text produced by the external reasoning collaborator; Offered
// preserves the ranked candidate list that was presented, for audit.
type Recommendation struct {
	Coordinate    Coordinate        `json:"coordinate"`
	ChosenVersion string            `json:"chosen_version"`
	Strategy      Strategy          `json:"strategy,omitempty"`
	UpgradeVia    string            `json:"upgrade_via,omitempty"` // direct dependency to bump under PARENT_UPGRADE
	Rationale     string            `json:"rationale"`
	RiskLevel     string            `json:"risk_level,omitempty"`
	Fallbacks     []string          `json:"fallback_versions,omitempty"`
	Offered       []RankedCandidate `json:"offered_candidates"`
}
