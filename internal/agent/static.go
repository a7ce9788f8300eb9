package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ethanolivertroy/depfix/internal/assemble"
)

// StaticAgent recommends the top minimal-diff candidate without consulting
// a model. It backs offline runs and tests.
type StaticAgent struct{}

// Name identifies the agent in logs and reports.
func (StaticAgent) Name() string { return "static" }

// Recommend picks the smallest same-major upgrade step and offers the next
// two candidates as fallbacks.
func (StaticAgent) Recommend(_ context.Context, req assemble.Request) (json.RawMessage, error) {
	cands := req.Candidates.MinimalDiff
	if len(cands) == 0 {
		return nil, errors.New("no candidates offered")
	}

	top := cands[0]
	resp := assemble.AgentResponse{
		ChosenVersion: top.Version,
		Rationale: fmt.Sprintf(
			"Smallest upgrade step from %s resolving %s; chosen without reasoning-agent review.",
			req.Coordinate.Version, req.Finding.ID),
		RiskLevel: riskFor(top.Jump),
	}
	for _, c := range cands[1:] {
		resp.Fallbacks = append(resp.Fallbacks, c.Version)
		if len(resp.Fallbacks) == 2 {
			break
		}
	}
	return json.Marshal(resp)
}

func riskFor(jump string) string {
	switch jump {
	case "major":
		return "HIGH"
	case "minor":
		return "MEDIUM"
	default:
		return "LOW"
	}
}
