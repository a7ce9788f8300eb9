package assemble

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ethanolivertroy/depfix/internal/models"
)

// AgentResponse is the wire shape the reasoning collaborator returns.
type AgentResponse struct {
	ChosenVersion string   `json:"recommended_version"`
	Rationale     string   `json:"reasoning"`
	RiskLevel     string   `json:"risk_level"`
	Fallbacks     []string `json:"fallback_versions"`
}

// MalformedResponseError reports a reasoning response that names a version
// the request never offered, or that could not be decoded at all. The
// affected coordinate's recommendation fails; other coordinates proceed.
type MalformedResponseError struct {
	Coordinate models.Coordinate
	Chosen     string
	Offered    []string
	Cause      error
}

func (e *MalformedResponseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("malformed reasoning response for %s: %v", e.Coordinate, e.Cause)
	}
	return fmt.Sprintf("reasoning response for %s chose %q, not among offered candidates %v",
		e.Coordinate, e.Chosen, e.Offered)
}

func (e *MalformedResponseError) Unwrap() error { return e.Cause }

// ParseResponse decodes the collaborator's raw response and validates the
// chosen version against the candidate set the request offered. A chosen
// version outside that set is never accepted. Fallback versions outside the
// set are dropped rather than rejected.
func ParseResponse(req Request, raw []byte) (models.Recommendation, error) {
	text := stripFences(string(raw))

	var ar AgentResponse
	if err := json.Unmarshal([]byte(text), &ar); err != nil {
		return models.Recommendation{}, &MalformedResponseError{Coordinate: req.Coordinate, Cause: err}
	}
	if !req.Offers(ar.ChosenVersion) {
		return models.Recommendation{}, &MalformedResponseError{
			Coordinate: req.Coordinate,
			Chosen:     ar.ChosenVersion,
			Offered:    req.OfferedVersions(),
		}
	}

	var fallbacks []string
	for _, v := range ar.Fallbacks {
		if v != ar.ChosenVersion && req.Offers(v) {
			fallbacks = append(fallbacks, v)
		}
	}

	return models.Recommendation{
		Coordinate:    req.Coordinate,
		ChosenVersion: ar.ChosenVersion,
		Strategy:      req.Strategy,
		UpgradeVia:    req.UpgradeVia,
		Rationale:     ar.Rationale,
		RiskLevel:     ar.RiskLevel,
		Fallbacks:     fallbacks,
		Offered:       req.Candidates.MinimalDiff,
	}, nil
}

// stripFences unwraps a JSON body from markdown code fences, which models
// add despite being asked for bare JSON.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	if idx := strings.LastIndex(s, "```"); idx >= 0 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}
