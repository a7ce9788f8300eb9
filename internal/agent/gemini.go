package agent

import (
	"context"
	"encoding/json"
	"errors"

	genai "google.golang.org/genai"

	"github.com/ethanolivertroy/depfix/internal/assemble"
)

// GeminiAgent asks a Gemini model to choose among the offered candidates.
// The API key is read from the environment by the genai client.
type GeminiAgent struct {
	cli   *genai.Client
	model string
}

// NewGeminiAgent creates an agent bound to one model.
func NewGeminiAgent(ctx context.Context, model string) (*GeminiAgent, error) {
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{Backend: genai.BackendGeminiAPI})
	if err != nil {
		return nil, err
	}
	return &GeminiAgent{cli: cli, model: model}, nil
}

// Name identifies the agent in logs and reports.
func (g *GeminiAgent) Name() string { return "gemini:" + g.model }

const recommendPrompt = `You are a dependency upgrade analyst. The input JSON
describes one vulnerable library in a project's dependency graph: its
position (depth, direct flag, centrality), the upgrade strategy
(DIRECT_UPGRADE when the project declares it, PARENT_UPGRADE with the pinning
parent when it is transitive), the advisory, the candidate fixed versions in
two orderings, and release notes where available.

Choose exactly one of the offered candidate versions. Work top-down through
candidates.recommended_safe: prefer the highest version whose release notes
show no breaking change relevant to this project; fall back to the
minimal-diff ordering when release notes are missing. A high centrality or a
transitive placement calls for the more conservative choice. Never invent a
version that is not in the candidate lists.

Reply with JSON only:
{
  "recommended_version": "one of the offered versions",
  "reasoning": "step-by-step justification",
  "risk_level": "LOW|MEDIUM|HIGH",
  "fallback_versions": ["other offered versions, best first"]
}`

// Recommend sends the request payload to the model and returns its raw
// JSON response.
func (g *GeminiAgent) Recommend(ctx context.Context, req assemble.Request) (json.RawMessage, error) {
	in, err := json.MarshalIndent(req, "", "  ")
	if err != nil {
		return nil, err
	}
	full := recommendPrompt + "\n\n[INPUT JSON]\n" + string(in)

	resp, err := g.cli.Models.GenerateContent(ctx, g.model,
		[]*genai.Content{{Parts: []*genai.Part{{Text: full}}}},
		&genai.GenerateContentConfig{ResponseMIMEType: "application/json"},
	)
	if err != nil {
		return nil, err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, errors.New("empty model response")
	}
	return json.RawMessage(resp.Candidates[0].Content.Parts[0].Text), nil
}
