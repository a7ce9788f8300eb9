// Package agent holds the reasoning collaborator boundary. The core never
// reasons about versions in natural language itself; it hands a structured
// request to an agent and validates whatever comes back against the
// candidate set it offered (see the assemble package).
package agent

import (
	"context"
	"encoding/json"

	"github.com/ethanolivertroy/depfix/internal/assemble"
)

// ReasoningAgent picks a fixed version from the candidates a request
// offers. Implementations return the raw structured response; decoding and
// candidate-set validation happen in assemble.ParseResponse so no
// implementation can bypass the guard.
type ReasoningAgent interface {
	Name() string
	Recommend(ctx context.Context, req assemble.Request) (json.RawMessage, error)
}
