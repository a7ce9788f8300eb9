package agent_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ethanolivertroy/depfix/internal/agent"
	"github.com/ethanolivertroy/depfix/internal/assemble"
	"github.com/ethanolivertroy/depfix/internal/models"
)

func request(versions ...[2]string) assemble.Request {
	req := assemble.Request{
		Coordinate: models.Coordinate{Group: "com.example", Artifact: "core-util", Version: "0.9"},
		Finding:    assemble.FindingContext{ID: "CVE-2026-0001", Severity: "HIGH"},
	}
	for _, v := range versions {
		req.Candidates.MinimalDiff = append(req.Candidates.MinimalDiff, models.RankedCandidate{
			Version: v[0],
			Jump:    v[1],
		})
	}
	return req
}

func TestStaticAgent(t *testing.T) {
	t.Run("picks the top minimal-diff candidate", func(t *testing.T) {
		req := request([2]string{"0.9.3", "patch"}, [2]string{"0.9.5", "patch"}, [2]string{"1.0.0", "major"})

		raw, err := agent.StaticAgent{}.Recommend(context.Background(), req)
		require.NoError(t, err)

		rec, err := assemble.ParseResponse(req, raw)
		require.NoError(t, err)
		assert.Equal(t, "0.9.3", rec.ChosenVersion)
		assert.Equal(t, "LOW", rec.RiskLevel)
		assert.Equal(t, []string{"0.9.5", "1.0.0"}, rec.Fallbacks)
		assert.Contains(t, rec.Rationale, "CVE-2026-0001")
	})

	t.Run("risk follows the jump type", func(t *testing.T) {
		for jump, want := range map[string]string{"patch": "LOW", "minor": "MEDIUM", "major": "HIGH"} {
			req := request([2]string{"2.0.0", jump})

			raw, err := agent.StaticAgent{}.Recommend(context.Background(), req)
			require.NoError(t, err)

			rec, err := assemble.ParseResponse(req, raw)
			require.NoError(t, err)
			assert.Equal(t, want, rec.RiskLevel, jump)
		}
	})

	t.Run("fallbacks cap at two", func(t *testing.T) {
		req := request(
			[2]string{"0.9.3", "patch"}, [2]string{"0.9.4", "patch"},
			[2]string{"0.9.5", "patch"}, [2]string{"0.9.6", "patch"})

		raw, err := agent.StaticAgent{}.Recommend(context.Background(), req)
		require.NoError(t, err)

		rec, err := assemble.ParseResponse(req, raw)
		require.NoError(t, err)
		assert.Len(t, rec.Fallbacks, 2)
	})

	t.Run("errors without candidates", func(t *testing.T) {
		_, err := agent.StaticAgent{}.Recommend(context.Background(), request())
		assert.Error(t, err)
	})
}
