package models

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds configuration for an analysis run.
type Config struct {
	// Input files
	TreeFile string `toml:"tree_file"`
	ScanFile string `toml:"scan_file"`

	// Output settings
	OutputFormat string `toml:"output_format"` // "terminal", "json"
	OutputFile   string `toml:"output_file"`

	// Behavior settings
	NoAgent               bool `toml:"no_agent"`       // skip the reasoning agent, pick top-ranked candidate
	NoChangelogs          bool `toml:"no_changelogs"`  // skip changelog retrieval
	FailOnEmptyCandidates bool `toml:"fail_on_empty_candidates"`

	// Reasoning agent settings
	AgentModel string `toml:"agent_model"`

	// Changelog fetcher settings
	GitHubToken    string `toml:"github_token"` // optional, raises the API rate limit
	ChangelogLimit int    `toml:"changelog_limit"` // max characters forwarded per excerpt
	NoCache        bool   `toml:"no_cache"`
	CacheTTLHours  int    `toml:"cache_ttl_hours"`
	TimeoutSeconds int    `toml:"timeout_seconds"`

	// Severity ordering across scanner-specific scales. Labels absent from
	// the table rank lowest.
	SeverityRanks map[string]int `toml:"severity_ranks"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		OutputFormat:   "terminal",
		AgentModel:     "gemini-2.5-pro",
		ChangelogLimit: 4000,
		CacheTTLHours:  24 * 7, // release notes are immutable per tag
		TimeoutSeconds: 60,
	}
}

// LoadConfig reads a TOML config file over the defaults. An empty path
// returns the defaults unchanged.
func LoadConfig(path string) (*Config, error) {
	c := DefaultConfig()
	if path == "" {
		return c, nil
	}
	if _, err := toml.DecodeFile(path, c); err != nil {
		return nil, fmt.Errorf("failed to load config %s: %w", path, err)
	}
	return c, nil
}

// Scale builds the severity ordering from the configured ranks, falling
// back to the default four-level scale.
func (c *Config) Scale() SeverityScale {
	if len(c.SeverityRanks) == 0 {
		return DefaultSeverityScale()
	}
	scale := make(SeverityScale, len(c.SeverityRanks))
	for label, rank := range c.SeverityRanks {
		scale[NormalizeSeverity(label)] = rank
	}
	return scale
}

// Timeout returns the HTTP/agent timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// CacheTTL returns the changelog disk cache time-to-live.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLHours) * time.Hour
}
