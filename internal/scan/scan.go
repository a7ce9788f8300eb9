// Package scan loads vulnerability scanner reports (JFrog-style) into
// typed findings. JSON and YAML report files are both accepted.
package scan

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ethanolivertroy/depfix/internal/models"
)

// report mirrors the scanner output shape:
//
//	{"vulnerabilities": [{"component": "g:a:v", "cve": "...",
//	  "severity": "HIGH", "fixed_versions": [...], "description": "..."}]}
type report struct {
	Vulnerabilities []reportEntry `json:"vulnerabilities" yaml:"vulnerabilities"`
}

type reportEntry struct {
	Component     string   `json:"component" yaml:"component"`
	CVE           string   `json:"cve" yaml:"cve"`
	Severity      string   `json:"severity" yaml:"severity"`
	FixedVersions []string `json:"fixed_versions" yaml:"fixed_versions"`
	Description   string   `json:"description" yaml:"description"`
}

// Load reads a scan report file. Findings keep the report's order.
func Load(path string) ([]models.VulnerabilityFinding, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scan report %s: %w", path, err)
	}
	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml":
		return ParseYAML(content)
	default:
		return ParseJSON(content)
	}
}

// ParseJSON decodes a JSON scan report.
func ParseJSON(content []byte) ([]models.VulnerabilityFinding, error) {
	var r report
	if err := json.Unmarshal(content, &r); err != nil {
		return nil, fmt.Errorf("failed to parse scan report: %w", err)
	}
	return convert(r)
}

// ParseYAML decodes a YAML scan report.
func ParseYAML(content []byte) ([]models.VulnerabilityFinding, error) {
	var r report
	if err := yaml.Unmarshal(content, &r); err != nil {
		return nil, fmt.Errorf("failed to parse scan report: %w", err)
	}
	return convert(r)
}

func convert(r report) ([]models.VulnerabilityFinding, error) {
	findings := make([]models.VulnerabilityFinding, 0, len(r.Vulnerabilities))
	for i, entry := range r.Vulnerabilities {
		coord, err := models.ParseCoordinate(entry.Component)
		if err != nil {
			return nil, fmt.Errorf("scan entry %d: %w", i, err)
		}
		findings = append(findings, models.VulnerabilityFinding{
			ID:            entry.CVE,
			Coordinate:    coord,
			FixedVersions: entry.FixedVersions,
			Severity:      models.NormalizeSeverity(entry.Severity),
			Description:   entry.Description,
		})
	}
	return findings, nil
}
