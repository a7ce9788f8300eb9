package reporter

import (
	"encoding/json"

	"github.com/ethanolivertroy/depfix/internal/analyzer"
	"github.com/ethanolivertroy/depfix/internal/models"
)

// JSONReporter outputs the analysis report in JSON format.
type JSONReporter struct{}

// jsonOutput represents the JSON output structure.
type jsonOutput struct {
	Summary         jsonSummary             `json:"summary"`
	Recommendations []models.Recommendation `json:"recommendations"`
	Failures        []jsonFailure           `json:"failures,omitempty"`
	Skipped         []jsonFailure           `json:"skipped,omitempty"`
	Unresolved      []jsonUnresolved        `json:"unresolved_findings,omitempty"`
}

type jsonSummary struct {
	Project            string `json:"project"`
	TotalDependencies  int    `json:"total_dependencies"`
	DirectDependencies int    `json:"direct_dependencies"`
	MaxDepth           int    `json:"max_depth"`
	Recommended        int    `json:"recommended"`
	Failed             int    `json:"failed"`
	Skipped            int    `json:"skipped"`
}

type jsonFailure struct {
	Coordinate string `json:"coordinate"`
	Reason     string `json:"reason"`
}

type jsonUnresolved struct {
	Coordinate string `json:"coordinate"`
	Advisory   string `json:"advisory"`
	Reason     string `json:"reason"`
}

// Report generates JSON output for the given analysis report.
func (r *JSONReporter) Report(report *analyzer.Report) ([]byte, error) {
	output := jsonOutput{
		Summary: jsonSummary{
			Project:            report.Project,
			TotalDependencies:  report.TotalDependencies,
			DirectDependencies: report.DirectDependencies,
			MaxDepth:           report.MaxDepth,
			Recommended:        len(report.Recommendations),
			Failed:             len(report.Failures),
			Skipped:            len(report.Skipped),
		},
		Recommendations: report.Recommendations,
	}
	if output.Recommendations == nil {
		output.Recommendations = []models.Recommendation{}
	}

	for _, f := range report.Failures {
		output.Failures = append(output.Failures, jsonFailure{
			Coordinate: f.Coordinate.String(),
			Reason:     f.Err,
		})
	}
	for _, s := range report.Skipped {
		output.Skipped = append(output.Skipped, jsonFailure{
			Coordinate: s.Coordinate.String(),
			Reason:     s.Reason,
		})
	}
	for _, w := range report.Warnings {
		output.Unresolved = append(output.Unresolved, jsonUnresolved{
			Coordinate: w.Finding.Coordinate.String(),
			Advisory:   w.Finding.ID,
			Reason:     w.Reason,
		})
	}

	return json.MarshalIndent(output, "", "  ")
}
