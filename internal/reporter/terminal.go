package reporter

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ethanolivertroy/depfix/internal/analyzer"
)

// TerminalReporter outputs the analysis report in a human-readable
// terminal format.
type TerminalReporter struct{}

// Report generates terminal output for the given analysis report.
func (r *TerminalReporter) Report(report *analyzer.Report) ([]byte, error) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("\nDEPENDENCY UPGRADE RECOMMENDATIONS: %s\n", report.Project))
	sb.WriteString(strings.Repeat("=", 60) + "\n\n")
	sb.WriteString(fmt.Sprintf("Dependencies: %d (%d direct), max depth %d\n",
		report.TotalDependencies, report.DirectDependencies, report.MaxDepth))
	sb.WriteString(fmt.Sprintf("Recommendations: %d | Failed: %d | Skipped: %d | Unresolved findings: %d\n\n",
		len(report.Recommendations), len(report.Failures), len(report.Skipped), len(report.Warnings)))

	for _, rec := range report.Recommendations {
		sb.WriteString(fmt.Sprintf("📦 %s\n", rec.Coordinate))
		sb.WriteString(fmt.Sprintf("   Upgrade to: %s", rec.ChosenVersion))
		if rec.RiskLevel != "" {
			sb.WriteString(fmt.Sprintf(" (%s risk)", rec.RiskLevel))
		}
		sb.WriteString("\n")
		if rec.Strategy != "" {
			if rec.UpgradeVia != "" {
				sb.WriteString(fmt.Sprintf("   Strategy:   %s via %s\n", rec.Strategy, rec.UpgradeVia))
			} else {
				sb.WriteString(fmt.Sprintf("   Strategy:   %s\n", rec.Strategy))
			}
		}
		if len(rec.Fallbacks) > 0 {
			sb.WriteString(fmt.Sprintf("   Fallbacks:  %s\n", strings.Join(rec.Fallbacks, ", ")))
		}
		if rec.Rationale != "" {
			rationale := truncate(rec.Rationale, 400)
			for _, line := range strings.Split(rationale, "\n") {
				sb.WriteString("   " + line + "\n")
			}
		}
		offered := make([]string, 0, len(rec.Offered))
		for _, c := range rec.Offered {
			offered = append(offered, c.Version)
		}
		sb.WriteString(fmt.Sprintf("   Candidates offered: %s\n", strings.Join(offered, ", ")))
		sb.WriteString("\n" + strings.Repeat("-", 60) + "\n")
	}

	for _, f := range report.Failures {
		sb.WriteString(fmt.Sprintf("✗ %s: %s\n", f.Coordinate, f.Err))
	}
	for _, s := range report.Skipped {
		sb.WriteString(fmt.Sprintf("- %s skipped: %s\n", s.Coordinate, s.Reason))
	}
	for _, w := range report.Warnings {
		sb.WriteString(fmt.Sprintf("? %s (%s) not found in the resolved tree\n",
			w.Finding.Coordinate, w.Finding.ID))
	}

	if len(report.Recommendations) == 0 && len(report.Failures) == 0 && len(report.Skipped) == 0 {
		sb.WriteString("No vulnerable dependencies matched the resolved tree.\n")
	}

	return []byte(sb.String()), nil
}

// truncate shortens s to at most max bytes, cutting on a rune boundary so
// multi-byte text is never split mid-sequence.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max - 3
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
