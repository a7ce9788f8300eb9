package reporter

import "github.com/ethanolivertroy/depfix/internal/analyzer"

// Reporter is the interface for output formatters.
type Reporter interface {
	// Report generates output for the given analysis report
	Report(report *analyzer.Report) ([]byte, error)
}

// Get returns a reporter for the specified format.
func Get(format string) Reporter {
	switch format {
	case "json":
		return &JSONReporter{}
	default:
		return &TerminalReporter{}
	}
}
