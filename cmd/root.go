package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ethanolivertroy/depfix/internal/agent"
	"github.com/ethanolivertroy/depfix/internal/analyzer"
	"github.com/ethanolivertroy/depfix/internal/cache"
	"github.com/ethanolivertroy/depfix/internal/clients"
	"github.com/ethanolivertroy/depfix/internal/models"
	"github.com/ethanolivertroy/depfix/internal/parsers"
	"github.com/ethanolivertroy/depfix/internal/reporter"
	"github.com/ethanolivertroy/depfix/internal/scan"
)

var (
	flagTreeFile     string
	flagScanFile     string
	flagConfig       string
	flagOutput       string
	flagFormat       string
	flagModel        string
	flagNoAgent      bool
	flagNoChangelogs bool
	flagNoCache      bool
	flagTimeout      int
	flagVerbose      bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "depfix",
	Short: "Recommend fixed versions for vulnerable dependencies",
	Long: `depfix ingests a project's resolved dependency tree together with a
vulnerability scanner's report and recommends, per vulnerable dependency, a
single fixed version with justification.

The dependency tree (mvn dependency:tree / gradle dependencies text, or a
nested JSON tree) is converted into an annotated graph capturing each
occurrence's depth, direct-vs-transitive status and a centrality score.
Scan findings are merged onto the graph, candidate fixed versions are
ranked by upgrade risk, and a reasoning agent picks the final version from
the offered candidates. A choice outside the offered set is rejected.

Examples:
  # Analyze with the Gemini reasoning agent (GEMINI_API_KEY in env)
  depfix --tree-file deps.txt --scan-file scan.json

  # Offline: pick the smallest safe upgrade step without an agent
  depfix --tree-file deps.txt --scan-file scan.yaml --no-agent

  # JSON report to a file
  depfix --tree-file deps.txt --scan-file scan.json --format json --output report.json`,
	RunE:         runAnalyze,
	SilenceUsage: true,
}

// errRecommendationFailures marks a run that completed and reported, but
// with at least one coordinate left unrecommended.
var errRecommendationFailures = errors.New("recommendations failed")

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, errRecommendationFailures) {
			os.Exit(1)
		}
		os.Exit(2)
	}
}

func init() {
	rootCmd.Flags().StringVar(&flagTreeFile, "tree-file", "", "Path to the dependency tree listing (required)")
	rootCmd.Flags().StringVar(&flagScanFile, "scan-file", "", "Path to the scanner report, JSON or YAML (required)")
	rootCmd.Flags().StringVar(&flagConfig, "config", "", "Path to a TOML config file")
	rootCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Output file path (default: stdout)")
	rootCmd.Flags().StringVarP(&flagFormat, "format", "f", "", "Output format: terminal, json")
	rootCmd.Flags().StringVar(&flagModel, "model", "", "Reasoning agent model name")
	rootCmd.Flags().BoolVar(&flagNoAgent, "no-agent", false, "Skip the reasoning agent; pick the top-ranked candidate")
	rootCmd.Flags().BoolVar(&flagNoChangelogs, "no-changelogs", false, "Skip changelog retrieval")
	rootCmd.Flags().BoolVar(&flagNoCache, "no-cache", false, "Disable the changelog disk cache")
	rootCmd.Flags().IntVar(&flagTimeout, "timeout", 0, "HTTP and agent timeout in seconds")
	rootCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "Verbose logging")
	rootCmd.MarkFlagRequired("tree-file")
	rootCmd.MarkFlagRequired("scan-file")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	config, err := models.LoadConfig(flagConfig)
	if err != nil {
		return err
	}
	applyFlags(config)

	log, err := newLogger(flagVerbose)
	if err != nil {
		return err
	}
	defer log.Sync()

	tree, err := parsers.ParseFile(config.TreeFile)
	if err != nil {
		return err
	}
	findings, err := scan.Load(config.ScanFile)
	if err != nil {
		return err
	}

	ctx := context.Background()

	var fetcher *clients.ChangelogFetcher
	if !config.NoChangelogs {
		var c *cache.Cache
		if !config.NoCache {
			c, err = cache.New("depfix", config.CacheTTL())
			if err != nil {
				// Non-fatal: continue without the disk cache
				c = nil
			}
		}
		token := config.GitHubToken
		if token == "" {
			token = os.Getenv("GITHUB_TOKEN")
		}
		fetcher = clients.NewChangelogFetcher(c, token, config.Timeout())
	}

	var reasoner agent.ReasoningAgent
	if config.NoAgent {
		reasoner = agent.StaticAgent{}
	} else {
		reasoner, err = agent.NewGeminiAgent(ctx, config.AgentModel)
		if err != nil {
			return fmt.Errorf("failed to initialize reasoning agent: %w", err)
		}
	}
	log.Info("analysis starting",
		zap.String("tree", config.TreeFile),
		zap.String("scan", config.ScanFile),
		zap.String("agent", reasoner.Name()))

	report, err := analyzer.New(config, reasoner, fetcher, log).Run(ctx, tree, findings)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	rep := reporter.Get(config.OutputFormat)
	output, err := rep.Report(report)
	if err != nil {
		return fmt.Errorf("failed to generate report: %w", err)
	}

	if config.OutputFile != "" {
		if err := os.WriteFile(config.OutputFile, output, 0644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Report written to %s\n", config.OutputFile)
	} else {
		fmt.Print(string(output))
	}

	// Failed coordinates are isolated, but the exit code should still
	// reflect that something needs attention. Returning lets the deferred
	// log sync run; Execute maps the sentinel to exit code 1.
	if len(report.Failures) > 0 {
		return fmt.Errorf("%w: %d of %d vulnerable coordinates",
			errRecommendationFailures, len(report.Failures),
			len(report.Failures)+len(report.Recommendations))
	}
	return nil
}

// applyFlags overlays explicitly set flags onto the config file values.
func applyFlags(config *models.Config) {
	if flagTreeFile != "" {
		config.TreeFile = flagTreeFile
	}
	if flagScanFile != "" {
		config.ScanFile = flagScanFile
	}
	if flagOutput != "" {
		config.OutputFile = flagOutput
	}
	if flagFormat != "" {
		config.OutputFormat = flagFormat
	}
	if flagModel != "" {
		config.AgentModel = flagModel
	}
	if flagTimeout > 0 {
		config.TimeoutSeconds = flagTimeout
	}
	if flagNoAgent {
		config.NoAgent = true
	}
	if flagNoChangelogs {
		config.NoChangelogs = true
	}
	if flagNoCache {
		config.NoCache = true
	}
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return cfg.Build()
}
