package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/disclosure-metrics/disclo/internal/aggregate"
	"github.com/disclosure-metrics/disclo/internal/pipeline"
)

var (
	reportJSON     string
	reportMD       string
	filterCompany  string
	filterYear     int
	filterCategory string
	topN           int
	noCache        bool
)

// reportCmd represents the report command
var reportCmd = &cobra.Command{
	Use:   "report <workbook.xlsx>",
	Short: "Compute disclosure percentage tables for reporting",
	Long: `Report reconciles the workbook and computes every chart table:
overall disclosure, best and weak categories, timeframe and framing
mixes, the company leaderboard, category heat grids, the financial mix,
question rankings, and question coverage.

Every percentage is disclosure / total × 100; empty cells report 0%.

Example:
  disclo report review.xlsx --md report.md
  disclo report review.xlsx --company "Acme Corp" --year 2024
  disclo report review.xlsx --top 10 --json tables.json`,
	Args: cobra.ExactArgs(1),
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().StringVar(&reportJSON, "json", "report.json", "output JSON path")
	reportCmd.Flags().StringVar(&reportMD, "md", "", "output Markdown path (optional)")
	reportCmd.Flags().StringVar(&filterCompany, "company", "", "restrict to one company")
	reportCmd.Flags().IntVar(&filterYear, "year", 0, "restrict to one fiscal year")
	reportCmd.Flags().StringVar(&filterCategory, "category", "", "restrict to one category")
	reportCmd.Flags().IntVar(&topN, "top", 0, "truncate ranked tables to the first N entries (0 keeps all)")
	reportCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the report cache")
}

func runReport(cmd *cobra.Command, args []string) error {
	path := args[0]

	cfg := buildConfig()
	if noCache {
		cfg.Cache.Enabled = false
	}

	filter := aggregate.Filter{
		Company:  filterCompany,
		Year:     filterYear,
		Category: filterCategory,
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Reporting: %s\n", path)
	}

	p := pipeline.NewPipeline(cfg)
	result, err := p.Report(path, filter, topN)
	if err != nil {
		return fmt.Errorf("report failed: %w", err)
	}

	if verbose {
		if result.FromCache {
			fmt.Fprintf(os.Stderr, "✓ Served from cache\n")
		}
		fmt.Fprintf(os.Stderr, "✓ Overall disclosure: %.1f%%\n", overallPct(result))
	}

	if reportJSON != "" {
		if err := p.Renderer().RenderReportJSON(result, reportJSON); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote JSON: %s\n", reportJSON)
		}
	}
	if reportMD != "" {
		if err := p.Renderer().RenderReportMarkdown(result, reportMD); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote Markdown: %s\n", reportMD)
		}
	}

	if result.Run != nil && result.Run.SkippedRows > 0 {
		fmt.Fprintf(os.Stderr, "⚠ %d rows skipped during reconciliation (see run report)\n", result.Run.SkippedRows)
	}

	return nil
}

// overallPct extracts the overall percentage for the progress line
func overallPct(result *pipeline.ReportResult) float64 {
	if len(result.Set.Overall.Entries) == 0 {
		return 0
	}
	return result.Set.Overall.Entries[0].Percentage
}
