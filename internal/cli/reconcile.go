package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/disclosure-metrics/disclo/internal/pipeline"
)

var (
	outJSON    string
	outXLSX    string
	noCollapse bool
	noFooter   bool
)

// reconcileCmd represents the reconcile command
var reconcileCmd = &cobra.Command{
	Use:   "reconcile <workbook.xlsx>",
	Short: "Reconcile a review workbook into company-year bundles",
	Long: `Reconcile normalizes a review workbook into canonical snippets,
applies reviewer overrides and removals, and groups the survivors into
one bundle per company-year:
- Rows marked "Remove from Analysis? = YES" are excluded everywhere
- Reviewer classifications take precedence over the original ones
- Rows without a company or year are skipped with a diagnostic

Example:
  disclo reconcile review.xlsx
  disclo reconcile review.xlsx --json bundles.json --xlsx reconciled.xlsx`,
	Args: cobra.ExactArgs(1),
	RunE: runReconcile,
}

func init() {
	rootCmd.AddCommand(reconcileCmd)

	reconcileCmd.Flags().StringVar(&outJSON, "json", "bundles.json", "output JSON path")
	reconcileCmd.Flags().StringVar(&outXLSX, "xlsx", "", "output workbook path (optional)")
	reconcileCmd.Flags().BoolVar(&noCollapse, "no-collapse", false, "do not attach collapsed classifications")
	reconcileCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
}

func runReconcile(cmd *cobra.Command, args []string) error {
	path := args[0]

	cfg := buildConfig()
	if noCollapse {
		cfg.Output.Collapsed = false
	}
	if noFooter {
		cfg.Output.IncludeFooter = false
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Reconciling: %s\n", path)
	}

	p := pipeline.NewPipeline(cfg)
	run, err := p.Run(path)
	if err != nil {
		return fmt.Errorf("reconcile failed: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Read %d rows\n", run.Report.TotalRows)
		fmt.Fprintf(os.Stderr, "✓ Built %d bundles\n", len(run.Bundles))
	}

	if outJSON != "" {
		if err := p.Renderer().RenderBundles(run, outJSON); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote JSON: %s\n", outJSON)
		}
	}
	if outXLSX != "" {
		if err := p.Renderer().RenderWorkbook(run.Bundles, outXLSX); err != nil {
			return fmt.Errorf("render workbook: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote workbook: %s\n", outXLSX)
		}
	}

	p.Renderer().RenderSummary(run)
	return nil
}
