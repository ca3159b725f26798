package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/disclosure-metrics/disclo/internal/pipeline"
)

var (
	transJSON string
	transMD   string
)

// transitionsCmd represents the transitions command
var transitionsCmd = &cobra.Command{
	Use:   "transitions <workbook.xlsx>",
	Short: "Measure how review changed the upstream classifications",
	Long: `Transitions tallies the original → final classification pairs over
the raw review rows, before removal filtering hides anything:
- removed rows count toward the removed total only
- the confusion matrix covers kept rows; its diagonal is the unchanged count
- change attribution breaks changed rows down by category, framing, and timeframe

Example:
  disclo transitions review.xlsx --md transitions.md`,
	Args: cobra.ExactArgs(1),
	RunE: runTransitions,
}

func init() {
	rootCmd.AddCommand(transitionsCmd)

	transitionsCmd.Flags().StringVar(&transJSON, "json", "transitions.json", "output JSON path")
	transitionsCmd.Flags().StringVar(&transMD, "md", "", "output Markdown path (optional)")
}

func runTransitions(cmd *cobra.Command, args []string) error {
	path := args[0]
	cfg := buildConfig()

	if verbose {
		fmt.Fprintf(os.Stderr, "Computing transitions: %s\n", path)
	}

	p := pipeline.NewPipeline(cfg)
	stats, err := p.Transitions(path)
	if err != nil {
		return fmt.Errorf("transitions failed: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Kept %d rows, removed %d\n", stats.Kept, stats.Removed)
	}

	if transJSON != "" {
		if err := p.Renderer().RenderTransitionsJSON(stats, transJSON); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote JSON: %s\n", transJSON)
		}
	}
	if transMD != "" {
		if err := p.Renderer().RenderTransitionsMarkdown(stats, transMD); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote Markdown: %s\n", transMD)
		}
	}

	return nil
}
