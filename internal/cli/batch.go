package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/disclosure-metrics/disclo/internal/pipeline"
	"github.com/disclosure-metrics/disclo/internal/worker"
)

var (
	concurrency int
	outputDir   string
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <dir>",
	Short: "Reconcile every workbook in a directory in parallel",
	Long: `Batch discovers .xlsx workbooks in a directory and reconciles each
one concurrently with a fixed worker pool. Each workbook produces its
own bundle JSON in the output directory; a failing workbook is reported
and skipped, never aborting the rest.

Example:
  disclo batch ./reviews
  disclo batch ./reviews --workers 8 --output-dir ./bundles`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "workers", 0, "number of concurrent workers (default from config)")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./disclo-bundles", "output directory for bundle JSON files")
}

func runBatch(cmd *cobra.Command, args []string) error {
	dir := args[0]
	ctx := context.Background()

	cfg := buildConfig()
	workers := concurrency
	if workers <= 0 {
		workers = cfg.Batch.Workers
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Batch reconciliation\n")
	fmt.Fprintf(os.Stderr, "  Input dir:  %s\n", dir)
	fmt.Fprintf(os.Stderr, "  Workers:    %d\n", workers)
	fmt.Fprintf(os.Stderr, "  Output dir: %s\n\n", outputDir)

	p := pipeline.NewPipeline(cfg)
	processor := worker.NewBatchProcessor(p, workers)

	results, err := processor.ProcessDir(ctx, dir)
	if err != nil {
		return fmt.Errorf("process dir: %w", err)
	}

	successCount := 0
	failureCount := 0
	for _, result := range results {
		if result.Error != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Path, result.Error)
			continue
		}
		successCount++

		outPath := filepath.Join(outputDir, bundleFileName(result.Path))
		if err := p.Renderer().RenderBundles(result.Run, outPath); err != nil {
			failureCount++
			successCount--
			fmt.Fprintf(os.Stderr, "✗ %s: render: %v\n", result.Path, err)
			continue
		}
		fmt.Fprintf(os.Stderr, "✓ %s: %d bundles → %s\n", result.Path, len(result.Run.Bundles), outPath)
	}

	fmt.Fprintf(os.Stderr, "\nDone: %d succeeded, %d failed\n", successCount, failureCount)
	if failureCount > 0 && successCount == 0 {
		return fmt.Errorf("all %d workbooks failed", failureCount)
	}
	return nil
}

// bundleFileName derives the output file name from the workbook path
func bundleFileName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".bundles.json"
}
