package worker

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/disclosure-metrics/disclo/internal/pipeline"
)

// Runner reconciles one workbook. Satisfied by *pipeline.Pipeline.
type Runner interface {
	Run(path string) (*pipeline.RunResult, error)
}

// WorkbookJob reconciles one workbook path
type WorkbookJob struct {
	Path   string
	Runner Runner
}

// Execute runs the reconciliation for this job's workbook
func (j *WorkbookJob) Execute(ctx context.Context) Result {
	if err := ctx.Err(); err != nil {
		return &WorkbookResult{Path: j.Path, Error: err}
	}
	run, err := j.Runner.Run(j.Path)
	return &WorkbookResult{Path: j.Path, Run: run, Error: err}
}

// WorkbookResult is the outcome of reconciling one workbook
type WorkbookResult struct {
	Path  string
	Run   *pipeline.RunResult
	Error error
}

// GetError returns the job error, if any
func (r *WorkbookResult) GetError() error {
	return r.Error
}

// BatchProcessor reconciles many workbooks concurrently. Runs are
// independent pure functions of their input files, so parallelism never
// changes any result.
type BatchProcessor struct {
	runner      Runner
	concurrency int
}

// NewBatchProcessor creates a batch processor
func NewBatchProcessor(runner Runner, concurrency int) *BatchProcessor {
	return &BatchProcessor{runner: runner, concurrency: concurrency}
}

// ProcessPaths reconciles the given workbooks concurrently. Results come
// back sorted by path; a failed workbook reports its error without
// aborting the rest of the batch.
func (b *BatchProcessor) ProcessPaths(ctx context.Context, paths []string) []*WorkbookResult {
	if len(paths) == 0 {
		return []*WorkbookResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	// Submit from a goroutine so result draining below keeps the pool
	// moving even when the batch is larger than the queue buffers
	go func() {
		for _, path := range paths {
			pool.Submit(&WorkbookJob{Path: path, Runner: b.runner})
		}
		pool.Close()
	}()

	results := pool.Wait()

	out := make([]*WorkbookResult, len(results))
	for i, r := range results {
		out[i] = r.(*WorkbookResult)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

// ProcessDir discovers .xlsx workbooks in dir and reconciles them
func (b *BatchProcessor) ProcessDir(ctx context.Context, dir string) ([]*WorkbookResult, error) {
	paths, err := DiscoverWorkbooks(dir)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no workbooks found in %s", dir)
	}
	return b.ProcessPaths(ctx, paths), nil
}

// DiscoverWorkbooks lists .xlsx files in dir, skipping spreadsheet lock
// files ("~$..." leftovers from open editors)
func DiscoverWorkbooks(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", dir, err)
	}

	var paths []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, "~$") {
			continue
		}
		if strings.EqualFold(filepath.Ext(name), ".xlsx") {
			paths = append(paths, filepath.Join(dir, name))
		}
	}
	sort.Strings(paths)
	return paths, nil
}
