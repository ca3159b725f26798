package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/disclosure-metrics/disclo/internal/aggregate"
	"github.com/disclosure-metrics/disclo/internal/cache"
	"github.com/disclosure-metrics/disclo/internal/ingest"
	"github.com/disclosure-metrics/disclo/internal/model"
	"github.com/disclosure-metrics/disclo/internal/reconcile"
	"github.com/disclosure-metrics/disclo/internal/transition"
)

// Pipeline orchestrates the full reconciliation and reporting flow for
// one workbook: ingest -> normalize -> reconcile -> aggregate -> render
type Pipeline struct {
	reader      *ingest.Reader
	engine      *reconcile.Engine
	transitions *transition.Computer
	renderer    *Renderer
	store       cache.Cache // nil when caching is disabled
	config      *model.Config
}

// NewPipeline creates a pipeline with the given configuration
func NewPipeline(cfg *model.Config) *Pipeline {
	var store cache.Cache
	if cfg.Cache.Enabled {
		if cfg.Cache.Dir != "" {
			store = cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
		} else {
			store = cache.NewMemoryCache(cfg.Cache.MemoryTTL, 10*time.Minute)
		}
	}

	return &Pipeline{
		reader:      ingest.NewReader(cfg.Ingest.Sheet),
		engine:      reconcile.NewEngine(cfg.Output.Version, cfg.Output.ModelUsed, time.Now().UTC()),
		transitions: transition.NewComputer(),
		renderer:    NewRenderer(cfg.Output.IncludeFooter),
		store:       store,
		config:      cfg,
	}
}

// RunResult contains the output of one reconciliation run
type RunResult struct {
	Rows    []ingest.Row
	Bundles []model.CompanyYearBundle
	Report  *model.RunReport
}

// Run reads the workbook and reconciles its rows into bundles
func (p *Pipeline) Run(path string) (*RunResult, error) {
	// 1. Ingest raw rows
	rows, err := p.reader.Read(path)
	if err != nil {
		return nil, fmt.Errorf("ingest: %w", err)
	}

	// 2. Reconcile into bundles
	result := p.engine.Reconcile(rows)
	result.Report.Input = path

	// 3. Attach the collapsed view if requested
	bundles := result.Bundles
	if p.config.Output.Collapsed {
		bundles = reconcile.CollapseBundles(bundles)
	}

	return &RunResult{Rows: rows, Bundles: bundles, Report: result.Report}, nil
}

// ReportResult contains the aggregate tables for one workbook
type ReportResult struct {
	Set       *aggregate.ReportSet `json:"report"`
	Run       *model.RunReport     `json:"run_report"`
	FromCache bool                 `json:"-"`
}

// Report reconciles the workbook and computes the full report set.
// Results are cached keyed by a digest of the workbook contents plus the
// report parameters, so a cache hit is byte-equivalent to recomputing.
func (p *Pipeline) Report(path string, filter aggregate.Filter, topN int) (*ReportResult, error) {
	var key string
	if p.store != nil {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read workbook: %w", err)
		}
		key = cache.Key(
			cache.FileDigest(raw),
			filter.Company, strconv.Itoa(filter.Year), filter.Category,
			strconv.Itoa(topN),
		)
		if data, ok := p.store.Get(key); ok {
			var cached ReportResult
			if err := json.Unmarshal(data, &cached); err == nil {
				cached.FromCache = true
				return &cached, nil
			}
		}
	}

	run, err := p.Run(path)
	if err != nil {
		return nil, err
	}

	set := aggregate.New(run.Bundles, filter).BuildReportSet(topN)
	result := &ReportResult{Set: set, Run: run.Report}

	if p.store != nil {
		if data, err := json.Marshal(result); err == nil {
			_ = p.store.Set(key, data, 0)
		}
	}

	return result, nil
}

// Transitions reads the workbook and computes review-transition stats
// over the pre-reconciliation rows, removed ones included
func (p *Pipeline) Transitions(path string) (*transition.Stats, error) {
	rows, err := p.reader.Read(path)
	if err != nil {
		return nil, fmt.Errorf("ingest: %w", err)
	}
	return p.transitions.Compute(rows), nil
}

// Renderer returns the pipeline's renderer
func (p *Pipeline) Renderer() *Renderer {
	return p.renderer
}
