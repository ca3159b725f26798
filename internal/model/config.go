package model

import "time"

// Config holds all runtime configuration
type Config struct {
	Ingest IngestConfig `yaml:"ingest"`
	Output OutputConfig `yaml:"output"`
	Cache  CacheConfig  `yaml:"cache"`
	Batch  BatchConfig  `yaml:"batch"`
}

// IngestConfig controls workbook reading
type IngestConfig struct {
	Sheet string `yaml:"sheet"` // Review sheet name; empty means first sheet
}

// OutputConfig controls report rendering
type OutputConfig struct {
	Verbose       bool   `yaml:"verbose"`
	IncludeFooter bool   `yaml:"include_footer"`
	Collapsed     bool   `yaml:"collapsed"`   // Attach collapsed_classification to rendered snippets
	Version       string `yaml:"version"`     // Pipeline version stamped on bundles
	ModelUsed     string `yaml:"model_used"`  // Upstream extraction model, if known
}

// CacheConfig controls report table caching
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled"`
	Dir       string        `yaml:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl"`
}

// BatchConfig controls concurrent workbook processing
type BatchConfig struct {
	Workers int `yaml:"workers"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		Ingest: IngestConfig{
			Sheet: "",
		},
		Output: OutputConfig{
			Verbose:       false,
			IncludeFooter: true,
			Collapsed:     true,
			Version:       "1.0",
			ModelUsed:     "",
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       "",
			MemoryTTL: 15 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		Batch: BatchConfig{
			Workers: 4,
		},
	}
}
