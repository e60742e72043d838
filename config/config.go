// Package config loads the scanner configuration from YAML.
//
// Every field is optional; absent fields keep the defaults from Default.
// Command line flags are applied on top of the loaded file by the caller.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/adrianbenavides/word-counter/errs"
	"github.com/adrianbenavides/word-counter/scan"
)

// Report output formats accepted by Config.Report.Format.
const (
	FormatTable = "table"
	FormatJSON  = "json"
)

// Config holds the full runtime configuration.
type Config struct {
	// Input is the default input path when none is given on the command
	// line. StdinPath ("-") selects standard input.
	Input string `yaml:"input"`

	// Workers is the number of scan workers. 0 selects GOMAXPROCS.
	Workers int `yaml:"workers"`

	// Field is the JSON field whose values are tallied.
	Field string `yaml:"field"`

	// BlockSize is the read block size in bytes. 0 selects the default.
	BlockSize int `yaml:"block_size"`

	Report ReportConfig `yaml:"report"`
	Export ExportConfig `yaml:"export"`

	// Verbose enables progress logging on stderr.
	Verbose bool `yaml:"verbose"`
}

// ReportConfig controls how results are rendered.
type ReportConfig struct {
	// Format is one of FormatTable or FormatJSON.
	Format string `yaml:"format"`

	// Top limits the report to the N most frequent values. 0 keeps all.
	Top int `yaml:"top"`
}

// ExportConfig controls result persistence.
type ExportConfig struct {
	// Database is the SQLite file results are appended to. Empty
	// disables export.
	Database string `yaml:"database"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Field: scan.DefaultField,
		Report: ReportConfig{
			Format: FormatTable,
		},
	}
}

// Load reads the YAML file at path on top of the defaults.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	return cfg, nil
}

// Parse decodes YAML from r on top of the defaults.
func Parse(r io.Reader) (*Config, error) {
	cfg := Default()

	if err := yaml.NewDecoder(r).Decode(cfg); err != nil {
		// An input without any document keeps the defaults.
		if errors.Is(err, io.EOF) {
			return cfg, nil
		}

		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks field values without touching the filesystem.
func (c *Config) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("%w: got %d", errs.ErrInvalidWorkerCount, c.Workers)
	}
	if c.BlockSize < 0 {
		return fmt.Errorf("%w: got %d", errs.ErrInvalidBlockSize, c.BlockSize)
	}
	if c.Field == "" {
		return errs.ErrEmptyField
	}
	if c.Report.Format != FormatTable && c.Report.Format != FormatJSON {
		return fmt.Errorf("%w: %q", errs.ErrInvalidReportFormat, c.Report.Format)
	}
	if c.Report.Top < 0 {
		return fmt.Errorf("%w: top %d", errs.ErrInvalidReportFormat, c.Report.Top)
	}

	return nil
}

// ScanOptions converts the configuration into scanner options.
func (c *Config) ScanOptions() []scan.Option {
	var opts []scan.Option
	if c.Workers > 0 {
		opts = append(opts, scan.WithWorkers(c.Workers))
	}
	if c.Field != "" && c.Field != scan.DefaultField {
		opts = append(opts, scan.WithField(c.Field))
	}
	if c.BlockSize > 0 {
		opts = append(opts, scan.WithBlockSize(c.BlockSize))
	}

	return opts
}
