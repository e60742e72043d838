// Command word-counter tallies NDJSON records by the value of one JSON
// field and prints a per-value report.
//
// Usage:
//
//	word-counter [flags] [input]
//
// The input is a file path or "-" for stdin. Gzip, Zstd, S2 and LZ4
// compressed inputs are decompressed transparently, detected by their
// magic bytes. Settings come from word-counter.yaml when present;
// command line flags override the file.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	iofs "io/fs"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	wordcounter "github.com/adrianbenavides/word-counter"
	"github.com/adrianbenavides/word-counter/config"
	"github.com/adrianbenavides/word-counter/report"
	"github.com/adrianbenavides/word-counter/scan"
	"github.com/adrianbenavides/word-counter/store"
)

// defaultConfigFile is read when no -config flag is given. A missing file
// is not an error; the defaults apply.
const defaultConfigFile = "word-counter.yaml"

func main() {
	log.SetFlags(0)
	log.SetPrefix("word-counter: ")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil && !errors.Is(err, flag.ErrHelp) {
		log.Fatal(err)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	flags := flag.NewFlagSet("word-counter", flag.ContinueOnError)
	var (
		flagConfig  = flags.String("config", "", "YAML configuration file")
		flagWorkers = flags.Int("workers", 0, "number of scan workers (0 selects all CPUs)")
		flagField   = flags.String("field", "", "JSON field to classify records by")
		flagBlock   = flags.Int("block-size", 0, "read block size in bytes")
		flagFormat  = flags.String("format", "", "report format: table or json")
		flagTop     = flags.Int("top", 0, "limit the report to the N most frequent values")
		flagExport  = flags.String("export", "", "SQLite database to append the run to")
		flagVerbose = flags.Bool("verbose", false, "log scan throughput and totals to stderr")
	)
	flags.Usage = func() {
		fmt.Fprintf(flags.Output(), "Usage: word-counter [flags] [input]\n\n")
		fmt.Fprintf(flags.Output(), "Tally NDJSON records by the value of one JSON field.\n")
		fmt.Fprintf(flags.Output(), "The input is a file path or - for stdin; compressed inputs are\ndecompressed transparently.\n\nFlags:\n")
		flags.PrintDefaults()
	}
	if err := flags.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig(*flagConfig)
	if err != nil {
		return err
	}

	flags.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "workers":
			cfg.Workers = *flagWorkers
		case "field":
			cfg.Field = *flagField
		case "block-size":
			cfg.BlockSize = *flagBlock
		case "format":
			cfg.Report.Format = *flagFormat
		case "top":
			cfg.Report.Top = *flagTop
		case "export":
			cfg.Export.Database = *flagExport
		case "verbose":
			cfg.Verbose = *flagVerbose
		}
	})
	if err := cfg.Validate(); err != nil {
		return err
	}

	inputPath := cfg.Input
	if flags.NArg() > 0 {
		inputPath = flags.Arg(0)
	}
	if inputPath == "" {
		inputPath = "-"
	}

	summary, err := wordcounter.ProcessFile(ctx, inputPath, cfg.ScanOptions()...)
	if err != nil {
		return err
	}

	if cfg.Verbose {
		res := summary.Result
		log.Printf("[time=%s][file_size=%dMB][throughput=%.2fMB/s][lines=%d][unique_types=%d]",
			summary.Elapsed.Round(time.Millisecond), summary.FileSize/(1<<20),
			summary.Throughput(), res.Lines(), res.Len())
		if skipped := res.Skipped(); skipped > 0 {
			log.Printf("skipped %d lines: %d malformed, %d without field",
				skipped, res.Malformed(), res.Missing())
		}
	}

	formatter := report.Formatter{Top: cfg.Report.Top, Totals: cfg.Verbose}
	switch cfg.Report.Format {
	case config.FormatJSON:
		err = formatter.WriteJSON(out, summary.Result)
	default:
		err = formatter.WriteTable(out, summary.Result)
	}
	if err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	if cfg.Export.Database != "" {
		return exportRun(ctx, cfg, inputPath, summary)
	}

	return nil
}

// loadConfig resolves the configuration: an explicit path must exist, the
// default file applies only when present.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}

	cfg, err := config.Load(defaultConfigFile)
	if errors.Is(err, iofs.ErrNotExist) {
		return config.Default(), nil
	}

	return cfg, err
}

func exportRun(ctx context.Context, cfg *config.Config, inputPath string, sum *scan.Summary) error {
	db, err := store.Open(cfg.Export.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	id, err := db.SaveRun(ctx, inputPath, sum)
	if err != nil {
		return err
	}
	if cfg.Verbose {
		log.Printf("saved run %s to %s", id, cfg.Export.Database)
	}

	return nil
}
