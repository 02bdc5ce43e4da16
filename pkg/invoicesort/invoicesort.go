package invoicesort

import (
	"context"
	"fmt"
	"time"

	"github.com/jmylchreest/invoicesort/internal/logger"
	"github.com/jmylchreest/invoicesort/internal/output"
	"github.com/jmylchreest/invoicesort/pkg/classifier"
	"github.com/jmylchreest/invoicesort/pkg/invoice"
	"github.com/jmylchreest/invoicesort/pkg/llm"
	"github.com/jmylchreest/invoicesort/pkg/scanner"
	"github.com/jmylchreest/invoicesort/pkg/sorter"
)

// Classifier turns a file into a record. Implementations never fail; they
// return invoice.Fallback on any error.
type Classifier interface {
	Classify(ctx context.Context, path string) invoice.Record
}

// MoveFailure is a file whose record was produced but which could not be
// moved to its destination.
type MoveFailure struct {
	FileName string
	Err      error
}

// Result summarises one run over a folder.
type Result struct {
	Records      []invoice.Record
	MoveFailures []MoveFailure
	ReportPath   string
	Duration     time.Duration
}

// Sorter runs the classify-then-move loop over a folder.
type Sorter struct {
	classifier Classifier
	config     Config
}

// New creates a Sorter. Unless a classifier is injected, a model provider
// is built from the configuration.
func New(opts ...Option) (*Sorter, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	cl := cfg.Classifier
	if cl == nil {
		provider, err := llm.NewProvider(cfg.Provider, llm.ProviderConfig{
			APIKey:  cfg.APIKey,
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
			Timeout: cfg.Timeout,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create provider: %w", err)
		}
		provider = llm.WithObserver(provider, cfg.Observer)

		cl = classifier.New(provider,
			classifier.WithTemperature(cfg.Temperature),
			classifier.WithMaxTokens(cfg.MaxTokens),
			classifier.WithStrictMode(cfg.StrictMode),
			classifier.WithProgress(cfg.ProgressOutput, 0),
		)
	}

	return &Sorter{classifier: cl, config: cfg}, nil
}

// Run processes every candidate document in dir, one at a time, then
// prints the summary and writes the results report.
//
// A failed move is recorded in Result.MoveFailures and the run continues.
// If ctx is cancelled the run stops before the next move or classification
// and no report is written.
func (s *Sorter) Run(ctx context.Context, dir string) (*Result, error) {
	start := time.Now()

	candidates, err := scanner.Candidates(dir)
	if err != nil {
		return nil, err
	}

	result := &Result{Records: make([]invoice.Record, 0)}
	for c := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("interrupted before %s: %w", c.Name, err)
		}

		logger.Info("processing file", "file", c.Name)
		rec := s.classifier.Classify(ctx, c.Path)

		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("interrupted while processing %s: %w", c.Name, err)
		}

		if _, err := sorter.Sort(dir, rec); err != nil {
			logger.Error("failed to move file", "file", rec.FileName, "error", err)
			result.MoveFailures = append(result.MoveFailures, MoveFailure{FileName: rec.FileName, Err: err})
		}
		result.Records = append(result.Records, rec)
	}

	if s.config.SummaryOutput != nil {
		if err := output.WriteSummary(s.config.SummaryOutput, s.config.SummaryFormat, result.Records); err != nil {
			return nil, fmt.Errorf("print summary: %w", err)
		}
	}

	result.ReportPath, err = output.WriteReport(dir, result.Records)
	if err != nil {
		return nil, err
	}

	if s.config.XLSXPath != "" {
		if err := output.ExportXLSX(s.config.XLSXPath, result.Records); err != nil {
			return nil, err
		}
		logger.Info("exported workbook", "path", s.config.XLSXPath)
	}

	result.Duration = time.Since(start)
	logger.Info("run complete",
		"files", len(result.Records),
		"move_failures", len(result.MoveFailures),
		"report", result.ReportPath,
		"elapsed", result.Duration.Round(time.Millisecond),
	)
	return result, nil
}
