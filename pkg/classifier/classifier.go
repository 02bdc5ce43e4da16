// Package classifier asks a generative model whether a document is an
// invoice and extracts its date, seller and first line item.
package classifier

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/jmylchreest/invoicesort/internal/logger"
	"github.com/jmylchreest/invoicesort/internal/progress"
	"github.com/jmylchreest/invoicesort/pkg/invoice"
	"github.com/jmylchreest/invoicesort/pkg/llm"
)

// ErrUnsupportedType is returned for extensions outside the MIME table.
var ErrUnsupportedType = errors.New("unsupported file type")

var mimeTypes = map[string]string{
	".pdf":  "application/pdf",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
}

// MIMEType returns the MIME type for path based on its lowercased extension.
func MIMEType(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	mt, ok := mimeTypes[ext]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedType, ext)
	}
	return mt, nil
}

// Supported reports whether path has an extension the classifier accepts.
func Supported(path string) bool {
	_, err := MIMEType(path)
	return err == nil
}

// Prompt is the fixed instruction sent with every document.
const Prompt = `Analyze this document and:
1. Verify if it's an invoice
2. If it is an invoice, extract:
   - Invoice date (YYYY-MM-DD format)
   - Seller's company name
   - First item name from the list of goods/services
3. Return JSON format: {
  "isInvoice": boolean,
  "invoiceDate": string|null,
  "sellerName": string|null,
  "firstItem": string|null
}`

// Config holds classifier settings.
type Config struct {
	// Temperature for model responses (default: 0).
	Temperature float64

	// MaxTokens for model responses (default: 1024).
	MaxTokens int

	// StrictMode asks the provider for schema-enforced output (default: true).
	StrictMode bool

	// ProgressOutput receives the elapsed-time indicator. nil disables it.
	ProgressOutput io.Writer

	// ProgressInterval is the indicator refresh period (default: 1s).
	ProgressInterval time.Duration
}

// DefaultConfig returns the defaults used by the CLI.
func DefaultConfig() Config {
	return Config{
		MaxTokens:        1024,
		StrictMode:       true,
		ProgressInterval: progress.DefaultInterval,
	}
}

// Option configures a Classifier.
type Option func(*Config)

// WithTemperature sets the sampling temperature.
func WithTemperature(t float64) Option {
	return func(c *Config) { c.Temperature = t }
}

// WithMaxTokens sets the response token limit.
func WithMaxTokens(n int) Option {
	return func(c *Config) { c.MaxTokens = n }
}

// WithStrictMode toggles schema-enforced output.
func WithStrictMode(strict bool) Option {
	return func(c *Config) { c.StrictMode = strict }
}

// WithProgress sets where the elapsed-time indicator is written.
func WithProgress(w io.Writer, interval time.Duration) Option {
	return func(c *Config) {
		c.ProgressOutput = w
		if interval > 0 {
			c.ProgressInterval = interval
		}
	}
}

// Classifier classifies documents with a model provider.
type Classifier struct {
	provider llm.Provider
	config   Config
}

// New creates a Classifier backed by provider.
func New(provider llm.Provider, opts ...Option) *Classifier {
	config := DefaultConfig()
	for _, opt := range opts {
		opt(&config)
	}
	return &Classifier{provider: provider, config: config}
}

// Classify returns the record for the file at path. It never fails: any
// error is logged and the fallback record is returned instead.
func (c *Classifier) Classify(ctx context.Context, path string) invoice.Record {
	name := filepath.Base(path)
	rec, err := c.classify(ctx, path)
	if err != nil {
		logger.ErrorContext(ctx, "error processing file", "file", name, "error", err)
		return invoice.Fallback(name)
	}
	return rec
}

func (c *Classifier) classify(ctx context.Context, path string) (invoice.Record, error) {
	name := filepath.Base(path)
	rid := uuid.New().String()
	log := logger.With("req_id", rid, "file", name)

	mimeType, err := MIMEType(path)
	if err != nil {
		return invoice.Record{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return invoice.Record{}, fmt.Errorf("read file: %w", err)
	}

	log.Info("processing file, please wait",
		"provider", c.provider.Name(),
		"model", c.provider.Model(),
		"mime", mimeType,
		"size", humanize.Bytes(uint64(len(data))),
	)

	req := llm.Request{
		Messages: []llm.Message{{
			Role:    llm.RoleUser,
			Content: Prompt,
			Attachments: []llm.Attachment{{
				Filename: name,
				MIMEType: mimeType,
				Data:     data,
			}},
		}},
		MaxTokens:   c.config.MaxTokens,
		Temperature: c.config.Temperature,
		JSONSchema:  invoice.JSONSchema(c.config.StrictMode),
		StrictMode:  c.config.StrictMode,
	}

	ticker := progress.Start(c.config.ProgressOutput, c.config.ProgressInterval)
	resp, err := c.provider.Execute(ctx, req)
	elapsed := ticker.Stop()
	if err != nil {
		return invoice.Record{}, fmt.Errorf("model call: %w", err)
	}

	log.Debug("model response",
		"elapsed", elapsed.Round(time.Millisecond),
		"input_tokens", resp.Usage.InputTokens,
		"output_tokens", resp.Usage.OutputTokens,
		"finish_reason", resp.FinishReason,
		"content", resp.Content,
	)

	rec, err := invoice.Parse(name, resp.Content)
	if err != nil {
		return invoice.Record{}, fmt.Errorf("parse response: %w", err)
	}

	log.Info("classified",
		"is_invoice", rec.IsInvoice,
		"date", invoice.Value(rec.InvoiceDate),
		"seller", invoice.Value(rec.SellerName),
		"item", invoice.Value(rec.FirstItem),
	)
	return rec, nil
}
