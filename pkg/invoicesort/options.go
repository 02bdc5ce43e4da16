// Package invoicesort provides the public API for sorting a folder of
// documents into invoices and non-invoices.
package invoicesort

import (
	"io"
	"time"

	"github.com/jmylchreest/invoicesort/internal/output"
	"github.com/jmylchreest/invoicesort/pkg/llm"
)

// Config holds all processor configuration.
type Config struct {
	// Model settings
	Provider string
	Model    string
	APIKey   string
	BaseURL  string
	Timeout  time.Duration

	// Classification settings
	Temperature float64
	MaxTokens   int
	StrictMode  bool

	// Console settings
	ProgressOutput io.Writer
	SummaryOutput  io.Writer
	SummaryFormat  output.Format

	// XLSXPath, when set, also exports every record to a workbook.
	XLSXPath string

	// Observer is notified of every model call.
	Observer llm.Observer

	// Classifier replaces the model-backed classifier (for tests).
	Classifier Classifier
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider:      "gemini",
		MaxTokens:     1024,
		StrictMode:    true,
		SummaryFormat: output.FormatTable,
	}
}

// Option configures a Sorter.
type Option func(*Config)

// WithProvider sets the model provider.
func WithProvider(provider string) Option {
	return func(c *Config) {
		c.Provider = provider
	}
}

// WithModel sets the model.
func WithModel(model string) Option {
	return func(c *Config) {
		c.Model = model
	}
}

// WithAPIKey sets the API key.
func WithAPIKey(key string) Option {
	return func(c *Config) {
		c.APIKey = key
	}
}

// WithBaseURL sets a custom API base URL.
func WithBaseURL(url string) Option {
	return func(c *Config) {
		c.BaseURL = url
	}
}

// WithTimeout bounds each model call. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Config) {
		c.Timeout = d
	}
}

// WithTemperature sets the sampling temperature.
func WithTemperature(t float64) Option {
	return func(c *Config) {
		c.Temperature = t
	}
}

// WithStrictMode toggles schema-enforced output from the provider.
func WithStrictMode(strict bool) Option {
	return func(c *Config) {
		c.StrictMode = strict
	}
}

// WithProgressOutput sets where the elapsed-time indicator is written.
func WithProgressOutput(w io.Writer) Option {
	return func(c *Config) {
		c.ProgressOutput = w
	}
}

// WithSummary prints the invoice summary to w in format after the run.
func WithSummary(w io.Writer, format output.Format) Option {
	return func(c *Config) {
		c.SummaryOutput = w
		c.SummaryFormat = format
	}
}

// WithXLSX exports all records to the workbook at path.
func WithXLSX(path string) Option {
	return func(c *Config) {
		c.XLSXPath = path
	}
}

// WithObserver sets the model call observer.
func WithObserver(obs llm.Observer) Option {
	return func(c *Config) {
		c.Observer = obs
	}
}

// WithClassifier injects a classifier instead of building one from the
// provider settings.
func WithClassifier(cl Classifier) Option {
	return func(c *Config) {
		c.Classifier = cl
	}
}
