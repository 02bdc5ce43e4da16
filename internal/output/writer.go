// Package output renders classification records for the console and the
// results report.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/jmylchreest/invoicesort/pkg/invoice"
)

// Format represents output format types.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// Formats lists the accepted summary formats.
var Formats = []Format{FormatTable, FormatJSON, FormatYAML}

// FormatList returns Formats joined with ", ".
func FormatList() string {
	names := make([]string, len(Formats))
	for i, f := range Formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}

// Writer handles record serialization.
type Writer interface {
	// Write buffers a single record.
	Write(rec invoice.Record) error

	// WriteAll buffers multiple records.
	WriteAll(recs []invoice.Record) error

	// Flush renders everything buffered so far.
	Flush() error
}

// NewWriter creates a writer for the given format. JSON is indented with
// two spaces.
func NewWriter(w io.Writer, format Format) (Writer, error) {
	switch format {
	case FormatTable:
		return NewTableWriter(w), nil
	case FormatJSON:
		return NewJSONWriter(w, true, "  "), nil
	case FormatYAML:
		return NewYAMLWriter(w), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// invoicesOnly returns the records classified as invoices, in order.
func invoicesOnly(recs []invoice.Record) []invoice.Record {
	out := make([]invoice.Record, 0, len(recs))
	for _, r := range recs {
		if r.IsInvoice {
			out = append(out, r)
		}
	}
	return out
}
