package output

import (
	"bufio"
	"encoding/json"
	"io"

	"github.com/jmylchreest/invoicesort/pkg/invoice"
)

// JSONWriter writes records as a single JSON array, "[]" when empty.
type JSONWriter struct {
	w      *bufio.Writer
	pretty bool
	indent string
	items  []invoice.Record
}

// NewJSONWriter creates a JSON writer.
func NewJSONWriter(w io.Writer, pretty bool, indent string) *JSONWriter {
	return &JSONWriter{
		w:      bufio.NewWriter(w),
		pretty: pretty,
		indent: indent,
		items:  make([]invoice.Record, 0),
	}
}

// Write buffers a single record.
func (w *JSONWriter) Write(rec invoice.Record) error {
	w.items = append(w.items, rec)
	return nil
}

// WriteAll buffers multiple records.
func (w *JSONWriter) WriteAll(recs []invoice.Record) error {
	w.items = append(w.items, recs...)
	return nil
}

// Flush writes the buffered records as a JSON array.
func (w *JSONWriter) Flush() error {
	var output []byte
	var err error

	if w.pretty {
		output, err = json.MarshalIndent(w.items, "", w.indent)
	} else {
		output, err = json.Marshal(w.items)
	}
	if err != nil {
		return err
	}

	if _, err := w.w.Write(output); err != nil {
		return err
	}
	if _, err := w.w.WriteString("\n"); err != nil {
		return err
	}

	return w.w.Flush()
}
