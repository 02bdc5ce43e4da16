package output

import (
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/jmylchreest/invoicesort/pkg/invoice"
)

// TableWriter prints one row per buffered record.
type TableWriter struct {
	w     io.Writer
	items []invoice.Record
}

// NewTableWriter creates a table writer.
func NewTableWriter(w io.Writer) *TableWriter {
	return &TableWriter{w: w}
}

// Write buffers a single record.
func (w *TableWriter) Write(rec invoice.Record) error {
	w.items = append(w.items, rec)
	return nil
}

// WriteAll buffers multiple records.
func (w *TableWriter) WriteAll(recs []invoice.Record) error {
	w.items = append(w.items, recs...)
	return nil
}

// Flush renders the table with columns File, Date, Seller and Item.
// Null fields render as empty cells.
func (w *TableWriter) Flush() error {
	table := tablewriter.NewWriter(w.w)
	table.SetHeader([]string{"File", "Date", "Seller", "Item"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)

	for _, r := range w.items {
		table.Append([]string{
			r.FileName,
			invoice.Value(r.InvoiceDate),
			invoice.Value(r.SellerName),
			invoice.Value(r.FirstItem),
		})
	}

	table.Render()
	return nil
}
