package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jmylchreest/invoicesort/pkg/invoice"
)

// ReportName is the results file written into the processed folder.
const ReportName = "results.json"

// WriteSummary prints the invoice records in the given format, preceded by
// a heading. Non-invoices are left out.
func WriteSummary(w io.Writer, format Format, recs []invoice.Record) error {
	writer, err := NewWriter(w, format)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, "Invoice Processing Results:"); err != nil {
		return err
	}
	if err := writer.WriteAll(invoicesOnly(recs)); err != nil {
		return err
	}
	return writer.Flush()
}

// WriteReport replaces dir/results.json with all records as a two-space
// indented JSON array. The data is written to a hidden temp file in dir,
// synced and renamed into place.
func WriteReport(dir string, recs []invoice.Record) (string, error) {
	path := filepath.Join(dir, ReportName)

	tmp, err := os.CreateTemp(dir, "."+ReportName+".*")
	if err != nil {
		return "", fmt.Errorf("create report: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		// No-op once the rename succeeded.
		_ = os.Remove(tmpName)
	}()

	w := NewJSONWriter(tmp, true, "  ")
	if err := w.WriteAll(recs); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("write report: %w", err)
	}
	if err := w.Flush(); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("write report: %w", err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("chmod report: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("sync report: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close report: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		return "", fmt.Errorf("replace report: %w", err)
	}
	return path, nil
}

// ExportXLSX writes all records to the workbook at path.
func ExportXLSX(path string, recs []invoice.Record) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create xlsx: %w", err)
	}
	if err := WriteXLSX(f, recs); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
