// Package sorter moves classified documents into their destination folders.
package sorter

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/jmylchreest/invoicesort/internal/logger"
	"github.com/jmylchreest/invoicesort/pkg/invoice"
)

// Destination folder names, relative to the source folder.
const (
	InvoicesDir    = "invoices"
	NonInvoicesDir = "non-invoices"
)

// ErrDestinationExists is returned when the target path is already taken.
// The source file is left where it was.
var ErrDestinationExists = errors.New("destination already exists")

// EnsureFolders creates the destination folders under dir. It is idempotent.
func EnsureFolders(dir string) error {
	for _, sub := range []string{InvoicesDir, NonInvoicesDir} {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0o755); err != nil {
			return fmt.Errorf("create %s folder: %w", sub, err)
		}
	}
	return nil
}

// Destination returns the path rec's file is moved to, relative to dir.
func Destination(rec invoice.Record) string {
	if rec.IsInvoice {
		return filepath.Join(InvoicesDir, invoice.FileName(rec))
	}
	return filepath.Join(NonInvoicesDir, rec.FileName)
}

// Sort moves dir/rec.FileName to its destination and returns the new path.
// Invoices are renamed from their extracted fields; other files keep their
// name.
func Sort(dir string, rec invoice.Record) (string, error) {
	if err := EnsureFolders(dir); err != nil {
		return "", err
	}

	src := filepath.Join(dir, rec.FileName)
	dst := filepath.Join(dir, Destination(rec))

	if _, err := os.Lstat(dst); err == nil {
		return "", fmt.Errorf("move %s to %s: %w", rec.FileName, dst, ErrDestinationExists)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("stat %s: %w", dst, err)
	}

	if err := os.Rename(src, dst); err != nil {
		return "", fmt.Errorf("move %s: %w", rec.FileName, err)
	}

	logger.Debug("moved file", "file", rec.FileName, "to", dst)
	return dst, nil
}
