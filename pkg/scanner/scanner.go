// Package scanner enumerates the candidate documents of a folder.
package scanner

import (
	"fmt"
	"iter"
	"os"
	"path/filepath"

	"github.com/jmylchreest/invoicesort/internal/logger"
	"github.com/jmylchreest/invoicesort/pkg/classifier"
)

// Candidate is a file selected for classification.
type Candidate struct {
	// Name is the base name, unique within the folder.
	Name string
	// Path is dir joined with Name.
	Path string
}

// Candidates lists the immediate children of dir and returns a sequence of
// those with a recognized extension, in directory-name order.
// Directories and other extensions are logged and skipped.
// The listing happens before Candidates returns, so an unreadable folder is
// reported here and never mid-iteration.
func Candidates(dir string) (iter.Seq[Candidate], error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read folder %s: %w", dir, err)
	}

	return func(yield func(Candidate) bool) {
		for _, e := range entries {
			name := e.Name()
			switch {
			case e.IsDir():
				logger.Debug("skipping directory", "file", name)
				continue
			case !Recognized(name):
				logger.Info("skipping file", "file", name)
				continue
			}
			if !yield(Candidate{Name: name, Path: filepath.Join(dir, name)}) {
				return
			}
		}
	}, nil
}

// Recognized reports whether name has a document extension the classifier
// accepts. A name that is only an extension, such as ".pdf", has none.
func Recognized(name string) bool {
	if filepath.Ext(name) == name {
		return false
	}
	return classifier.Supported(name)
}
