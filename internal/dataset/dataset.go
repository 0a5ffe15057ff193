// Package dataset persists annotations as line-delimited JSON metadata.
// The writer is append-only and flushes one line per annotation, so an
// interrupted run keeps everything but the in-flight frame.
package dataset

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/calligo/synthset/internal/model"
)

// MetadataFilename is the metadata file name within a dataset directory.
const MetadataFilename = "metadata.jsonl"

// MetadataPath returns the metadata file path for a dataset directory.
func MetadataPath(dir string) string {
	return filepath.Join(dir, MetadataFilename)
}

// Writer appends annotations to a dataset's metadata file.
type Writer struct {
	f *os.File
}

// NewWriter opens the metadata file of the given dataset directory,
// creating the directory if needed. With resume set the file is opened for
// appending so lines from an earlier run survive; otherwise it is
// truncated, so a fresh run never carries stale annotations.
func NewWriter(dir string, resume bool) (*Writer, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating dataset dir: %w", err)
	}

	flags := os.O_CREATE | os.O_WRONLY
	if resume {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}
	f, err := os.OpenFile(MetadataPath(dir), flags, 0644)
	if err != nil {
		return nil, fmt.Errorf("opening metadata file: %w", err)
	}

	return &Writer{f: f}, nil
}

// Append writes one annotation as a single JSON line and flushes it.
func (w *Writer) Append(a model.Annotation) error {
	data, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("encoding annotation %s: %w", a.FileName, err)
	}

	if _, err := w.f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("writing annotation %s: %w", a.FileName, err)
	}
	return nil
}

// Close syncs and closes the metadata file. Closing an already closed
// writer is a no-op, so it is safe to defer a Close alongside an explicit,
// error-checked one.
func (w *Writer) Close() error {
	if w.f == nil {
		return nil
	}
	f := w.f
	w.f = nil
	if err := f.Sync(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Read parses a metadata file back into annotations, preserving order.
// A missing file yields an empty slice, not an error.
func Read(path string) ([]model.Annotation, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening metadata file: %w", err)
	}
	defer f.Close()

	var annotations []model.Annotation
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		if len(scanner.Bytes()) == 0 {
			continue
		}
		var a model.Annotation
		if err := json.Unmarshal(scanner.Bytes(), &a); err != nil {
			return nil, fmt.Errorf("parsing metadata line %d: %w", line, err)
		}
		annotations = append(annotations, a)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading metadata file: %w", err)
	}

	return annotations, nil
}
