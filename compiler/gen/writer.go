package gen

import (
	"bytes"
	"context"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"sync"
	"time"

	"golang.org/x/tools/imports"
)

// Writer receives the rendered content of the generated files.
type Writer interface {
	Write(ctx context.Context, path string, src []byte) error
}

// FileWriter writes generated files to disk. Sources are formatted with
// goimports and files whose content did not change are left untouched.
type FileWriter struct {
	logger *slog.Logger

	// Metrics for performance monitoring
	mu      sync.Mutex
	metrics WriterMetrics
}

// WriterMetrics tracks generation performance.
type WriterMetrics struct {
	FilesGenerated int
	FilesUnchanged int
	TotalBytes     int64
	FormatTime     int64 // nanoseconds
	WriteTime      int64 // nanoseconds
}

// NewFileWriter creates a new writer logging to the given logger.
func NewFileWriter(logger *slog.Logger) *FileWriter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &FileWriter{logger: logger}
}

// Metrics returns a snapshot of the generation metrics.
func (w *FileWriter) Metrics() WriterMetrics {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.metrics
}

// Write formats src and writes it to path.
func (w *FileWriter) Write(_ context.Context, path string, src []byte) error {
	start := time.Now()
	formatted, err := format(path, src)
	formatTime := time.Since(start)
	if err != nil {
		// Write unformatted file for debugging (errors intentionally ignored as we're already in error state)
		debugPath := path + ".error"
		_ = os.WriteFile(debugPath, src, 0o644)
		return NewGenerationError("format", path, "unformatted source written to "+debugPath, err)
	}

	current, err := os.ReadFile(path)
	switch {
	case err == nil && bytes.Equal(current, formatted):
		w.record(func(m *WriterMetrics) {
			m.FilesUnchanged++
			m.FormatTime += int64(formatTime)
		})
		w.logger.Debug("generated file unchanged", slog.String("file", path))
		return nil
	case err != nil && !errors.Is(err, fs.ErrNotExist):
		return NewGenerationError("write", path, "", err)
	}

	start = time.Now()
	if err := os.WriteFile(path, formatted, 0o644); err != nil {
		return NewGenerationError("write", path, "", err)
	}
	w.record(func(m *WriterMetrics) {
		m.FilesGenerated++
		m.TotalBytes += int64(len(formatted))
		m.FormatTime += int64(formatTime)
		m.WriteTime += int64(time.Since(start))
	})
	w.logger.Debug("wrote generated file", slog.String("file", path), slog.Int("bytes", len(formatted)))
	return nil
}

func (w *FileWriter) record(f func(*WriterMetrics)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	f(&w.metrics)
}

// StreamWriter writes every generated file to one stream, each preceded
// by a comment line naming its path.
type StreamWriter struct {
	mu  sync.Mutex
	out io.Writer
}

// NewStreamWriter creates a writer printing to out.
func NewStreamWriter(out io.Writer) *StreamWriter {
	return &StreamWriter{out: out}
}

// Write formats src and prints it.
func (w *StreamWriter) Write(_ context.Context, path string, src []byte) error {
	formatted, err := format(path, src)
	if err != nil {
		return NewGenerationError("format", path, "", err)
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, err := io.WriteString(w.out, "// "+path+"\n"); err != nil {
		return err
	}
	_, err = w.out.Write(formatted)
	return err
}

// format groups and sorts the imports of a generated file. Imports are not
// resolved: jennifer already emits exactly the packages in use.
func format(path string, src []byte) ([]byte, error) {
	return imports.Process(path, src, &imports.Options{
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
		FormatOnly: true,
	})
}
