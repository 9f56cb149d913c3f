package output

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"vanityscan/pkg/checker"
)

// Params describes the run being logged; they are recorded in the header
type Params struct {
	Length      int
	Alphabet    string
	StartFrom   string
	Concurrency int
	Total       uint64
}

// Writer appends scan results to the run's log file. A fresh file is created
// per run; writes are serialized so concurrent callers never interleave
// partial lines.
type Writer struct {
	mu   sync.Mutex
	file *os.File
	path string
}

// FileName builds the per-run log file name from the scan parameters
func FileName(length int, startFrom string, t time.Time) string {
	name := fmt.Sprintf("scan_len%d", length)
	if startFrom != "" {
		name += "_from" + startFrom
	}
	return fmt.Sprintf("%s_%s.txt", name, t.Format("20060102-150405"))
}

// NewWriter creates the run's log file and writes the header. Failure here
// is the one run-fatal condition: a scan without a result log is pointless.
func NewWriter(dir string, params Params) (*Writer, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	now := time.Now()
	path := filepath.Join(dir, FileName(params.Length, params.StartFrom, now))

	// O_EXCL: never append to a previous run's log
	file, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create log file: %w", err)
	}

	w := &Writer{file: file, path: path}

	header := fmt.Sprintf("# vanityscan run %s\n# length=%d alphabet=%s start_from=%s concurrency=%d total=%d\n",
		now.Format(time.RFC3339), params.Length, params.Alphabet, params.StartFrom, params.Concurrency, params.Total)
	if _, err := file.WriteString(header); err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to write log header: %w", err)
	}

	return w, nil
}

// WriteResult appends one full result line
func (w *Writer) WriteResult(res checker.CheckResult) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	var line string
	if res.Outcome == checker.OutcomeError {
		line = fmt.Sprintf("%s - ERROR: %s\n", res.Identifier, res.Message)
	} else {
		line = fmt.Sprintf("%s - %s\n", res.Identifier, res.Outcome)
	}

	if _, err := w.file.WriteString(line); err != nil {
		return fmt.Errorf("failed to write result line: %w", err)
	}
	return nil
}

// WriteSummary appends the run footer
func (w *Writer) WriteSummary(checked, free, errors uint64, elapsed time.Duration) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	footer := fmt.Sprintf("# checked=%d free=%d errors=%d elapsed=%s\n",
		checked, free, errors, elapsed.Round(time.Second))
	if _, err := w.file.WriteString(footer); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	return nil
}

// Path returns the log file path
func (w *Writer) Path() string {
	return w.path
}

// Close flushes and closes the log file
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.file.Close()
}
