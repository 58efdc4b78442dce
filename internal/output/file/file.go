package file

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/crimson-sun/bloomq/internal/output"
)

const (
	defaultBufSize = 64 * 1024
	maxBackups     = 5
)

// Option configures a file Output.
type Option func(*Output)

// WithMaxSize sets the size in bytes past which the next record rotates the
// file. 0 disables rotation.
func WithMaxSize(bytes int64) Option {
	return func(o *Output) { o.maxSize = bytes }
}

// WithMaxMB is WithMaxSize in mebibytes.
func WithMaxMB(mb int) Option {
	return WithMaxSize(int64(mb) << 20)
}

// WithBufSize sets the write buffer size. Default: 64KB.
func WithBufSize(bytes int) Option {
	return func(o *Output) { o.bufSize = bytes }
}

// Output appends NDJSON records to a file. When a size limit is set the
// file is rotated to path.1 … path.5 before it would grow past it.
type Output struct {
	path      string
	verbosity output.Verbosity
	maxSize   int64
	bufSize   int

	mu   sync.Mutex
	f    *os.File
	w    *bufio.Writer
	size int64
}

// New opens path for appending, creating it if needed.
func New(path string, verbosity output.Verbosity, opts ...Option) (*Output, error) {
	o := &Output{path: path, verbosity: verbosity, bufSize: defaultBufSize}
	for _, opt := range opts {
		opt(o)
	}
	if err := o.open(); err != nil {
		return nil, fmt.Errorf("file output: %w", err)
	}
	return o, nil
}

func (o *Output) Write(_ context.Context, rec output.Record) error {
	line, err := json.Marshal(output.FormatRecord(rec, o.verbosity))
	if err != nil {
		return fmt.Errorf("file output: marshal: %w", err)
	}
	line = append(line, '\n')

	o.mu.Lock()
	defer o.mu.Unlock()

	if o.full(len(line)) {
		if err := o.rotate(); err != nil {
			return fmt.Errorf("file output: rotate: %w", err)
		}
	}
	n, err := o.w.Write(line)
	o.size += int64(n)
	if err != nil {
		return fmt.Errorf("file output: write: %w", err)
	}
	return nil
}

// Close flushes buffered records and closes the file.
func (o *Output) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	flushErr := o.w.Flush()
	closeErr := o.f.Close()
	if flushErr != nil {
		return fmt.Errorf("file output: flush: %w", flushErr)
	}
	return closeErr
}

// full reports whether appending n bytes would pass the size limit. A record
// larger than the limit still goes into an empty file.
func (o *Output) full(n int) bool {
	return o.maxSize > 0 && o.size > 0 && o.size+int64(n) > o.maxSize
}

func (o *Output) open() error {
	f, err := os.OpenFile(o.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return err
	}
	o.f, o.w, o.size = f, bufio.NewWriterSize(f, o.bufSize), info.Size()
	return nil
}

// rotate shifts path.N to path.N+1, dropping the oldest, moves the current
// file to path.1 and reopens path.
func (o *Output) rotate() error {
	if err := o.w.Flush(); err != nil {
		return err
	}
	if err := o.f.Close(); err != nil {
		return err
	}
	for i := maxBackups - 1; i > 0; i-- {
		// Gaps in the backup sequence are expected.
		_ = os.Rename(backupName(o.path, i), backupName(o.path, i+1))
	}
	if err := os.Rename(o.path, backupName(o.path, 1)); err != nil {
		return err
	}
	return o.open()
}

func backupName(path string, n int) string {
	return fmt.Sprintf("%s.%d", path, n)
}
