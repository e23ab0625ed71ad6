// Package file writes formatted records to a rotating log file: size and
// age rotation, with old backups pruned by count.
//
// Grounded on the teacher's handler/filehandler package (fileBase's
// sizeTrackingWriter + bufio.Writer + rotate/cleanupOldBackups), collapsed
// from the teacher's sync/async handler split into a single appender: the
// worker is already the library's one writer goroutine, so there is no
// sync-vs-async fork to make here (same simplification appender/console
// makes relative to consolehandler).
package file

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/emberlog/ember/record"
)

// sizeTrackingWriter wraps an io.Writer and tracks total bytes written.
// Rotation does not read this count; it compares Appender.currentSize
// against MaxSize.
type sizeTrackingWriter struct {
	w       io.Writer
	written int64
}

func (s *sizeTrackingWriter) Write(p []byte) (int, error) {
	n, err := s.w.Write(p)
	s.written += int64(n)
	return n, err
}

func (s *sizeTrackingWriter) reset(w io.Writer) {
	s.w = w
	s.written = 0
}

// Config configures an Appender.
type Config struct {
	// Filename is the path to the active log file.
	Filename string
	// MaxSize is the size in bytes that triggers rotation. 0 disables
	// size-based rotation.
	MaxSize int64
	// MaxAge is the time since the last rotation that triggers rotation
	// regardless of size. 0 disables age-based rotation.
	MaxAge time.Duration
	// MaxBackups caps how many rotated files are kept; the oldest (by
	// modification time) are removed once the count is exceeded. 0 keeps
	// every backup.
	MaxBackups int
	// Name defaults to "file".
	Name string
}

// Appender writes formatted bytes to a rotating file through a buffered
// writer, flushed on Flush and on every rotation.
type Appender struct {
	name string

	mu          sync.Mutex
	filename    string
	file        *os.File
	sizeWriter  *sizeTrackingWriter
	bufWriter   *bufio.Writer
	encoding    string

	maxSize        int64
	maxAge         time.Duration
	maxBackups     int
	hasRotation    bool
	currentSize    int64
	lastRotateTime time.Time
}

// New opens (creating if necessary) cfg.Filename and returns an Appender
// writing to it.
func New(cfg Config) (*Appender, error) {
	if cfg.Filename == "" {
		return nil, fmt.Errorf("ember: file appender requires a filename")
	}
	if cfg.Name == "" {
		cfg.Name = "file"
	}

	dir := filepath.Dir(cfg.Filename)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	f, err := os.OpenFile(cfg.Filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	sw := &sizeTrackingWriter{w: f}
	a := &Appender{
		name:           cfg.Name,
		filename:       cfg.Filename,
		file:           f,
		sizeWriter:     sw,
		bufWriter:      bufio.NewWriterSize(sw, 4096),
		maxSize:        cfg.MaxSize,
		maxAge:         cfg.MaxAge,
		maxBackups:     cfg.MaxBackups,
		hasRotation:    cfg.MaxSize > 0 || cfg.MaxAge > 0,
		currentSize:    info.Size(),
		lastRotateTime: time.Now(),
	}
	return a, nil
}

// Name implements appender.Named.
func (a *Appender) Name() string { return a.name }

// Write rotates if needed, then writes formatted to the buffered file
// writer.
func (a *Appender) Write(buf *record.Buffer, formatted []byte) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.rotateIfNeeded(); err != nil {
		return err
	}
	n, err := a.bufWriter.Write(formatted)
	a.currentSize += int64(n)
	return err
}

func (a *Appender) rotateIfNeeded() error {
	if !a.hasRotation {
		return nil
	}
	needRotate := a.maxSize > 0 && a.currentSize >= a.maxSize
	if a.maxAge > 0 && time.Since(a.lastRotateTime) >= a.maxAge {
		needRotate = true
	}
	if !needRotate {
		return nil
	}
	return a.rotate()
}

func (a *Appender) rotate() error {
	if err := a.bufWriter.Flush(); err != nil {
		return err
	}
	if err := a.file.Sync(); err != nil {
		return err
	}
	if err := a.file.Close(); err != nil {
		return err
	}

	timestamp := time.Now().Format("2006-01-02T15-04-05")
	rotatedName := fmt.Sprintf("%s.%s", a.filename, timestamp)
	if err := os.Rename(a.filename, rotatedName); err != nil {
		f, openErr := os.OpenFile(a.filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if openErr != nil {
			return fmt.Errorf("ember: rotate failed: %w (reopen also failed: %v)", err, openErr)
		}
		a.file = f
		a.sizeWriter.reset(f)
		a.bufWriter.Reset(a.sizeWriter)
		return err
	}

	if a.maxBackups > 0 {
		a.cleanupOldBackups()
	}

	f, err := os.OpenFile(a.filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	a.file = f
	a.sizeWriter.reset(f)
	a.bufWriter.Reset(a.sizeWriter)
	a.currentSize = 0
	a.lastRotateTime = time.Now()
	return nil
}

func (a *Appender) cleanupOldBackups() {
	dir := filepath.Dir(a.filename)
	base := filepath.Base(a.filename)

	matches, err := filepath.Glob(filepath.Join(dir, base+".*"))
	if err != nil {
		return
	}
	var backups []string
	for _, m := range matches {
		if strings.HasPrefix(filepath.Base(m), base+".") {
			backups = append(backups, m)
		}
	}
	sort.Slice(backups, func(i, j int) bool {
		ii, erri := os.Stat(backups[i])
		jj, errj := os.Stat(backups[j])
		if erri != nil || errj != nil {
			return false
		}
		return ii.ModTime().Before(jj.ModTime())
	})
	if len(backups) > a.maxBackups {
		for _, name := range backups[:len(backups)-a.maxBackups] {
			_ = os.Remove(name)
		}
	}
}

// Flush flushes the buffered writer and syncs the underlying file.
func (a *Appender) Flush() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.bufWriter.Flush(); err != nil {
		return err
	}
	return a.file.Sync()
}

// SetEncoding records the output encoding name for diagnostics; the file
// appender always writes the UTF-8 bytes it is handed.
func (a *Appender) SetEncoding(enc string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.encoding = enc
	return nil
}

// Close flushes, syncs, and closes the underlying file.
func (a *Appender) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.bufWriter.Flush(); err != nil {
		_ = a.file.Close()
		return err
	}
	if err := a.file.Sync(); err != nil {
		_ = a.file.Close()
		return err
	}
	return a.file.Close()
}
