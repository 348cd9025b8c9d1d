// package shared defines shared helpers
package shared

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// NewLogger creates a new [log.Logger] instance with the specified [io.Writer], with timestamps and caller reporting enabled.
//
// The writer defaults to [os.Stderr]
func NewLogger(w io.Writer) *log.Logger {
	if w == nil {
		w = os.Stderr
	}
	opts := log.Options{ReportTimestamp: true, ReportCaller: true}
	return log.NewWithOptions(w, opts)
}

// WithLogger creates a child [log.Logger] with the specified key-value pairs added to all log entries.
func WithLogger(l *log.Logger, kv ...any) *log.Logger {
	return l.With(kv...)
}

// SetLogLevel sets the [log.Level] for the given [log.Logger].
func SetLogLevel(l *log.Logger, ll log.Level) {
	l.SetLevel(ll)
}

// ParseLevel parses a configured level name. An empty name means info.
func ParseLevel(name string) (log.Level, error) {
	if strings.TrimSpace(name) == "" {
		return log.InfoLevel, nil
	}
	return log.ParseLevel(strings.ToLower(name))
}

// LogFileName returns the daily log file name for t, e.g. log20240131.log.
func LogFileName(t time.Time) string {
	return "log" + t.Format("20060102") + ".log"
}

// OpenLogFile opens (creating if needed) the append-only daily log file in dir.
func OpenLogFile(dir string, t time.Time) (*os.File, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	path := filepath.Join(dir, LogFileName(t))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}

// DailyLog is an [io.WriteCloser] over the daily log files in a directory. It switches to a new
// file on the first write after midnight.
type DailyLog struct {
	dir string
	now func() time.Time

	mu   sync.Mutex
	day  string
	file *os.File
}

// NewDailyLog creates a [DailyLog] writing into dir. No file is opened until the first write.
func NewDailyLog(dir string) *DailyLog {
	return &DailyLog{dir: dir, now: time.Now}
}

func (d *DailyLog) Write(p []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	now := d.now()
	if day := LogFileName(now); d.file == nil || day != d.day {
		f, err := OpenLogFile(d.dir, now)
		if err != nil {
			return 0, err
		}
		if d.file != nil {
			d.file.Close()
		}
		d.file, d.day = f, day
	}

	return d.file.Write(p)
}

func (d *DailyLog) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.file == nil {
		return nil
	}
	err := d.file.Close()
	d.file = nil
	return err
}

// GenerateID generates a new v4 [uuid.UUID] as a string
func GenerateID() string {
	return uuid.New().String()
}
