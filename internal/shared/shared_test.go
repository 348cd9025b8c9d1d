package shared

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestLogger(t *testing.T) {
	t.Run("NewLogger writes to the given writer", func(t *testing.T) {
		buf := &bytes.Buffer{}
		logger := NewLogger(buf)

		WithLogger(logger, "component", "test").Info("hello")

		if !strings.Contains(buf.String(), "hello") {
			t.Errorf("expected log output, got %q", buf.String())
		}
		if !strings.Contains(buf.String(), "component=test") {
			t.Errorf("expected key-value pair in output, got %q", buf.String())
		}
	})

	t.Run("SetLogLevel filters", func(t *testing.T) {
		buf := &bytes.Buffer{}
		logger := NewLogger(buf)
		SetLogLevel(logger, log.WarnLevel)

		logger.Info("quiet")

		if buf.Len() != 0 {
			t.Errorf("expected info to be filtered, got %q", buf.String())
		}
	})
}

func TestParseLevel(t *testing.T) {
	tc := []struct {
		name    string
		want    log.Level
		wantErr bool
	}{
		{name: "", want: log.InfoLevel},
		{name: "debug", want: log.DebugLevel},
		{name: "WARN", want: log.WarnLevel},
		{name: "error", want: log.ErrorLevel},
		{name: "loud", wantErr: true},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLevel(tt.name)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestOpenLogFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "log")
	day := time.Date(2024, 1, 31, 10, 0, 0, 0, time.UTC)

	for _, line := range []string{"first\n", "second\n"} {
		f, err := OpenLogFile(dir, day)
		if err != nil {
			t.Fatalf("OpenLogFile() error = %v", err)
		}
		if _, err := f.WriteString(line); err != nil {
			t.Fatalf("failed to write: %v", err)
		}
		f.Close()
	}

	content, err := os.ReadFile(filepath.Join(dir, "log20240131.log"))
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if string(content) != "first\nsecond\n" {
		t.Errorf("expected appended content, got %q", string(content))
	}
}

func TestGenerateID(t *testing.T) {
	a, b := GenerateID(), GenerateID()
	if len(a) != 36 {
		t.Errorf("expected uuid string, got %q", a)
	}
	if a == b {
		t.Error("expected unique ids")
	}
}

func TestDailyLog(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2024, 1, 31, 23, 59, 0, 0, time.UTC)

	d := NewDailyLog(dir)
	d.now = func() time.Time { return now }
	defer d.Close()

	if _, err := d.Write([]byte("before midnight\n")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	now = now.Add(2 * time.Minute)
	if _, err := d.Write([]byte("after midnight\n")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	for name, want := range map[string]string{
		"log20240131.log": "before midnight\n",
		"log20240201.log": "after midnight\n",
	} {
		content, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			t.Fatalf("failed to read %s: %v", name, err)
		}
		if string(content) != want {
			t.Errorf("%s: expected %q, got %q", name, want, string(content))
		}
	}
}
