package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/chinook/internal/shared"
	tu "github.com/desertthunder/chinook/internal/testing"
	"github.com/urfave/cli/v3"
)

func newTestRunner(t *testing.T) (*Runner, *bytes.Buffer) {
	t.Helper()

	output := &bytes.Buffer{}
	logs := &bytes.Buffer{}
	return NewRunner(RunnerOpts{Output: output, LogOutput: logs}), output
}

// run executes the CLI with args as if typed after the program name.
func run(ctx context.Context, r *Runner, args ...string) error {
	app := &cli.Command{Name: "chinook", Commands: r.register()}
	return app.Run(ctx, append([]string{"chinook"}, args...))
}

// writeConfig writes a sqlite config whose database lives in dir.
func writeConfig(t *testing.T, dir string, port int, extra string) string {
	t.Helper()

	path := filepath.Join(dir, "config.toml")
	content := fmt.Sprintf(`
[database]
driver = "sqlite3"
path = %q

[server]
host = "127.0.0.1"
port = %d
%s
`, filepath.Join(dir, "chinook.db"), port, extra)

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func freePort(t *testing.T) int {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to find a free port: %v", err)
	}
	defer ln.Close()
	return ln.Addr().(*net.TCPAddr).Port
}

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}

			runner := NewRunner(RunnerOpts{Config: config, Logger: logger, Output: output})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
		})

		t.Run("with nil options uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if runner.config == nil {
				t.Error("expected default config to be set")
			}
			if runner.logger == nil {
				t.Error("expected default logger to be set")
			}
			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
			if runner.logOutput != os.Stderr {
				t.Error("expected log output to default to os.Stderr")
			}
		})
	})

	t.Run("register", func(t *testing.T) {
		runner, _ := newTestRunner(t)

		names := []string{}
		for _, c := range runner.register() {
			names = append(names, c.Name)
		}
		if strings.Join(names, ",") != "serve,setup,export" {
			t.Errorf("unexpected commands %v", names)
		}
	})

	t.Run("loadConfig", func(t *testing.T) {
		t.Run("falls back when file is missing", func(t *testing.T) {
			runner, _ := newTestRunner(t)

			config, err := runner.loadConfig(filepath.Join(t.TempDir(), "missing.toml"))
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if config != runner.config {
				t.Error("expected runner config to be returned")
			}
		})

		t.Run("reports invalid file", func(t *testing.T) {
			runner, _ := newTestRunner(t)
			path := filepath.Join(t.TempDir(), "config.toml")
			os.WriteFile(path, []byte("[server\n"), 0644)

			if _, err := runner.loadConfig(path); !errors.Is(err, shared.ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	})
}

func TestSetup(t *testing.T) {
	ctx := context.Background()

	t.Run("config writes the template", func(t *testing.T) {
		runner, output := newTestRunner(t)
		path := filepath.Join(t.TempDir(), "config.toml")

		if err := run(ctx, runner, "setup", "config", "-o", path); err != nil {
			t.Fatalf("setup config failed: %v", err)
		}
		if _, err := shared.LoadConfig(path); err != nil {
			t.Errorf("expected a loadable config, got %v", err)
		}
		if !strings.Contains(output.String(), path) {
			t.Errorf("expected output to mention %s, got %q", path, output.String())
		}

		if err := run(ctx, runner, "setup", "config", "-o", path); !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument for existing file, got %v", err)
		}
		if err := run(ctx, runner, "setup", "config", "-o", path, "--force"); err != nil {
			t.Errorf("expected --force to overwrite, got %v", err)
		}
	})

	t.Run("database applies the schema", func(t *testing.T) {
		runner, _ := newTestRunner(t)
		dir := t.TempDir()
		path := writeConfig(t, dir, 8080, "")

		if err := run(ctx, runner, "setup", "database", "-c", path); err != nil {
			t.Fatalf("setup database failed: %v", err)
		}
		if err := run(ctx, runner, "setup", "database", "-c", path); err != nil {
			t.Fatalf("setup database is not idempotent: %v", err)
		}

		db, err := shared.NewDatabase(shared.DatabaseConfig{Driver: shared.DriverSQLite, Path: filepath.Join(dir, "chinook.db")})
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}
		defer db.Close()

		var genres int
		if err := db.QueryRow("SELECT COUNT(*) FROM Genre").Scan(&genres); err != nil {
			t.Fatalf("failed to count genres: %v", err)
		}
		if genres != 25 {
			t.Errorf("expected 25 genres, got %d", genres)
		}

		if err := run(ctx, runner, "setup", "rollback", "-c", path); err != nil {
			t.Fatalf("rollback failed: %v", err)
		}
		if err := db.QueryRow("SELECT COUNT(*) FROM Genre").Scan(&genres); err != nil {
			t.Fatalf("failed to count genres: %v", err)
		}
		if genres != 0 {
			t.Errorf("expected lookups removed by rollback, got %d", genres)
		}
	})

	t.Run("database refuses mysql", func(t *testing.T) {
		runner, _ := newTestRunner(t)
		path := filepath.Join(t.TempDir(), "config.toml")
		os.WriteFile(path, []byte(`
[database]
driver = "mysql"
host = "localhost"
name = "chinook"
user = "root"
password = "secret"
`), 0644)

		if err := run(ctx, runner, "setup", "database", "-c", path); !errors.Is(err, shared.ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("database creates a missing config", func(t *testing.T) {
		runner, _ := newTestRunner(t)
		dir := t.TempDir()
		path := filepath.Join(dir, "config.toml")

		wd, _ := os.Getwd()
		if err := os.Chdir(dir); err != nil {
			t.Fatalf("failed to chdir: %v", err)
		}
		defer os.Chdir(wd)

		if err := run(ctx, runner, "setup", "database", "-c", path); err != nil {
			t.Fatalf("setup database failed: %v", err)
		}
		if _, err := os.Stat(path); err != nil {
			t.Errorf("expected config to be created: %v", err)
		}
		if _, err := os.Stat(filepath.Join(dir, "chinook.db")); err != nil {
			t.Errorf("expected database at the template path: %v", err)
		}
	})
}

func TestServe(t *testing.T) {
	t.Run("rejects invalid config", func(t *testing.T) {
		runner, _ := newTestRunner(t)
		path := writeConfig(t, t.TempDir(), 8080, `prefix = "exam"`)

		if err := run(context.Background(), runner, "serve", "-c", path); !errors.Is(err, shared.ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("serves until cancelled", func(t *testing.T) {
		dir := t.TempDir()
		port := freePort(t)
		path := writeConfig(t, dir, port, `prefix = "/exam"`)

		setup, _ := newTestRunner(t)
		if err := run(context.Background(), setup, "setup", "database", "-c", path); err != nil {
			t.Fatalf("setup database failed: %v", err)
		}

		runner, _ := newTestRunner(t)
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- run(ctx, runner, "serve", "-c", path) }()

		base := fmt.Sprintf("http://127.0.0.1:%d", port)
		var resp *http.Response
		var err error
		for range 50 {
			resp, err = http.Get(base + "/healthz")
			if err == nil {
				break
			}
			time.Sleep(50 * time.Millisecond)
		}
		if err != nil {
			cancel()
			t.Fatalf("server never became ready: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Errorf("expected healthy server, got %d", resp.StatusCode)
		}

		resp, err = http.Get(base + "/exam/genres")
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Errorf("expected 200 for /exam/genres, got %d", resp.StatusCode)
		}
		if ct := resp.Header.Get("Content-Type"); ct != "application/json; charset=UTF-8" {
			t.Errorf("unexpected content type %q", ct)
		}

		cancel()
		select {
		case err := <-done:
			if err != nil {
				t.Errorf("expected clean shutdown, got %v", err)
			}
		case <-time.After(15 * time.Second):
			t.Fatal("server did not shut down")
		}
	})

	t.Run("writes daily log files", func(t *testing.T) {
		runner, _ := newTestRunner(t)
		dir := t.TempDir()

		closeLog, err := runner.configureLogging(shared.LoggingConfig{Level: "debug", Dir: dir})
		if err != nil {
			t.Fatalf("configureLogging failed: %v", err)
		}
		runner.logger.Error("failed to retrieve albums")
		closeLog()

		content, err := os.ReadFile(filepath.Join(dir, shared.LogFileName(time.Now())))
		if err != nil {
			t.Fatalf("failed to read log file: %v", err)
		}
		if !strings.Contains(string(content), "failed to retrieve albums") {
			t.Errorf("expected entry in log file, got %q", string(content))
		}
	})
}

func TestExport(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := writeConfig(t, dir, 8080, "")

	setup, _ := newTestRunner(t)
	if err := run(ctx, setup, "setup", "database", "-c", path); err != nil {
		t.Fatalf("setup database failed: %v", err)
	}

	db, err := shared.NewDatabase(shared.DatabaseConfig{Driver: shared.DriverSQLite, Path: filepath.Join(dir, "chinook.db")})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	tu.Seed(t, db)
	db.Close()

	t.Run("writes the playlist", func(t *testing.T) {
		runner, output := newTestRunner(t)
		out := filepath.Join(dir, "music.csv")

		if err := run(ctx, runner, "export", "playlist", "-c", path, "--id", "1", "-f", "csv", "-o", out); err != nil {
			t.Fatalf("export failed: %v", err)
		}

		content, err := os.ReadFile(out)
		if err != nil {
			t.Fatalf("failed to read export: %v", err)
		}
		if !strings.Contains(string(content), "Dream On") {
			t.Errorf("expected track in export, got %q", string(content))
		}
		if !strings.Contains(output.String(), `"Music" (2 tracks)`) {
			t.Errorf("unexpected output %q", output.String())
		}
	})

	t.Run("missing playlist", func(t *testing.T) {
		runner, _ := newTestRunner(t)

		err := run(ctx, runner, "export", "playlist", "-c", path, "--id", "9999")
		if !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("missing id", func(t *testing.T) {
		runner, _ := newTestRunner(t)

		err := run(ctx, runner, "export", "playlist", "-c", path)
		if !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})

	t.Run("unknown format", func(t *testing.T) {
		runner, _ := newTestRunner(t)

		err := run(ctx, runner, "export", "playlist", "-c", path, "--id", "1", "-f", "xml")
		if !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})
}
