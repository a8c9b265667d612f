package command

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestApp(t *testing.T) {
	app := App()
	if app == nil {
		t.Fatal("App() returned nil")
	}

	if app.Name != "treetable" {
		t.Errorf("Name = %q, want %q", app.Name, "treetable")
	}
	if app.Usage == "" {
		t.Error("Usage should not be empty")
	}

	commandNames := make(map[string]bool)
	for _, cmd := range app.Commands {
		commandNames[cmd.Name] = true
	}
	for _, name := range []string{"run", "stats"} {
		if !commandNames[name] {
			t.Errorf("missing required command: %s", name)
		}
	}
}

func TestApp_GlobalFlags(t *testing.T) {
	app := App()

	flagNames := make(map[string]bool)
	for _, flag := range app.Flags {
		flagNames[flag.Names()[0]] = true
	}
	for _, name := range []string{"config", "log-level", "log-format", "output"} {
		if !flagNames[name] {
			t.Errorf("missing required flag: %s", name)
		}
	}
}

func TestRun_SmallWorkload(t *testing.T) {
	var buf bytes.Buffer
	app := App()
	app.Writer = &buf

	err := app.Run([]string{
		"treetable", "--log-level", "error", "--output", "json",
		"run", "--workers", "2", "--keys", "25",
	})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	var report struct {
		FinalSize    int `json:"final_size"`
		VerifiedKeys int `json:"verified_keys"`
	}
	if err := json.Unmarshal(buf.Bytes(), &report); err != nil {
		t.Fatalf("Output is not JSON: %v\n%s", err, buf.String())
	}
	if report.FinalSize != 50 {
		t.Errorf("final_size = %d, want 50", report.FinalSize)
	}
	if report.VerifiedKeys != 50 {
		t.Errorf("verified_keys = %d, want 50", report.VerifiedKeys)
	}
}

func TestRun_InvalidFlags(t *testing.T) {
	app := App()
	app.Writer = &bytes.Buffer{}

	err := app.Run([]string{"treetable", "run", "--workers", "0"})
	if err == nil {
		t.Error("Expected error for zero workers")
	}
}

func TestStats_TableOutput(t *testing.T) {
	var buf bytes.Buffer
	app := App()
	app.Writer = &buf

	err := app.Run([]string{
		"treetable", "--log-level", "error",
		"stats", "--capacity", "4", "--entries", "100",
	})
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "BUCKET") {
		t.Errorf("Missing header:\n%s", out)
	}
	// 100 entries in 4 buckets doubles the table well past 100 buckets.
	lines := strings.Count(strings.TrimRight(out, "\n"), "\n")
	if lines < 100 {
		t.Errorf("Got %d bucket rows, want at least 100", lines)
	}
}

func TestStats_YAMLOutput(t *testing.T) {
	var buf bytes.Buffer
	app := App()
	app.Writer = &buf

	err := app.Run([]string{
		"treetable", "--log-level", "error", "--output", "yaml",
		"stats", "--entries", "10",
	})
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if !strings.Contains(buf.String(), "entries: 10") {
		t.Errorf("Missing summary:\n%s", buf.String())
	}
}

func TestLoadConfig_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "treetable.yaml")
	content := "table:\n  initial_capacity: 8\nworkload:\n  workers: 3\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	app := App()
	app.Writer = &buf

	err := app.Run([]string{
		"treetable", "--config", path, "--log-level", "error", "--output", "json",
		"run", "--keys", "10",
	})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	var report struct {
		Workers   int `json:"workers"`
		FinalSize int `json:"final_size"`
	}
	if err := json.Unmarshal(buf.Bytes(), &report); err != nil {
		t.Fatalf("Output is not JSON: %v\n%s", err, buf.String())
	}
	if report.Workers != 3 {
		t.Errorf("workers = %d, want 3 from config file", report.Workers)
	}
	if report.FinalSize != 30 {
		t.Errorf("final_size = %d, want 30", report.FinalSize)
	}
}
