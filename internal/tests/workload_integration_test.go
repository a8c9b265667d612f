// Package tests provides integration tests for treetable.
//
// This integration test wires the full stack together and verifies:
//   - Config loading from file and environment
//   - Workload execution against an observed map
//   - Prometheus metrics exposure over HTTP
package tests

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yndnr/treetable-go/internal/config"
	"github.com/yndnr/treetable-go/internal/infra/confloader"
	"github.com/yndnr/treetable-go/internal/telemetry/logger"
	"github.com/yndnr/treetable-go/internal/telemetry/metric"
	"github.com/yndnr/treetable-go/internal/workload"
	"github.com/yndnr/treetable-go/pkg/fingerprint"
	"github.com/yndnr/treetable-go/pkg/treetable"
)

func TestWorkload_FullStack_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	// Config comes from a file with an environment override on top.
	dir := t.TempDir()
	path := filepath.Join(dir, "treetable.yaml")
	content := "table:\n  initial_capacity: 4\nworkload:\n  workers: 4\n  keys_per_worker: 200\n  read_ratio: 0.8\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("TREETABLE_WORKLOAD__READ_RATIO", "0.5")

	cfg := config.Default()
	loader := confloader.NewLoader(confloader.WithConfigFile(path))
	if err := loader.Load(cfg); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if err := config.Verify(cfg); err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if cfg.Workload.ReadRatio != 0.5 {
		t.Errorf("ReadRatio = %v, want 0.5 from environment", cfg.Workload.ReadRatio)
	}

	log := logger.New(logger.Config{Level: "error", Format: "text", Output: io.Discard})

	table, err := treetable.New[string, string](cfg.Table.InitialCapacity,
		treetable.WithHasher(fingerprint.String()))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	reg := metric.NewRegistry()
	table.Observe(reg)

	report, err := workload.NewRunner(cfg.Workload, table, log).Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	want := cfg.Workload.Workers * cfg.Workload.KeysPerWorker
	if report.FinalSize != want {
		t.Errorf("FinalSize = %d, want %d", report.FinalSize, want)
	}
	if report.VerifiedKeys != want {
		t.Errorf("VerifiedKeys = %d, want %d", report.VerifiedKeys, want)
	}
	if table.Capacity() <= cfg.Table.InitialCapacity {
		t.Errorf("Capacity = %d, should have grown past %d", table.Capacity(), cfg.Table.InitialCapacity)
	}

	// Scrape the metrics endpoint the way Prometheus would.
	srv := httptest.NewServer(reg.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	if err != nil {
		t.Fatalf("scrape failed: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	text := string(body)

	for _, metricName := range []string{"treetable_ops_total", "treetable_entries", "treetable_buckets", "treetable_growths_total"} {
		if !strings.Contains(text, metricName) {
			t.Errorf("Scrape missing %s:\n%.400s", metricName, text)
		}
	}
}
