// Package command provides CLI command definitions for treetable.
package command

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/treetable-go/internal/cli/output"
	"github.com/yndnr/treetable-go/internal/config"
	"github.com/yndnr/treetable-go/internal/infra/confloader"
	"github.com/yndnr/treetable-go/internal/infra/shutdown"
	"github.com/yndnr/treetable-go/internal/telemetry/logger"
	"github.com/yndnr/treetable-go/internal/telemetry/metric"
	"github.com/yndnr/treetable-go/internal/workload"
	"github.com/yndnr/treetable-go/pkg/fingerprint"
	"github.com/yndnr/treetable-go/pkg/treetable"
)

// RunCommand returns the run command.
func RunCommand() *cli.Command {
	return &cli.Command{
		Name:   "run",
		Usage:  "Execute a concurrent workload and report the result",
		Flags:  workloadFlags(),
		Action: runAction,
	}
}

// workloadFlags returns flags shared by workload-driving commands.
func workloadFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:  "capacity",
			Usage: "Initial bucket count of the table",
		},
		&cli.IntFlag{
			Name:    "workers",
			Aliases: []string{"w"},
			Usage:   "Number of concurrent workers",
		},
		&cli.IntFlag{
			Name:    "keys",
			Aliases: []string{"k"},
			Usage:   "Keys per worker",
		},
		&cli.Float64Flag{
			Name:  "read-ratio",
			Usage: "Fraction of mixed-phase operations that are reads",
		},
		&cli.Float64Flag{
			Name:  "rate-limit",
			Usage: "Total operations per second (0 = unlimited)",
		},
		&cli.BoolFlag{
			Name:  "metrics",
			Usage: "Serve Prometheus metrics during the run",
		},
		&cli.StringFlag{
			Name:  "metrics-addr",
			Usage: "Metrics listen address (implies --metrics)",
		},
	}
}

func runAction(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	log := initLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sh := shutdown.NewHandler(10 * time.Second)

	table, err := treetable.New[string, string](cfg.Table.InitialCapacity,
		treetable.WithHasher(fingerprint.String()))
	if err != nil {
		return err
	}

	if cfg.Metrics.Enabled {
		if err := serveMetrics(cfg.Metrics.Addr, table, log, sh); err != nil {
			return err
		}
	}
	if path := c.String("config"); path != "" {
		if err := watchLogLevel(path, log, sh); err != nil {
			// A broken watcher should not abort the run.
			log.Warn("config watcher disabled", "error", err)
		}
	}

	report, err := workload.NewRunner(cfg.Workload, table, log).Run(ctx)
	if err != nil {
		sh.Trigger()
		return err
	}

	if err := sh.Trigger(); err != nil {
		log.Error("shutdown error", "error", err)
	}

	format := output.Format(c.String("output"))
	formatter, err := output.NewFormatter(format)
	if err != nil {
		return err
	}
	if format == output.FormatTable || format == "" {
		return formatter.Format(c.App.Writer, reportTable(report))
	}
	return formatter.Format(c.App.Writer, reportView(report))
}

// serveMetrics starts the Prometheus endpoint and registers its
// shutdown hook.
func serveMetrics(addr string, table *treetable.Map[string, string], log logger.Logger, sh *shutdown.Handler) error {
	reg := metric.NewRegistry()
	table.Observe(reg)

	mux := http.NewServeMux()
	mux.Handle("/metrics", reg.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}

	go func() {
		log.Info("metrics listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("metrics server error", "error", err)
		}
	}()

	sh.OnShutdown(func(ctx context.Context) error {
		log.Info("shutting down metrics server")
		return srv.Shutdown(ctx)
	})
	return nil
}

// watchLogLevel reapplies log.level from the config file on change.
func watchLogLevel(path string, log logger.Logger, sh *shutdown.Handler) error {
	watcher, err := confloader.NewWatcher(confloader.WithWatcherLogger(log))
	if err != nil {
		return err
	}
	if err := watcher.Watch(path); err != nil {
		watcher.Stop()
		return err
	}

	watcher.OnChange(func(changed string) {
		loader := confloader.NewLoader(confloader.WithConfigFile(changed))
		cfg := config.Default()
		if err := loader.Load(cfg); err != nil {
			log.Warn("config reload failed", "error", err)
			return
		}
		logger.SetLevel(cfg.Log.Level)
		log.Info("log level updated", "level", cfg.Log.Level)
	})
	watcher.StartAsync()

	sh.OnShutdown(func(context.Context) error {
		return watcher.Stop()
	})
	return nil
}

// reportRow is the printable view of a workload report.
type reportRow struct {
	RunID         string  `json:"run_id" yaml:"run_id"`
	Workers       int     `json:"workers" yaml:"workers"`
	KeysPerWorker int     `json:"keys_per_worker" yaml:"keys_per_worker"`
	FillOps       int     `json:"fill_ops" yaml:"fill_ops"`
	MixOps        int     `json:"mix_ops" yaml:"mix_ops"`
	VerifiedKeys  int     `json:"verified_keys" yaml:"verified_keys"`
	FinalSize     int     `json:"final_size" yaml:"final_size"`
	ElapsedSecs   float64 `json:"elapsed_secs" yaml:"elapsed_secs"`
}

func reportTable(r *workload.Report) *output.Table {
	t := &output.Table{Headers: []string{"FIELD", "VALUE"}}
	t.AddRow("run_id", r.RunID)
	t.AddRow("workers", r.Workers)
	t.AddRow("keys_per_worker", r.KeysPerWorker)
	t.AddRow("fill_ops", r.FillOps)
	t.AddRow("mix_ops", r.MixOps)
	t.AddRow("verified_keys", r.VerifiedKeys)
	t.AddRow("final_size", r.FinalSize)
	t.AddRow("elapsed", r.Elapsed.Round(time.Millisecond))
	return t
}

func reportView(r *workload.Report) reportRow {
	return reportRow{
		RunID:         r.RunID,
		Workers:       r.Workers,
		KeysPerWorker: r.KeysPerWorker,
		FillOps:       r.FillOps,
		MixOps:        r.MixOps,
		VerifiedKeys:  r.VerifiedKeys,
		FinalSize:     r.FinalSize,
		ElapsedSecs:   r.Elapsed.Seconds(),
	}
}
