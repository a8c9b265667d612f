// Package command provides CLI command definitions for treetable.
package command

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/treetable-go/internal/config"
	"github.com/yndnr/treetable-go/internal/infra/buildinfo"
	"github.com/yndnr/treetable-go/internal/infra/confloader"
	"github.com/yndnr/treetable-go/internal/telemetry/logger"
)

// App creates the CLI application.
func App() *cli.App {
	info := buildinfo.Get()

	return &cli.App{
		Name:    "treetable",
		Usage:   "Concurrent tree-bucketed map workbench",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", info.Version, info.Commit, info.BuildTime),
		Flags:   globalFlags(),
		Commands: []*cli.Command{
			RunCommand(),
			StatsCommand(),
		},
	}
}

// globalFlags returns the global CLI flags.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to configuration file",
			EnvVars: []string{"TREETABLE_CONFIG"},
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "Log level: debug, info, warn, error",
		},
		&cli.StringFlag{
			Name:  "log-format",
			Usage: "Log format: json, text",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output format: table, json, yaml",
			Value:   "table",
		},
	}
}

// loadConfig resolves the configuration from defaults, an optional
// config file, the environment, and global flags.
func loadConfig(c *cli.Context) (*config.Spec, error) {
	cfg := config.Default()

	opts := []confloader.Option{}
	if path := c.String("config"); path != "" {
		opts = append(opts, confloader.WithConfigFile(path))
	}

	if err := confloader.NewLoader(opts...).Load(cfg); err != nil {
		return nil, err
	}

	applyFlagOverrides(c, cfg)

	if err := config.Verify(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// applyFlagOverrides copies explicitly set flags onto the config.
// Command-scoped flags that do not exist in this context are skipped.
func applyFlagOverrides(c *cli.Context, cfg *config.Spec) {
	if c.IsSet("log-level") {
		cfg.Log.Level = c.String("log-level")
	}
	if c.IsSet("log-format") {
		cfg.Log.Format = c.String("log-format")
	}
	if c.IsSet("capacity") {
		cfg.Table.InitialCapacity = c.Int("capacity")
	}
	if c.IsSet("workers") {
		cfg.Workload.Workers = c.Int("workers")
	}
	if c.IsSet("keys") {
		cfg.Workload.KeysPerWorker = c.Int("keys")
	}
	if c.IsSet("read-ratio") {
		cfg.Workload.ReadRatio = c.Float64("read-ratio")
	}
	if c.IsSet("rate-limit") {
		cfg.Workload.RateLimit = c.Float64("rate-limit")
	}
	if c.IsSet("metrics") {
		cfg.Metrics.Enabled = c.Bool("metrics")
	}
	if c.IsSet("metrics-addr") {
		cfg.Metrics.Addr = c.String("metrics-addr")
		cfg.Metrics.Enabled = true
	}
}

// initLogger builds the application logger and installs it as the
// process default.
func initLogger(cfg *config.Spec) logger.Logger {
	log := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: os.Stderr,
	})
	logger.SetDefault(log)
	return log
}

// PrintError prints an error message to stderr.
func PrintError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
}
