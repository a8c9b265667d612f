// Package command provides CLI command definitions for treetable.
package command

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/treetable-go/internal/cli/output"
	"github.com/yndnr/treetable-go/pkg/fingerprint"
	"github.com/yndnr/treetable-go/pkg/treetable"
)

// StatsCommand returns the stats command.
func StatsCommand() *cli.Command {
	return &cli.Command{
		Name:  "stats",
		Usage: "Fill a table and print the per-bucket distribution",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "capacity",
				Usage: "Initial bucket count of the table",
			},
			&cli.IntFlag{
				Name:    "entries",
				Aliases: []string{"n"},
				Usage:   "Number of entries to insert",
				Value:   1000,
			},
		},
		Action: statsAction,
	}
}

func statsAction(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	initLogger(cfg)

	entries := c.Int("entries")
	if entries < 0 {
		return fmt.Errorf("entries must not be negative, got %d", entries)
	}

	table, err := treetable.New[string, string](cfg.Table.InitialCapacity,
		treetable.WithHasher(fingerprint.String()))
	if err != nil {
		return err
	}

	for i := 0; i < entries; i++ {
		key := fmt.Sprintf("k%08d", i)
		if err := table.Set(key, key); err != nil {
			return err
		}
	}

	format := output.Format(c.String("output"))
	formatter, err := output.NewFormatter(format)
	if err != nil {
		return err
	}

	stats := table.Stats()
	if format == output.FormatTable || format == "" {
		return formatter.Format(c.App.Writer, statsTable(stats))
	}
	return formatter.Format(c.App.Writer, statsView(table, stats))
}

func statsTable(stats []treetable.BucketStats) *output.Table {
	t := &output.Table{Headers: []string{"BUCKET", "ENTRIES", "DEPTH"}}
	for _, s := range stats {
		t.AddRow(s.Index, s.Len, s.Depth)
	}
	return t
}

// bucketRow is the printable view of one bucket.
type bucketRow struct {
	Bucket  int `json:"bucket" yaml:"bucket"`
	Entries int `json:"entries" yaml:"entries"`
	Depth   int `json:"depth" yaml:"depth"`
}

// statsSummary is the printable view of a table's shape.
type statsSummary struct {
	Entries int         `json:"entries" yaml:"entries"`
	Buckets int         `json:"buckets" yaml:"buckets"`
	Detail  []bucketRow `json:"detail" yaml:"detail"`
}

func statsView(table *treetable.Map[string, string], stats []treetable.BucketStats) statsSummary {
	summary := statsSummary{
		Entries: table.Len(),
		Buckets: table.Capacity(),
		Detail:  make([]bucketRow, 0, len(stats)),
	}
	for _, s := range stats {
		summary.Detail = append(summary.Detail, bucketRow{Bucket: s.Index, Entries: s.Len, Depth: s.Depth})
	}
	return summary
}
