// Package workload drives concurrent load against a treetable map.
package workload

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	mrand "math/rand/v2"
	"time"

	"github.com/oklog/ulid/v2"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/yndnr/treetable-go/internal/config"
	"github.com/yndnr/treetable-go/internal/telemetry/logger"
	"github.com/yndnr/treetable-go/pkg/treetable"
)

// Runner executes a concurrent workload against a map.
type Runner struct {
	cfg     config.WorkloadSection
	table   *treetable.Map[string, string]
	log     logger.Logger
	limiter *rate.Limiter
}

// Report summarizes a completed run.
type Report struct {
	RunID         string
	Workers       int
	KeysPerWorker int
	FillOps       int
	MixOps        int
	VerifiedKeys  int
	FinalSize     int
	Elapsed       time.Duration
}

// NewRunner creates a workload runner. The configuration must already
// be verified.
func NewRunner(cfg config.WorkloadSection, table *treetable.Map[string, string], log logger.Logger) *Runner {
	r := &Runner{
		cfg:   cfg,
		table: table,
		log:   log,
	}
	if cfg.RateLimit > 0 {
		burst := int(cfg.RateLimit)
		if burst < 1 {
			burst = 1
		}
		r.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}
	return r
}

// Run executes the fill, mix, and verify phases and returns a report.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	runID, err := newRunID()
	if err != nil {
		return nil, fmt.Errorf("generate run id: %w", err)
	}
	ctx = logger.WithRunID(logger.WithLogger(ctx, r.log), runID)
	log := logger.L(ctx)
	log.Info("workload starting",
		"workers", r.cfg.Workers,
		"keys_per_worker", r.cfg.KeysPerWorker,
		"read_ratio", r.cfg.ReadRatio,
		"rate_limit", r.cfg.RateLimit,
	)

	start := time.Now()
	report := &Report{
		RunID:         runID,
		Workers:       r.cfg.Workers,
		KeysPerWorker: r.cfg.KeysPerWorker,
	}

	if err := r.fill(ctx, runID); err != nil {
		return nil, fmt.Errorf("fill phase: %w", err)
	}
	report.FillOps = r.cfg.Workers * r.cfg.KeysPerWorker
	log.Info("fill phase done", "entries", r.table.Len(), "buckets", r.table.Capacity())

	if err := r.mix(ctx, runID); err != nil {
		return nil, fmt.Errorf("mix phase: %w", err)
	}
	report.MixOps = r.cfg.Workers * r.cfg.KeysPerWorker
	log.Info("mix phase done")

	verified, err := r.verify(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("verify phase: %w", err)
	}
	report.VerifiedKeys = verified
	report.FinalSize = r.table.Len()
	report.Elapsed = time.Since(start)

	log.Info("workload done",
		"verified_keys", report.VerifiedKeys,
		"final_size", report.FinalSize,
		"elapsed", report.Elapsed,
	)
	return report, nil
}

// fill inserts every worker's key range concurrently.
func (r *Runner) fill(ctx context.Context, runID string) error {
	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < r.cfg.Workers; w++ {
		g.Go(func() error {
			for i := 0; i < r.cfg.KeysPerWorker; i++ {
				if err := r.wait(ctx); err != nil {
					return err
				}
				key := workerKey(runID, w, i)
				if err := r.table.Set(key, deriveValue(key)); err != nil {
					return err
				}
			}
			return nil
		})
	}
	return g.Wait()
}

// mix issues reads and overwrites against each worker's own range,
// split by the configured read ratio.
func (r *Runner) mix(ctx context.Context, runID string) error {
	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < r.cfg.Workers; w++ {
		g.Go(func() error {
			rng := mrand.New(mrand.NewPCG(uint64(w), uint64(r.cfg.KeysPerWorker)))
			for i := 0; i < r.cfg.KeysPerWorker; i++ {
				if err := r.wait(ctx); err != nil {
					return err
				}
				key := workerKey(runID, w, rng.IntN(r.cfg.KeysPerWorker))
				if rng.Float64() < r.cfg.ReadRatio {
					if err := r.mixRead(key, i); err != nil {
						return err
					}
				} else if err := r.mixWrite(key, i); err != nil {
					return err
				}
			}
			return nil
		})
	}
	return g.Wait()
}

// mixRead alternates plain lookups with GetOrSet, which must behave as
// a lookup here since every key is already resident.
func (r *Runner) mixRead(key string, i int) error {
	want := deriveValue(key)

	var got string
	var err error
	if i%2 == 0 {
		got, err = r.table.Get(key)
	} else {
		var loaded bool
		got, loaded, err = r.table.GetOrSet(key, want)
		if err == nil && !loaded {
			return fmt.Errorf("read %q: key vanished", key)
		}
	}
	if err != nil {
		return fmt.Errorf("read %q: %w", key, err)
	}
	if got != want {
		return fmt.Errorf("read %q: corrupt value", key)
	}
	return nil
}

// mixWrite mostly overwrites in place; every third write removes the
// key with Pop and reinserts it, exercising the delete path without
// disturbing the final key set.
func (r *Runner) mixWrite(key string, i int) error {
	want := deriveValue(key)

	if i%3 == 0 {
		got, err := r.table.Pop(key)
		if err != nil {
			return fmt.Errorf("pop %q: %w", key, err)
		}
		if got != want {
			return fmt.Errorf("pop %q: corrupt value", key)
		}
	}
	return r.table.Set(key, want)
}

// verify reads back every key and checks the derived value.
func (r *Runner) verify(ctx context.Context, runID string) (int, error) {
	want := r.cfg.Workers * r.cfg.KeysPerWorker
	if got := r.table.Len(); got != want {
		return 0, fmt.Errorf("size is %d, want %d", got, want)
	}
	verified := 0
	for w := 0; w < r.cfg.Workers; w++ {
		for i := 0; i < r.cfg.KeysPerWorker; i++ {
			if err := ctx.Err(); err != nil {
				return verified, err
			}
			key := workerKey(runID, w, i)
			got, err := r.table.Get(key)
			if err != nil {
				return verified, fmt.Errorf("verify %q: %w", key, err)
			}
			if got != deriveValue(key) {
				return verified, fmt.Errorf("verify %q: corrupt value", key)
			}
			verified++
		}
	}
	return verified, nil
}

// wait blocks on the shared rate limiter, if one is configured.
func (r *Runner) wait(ctx context.Context) error {
	if r.limiter == nil {
		return ctx.Err()
	}
	return r.limiter.Wait(ctx)
}

// newRunID generates a ULID identifying one workload run.
func newRunID() (string, error) {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(time.Now()), entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// workerKey builds the i-th key owned by worker w. Ranges are
// disjoint across workers within a run.
func workerKey(runID string, w, i int) string {
	return fmt.Sprintf("%s/w%03d/k%06d", runID, w, i)
}

// deriveValue computes the expected value for a key. Recomputable
// from the key alone, so verification needs no side state.
func deriveValue(key string) string {
	sum := blake2b.Sum256([]byte(key))
	return hex.EncodeToString(sum[:16])
}
