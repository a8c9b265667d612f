// Package config defines the treetable CLI configuration structure.
package config

import "errors"

// Verify validates the configuration.
func Verify(cfg *Spec) error {
	if cfg.Table.InitialCapacity <= 0 {
		return errors.New("table.initial_capacity must be positive")
	}
	if err := verifyWorkload(&cfg.Workload); err != nil {
		return err
	}
	if cfg.Metrics.Enabled && cfg.Metrics.Addr == "" {
		return errors.New("metrics.addr is required when metrics are enabled")
	}
	return nil
}

func verifyWorkload(cfg *WorkloadSection) error {
	if cfg.Workers < 1 {
		return errors.New("workload.workers must be at least 1")
	}
	if cfg.KeysPerWorker < 1 {
		return errors.New("workload.keys_per_worker must be at least 1")
	}
	if cfg.ReadRatio < 0 || cfg.ReadRatio > 1 {
		return errors.New("workload.read_ratio must be in [0, 1]")
	}
	if cfg.RateLimit < 0 {
		return errors.New("workload.rate_limit must not be negative")
	}
	return nil
}
