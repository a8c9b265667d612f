// Package config defines the treetable CLI configuration structure.
package config

// Spec is the root configuration for the treetable tool.
type Spec struct {
	Table    TableSection    `koanf:"table"`
	Workload WorkloadSection `koanf:"workload"`
	Metrics  MetricsSection  `koanf:"metrics"`
	Log      LogSection      `koanf:"log"`
}

// TableSection configures the table under test.
type TableSection struct {
	// InitialCapacity is the starting bucket count. Must be positive;
	// the table grows on its own from there.
	InitialCapacity int `koanf:"initial_capacity"`
}

// WorkloadSection configures the concurrent workload driver.
type WorkloadSection struct {
	// Workers is the number of concurrent goroutines.
	Workers int `koanf:"workers"`

	// KeysPerWorker is how many disjoint keys each worker owns.
	KeysPerWorker int `koanf:"keys_per_worker"`

	// ReadRatio is the fraction of post-fill operations that are
	// lookups, in [0, 1].
	ReadRatio float64 `koanf:"read_ratio"`

	// RateLimit caps total operations per second across all workers.
	// Zero means unlimited.
	RateLimit float64 `koanf:"rate_limit"`
}

// MetricsSection configures the Prometheus endpoint.
type MetricsSection struct {
	Enabled bool   `koanf:"enabled"`
	Addr    string `koanf:"addr"`
}

// LogSection configures logging.
type LogSection struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}
