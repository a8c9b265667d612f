// Package config defines the treetable CLI configuration structure.
package config

// Default configuration values.
const (
	DefaultInitialCapacity = 16

	DefaultWorkers       = 8
	DefaultKeysPerWorker = 10000
	DefaultReadRatio     = 0.9

	DefaultMetricsAddr = "127.0.0.1:9184"

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// Default returns the default configuration.
func Default() *Spec {
	return &Spec{
		Table: TableSection{
			InitialCapacity: DefaultInitialCapacity,
		},
		Workload: WorkloadSection{
			Workers:       DefaultWorkers,
			KeysPerWorker: DefaultKeysPerWorker,
			ReadRatio:     DefaultReadRatio,
		},
		Metrics: MetricsSection{
			Enabled: false,
			Addr:    DefaultMetricsAddr,
		},
		Log: LogSection{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}
