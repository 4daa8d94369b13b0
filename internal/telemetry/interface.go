package telemetry

import (
	"context"
	"time"

	"codeberg.org/mutker/comfortd/internal/comfort"
)

// Collector defines the core domain interface
type Collector interface {
	Record(ctx context.Context, snapshot *Snapshot) error
	Close() error
}

// Snapshot is one published metric value with the input pair it was
// derived from.
type Snapshot struct {
	Timestamp   time.Time
	DeviceID    string
	Metric      comfort.Metric
	Value       float64
	Perception  string
	Temperature float64
	Humidity    float64
}
