package telemetry_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"codeberg.org/mutker/comfortd/internal/comfort"
	"codeberg.org/mutker/comfortd/internal/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisabledCollectorIsNoop(t *testing.T) {
	collector, err := telemetry.NewService(telemetry.Config{Enabled: false})
	require.NoError(t, err)

	err = collector.Record(context.Background(), &telemetry.Snapshot{
		Timestamp: time.Now(),
		DeviceID:  "livingroom",
		Metric:    comfort.MetricDewPoint,
		Value:     13.88,
	})
	assert.NoError(t, err)
	assert.NoError(t, collector.Close())
}

func TestEnabledCollectorRequiresDBPath(t *testing.T) {
	_, err := telemetry.NewService(telemetry.Config{Enabled: true})
	require.Error(t, err)
}

func TestRecordAndClose(t *testing.T) {
	collector, err := telemetry.NewService(telemetry.Config{
		Enabled: true,
		DBPath:  filepath.Join(t.TempDir(), "telemetry.db"),
	})
	require.NoError(t, err)

	now := time.Now()
	snapshot := &telemetry.Snapshot{
		Timestamp:   now,
		DeviceID:    "livingroom",
		Metric:      comfort.MetricFrostRisk,
		Perception:  "no_risk",
		Temperature: 25,
		Humidity:    50,
	}
	require.NoError(t, collector.Record(context.Background(), snapshot))

	// Same key again upserts instead of failing.
	require.NoError(t, collector.Record(context.Background(), snapshot))

	require.NoError(t, collector.Close())
}

func TestRecordNilSnapshot(t *testing.T) {
	collector, err := telemetry.NewService(telemetry.Config{
		Enabled: true,
		DBPath:  filepath.Join(t.TempDir(), "telemetry.db"),
	})
	require.NoError(t, err)
	defer collector.Close()

	assert.Error(t, collector.Record(context.Background(), nil))
}

func TestRecordHonorsContext(t *testing.T) {
	collector, err := telemetry.NewService(telemetry.Config{
		Enabled: true,
		DBPath:  filepath.Join(t.TempDir(), "telemetry.db"),
	})
	require.NoError(t, err)
	defer collector.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = collector.Record(ctx, &telemetry.Snapshot{Timestamp: time.Now()})
	assert.Error(t, err)
}
