// Package sensor turns engine results into Home Assistant entities: it
// announces each metric over MQTT discovery, publishes state and
// attribute payloads and keeps the entity registry in sync.
package sensor

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"

	"codeberg.org/mutker/comfortd/internal/comfort"
	"codeberg.org/mutker/comfortd/internal/errors"
	"codeberg.org/mutker/comfortd/internal/logger"
	"codeberg.org/mutker/comfortd/internal/mqtt"
	"codeberg.org/mutker/comfortd/internal/registry"
	"codeberg.org/mutker/comfortd/internal/telemetry"
)

// Options describes one virtual comfort device.
type Options struct {
	Name            string
	DeviceID        string
	StatePrefix     string
	DiscoveryPrefix string
	CustomIcons     bool
	Poll            bool
	ScanInterval    time.Duration
	Metrics         []comfort.Metric
}

// Device owns the engine and one sensor per enabled metric. In push mode
// it republishes whenever the engine signals a fresh reading pair; in
// poll mode it republishes on a fixed schedule instead.
type Device struct {
	opts      Options
	engine    *comfort.Engine
	conn      mqtt.Conn
	collector telemetry.Collector
	sensors   []*Sensor
	scheduler *gocron.Scheduler
}

func NewDevice(opts Options, engine *comfort.Engine, conn mqtt.Conn, collector telemetry.Collector) (*Device, error) {
	errFactory := errors.New()

	if opts.DeviceID == "" || opts.StatePrefix == "" || opts.DiscoveryPrefix == "" {
		return nil, errFactory.New(errors.ErrInitDevice)
	}

	metrics := opts.Metrics
	if len(metrics) == 0 {
		metrics = comfort.All()
	}

	sensors := make([]*Sensor, 0, len(metrics))
	for _, m := range metrics {
		s, err := newSensor(opts.DeviceID, opts.StatePrefix, m, opts.CustomIcons)
		if err != nil {
			return nil, errFactory.Wrap(errors.ErrInitDevice, err)
		}
		sensors = append(sensors, s)
	}

	return &Device{
		opts:      opts,
		engine:    engine,
		conn:      conn,
		collector: collector,
		sensors:   sensors,
	}, nil
}

// Engine returns the device's compute engine.
func (d *Device) Engine() *comfort.Engine {
	return d.engine
}

// ID returns the device identifier used in topics and entity IDs.
func (d *Device) ID() string {
	return d.opts.DeviceID
}

// Name returns the human readable device name.
func (d *Device) Name() string {
	return d.opts.Name
}

// Sensors returns the enabled sensors in catalog order.
func (d *Device) Sensors() []*Sensor {
	return d.sensors
}

// Register makes every enabled entity known: retained discovery configs
// first, then the registry rows. Legacy unique IDs are migrated before
// the rows are written so renamed metrics keep their entity history.
func (d *Device) Register(reg *registry.Registry) error {
	errFactory := errors.New()

	if reg != nil {
		migrated, err := reg.MigrateLegacyIDs(d.opts.DeviceID)
		if err != nil {
			return errFactory.Wrap(errors.ErrInitDevice, err)
		}
		if migrated > 0 {
			logger.Info().
				Str("device", d.opts.DeviceID).
				Int("entities", migrated).
				Msg("Migrated legacy entity IDs")
		}
	}

	for _, s := range d.sensors {
		payload, err := s.discoveryConfig(d.opts.Name, d.opts.DeviceID)
		if err != nil {
			return errFactory.Wrap(errors.ErrInitDevice, err)
		}
		if err := d.conn.Publish(discoveryTopic(d.opts.DiscoveryPrefix, s.uniqueID), 0, true, payload); err != nil {
			return errFactory.Wrap(errors.ErrInitDevice, err)
		}
		if reg != nil {
			if err := reg.EnsureEntity(d.opts.DeviceID, s.metric); err != nil {
				return errFactory.Wrap(errors.ErrInitDevice, err)
			}
		}
	}

	return nil
}

// Run publishes until the context is cancelled. The first publish happens
// immediately so every entity shows at least "unknown".
func (d *Device) Run(ctx context.Context) {
	d.publishAll(ctx)

	if d.opts.Poll {
		d.runPolled(ctx)
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-d.engine.Updates():
			d.publishAll(ctx)
		}
	}
}

// runPolled republishes on the scan interval and ignores engine
// notifications; readings still invalidate the caches, the next tick
// picks them up.
func (d *Device) runPolled(ctx context.Context) {
	d.scheduler = gocron.NewScheduler(time.UTC)
	_, err := d.scheduler.Every(d.opts.ScanInterval).Do(func() {
		d.publishAll(ctx)
	})
	if err != nil {
		logger.ErrorWithCode(errors.New().Wrap(errors.ErrInitDevice, err)).
			Str("device", d.opts.DeviceID).
			Msg("Failed to schedule polling")
		return
	}
	d.scheduler.StartAsync()

	<-ctx.Done()
	d.scheduler.Stop()
}

func (d *Device) publishAll(ctx context.Context) {
	for _, s := range d.sensors {
		if err := s.publish(d.conn, d.engine); err != nil {
			logger.Error().Err(err).
				Str("device", d.opts.DeviceID).
				Str("metric", string(s.metric)).
				Msg("Failed to publish sensor state")
			continue
		}
		d.record(ctx, s)
	}
}

func (d *Device) record(ctx context.Context, s *Sensor) {
	if d.collector == nil {
		return
	}

	result, err := d.engine.Get(s.metric)
	if err != nil {
		return
	}

	inputs := d.engine.StateAttributes()
	snapshot := &telemetry.Snapshot{
		Timestamp:   time.Now(),
		DeviceID:    d.opts.DeviceID,
		Metric:      s.metric,
		Value:       result.Value,
		Perception:  result.Perception,
		Temperature: inputs[comfort.AttrTemperature],
		Humidity:    inputs[comfort.AttrHumidity],
	}
	if err := d.collector.Record(ctx, snapshot); err != nil {
		logger.Error().Err(err).
			Str("device", d.opts.DeviceID).
			Str("metric", string(s.metric)).
			Msg("Failed to record telemetry")
	}
}
