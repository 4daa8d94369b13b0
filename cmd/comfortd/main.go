package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"codeberg.org/mutker/comfortd/internal/api"
	"codeberg.org/mutker/comfortd/internal/comfort"
	"codeberg.org/mutker/comfortd/internal/config"
	"codeberg.org/mutker/comfortd/internal/errors"
	"codeberg.org/mutker/comfortd/internal/logger"
	"codeberg.org/mutker/comfortd/internal/mqtt"
	"codeberg.org/mutker/comfortd/internal/registry"
	"codeberg.org/mutker/comfortd/internal/sensor"
	"codeberg.org/mutker/comfortd/internal/telemetry"
)

var cfg *config.Config

func init() {
	var err error
	cfg, err = config.Load()
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.LogLevel, logger.IsService()); err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	logger.Debug().Msg("Config loaded")
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go handleSignals(cancel)

	if err := run(ctx); err != nil {
		var domainErr errors.Error
		if errors.As(err, &domainErr) {
			logger.FatalWithCode(domainErr).Send()
		} else {
			logger.Fatal().Err(err).Send()
		}
	}
}

func run(ctx context.Context) error {
	errFactory := errors.New()

	reg, err := registry.New(registry.Config{DBPath: cfg.RegistryDB})
	if err != nil {
		return errFactory.Wrap(errors.ErrInitRegistry, err)
	}
	defer reg.Close()

	collector, err := telemetry.NewService(telemetry.Config{
		Enabled: cfg.Telemetry,
		DBPath:  cfg.TelemetryDB,
	})
	if err != nil {
		return errFactory.Wrap(errors.ErrInitTelemetry, err)
	}
	defer collector.Close()

	conn, err := mqtt.Connect(mqtt.Options{
		Broker:   cfg.MQTT.Broker,
		ClientID: cfg.MQTT.ClientID,
		Username: cfg.MQTT.Username,
		Password: cfg.MQTT.Password,
	})
	if err != nil {
		return errFactory.Wrap(errors.ErrInitIngest, err)
	}
	defer conn.Close()

	var wg sync.WaitGroup
	devices := make([]*sensor.Device, 0, len(cfg.Devices))
	for _, dc := range cfg.Devices {
		dev, err := startDevice(ctx, &wg, dc, conn, reg, collector)
		if err != nil {
			return err
		}
		devices = append(devices, dev)
	}
	logger.Info().Int("devices", len(devices)).Msg("All devices started")

	if cfg.API.Enabled {
		srv := api.NewServer(cfg.API.Listen, devices)
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := srv.Start(); err != nil {
				logger.Error().Err(err).Msg("API server stopped")
			}
		}()
		defer func() {
			if err := srv.Shutdown(); err != nil {
				logger.Error().Err(err).Msg("API server shutdown failed")
			}
		}()
		logger.Info().Str("listen", cfg.API.Listen).Msg("API server started")
	}

	<-ctx.Done()
	logger.Info().Msg("Shutting down...")
	wg.Wait()

	return nil
}

func startDevice(
	ctx context.Context,
	wg *sync.WaitGroup,
	dc config.Device,
	conn mqtt.Conn,
	reg *registry.Registry,
	collector telemetry.Collector,
) (*sensor.Device, error) {
	metrics, err := dc.EnabledMetrics()
	if err != nil {
		return nil, err
	}

	engine := comfort.NewEngine()
	dev, err := sensor.NewDevice(sensor.Options{
		Name:            dc.Name,
		DeviceID:        dc.UniqueID,
		StatePrefix:     cfg.MQTT.StatePrefix,
		DiscoveryPrefix: cfg.MQTT.DiscoveryPrefix,
		CustomIcons:     dc.CustomIcons,
		Poll:            dc.Poll,
		ScanInterval:    dc.Interval(),
		Metrics:         metrics,
	}, engine, conn, collector)
	if err != nil {
		return nil, err
	}

	if err := dev.Register(reg); err != nil {
		return nil, err
	}

	ingestor := mqtt.NewIngestor(conn, engine, dc.UniqueID, dc.TemperatureSensor, dc.HumiditySensor, dc.DefaultUnit())
	if err := ingestor.Start(); err != nil {
		return nil, err
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		dev.Run(ctx)
	}()

	logger.Info().
		Str("device", dc.UniqueID).
		Str("name", dc.Name).
		Int("sensors", len(dev.Sensors())).
		Bool("poll", dc.Poll).
		Msg("Device started")

	return dev, nil
}

func handleSignals(cancel context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	logger.Info().Msg("Received termination signal.")
	cancel()
}
