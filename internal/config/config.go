// Package config loads daemon configuration from a TOML file, environment
// and command line flags, in that order of precedence (flags win).
package config

import (
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"codeberg.org/mutker/comfortd/internal/comfort"
	"codeberg.org/mutker/comfortd/internal/errors"
)

const (
	DefaultLogLevel     = "info"
	DefaultScanInterval = 30 * time.Second
	DefaultBroker       = "tcp://localhost:1883"
	DefaultClientID     = "comfortd"
	DefaultPrefix       = "homeassistant"
	DefaultListen       = ":8080"
	DefaultTelemetryDB  = "/var/lib/comfortd/telemetry.db"
	DefaultRegistryDB   = "/var/lib/comfortd/registry.db"

	configEnvVar = "COMFORTD_CONFIG"
)

// Device describes one virtual comfort device: a temperature topic and a
// humidity topic plus publishing options.
type Device struct {
	Name              string   `mapstructure:"name" validate:"required"`
	UniqueID          string   `mapstructure:"unique_id"`
	TemperatureSensor string   `mapstructure:"temperature_sensor" validate:"required"`
	HumiditySensor    string   `mapstructure:"humidity_sensor" validate:"required"`
	TemperatureUnit   string   `mapstructure:"temperature_unit" validate:"omitempty,oneof=celsius fahrenheit kelvin"`
	Poll              bool     `mapstructure:"poll"`
	ScanInterval      int      `mapstructure:"scan_interval" validate:"omitempty,min=1"`
	CustomIcons       bool     `mapstructure:"custom_icons"`
	EnabledSensors    []string `mapstructure:"enabled_sensors"`
}

// DefaultUnit returns the device's configured ambient temperature unit.
func (d Device) DefaultUnit() comfort.Unit {
	switch d.TemperatureUnit {
	case "fahrenheit":
		return comfort.UnitFahrenheit
	case "kelvin":
		return comfort.UnitKelvin
	default:
		return comfort.UnitCelsius
	}
}

// Interval returns the poll interval of the device.
func (d Device) Interval() time.Duration {
	if d.ScanInterval <= 0 {
		return DefaultScanInterval
	}

	return time.Duration(d.ScanInterval) * time.Second
}

// EnabledMetrics resolves the enabled_sensors list. An empty list enables
// every catalog metric.
func (d Device) EnabledMetrics() ([]comfort.Metric, error) {
	if len(d.EnabledSensors) == 0 {
		return comfort.All(), nil
	}

	out := make([]comfort.Metric, 0, len(d.EnabledSensors))
	for _, s := range d.EnabledSensors {
		m, err := comfort.Parse(s)
		if err != nil {
			return nil, errors.New().Wrap(errors.ErrInvalidConfig, err)
		}
		out = append(out, m)
	}

	return out, nil
}

// MQTT holds broker connection settings.
type MQTT struct {
	Broker          string `mapstructure:"broker" validate:"required"`
	ClientID        string `mapstructure:"client_id"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	DiscoveryPrefix string `mapstructure:"discovery_prefix"`
	StatePrefix     string `mapstructure:"state_prefix"`
}

// API holds the read-only HTTP surface settings.
type API struct {
	Enabled bool   `mapstructure:"enabled"`
	Listen  string `mapstructure:"listen"`
}

type Config struct {
	LogLevel    string   `mapstructure:"log_level"`
	Telemetry   bool     `mapstructure:"telemetry"`
	TelemetryDB string   `mapstructure:"database"`
	RegistryDB  string   `mapstructure:"registry_database"`
	MQTT        MQTT     `mapstructure:"mqtt"`
	API         API      `mapstructure:"api"`
	Devices     []Device `mapstructure:"device" validate:"required,min=1,dive"`
}

var validate = validator.New()

// Load reads configuration from all sources and validates it.
func Load() (*Config, error) {
	errFactory := errors.New()

	// Optional .env bootstrap, mainly for broker credentials in dev.
	_ = godotenv.Load()

	flags := pflag.NewFlagSet("comfortd", pflag.ContinueOnError)
	flags.ParseErrorsWhitelist.UnknownFlags = true
	configFlag := flags.String("config", "", "Path to configuration file")
	logLevelFlag := flags.String("log-level", "", "Log level (debug, info, warning, error)")
	brokerFlag := flags.String("broker", "", "MQTT broker URL")
	if err := flags.Parse(os.Args[1:]); err != nil && !errors.Is(err, pflag.ErrHelp) {
		return nil, errFactory.Wrap(errors.ErrBindFlags, err)
	}

	v := viper.New()
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("telemetry", false)
	v.SetDefault("database", DefaultTelemetryDB)
	v.SetDefault("registry_database", DefaultRegistryDB)
	v.SetDefault("mqtt.broker", DefaultBroker)
	v.SetDefault("mqtt.client_id", DefaultClientID)
	v.SetDefault("mqtt.discovery_prefix", DefaultPrefix)
	v.SetDefault("mqtt.state_prefix", "comfortd")
	v.SetDefault("api.enabled", false)
	v.SetDefault("api.listen", DefaultListen)

	v.SetEnvPrefix("COMFORTD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	configPath := *configFlag
	if configPath == "" {
		configPath = os.Getenv(configEnvVar)
	}
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, errFactory.WithMessage(errors.ErrReadConfig, "Failed to read config file").WithData(err.Error())
		}
	} else {
		v.SetConfigName("comfortd")
		v.SetConfigType("toml")
		v.AddConfigPath("/etc")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, errFactory.WithMessage(errors.ErrReadConfig, "Failed to read config file").WithData(err.Error())
			}
		}
	}

	// Flags override file and environment.
	if *logLevelFlag != "" {
		v.Set("log_level", *logLevelFlag)
	}
	if *brokerFlag != "" {
		v.Set("mqtt.broker", *brokerFlag)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errFactory.Wrap(errors.ErrReadConfig, err)
	}

	if err := cfg.applyDefaultsAndValidate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyDefaultsAndValidate() error {
	errFactory := errors.New()

	if !isValidLogLevel(c.LogLevel) {
		return errFactory.WithData(errors.ErrInvalidLogLevel, c.LogLevel)
	}

	for i := range c.Devices {
		d := &c.Devices[i]
		if d.UniqueID == "" {
			d.UniqueID = uuid.NewString()
		}
		if d.ScanInterval == 0 {
			d.ScanInterval = int(DefaultScanInterval / time.Second)
		}
		if _, err := d.EnabledMetrics(); err != nil {
			return err
		}
	}

	if err := validate.Struct(c); err != nil {
		return errFactory.Wrap(errors.ErrInvalidConfig, err)
	}

	return nil
}

func isValidLogLevel(level string) bool {
	switch level {
	case "debug", "info", "warning", "warn", "error":
		return true
	default:
		return false
	}
}
