package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"codeberg.org/mutker/comfortd/internal/comfort"
	"codeberg.org/mutker/comfortd/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "comfortd.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	configPath := writeConfig(t, `
log_level = "debug"
telemetry = true
database = "/path/to/telemetry.db"

[mqtt]
broker = "tcp://broker.local:1883"
client_id = "comfortd-test"

[api]
enabled = true
listen = ":9090"

[[device]]
name = "Living Room"
unique_id = "livingroom"
temperature_sensor = "home/livingroom/temperature"
humidity_sensor = "home/livingroom/humidity"
poll = true
scan_interval = 60
custom_icons = true
enabled_sensors = ["dew_point", "frost_risk"]
`)
	t.Setenv("COMFORTD_CONFIG", configPath)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel, "Expected LogLevel debug")
	assert.True(t, cfg.Telemetry, "Expected Telemetry true")
	assert.Equal(t, "/path/to/telemetry.db", cfg.TelemetryDB)
	assert.Equal(t, "tcp://broker.local:1883", cfg.MQTT.Broker)
	assert.Equal(t, "comfortd-test", cfg.MQTT.ClientID)
	assert.True(t, cfg.API.Enabled)
	assert.Equal(t, ":9090", cfg.API.Listen)

	require.Len(t, cfg.Devices, 1)
	device := cfg.Devices[0]
	assert.Equal(t, "Living Room", device.Name)
	assert.Equal(t, "livingroom", device.UniqueID)
	assert.True(t, device.Poll)
	assert.Equal(t, 60*time.Second, device.Interval())
	assert.True(t, device.CustomIcons)

	enabled, err := device.EnabledMetrics()
	require.NoError(t, err)
	assert.Equal(t, []comfort.Metric{comfort.MetricDewPoint, comfort.MetricFrostRisk}, enabled)
}

func TestLoadDefaults(t *testing.T) {
	configPath := writeConfig(t, `
[[device]]
name = "Bedroom"
temperature_sensor = "home/bedroom/temperature"
humidity_sensor = "home/bedroom/humidity"
`)
	t.Setenv("COMFORTD_CONFIG", configPath)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.DefaultLogLevel, cfg.LogLevel)
	assert.False(t, cfg.Telemetry, "Telemetry disabled by default")
	assert.Equal(t, config.DefaultBroker, cfg.MQTT.Broker)
	assert.Equal(t, config.DefaultPrefix, cfg.MQTT.DiscoveryPrefix)
	assert.False(t, cfg.API.Enabled)

	require.Len(t, cfg.Devices, 1)
	device := cfg.Devices[0]
	assert.NotEmpty(t, device.UniqueID, "UniqueID generated when omitted")
	assert.Equal(t, config.DefaultScanInterval, device.Interval())
	assert.Equal(t, comfort.UnitCelsius, device.DefaultUnit())

	enabled, err := device.EnabledMetrics()
	require.NoError(t, err)
	assert.Len(t, enabled, len(comfort.All()), "all metrics enabled by default")
}

func TestLoadLegacySensorNamesAccepted(t *testing.T) {
	configPath := writeConfig(t, `
[[device]]
name = "Attic"
temperature_sensor = "home/attic/temperature"
humidity_sensor = "home/attic/humidity"
enabled_sensors = ["thermal_perception", "simmer_index"]
`)
	t.Setenv("COMFORTD_CONFIG", configPath)

	cfg, err := config.Load()
	require.NoError(t, err)

	enabled, err := cfg.Devices[0].EnabledMetrics()
	require.NoError(t, err)
	assert.Equal(t, []comfort.Metric{
		comfort.MetricDewPointPerception,
		comfort.MetricSummerSimmerIndex,
	}, enabled)
}

func TestLoadRejectsUnknownSensor(t *testing.T) {
	configPath := writeConfig(t, `
[[device]]
name = "Attic"
temperature_sensor = "home/attic/temperature"
humidity_sensor = "home/attic/humidity"
enabled_sensors = ["wind_chill"]
`)
	t.Setenv("COMFORTD_CONFIG", configPath)

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "wind_chill")
}

func TestLoadRejectsMissingSensorTopics(t *testing.T) {
	configPath := writeConfig(t, `
[[device]]
name = "Attic"
`)
	t.Setenv("COMFORTD_CONFIG", configPath)

	_, err := config.Load()
	require.Error(t, err)
}

func TestLoadRejectsNoDevices(t *testing.T) {
	configPath := writeConfig(t, `
log_level = "info"
`)
	t.Setenv("COMFORTD_CONFIG", configPath)

	_, err := config.Load()
	require.Error(t, err)
}

func TestLoadInvalidLogLevel(t *testing.T) {
	configPath := writeConfig(t, `
log_level = "loud"

[[device]]
name = "Attic"
temperature_sensor = "home/attic/temperature"
humidity_sensor = "home/attic/humidity"
`)
	t.Setenv("COMFORTD_CONFIG", configPath)

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loud")
}

func TestLoadInvalidFormat(t *testing.T) {
	configPath := writeConfig(t, `
This is not a valid TOML file
`)
	t.Setenv("COMFORTD_CONFIG", configPath)

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Failed to read config file")
}

func TestDeviceTemperatureUnit(t *testing.T) {
	assert.Equal(t, comfort.UnitFahrenheit, config.Device{TemperatureUnit: "fahrenheit"}.DefaultUnit())
	assert.Equal(t, comfort.UnitKelvin, config.Device{TemperatureUnit: "kelvin"}.DefaultUnit())
	assert.Equal(t, comfort.UnitCelsius, config.Device{}.DefaultUnit())
}
