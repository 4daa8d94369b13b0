package api_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/mutker/comfortd/internal/api"
	"codeberg.org/mutker/comfortd/internal/comfort"
	"codeberg.org/mutker/comfortd/internal/mqtt"
	"codeberg.org/mutker/comfortd/internal/sensor"
)

func testDevice(t *testing.T, id string, seeded bool) *sensor.Device {
	t.Helper()

	engine := comfort.NewEngine()
	dev, err := sensor.NewDevice(sensor.Options{
		Name:            "Device " + id,
		DeviceID:        id,
		StatePrefix:     "comfortd",
		DiscoveryPrefix: "homeassistant",
	}, engine, mqtt.NewFakeConn(), nil)
	require.NoError(t, err)

	if seeded {
		engine.SetTemperature(comfort.Reading{Value: 25.0, Unit: comfort.UnitCelsius, Raw: 25.0})
		engine.SetHumidity(comfort.Reading{Value: 50.0, Unit: comfort.UnitPercent, Raw: 50.0})
	}

	return dev
}

func getJSON(t *testing.T, srv *api.Server, path string, out any) int {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	resp, err := srv.App().Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if out != nil {
		require.NoError(t, json.Unmarshal(body, out))
	}

	return resp.StatusCode
}

func TestHealthz(t *testing.T) {
	srv := api.NewServer(":0", nil)

	var body map[string]string
	code := getJSON(t, srv, "/healthz", &body)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body["status"])
}

func TestListDevices(t *testing.T) {
	srv := api.NewServer(":0", []*sensor.Device{
		testDevice(t, "livingroom", true),
		testDevice(t, "bedroom", false),
	})

	var body []map[string]any
	code := getJSON(t, srv, "/api/v1/devices", &body)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, body, 2)

	assert.Equal(t, "livingroom", body[0]["id"])
	assert.Equal(t, true, body[0]["ready"])
	assert.Equal(t, "bedroom", body[1]["id"])
	assert.Equal(t, false, body[1]["ready"])
}

func TestDeviceDetail(t *testing.T) {
	srv := api.NewServer(":0", []*sensor.Device{testDevice(t, "livingroom", true)})

	var body struct {
		ID      string             `json:"id"`
		Ready   bool               `json:"ready"`
		Inputs  map[string]float64 `json:"inputs"`
		Metrics map[string]struct {
			State any    `json:"state"`
			Unit  string `json:"unit"`
		} `json:"metrics"`
	}
	code := getJSON(t, srv, "/api/v1/devices/livingroom", &body)
	require.Equal(t, http.StatusOK, code)

	assert.True(t, body.Ready)
	assert.InDelta(t, 25.0, body.Inputs["temperature"], 1e-9)
	assert.InDelta(t, 50.0, body.Inputs["humidity"], 1e-9)

	dew := body.Metrics["dew_point"]
	assert.InDelta(t, 13.88, dew.State.(float64), 1e-9)
	assert.Equal(t, "°C", dew.Unit)

	frost := body.Metrics["frost_risk"]
	assert.Equal(t, "no_risk", frost.State)
}

func TestDeviceDetailBeforeReady(t *testing.T) {
	srv := api.NewServer(":0", []*sensor.Device{testDevice(t, "bedroom", false)})

	var body struct {
		Ready   bool                      `json:"ready"`
		Inputs  map[string]float64        `json:"inputs"`
		Metrics map[string]map[string]any `json:"metrics"`
	}
	code := getJSON(t, srv, "/api/v1/devices/bedroom", &body)
	require.Equal(t, http.StatusOK, code)

	assert.False(t, body.Ready)
	assert.Empty(t, body.Inputs)
	assert.Equal(t, "unknown", body.Metrics["humidex"]["state"])
}

func TestUnknownDevice(t *testing.T) {
	srv := api.NewServer(":0", nil)

	code := getJSON(t, srv, "/api/v1/devices/nope", nil)
	assert.Equal(t, http.StatusNotFound, code)
}
