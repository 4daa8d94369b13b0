package mqtt_test

import (
	"testing"

	"codeberg.org/mutker/comfortd/internal/comfort"
	"codeberg.org/mutker/comfortd/internal/mqtt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeState(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    comfort.RawState
	}{
		{
			name:    "plain scalar",
			payload: "21.5",
			want:    comfort.RawState{Value: "21.5"},
		},
		{
			name:    "scalar with whitespace",
			payload: " 21.5\n",
			want:    comfort.RawState{Value: "21.5"},
		},
		{
			name:    "quoted scalar",
			payload: `"unavailable"`,
			want:    comfort.RawState{Value: "unavailable"},
		},
		{
			name:    "json with unit",
			payload: `{"state": 69.8, "unit": "°F"}`,
			want:    comfort.RawState{Value: "69.8", Unit: "°F"},
		},
		{
			name:    "json string state",
			payload: `{"state": "21.5"}`,
			want:    comfort.RawState{Value: "21.5"},
		},
		{
			name:    "json without state falls back to raw",
			payload: `{"value": 1}`,
			want:    comfort.RawState{Value: `{"value": 1}`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, mqtt.DecodeState([]byte(tt.payload)))
		})
	}
}

func TestIngestorFeedsEngine(t *testing.T) {
	conn := mqtt.NewFakeConn()
	engine := comfort.NewEngine()

	ingestor := mqtt.NewIngestor(conn, engine,
		"livingroom", "home/livingroom/temperature", "home/livingroom/humidity",
		comfort.UnitCelsius)
	require.NoError(t, ingestor.Start())

	conn.Inject("home/livingroom/temperature", []byte("25.0"))
	assert.False(t, engine.Ready(), "one input is not enough")

	conn.Inject("home/livingroom/humidity", []byte("50"))
	require.True(t, engine.Ready())

	result, err := engine.Get(comfort.MetricDewPoint)
	require.NoError(t, err)
	assert.InDelta(t, 13.875, result.Value, 0.01)
}

func TestIngestorConvertsTaggedUnits(t *testing.T) {
	conn := mqtt.NewFakeConn()
	engine := comfort.NewEngine()

	ingestor := mqtt.NewIngestor(conn, engine,
		"livingroom", "t", "h", comfort.UnitCelsius)
	require.NoError(t, ingestor.Start())

	conn.Inject("t", []byte(`{"state": 77, "unit": "°F"}`))
	conn.Inject("h", []byte("50"))

	result, err := engine.Get(comfort.MetricDewPoint)
	require.NoError(t, err)
	assert.InDelta(t, 13.875, result.Value, 0.01, "77°F was converted to 25°C")
}

func TestIngestorDropsInvalidStates(t *testing.T) {
	conn := mqtt.NewFakeConn()
	engine := comfort.NewEngine()

	ingestor := mqtt.NewIngestor(conn, engine,
		"livingroom", "t", "h", comfort.UnitCelsius)
	require.NoError(t, ingestor.Start())

	conn.Inject("t", []byte("25.0"))
	conn.Inject("h", []byte("50"))
	first, err := engine.Get(comfort.MetricHeatIndex)
	require.NoError(t, err)

	// A burst of garbage must leave the last good pair untouched.
	conn.Inject("t", []byte("unavailable"))
	conn.Inject("t", []byte("NaN"))
	conn.Inject("t", []byte("-120"))
	conn.Inject("h", []byte("0"))
	conn.Inject("h", []byte("garbage"))

	assert.False(t, engine.NeedsUpdate(comfort.MetricHeatIndex))
	after, err := engine.Get(comfort.MetricHeatIndex)
	require.NoError(t, err)
	assert.Equal(t, first, after)
}

func TestFakeConnRecordsPublishes(t *testing.T) {
	conn := mqtt.NewFakeConn()

	require.NoError(t, conn.Publish("a/b", 0, true, []byte("x")))
	require.NoError(t, conn.Publish("a/c", 1, false, []byte("y")))

	all := conn.Published("")
	assert.Len(t, all, 2)

	onTopic := conn.Published("a/b")
	require.Len(t, onTopic, 1)
	assert.True(t, onTopic[0].Retained)
	assert.Equal(t, []byte("x"), onTopic[0].Payload)
}
