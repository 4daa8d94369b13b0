package comfort_test

import (
	"testing"

	"codeberg.org/mutker/comfortd/internal/comfort"
	"codeberg.org/mutker/comfortd/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateTemperature(t *testing.T) {
	tests := []struct {
		name        string
		raw         comfort.RawState
		defaultUnit comfort.Unit
		want        float64
		wantCode    errors.ErrorCode
	}{
		{
			name:        "celsius passthrough",
			raw:         comfort.RawState{Value: "25.0"},
			defaultUnit: comfort.UnitCelsius,
			want:        25.0,
		},
		{
			name:        "fahrenheit converted",
			raw:         comfort.RawState{Value: "77", Unit: "°F"},
			defaultUnit: comfort.UnitCelsius,
			want:        25.0,
		},
		{
			name:        "kelvin converted",
			raw:         comfort.RawState{Value: "298.15", Unit: "K"},
			defaultUnit: comfort.UnitCelsius,
			want:        25.0,
		},
		{
			name:        "default unit applies when untagged",
			raw:         comfort.RawState{Value: "77"},
			defaultUnit: comfort.UnitFahrenheit,
			want:        25.0,
		},
		{
			name:        "unknown state rejected",
			raw:         comfort.RawState{Value: "unknown"},
			defaultUnit: comfort.UnitCelsius,
			wantCode:    comfort.ErrStateUnavailable,
		},
		{
			name:        "unavailable state rejected",
			raw:         comfort.RawState{Value: "unavailable"},
			defaultUnit: comfort.UnitCelsius,
			wantCode:    comfort.ErrStateUnavailable,
		},
		{
			name:        "empty state rejected",
			raw:         comfort.RawState{Value: ""},
			defaultUnit: comfort.UnitCelsius,
			wantCode:    comfort.ErrStateUnavailable,
		},
		{
			name:        "non numeric rejected",
			raw:         comfort.RawState{Value: "warm"},
			defaultUnit: comfort.UnitCelsius,
			wantCode:    comfort.ErrStateNotNumeric,
		},
		{
			name:        "NaN rejected explicitly",
			raw:         comfort.RawState{Value: "NaN"},
			defaultUnit: comfort.UnitCelsius,
			wantCode:    comfort.ErrStateNotNumeric,
		},
		{
			name:        "below record low rejected",
			raw:         comfort.RawState{Value: "-90"},
			defaultUnit: comfort.UnitCelsius,
			wantCode:    comfort.ErrOutOfRange,
		},
		{
			name:        "above record high rejected",
			raw:         comfort.RawState{Value: "56.8"},
			defaultUnit: comfort.UnitCelsius,
			wantCode:    comfort.ErrOutOfRange,
		},
		{
			name:        "range check applies after conversion",
			raw:         comfort.RawState{Value: "150", Unit: "°F"},
			defaultUnit: comfort.UnitCelsius,
			wantCode:    comfort.ErrOutOfRange,
		},
		{
			name:        "unparseable unit rejected",
			raw:         comfort.RawState{Value: "25", Unit: "furlongs"},
			defaultUnit: comfort.UnitCelsius,
			wantCode:    comfort.ErrUnknownUnit,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reading, err := comfort.ValidateTemperature(tt.raw, tt.defaultUnit)
			if tt.wantCode != "" {
				require.Error(t, err)
				assert.True(t, errors.HasCode(err, tt.wantCode), "got %v", err)
				return
			}

			require.NoError(t, err)
			assert.InDelta(t, tt.want, reading.Value, 1e-9)
			assert.Equal(t, comfort.UnitCelsius, reading.Unit)
		})
	}
}

func TestValidateHumidity(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		want     float64
		wantCode errors.ErrorCode
	}{
		{name: "in range", value: "50.5", want: 50.5},
		{name: "upper bound inclusive", value: "100", want: 100},
		{name: "zero rejected", value: "0", wantCode: comfort.ErrOutOfRange},
		{name: "negative rejected", value: "-1", wantCode: comfort.ErrOutOfRange},
		{name: "above hundred rejected", value: "100.1", wantCode: comfort.ErrOutOfRange},
		{name: "unknown rejected", value: "unknown", wantCode: comfort.ErrStateUnavailable},
		{name: "NaN rejected", value: "NaN", wantCode: comfort.ErrStateNotNumeric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reading, err := comfort.ValidateHumidity(comfort.RawState{Value: tt.value})
			if tt.wantCode != "" {
				require.Error(t, err)
				assert.True(t, errors.HasCode(err, tt.wantCode), "got %v", err)
				return
			}

			require.NoError(t, err)
			assert.InDelta(t, tt.want, reading.Value, 1e-9)
		})
	}
}

func TestRejectedReadingLeavesEngineUnchanged(t *testing.T) {
	engine := comfort.NewEngine()
	engine.SetTemperature(comfort.Reading{Value: 25, Unit: comfort.UnitCelsius, Raw: 25})
	engine.SetHumidity(comfort.Reading{Value: 50, Unit: comfort.UnitPercent, Raw: 50})

	before, err := engine.Get(comfort.MetricDewPoint)
	require.NoError(t, err)

	// A rejected raw state never reaches the engine: the validator is the
	// admission boundary, the stored pair stays as-is.
	_, err = comfort.ValidateHumidity(comfort.RawState{Value: "0"})
	require.Error(t, err)

	after, err := engine.Get(comfort.MetricDewPoint)
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.False(t, engine.NeedsUpdate(comfort.MetricDewPoint))
}
