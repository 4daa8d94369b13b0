package comfort

import (
	"math"
	"strconv"
	"strings"

	"codeberg.org/mutker/comfortd/internal/errors"
)

// Sentinel states published by upstream platforms for sensors that exist
// but currently have no usable value.
const (
	StateUnknown     = "unknown"
	StateUnavailable = "unavailable"
)

// Temperature admission range in °C: the extremes ever recorded on earth.
const (
	MinTemperature = -89.2
	MaxTemperature = 56.7
)

// Validation is deliberately forgiving: a rejected reading is an error
// return the caller logs and drops, never a panic, so a noisy upstream
// sensor (reboot, unavailable, garbage) cannot corrupt engine state.

// ValidateTemperature checks and normalizes a raw temperature state.
// The unit tag on the state wins over defaultUnit. The result is in
// Celsius and guaranteed to lie in [MinTemperature, MaxTemperature].
func ValidateTemperature(raw RawState, defaultUnit Unit) (Reading, error) {
	errFactory := errors.New()

	value, err := parseFinite(raw.Value)
	if err != nil {
		return Reading{}, err
	}

	unit := defaultUnit
	if raw.Unit != "" {
		parsed, ok := ParseUnit(raw.Unit)
		if !ok || parsed == UnitPercent {
			return Reading{}, errFactory.WithData(ErrUnknownUnit, raw.Unit)
		}
		unit = parsed
	}

	celsius := value
	switch unit {
	case UnitFahrenheit:
		celsius = FahrenheitToCelsius(value)
	case UnitKelvin:
		celsius = KelvinToCelsius(value)
	}

	if celsius < MinTemperature || celsius > MaxTemperature {
		return Reading{}, errFactory.WithData(ErrOutOfRange, celsius)
	}

	return Reading{Value: celsius, Unit: UnitCelsius, Raw: value}, nil
}

// ValidateHumidity checks a raw relative humidity state. Zero is rejected
// along with negative values: several formulas take a logarithm of the
// humidity.
func ValidateHumidity(raw RawState) (Reading, error) {
	value, err := parseFinite(raw.Value)
	if err != nil {
		return Reading{}, err
	}

	if value <= 0 || value > 100 {
		return Reading{}, errors.New().WithData(ErrOutOfRange, value)
	}

	return Reading{Value: value, Unit: UnitPercent, Raw: value}, nil
}

// parseFinite parses a state string into a finite float. NaN is rejected
// explicitly: strconv accepts the literal "NaN".
func parseFinite(s string) (float64, error) {
	errFactory := errors.New()

	s = strings.TrimSpace(s)
	if s == "" || s == StateUnknown || s == StateUnavailable {
		return 0, errFactory.WithData(ErrStateUnavailable, s)
	}

	value, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errFactory.Wrap(ErrStateNotNumeric, err)
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, errFactory.WithData(ErrStateNotNumeric, s)
	}

	return value, nil
}
