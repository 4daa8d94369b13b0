package comfort

// Unit identifies the physical unit of a raw sensor reading.
type Unit string

const (
	UnitCelsius    Unit = "°C"
	UnitFahrenheit Unit = "°F"
	UnitKelvin     Unit = "K"
	UnitPercent    Unit = "%"
)

// Reading is a validated sensor value. Temperature readings are always
// normalized to Celsius before they are stored in an Engine.
type Reading struct {
	Value float64
	Unit  Unit
	// Raw is the value as reported by the upstream sensor, before unit
	// conversion. Republished as a state attribute.
	Raw float64
}

// RawState is an upstream sensor state as it arrives from the wire:
// a textual value plus an optional unit tag from the state metadata.
type RawState struct {
	Value string
	Unit  string
}

// ParseUnit resolves a unit tag from state metadata. Common spellings
// without the degree sign are accepted.
func ParseUnit(s string) (Unit, bool) {
	switch s {
	case "°C", "C", "celsius":
		return UnitCelsius, true
	case "°F", "F", "fahrenheit":
		return UnitFahrenheit, true
	case "K", "kelvin":
		return UnitKelvin, true
	case "%":
		return UnitPercent, true
	default:
		return "", false
	}
}
