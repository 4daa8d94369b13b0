package comfort

// Category classifies how a metric value is published.
type Category int

const (
	// CategoryTemperature is a numeric value in degrees Celsius.
	CategoryTemperature Category = iota
	// CategoryNumeric is a numeric value with a non-temperature unit.
	CategoryNumeric
	// CategoryEnum is a perception state from a closed option set.
	CategoryEnum
)

// Display precision applied to numeric metrics at the publish boundary.
// The engine cache always holds full float precision.
const DisplayPrecision = 2

// Descriptor holds the immutable metadata of one metric. The catalog is
// built once at process start and shared read-only by every engine and
// facade instance.
type Descriptor struct {
	Metric         Metric
	Unit           string
	Category       Category
	DeviceClass    string
	Icon           string
	CustomIcon     string
	Options        []string
	EnabledDefault bool
}

const (
	unitCelsius          = "°C"
	unitGramsPerCubicM   = "g/m³"
	unitKilojoulesPerKg  = "kJ/kg"
	deviceClassTemp      = "temperature"
	deviceClassEnum      = "enum"
	customPerceptionIcon = "tc:thermal-perception"
)

var catalog = map[Metric]Descriptor{
	MetricAbsoluteHumidity: {
		Metric:         MetricAbsoluteHumidity,
		Unit:           unitGramsPerCubicM,
		Category:       CategoryNumeric,
		Icon:           "mdi:water",
		EnabledDefault: true,
	},
	MetricDewPoint: {
		Metric:         MetricDewPoint,
		Unit:           unitCelsius,
		Category:       CategoryTemperature,
		DeviceClass:    deviceClassTemp,
		Icon:           "mdi:thermometer-water",
		CustomIcon:     "tc:dew-point",
		EnabledDefault: true,
	},
	MetricDewPointPerception: {
		Metric:         MetricDewPointPerception,
		Category:       CategoryEnum,
		DeviceClass:    deviceClassEnum,
		Icon:           "mdi:sun-thermometer",
		CustomIcon:     customPerceptionIcon,
		Options:        dewPointPerceptionOptions,
		EnabledDefault: true,
	},
	MetricFrostPoint: {
		Metric:         MetricFrostPoint,
		Unit:           unitCelsius,
		Category:       CategoryTemperature,
		DeviceClass:    deviceClassTemp,
		Icon:           "mdi:snowflake-thermometer",
		CustomIcon:     "tc:frost-point",
		EnabledDefault: true,
	},
	MetricFrostRisk: {
		Metric:         MetricFrostRisk,
		Category:       CategoryEnum,
		DeviceClass:    deviceClassEnum,
		Icon:           "mdi:snowflake-alert",
		Options:        frostRiskOptions,
		EnabledDefault: true,
	},
	MetricHeatIndex: {
		Metric:         MetricHeatIndex,
		Unit:           unitCelsius,
		Category:       CategoryTemperature,
		DeviceClass:    deviceClassTemp,
		Icon:           "mdi:sun-thermometer",
		EnabledDefault: true,
	},
	MetricHumidex: {
		Metric:         MetricHumidex,
		Unit:           unitCelsius,
		Category:       CategoryTemperature,
		DeviceClass:    deviceClassTemp,
		Icon:           "mdi:sun-thermometer",
		EnabledDefault: true,
	},
	MetricHumidexPerception: {
		Metric:         MetricHumidexPerception,
		Category:       CategoryEnum,
		DeviceClass:    deviceClassEnum,
		Icon:           "mdi:sun-thermometer",
		CustomIcon:     customPerceptionIcon,
		Options:        humidexPerceptionOptions,
		EnabledDefault: true,
	},
	MetricMoistAirEnthalpy: {
		Metric:         MetricMoistAirEnthalpy,
		Unit:           unitKilojoulesPerKg,
		Category:       CategoryNumeric,
		Icon:           "mdi:water-circle",
		EnabledDefault: true,
	},
	MetricRelativeStrainPerception: {
		Metric:         MetricRelativeStrainPerception,
		Category:       CategoryEnum,
		DeviceClass:    deviceClassEnum,
		Icon:           "mdi:sun-thermometer",
		CustomIcon:     customPerceptionIcon,
		Options:        relativeStrainPerceptionOptions,
		EnabledDefault: true,
	},
	MetricSummerScharlauPerception: {
		Metric:         MetricSummerScharlauPerception,
		Category:       CategoryEnum,
		DeviceClass:    deviceClassEnum,
		Icon:           "mdi:sun-thermometer",
		CustomIcon:     customPerceptionIcon,
		Options:        scharlauPerceptionOptions,
		EnabledDefault: true,
	},
	MetricWinterScharlauPerception: {
		Metric:         MetricWinterScharlauPerception,
		Category:       CategoryEnum,
		DeviceClass:    deviceClassEnum,
		Icon:           "mdi:snowflake-thermometer",
		CustomIcon:     customPerceptionIcon,
		Options:        scharlauPerceptionOptions,
		EnabledDefault: true,
	},
	MetricSummerSimmerIndex: {
		Metric:         MetricSummerSimmerIndex,
		Unit:           unitCelsius,
		Category:       CategoryTemperature,
		DeviceClass:    deviceClassTemp,
		Icon:           "mdi:sun-thermometer",
		EnabledDefault: true,
	},
	MetricSummerSimmerPerception: {
		Metric:         MetricSummerSimmerPerception,
		Category:       CategoryEnum,
		DeviceClass:    deviceClassEnum,
		Icon:           "mdi:sun-thermometer",
		CustomIcon:     customPerceptionIcon,
		Options:        summerSimmerPerceptionOptions,
		EnabledDefault: true,
	},
	MetricThomsDiscomfortPerception: {
		Metric:         MetricThomsDiscomfortPerception,
		Category:       CategoryEnum,
		DeviceClass:    deviceClassEnum,
		Icon:           "mdi:sun-thermometer",
		CustomIcon:     customPerceptionIcon,
		Options:        thomsDiscomfortPerceptionOptions,
		EnabledDefault: true,
	},
}

// Describe returns the descriptor of a metric.
func Describe(m Metric) (Descriptor, bool) {
	d, ok := catalog[m]

	return d, ok
}

// IconFor returns the icon of a metric, preferring the custom icon pack
// when enabled and available.
func IconFor(m Metric, customIcons bool) string {
	d, ok := catalog[m]
	if !ok {
		return ""
	}
	if customIcons && d.CustomIcon != "" {
		return d.CustomIcon
	}

	return d.Icon
}
