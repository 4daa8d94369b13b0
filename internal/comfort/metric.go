// Package comfort derives thermal comfort metrics (dew point, heat index,
// humidex, frost risk, simmer index and friends) from a temperature and
// relative humidity pair. The Engine memoizes every metric independently
// and recomputes lazily when a new validated reading arrives.
package comfort

import (
	"strings"

	"codeberg.org/mutker/comfortd/internal/errors"
)

// Metric identifies a single derived comfort metric.
type Metric string

const (
	MetricAbsoluteHumidity          Metric = "absolute_humidity"
	MetricDewPoint                  Metric = "dew_point"
	MetricDewPointPerception        Metric = "dew_point_perception"
	MetricFrostPoint                Metric = "frost_point"
	MetricFrostRisk                 Metric = "frost_risk"
	MetricHeatIndex                 Metric = "heat_index"
	MetricHumidex                   Metric = "humidex"
	MetricHumidexPerception         Metric = "humidex_perception"
	MetricMoistAirEnthalpy          Metric = "moist_air_enthalpy"
	MetricRelativeStrainPerception  Metric = "relative_strain_perception"
	MetricSummerScharlauPerception  Metric = "summer_scharlau_perception"
	MetricWinterScharlauPerception  Metric = "winter_scharlau_perception"
	MetricSummerSimmerIndex         Metric = "summer_simmer_index"
	MetricSummerSimmerPerception    Metric = "summer_simmer_perception"
	MetricThomsDiscomfortPerception Metric = "thoms_discomfort_perception"
)

// Legacy metric identifiers from releases before the 2.x naming cleanup.
// They survive only in entity registries written by old installations.
const (
	LegacyThermalPerception Metric = "thermal_perception"
	LegacySimmerIndex       Metric = "simmer_index"
	LegacySimmerZone        Metric = "simmer_zone"
)

// metrics lists every canonical metric in catalog order.
var metrics = []Metric{
	MetricAbsoluteHumidity,
	MetricDewPoint,
	MetricDewPointPerception,
	MetricFrostPoint,
	MetricFrostRisk,
	MetricHeatIndex,
	MetricHumidex,
	MetricHumidexPerception,
	MetricMoistAirEnthalpy,
	MetricRelativeStrainPerception,
	MetricSummerScharlauPerception,
	MetricWinterScharlauPerception,
	MetricSummerSimmerIndex,
	MetricSummerSimmerPerception,
	MetricThomsDiscomfortPerception,
}

// legacyAliases maps retired metric identifiers to their canonical names.
var legacyAliases = map[Metric]Metric{
	LegacyThermalPerception: MetricDewPointPerception,
	LegacySimmerIndex:       MetricSummerSimmerIndex,
	LegacySimmerZone:        MetricSummerSimmerPerception,
}

// All returns every canonical metric in catalog order. The returned slice
// is a copy and safe to modify.
func All() []Metric {
	out := make([]Metric, len(metrics))
	copy(out, metrics)

	return out
}

// Parse resolves a metric identifier, accepting legacy aliases.
func Parse(s string) (Metric, error) {
	m := Metric(strings.ToLower(strings.TrimSpace(s)))
	if canonical, ok := legacyAliases[m]; ok {
		return canonical, nil
	}
	if _, ok := catalog[m]; ok {
		return m, nil
	}

	return "", errors.New().WithData(ErrUnknownMetric, s)
}

// CanonicalOf returns the canonical metric for a legacy identifier.
func CanonicalOf(legacy Metric) (Metric, bool) {
	canonical, ok := legacyAliases[legacy]

	return canonical, ok
}

// LegacyOf returns the retired identifier a metric was previously known
// under, if one exists.
func LegacyOf(m Metric) (Metric, bool) {
	for legacy, canonical := range legacyAliases {
		if canonical == m {
			return legacy, true
		}
	}

	return "", false
}

// DisplayName returns the human readable name of the metric.
func (m Metric) DisplayName() string {
	name := strings.ReplaceAll(string(m), "_", " ")
	if name == "" {
		return name
	}

	return strings.ToUpper(name[:1]) + name[1:]
}

// EntityID generates the persistent identity for one metric of one device.
// External registries key on the plain concatenation, no separator.
func EntityID(deviceID string, m Metric) string {
	return deviceID + string(m)
}
