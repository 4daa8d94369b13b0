package sensor

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"codeberg.org/mutker/comfortd/internal/comfort"
	"codeberg.org/mutker/comfortd/internal/errors"
	"codeberg.org/mutker/comfortd/internal/mqtt"
)

// Sensor publishes one derived metric of one device. Numeric metrics are
// rounded to two decimals at the publish boundary; the engine cache keeps
// full precision.
type Sensor struct {
	metric          comfort.Metric
	desc            comfort.Descriptor
	uniqueID        string
	stateTopic      string
	attributesTopic string
	customIcons     bool
}

func newSensor(deviceID, statePrefix string, metric comfort.Metric, customIcons bool) (*Sensor, error) {
	desc, ok := comfort.Describe(metric)
	if !ok {
		return nil, errors.New().WithData(comfort.ErrUnknownMetric, string(metric))
	}

	base := fmt.Sprintf("%s/%s/%s", statePrefix, deviceID, metric)

	return &Sensor{
		metric:          metric,
		desc:            desc,
		uniqueID:        comfort.EntityID(deviceID, metric),
		stateTopic:      base + "/state",
		attributesTopic: base + "/attributes",
		customIcons:     customIcons,
	}, nil
}

// Metric returns the metric this sensor publishes.
func (s *Sensor) Metric() comfort.Metric {
	return s.metric
}

// UniqueID returns the stable entity identifier.
func (s *Sensor) UniqueID() string {
	return s.uniqueID
}

// publish formats the current engine result and writes the state and
// attribute topics. Before the engine has seen both inputs the state is
// published as "unknown" so subscribers see the entity exists.
func (s *Sensor) publish(conn mqtt.Conn, engine *comfort.Engine) error {
	result, err := engine.Get(s.metric)
	if err != nil {
		if errors.HasCode(err, comfort.ErrNotReady) {
			return conn.Publish(s.stateTopic, 0, false, []byte("unknown"))
		}

		return err
	}

	var state string
	if s.desc.Category == comfort.CategoryEnum {
		state = result.Perception
	} else {
		state = formatValue(result.Value)
	}

	if err := conn.Publish(s.stateTopic, 0, false, []byte(state)); err != nil {
		return err
	}

	attrs := make(map[string]any, len(result.Attributes)+2)
	for name, value := range engine.StateAttributes() {
		attrs[name] = roundDisplay(value)
	}
	for name, value := range result.Attributes {
		attrs[name] = roundDisplay(value)
	}

	payload, err := json.Marshal(attrs)
	if err != nil {
		return err
	}

	return conn.Publish(s.attributesTopic, 0, false, payload)
}

func formatValue(v float64) string {
	return strconv.FormatFloat(roundDisplay(v), 'f', -1, 64)
}

func roundDisplay(v float64) float64 {
	shift := math.Pow(10, comfort.DisplayPrecision)

	return math.Round(v*shift) / shift
}
