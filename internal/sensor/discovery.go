package sensor

import (
	"encoding/json"
	"fmt"

	"codeberg.org/mutker/comfortd/internal/comfort"
)

const (
	manufacturer = "Thermal Comfort"
	model        = "Virtual Device"
)

// discoveryPayload is the Home Assistant MQTT discovery config for one
// derived sensor.
type discoveryPayload struct {
	Name                string     `json:"name"`
	UniqueID            string     `json:"unique_id"`
	StateTopic          string     `json:"state_topic"`
	JSONAttributesTopic string     `json:"json_attributes_topic"`
	UnitOfMeasurement   string     `json:"unit_of_measurement,omitempty"`
	DeviceClass         string     `json:"device_class,omitempty"`
	StateClass          string     `json:"state_class,omitempty"`
	Icon                string     `json:"icon,omitempty"`
	Options             []string   `json:"options,omitempty"`
	EnabledByDefault    bool       `json:"enabled_by_default"`
	Device              deviceInfo `json:"device"`
}

type deviceInfo struct {
	Identifiers  []string `json:"identifiers"`
	Name         string   `json:"name"`
	Manufacturer string   `json:"manufacturer"`
	Model        string   `json:"model"`
}

// discoveryTopic returns the retained config topic of one sensor.
func discoveryTopic(prefix, uniqueID string) string {
	return fmt.Sprintf("%s/sensor/%s/config", prefix, uniqueID)
}

func (s *Sensor) discoveryConfig(deviceName, deviceID string) ([]byte, error) {
	payload := discoveryPayload{
		Name:                s.metric.DisplayName(),
		UniqueID:            s.uniqueID,
		StateTopic:          s.stateTopic,
		JSONAttributesTopic: s.attributesTopic,
		UnitOfMeasurement:   s.desc.Unit,
		DeviceClass:         s.desc.DeviceClass,
		Icon:                comfort.IconFor(s.metric, s.customIcons),
		Options:             s.desc.Options,
		EnabledByDefault:    s.desc.EnabledDefault,
		Device: deviceInfo{
			Identifiers:  []string{deviceID},
			Name:         deviceName,
			Manufacturer: manufacturer,
			Model:        model,
		},
	}
	if s.desc.Category != comfort.CategoryEnum {
		payload.StateClass = "measurement"
	}

	return json.Marshal(payload)
}
