// Package mqtt provides the broker connection with an abstraction for
// testing, plus decoding of upstream sensor state payloads.
package mqtt

import (
	"encoding/json"
	"fmt"
	"strings"

	"codeberg.org/mutker/comfortd/internal/comfort"
)

// MessageHandler receives messages for a subscribed topic.
type MessageHandler func(topic string, payload []byte)

// Conn is a broker connection. Implementations must be safe for
// concurrent use.
type Conn interface {
	// Publish sends a message. Returns an error if delivery to the broker
	// fails; callers log and continue, a flaky broker must not crash the
	// process.
	Publish(topic string, qos byte, retained bool, payload []byte) error

	// Subscribe registers a handler for a topic.
	Subscribe(topic string, handler MessageHandler) error

	// Close disconnects from the broker.
	Close() error
}

// statePayload is the JSON form of an upstream sensor state. The unit tag
// is optional; statestream style integrations publish it alongside the
// value.
type statePayload struct {
	State any    `json:"state"`
	Unit  string `json:"unit"`
}

// DecodeState turns an incoming payload into a raw state for validation.
// Accepted forms: a plain scalar payload ("21.5", "unavailable") or a
// JSON object with a state and an optional unit field.
func DecodeState(payload []byte) comfort.RawState {
	trimmed := strings.TrimSpace(string(payload))

	if strings.HasPrefix(trimmed, "{") {
		var decoded statePayload
		if err := json.Unmarshal(payload, &decoded); err == nil && decoded.State != nil {
			return comfort.RawState{
				Value: stringifyState(decoded.State),
				Unit:  decoded.Unit,
			}
		}
	}

	return comfort.RawState{Value: strings.Trim(trimmed, `"`)}
}

func stringifyState(state any) string {
	switch v := state.(type) {
	case string:
		return v
	case float64:
		return fmt.Sprintf("%g", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
