package mqtt

import (
	"codeberg.org/mutker/comfortd/internal/comfort"
	"codeberg.org/mutker/comfortd/internal/errors"
	"codeberg.org/mutker/comfortd/internal/logger"
)

// Ingestor feeds one device's engine from its two upstream state topics.
// Invalid states are logged and dropped; the engine keeps its last good
// pair.
type Ingestor struct {
	conn             Conn
	engine           *comfort.Engine
	device           string
	temperatureTopic string
	humidityTopic    string
	defaultUnit      comfort.Unit
}

func NewIngestor(
	conn Conn,
	engine *comfort.Engine,
	device, temperatureTopic, humidityTopic string,
	defaultUnit comfort.Unit,
) *Ingestor {
	return &Ingestor{
		conn:             conn,
		engine:           engine,
		device:           device,
		temperatureTopic: temperatureTopic,
		humidityTopic:    humidityTopic,
		defaultUnit:      defaultUnit,
	}
}

// Start subscribes to both state topics.
func (i *Ingestor) Start() error {
	if err := i.conn.Subscribe(i.temperatureTopic, i.onTemperature); err != nil {
		return errors.New().Wrap(errors.ErrInitIngest, err)
	}
	if err := i.conn.Subscribe(i.humidityTopic, i.onHumidity); err != nil {
		return errors.New().Wrap(errors.ErrInitIngest, err)
	}

	return nil
}

func (i *Ingestor) onTemperature(_ string, payload []byte) {
	raw := DecodeState(payload)

	reading, err := comfort.ValidateTemperature(raw, i.defaultUnit)
	if err != nil {
		logger.Info().
			Str("device", i.device).
			Str("state", raw.Value).
			Err(err).
			Msg("Temperature has an invalid value, keeping previous state")
		return
	}

	i.engine.SetTemperature(reading)
}

func (i *Ingestor) onHumidity(_ string, payload []byte) {
	raw := DecodeState(payload)

	reading, err := comfort.ValidateHumidity(raw)
	if err != nil {
		logger.Info().
			Str("device", i.device).
			Str("state", raw.Value).
			Err(err).
			Msg("Relative humidity has an invalid value, keeping previous state")
		return
	}

	i.engine.SetHumidity(reading)
}
