package mqtt

import (
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"codeberg.org/mutker/comfortd/internal/errors"
	"codeberg.org/mutker/comfortd/internal/logger"
)

const (
	connectTimeout = 10 * time.Second
	opTimeout      = 5 * time.Second
	retryInterval  = 5 * time.Second
)

// Options configures the broker connection.
type Options struct {
	Broker   string
	ClientID string
	Username string
	Password string
}

// RealConn talks to an actual MQTT broker via paho.
type RealConn struct {
	client paho.Client
}

// Connect establishes a connection with automatic reconnect.
func Connect(opts Options) (*RealConn, error) {
	errFactory := errors.New()

	clientOpts := paho.NewClientOptions().
		AddBroker(opts.Broker).
		SetClientID(opts.ClientID).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(retryInterval).
		SetOnConnectHandler(func(paho.Client) {
			logger.Info().Str("broker", opts.Broker).Msg("Connected to MQTT broker")
		}).
		SetConnectionLostHandler(func(_ paho.Client, err error) {
			logger.Warn().Err(err).Msg("MQTT connection lost, reconnecting")
		})
	if opts.Username != "" {
		clientOpts.SetUsername(opts.Username)
		clientOpts.SetPassword(opts.Password)
	}

	client := paho.NewClient(clientOpts)
	token := client.Connect()
	if !token.WaitTimeout(connectTimeout) {
		return nil, errFactory.New(ErrConnectTimeout)
	}
	if err := token.Error(); err != nil {
		return nil, errFactory.Wrap(ErrConnectFailed, err)
	}

	return &RealConn{client: client}, nil
}

func (c *RealConn) Publish(topic string, qos byte, retained bool, payload []byte) error {
	errFactory := errors.New()

	token := c.client.Publish(topic, qos, retained, payload)
	if !token.WaitTimeout(opTimeout) {
		return errFactory.WithData(ErrPublishTimeout, topic)
	}
	if err := token.Error(); err != nil {
		return errFactory.Wrap(ErrPublishFailed, err)
	}

	return nil
}

func (c *RealConn) Subscribe(topic string, handler MessageHandler) error {
	errFactory := errors.New()

	token := c.client.Subscribe(topic, 0, func(_ paho.Client, msg paho.Message) {
		handler(msg.Topic(), msg.Payload())
	})
	if !token.WaitTimeout(opTimeout) {
		return errFactory.WithData(ErrSubscribeTimeout, topic)
	}
	if err := token.Error(); err != nil {
		return errFactory.Wrap(ErrSubscribeFailed, err)
	}

	return nil
}

func (c *RealConn) Close() error {
	c.client.Disconnect(1000) // milliseconds to flush in-flight messages

	return nil
}
