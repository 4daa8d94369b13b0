package mqtt

import "sync"

// Message is one published message recorded by the fake.
type Message struct {
	Topic    string
	QoS      byte
	Retained bool
	Payload  []byte
}

// FakeConn is an in-memory Conn for tests: it records every publish and
// delivers injected messages to subscribed handlers.
type FakeConn struct {
	mu        sync.Mutex
	published []Message
	handlers  map[string]MessageHandler
	closed    bool
}

func NewFakeConn() *FakeConn {
	return &FakeConn{
		handlers: make(map[string]MessageHandler),
	}
}

func (c *FakeConn) Publish(topic string, qos byte, retained bool, payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	buf := make([]byte, len(payload))
	copy(buf, payload)
	c.published = append(c.published, Message{
		Topic:    topic,
		QoS:      qos,
		Retained: retained,
		Payload:  buf,
	})

	return nil
}

func (c *FakeConn) Subscribe(topic string, handler MessageHandler) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.handlers[topic] = handler

	return nil
}

func (c *FakeConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true

	return nil
}

// Inject delivers a message to the handler subscribed to topic, as if it
// arrived from the broker. Delivery is synchronous.
func (c *FakeConn) Inject(topic string, payload []byte) {
	c.mu.Lock()
	handler := c.handlers[topic]
	c.mu.Unlock()

	if handler != nil {
		handler(topic, payload)
	}
}

// Published returns all recorded messages, optionally filtered by topic.
func (c *FakeConn) Published(topic string) []Message {
	c.mu.Lock()
	defer c.mu.Unlock()

	if topic == "" {
		out := make([]Message, len(c.published))
		copy(out, c.published)
		return out
	}

	var out []Message
	for _, m := range c.published {
		if m.Topic == topic {
			out = append(out, m)
		}
	}

	return out
}

// Closed reports whether Close was called.
func (c *FakeConn) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.closed
}
