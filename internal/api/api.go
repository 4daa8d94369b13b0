// Package api exposes a read-only HTTP view of the comfort devices. It
// serves the same values the MQTT sensors publish, for dashboards that
// do not speak MQTT.
package api

import (
	"math"
	"time"

	"github.com/gofiber/fiber/v2"

	"codeberg.org/mutker/comfortd/internal/comfort"
	"codeberg.org/mutker/comfortd/internal/errors"
	"codeberg.org/mutker/comfortd/internal/sensor"
)

const shutdownTimeout = 5 * time.Second

type deviceSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Ready bool   `json:"ready"`
}

type metricState struct {
	State any    `json:"state"`
	Unit  string `json:"unit,omitempty"`
}

type deviceDetail struct {
	deviceSummary
	Inputs  map[string]float64     `json:"inputs,omitempty"`
	Metrics map[string]metricState `json:"metrics"`
}

// Server serves the read-only API for a fixed set of devices.
type Server struct {
	app     *fiber.App
	listen  string
	devices []*sensor.Device
}

func NewServer(listen string, devices []*sensor.Device) *Server {
	app := fiber.New(fiber.Config{
		AppName:               "comfortd",
		DisableStartupMessage: true,
	})

	s := &Server{
		app:     app,
		listen:  listen,
		devices: devices,
	}

	app.Get("/healthz", s.handleHealth)
	app.Get("/api/v1/devices", s.handleDevices)
	app.Get("/api/v1/devices/:id", s.handleDevice)

	return s
}

// App exposes the underlying fiber app for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Start serves until Shutdown is called.
func (s *Server) Start() error {
	if err := s.app.Listen(s.listen); err != nil {
		return errors.New().Wrap(ErrServerStart, err)
	}

	return nil
}

// Shutdown stops the server, waiting for in-flight requests.
func (s *Server) Shutdown() error {
	if err := s.app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		return errors.New().Wrap(ErrServerStop, err)
	}

	return nil
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (s *Server) handleDevices(c *fiber.Ctx) error {
	out := make([]deviceSummary, 0, len(s.devices))
	for _, d := range s.devices {
		out = append(out, summarize(d))
	}

	return c.JSON(out)
}

func (s *Server) handleDevice(c *fiber.Ctx) error {
	id := c.Params("id")
	for _, d := range s.devices {
		if d.ID() == id {
			return c.JSON(describe(d))
		}
	}

	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "unknown device"})
}

func summarize(d *sensor.Device) deviceSummary {
	return deviceSummary{
		ID:    d.ID(),
		Name:  d.Name(),
		Ready: d.Engine().Ready(),
	}
}

func describe(d *sensor.Device) deviceDetail {
	detail := deviceDetail{
		deviceSummary: summarize(d),
		Metrics:       make(map[string]metricState, len(d.Sensors())),
	}

	if detail.Ready {
		detail.Inputs = make(map[string]float64)
		for name, value := range d.Engine().StateAttributes() {
			detail.Inputs[name] = roundDisplay(value)
		}
	}

	for _, sn := range d.Sensors() {
		detail.Metrics[string(sn.Metric())] = stateOf(d.Engine(), sn.Metric())
	}

	return detail
}

// stateOf mirrors the MQTT publish format: numeric metrics rounded to two
// decimals, enum metrics as their option string, "unknown" before the
// first reading pair.
func stateOf(engine *comfort.Engine, m comfort.Metric) metricState {
	desc, _ := comfort.Describe(m)

	result, err := engine.Get(m)
	if err != nil {
		return metricState{State: "unknown", Unit: desc.Unit}
	}

	if desc.Category == comfort.CategoryEnum {
		return metricState{State: result.Perception}
	}

	return metricState{State: roundDisplay(result.Value), Unit: desc.Unit}
}

func roundDisplay(v float64) float64 {
	shift := math.Pow(10, comfort.DisplayPrecision)

	return math.Round(v*shift) / shift
}
