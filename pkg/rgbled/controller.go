// Package rgbled drives a WS2812B LED controller peripheral mapped on a Wishbone bus.
//
// The peripheral exposes four byte-wide registers starting at its base address:
// green, red and blue channel registers followed by a status register whose bit 0
// reports that the controller is still shifting data out to the LED.
package rgbled

import (
	"fmt"

	"github.com/papilio-community/papilio-rgbled/pkg/wishbone"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// DefaultBaseAddress is where the controller is mapped on a stock Papilio bitstream.
const DefaultBaseAddress uint16 = 0x2000

// Register offsets relative to the base address.
const (
	RegGreen uint16 = 0x00
	RegRed   uint16 = 0x01
	RegBlue  uint16 = 0x02
	RegCtrl  uint16 = 0x03
)

const ctrlBusy uint8 = 0x01

var colorChangeCount = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "papilio_rgbled",
	Name:      "color_change_count",
	Help:      "Number of colors written to the LED controller, by base address",
}, []string{"base"})

// Controller drives one LED controller peripheral. It keeps no state beyond its base
// address: every call is an independent set of bus transactions.
type Controller struct {
	bus         wishbone.Bus
	baseAddress uint16
}

// Option configures a Controller.
type Option func(*Controller)

// WithBaseAddress maps the controller at a non-default base address.
func WithBaseAddress(addr uint16) Option {
	return func(c *Controller) {
		c.baseAddress = addr
	}
}

// New creates a controller on the given bus. No bus traffic is generated.
func New(bus wishbone.Bus, opts ...Option) *Controller {
	c := &Controller{
		bus:         bus,
		baseAddress: DefaultBaseAddress,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Begin exists for symmetry with other peripheral drivers and always succeeds.
// The bus transport must be ready before the controller is used.
func (c *Controller) Begin() bool {
	return true
}

// SetColor writes the color to the channel registers, green first, then red, then blue.
// Each write is a separate bus transaction.
func (c *Controller) SetColor(color Color) {
	c.bus.Write8(c.baseAddress+RegGreen, color.Green())
	c.bus.Write8(c.baseAddress+RegRed, color.Red())
	c.bus.Write8(c.baseAddress+RegBlue, color.Blue())

	colorChangeCount.WithLabelValues(fmt.Sprintf("0x%04x", c.baseAddress)).Inc()
}

// SetColorRGB sets the color from independent channel values.
func (c *Controller) SetColorRGB(red, green, blue uint8) {
	c.SetColor(ColorFromRGB(red, green, blue))
}

// IsBusy reports bit 0 of the status register. Other bits are ignored.
func (c *Controller) IsBusy() bool {
	return c.bus.Read8(c.baseAddress+RegCtrl)&ctrlBusy != 0
}

// BaseAddress returns the address of the green channel register.
func (c *Controller) BaseAddress() uint16 {
	return c.baseAddress
}
