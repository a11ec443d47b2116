//go:build !linux || tinygo

package wishbone

import (
	"context"
	"errors"

	"github.com/sierrasoftworks/humane-errors-go"
)

// DevMemBus is only available on linux.
type DevMemBus struct{}

var _ Bus = &DevMemBus{}

func OpenDevMemBus(context.Context, int64) (*DevMemBus, humane.Error) {
	return nil, humane.Wrap(errors.ErrUnsupported, "the devmem transport is only supported on linux",
		"use the serial or spi transport instead",
	)
}

func (d *DevMemBus) Write8(uint16, uint8) {}

func (d *DevMemBus) Read8(uint16) uint8 { return 0 }

func (d *DevMemBus) Close() error { return nil }
