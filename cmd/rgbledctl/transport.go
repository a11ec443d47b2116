package main

import (
	"context"
	"io"

	"github.com/papilio-community/papilio-rgbled/internal/config"
	"github.com/papilio-community/papilio-rgbled/pkg/log"
	"github.com/papilio-community/papilio-rgbled/pkg/rgbled"
	"github.com/papilio-community/papilio-rgbled/pkg/wishbone"
	"github.com/sierrasoftworks/humane-errors-go"
	"go.uber.org/zap"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// openBus opens the transport selected in the configuration.
func openBus(ctx context.Context, cfg config.Config) (wishbone.Bus, io.Closer, humane.Error) {
	logger := log.FromContext(ctx)
	logger.Debug("opening transport", zap.String("transport", cfg.Transport))

	switch cfg.Transport {
	case config.TransportSerial:
		port, err := wishbone.OpenSerialPort(cfg.Serial.Port, cfg.Serial.Baud, cfg.Serial.ReadTimeout)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("opened serial bridge", zap.String("port", cfg.Serial.Port), zap.Int("baud", cfg.Serial.Baud))
		return wishbone.NewSerialBus(port, wishbone.WithLogger(logger)), port, nil

	case config.TransportSPI:
		spi, err := wishbone.OpenPeriphSPI(cfg.SPI.Port, cfg.SPI.Hz)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("opened spi bridge", zap.String("port", cfg.SPI.Port), zap.Int64("hz", cfg.SPI.Hz))
		return wishbone.NewSPIBus(spi, wishbone.WithLogger(logger)), spi, nil

	case config.TransportDevMem:
		bus, err := wishbone.OpenDevMemBus(ctx, cfg.DevMem.Base)
		if err != nil {
			return nil, nil, err
		}
		return bus, bus, nil

	default:
		logger.Info("using simulated bus, no hardware is driven")
		return wishbone.NewMemory(), nopCloser{}, nil
	}
}

// openDevice opens the configured transport and creates the LED controller on it.
func openDevice(ctx context.Context, cfg config.Config) (*device, humane.Error) {
	bus, closer, err := openBus(ctx, cfg)
	if err != nil {
		return nil, err
	}

	bus = wishbone.Instrument(cfg.Transport, bus)
	led := rgbled.New(bus, rgbled.WithBaseAddress(cfg.BaseAddress))
	led.Begin()

	return &device{
		cfg:    cfg,
		bus:    bus,
		led:    led,
		closer: closer,
	}, nil
}

// busError returns the last transport failure as a humane error. A failure is
// returned once; later calls return nil until the transport fails again.
func (d *device) busError() humane.Error {
	reporter, ok := d.bus.(wishbone.ErrorReporter)
	if !ok {
		return nil
	}
	if err := reporter.Err(); err != nil && err != d.reportedErr {
		d.reportedErr = err
		return humane.Wrap(err, "bus transaction failed",
			"ensure the bridge is powered and the bitstream with the LED controller is loaded",
			"check the configured transport settings",
		)
	}
	return nil
}
