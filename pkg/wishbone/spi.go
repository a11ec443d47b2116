package wishbone

import (
	"sync"

	"tinygo.org/x/drivers"
)

// SPIBus bridges Wishbone transactions over an SPI link.
//
// Every transaction is one 4-byte full-duplex transfer. For reads the byte clocked back
// in the data slot holds the register value.
type SPIBus struct {
	errorTracker

	mu  sync.Mutex
	spi drivers.SPI
}

var (
	_ Bus           = &SPIBus{}
	_ ErrorReporter = &SPIBus{}
)

// NewSPIBus creates a bridge on an already configured SPI connection.
func NewSPIBus(spi drivers.SPI, opts ...Option) *SPIBus {
	o := buildOptions(opts)
	return &SPIBus{
		errorTracker: errorTracker{transport: "spi", logger: o.logger},
		spi:          spi,
	}
}

func (b *SPIBus) Write8(addr uint16, value uint8) {
	tx := encodeFrame(cmdWrite, addr, value)
	b.record(OpWrite, addr, b.transfer(tx[:], nil))
}

func (b *SPIBus) Read8(addr uint16) uint8 {
	tx := encodeFrame(cmdRead, addr, 0)
	var rx [frameSize]byte
	if err := b.transfer(tx[:], rx[:]); err != nil {
		b.record(OpRead, addr, err)
		return 0
	}
	return rx[frameSize-1]
}

func (b *SPIBus) transfer(w, r []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.spi.Tx(w, r)
}
