package wishbone

import (
	"errors"
	"io"
	"sync"
	"time"

	"github.com/sierrasoftworks/humane-errors-go"
	"go.bug.st/serial"
)

// ErrNoResponse is recorded when the serial bridge does not answer a read in time.
var ErrNoResponse = errors.New("no response from bridge")

// SerialBus bridges Wishbone transactions over a UART.
// It uses the same 4-byte frames as SPIBus; reads are answered with a single byte.
type SerialBus struct {
	errorTracker

	mu   sync.Mutex
	port io.ReadWriter
}

// inputResetter is implemented by serial.Port.
type inputResetter interface {
	ResetInputBuffer() error
}

var (
	_ Bus           = &SerialBus{}
	_ ErrorReporter = &SerialBus{}
)

// NewSerialBus creates a bridge on an open port. A port whose Read returns (0, nil)
// is treated as having timed out.
func NewSerialBus(port io.ReadWriter, opts ...Option) *SerialBus {
	o := buildOptions(opts)
	return &SerialBus{
		errorTracker: errorTracker{transport: "serial", logger: o.logger},
		port:         port,
	}
}

// OpenSerialPort opens a UART for use with NewSerialBus.
func OpenSerialPort(name string, baud int, readTimeout time.Duration) (serial.Port, humane.Error) {
	port, err := serial.Open(name, &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	})
	if err != nil {
		return nil, humane.Wrap(err, "failed to open serial port",
			"ensure the configured serial-port exists and the bridge is connected",
			"ensure the current user is allowed to access the port (e.g. member of the dialout group)",
		)
	}

	if err := port.SetReadTimeout(readTimeout); err != nil {
		_ = port.Close()
		return nil, humane.Wrap(err, "failed to set serial read timeout",
			"this should never happen, please report this as a bug",
		)
	}

	return port, nil
}

func (b *SerialBus) Write8(addr uint16, value uint8) {
	b.mu.Lock()
	defer b.mu.Unlock()

	frame := encodeFrame(cmdWrite, addr, value)
	_, err := b.port.Write(frame[:])
	b.record(OpWrite, addr, err)
}

func (b *SerialBus) Read8(addr uint16) uint8 {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.discardInput(); err != nil {
		b.record(OpRead, addr, err)
		return 0
	}

	frame := encodeFrame(cmdRead, addr, 0)
	if _, err := b.port.Write(frame[:]); err != nil {
		b.record(OpRead, addr, err)
		return 0
	}

	var rx [1]byte
	n, err := b.port.Read(rx[:])
	if err == nil && n == 0 {
		err = ErrNoResponse
	}
	if err != nil {
		b.record(OpRead, addr, err)
		return 0
	}
	return rx[0]
}

// discardInput drops bytes left in the receive buffer, such as a reply that
// arrived after an earlier read timed out.
func (b *SerialBus) discardInput() error {
	if r, ok := b.port.(inputResetter); ok {
		return r.ResetInputBuffer()
	}

	var buf [16]byte
	for {
		n, err := b.port.Read(buf[:])
		if err != nil || n == 0 {
			return err
		}
	}
}
