package wishbone

import (
	"errors"

	"github.com/sierrasoftworks/humane-errors-go"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
	"tinygo.org/x/drivers"
)

// PeriphSPI adapts a periph.io SPI connection to the drivers.SPI interface.
type PeriphSPI struct {
	port spi.PortCloser
	conn spi.Conn
}

var _ drivers.SPI = &PeriphSPI{}

// OpenPeriphSPI initializes the host drivers and opens an SPI port by name
// ("" selects the first available port) at the given clock rate in Hz.
func OpenPeriphSPI(name string, hz int64) (*PeriphSPI, humane.Error) {
	if _, err := host.Init(); err != nil {
		return nil, humane.Wrap(err, "failed to initialize host drivers",
			"ensure you are running on a supported single board computer",
		)
	}

	port, err := spireg.Open(name)
	if err != nil {
		return nil, humane.Wrap(err, "failed to open SPI port",
			"ensure SPI is enabled on the host (e.g. dtparam=spi=on)",
			"check that the configured spi-port exists, list ports with 'ls /dev/spidev*'",
		)
	}

	conn, err := port.Connect(physic.Frequency(hz)*physic.Hertz, spi.Mode0, 8)
	if err != nil {
		_ = port.Close()
		return nil, humane.Wrap(err, "failed to configure SPI port",
			"ensure the configured spi-hz is supported by the SPI controller",
		)
	}

	return &PeriphSPI{port: port, conn: conn}, nil
}

func (p *PeriphSPI) Tx(w, r []byte) error {
	return p.conn.Tx(w, r)
}

func (p *PeriphSPI) Transfer(b byte) (byte, error) {
	var rx [1]byte
	if err := p.conn.Tx([]byte{b}, rx[:]); err != nil {
		return 0, err
	}
	return rx[0], nil
}

func (p *PeriphSPI) Close() error {
	if p.port == nil {
		return errors.New("spi port not open")
	}
	return p.port.Close()
}
