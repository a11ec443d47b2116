//go:build linux && !tinygo

package wishbone

import (
	"context"
	"errors"
	"fmt"
	"os"
	"syscall"

	"github.com/papilio-community/papilio-rgbled/pkg/log"
	"github.com/sierrasoftworks/humane-errors-go"
	"go.uber.org/zap"
)

// devMemWindow is the size of the mapped bridge window: the full 16-bit Wishbone address space.
const devMemWindow = 1 << 16

// DevMemBus accesses a Wishbone bridge that is mapped into the host's physical address
// space (e.g. an FPGA fabric behind an AXI-to-Wishbone bridge) through /dev/mem.
type DevMemBus struct {
	devmem *os.File
	mem    []uint8
}

var _ Bus = &DevMemBus{}

// OpenDevMemBus maps the 64 KiB bridge window starting at the physical address base.
func OpenDevMemBus(ctx context.Context, base int64) (*DevMemBus, humane.Error) {
	if base%int64(os.Getpagesize()) != 0 {
		return nil, humane.New(fmt.Sprintf("bridge base 0x%x is not page aligned", base),
			"ensure devmem-base points to the start of the bridge window in the device tree",
		)
	}

	devmem, err := os.OpenFile("/dev/mem", os.O_RDWR|os.O_SYNC, os.ModePerm)
	if err != nil {
		return nil, humane.Wrap(err, "failed to open /dev/mem",
			"ensure the process is running as root or has CAP_SYS_RAWIO",
		)
	}

	mem, err := syscall.Mmap(int(devmem.Fd()), base, devMemWindow, syscall.PROT_READ|syscall.PROT_WRITE, syscall.MAP_SHARED)
	if err != nil {
		devmem.Close()
		return nil, humane.Wrap(err, fmt.Sprintf("failed to mmap bridge window at 0x%x", base),
			"ensure devmem-base is correct and the kernel allows /dev/mem access to it (CONFIG_STRICT_DEVMEM)",
		)
	}

	log.FromContext(ctx).Info("mapped wishbone bridge", zap.String("base", fmt.Sprintf("0x%x", base)))
	return &DevMemBus{devmem: devmem, mem: mem}, nil
}

func (d *DevMemBus) Write8(addr uint16, value uint8) {
	d.mem[addr] = value
}

func (d *DevMemBus) Read8(addr uint16) uint8 {
	return d.mem[addr]
}

func (d *DevMemBus) Close() error {
	return errors.Join(
		d.unmapMem(),
		d.closeDevmem(),
	)
}

func (d *DevMemBus) unmapMem() error {
	if d.mem != nil {
		err := syscall.Munmap(d.mem)
		d.mem = nil
		return err
	}
	return nil
}

func (d *DevMemBus) closeDevmem() error {
	if d.devmem != nil {
		return d.devmem.Close()
	}
	return nil
}
