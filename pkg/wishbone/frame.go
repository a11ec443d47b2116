package wishbone

// Bridge commands shared by the SPI and serial bridges.
const (
	cmdWrite byte = 0x01
	cmdRead  byte = 0x02

	frameSize = 4
)

// encodeFrame builds a bridge frame: command, address high byte, address low byte, data.
func encodeFrame(cmd byte, addr uint16, data uint8) [frameSize]byte {
	return [frameSize]byte{cmd, byte(addr >> 8), byte(addr), data}
}
