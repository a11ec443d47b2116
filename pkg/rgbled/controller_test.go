package rgbled_test

import (
	"testing"

	"github.com/papilio-community/papilio-rgbled/pkg/rgbled"
	"github.com/papilio-community/papilio-rgbled/pkg/wishbone"
	"github.com/stretchr/testify/assert"
)

func TestController_New(t *testing.T) {
	t.Parallel()

	mem := wishbone.NewMemory()

	led := rgbled.New(mem)
	assert.Equal(t, rgbled.DefaultBaseAddress, led.BaseAddress())

	led = rgbled.New(mem, rgbled.WithBaseAddress(0x4000))
	assert.Equal(t, uint16(0x4000), led.BaseAddress())

	assert.Empty(t, mem.Transactions(), "construction must not touch the bus")
}

func TestController_Begin(t *testing.T) {
	t.Parallel()

	mem := wishbone.NewMemory()
	led := rgbled.New(mem)

	assert.True(t, led.Begin())
	assert.Empty(t, mem.Transactions(), "Begin must not touch the bus")
}

func TestController_SetColor(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name  string
		base  uint16
		color rgbled.Color
	}{
		{"green", 0x2000, rgbled.ColorGreen},
		{"off", 0x2000, rgbled.ColorOff},
		{"full white", 0x2000, 0xFFFFFF},
		{"mixed channels", 0x1234, 0xA1B2C3},
		{"upper byte ignored", 0x2000, 0xFF010203},
		{"top of address space", 0xFFF0, rgbled.ColorPurple},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			mem := wishbone.NewMemory()
			led := rgbled.New(mem, rgbled.WithBaseAddress(tc.base))
			led.SetColor(tc.color)

			c := uint32(tc.color)
			assert.Equal(t, []wishbone.Transaction{
				wishbone.Write(tc.base+0, uint8((c>>16)&0xFF)),
				wishbone.Write(tc.base+1, uint8((c>>8)&0xFF)),
				wishbone.Write(tc.base+2, uint8(c&0xFF)),
			}, mem.Transactions())
		})
	}
}

func TestController_SetColorEndToEnd(t *testing.T) {
	t.Parallel()

	mem := wishbone.NewMemory()
	led := rgbled.New(mem)

	led.SetColor(0x190000)
	assert.Equal(t, []wishbone.Transaction{
		wishbone.Write(0x2000, 0x19),
		wishbone.Write(0x2001, 0x00),
		wishbone.Write(0x2002, 0x00),
	}, mem.Transactions())
	assert.Equal(t, rgbled.ColorGreen, rgbled.Color(0x190000))

	mem.Reset()
	led.SetColorRGB(25, 0, 0)
	assert.Equal(t, []wishbone.Transaction{
		wishbone.Write(0x2000, 0x00),
		wishbone.Write(0x2001, 0x19),
		wishbone.Write(0x2002, 0x00),
	}, mem.Transactions())
}

func TestController_SetColorRGBMatchesSetColor(t *testing.T) {
	t.Parallel()

	values := []uint8{0, 1, 0x19, 0x7F, 0x80, 0xFE, 0xFF}
	for _, r := range values {
		for _, g := range values {
			for _, b := range values {
				viaRGB := wishbone.NewMemory()
				rgbled.New(viaRGB).SetColorRGB(r, g, b)

				viaPacked := wishbone.NewMemory()
				rgbled.New(viaPacked).SetColor(rgbled.Color(uint32(g)<<16 | uint32(r)<<8 | uint32(b)))

				assert.Equal(t, viaPacked.Transactions(), viaRGB.Transactions(), "rgb(%d, %d, %d)", r, g, b)
			}
		}
	}
}

func TestController_IsBusy(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		status   uint8
		expected bool
	}{
		{0x00, false},
		{0x01, true},
		{0x02, false},
		{0x03, true},
		{0xFE, false},
		{0xFF, true},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run("", func(t *testing.T) {
			t.Parallel()

			mem := wishbone.NewMemory()
			mem.Poke(0x2003, tc.status)
			led := rgbled.New(mem)

			assert.Equal(t, tc.expected, led.IsBusy(), "status 0x%02x", tc.status)
			assert.Equal(t, []wishbone.Transaction{wishbone.Read(0x2003, tc.status)}, mem.Transactions())
		})
	}
}

func TestController_HoldsNoColorState(t *testing.T) {
	t.Parallel()

	mem := wishbone.NewMemory()
	led := rgbled.New(mem)

	led.SetColor(rgbled.ColorCyan)
	led.SetColor(rgbled.ColorCyan)

	assert.Len(t, mem.Transactions(), 6, "identical colors must still be written")
}
