package rgbledos_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/papilio-community/papilio-rgbled/pkg/rgbled"
	"github.com/papilio-community/papilio-rgbled/pkg/rgbledos"
	"github.com/papilio-community/papilio-rgbled/pkg/wishbone"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestShell(t *testing.T) (*rgbledos.Registry, *wishbone.Memory) {
	t.Helper()

	mem := wishbone.NewMemory()
	reg := rgbledos.NewRegistry()
	rgbledos.NewPlugin(rgbled.New(mem), rgbledos.WithStepDelay(0)).Register(reg)
	return reg, mem
}

func run(t *testing.T, reg *rgbledos.Registry, line string) string {
	t.Helper()

	var out bytes.Buffer
	require.NoError(t, reg.Dispatch(context.Background(), &out, line))
	return out.String()
}

func TestPlugin_RegistersCommands(t *testing.T) {
	t.Parallel()

	reg, _ := newTestShell(t)

	var names []string
	for _, cmd := range reg.Commands() {
		assert.Equal(t, rgbledos.Module, cmd.Module)
		assert.NotEmpty(t, cmd.Description)
		names = append(names, cmd.Name)
	}
	assert.Equal(t, []string{"help", "setcolor", "setrgb", "status", "tutorial"}, names)
}

func TestPlugin_Status(t *testing.T) {
	t.Parallel()

	reg, mem := newTestShell(t)

	assert.Equal(t, "RGB LED Controller at address 0x2000\nBusy: No\n", run(t, reg, "rgbled status"))

	mem.Poke(0x2003, 0x01)
	assert.Equal(t, "RGB LED Controller at address 0x2000\nBusy: Yes\n", run(t, reg, "rgbled status"))
}

func TestPlugin_SetColor(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		line     string
		output   string
		expected []wishbone.Transaction
	}{
		{
			name:   "hex",
			line:   "rgbled setcolor 0x190000",
			output: "LED color set to 0x190000\n",
			expected: []wishbone.Transaction{
				wishbone.Write(0x2000, 0x19), wishbone.Write(0x2001, 0x00), wishbone.Write(0x2002, 0x00),
			},
		},
		{
			name:   "name",
			line:   "rgbled setcolor magenta",
			output: "LED color set to 0x001919\n",
			expected: []wishbone.Transaction{
				wishbone.Write(0x2000, 0x00), wishbone.Write(0x2001, 0x19), wishbone.Write(0x2002, 0x19),
			},
		},
		{
			name:   "missing argument",
			line:   "rgbled setcolor",
			output: "Usage: rgbled setcolor <hex_color>\nExample: rgbled setcolor 0x190000 (green)\n",
		},
		{
			name:   "too wide",
			line:   "rgbled setcolor 0x1000000",
			output: "Error: color \"0x1000000\" does not fit in 24 bits\n  - use at most six hex digits: two each for green, red and blue\n",
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			reg, mem := newTestShell(t)
			assert.Equal(t, tc.output, run(t, reg, tc.line))
			assert.Equal(t, tc.expected, mem.Transactions())
		})
	}
}

func TestPlugin_SetColorRejectsGarbage(t *testing.T) {
	t.Parallel()

	reg, mem := newTestShell(t)
	out := run(t, reg, "rgbled setcolor zz")

	assert.Contains(t, out, `Error: invalid color "zz"`)
	assert.Empty(t, mem.Transactions())
}

func TestPlugin_SetRGB(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		line     string
		output   string
		expected []wishbone.Transaction
	}{
		{
			name:   "red",
			line:   "rgbled setrgb 25 0 0",
			output: "LED color set to RGB(25, 0, 0)\n",
			expected: []wishbone.Transaction{
				wishbone.Write(0x2000, 0x00), wishbone.Write(0x2001, 0x19), wishbone.Write(0x2002, 0x00),
			},
		},
		{
			name:   "bounds",
			line:   "rgbled setrgb 255 0 255",
			output: "LED color set to RGB(255, 0, 255)\n",
			expected: []wishbone.Transaction{
				wishbone.Write(0x2000, 0x00), wishbone.Write(0x2001, 0xFF), wishbone.Write(0x2002, 0xFF),
			},
		},
		{
			name:   "missing arguments",
			line:   "rgbled setrgb 25 0",
			output: "Usage: rgbled setrgb <red> <green> <blue>\nExample: rgbled setrgb 25 0 0 (red)\n",
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			reg, mem := newTestShell(t)
			assert.Equal(t, tc.output, run(t, reg, tc.line))
			assert.Equal(t, tc.expected, mem.Transactions())
		})
	}
}

func TestPlugin_SetRGBRejectsOutOfRange(t *testing.T) {
	t.Parallel()

	for _, line := range []string{"rgbled setrgb 300 0 0", "rgbled setrgb 0 -1 0", "rgbled setrgb 0 0 blue"} {
		reg, mem := newTestShell(t)
		out := run(t, reg, line)

		assert.Contains(t, out, "Error: invalid", line)
		assert.Contains(t, out, "between 0 and 255", line)
		assert.Empty(t, mem.Transactions(), "out-of-range values must not reach the bus: %s", line)
	}
}

func TestPlugin_DeviceNotInitialized(t *testing.T) {
	t.Parallel()

	reg := rgbledos.NewRegistry()
	rgbledos.NewPlugin(nil).Register(reg)

	for _, line := range []string{"rgbled status", "rgbled setcolor 0x190000", "rgbled setrgb 1 2 3"} {
		assert.Equal(t, "Error: RGB LED device not initialized\n", run(t, reg, line), line)
	}
}

func TestPlugin_Help(t *testing.T) {
	t.Parallel()

	reg, mem := newTestShell(t)
	out := run(t, reg, "rgbled help")

	assert.Contains(t, out, "RGB LED Commands:")
	assert.Contains(t, out, "Color format: GRB (Green-Red-Blue) for WS2812B LEDs")
	assert.Contains(t, out, "rgbled setrgb 25 0 0")
	assert.Contains(t, out, "rgbled setcolor 0x190019")
	assert.Empty(t, mem.Transactions())
}
