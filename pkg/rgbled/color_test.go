package rgbled_test

import (
	"testing"

	"github.com/papilio-community/papilio-rgbled/pkg/rgbled"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNamedColors_BrightnessLimited(t *testing.T) {
	t.Parallel()

	colors := rgbled.NamedColors()
	require.Len(t, colors, 10)

	for _, nc := range colors {
		r, g, b := nc.Color.RGB()
		assert.LessOrEqual(t, r, uint8(25), nc.Name)
		assert.LessOrEqual(t, g, uint8(25), nc.Name)
		assert.LessOrEqual(t, b, uint8(25), nc.Name)

		if nc.Color == rgbled.ColorOff {
			assert.Equal(t, "off", nc.Name)
		} else {
			assert.NotZero(t, uint32(nc.Color), nc.Name)
		}
	}
}

func TestColor_Channels(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		color          rgbled.Color
		red, green, bl uint8
	}{
		{rgbled.ColorRed, 0x19, 0x00, 0x00},
		{rgbled.ColorGreen, 0x00, 0x19, 0x00},
		{rgbled.ColorBlue, 0x00, 0x00, 0x19},
		{rgbled.ColorOrange, 0x19, 0x0C, 0x00},
		{rgbled.ColorPurple, 0x0C, 0x00, 0x0C},
	}

	for _, tc := range testCases {
		r, g, b := tc.color.RGB()
		assert.Equal(t, tc.red, r, tc.color.String())
		assert.Equal(t, tc.green, g, tc.color.String())
		assert.Equal(t, tc.bl, b, tc.color.String())
		assert.Equal(t, tc.color, rgbled.ColorFromRGB(r, g, b))
	}
}

func TestColor_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "0x190000", rgbled.ColorGreen.String())
	assert.Equal(t, "0x000000", rgbled.ColorOff.String())
	assert.Equal(t, "0x010203", rgbled.Color(0xFF010203).String())
}

func TestLookupColor(t *testing.T) {
	t.Parallel()

	c, ok := rgbled.LookupColor("Cyan")
	assert.True(t, ok)
	assert.Equal(t, rgbled.ColorCyan, c)

	_, ok = rgbled.LookupColor("chartreuse")
	assert.False(t, ok)
}

func TestParseColor(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		input    string
		expected rgbled.Color
		errMsg   string
	}{
		{input: "0x190000", expected: rgbled.ColorGreen},
		{input: "0X001900", expected: rgbled.ColorRed},
		{input: "#000019", expected: rgbled.ColorBlue},
		{input: "190019", expected: rgbled.ColorCyan},
		{input: "ffffff", expected: 0xFFFFFF},
		{input: "0", expected: rgbled.ColorOff},
		{input: "0x1000000", errMsg: `color "0x1000000" does not fit in 24 bits`},
		{input: "green", errMsg: `invalid color "green"`},
		{input: "", errMsg: `invalid color ""`},
		{input: "0x", errMsg: `invalid color "0x"`},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.input, func(t *testing.T) {
			t.Parallel()

			c, err := rgbled.ParseColor(tc.input)
			if tc.errMsg != "" {
				require.NotNil(t, err)
				assert.Contains(t, err.Error(), tc.errMsg)
				return
			}
			require.Nil(t, err)
			assert.Equal(t, tc.expected, c)
		})
	}
}
