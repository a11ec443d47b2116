package rgbled

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sierrasoftworks/humane-errors-go"
)

// Color is a 24-bit color packed in WS2812B wire order: green in bits 16-23,
// red in bits 8-15 and blue in bits 0-7. Bits above 23 are ignored.
type Color uint32

// Common colors, dimmed to roughly 10% brightness.
const (
	ColorOff     Color = 0x000000
	ColorRed     Color = 0x001900
	ColorGreen   Color = 0x190000
	ColorBlue    Color = 0x000019
	ColorYellow  Color = 0x191900
	ColorCyan    Color = 0x190019
	ColorMagenta Color = 0x001919
	ColorWhite   Color = 0x191919
	ColorOrange  Color = 0x0C1900
	ColorPurple  Color = 0x000C0C
)

// MaxColor is the largest packed color value.
const MaxColor Color = 0xFFFFFF

// ColorFromRGB packs independent channel values into GRB order.
func ColorFromRGB(red, green, blue uint8) Color {
	return Color(uint32(green)<<16 | uint32(red)<<8 | uint32(blue))
}

func (c Color) Green() uint8 { return uint8(c >> 16) }
func (c Color) Red() uint8 { return uint8(c >> 8) }
func (c Color) Blue() uint8 { return uint8(c) }

// RGB returns the channel values in conventional red, green, blue order.
func (c Color) RGB() (red, green, blue uint8) {
	return c.Red(), c.Green(), c.Blue()
}

func (c Color) String() string {
	return fmt.Sprintf("0x%06x", uint32(c&MaxColor))
}

// NamedColor pairs a color constant with its name.
type NamedColor struct {
	Name  string
	Color Color
}

var namedColors = []NamedColor{
	{"off", ColorOff},
	{"red", ColorRed},
	{"green", ColorGreen},
	{"blue", ColorBlue},
	{"yellow", ColorYellow},
	{"cyan", ColorCyan},
	{"magenta", ColorMagenta},
	{"white", ColorWhite},
	{"orange", ColorOrange},
	{"purple", ColorPurple},
}

// NamedColors returns the named color constants in a stable order.
func NamedColors() []NamedColor {
	return append([]NamedColor(nil), namedColors...)
}

// LookupColor resolves a color name case-insensitively.
func LookupColor(name string) (Color, bool) {
	for _, nc := range namedColors {
		if strings.EqualFold(nc.Name, strings.TrimSpace(name)) {
			return nc.Color, true
		}
	}
	return 0, false
}

// ParseColor parses a packed GRB color written in hex, with an optional 0x or # prefix.
func ParseColor(s string) (Color, humane.Error) {
	digits := strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(digits, "0x"), strings.HasPrefix(digits, "0X"):
		digits = digits[2:]
	case strings.HasPrefix(digits, "#"):
		digits = digits[1:]
	}

	value, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		return 0, humane.Wrap(err, fmt.Sprintf("invalid color %q", s),
			"colors are hex values in GRB order, e.g. 0x190000 for green",
		)
	}

	if Color(value) > MaxColor {
		return 0, humane.New(fmt.Sprintf("color %q does not fit in 24 bits", s),
			"use at most six hex digits: two each for green, red and blue",
		)
	}

	return Color(value), nil
}
