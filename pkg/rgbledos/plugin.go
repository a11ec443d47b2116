package rgbledos

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/papilio-community/papilio-rgbled/pkg/log"
	"github.com/papilio-community/papilio-rgbled/pkg/rgbled"
	"github.com/sierrasoftworks/humane-errors-go"
	"go.uber.org/zap"
)

// Module is the shell module name the plugin registers its commands under.
const Module = "rgbled"

// Plugin exposes an LED controller as shell commands.
type Plugin struct {
	led       *rgbled.Controller
	input     LineSource
	stepDelay time.Duration
	handlers  map[string]Handler
}

// PluginOption configures a Plugin.
type PluginOption func(*Plugin)

// WithLineSource sets where the tutorial reads operator input from.
func WithLineSource(source LineSource) PluginOption {
	return func(p *Plugin) {
		p.input = source
	}
}

// WithStepDelay sets the pause between tutorial steps.
func WithStepDelay(d time.Duration) PluginOption {
	return func(p *Plugin) {
		p.stepDelay = d
	}
}

// NewPlugin creates a plugin for the controller. A nil controller is allowed: commands
// that need the device then report that it is not initialized.
func NewPlugin(led *rgbled.Controller, opts ...PluginOption) *Plugin {
	p := &Plugin{
		led:       led,
		stepDelay: time.Second,
	}
	for _, opt := range opts {
		opt(p)
	}

	p.handlers = map[string]Handler{
		"status":   p.Status,
		"setcolor": p.SetColor,
		"setrgb":   p.SetRGB,
		"help":     p.Help,
		"tutorial": p.Tutorial,
	}
	return p
}

// Register adds the plugin's commands to the registry.
func (p *Plugin) Register(reg *Registry) {
	reg.Register(Module, "tutorial", p.Tutorial, "Interactive RGB LED tutorial")
	reg.Register(Module, "help", p.Help, "Show all rgbled commands")
	reg.Register(Module, "status", p.Status, "Show RGB LED controller status")
	reg.Register(Module, "setcolor", p.SetColor, "Set LED color (GRB hex): rgbled setcolor 0x190000")
	reg.Register(Module, "setrgb", p.SetRGB, "Set LED color (R G B): rgbled setrgb 25 0 0")
}

func (p *Plugin) deviceReady(out io.Writer) bool {
	if p.led == nil {
		fmt.Fprintln(out, "Error: RGB LED device not initialized")
		return false
	}
	return true
}

// Status prints the controller's base address and busy flag.
func (p *Plugin) Status(_ context.Context, out io.Writer, _ []string) {
	if !p.deviceReady(out) {
		return
	}

	fmt.Fprintf(out, "RGB LED Controller at address 0x%x\n", p.led.BaseAddress())
	fmt.Fprintf(out, "Busy: %s\n", yesNo(p.led.IsBusy()))
}

// SetColor sets the LED from a packed GRB hex value or a color name.
func (p *Plugin) SetColor(ctx context.Context, out io.Writer, args []string) {
	if !p.deviceReady(out) {
		return
	}

	if len(args) < 1 {
		fmt.Fprintln(out, "Usage: rgbled setcolor <hex_color>")
		fmt.Fprintln(out, "Example: rgbled setcolor 0x190000 (green)")
		return
	}

	color, err := ResolveColor(args[0])
	if err != nil {
		printError(out, err)
		return
	}

	log.FromContext(ctx).Debug("setting LED color", zap.Stringer("color", color))
	p.led.SetColor(color)
	fmt.Fprintf(out, "LED color set to %s\n", color)
}

// SetRGB sets the LED from decimal red, green and blue channel values.
func (p *Plugin) SetRGB(ctx context.Context, out io.Writer, args []string) {
	if !p.deviceReady(out) {
		return
	}

	if len(args) < 3 {
		fmt.Fprintln(out, "Usage: rgbled setrgb <red> <green> <blue>")
		fmt.Fprintln(out, "Example: rgbled setrgb 25 0 0 (red)")
		return
	}

	var channels [3]uint8
	for i, name := range []string{"red", "green", "blue"} {
		value, err := ParseChannel(name, args[i])
		if err != nil {
			printError(out, err)
			return
		}
		channels[i] = value
	}

	red, green, blue := channels[0], channels[1], channels[2]
	log.FromContext(ctx).Debug("setting LED color",
		zap.Uint8("red", red),
		zap.Uint8("green", green),
		zap.Uint8("blue", blue),
	)
	p.led.SetColorRGB(red, green, blue)
	fmt.Fprintf(out, "LED color set to RGB(%d, %d, %d)\n", red, green, blue)
}

// Help prints the command summary and a table of common colors.
func (p *Plugin) Help(_ context.Context, out io.Writer, _ []string) {
	fmt.Fprintln(out, "\nRGB LED Commands:")
	fmt.Fprintln(out, "  rgbled tutorial        - Interactive tutorial")
	fmt.Fprintln(out, "  rgbled status          - Show controller status")
	fmt.Fprintln(out, "  rgbled setcolor <hex>  - Set color (GRB format, e.g., 0x190000 for green)")
	fmt.Fprintln(out, "  rgbled setrgb <R> <G> <B> - Set color (R/G/B 0-255)")
	fmt.Fprintln(out, "\nColor format: GRB (Green-Red-Blue) for WS2812B LEDs")
	fmt.Fprintln(out, "Common colors:")
	for _, nc := range rgbled.NamedColors() {
		if nc.Color == rgbled.ColorOff {
			continue
		}
		r, g, b := nc.Color.RGB()
		fmt.Fprintf(out, "  %-8s %-22s or  rgbled setcolor %s\n",
			capitalize(nc.Name)+":",
			fmt.Sprintf("rgbled setrgb %d %d %d", r, g, b),
			nc.Color,
		)
	}
}

// Tutorial runs the interactive walkthrough against the plugin's line source.
func (p *Plugin) Tutorial(ctx context.Context, out io.Writer, _ []string) {
	if p.input == nil {
		fmt.Fprintln(out, "Error: tutorial needs an interactive console")
		return
	}

	t := NewTutorial(p.input, p.execute, TutorialOptions{
		StepDelay:         p.stepDelay,
		DeviceInitialized: p.led != nil,
	})
	if err := t.Run(ctx, out); err != nil {
		log.FromContext(ctx).Warn("tutorial aborted", zap.Error(err))
	}
}

// execute runs a full "rgbled <command> ..." line against the plugin's own handlers.
func (p *Plugin) execute(ctx context.Context, out io.Writer, argv []string) {
	if len(argv) < 2 || argv[0] != Module {
		return
	}
	if handler, ok := p.handlers[argv[1]]; ok {
		handler(ctx, out, argv[2:])
	}
}

// ParseChannel parses a decimal channel value. Values outside 0-255 are rejected.
func ParseChannel(name, s string) (uint8, humane.Error) {
	value, err := strconv.ParseUint(s, 10, 8)
	if err != nil {
		return 0, humane.Wrap(err, fmt.Sprintf("invalid %s value %q", name, s),
			"channel values are decimal numbers between 0 and 255",
		)
	}
	return uint8(value), nil
}

// ResolveColor accepts a color name or a packed GRB hex value.
func ResolveColor(s string) (rgbled.Color, humane.Error) {
	if color, ok := rgbled.LookupColor(s); ok {
		return color, nil
	}
	return rgbled.ParseColor(s)
}

func printError(out io.Writer, err humane.Error) {
	fmt.Fprintf(out, "Error: %s\n", err.Error())
	for _, advice := range err.Advice() {
		fmt.Fprintf(out, "  - %s\n", advice)
	}
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
