package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/papilio-community/papilio-rgbled/pkg/rgbled"
	"github.com/papilio-community/papilio-rgbled/pkg/rgbledos"
	"github.com/papilio-community/papilio-rgbled/pkg/util"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(cmdStatus)
	rootCmd.AddCommand(cmdSetColor)
	rootCmd.AddCommand(cmdSetRGB)
	rootCmd.AddCommand(cmdColors)
}

var (
	cmdStatus = &cobra.Command{
		Use:     "status",
		Short:   "Show the LED controller status",
		Example: "rgbledctl status --transport serial",
		Args:    cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			dev := deviceFromContext(cmd.Context())

			busy := dev.led.IsBusy()
			busErr := dev.busError()

			bus := util.KeyValuePair{Key: "Bus", Format: "%s", Value: []any{"OK"}, Style: util.OkStyle}
			if busErr != nil {
				bus = util.KeyValuePair{Key: "Bus", Format: "%v", Value: []any{busErr.Cause()}, Style: util.CriticalStyle}
			}

			fmt.Fprintln(cmd.OutOrStdout(), util.PrintKeyValues([]util.KeyValuePair{
				{Key: "Transport", Format: "%s", Value: []any{dev.cfg.Transport}},
				{Key: "Base Address", Format: "0x%04x", Value: []any{dev.led.BaseAddress()}},
				bus,
				{Key: "Busy", Format: "%s", Value: []any{busyLabel(busy)}, Style: busyStyle},
			}))
			if busErr != nil {
				return busErr
			}
			return nil
		},
	}

	cmdSetColor = &cobra.Command{
		Use:     "setcolor <hex|name>",
		Aliases: []string{"color"},
		Short:   "Set the LED color from a packed GRB hex value or a color name",
		Example: "rgbledctl setcolor 0x190000\nrgbledctl setcolor cyan",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dev := deviceFromContext(cmd.Context())

			color, herr := rgbledos.ResolveColor(args[0])
			if herr != nil {
				return herr
			}

			dev.led.SetColor(color)
			if err := dev.busError(); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "LED color set to %s\n", color)
			return nil
		},
	}

	cmdSetRGB = &cobra.Command{
		Use:     "setrgb <red> <green> <blue>",
		Aliases: []string{"rgb"},
		Short:   "Set the LED color from decimal red, green and blue values (0-255)",
		Example: "rgbledctl setrgb 25 0 0",
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			dev := deviceFromContext(cmd.Context())

			var channels [3]uint8
			for i, name := range []string{"red", "green", "blue"} {
				value, herr := rgbledos.ParseChannel(name, args[i])
				if herr != nil {
					return herr
				}
				channels[i] = value
			}

			dev.led.SetColorRGB(channels[0], channels[1], channels[2])
			if err := dev.busError(); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "LED color set to RGB(%d, %d, %d)\n", channels[0], channels[1], channels[2])
			return nil
		},
	}

	cmdColors = &cobra.Command{
		Use:         "colors",
		Short:       "List the named colors",
		Example:     "rgbledctl colors",
		Args:        cobra.ExactArgs(0),
		Annotations: map[string]string{skipDeviceAnnotation: ""},
		RunE: func(cmd *cobra.Command, args []string) error {
			colors := rgbled.NamedColors()
			values := make([]util.KeyValuePair, len(colors))
			for idx, nc := range colors {
				r, g, b := nc.Color.RGB()
				values[idx] = util.KeyValuePair{
					Key:    nc.Name,
					Format: "%s  RGB(%d, %d, %d)",
					Value:  []any{nc.Color, r, g, b},
					Style:  swatchStyle,
				}
			}

			fmt.Fprintln(cmd.OutOrStdout(), util.PrintKeyValues(values))
			return nil
		},
	}
)

func busyLabel(busy bool) string {
	if busy {
		return "Yes"
	}
	return "No"
}

func busyStyle(a []any) lipgloss.Style {
	if label := a[0].(string); label == "Yes" {
		return lipgloss.NewStyle().Foreground(util.ColorWarning)
	}
	return util.OkStyle(a)
}

// swatchStyle renders the color at full brightness so dimmed constants stay visible.
func swatchStyle(a []any) lipgloss.Style {
	r, g, b := a[1].(uint8), a[2].(uint8), a[3].(uint8)
	if r == 0 && g == 0 && b == 0 {
		return lipgloss.NewStyle().Foreground(util.ColorUnknown)
	}
	scale := func(v uint8) uint8 { return uint8(uint16(v) * 255 / 25) }
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", scale(r), scale(g), scale(b))))
}
