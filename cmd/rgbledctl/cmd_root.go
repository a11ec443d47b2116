package main

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/papilio-community/papilio-rgbled/internal/config"
	"github.com/papilio-community/papilio-rgbled/pkg/log"
	"github.com/papilio-community/papilio-rgbled/pkg/rgbled"
	"github.com/sierrasoftworks/humane-errors-go"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// skipDeviceAnnotation marks commands that run without opening the transport.
const skipDeviceAnnotation = "rgbledctl/skip-device"

var configFile string

// session holds what PersistentPreRunE opened. execute releases it on every path.
var session struct {
	cancel context.CancelFunc
	closer io.Closer
}

// openDeviceFunc is replaced in tests.
var openDeviceFunc = openDevice

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configFile, "config", "c", "", "Path to a YAML config file")
	flags.StringP("transport", "t", config.TransportSim, "Bus transport: sim, serial, spi or devmem")
	flags.Uint16P("base-address", "a", rgbled.DefaultBaseAddress, "Base address of the LED controller registers")
	flags.String("serial-port", "/dev/ttyUSB0", "Serial port of the Wishbone bridge")
	flags.Int("baud", 115200, "Baud rate of the Wishbone bridge")
	flags.String("spi-port", "", "SPI port of the Wishbone bridge (default: first available)")
	flags.Int64("spi-hz", 1_000_000, "SPI clock rate in Hz")
	flags.Int64("devmem-base", 0, "Physical address of the memory-mapped bridge window")
	flags.String("log-level", "info", "Log level: debug, info, warn or error")

	config.SetDefaults(viper.GetViper())
	if err := config.BindFlags(flags, viper.GetViper()); err != nil {
		panic(err)
	}
}

var rootCmd = &cobra.Command{
	Use:          "rgbledctl",
	Short:        "rgbledctl drives the WS2812B RGB LED controller of a Papilio board over its Wishbone bridge",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		origCtx := cmd.Context()

		path := configFile
		if path == "" {
			if _, err := os.Stat(defaultConfigPath()); err == nil {
				path = defaultConfigPath()
			}
		}

		cfg, herr := config.Load(viper.GetViper(), path)
		if herr != nil {
			return herr
		}

		logger, err := log.New(cfg.Log.Level)
		if err != nil {
			return humane.Wrap(err, "invalid log level",
				"use one of debug, info, warn or error",
			)
		}
		zap.ReplaceGlobals(logger)

		ctx, cancelCtx := context.WithCancel(log.IntoContext(origCtx, logger))
		session.cancel = cancelCtx

		// setup signal handler channels
		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
		go func() {
			select {
			// Wait for context cancel
			case <-ctx.Done():

			// Wait for signal
			case sig := <-sigs:
				switch sig {
				case syscall.SIGTERM:
					fallthrough
				case syscall.SIGINT:
					fallthrough
				case syscall.SIGQUIT:
					// On terminate signal, cancel context causing the program to terminate
					cancelCtx()

				default:
					log.FromContext(ctx).Warn("Received unknown signal", zap.String("signal", sig.String()))
				}
			}
		}()

		if _, skip := cmd.Annotations[skipDeviceAnnotation]; skip {
			cmd.SetContext(ctx)
			return nil
		}

		dev, herr := openDeviceFunc(ctx, cfg)
		if herr != nil {
			return herr
		}
		session.closer = dev.closer

		cmd.SetContext(deviceIntoContext(ctx, dev))
		return nil
	},
}

// execute runs the root command, then closes the device and cancels the command
// context whether or not the command succeeded.
func execute(ctx context.Context) (err error) {
	defer func() {
		if session.cancel != nil {
			session.cancel()
		}
		if session.closer != nil {
			if cerr := session.closer.Close(); cerr != nil {
				err = errors.Join(err, humane.Wrap(cerr, "failed to close the transport"))
			}
		}
		session.cancel, session.closer = nil, nil
	}()

	return rootCmd.ExecuteContext(ctx)
}
