package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/papilio-community/papilio-rgbled/pkg/log"
	"github.com/papilio-community/papilio-rgbled/pkg/rgbledos"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shellPrompt = "papilio> "

var metricsListen string

func init() {
	cmdShell.Flags().StringVar(&metricsListen, "metrics-listen", "", "Expose prometheus metrics on this address while the shell runs (e.g. :9666)")

	rootCmd.AddCommand(cmdShell)
	rootCmd.AddCommand(cmdTutorial)
}

var (
	cmdShell = &cobra.Command{
		Use:     "shell",
		Short:   "Start an interactive shell with the rgbled commands",
		Example: "rgbledctl shell --transport serial --serial-port /dev/ttyUSB0",
		Args:    cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			input := rgbledos.NewReaderSource(cmd.InOrStdin())
			reg := newRegistry(ctx, input)

			group, ctx := errgroup.WithContext(ctx)
			if metricsListen != "" {
				server := &http.Server{
					Addr:              metricsListen,
					Handler:           promhttp.Handler(),
					ReadHeaderTimeout: 5 * time.Second,
				}

				group.Go(func() error {
					log.FromContext(ctx).Info("Starting metrics server", zap.String("address", metricsListen))
					if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
						return err
					}
					return nil
				})
				group.Go(func() error {
					<-ctx.Done()
					return server.Shutdown(context.Background())
				})
			}

			group.Go(func() error {
				defer cancel()
				return runShell(ctx, cmd.OutOrStdout(), input, reg)
			})

			return group.Wait()
		},
	}

	cmdTutorial = &cobra.Command{
		Use:     "tutorial",
		Short:   "Run the interactive RGB LED tutorial",
		Example: "rgbledctl tutorial",
		Args:    cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			reg := newRegistry(ctx, rgbledos.NewReaderSource(cmd.InOrStdin()))
			return reg.Dispatch(ctx, cmd.OutOrStdout(), "rgbled tutorial")
		},
	}
)

// newRegistry registers the rgbled plugin for the device stored in the context.
func newRegistry(ctx context.Context, input rgbledos.LineSource) *rgbledos.Registry {
	dev := deviceFromContext(ctx)

	reg := rgbledos.NewRegistry()
	rgbledos.NewPlugin(dev.led,
		rgbledos.WithLineSource(input),
		rgbledos.WithStepDelay(dev.cfg.Tutorial.StepDelay),
	).Register(reg)
	return reg
}

// runShell reads command lines until the input ends, the operator types exit or the
// context is cancelled.
func runShell(ctx context.Context, out io.Writer, input rgbledos.LineSource, reg *rgbledos.Registry) error {
	dev := deviceFromContext(ctx)
	fmt.Fprintln(out, "Papilio RGB LED shell. Type 'help' for commands, 'exit' to leave.")

	for {
		fmt.Fprint(out, shellPrompt)

		line, err := input.ReadLine(ctx)
		if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
			fmt.Fprintln(out)
			return nil
		}
		if err != nil {
			return err
		}

		switch strings.ToLower(strings.TrimSpace(line)) {
		case "":
			continue
		case "exit", "quit":
			return nil
		case "help":
			fmt.Fprintln(out, "Commands:")
			reg.PrintCommands(out)
			fmt.Fprintf(out, "  %-24s %s\n", "exit", "Leave the shell")
			continue
		}

		if err := reg.Dispatch(ctx, out, line); err != nil && !errors.Is(err, rgbledos.ErrUnknownCommand) {
			fmt.Fprintf(out, "Error: %s\n", err)
		}
		if herr := dev.busError(); herr != nil {
			fmt.Fprintf(out, "Error: %s\n", herr.Error())
			for _, advice := range herr.Advice() {
				fmt.Fprintf(out, "  - %s\n", advice)
			}
		}
	}
}
