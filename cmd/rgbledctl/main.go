package main

import (
	"context"
	"io"
	"log"

	"github.com/papilio-community/papilio-rgbled/internal/config"
	"github.com/papilio-community/papilio-rgbled/pkg/rgbled"
	"github.com/papilio-community/papilio-rgbled/pkg/wishbone"
)

type deviceContextKey int

const (
	defaultDeviceContextKey deviceContextKey = 0
)

var (
	Version string
	Commit  string
	Date    string
)

// device is the LED controller opened for the running command.
type device struct {
	cfg    config.Config
	bus    wishbone.Bus
	led    *rgbled.Controller
	closer io.Closer

	// reportedErr is the last bus error returned by busError.
	reportedErr error
}

func deviceIntoContext(ctx context.Context, dev *device) context.Context {
	return context.WithValue(ctx, defaultDeviceContextKey, dev)
}

func deviceFromContext(ctx context.Context) *device {
	dev, ok := ctx.Value(defaultDeviceContextKey).(*device)
	if !ok {
		panic("device not found in context")
	}
	return dev
}

func main() {
	if err := execute(context.Background()); err != nil {
		log.Fatal(err)
	}
}
