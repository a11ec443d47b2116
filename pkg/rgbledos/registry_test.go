package rgbledos_test

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/papilio-community/papilio-rgbled/pkg/rgbledos"
	"github.com/stretchr/testify/assert"
)

func TestRegistry_Dispatch(t *testing.T) {
	t.Parallel()

	var got []string
	reg := rgbledos.NewRegistry()
	reg.Register("demo", "echo", func(_ context.Context, out io.Writer, args []string) {
		got = args
	}, "Echo arguments")

	var out bytes.Buffer
	assert.NoError(t, reg.Dispatch(context.Background(), &out, `demo echo a "b c"`))
	assert.Equal(t, []string{"a", "b c"}, got)

	assert.NoError(t, reg.Dispatch(context.Background(), &out, "   "))
	assert.Empty(t, out.String())
}

func TestRegistry_UnknownCommand(t *testing.T) {
	t.Parallel()

	reg := rgbledos.NewRegistry()

	var out bytes.Buffer
	err := reg.Dispatch(context.Background(), &out, "rgbled blink")
	assert.ErrorIs(t, err, rgbledos.ErrUnknownCommand)
	assert.Equal(t, "Unknown command: rgbled blink\nRun 'rgbled help' for a list of commands\n", out.String())

	out.Reset()
	err = reg.Dispatch(context.Background(), &out, "rgbled")
	assert.ErrorIs(t, err, rgbledos.ErrUnknownCommand)
}

func TestRegistry_UnterminatedQuote(t *testing.T) {
	t.Parallel()

	reg := rgbledos.NewRegistry()
	err := reg.Dispatch(context.Background(), io.Discard, `rgbled setcolor "0x19`)
	assert.Error(t, err)
}

func TestRegistry_PrintCommands(t *testing.T) {
	t.Parallel()

	reg := rgbledos.NewRegistry()
	rgbledos.NewPlugin(nil).Register(reg)

	var out bytes.Buffer
	reg.PrintCommands(&out)
	assert.Contains(t, out.String(), "rgbled status")
	assert.Contains(t, out.String(), "Show RGB LED controller status")
}
