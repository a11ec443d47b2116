package wishbone_test

import (
	"testing"

	"github.com/papilio-community/papilio-rgbled/pkg/wishbone"
	"github.com/stretchr/testify/assert"
)

func TestInstrumented_Forwards(t *testing.T) {
	t.Parallel()

	mem := wishbone.NewMemory()
	bus := wishbone.Instrument("test", mem)

	bus.Write8(0x10, 0x42)
	assert.Equal(t, uint8(0x42), bus.Read8(0x10))
	assert.Same(t, mem, bus.Unwrap())
	assert.NoError(t, bus.Err())
	assert.Len(t, mem.Transactions(), 2)
}
