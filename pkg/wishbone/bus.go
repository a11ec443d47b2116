// Package wishbone provides the 8-bit Wishbone bus transports the LED driver talks through.
//
// A Bus is infallible: the register driver issues fire-and-forget
// transactions and never inspects failures. Transports that can fail keep their most
// recent error and report it through ErrorReporter instead.
package wishbone

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Bus is the transport contract consumed by peripheral drivers.
type Bus interface {
	// Write8 writes a single byte to a 16-bit bus address.
	Write8(addr uint16, value uint8)
	// Read8 reads a single byte from a 16-bit bus address.
	Read8(addr uint16) uint8
}

// ErrorReporter is implemented by transports that can fail.
type ErrorReporter interface {
	// Err returns the most recent transaction error, or nil.
	Err() error
}

// Op is the kind of a bus transaction.
type Op uint8

const (
	OpWrite Op = iota
	OpRead
)

func (op Op) String() string {
	switch op {
	case OpWrite:
		return "write"
	case OpRead:
		return "read"
	default:
		return fmt.Sprintf("op(%d)", uint8(op))
	}
}

// Transaction is a single recorded bus access.
type Transaction struct {
	Op    Op
	Addr  uint16
	Value uint8
}

func (t Transaction) String() string {
	return fmt.Sprintf("%s 0x%04x=0x%02x", t.Op, t.Addr, t.Value)
}

// Write is shorthand for a recorded write transaction.
func Write(addr uint16, value uint8) Transaction {
	return Transaction{Op: OpWrite, Addr: addr, Value: value}
}

// Read is shorthand for a recorded read transaction.
func Read(addr uint16, value uint8) Transaction {
	return Transaction{Op: OpRead, Addr: addr, Value: value}
}

type options struct {
	logger *zap.Logger
}

// Option configures a transport.
type Option func(*options)

// WithLogger sets the logger transaction failures are reported to.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func buildOptions(opts []Option) options {
	o := options{logger: zap.L()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// errorTracker remembers the last failure of a transport and reports it.
type errorTracker struct {
	mu        sync.Mutex
	transport string
	logger    *zap.Logger
	err       error
}

func (e *errorTracker) record(op Op, addr uint16, err error) {
	if err == nil {
		return
	}

	transactionErrors.WithLabelValues(e.transport, op.String()).Inc()
	e.logger.Warn("wishbone transaction failed",
		zap.String("transport", e.transport),
		zap.Stringer("op", op),
		zap.String("addr", fmt.Sprintf("0x%04x", addr)),
		zap.Error(err),
	)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.err = fmt.Errorf("%s 0x%04x: %w", op, addr, err)
}

// Err returns the most recent transaction error.
func (e *errorTracker) Err() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.err
}
