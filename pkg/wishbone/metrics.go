package wishbone

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	transactionCount = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "papilio_rgbled",
		Subsystem: "wishbone",
		Name:      "transactions_count",
		Help:      "Wishbone bus transactions issued, by transport and operation",
	}, []string{"transport", "op"})

	transactionErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "papilio_rgbled",
		Subsystem: "wishbone",
		Name:      "transaction_errors_count",
		Help:      "Wishbone bus transactions that failed in the transport, by transport and operation",
	}, []string{"transport", "op"})
)

// Instrumented counts the transactions passing through a bus.
type Instrumented struct {
	bus       Bus
	transport string
}

var _ Bus = &Instrumented{}

// Instrument wraps bus so its transactions are counted under the transport label.
func Instrument(transport string, bus Bus) *Instrumented {
	return &Instrumented{bus: bus, transport: transport}
}

func (i *Instrumented) Write8(addr uint16, value uint8) {
	transactionCount.WithLabelValues(i.transport, OpWrite.String()).Inc()
	i.bus.Write8(addr, value)
}

func (i *Instrumented) Read8(addr uint16) uint8 {
	transactionCount.WithLabelValues(i.transport, OpRead.String()).Inc()
	return i.bus.Read8(addr)
}

// Err forwards to the wrapped bus when it reports errors.
func (i *Instrumented) Err() error {
	if reporter, ok := i.bus.(ErrorReporter); ok {
		return reporter.Err()
	}
	return nil
}

// Unwrap returns the wrapped bus.
func (i *Instrumented) Unwrap() Bus {
	return i.bus
}
