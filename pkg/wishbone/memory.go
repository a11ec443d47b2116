package wishbone

import "sync"

// Memory is a 64 KiB register file that records every bus transaction.
// It backs the simulated transport and doubles as a spy in tests.
type Memory struct {
	mu           sync.Mutex
	regs         [1 << 16]uint8
	transactions []Transaction
}

var _ Bus = &Memory{}

// NewMemory creates a zeroed register file.
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Write8(addr uint16, value uint8) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.regs[addr] = value
	m.transactions = append(m.transactions, Write(addr, value))
}

func (m *Memory) Read8(addr uint16) uint8 {
	m.mu.Lock()
	defer m.mu.Unlock()
	value := m.regs[addr]
	m.transactions = append(m.transactions, Read(addr, value))
	return value
}

// Poke sets a register without recording a transaction, e.g. to model peripheral status bits.
func (m *Memory) Poke(addr uint16, value uint8) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.regs[addr] = value
}

// Peek returns a register without recording a transaction.
func (m *Memory) Peek(addr uint16) uint8 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.regs[addr]
}

// Transactions returns a copy of the recorded transactions in issue order.
func (m *Memory) Transactions() []Transaction {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Transaction(nil), m.transactions...)
}

// Reset clears the transaction log. Register contents are kept.
func (m *Memory) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transactions = nil
}
