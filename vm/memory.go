package vm

import (
	"sort"

	"github.com/pkg/errors"
)

// MaxImageLen bounds the number of cells Image will materialize.
const MaxImageLen = 1 << 24

// Memory defines the machine's memory bank. It is sparse and grows as
// addresses are written. Reading an address which was never written
// yields zero.
type Memory map[int64]int64

// Load creates a memory bank holding the given program image.
// Address i holds program[i].
func Load(program []int64) Memory {
	m := make(Memory, len(program))
	for i, v := range program {
		m[int64(i)] = v
	}
	return m
}

// Read returns the value at the given address.
func (m Memory) Read(addr int64) int64 {
	return m[addr]
}

// Write sets the value at the given address.
// Returns an error if the address is negative.
func (m Memory) Write(addr, value int64) error {
	if addr < 0 {
		return &NegativeAddressError{Address: addr, IP: -1}
	}
	m[addr] = value
	return nil
}

// Len returns one past the highest address holding a value.
func (m Memory) Len() int64 {
	var n int64
	for addr := range m {
		if addr >= n {
			n = addr + 1
		}
	}
	return n
}

// Clone returns an independent copy of the memory bank.
func (m Memory) Clone() Memory {
	c := make(Memory, len(m))
	for addr, v := range m {
		c[addr] = v
	}
	return c
}

// Image returns the memory contents as a dense slice covering
// addresses 0 through Len()-1. Gaps are zero filled.
//
// Memory written at far away addresses can not be laid out densely;
// Image then fails with ErrSparseImage and Addresses should be used.
func (m Memory) Image() ([]int64, error) {
	n := m.Len()
	if n > MaxImageLen {
		return nil, errors.Wrapf(ErrSparseImage, "%d cells", n)
	}

	out := make([]int64, n)
	for addr, v := range m {
		out[addr] = v
	}
	return out, nil
}

// Addresses returns all addresses holding a value, in ascending order.
func (m Memory) Addresses() []int64 {
	out := make([]int64, 0, len(m))
	for addr := range m {
		out = append(out, addr)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
