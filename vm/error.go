package vm

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrStepLimit is returned by Run when a machine exceeds the instruction
// budget configured through WithStepLimit.
var ErrStepLimit = errors.New("instruction limit exceeded")

// ErrSparseImage is returned by Image when memory spans more than
// MaxImageLen cells.
var ErrSparseImage = errors.New("memory too sparse for a dense image")

// UnknownOpcodeError is returned when the instruction word at Address
// does not hold a known opcode.
type UnknownOpcodeError struct {
	Opcode  int64 // Low two decimal digits of the instruction word.
	Address int64 // Instruction address.
}

func (e *UnknownOpcodeError) Error() string {
	return fmt.Sprintf("%04d: unknown opcode %d", e.Address, e.Opcode)
}

// InvalidParameterModeError is returned when an instruction word
// carries a mode digit other than 0, 1 or 2.
type InvalidParameterModeError struct {
	Mode    int64 // Offending mode digit.
	Address int64 // Instruction address.
}

func (e *InvalidParameterModeError) Error() string {
	return fmt.Sprintf("%04d: invalid parameter mode %d", e.Address, e.Mode)
}

// NegativeAddressError is returned when a parameter or jump resolves to
// an address below zero. IP is -1 if the access did not come from an
// instruction.
type NegativeAddressError struct {
	Address int64 // Resolved address.
	IP      int64 // Instruction address.
}

func (e *NegativeAddressError) Error() string {
	if e.IP < 0 {
		return fmt.Sprintf("negative address %d", e.Address)
	}
	return fmt.Sprintf("%04d: negative address %d", e.IP, e.Address)
}

// ImmediateWriteError is returned when an instruction attempts to store
// its result through an immediate mode parameter.
type ImmediateWriteError struct {
	Address int64 // Instruction address.
}

func (e *ImmediateWriteError) Error() string {
	return fmt.Sprintf("%04d: write target in immediate mode", e.Address)
}

// OverflowError is returned when an arithmetic result does not fit
// into 64 bits.
type OverflowError struct {
	Op      string // Operator: "+" or "*".
	A, B    int64  // Operands.
	Address int64  // Instruction address.
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("%04d: integer overflow in %d %s %d", e.Address, e.A, e.Op, e.B)
}
