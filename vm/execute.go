package vm

import (
	"math"

	"github.com/hexaflex/intcode/arch"
)

// Result defines the outcome of executing a single instruction.
type Result struct {
	Value int64 // Value computed or emitted by the instruction.
	Next  int64 // Address of the next instruction.
	Base  int64 // Relative base after execution.
	Halt  bool  // Did the instruction terminate the program?
}

// Execute applies the given decoded instruction to memory, using base as
// the current relative base.
//
// For IN, the input value must already be stored in instr.Args[0].
// Execute does not check whether one was supplied.
func Execute(instr *Instruction, mem Memory, base int64) (Result, error) {
	x := executor{instr: instr, mem: mem, base: base}
	res := Result{
		Next: instr.IP + instr.Size(),
		Base: base,
	}

	var err error

	switch instr.Opcode {
	case arch.ADD, arch.MUL:
		var va, vb int64
		if va, err = x.load(0); err != nil {
			return res, err
		}
		if vb, err = x.load(1); err != nil {
			return res, err
		}
		if instr.Opcode == arch.ADD {
			res.Value, err = x.add(va, vb)
		} else {
			res.Value, err = x.mul(va, vb)
		}
		if err != nil {
			return res, err
		}
		err = x.store(2, res.Value)

	case arch.IN:
		res.Value = instr.Args[0].Value
		err = x.store(1, res.Value)

	case arch.OUT:
		res.Value, err = x.load(0)

	case arch.JNZ, arch.JEZ:
		var cond, target int64
		if cond, err = x.load(0); err != nil {
			return res, err
		}
		if target, err = x.load(1); err != nil {
			return res, err
		}
		if (cond != 0) == (instr.Opcode == arch.JNZ) {
			if target < 0 {
				return res, &NegativeAddressError{Address: target, IP: instr.IP}
			}
			res.Value = 1
			res.Next = target
		}

	case arch.CLT, arch.CEQ:
		var va, vb int64
		if va, err = x.load(0); err != nil {
			return res, err
		}
		if vb, err = x.load(1); err != nil {
			return res, err
		}
		if instr.Opcode == arch.CLT && va < vb || instr.Opcode == arch.CEQ && va == vb {
			res.Value = 1
		}
		err = x.store(2, res.Value)

	case arch.ARB:
		var delta int64
		if delta, err = x.load(0); err != nil {
			return res, err
		}
		if res.Base, err = x.add(base, delta); err != nil {
			return res, err
		}
		res.Value = res.Base

	case arch.HALT:
		res.Next = instr.IP
		res.Halt = true

	default:
		return res, &UnknownOpcodeError{Opcode: int64(instr.Opcode), Address: instr.IP}
	}

	return res, err
}

// executor resolves parameters of a single instruction.
type executor struct {
	instr *Instruction
	mem   Memory
	base  int64
}

// address resolves parameter n to a non-negative memory address.
func (x *executor) address(n int) (int64, error) {
	op := x.instr.Args[n]
	if op.Mode == arch.Relative {
		if _, err := x.add(x.base, op.Value); err != nil {
			return 0, err
		}
	}

	addr, _ := op.Address(x.base)
	if addr < 0 {
		return 0, &NegativeAddressError{Address: addr, IP: x.instr.IP}
	}
	return addr, nil
}

// load returns the value parameter n refers to.
func (x *executor) load(n int) (int64, error) {
	op := x.instr.Args[n]
	if op.Mode == arch.Immediate {
		return op.Value, nil
	}

	addr, err := x.address(n)
	if err != nil {
		return 0, err
	}
	return x.mem.Read(addr), nil
}

// store writes value through parameter n.
func (x *executor) store(n int, value int64) error {
	if x.instr.Args[n].Mode == arch.Immediate {
		return &ImmediateWriteError{Address: x.instr.IP}
	}

	addr, err := x.address(n)
	if err != nil {
		return err
	}
	return x.mem.Write(addr, value)
}

// add returns a+b, or an error if the sum does not fit into 64 bits.
func (x *executor) add(a, b int64) (int64, error) {
	if (b > 0 && a > math.MaxInt64-b) || (b < 0 && a < math.MinInt64-b) {
		return 0, &OverflowError{Op: "+", A: a, B: b, Address: x.instr.IP}
	}
	return a + b, nil
}

// mul returns a*b, or an error if the product does not fit into 64 bits.
func (x *executor) mul(a, b int64) (int64, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}

	c := a * b
	if c/b != a || (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		return 0, &OverflowError{Op: "*", A: a, B: b, Address: x.instr.IP}
	}
	return c, nil
}
