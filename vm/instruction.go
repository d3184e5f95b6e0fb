package vm

import (
	"fmt"
	"strings"

	"github.com/hexaflex/intcode/arch"
)

// Instruction defines decoded instruction data.
type Instruction struct {
	IP     int64      // Instruction address.
	Opcode int        // Instruction opcode.
	Args   [3]Operand // Parameters A, B and C.
}

// Decode decodes the instruction at address ip from the given memory bank.
// Decoding never modifies memory.
//
// For IN, Args[0] is an immediate placeholder for the input value, which
// the caller fills in before execution. The destination lives in Args[1]
// and takes its mode from the first mode digit.
func (i *Instruction) Decode(m Memory, ip int64) error {
	i.IP = ip
	i.Args = [3]Operand{}

	word := m.Read(ip)
	code := word % 100
	i.Opcode = int(code)

	argc := arch.Encoded(i.Opcode)
	if word < 0 || argc < 0 {
		return &UnknownOpcodeError{Opcode: code, Address: ip}
	}

	first := 0
	if i.Opcode == arch.IN {
		i.Args[0] = Operand{Mode: arch.Immediate}
		first = 1
	}

	divisor := int64(100)
	for j := 0; j < argc; j++ {
		mode := (word / divisor) % 10
		divisor *= 10

		op := &i.Args[first+j]
		op.Mode = arch.AddressMode(mode)
		if !op.Mode.Valid() {
			return &InvalidParameterModeError{Mode: mode, Address: ip}
		}
		op.Value = m.Read(ip + 1 + int64(j))
	}

	return nil
}

// Argc returns the number of parameters the instruction carries.
func (i *Instruction) Argc() int {
	return arch.Argc(i.Opcode)
}

// Size returns the number of memory cells occupied by the instruction.
func (i *Instruction) Size() int64 {
	return int64(arch.Size(i.Opcode))
}

// String returns a disassembled form of the instruction.
// Position parameters render as [n], immediates as #n and relative
// parameters as [rb+n].
func (i *Instruction) String() string {
	name, ok := arch.Name(i.Opcode)
	if !ok {
		name = fmt.Sprintf("?%02d", i.Opcode)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%04d %-4s", i.IP, name)

	first := 0
	if i.Opcode == arch.IN {
		first = 1
	}

	for j := first; j < i.Argc(); j++ {
		if j > first {
			sb.WriteString(",")
		}
		sb.WriteString(" ")
		sb.WriteString(i.Args[j].String())
	}

	return strings.TrimRight(sb.String(), " ")
}

// Operand defines a decoded instruction parameter.
type Operand struct {
	Mode  arch.AddressMode // Address mode.
	Value int64            // Raw parameter cell: an address, literal or offset.
}

// Address returns the address the operand refers to, using the given
// relative base. Immediate operands have no address.
func (op Operand) Address(base int64) (int64, bool) {
	switch op.Mode {
	case arch.Position:
		return op.Value, true
	case arch.Relative:
		return base + op.Value, true
	}
	return 0, false
}

func (op Operand) String() string {
	switch op.Mode {
	case arch.Immediate:
		return fmt.Sprintf("#%d", op.Value)
	case arch.Relative:
		if op.Value < 0 {
			return fmt.Sprintf("[rb%d]", op.Value)
		}
		return fmt.Sprintf("[rb+%d]", op.Value)
	}
	return fmt.Sprintf("[%d]", op.Value)
}
