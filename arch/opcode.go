// Package arch defines the Intcode instruction set along with
// some related helper functions.
package arch

import "strings"

// Known opcodes.
const (
	ADD  = 1
	MUL  = 2
	IN   = 3
	OUT  = 4
	JNZ  = 5
	JEZ  = 6
	CLT  = 7
	CEQ  = 8
	ARB  = 9
	HALT = 99
)

// Opcode returns the opcode for the given instruction name.
// Returns false if the name is not recognized.
func Opcode(name string) (int, bool) {
	switch strings.ToUpper(name) {
	case "ADD":
		return ADD, true
	case "MUL":
		return MUL, true
	case "IN":
		return IN, true
	case "OUT":
		return OUT, true
	case "JNZ":
		return JNZ, true
	case "JEZ":
		return JEZ, true
	case "CLT":
		return CLT, true
	case "CEQ":
		return CEQ, true
	case "ARB":
		return ARB, true
	case "HALT":
		return HALT, true
	}

	return 0, false
}

// Name returns the name for the given opcode.
// Returns false if the opcode is not recognized.
func Name(opcode int) (string, bool) {
	switch opcode {
	case ADD:
		return "ADD", true
	case MUL:
		return "MUL", true
	case IN:
		return "IN", true
	case OUT:
		return "OUT", true
	case JNZ:
		return "JNZ", true
	case JEZ:
		return "JEZ", true
	case CLT:
		return "CLT", true
	case CEQ:
		return "CEQ", true
	case ARB:
		return "ARB", true
	case HALT:
		return "HALT", true
	}

	return "", false
}

// Argc returns the number of parameters the given instruction carries.
// For IN, the first parameter is the input value itself and is not
// encoded in memory. Returns -1 if the opcode is not recognized.
func Argc(opcode int) int {
	switch opcode {
	case ADD, MUL, CLT, CEQ:
		return 3
	case IN, JNZ, JEZ:
		return 2
	case OUT, ARB:
		return 1
	case HALT:
		return 0
	}
	return -1
}

// Encoded returns the number of parameters stored in memory after the
// instruction word. Returns -1 if the opcode is not recognized.
func Encoded(opcode int) int {
	if opcode == IN {
		return 1
	}
	return Argc(opcode)
}

// Size returns the number of memory cells occupied by the given instruction.
// Returns -1 if the opcode is not recognized.
func Size(opcode int) int {
	n := Encoded(opcode)
	if n < 0 {
		return -1
	}
	return n + 1
}

// Writes returns the index of the parameter the given instruction
// stores its result through. Returns -1 if it writes nothing.
func Writes(opcode int) int {
	switch opcode {
	case ADD, MUL, CLT, CEQ:
		return 2
	case IN:
		return 1
	}
	return -1
}
