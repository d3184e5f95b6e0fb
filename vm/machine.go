// Package vm implements the Intcode virtual machine.
package vm

import "github.com/hexaflex/intcode/arch"

// Status defines the observable run state of a machine.
type Status int

// Known machine states.
const (
	NotStarted      Status = iota // No instruction has been executed yet.
	WaitingForInput               // Suspended on IN with no pending input.
	Finished                      // The program executed HALT.
)

func (s Status) String() string {
	switch s {
	case NotStarted:
		return "not started"
	case WaitingForInput:
		return "waiting for input"
	case Finished:
		return "finished"
	}
	return "unknown"
}

// TraceFunc represents a callback handler for debug trace output.
// It is called with every instruction right before it executes.
type TraceFunc func(*Instruction)

// Option configures a machine.
type Option func(*Machine)

// WithTrace sets the debug trace handler.
func WithTrace(trace TraceFunc) Option {
	return func(m *Machine) {
		if trace != nil {
			m.trace = trace
		}
	}
}

// WithStepLimit bounds the number of instructions the machine may
// execute over its lifetime. Zero means no limit.
func WithStepLimit(n int64) Option {
	return func(m *Machine) { m.limit = n }
}

// Machine implements the Intcode runtime.
//
// A machine is driven by repeated calls to Run. Run returns whenever the
// program halts or requests input which has not been supplied through
// SetInput. Another call to Run resumes at the same IN instruction.
//
// Machines do not share state; use Clone to obtain independent instances.
type Machine struct {
	memory   Memory      // Live memory bank.
	original Memory      // Program image restored by Reset.
	instr    Instruction // Decoded instruction data.
	trace    TraceFunc   // Handler for debug trace output.
	ip       int64       // Instruction pointer.
	base     int64       // Relative base.
	input    int64       // Pending input value.
	hasInput bool        // Is there a pending input value?
	outputs  []int64     // Every value emitted since construction or reset.
	cache    int         // Index into outputs where the last Run began.
	status   Status      // Current run state.
	err      error       // Terminal fault, if any.
	steps    int64       // Number of instructions executed.
	limit    int64       // Instruction budget; 0 is unlimited.
}

// New creates a new machine for the given program image.
func New(program []int64, opts ...Option) *Machine {
	m := &Machine{
		memory:   Load(program),
		original: Load(program),
		trace:    func(*Instruction) { /* nop */ },
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Clone returns an independent copy of the machine in its current state.
// The trace handler is shared.
func (m *Machine) Clone() *Machine {
	c := *m
	c.memory = m.memory.Clone()
	c.original = m.original.Clone()
	c.outputs = append([]int64(nil), m.outputs...)
	return &c
}

// SetInput arms the machine with the value the next IN instruction
// consumes. An unconsumed value is overwritten.
func (m *Machine) SetInput(value int64) {
	m.input = value
	m.hasInput = true
}

// PendingInput returns the armed input value, if any.
func (m *Machine) PendingInput() (int64, bool) {
	return m.input, m.hasInput
}

// Run executes instructions until the program halts or waits for input.
// It returns the last value emitted during this call, if any.
//
// A fault is terminal: the machine keeps returning the same error until
// it is reset.
func (m *Machine) Run() (int64, bool, error) {
	m.cache = len(m.outputs)
	if m.err != nil {
		return 0, false, m.err
	}

	instr := &m.instr

	for {
		if err := instr.Decode(m.memory, m.ip); err != nil {
			return m.fail(err)
		}

		switch instr.Opcode {
		case arch.IN:
			if !m.hasInput {
				m.status = WaitingForInput
				return m.latest()
			}
			instr.Args[0].Value = m.input
		}

		if m.limit > 0 && m.steps >= m.limit {
			return m.fail(ErrStepLimit)
		}

		m.trace(instr)

		res, err := Execute(instr, m.memory, m.base)
		if err != nil {
			return m.fail(err)
		}

		m.steps++

		switch instr.Opcode {
		case arch.IN:
			m.hasInput = false
		case arch.OUT:
			m.outputs = append(m.outputs, res.Value)
		case arch.HALT:
			m.status = Finished
			return m.latest()
		}

		m.base = res.Base
		m.ip = res.Next
	}
}

// latest returns the last value emitted during the current call to Run.
func (m *Machine) latest() (int64, bool, error) {
	if len(m.outputs) == m.cache {
		return 0, false, nil
	}
	return m.outputs[len(m.outputs)-1], true, nil
}

// fail records a terminal fault.
func (m *Machine) fail(err error) (int64, bool, error) {
	m.err = err
	return 0, false, err
}

// Execute feeds the given inputs to the program one at a time, as it
// requests them, and returns the values emitted along the way. It stops
// once the program halts or waits for input after all inputs were consumed.
func (m *Machine) Execute(inputs ...int64) ([]int64, error) {
	start := len(m.outputs)

	for {
		if _, _, err := m.Run(); err != nil {
			return nil, err
		}

		if m.status == Finished || len(inputs) == 0 {
			break
		}

		m.SetInput(inputs[0])
		inputs = inputs[1:]
	}

	return append([]int64(nil), m.outputs[start:]...), nil
}

// Status returns the current run state.
func (m *Machine) Status() Status {
	return m.status
}

// Err returns the fault which stopped the machine, if any.
func (m *Machine) Err() error {
	return m.err
}

// Outputs returns every value emitted since construction or the last Reset.
func (m *Machine) Outputs() []int64 {
	return append([]int64(nil), m.outputs...)
}

// LatestOutput returns the most recently emitted value, if any.
func (m *Machine) LatestOutput() (int64, bool) {
	if len(m.outputs) == 0 {
		return 0, false
	}
	return m.outputs[len(m.outputs)-1], true
}

// LastOutputs returns up to n of the most recently emitted values,
// oldest first.
func (m *Machine) LastOutputs(n int) []int64 {
	if n <= 0 {
		return nil
	}
	if n > len(m.outputs) {
		n = len(m.outputs)
	}
	return append([]int64(nil), m.outputs[len(m.outputs)-n:]...)
}

// OutputCache returns the values emitted during the most recent call to Run.
func (m *Machine) OutputCache() []int64 {
	if m.cache > len(m.outputs) {
		return nil
	}
	return append([]int64(nil), m.outputs[m.cache:]...)
}

// Poke overwrites the value at addr in both the live memory and the
// program image, so the patch survives Reset.
func (m *Machine) Poke(addr, value int64) error {
	if err := m.memory.Write(addr, value); err != nil {
		return err
	}
	return m.original.Write(addr, value)
}

// Peek returns the value at addr in live memory.
func (m *Machine) Peek(addr int64) int64 {
	return m.memory.Read(addr)
}

// Memory returns the live memory bank. Callers must not modify it
// while the machine is in use.
func (m *Machine) Memory() Memory {
	return m.memory
}

// Image returns a dense copy of live memory. See Memory.Image.
func (m *Machine) Image() ([]int64, error) {
	return m.memory.Image()
}

// InstructionPointer returns the address of the next instruction.
func (m *Machine) InstructionPointer() int64 {
	return m.ip
}

// RelativeBase returns the current relative base.
func (m *Machine) RelativeBase() int64 {
	return m.base
}

// InstructionCount returns the number of instructions executed so far.
func (m *Machine) InstructionCount() int64 {
	return m.steps
}

// Reset restores the program image and clears registers, pending input,
// emitted values, run state and any fault.
func (m *Machine) Reset() {
	m.memory = m.original.Clone()
	m.instr = Instruction{}
	m.ip = 0
	m.base = 0
	m.input = 0
	m.hasInput = false
	m.outputs = nil
	m.cache = 0
	m.status = NotStarted
	m.err = nil
	m.steps = 0
}
