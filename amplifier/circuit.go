// Package amplifier chains Intcode machines into amplifier circuits.
//
// Each stage runs its own copy of the same program. A stage receives its
// phase setting as first input and then the signal emitted by the previous
// stage. In a feedback circuit the output of the last stage is wired back
// into the first until the last stage halts.
package amplifier

import (
	"fmt"

	"github.com/hexaflex/intcode/vm"
	"github.com/pkg/errors"
)

// Circuit defines a chain of amplifier stages running the same program.
type Circuit struct {
	template *vm.Machine
	stages   int
}

// New creates a circuit of the given number of stages. The options apply
// to every stage machine. A trace handler given here is shared by all
// stages, including those running concurrently in MaxSignal.
func New(program []int64, stages int, opts ...vm.Option) *Circuit {
	return &Circuit{
		template: vm.New(program, opts...),
		stages:   stages,
	}
}

// Stages returns the number of stages in the circuit.
func (c *Circuit) Stages() int {
	return c.stages
}

// Signal runs the circuit with the given phase settings, one per stage,
// feeding 0 into the first stage. It returns the last signal emitted by the
// final stage once that stage halts.
//
// Every stage must emit a value each time it is fed. A circuit works in
// series mode as well as in feedback mode: series programs simply halt
// after the first pass.
func (c *Circuit) Signal(phases []int64) (int64, error) {
	if len(phases) != c.stages {
		return 0, errors.Errorf("amplifier: want %d phase settings, have %d", c.stages, len(phases))
	}

	if c.stages == 0 {
		return 0, errors.New("amplifier: circuit has no stages")
	}

	machines := make([]*vm.Machine, c.stages)
	for i, phase := range phases {
		m := c.template.Clone()
		m.SetInput(phase)

		if _, _, err := m.Run(); err != nil {
			return 0, errors.Wrapf(err, "stage %s", StageName(i))
		}

		machines[i] = m
	}

	var signal int64
	last := machines[c.stages-1]

	for {
		for i, m := range machines {
			if m.Status() == vm.Finished {
				return 0, errors.Wrapf(ErrStalled, "stage %s", StageName(i))
			}

			m.SetInput(signal)

			value, ok, err := m.Run()
			if err != nil {
				return 0, errors.Wrapf(err, "stage %s", StageName(i))
			}

			if !ok {
				return 0, errors.Wrapf(ErrNoSignal, "stage %s", StageName(i))
			}

			signal = value
		}

		if last.Status() == vm.Finished {
			return signal, nil
		}
	}
}

// StageName returns the display name for stage i: A, B, C and so on.
func StageName(i int) string {
	if i >= 0 && i < 26 {
		return string(rune('A' + i))
	}
	return fmt.Sprintf("#%d", i)
}
