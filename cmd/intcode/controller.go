package main

import (
	"log"
	"time"

	"github.com/hexaflex/intcode/vm"
)

// Controller controls the execution of a machine.
type Controller struct {
	machine *vm.Machine
	elapsed time.Duration
	resumes int
	trace   bool
}

// NewController creates a new controller for the given program.
func NewController(program []int64, trace bool, limit int64) *Controller {
	c := &Controller{trace: trace}
	c.machine = vm.New(program, vm.WithTrace(c.printTrace), vm.WithStepLimit(limit))
	return c
}

// Machine returns the controlled machine.
func (c *Controller) Machine() *vm.Machine {
	return c.machine
}

// Resume runs the machine until it halts or waits for input.
func (c *Controller) Resume() (int64, bool, error) {
	start := time.Now()
	value, ok, err := c.machine.Run()
	c.elapsed += time.Since(start)
	c.resumes++
	return value, ok, err
}

// Resumptions returns the number of calls to Resume.
func (c *Controller) Resumptions() int {
	return c.resumes
}

// Frequency returns the number of instructions executed per second
// of run time.
func (c *Controller) Frequency() float64 {
	if c.elapsed <= 0 {
		return 0
	}
	return float64(c.machine.InstructionCount()) / c.elapsed.Seconds()
}

// printTrace prints instruction trace data, if enabled.
func (c *Controller) printTrace(i *vm.Instruction) {
	if !c.trace {
		return
	}
	log.Printf("%-32s rb=%d", i, c.machine.RelativeBase())
}
