package main

import (
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/hexaflex/intcode/image"
	"github.com/hexaflex/intcode/vm"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// runProgram loads and runs a program, feeding it the configured inputs.
func runProgram(cmd *cobra.Command, c *Config) error {
	program, err := image.Load(c.Image)
	if err != nil {
		return err
	}

	ctl := NewController(program, c.PrintTrace, c.StepLimit)
	m := ctl.Machine()

	for _, p := range c.Pokes {
		if err := m.Poke(p.Addr, p.Value); err != nil {
			return errors.Wrapf(err, "poke %d=%d", p.Addr, p.Value)
		}
	}

	var prompt *readline.Instance
	defer func() {
		if prompt != nil {
			prompt.Close()
		}
	}()

	out := cmd.OutOrStdout()
	inputs := c.Inputs

	for {
		if _, _, err := ctl.Resume(); err != nil {
			return err
		}

		if c.Interactive {
			for _, v := range m.OutputCache() {
				fmt.Fprintln(out, v)
			}
		}

		if m.Status() == vm.Finished {
			break
		}

		if len(inputs) > 0 {
			m.SetInput(inputs[0])
			inputs = inputs[1:]
			continue
		}

		if !c.Interactive {
			return errors.Errorf("%04d: program waits for input; none left", m.InstructionPointer())
		}

		if prompt == nil {
			prompt, err = readline.NewEx(&readline.Config{
				Prompt: "input> ",
				Stdout: out,
				Stderr: cmd.ErrOrStderr(),
			})
			if err != nil {
				return errors.Wrap(err, "failed to start readline")
			}
		}

		value, err := readInput(prompt)
		if err != nil {
			return err
		}

		m.SetInput(value)
	}

	if !c.Interactive {
		fmt.Fprintln(out, joinInts(m.Outputs()))
	}

	if c.Dump {
		if err := dump(out, m.Memory()); err != nil {
			return err
		}
	}

	log.Printf("%d instructions, %d resumptions, %.0f instructions/s",
		m.InstructionCount(), ctl.Resumptions(), ctl.Frequency())
	return nil
}

// dump writes memory as program text. Memory too sparse to lay out
// densely is listed as addr=value lines instead.
func dump(w io.Writer, mem vm.Memory) error {
	img, err := mem.Image()
	if err == nil {
		return image.Format(w, img)
	}

	if errors.Cause(err) != vm.ErrSparseImage {
		return err
	}

	for _, addr := range mem.Addresses() {
		if _, err := fmt.Fprintf(w, "%d=%d\n", addr, mem.Read(addr)); err != nil {
			return err
		}
	}
	return nil
}

// lineReader reads lines of user input.
type lineReader interface {
	Readline() (string, error)
}

// readInput prompts until the user enters a valid integer.
func readInput(r lineReader) (int64, error) {
	for {
		line, err := r.Readline()
		if err == readline.ErrInterrupt || err == io.EOF {
			return 0, errors.New("input aborted")
		}
		if err != nil {
			return 0, errors.Wrap(err, "read input")
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		value, err := strconv.ParseInt(line, 10, 64)
		if err == nil {
			return value, nil
		}

		log.Printf("invalid input %q; expected an integer", line)
	}
}

// joinInts renders values as a comma separated list.
func joinInts(values []int64) string {
	var sb strings.Builder
	for i, v := range values {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.FormatInt(v, 10))
	}
	return sb.String()
}
