package main

import (
	"fmt"
	"io"

	"github.com/hexaflex/intcode/image"
	"github.com/hexaflex/intcode/vm"
	"github.com/spf13/cobra"
)

func disassembleFile(cmd *cobra.Command, c *Config) error {
	program, err := image.Load(c.Image)
	if err != nil {
		return err
	}
	return disassemble(cmd.OutOrStdout(), program)
}

// disassemble writes a linear listing of the program. Words which do not
// decode as an instruction, or whose parameters run past the end of the
// program, are listed as raw data.
func disassemble(w io.Writer, program []int64) error {
	mem := vm.Load(program)
	size := int64(len(program))

	var instr vm.Instruction
	for ip := int64(0); ip < size; {
		if err := instr.Decode(mem, ip); err != nil || ip+instr.Size() > size {
			if _, err := fmt.Fprintf(w, "%04d DATA %d\n", ip, program[ip]); err != nil {
				return err
			}
			ip++
			continue
		}

		if _, err := fmt.Fprintln(w, instr.String()); err != nil {
			return err
		}
		ip += instr.Size()
	}

	return nil
}
