package main

import (
	"fmt"
	"log"

	"github.com/hexaflex/intcode/amplifier"
	"github.com/hexaflex/intcode/image"
	"github.com/hexaflex/intcode/vm"
	"github.com/spf13/cobra"
)

// runAmplifier evaluates an amplifier circuit for the loaded program.
func runAmplifier(cmd *cobra.Command, c *Config) error {
	program, err := image.Load(c.Image)
	if err != nil {
		return err
	}

	opts := []vm.Option{vm.WithStepLimit(c.StepLimit)}
	if c.PrintTrace {
		opts = append(opts, vm.WithTrace(func(i *vm.Instruction) {
			log.Println(i)
		}))
	}

	out := cmd.OutOrStdout()

	if len(c.Order) > 0 {
		signal, err := amplifier.New(program, len(c.Order), opts...).Signal(c.Order)
		if err != nil {
			return err
		}

		fmt.Fprintln(out, signal)
		return nil
	}

	circuit := amplifier.New(program, len(c.Phases), opts...)
	res, err := circuit.MaxSignal(cmd.Context(), c.Phases, c.Workers)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "%d (phases %s)\n", res.Signal, joinInts(res.Phases))
	return nil
}
