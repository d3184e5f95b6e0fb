package main

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// Config defines program configuration.
type Config struct {
	Image       string  // Path to the program file to load.
	PrintTrace  bool    // Print instruction trace data?
	StepLimit   int64   // Instruction budget per machine; 0 is unlimited.
	Pokes       []Poke  // Memory patches applied before running.
	Inputs      []int64 // Input values fed to the program in order.
	Interactive bool    // Prompt for input once Inputs are exhausted?
	Dump        bool    // Print final memory contents?
	Phases      []int64 // Phase set searched by the amplifier.
	Feedback    bool    // Search the feedback phase set?
	Order       []int64 // Fixed phase order; skips the search.
	Workers     int     // Number of concurrent amplifier searches.
}

// Poke defines a memory patch.
type Poke struct {
	Addr  int64
	Value int64
}

// Default phase sets for series and feedback circuits.
var (
	seriesPhases   = []int64{0, 1, 2, 3, 4}
	feedbackPhases = []int64{5, 6, 7, 8, 9}
)

// newRootCommand creates the command tree. Each subcommand fills in
// its part of a shared Config.
func newRootCommand() *cobra.Command {
	var c Config

	root := &cobra.Command{
		Use:           AppName,
		Short:         "Run and inspect Intcode programs",
		Version:       Version(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.CompletionOptions.DisableDefaultCmd = true
	root.SetVersionTemplate("{{.Version}}\n")

	flags := root.PersistentFlags()
	flags.BoolVar(&c.PrintTrace, "trace", c.PrintTrace, "Print instruction trace data to stderr.")
	flags.Int64Var(&c.StepLimit, "step-limit", c.StepLimit, "Abort after this many instructions per machine (0 is unlimited).")

	root.AddCommand(
		newRunCommand(&c),
		newAmpCommand(&c),
		newDisasmCommand(&c),
	)

	return root
}

func newRunCommand(c *Config) *cobra.Command {
	var pokes []string

	cmd := &cobra.Command{
		Use:   "run [options] <program file>",
		Short: "Run a program",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error

			c.Image = args[0]
			if c.Pokes, err = parsePokes(pokes); err != nil {
				return err
			}

			return runProgram(cmd, c)
		},
	}

	flags := cmd.Flags()
	flags.StringSliceVar(&pokes, "poke", nil, "Patch memory before running, as addr=value. May be repeated.")
	flags.Int64SliceVar(&c.Inputs, "input", nil, "Comma-separated input values. May be repeated.")
	flags.BoolVar(&c.Interactive, "interactive", c.Interactive, "Prompt for input when the program waits for more.")
	flags.BoolVar(&c.Dump, "dump", c.Dump, "Print final memory contents.")
	return cmd
}

func newAmpCommand(c *Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "amp [options] <program file>",
		Short: "Find the phase settings producing the highest amplifier signal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.Image = args[0]
			if c.Feedback && !cmd.Flags().Changed("phases") {
				c.Phases = feedbackPhases
			}
			return runAmplifier(cmd, c)
		},
	}

	flags := cmd.Flags()
	flags.Int64SliceVar(&c.Phases, "phases", seriesPhases, "Phase set to search.")
	flags.BoolVar(&c.Feedback, "feedback", c.Feedback, "Search the feedback phase set 5-9 instead of 0-4.")
	flags.Int64SliceVar(&c.Order, "order", nil, "Evaluate this phase order only.")
	flags.IntVar(&c.Workers, "workers", 0, "Maximum number of concurrent evaluations (0 is unlimited).")
	return cmd
}

func newDisasmCommand(c *Config) *cobra.Command {
	return &cobra.Command{
		Use:   "disasm <program file>",
		Short: "Print a disassembly listing of a program",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.Image = args[0]
			return disassembleFile(cmd, c)
		},
	}
}

// parsePokes parses a list of addr=value patches.
func parsePokes(list []string) ([]Poke, error) {
	out := make([]Poke, 0, len(list))

	for _, s := range list {
		addr, value, ok := strings.Cut(s, "=")
		if !ok {
			return nil, errors.Errorf("invalid poke %q; expected addr=value", s)
		}

		var p Poke
		var err error

		if p.Addr, err = strconv.ParseInt(strings.TrimSpace(addr), 10, 64); err != nil {
			return nil, errors.Wrapf(err, "invalid poke %q", s)
		}

		if p.Value, err = strconv.ParseInt(strings.TrimSpace(value), 10, 64); err != nil {
			return nil, errors.Wrapf(err, "invalid poke %q", s)
		}

		if p.Addr < 0 {
			return nil, errors.Errorf("invalid poke %q; negative address", s)
		}

		out = append(out, p)
	}

	return out, nil
}
