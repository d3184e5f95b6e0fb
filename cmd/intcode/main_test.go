package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chzyer/readline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePokes(t *testing.T) {
	pokes, err := parsePokes([]string{"1=12", " 2 = 2", "100=-7"})
	require.NoError(t, err)
	assert.Equal(t, []Poke{{1, 12}, {2, 2}, {100, -7}}, pokes)

	for _, s := range []string{"1", "x=1", "1=y", "-1=5", "1=99999999999999999999"} {
		_, err := parsePokes([]string{s})
		assert.Error(t, err, "%q", s)
	}
}

func TestDisassemble(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, disassemble(&buf, []int64{1002, 4, 3, 4, 33, 3, 50, 104, 7, 99, 19, 1, 2}))

	assert.Equal(t, strings.Join([]string{
		"0000 MUL  [4], #3, [4]",
		"0004 DATA 33",
		"0005 IN   [50]",
		"0007 OUT  #7",
		"0009 HALT",
		"0010 DATA 19",
		"0011 DATA 1",
		"0012 DATA 2",
		"",
	}, "\n"), buf.String())
}

func TestRun(t *testing.T) {
	file := writeProgram(t, "3,9,8,9,10,9,4,9,99,-1,8\n")

	out, err := execute(t, "run", "--input", "8", file)
	require.NoError(t, err)
	assert.Equal(t, "1\n", out)

	out, err = execute(t, "run", "--input", "7", file)
	require.NoError(t, err)
	assert.Equal(t, "0\n", out)
}

func TestRunPokeDump(t *testing.T) {
	file := writeProgram(t, "1,0,0,3,99")

	out, err := execute(t, "run", "--poke", "1=4", "--dump", file)
	require.NoError(t, err)
	assert.Equal(t, "\n1,4,0,100,99\n", out)
}

func TestRunDumpSparse(t *testing.T) {
	file := writeProgram(t, "1101,7,7,4611686018427387904,99")

	out, err := execute(t, "run", "--dump", file)
	require.NoError(t, err)
	assert.Equal(t, strings.Join([]string{
		"",
		"0=1101",
		"1=7",
		"2=7",
		"3=4611686018427387904",
		"4=99",
		"4611686018427387904=14",
		"",
	}, "\n"), out)
}

func TestRunMissingInput(t *testing.T) {
	file := writeProgram(t, "3,0,99")

	_, err := execute(t, "run", file)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "program waits for input")
}

func TestRunStepLimit(t *testing.T) {
	file := writeProgram(t, "1105,1,0")

	_, err := execute(t, "run", "--step-limit", "100", file)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "instruction limit exceeded")
}

func TestRunMalformed(t *testing.T) {
	file := writeProgram(t, "1,,2")

	_, err := execute(t, "run", file)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected number")
}

func TestAmp(t *testing.T) {
	series := writeProgram(t, "3,15,3,16,1002,16,10,16,1,16,15,15,4,15,99,0,0")
	feedback := writeProgram(t, "3,26,1001,26,-4,26,3,27,1002,27,2,27,1,27,26,27,4,27,1001,28,-1,28,1005,28,6,99,0,0,5")

	out, err := execute(t, "amp", series)
	require.NoError(t, err)
	assert.Equal(t, "43210 (phases 4,3,2,1,0)\n", out)

	out, err = execute(t, "amp", "--workers", "2", "--feedback", feedback)
	require.NoError(t, err)
	assert.Equal(t, "139629729 (phases 9,8,7,6,5)\n", out)

	out, err = execute(t, "amp", "--order", "4,3,2,1,0", series)
	require.NoError(t, err)
	assert.Equal(t, "43210\n", out)
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "--version")
	require.NoError(t, err)
	assert.Equal(t, Version()+"\n", out)
	assert.True(t, strings.HasPrefix(out, "hexaflex intcode "))
}

type lines []string

func (l *lines) Readline() (string, error) {
	if len(*l) == 0 {
		return "", io.EOF
	}
	s := (*l)[0]
	*l = (*l)[1:]
	return s, nil
}

func TestReadInput(t *testing.T) {
	r := &lines{"", "abc", " -12 "}
	v, err := readInput(r)
	require.NoError(t, err)
	assert.Equal(t, int64(-12), v)

	_, err = readInput(r)
	assert.EqualError(t, err, "input aborted")
}

type interrupted struct{}

func (interrupted) Readline() (string, error) { return "", readline.ErrInterrupt }

func TestReadInputInterrupt(t *testing.T) {
	_, err := readInput(interrupted{})
	assert.EqualError(t, err, "input aborted")
}

func TestControllerFrequency(t *testing.T) {
	ctl := NewController([]int64{1101, 1, 2, 0, 99}, false, 0)
	assert.Zero(t, ctl.Frequency())

	_, _, err := ctl.Resume()
	require.NoError(t, err)
	assert.Equal(t, 1, ctl.Resumptions())
	assert.Equal(t, int64(2), ctl.Machine().InstructionCount())
	assert.Equal(t, int64(3), ctl.Machine().Peek(0))
}

func writeProgram(t *testing.T, text string) string {
	t.Helper()
	file := filepath.Join(t.TempDir(), "program.txt")
	require.NoError(t, os.WriteFile(file, []byte(text), 0644))
	return file
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}
