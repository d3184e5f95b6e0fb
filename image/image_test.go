package image

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	for _, tc := range []struct {
		text string
		want []int64
	}{
		{"99", []int64{99}},
		{"1,9,10,3,2,3,11,0,99,30,40,50", []int64{1, 9, 10, 3, 2, 3, 11, 0, 99, 30, 40, 50}},
		{"1002,4,3,4,33\n", []int64{1002, 4, 3, 4, 33}},
		{" 1101 , 100,\n-1, 4 ,0\r\n", []int64{1101, 100, -1, 4, 0}},
		{"+5,-9223372036854775808,9223372036854775807", []int64{5, -9223372036854775808, 9223372036854775807}},
	} {
		got, err := ParseString(tc.text)
		require.NoError(t, err, "%q", tc.text)
		assert.Equal(t, tc.want, got, "%q", tc.text)
	}
}

func TestParseErrors(t *testing.T) {
	for _, tc := range []struct {
		text string
		want string
	}{
		{"", "<string>:1:1: address 0: empty program"},
		{" \n ", "<string>:2:2: address 0: empty program"},
		{"1,,2", "<string>:1:3: address 1: unexpected token: ','; expected number"},
		{"1,2,", "<string>:1:5: address 2: unexpected end of input; expected number"},
		{"1 2", "<string>:1:3: address 0: unexpected token: '2'; expected ','"},
		{"1,\nx", "<string>:2:1: address 1: unexpected token: 'x'; expected number"},
		{"1,-", "<string>:1:4: address 1: unexpected end of input; expected number"},
		{"0,9223372036854775808", "<string>:1:3: address 1: value 9223372036854775808 does not fit into 64 bits"},
	} {
		_, err := ParseString(tc.text)
		require.Error(t, err, "%q", tc.text)

		var perr *Error
		require.True(t, errors.As(err, &perr), "%q: %T", tc.text, err)
		assert.Equal(t, tc.want, err.Error())
	}
}

func TestErrorAddress(t *testing.T) {
	_, err := Parse(strings.NewReader("1,2,\n3,4,x,6"), "")
	require.Error(t, err)

	var perr *Error
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, 4, perr.Address)
	assert.Equal(t, Position{Line: 2, Col: 5, Offset: 9}, perr.Pos)
	assert.Equal(t, "2:5: address 4: unexpected token: 'x'; expected number", err.Error())
}

func TestFormat(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Format(&buf, []int64{3, 0, 4, 0, -99}))
	assert.Equal(t, "3,0,4,0,-99\n", buf.String())

	got, err := ParseString(buf.String())
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 0, 4, 0, -99}, got)
}

func TestSaveLoad(t *testing.T) {
	file := filepath.Join(t.TempDir(), "prog.txt")
	program := []int64{109, 1, 204, -1, 1001, 100, 1, 100, 1008, 100, 16, 101, 1006, 101, 0, 99}

	require.NoError(t, Save(file, program))

	got, err := Load(file)
	require.NoError(t, err)
	assert.Equal(t, program, got)
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "image: load failed")
}

func TestLoadReportsFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "bad.txt")
	require.NoError(t, os.WriteFile(file, []byte("1;"), 0644))

	_, err := Load(file)
	require.Error(t, err)
	assert.Equal(t, file+":1:2: address 0: unexpected token: ';'; expected ','", err.Error())
}
