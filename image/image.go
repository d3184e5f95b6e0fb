// Package image reads and writes Intcode program text: a flat, comma
// separated list of decimal integers where index equals address.
package image

import (
	"bufio"
	"io"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Parse reads program text from the given reader. The filename provides
// source context for errors. Malformed text yields an *Error.
func Parse(r io.Reader, filename string) (program []int64, err error) {
	var tok tokenizer

	tok.data, err = io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrapf(err, "image: read %s", filename)
	}

	// The tokenizer breaks out of its loop through the use of a panic,
	// We need to catch it here and convert it to a proper error message.
	defer func() {
		x := recover()
		if x == nil {
			return
		}

		if _, ok := x.(runtime.Error); ok {
			panic(x)
		}

		program = nil
		err = x.(error)
	}()

	tok.start = Position{
		File: filename,
		Line: 1,
		Col:  1,
	}
	tok.end = tok.start
	tok.readDocument()
	return tok.out, nil
}

// ParseString parses the given program text.
func ParseString(text string) ([]int64, error) {
	return Parse(strings.NewReader(text), "<string>")
}

// Load reads program text from the given file.
func Load(file string) ([]int64, error) {
	fd, err := os.Open(file)
	if err != nil {
		return nil, errors.Wrap(err, "image: load failed")
	}

	defer fd.Close()
	return Parse(bufio.NewReader(fd), file)
}

// Format writes the program as comma separated text, followed by a newline.
func Format(w io.Writer, program []int64) error {
	bw := bufio.NewWriter(w)

	for i, v := range program {
		if i > 0 {
			bw.WriteByte(',')
		}
		bw.WriteString(strconv.FormatInt(v, 10))
	}

	bw.WriteByte('\n')
	return errors.Wrap(bw.Flush(), "image: write failed")
}

// Save writes the program text to the given file, replacing its contents.
func Save(file string, program []int64) (err error) {
	fd, err := os.Create(file)
	if err != nil {
		return errors.Wrap(err, "image: save failed")
	}

	defer func() {
		fd.Close()
		// delete file on error
		if err != nil {
			os.Remove(file)
		}
	}()

	return Format(fd, program)
}
