package image

import (
	"fmt"
	"strconv"
)

// tokenizer defines tokenizer state.
type tokenizer struct {
	data  []byte
	start Position
	end   Position
	out   []int64
	index int // Address of the value being read.
}

// readDocument reads a comma separated list of decimal integers.
// Whitespace, including line breaks, may surround each value.
func (t *tokenizer) readDocument() {
	t.readSpace()
	if t.atEOF() {
		t.error("empty program")
	}

	for {
		t.readSpace()
		t.readNumber()
		t.readSpace()

		if t.atEOF() {
			return
		}

		if !t.readChar(',') {
			t.error("unexpected token: %q; expected ','", t.peek())
		}

		t.index++
	}
}

// readNumber reads a signed decimal integer.
func (t *tokenizer) readNumber() {
	t.ignore()

	if !t.readChar('-') {
		t.readChar('+')
	}

	digits := 0
	for !t.atEOF() && isDigit(t.peek()) {
		t.read()
		digits++
	}

	if digits == 0 {
		if t.atEOF() {
			t.error("unexpected end of input; expected number")
		}
		t.error("unexpected token: %q; expected number", t.peek())
	}

	v, err := strconv.ParseInt(t.current(), 10, 64)
	if err != nil {
		t.errorAt(t.start, "value %s does not fit into 64 bits", t.current())
	}

	t.out = append(t.out, v)
	t.ignore()
}

// readSpace skips whitespace.
func (t *tokenizer) readSpace() {
	for !t.atEOF() && isSpace(t.peek()) {
		t.read()
	}
	t.ignore()
}

// readChar reads the next byte, only if it matches x.
func (t *tokenizer) readChar(x byte) bool {
	if t.atEOF() || t.peek() != x {
		return false
	}
	t.read()
	return true
}

// current returns the current read token.
func (t *tokenizer) current() string {
	return string(t.data[t.start.Offset:t.end.Offset])
}

// error aborts tokenizing with the given message at the read position.
func (t *tokenizer) error(f string, argv ...interface{}) {
	t.errorAt(t.end, f, argv...)
}

// errorAt aborts tokenizing with the given message at pos.
func (t *tokenizer) errorAt(pos Position, f string, argv ...interface{}) {
	panic(&Error{
		Pos:     pos,
		Address: t.index,
		Msg:     fmt.Sprintf(f, argv...),
	})
}

// ignore skips the currently read buffer.
func (t *tokenizer) ignore() {
	t.start = t.end
}

// atEOF returns true if all input was consumed.
func (t *tokenizer) atEOF() bool {
	return t.end.Offset >= len(t.data)
}

// peek returns the next byte without consuming it.
func (t *tokenizer) peek() byte {
	return t.data[t.end.Offset]
}

// read reads the next byte from the stream.
func (t *tokenizer) read() byte {
	r := t.data[t.end.Offset]
	t.end.advance(r)
	return r
}

func isDigit(x byte) bool {
	return x >= '0' && x <= '9'
}

func isSpace(x byte) bool {
	switch x {
	case ' ', '\t', '\r', '\n':
		return true
	}
	return false
}
