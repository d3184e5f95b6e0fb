package image

import "fmt"

// Position defines the location of a value in program text.
type Position struct {
	File   string // File the program was read from.
	Line   int    // Line number, starting at 1.
	Col    int    // Byte column, starting at 1.
	Offset int    // Byte offset from the start of the text.
}

// advance moves the position past byte b.
func (p *Position) advance(b byte) {
	p.Offset++
	if b == '\n' {
		p.Line++
		p.Col = 1
	} else {
		p.Col++
	}
}

func (p Position) String() string {
	if p.File == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Col)
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Col)
}
