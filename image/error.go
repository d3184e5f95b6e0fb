package image

import "fmt"

// Error defines malformed program text. Address is the index of the value
// being read when the problem was found, which is where it would have
// been loaded into memory.
type Error struct {
	Pos     Position
	Address int
	Msg     string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: address %d: %s", e.Pos, e.Address, e.Msg)
}
