package amplifier

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Known circuit failures.
var (
	ErrNoSignal = errors.New("stage produced no output")
	ErrStalled  = errors.New("stage finished before the circuit")
)

// ErrorSet collects the failures of a phase search, one entry per
// failed phase ordering, in generation order.
type ErrorSet []error

func (e ErrorSet) Len() int {
	return len(e)
}

func (e *ErrorSet) Append(args ...error) {
	*e = append(*e, args...)
}

// Unwrap exposes the individual failures to errors.Is and errors.As.
func (e ErrorSet) Unwrap() []error {
	return e
}

func (e ErrorSet) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "amplifier: %d phase orderings failed", len(e))
	for _, err := range e {
		sb.WriteString("\n\t" + err.Error())
	}
	return sb.String()
}
