package arch

// AddressMode defines instruction parameter address modes.
type AddressMode byte

// Known address modes.
const (
	Position  AddressMode = 0 // x = mem[123]
	Immediate AddressMode = 1 // x = 123
	Relative  AddressMode = 2 // x = mem[base+123]
)

// Valid returns true if m is a known address mode.
func (m AddressMode) Valid() bool {
	return m <= Relative
}

func (m AddressMode) String() string {
	switch m {
	case Position:
		return "position"
	case Immediate:
		return "immediate"
	case Relative:
		return "relative"
	}
	return "unknown"
}
