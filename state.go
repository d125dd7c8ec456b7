package serial

// State is the device lifecycle state of a Port
type State int

const (
	StateNotSet State = iota // no device chosen
	StateSet                 // device resolved and probed, no handle
	StateOpened              // handle open
)

func (s State) String() string {
	switch s {
	case StateNotSet:
		return "not set"
	case StateSet:
		return "set"
	case StateOpened:
		return "opened"
	default:
		return "unknown"
	}
}
