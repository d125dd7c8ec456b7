package serial

import (
	"fmt"
	"strconv"
	"strings"
)

// Parity represents the parity mode
type Parity int

const (
	ParityNone Parity = iota
	ParityOdd
	ParityEven
)

func (p Parity) String() string {
	switch p {
	case ParityNone:
		return "none"
	case ParityOdd:
		return "odd"
	case ParityEven:
		return "even"
	default:
		return fmt.Sprintf("Parity(%d)", int(p))
	}
}

// ParseParity accepts "none", "odd" or "even".
func ParseParity(s string) (Parity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none":
		return ParityNone, nil
	case "odd":
		return ParityOdd, nil
	case "even":
		return ParityEven, nil
	default:
		return 0, fmt.Errorf("%w: parity mode %q not supported", ErrInvalidParameter, s)
	}
}

// FlowControl represents the flow control mode
type FlowControl int

const (
	FlowControlNone FlowControl = iota
	FlowControlRTSCTS
	FlowControlXonXoff
)

func (f FlowControl) String() string {
	switch f {
	case FlowControlNone:
		return "none"
	case FlowControlRTSCTS:
		return "rts/cts"
	case FlowControlXonXoff:
		return "xon/xoff"
	default:
		return fmt.Sprintf("FlowControl(%d)", int(f))
	}
}

// ParseFlowControl accepts "none", "rts/cts" or "xon/xoff".
func ParseFlowControl(s string) (FlowControl, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none":
		return FlowControlNone, nil
	case "rts/cts":
		return FlowControlRTSCTS, nil
	case "xon/xoff":
		return FlowControlXonXoff, nil
	default:
		return 0, fmt.Errorf("%w: invalid flow control mode %q", ErrInvalidParameter, s)
	}
}

// StopBits describes the stop bit length
type StopBits int

const (
	StopBitsOne StopBits = iota
	StopBitsOnePointFive
	StopBitsTwo
)

func (s StopBits) String() string {
	switch s {
	case StopBitsOne:
		return "1"
	case StopBitsOnePointFive:
		return "1.5"
	case StopBitsTwo:
		return "2"
	default:
		return fmt.Sprintf("StopBits(%d)", int(s))
	}
}

// ParseStopBits accepts 1, 1.5 or 2. Whether 1.5 is usable depends on the
// platform family; see Port.ConfStopBits.
func ParseStopBits(length float64) (StopBits, error) {
	switch length {
	case 1:
		return StopBitsOne, nil
	case 1.5:
		return StopBitsOnePointFive, nil
	case 2:
		return StopBitsTwo, nil
	default:
		return 0, fmt.Errorf("%w: stop bit length %s", ErrInvalidParameter,
			strconv.FormatFloat(length, 'f', -1, 64))
	}
}

// baudTokens maps every supported nominal rate to its windows mode token.
// Unix families use the rate itself.
var baudTokens = map[int]string{
	110:    "11",
	150:    "15",
	300:    "30",
	600:    "60",
	1200:   "12",
	2400:   "24",
	4800:   "48",
	9600:   "96",
	19200:  "19",
	38400:  "38400",
	57600:  "57600",
	115200: "115200",
}

// clampCharacterLength reproduces the coarse clamp: below 5 becomes 5,
// everything else becomes 8.
func clampCharacterLength(bits int) int {
	if bits < 5 {
		return 5
	}
	return 8
}

// LineConfig is a complete line profile applied with Port.Configure.
type LineConfig struct {
	BaudRate    int
	Parity      Parity
	DataBits    int
	StopBits    StopBits
	FlowControl FlowControl
}

// DefaultLineConfig returns 9600 8N1 without flow control
func DefaultLineConfig() LineConfig {
	return LineConfig{
		BaudRate:    9600,
		Parity:      ParityNone,
		DataBits:    8,
		StopBits:    StopBitsOne,
		FlowControl: FlowControlNone,
	}
}
