package serial

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
)

// Family identifies the control mechanism used to configure a device
type Family int

const (
	FamilyTermios     Family = iota // Linux: stty -F <path>
	FamilyBSD                       // Darwin and the BSDs: stty -f <path>
	FamilyWindowsMode               // Windows: mode COMn
)

func (f Family) String() string {
	switch f {
	case FamilyTermios:
		return "termios"
	case FamilyBSD:
		return "bsd"
	case FamilyWindowsMode:
		return "windows-mode"
	default:
		return fmt.Sprintf("Family(%d)", int(f))
	}
}

// Device is a resolved device identity. Path is what the handle is opened
// against; Label is what the configuration command addresses.
type Device struct {
	Name   string // as passed to DeviceSet
	Path   string
	Label  string
	Family Family
}

// Platform translates line configuration requests into the control command of
// one platform family and runs them.
type Platform interface {
	Family() Family

	// Resolve maps a user supplied name to a device identity without touching
	// the system.
	Resolve(name string) (Device, error)

	// Probe reports whether the configuration tool accepts the device.
	Probe(ctx context.Context, dev Device) bool

	// Apply runs the configuration command for dev with the given tokens.
	Apply(ctx context.Context, dev Device, tokens []string) (CommandResult, error)

	BaudRateTokens(rate int) ([]string, error)
	ParityTokens(p Parity) ([]string, error)
	CharacterLengthTokens(bits int) []string
	StopBitsTokens(s StopBits) ([]string, error)
	FlowControlTokens(f FlowControl) ([]string, error)
}

var comPattern = regexp.MustCompile(`(?i)^COM(\d+):?$`)

// parseCOM extracts n from a COM<n> label. ok is false when name is not a COM
// label; a COM label with n < 1 is an error.
func parseCOM(name string) (n int, ok bool, err error) {
	m := comPattern.FindStringSubmatch(name)
	if m == nil {
		return 0, false, nil
	}
	n, err = strconv.Atoi(m[1])
	if err != nil || n < 1 {
		return 0, true, fmt.Errorf("%w: %s", ErrInvalidDevice, name)
	}
	return n, true, nil
}

// familyForOS picks the platform family for a GOOS value
func familyForOS(goos string) (Family, error) {
	switch goos {
	case "linux":
		return FamilyTermios, nil
	case "darwin", "freebsd", "netbsd", "openbsd", "dragonfly":
		return FamilyBSD, nil
	case "windows":
		return FamilyWindowsMode, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedPlatform, goos)
	}
}

// NewPlatform returns the adapter for a family, running its commands with r.
func NewPlatform(f Family, r Runner) (Platform, error) {
	switch f {
	case FamilyTermios:
		return &sttyPlatform{family: FamilyTermios, deviceFlag: "-F", runner: r}, nil
	case FamilyBSD:
		return &sttyPlatform{family: FamilyBSD, deviceFlag: "-f", runner: r}, nil
	case FamilyWindowsMode:
		return &modePlatform{runner: r}, nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedPlatform, f)
	}
}
