package serial

import (
	"fmt"
	"regexp"
	"time"
)

// Handle is an open, non-blocking OS handle to a serial device. Read returns
// whatever is currently available, possibly nothing, and never blocks waiting
// for data. Handles do not buffer.
type Handle interface {
	Read(max int) ([]byte, error)
	Write(p []byte) (int, error)
	Close() error
}

// readWaiter is implemented by handles that can wait for input readiness
type readWaiter interface {
	WaitReadable(timeout time.Duration) (bool, error)
}

// OpenFlags is the decoded form of an fopen style mode string
type OpenFlags struct {
	Read     bool
	Write    bool
	Append   bool
	Truncate bool
}

// Opener opens a handle on a resolved device path
type Opener func(path string, flags OpenFlags) (Handle, error)

// DefaultOpenMode reads and writes without truncating
const DefaultOpenMode = "r+b"

var modePattern = regexp.MustCompile(`^[raw]\+?b?$`)

// ParseMode validates an opening mode such as "r", "w+" or "r+b".
// The binary suffix is accepted and has no effect.
func ParseMode(mode string) (OpenFlags, error) {
	if !modePattern.MatchString(mode) {
		return OpenFlags{}, fmt.Errorf("%w: %q, use open() modes", ErrInvalidMode, mode)
	}

	var f OpenFlags
	switch mode[0] {
	case 'r':
		f.Read = true
	case 'w':
		f.Write = true
		f.Truncate = true
	case 'a':
		f.Write = true
		f.Append = true
	}
	if len(mode) > 1 && mode[1] == '+' {
		f.Read = true
		f.Write = true
	}
	return f, nil
}
