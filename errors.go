package serial

import (
	"errors"
	"fmt"
)

// Predefined error kinds. Every Port operation fails with exactly one of them,
// usually wrapped together with the underlying cause; use errors.Is to test.
var (
	ErrUnsupportedPlatform = errors.New("unsupported platform")
	ErrInvalidDevice       = errors.New("specified serial port is not valid")
	ErrAlreadyOpen         = errors.New("serial device is already opened")
	ErrNotReady            = errors.New("serial device is not in the required state")
	ErrInvalidMode         = errors.New("invalid opening mode")
	ErrOpenFailed          = errors.New("failed to open the serial device")
	ErrCloseFailed         = errors.New("unable to close the serial device")
	ErrInvalidParameter    = errors.New("invalid serial parameter")
	ErrConfigFailed        = errors.New("serial configuration command failed")
	ErrFlushFailed         = errors.New("error while sending message")
)

// ConfigError reports a platform configuration command that exited nonzero.
// Detail holds the command's standard error output verbatim.
type ConfigError struct {
	Setting  string
	ExitCode int
	Detail   string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("unable to set %s (exit %d): %s", e.Setting, e.ExitCode, e.Detail)
}

// Is makes errors.Is(err, ErrConfigFailed) hold for any *ConfigError.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfigFailed
}
