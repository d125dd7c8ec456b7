package serial

import (
	"runtime"
	"time"

	"github.com/rs/zerolog"
)

// Config holds the configuration for a Port
type Config struct {
	OS             string  // host operating system, as runtime.GOOS
	Platform       *Family // overrides the family derived from OS
	Runner         Runner  // runs configuration commands
	Opener         Opener  // opens device handles
	AutoFlush      bool    // flush the output buffer on every SendMessage
	SettleDelay    time.Duration
	ReadChunkSize  int
	CommandTimeout time.Duration
	Locale         string // LC_ALL for configuration commands, empty inherits
	Logger         zerolog.Logger
}

// Option is a functional option for configuring a Port
type Option func(*Config) error

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() Config {
	return Config{
		OS:             runtime.GOOS,
		Opener:         OpenDevice,
		AutoFlush:      true,
		SettleDelay:    100 * time.Millisecond,
		ReadChunkSize:  128,
		CommandTimeout: 5 * time.Second,
		Logger:         zerolog.Nop(),
	}
}

// WithOS selects the platform family as if running on goos
func WithOS(goos string) Option {
	return func(c *Config) error {
		if _, err := familyForOS(goos); err != nil {
			return err
		}
		c.OS = goos
		return nil
	}
}

// WithPlatform forces a platform family regardless of the host OS
func WithPlatform(f Family) Option {
	return func(c *Config) error {
		if f < FamilyTermios || f > FamilyWindowsMode {
			return ErrUnsupportedPlatform
		}
		c.Platform = &f
		return nil
	}
}

// WithRunner sets the command runner used for probing and configuration
func WithRunner(r Runner) Option {
	return func(c *Config) error {
		if r == nil {
			return ErrInvalidParameter
		}
		c.Runner = r
		return nil
	}
}

// WithOpener sets the function used to open device handles
func WithOpener(o Opener) Option {
	return func(c *Config) error {
		if o == nil {
			return ErrInvalidParameter
		}
		c.Opener = o
		return nil
	}
}

// WithAutoFlush sets whether SendMessage flushes immediately
func WithAutoFlush(enabled bool) Option {
	return func(c *Config) error {
		c.AutoFlush = enabled
		return nil
	}
}

// WithSettleDelay sets the default wait after SendMessage
func WithSettleDelay(d time.Duration) Option {
	return func(c *Config) error {
		if d < 0 {
			return ErrInvalidParameter
		}
		c.SettleDelay = d
		return nil
	}
}

// WithReadChunkSize sets the size of each read issued by ReadPort
func WithReadChunkSize(n int) Option {
	return func(c *Config) error {
		if n <= 0 {
			return ErrInvalidParameter
		}
		c.ReadChunkSize = n
		return nil
	}
}

// WithCommandTimeout bounds every configuration command
func WithCommandTimeout(d time.Duration) Option {
	return func(c *Config) error {
		if d <= 0 {
			return ErrInvalidParameter
		}
		c.CommandTimeout = d
		return nil
	}
}

// WithLocale sets LC_ALL for configuration commands. It only applies to the
// default runner.
func WithLocale(locale string) Option {
	return func(c *Config) error {
		c.Locale = locale
		return nil
	}
}

// WithLogger sets the logger
func WithLogger(l zerolog.Logger) Option {
	return func(c *Config) error {
		c.Logger = l
		return nil
	}
}
