package serial

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Port is a serial port driven through its device lifecycle:
// DeviceSet, DeviceOpen, I/O, DeviceClose. Line parameters can only be
// changed while the device is set and not opened.
//
// A Port is owned by one goroutine; callers sharing it must serialize calls.
type Port struct {
	config   Config
	platform Platform
	log      zerolog.Logger

	state  State
	device Device
	handle Handle
	buffer []byte
}

// New creates a Port for the host platform family
func New(opts ...Option) (*Port, error) {
	config := DefaultConfig()
	for _, opt := range opts {
		if err := opt(&config); err != nil {
			return nil, err
		}
	}

	var family Family
	if config.Platform != nil {
		family = *config.Platform
	} else {
		f, err := familyForOS(config.OS)
		if err != nil {
			return nil, err
		}
		family = f
	}

	if config.Runner == nil {
		var env []string
		if config.Locale != "" {
			env = append(env, "LC_ALL="+config.Locale)
		}
		config.Runner = NewExecRunner(env...)
	}

	platform, err := NewPlatform(family, config.Runner)
	if err != nil {
		return nil, err
	}

	return &Port{
		config:   config,
		platform: platform,
		log:      config.Logger.With().Str("component", "serial").Str("family", family.String()).Logger(),
		state:    StateNotSet,
	}, nil
}

// State returns the current lifecycle state
func (p *Port) State() State { return p.state }

// Device returns the resolved device; zero until DeviceSet succeeds
func (p *Port) Device() Device { return p.device }

// Family returns the platform family selected at construction
func (p *Port) Family() Family { return p.platform.Family() }

// AutoFlush reports whether SendMessage flushes immediately
func (p *Port) AutoFlush() bool { return p.config.AutoFlush }

// SetAutoFlush switches between automatic and manual flushing
func (p *Port) SetAutoFlush(enabled bool) { p.config.AutoFlush = enabled }

// Buffered returns a copy of the pending output
func (p *Port) Buffered() []byte {
	return append([]byte(nil), p.buffer...)
}

func (p *Port) commandContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), p.config.CommandTimeout)
}

// DeviceSet resolves name and probes it with the platform's configuration
// tool. It fails with ErrAlreadyOpen while a handle is open.
func (p *Port) DeviceSet(name string) error {
	if p.state == StateOpened {
		return fmt.Errorf("%w: close the device before setting another one", ErrAlreadyOpen)
	}

	dev, err := p.platform.Resolve(name)
	if err != nil {
		p.log.Warn().Str("name", name).Err(err).Msg("device rejected")
		return err
	}

	ctx, cancel := p.commandContext()
	defer cancel()
	if !p.platform.Probe(ctx, dev) {
		p.log.Warn().Str("name", name).Str("path", dev.Path).Msg("device probe failed")
		return fmt.Errorf("%w: %s", ErrInvalidDevice, name)
	}

	p.device = dev
	p.state = StateSet
	p.log.Debug().Str("path", dev.Path).Str("label", dev.Label).Msg("device set")
	return nil
}

// DeviceOpen opens the device in non-blocking mode. mode follows fopen:
// one of r, a, w, optionally followed by + and then b.
func (p *Port) DeviceOpen(mode string) error {
	switch p.state {
	case StateOpened:
		return ErrAlreadyOpen
	case StateNotSet:
		return fmt.Errorf("%w: the device must be set before it is opened", ErrNotReady)
	}

	flags, err := ParseMode(mode)
	if err != nil {
		return err
	}

	h, err := p.config.Opener(p.device.Path, flags)
	if err != nil {
		p.log.Warn().Str("path", p.device.Path).Err(err).Msg("open failed")
		return fmt.Errorf("%w: %s: %v", ErrOpenFailed, p.device.Path, err)
	}

	p.handle = h
	p.state = StateOpened
	p.log.Debug().Str("path", p.device.Path).Str("mode", mode).Msg("device opened")
	return nil
}

// DeviceClose closes the handle. Closing a device that is not opened is a
// no-op. A failed close leaves the port opened and is not retried.
func (p *Port) DeviceClose() error {
	if p.state != StateOpened {
		return nil
	}

	if err := p.handle.Close(); err != nil {
		p.log.Error().Str("path", p.device.Path).Err(err).Msg("close failed")
		return fmt.Errorf("%w: %v", ErrCloseFailed, err)
	}

	p.handle = nil
	p.state = StateSet
	p.log.Debug().Str("path", p.device.Path).Msg("device closed")
	return nil
}

// configure runs one configuration command. build is only called once the
// state check passed, and the platform only once build succeeded.
func (p *Port) configure(setting string, build func() ([]string, error)) error {
	if p.state != StateSet {
		return fmt.Errorf("%w: unable to set %s, the device is %s", ErrNotReady, setting, p.state)
	}

	tokens, err := build()
	if err != nil {
		return err
	}

	ctx, cancel := p.commandContext()
	defer cancel()

	res, err := p.platform.Apply(ctx, p.device, tokens)
	if err != nil {
		return &ConfigError{Setting: setting, ExitCode: -1, Detail: err.Error()}
	}
	if res.ExitCode != 0 {
		p.log.Warn().Str("setting", setting).Strs("tokens", tokens).
			Int("exit", res.ExitCode).Str("stderr", res.Stderr).Msg("configuration failed")
		return &ConfigError{Setting: setting, ExitCode: res.ExitCode, Detail: res.Stderr}
	}

	p.log.Debug().Str("setting", setting).Strs("tokens", tokens).Msg("configured")
	return nil
}

// ConfBaudRate sets the baud rate. Supported rates are 110, 150, 300, 600,
// 1200, 2400, 4800, 9600, 19200, 38400, 57600 and 115200.
func (p *Port) ConfBaudRate(rate int) error {
	return p.configure("baud rate", func() ([]string, error) {
		return p.platform.BaudRateTokens(rate)
	})
}

// ConfParity sets the parity mode
func (p *Port) ConfParity(parity Parity) error {
	return p.configure("parity", func() ([]string, error) {
		return p.platform.ParityTokens(parity)
	})
}

// ConfCharacterLength sets the character length. Lengths below 5 become 5,
// all others become 8.
func (p *Port) ConfCharacterLength(bits int) error {
	return p.configure("character length", func() ([]string, error) {
		return p.platform.CharacterLengthTokens(bits), nil
	})
}

// ConfStopBits sets the stop bit length. 1.5 is only available on the
// termios family.
func (p *Port) ConfStopBits(stop StopBits) error {
	return p.configure("stop bit length", func() ([]string, error) {
		return p.platform.StopBitsTokens(stop)
	})
}

// ConfFlowControl sets the flow control mode
func (p *Port) ConfFlowControl(flow FlowControl) error {
	return p.configure("flow control", func() ([]string, error) {
		return p.platform.FlowControlTokens(flow)
	})
}

// Configure applies a whole line profile, stopping at the first failure
func (p *Port) Configure(lc LineConfig) error {
	steps := []func() error{
		func() error { return p.ConfBaudRate(lc.BaudRate) },
		func() error { return p.ConfParity(lc.Parity) },
		func() error { return p.ConfCharacterLength(lc.DataBits) },
		func() error { return p.ConfStopBits(lc.StopBits) },
		func() error { return p.ConfFlowControl(lc.FlowControl) },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

// SendMessage queues data, flushes it when auto flush is on and then waits
// the configured settle delay for the remote end to answer.
func (p *Port) SendMessage(data []byte) error {
	return p.SendMessageContext(context.Background(), data, p.config.SettleDelay)
}

// SendMessageContext is SendMessage with an explicit settle delay. The wait
// ends early with ctx.Err() when ctx is done.
func (p *Port) SendMessageContext(ctx context.Context, data []byte, wait time.Duration) error {
	p.buffer = append(p.buffer, data...)

	if p.config.AutoFlush {
		if _, err := p.SerialFlush(); err != nil {
			return err
		}
	}

	if wait <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// SerialFlush writes the whole output buffer. It returns false without error
// when the device is not opened, leaving the buffer untouched. Otherwise the
// buffer is cleared whether or not the write succeeded.
func (p *Port) SerialFlush() (bool, error) {
	if p.state != StateOpened {
		return false, nil
	}

	data := p.buffer
	p.buffer = nil

	n, err := p.handle.Write(data)
	if err == nil && n < len(data) {
		err = fmt.Errorf("short write: %d of %d bytes", n, len(data))
	}
	if err != nil {
		p.log.Warn().Int("bytes", len(data)).Int("written", n).Err(err).Msg("flush failed, output discarded")
		return false, fmt.Errorf("%w: %v", ErrFlushFailed, err)
	}

	p.log.Debug().Int("bytes", n).Msg("flushed")
	return true, nil
}

// ReadPort drains what the device currently has available. It reads in
// chunks until a chunk comes back short or maxBytes bytes were read; a
// maxBytes of 0 means no limit. It never waits for data.
func (p *Port) ReadPort(maxBytes int) ([]byte, error) {
	if p.state != StateOpened {
		return nil, fmt.Errorf("%w: device must be opened to read it", ErrNotReady)
	}
	if maxBytes < 0 {
		return nil, fmt.Errorf("%w: negative read size %d", ErrInvalidParameter, maxBytes)
	}

	chunk := p.config.ReadChunkSize
	var content []byte
	for {
		want := chunk
		if maxBytes > 0 && maxBytes-len(content) < want {
			want = maxBytes - len(content)
		}

		b, err := p.handle.Read(want)
		content = append(content, b...)
		if err != nil {
			return content, fmt.Errorf("read %s: %w", p.device.Path, err)
		}

		if len(b) < want || (maxBytes > 0 && len(content) >= maxBytes) {
			return content, nil
		}
	}
}

// ReadPortContext waits up to wait for input to arrive and then drains it
// like ReadPort. Handles that cannot wait for readiness are drained at once.
func (p *Port) ReadPortContext(ctx context.Context, maxBytes int, wait time.Duration) ([]byte, error) {
	if p.state != StateOpened {
		return nil, fmt.Errorf("%w: device must be opened to read it", ErrNotReady)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < wait {
			wait = remaining
		}
	}

	if w, ok := p.handle.(readWaiter); ok && wait > 0 {
		if _, err := w.WaitReadable(wait); err != nil {
			return nil, fmt.Errorf("wait for %s: %w", p.device.Path, err)
		}
	}

	return p.ReadPort(maxBytes)
}
