package serial

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// sttyPlatform drives termios through stty. The Linux and BSD families share
// the token vocabulary and differ in the flag addressing the device.
type sttyPlatform struct {
	family     Family
	deviceFlag string
	runner     Runner
}

func (p *sttyPlatform) Family() Family { return p.family }

func (p *sttyPlatform) Resolve(name string) (Device, error) {
	if strings.TrimSpace(name) == "" {
		return Device{}, fmt.Errorf("%w: empty device name", ErrInvalidDevice)
	}

	path := name
	if p.family == FamilyTermios {
		n, ok, err := parseCOM(name)
		if err != nil {
			return Device{}, err
		}
		if ok {
			path = "/dev/ttyS" + strconv.Itoa(n-1)
		}
	}

	return Device{Name: name, Path: path, Label: path, Family: p.family}, nil
}

func (p *sttyPlatform) Probe(ctx context.Context, dev Device) bool {
	res, err := p.Apply(ctx, dev, nil)
	return err == nil && res.ExitCode == 0
}

func (p *sttyPlatform) Apply(ctx context.Context, dev Device, tokens []string) (CommandResult, error) {
	args := append([]string{p.deviceFlag, dev.Label}, tokens...)
	return p.runner.Run(ctx, "stty", args...)
}

func (p *sttyPlatform) BaudRateTokens(rate int) ([]string, error) {
	if _, ok := baudTokens[rate]; !ok {
		return nil, fmt.Errorf("%w: baud rate %d", ErrInvalidParameter, rate)
	}
	return []string{strconv.Itoa(rate)}, nil
}

func (p *sttyPlatform) ParityTokens(parity Parity) ([]string, error) {
	switch parity {
	case ParityNone:
		return []string{"-parenb"}, nil
	case ParityOdd:
		return []string{"parenb", "parodd"}, nil
	case ParityEven:
		return []string{"parenb", "-parodd"}, nil
	default:
		return nil, fmt.Errorf("%w: parity %v", ErrInvalidParameter, parity)
	}
}

func (p *sttyPlatform) CharacterLengthTokens(bits int) []string {
	return []string{"cs" + strconv.Itoa(clampCharacterLength(bits))}
}

func (p *sttyPlatform) StopBitsTokens(s StopBits) ([]string, error) {
	switch s {
	case StopBitsOne:
		return []string{"-cstopb"}, nil
	case StopBitsTwo:
		return []string{"cstopb"}, nil
	case StopBitsOnePointFive:
		// cstopb on a cs5 line is 1.5 stop bits on Linux UARTs
		if p.family == FamilyTermios {
			return []string{"cstopb"}, nil
		}
	}
	return nil, fmt.Errorf("%w: stop bit length %v on %v", ErrInvalidParameter, s, p.family)
}

func (p *sttyPlatform) FlowControlTokens(f FlowControl) ([]string, error) {
	switch f {
	case FlowControlNone:
		return []string{"clocal", "-crtscts", "-ixon", "-ixoff"}, nil
	case FlowControlRTSCTS:
		return []string{"-clocal", "crtscts", "-ixon", "-ixoff"}, nil
	case FlowControlXonXoff:
		return []string{"-clocal", "-crtscts", "ixon", "ixoff"}, nil
	default:
		return nil, fmt.Errorf("%w: flow control %v", ErrInvalidParameter, f)
	}
}
