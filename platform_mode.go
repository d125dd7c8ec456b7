package serial

import (
	"context"
	"fmt"
	"strconv"
)

// modePlatform configures COM ports with the Windows mode command
type modePlatform struct {
	runner Runner
}

func (p *modePlatform) Family() Family { return FamilyWindowsMode }

// Resolve only accepts COM<n> labels. The handle is opened through the
// \\.\COMn namespace, which also reaches ports numbered above 9.
func (p *modePlatform) Resolve(name string) (Device, error) {
	n, ok, err := parseCOM(name)
	if err != nil {
		return Device{}, err
	}
	if !ok {
		return Device{}, fmt.Errorf("%w: %q is not a COM port", ErrInvalidDevice, name)
	}

	label := "COM" + strconv.Itoa(n)
	return Device{
		Name:   name,
		Path:   `\\.\` + label,
		Label:  label,
		Family: FamilyWindowsMode,
	}, nil
}

func (p *modePlatform) Probe(ctx context.Context, dev Device) bool {
	res, err := p.Apply(ctx, dev, []string{"xon=on", "BAUD=9600"})
	return err == nil && res.ExitCode == 0
}

func (p *modePlatform) Apply(ctx context.Context, dev Device, tokens []string) (CommandResult, error) {
	args := append([]string{dev.Label}, tokens...)
	return p.runner.Run(ctx, "mode", args...)
}

func (p *modePlatform) BaudRateTokens(rate int) ([]string, error) {
	tok, ok := baudTokens[rate]
	if !ok {
		return nil, fmt.Errorf("%w: baud rate %d", ErrInvalidParameter, rate)
	}
	return []string{"BAUD=" + tok}, nil
}

func (p *modePlatform) ParityTokens(parity Parity) ([]string, error) {
	switch parity {
	case ParityNone, ParityOdd, ParityEven:
		return []string{"PARITY=" + parity.String()[:1]}, nil
	default:
		return nil, fmt.Errorf("%w: parity %v", ErrInvalidParameter, parity)
	}
}

func (p *modePlatform) CharacterLengthTokens(bits int) []string {
	return []string{"DATA=" + strconv.Itoa(clampCharacterLength(bits))}
}

func (p *modePlatform) StopBitsTokens(s StopBits) ([]string, error) {
	switch s {
	case StopBitsOne:
		return []string{"STOP=1"}, nil
	case StopBitsTwo:
		return []string{"STOP=2"}, nil
	default:
		return nil, fmt.Errorf("%w: stop bit length %v on %v", ErrInvalidParameter, s, FamilyWindowsMode)
	}
}

func (p *modePlatform) FlowControlTokens(f FlowControl) ([]string, error) {
	switch f {
	case FlowControlNone:
		return []string{"xon=off", "octs=off", "rts=on"}, nil
	case FlowControlRTSCTS:
		return []string{"xon=off", "octs=on", "rts=hs"}, nil
	case FlowControlXonXoff:
		return []string{"xon=on", "octs=off", "rts=on"}, nil
	default:
		return nil, fmt.Errorf("%w: flow control %v", ErrInvalidParameter, f)
	}
}
