package serial

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeRunner records every command and answers from a script keyed by the
// full command line. Unscripted commands succeed.
type fakeRunner struct {
	calls   []string
	results map[string]CommandResult
	err     error
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{results: make(map[string]CommandResult)}
}

func (r *fakeRunner) Run(ctx context.Context, name string, args ...string) (CommandResult, error) {
	line := strings.Join(append([]string{name}, args...), " ")
	r.calls = append(r.calls, line)
	if r.err != nil {
		return CommandResult{}, r.err
	}
	return r.results[line], nil
}

func (r *fakeRunner) last() string {
	if len(r.calls) == 0 {
		return ""
	}
	return r.calls[len(r.calls)-1]
}

// fakeHandle serves reads from pending and records writes
type fakeHandle struct {
	pending   []byte
	readSizes []int
	writes    [][]byte
	writeErr  error
	closeErr  error
	closed    bool
}

func (h *fakeHandle) Read(max int) ([]byte, error) {
	h.readSizes = append(h.readSizes, max)
	n := max
	if n > len(h.pending) {
		n = len(h.pending)
	}
	out := append([]byte(nil), h.pending[:n]...)
	h.pending = h.pending[n:]
	return out, nil
}

func (h *fakeHandle) Write(p []byte) (int, error) {
	h.writes = append(h.writes, append([]byte(nil), p...))
	if h.writeErr != nil {
		return 0, h.writeErr
	}
	return len(p), nil
}

func (h *fakeHandle) Close() error {
	if h.closeErr != nil {
		return h.closeErr
	}
	h.closed = true
	return nil
}

var errBoom = errors.New("boom")

type testPort struct {
	*Port
	runner  *fakeRunner
	handle  *fakeHandle
	opened  []string
	openErr error
}

// newTestPort builds a Port for family with fake collaborators. Every open
// hands out the same fakeHandle.
func newTestPort(t *testing.T, family Family, opts ...Option) *testPort {
	t.Helper()
	tp := &testPort{runner: newFakeRunner(), handle: &fakeHandle{}}
	opener := func(path string, f OpenFlags) (Handle, error) {
		tp.opened = append(tp.opened, path)
		if tp.openErr != nil {
			return nil, tp.openErr
		}
		tp.handle.closed = false
		return tp.handle, nil
	}
	base := []Option{
		WithPlatform(family),
		WithRunner(tp.runner),
		WithOpener(opener),
		WithSettleDelay(0),
	}
	p, err := New(append(base, opts...)...)
	require.NoError(t, err)
	tp.Port = p
	return tp
}

// setPort returns a port already in StateSet on a termios /dev/ttyS0
func setPort(t *testing.T, opts ...Option) *testPort {
	t.Helper()
	tp := newTestPort(t, FamilyTermios, opts...)
	require.NoError(t, tp.DeviceSet("/dev/ttyS0"))
	return tp
}

func openedPort(t *testing.T, opts ...Option) *testPort {
	t.Helper()
	tp := setPort(t, opts...)
	require.NoError(t, tp.DeviceOpen(DefaultOpenMode))
	return tp
}
