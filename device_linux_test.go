package serial

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

// A FIFO opened read-write stands in for a tty: it accepts non-blocking
// opens and reads back what was written to it.
func openFIFO(t *testing.T) Handle {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tty")
	require.NoError(t, unix.Mkfifo(path, 0o600))

	h, err := OpenDevice(path, OpenFlags{Read: true, Write: true})
	require.NoError(t, err)
	t.Cleanup(func() { h.Close() })
	return h
}

func TestFDHandleNonBlockingRead(t *testing.T) {
	h := openFIFO(t)

	start := time.Now()
	b, err := h.Read(128)
	require.NoError(t, err)
	assert.Empty(t, b)
	assert.Less(t, time.Since(start), time.Second)
}

func TestFDHandleWriteRead(t *testing.T) {
	h := openFIFO(t)

	n, err := h.Write([]byte("AT\r\n"))
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	b, err := h.Read(128)
	require.NoError(t, err)
	assert.Equal(t, []byte("AT\r\n"), b)
}

func TestFDHandleWaitReadable(t *testing.T) {
	h := openFIFO(t)
	w, ok := h.(readWaiter)
	require.True(t, ok)

	ready, err := w.WaitReadable(10 * time.Millisecond)
	require.NoError(t, err)
	assert.False(t, ready)

	_, err = h.Write([]byte("x"))
	require.NoError(t, err)
	ready, err = w.WaitReadable(time.Second)
	require.NoError(t, err)
	assert.True(t, ready)
}

func TestOpenDeviceMissing(t *testing.T) {
	_, err := OpenDevice(filepath.Join(t.TempDir(), "missing"), OpenFlags{Read: true})
	require.Error(t, err)
}

func TestPortOverFIFO(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ttyFAKE")
	require.NoError(t, unix.Mkfifo(path, 0o600))

	p, err := New(WithPlatform(FamilyTermios), WithRunner(newFakeRunner()), WithSettleDelay(0))
	require.NoError(t, err)
	require.NoError(t, p.DeviceSet(path))
	require.NoError(t, p.DeviceOpen("r+b"))
	defer p.DeviceClose()

	require.NoError(t, p.SendMessage([]byte("ping")))
	data, err := p.ReadPort(0)
	require.NoError(t, err)
	assert.Equal(t, []byte("ping"), data)

	require.NoError(t, p.DeviceClose())
	assert.Equal(t, StateSet, p.State())
}
