package models

import (
	"context"
	"errors"
	"testing"
	"time"

	serial "github.com/Oscurlo/PHP-Serial"
	"github.com/Oscurlo/PHP-Serial/internal/tui/components"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLink struct {
	state     serial.State
	autoFlush bool
	buffer    []byte
	written   [][]byte
	incoming  []byte
	sendErr   error
	readErr   error
	openModes []string
	closes    int
}

func newFakeLink() *fakeLink {
	return &fakeLink{state: serial.StateOpened, autoFlush: true}
}

func (f *fakeLink) State() serial.State { return f.state }
func (f *fakeLink) Device() serial.Device {
	return serial.Device{Name: "COM1", Path: "/dev/ttyS0", Label: "/dev/ttyS0"}
}
func (f *fakeLink) Family() serial.Family     { return serial.FamilyTermios }
func (f *fakeLink) AutoFlush() bool           { return f.autoFlush }
func (f *fakeLink) SetAutoFlush(enabled bool) { f.autoFlush = enabled }
func (f *fakeLink) Buffered() []byte          { return append([]byte(nil), f.buffer...) }

func (f *fakeLink) DeviceOpen(mode string) error {
	f.openModes = append(f.openModes, mode)
	f.state = serial.StateOpened
	return nil
}

func (f *fakeLink) DeviceClose() error {
	f.closes++
	if f.state == serial.StateOpened {
		f.state = serial.StateSet
	}
	return nil
}

func (f *fakeLink) SendMessageContext(_ context.Context, data []byte, wait time.Duration) error {
	if wait != 0 {
		return errors.New("unexpected settle delay")
	}
	if f.sendErr != nil {
		return f.sendErr
	}
	f.buffer = append(f.buffer, data...)
	if f.autoFlush {
		_, err := f.SerialFlush()
		return err
	}
	return nil
}

func (f *fakeLink) SerialFlush() (bool, error) {
	if f.state != serial.StateOpened {
		return false, nil
	}
	f.written = append(f.written, f.buffer)
	f.buffer = nil
	return true, nil
}

func (f *fakeLink) ReadPort(int) ([]byte, error) {
	data := f.incoming
	f.incoming = nil
	return data, f.readErr
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newModel(t *testing.T, link *fakeLink) *Connect {
	t.Helper()
	m := NewConnect(link, ConnectOptions{LineEnding: "\r\n"})
	m.now = func() time.Time { return time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC) }
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return m
}

func lastEntry(t *testing.T, m *Connect) components.DataReceivedMsg {
	t.Helper()
	entries := m.terminal.Entries()
	require.NotEmpty(t, entries)
	return entries[len(entries)-1]
}

func TestConnectSendASCII(t *testing.T) {
	link := newFakeLink()
	m := newModel(t, link)

	m.Update(runes("i"))
	assert.Equal(t, InputModeInsert, m.inputMode)

	m.input.SetValue("AT")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.Len(t, link.written, 1)
	assert.Equal(t, []byte("AT\r\n"), link.written[0])
	entry := lastEntry(t, m)
	assert.Equal(t, components.DirectionTX, entry.Direction)
	assert.Equal(t, components.StatusWritten, entry.Status)
	assert.Empty(t, m.input.Value())
}

func TestConnectSendHex(t *testing.T) {
	link := newFakeLink()
	m := newModel(t, link)

	m.Update(runes("i"))
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, components.SendingModeHex, m.input.GetSendingMode())

	m.input.SetValue("48 65 6C")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.Len(t, link.written, 1)
	assert.Equal(t, []byte("Hel"), link.written[0])
}

func TestConnectInvalidHexIsNotSent(t *testing.T) {
	link := newFakeLink()
	m := newModel(t, link)

	m.Update(runes("i"))
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m.input.SetValue("4")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Empty(t, link.written)
	assert.Equal(t, components.DirectionEvent, lastEntry(t, m).Direction)
	assert.Equal(t, "4", m.input.Value())
}

func TestConnectManualFlush(t *testing.T) {
	link := newFakeLink()
	m := newModel(t, link)

	m.Update(runes("F"))
	assert.False(t, link.autoFlush)

	m.Update(runes("i"))
	m.input.SetValue("one")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m.input.SetValue("two")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, components.StatusBuffered, lastEntry(t, m).Status)
	assert.Empty(t, link.written)

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m.Update(runes("f"))

	require.Len(t, link.written, 1)
	assert.Equal(t, []byte("one\r\ntwo\r\n"), link.written[0])
	assert.Contains(t, string(lastEntry(t, m).Data), "flushed 10 bytes")
}

func TestConnectSendError(t *testing.T) {
	link := newFakeLink()
	link.sendErr = serial.ErrFlushFailed
	m := newModel(t, link)

	m.Update(runes("i"))
	m.input.SetValue("AT")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	entries := m.terminal.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, components.StatusError, entries[0].Status)
	assert.Equal(t, components.DirectionEvent, entries[1].Direction)
	assert.ErrorIs(t, m.statusBar.Err(), serial.ErrFlushFailed)
}

func TestConnectSendWhileClosed(t *testing.T) {
	link := newFakeLink()
	link.state = serial.StateSet
	m := newModel(t, link)

	m.Update(runes("i"))
	m.input.SetValue("AT")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Empty(t, link.written)
	assert.Empty(t, link.buffer)
	assert.Contains(t, string(lastEntry(t, m).Data), "press 'o'")
}

func TestConnectPollReadsData(t *testing.T) {
	link := newFakeLink()
	m := newModel(t, link)

	link.incoming = []byte("OK\r\n")
	_, cmd := m.Update(pollMsg(time.Now()))
	assert.NotNil(t, cmd)

	entry := lastEntry(t, m)
	assert.Equal(t, components.DirectionRX, entry.Direction)
	assert.Equal(t, []byte("OK\r\n"), entry.Data)
}

func TestConnectPollSkipsClosedDevice(t *testing.T) {
	link := newFakeLink()
	link.state = serial.StateSet
	link.incoming = []byte("ignored")
	m := newModel(t, link)

	m.Update(pollMsg(time.Now()))
	assert.Empty(t, m.terminal.Entries())
	assert.Equal(t, []byte("ignored"), link.incoming)
}

func TestConnectPollReadError(t *testing.T) {
	link := newFakeLink()
	link.incoming = []byte("par")
	link.readErr = errors.New("read /dev/ttyS0: i/o error")
	m := newModel(t, link)

	m.Update(pollMsg(time.Now()))

	entries := m.terminal.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, []byte("par"), entries[0].Data)
	assert.Error(t, m.statusBar.Err())
}

func TestConnectToggleOpen(t *testing.T) {
	link := newFakeLink()
	m := newModel(t, link)

	m.Update(runes("o"))
	assert.Equal(t, serial.StateSet, link.state)

	m.Update(runes("o"))
	assert.Equal(t, serial.StateOpened, link.state)
	assert.Equal(t, []string{serial.DefaultOpenMode}, link.openModes)
}

func TestConnectQuitClosesDevice(t *testing.T) {
	link := newFakeLink()
	m := newModel(t, link)

	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Equal(t, 1, link.closes)
	assert.NoError(t, m.CloseErr())
}

func TestConnectInsertModeSwallowsCommands(t *testing.T) {
	link := newFakeLink()
	m := newModel(t, link)

	m.Update(runes("i"))
	m.Update(runes("q"))

	assert.Zero(t, link.closes)
	assert.Equal(t, "q", m.input.Value())
}

func TestConnectView(t *testing.T) {
	link := newFakeLink()
	m := newModel(t, link)

	view := m.View()
	assert.Contains(t, view, "/dev/ttyS0")
	assert.Contains(t, view, "NORMAL")
	assert.Contains(t, view, "opened")
}
