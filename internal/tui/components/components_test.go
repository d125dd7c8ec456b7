package components

import (
	"testing"
	"time"

	serial "github.com/Oscurlo/PHP-Serial"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHex(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []byte
		wantErr bool
	}{
		{"continuous", "48656C6C6F", []byte("Hello"), false},
		{"spaced", "48 65 6c 6c 6f", []byte("Hello"), false},
		{"control bytes", "0D0A", []byte("\r\n"), false},
		{"empty", "  ", nil, true},
		{"odd length", "486", nil, true},
		{"not hex", "zz", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseHex(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInputPayload(t *testing.T) {
	in := NewInput("\r")
	in.SetValue("ATZ")

	data, err := in.Payload()
	require.NoError(t, err)
	assert.Equal(t, []byte("ATZ\r"), data)

	in.ToggleSendingMode()
	in.SetValue("41 54")
	data, err = in.Payload()
	require.NoError(t, err)
	assert.Equal(t, []byte("AT"), data)
}

func TestInputHistory(t *testing.T) {
	in := NewInput("")
	in.AddToHistory("one")
	in.AddToHistory("two")
	in.AddToHistory("two")
	in.SetValue("draft")

	in.NavigateHistoryUp()
	assert.Equal(t, "two", in.Value())
	in.NavigateHistoryUp()
	assert.Equal(t, "one", in.Value())
	in.NavigateHistoryUp()
	assert.Equal(t, "one", in.Value())

	in.NavigateHistoryDown()
	assert.Equal(t, "two", in.Value())
	in.NavigateHistoryDown()
	assert.Equal(t, "draft", in.Value())
}

func TestFormatMessage(t *testing.T) {
	ts := time.Date(2025, 1, 1, 8, 30, 0, 0, time.UTC)
	df := NewDataFormatter(true, true)

	rx := df.FormatMessage(DataReceivedMsg{Timestamp: ts, Data: []byte("OK\r\n")})
	assert.Contains(t, rx, "[08:30:00.000]")
	assert.Contains(t, rx, "RX")
	assert.Contains(t, rx, "HEX: 4F 4B 0D 0A")
	assert.Contains(t, rx, "ASCII: OK..")

	tx := df.FormatMessage(DataReceivedMsg{Timestamp: ts, Data: []byte("AT"), Direction: DirectionTX, Status: StatusBuffered})
	assert.Contains(t, tx, "TX ○")

	df.ToggleHex()
	df.ToggleASCII()
	assert.Contains(t, df.FormatMessage(DataReceivedMsg{Timestamp: ts, Data: []byte("AT")}), "BYTES: 2")

	event := df.FormatMessage(DataReceivedMsg{Timestamp: ts, Data: []byte("opened"), Direction: DirectionEvent})
	assert.Contains(t, event, "• opened")
}

func TestTerminalKeepsEntries(t *testing.T) {
	term := NewTerminal(80, 10)
	term.AddMessage(DataReceivedMsg{Data: []byte("a")})
	term.AddMessage(DataReceivedMsg{Data: []byte("b")})
	require.Len(t, term.Entries(), 2)

	term.ToggleHex()
	assert.False(t, term.GetDisplayMode().ShowHex)
	assert.Len(t, term.Entries(), 2)

	term.Clear()
	assert.Empty(t, term.Entries())
}

func TestLineSummary(t *testing.T) {
	assert.Equal(t, "9600 8N1 none", LineSummary(serial.DefaultLineConfig()))

	lc := serial.LineConfig{
		BaudRate:    19200,
		Parity:      serial.ParityEven,
		DataBits:    4,
		StopBits:    serial.StopBitsTwo,
		FlowControl: serial.FlowControlXonXoff,
	}
	assert.Equal(t, "19200 5E2 xon/xoff", LineSummary(lc))
}
