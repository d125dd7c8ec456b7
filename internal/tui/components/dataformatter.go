package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/Oscurlo/PHP-Serial/internal/tui/colors"
	"github.com/charmbracelet/lipgloss"
)

// Direction tells which way a logged entry travelled
type Direction int

const (
	DirectionRX Direction = iota
	DirectionTX
	DirectionEvent // port lifecycle and errors, not line data
)

// TX outcomes
const (
	StatusBuffered = "BUFFERED" // queued, auto flush is off
	StatusWritten  = "WRITTEN"
	StatusError    = "ERROR"
)

type DataReceivedMsg struct {
	Timestamp time.Time
	Data      []byte
	Direction Direction
	Status    string // TX only
}

type DisplayMode struct {
	ShowHex   bool
	ShowASCII bool
}

type DataFormatter struct {
	mode DisplayMode
}

func NewDataFormatter(showHex, showASCII bool) *DataFormatter {
	return &DataFormatter{
		mode: DisplayMode{
			ShowHex:   showHex,
			ShowASCII: showASCII,
		},
	}
}

func (df *DataFormatter) GetDisplayMode() DisplayMode {
	return df.mode
}

func (df *DataFormatter) FormatMessage(msg DataReceivedMsg) string {
	timestampStyled := lipgloss.NewStyle().
		Foreground(colors.Subtext0).
		Render(fmt.Sprintf("[%s]", msg.Timestamp.Format("15:04:05.000")))

	if msg.Direction == DirectionEvent {
		event := lipgloss.NewStyle().Foreground(colors.Teal).Render("• " + string(msg.Data))
		return fmt.Sprintf("%s %s", timestampStyled, event)
	}

	var indicator string
	if msg.Direction == DirectionTX {
		var txColor lipgloss.Color
		var statusText string

		switch msg.Status {
		case StatusBuffered:
			txColor = colors.Yellow
			statusText = "TX ○"
		case StatusWritten:
			txColor = colors.Green
			statusText = "TX ✓"
		case StatusError:
			txColor = colors.Red
			statusText = "TX ✗"
		default:
			txColor = colors.Peach
			statusText = "TX"
		}

		indicator = lipgloss.NewStyle().
			Foreground(txColor).
			Bold(true).
			Render("↗ " + statusText)
	} else {
		indicator = lipgloss.NewStyle().
			Foreground(colors.Sky).
			Bold(true).
			Render("↙ RX")
	}

	return fmt.Sprintf("%s %s: %s", timestampStyled, indicator, df.formatPayload(msg.Data))
}

func (df *DataFormatter) formatPayload(data []byte) string {
	var parts []string

	if df.mode.ShowHex {
		parts = append(parts, fmt.Sprintf("HEX: % X", data))
	}

	if df.mode.ShowASCII {
		var ascii strings.Builder
		for _, b := range data {
			if b >= 32 && b <= 126 {
				ascii.WriteByte(b)
			} else {
				// keeps control sequences out of the viewport
				ascii.WriteByte('.')
			}
		}
		parts = append(parts, "ASCII: "+ascii.String())
	}

	if !df.mode.ShowHex && !df.mode.ShowASCII {
		parts = append(parts, fmt.Sprintf("BYTES: %d", len(data)))
	}

	return strings.Join(parts, "  ")
}

func (df *DataFormatter) FormatMessages(messages []DataReceivedMsg) []string {
	formatted := make([]string, len(messages))
	for i, msg := range messages {
		formatted[i] = df.FormatMessage(msg)
	}
	return formatted
}

func (df *DataFormatter) ToggleHex() {
	df.mode.ShowHex = !df.mode.ShowHex
}

func (df *DataFormatter) ToggleASCII() {
	df.mode.ShowASCII = !df.mode.ShowASCII
}
