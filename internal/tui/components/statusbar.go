package components

import (
	"fmt"

	serial "github.com/Oscurlo/PHP-Serial"
	"github.com/Oscurlo/PHP-Serial/internal/tui/colors"
	"github.com/Oscurlo/PHP-Serial/internal/tui/styles"
	"github.com/charmbracelet/lipgloss"
)

// ConnectionInfo is the line profile and port state shown on the right
type ConnectionInfo struct {
	Line      serial.LineConfig
	Family    serial.Family
	State     serial.State
	AutoFlush bool
	Buffered  int // bytes waiting for a manual flush
}

type StatusBar struct {
	devicePath     string
	err            error
	width          int
	connectionInfo ConnectionInfo
}

func NewStatusBar(devicePath string) *StatusBar {
	return &StatusBar{devicePath: devicePath}
}

func (sb *StatusBar) SetWidth(width int) {
	sb.width = width
}

func (sb *StatusBar) SetConnectionInfo(info ConnectionInfo) {
	sb.connectionInfo = info
}

func (sb *StatusBar) SetError(err error) {
	sb.err = err
}

func (sb *StatusBar) Err() error {
	return sb.err
}

func parityLetter(p serial.Parity) string {
	switch p {
	case serial.ParityEven:
		return "E"
	case serial.ParityOdd:
		return "O"
	default:
		return "N"
	}
}

// LineSummary renders e.g. "9600 8N1 none"
func LineSummary(lc serial.LineConfig) string {
	bits := 8
	if lc.DataBits < 5 {
		bits = 5
	}
	return fmt.Sprintf("%d %d%s%s %s", lc.BaudRate, bits, parityLetter(lc.Parity), lc.StopBits, lc.FlowControl)
}

// View renders the bottom bar: mode, device and state on the left, line
// profile and clock on the right.
func (sb *StatusBar) View(insertMode bool, sendingMode string, timestamp string) string {
	width := sb.width
	if width <= 0 {
		width = 80
	}

	mode := styles.NormalModeStyle.Render("NORMAL")
	if insertMode {
		mode = styles.InsertModeStyle.Render("INSERT")
	}

	device := lipgloss.NewStyle().
		Foreground(colors.Mauve).
		Bold(true).
		Padding(0, 1).
		Render(sb.devicePath)

	info := sb.connectionInfo
	indicatorColor := colors.Red
	indicator := "○"
	switch {
	case sb.err != nil:
		indicator = "✗"
	case info.State == serial.StateOpened:
		indicatorColor = colors.Green
		indicator = "●"
	case info.State == serial.StateSet:
		indicatorColor = colors.Yellow
	}
	state := lipgloss.NewStyle().Foreground(indicatorColor).Render(indicator + " " + info.State.String())

	divider := lipgloss.NewStyle().
		Foreground(colors.Surface2).
		Padding(0, 1).
		Render("│")

	left := []string{mode, device, state}
	if insertMode {
		left = append(left, lipgloss.NewStyle().
			Foreground(colors.Peach).
			Bold(true).
			Padding(0, 1).
			Render(fmt.Sprintf("[%s] Tab to toggle", sendingMode)))
	}
	if !info.AutoFlush {
		left = append(left, lipgloss.NewStyle().
			Foreground(colors.Yellow).
			Padding(0, 1).
			Render(fmt.Sprintf("manual flush, %d buffered", info.Buffered)))
	}
	left = append(left, divider)
	leftSide := lipgloss.JoinHorizontal(lipgloss.Left, left...)

	details := lipgloss.NewStyle().
		Foreground(colors.Subtext0).
		Padding(0, 1).
		Render(fmt.Sprintf("⚡ %s %s", LineSummary(info.Line), info.Family))
	clock := lipgloss.NewStyle().
		Foreground(colors.Subtext1).
		Padding(0, 1).
		Render(timestamp)
	rightSide := lipgloss.JoinHorizontal(lipgloss.Left, details, divider, clock)

	spacerWidth := width - lipgloss.Width(leftSide) - lipgloss.Width(rightSide)
	if spacerWidth < 1 {
		spacerWidth = 1
	}
	spacer := lipgloss.NewStyle().Width(spacerWidth).Render("")

	return lipgloss.NewStyle().
		Foreground(colors.Text).
		Background(colors.Surface0).
		Width(width).
		Render(lipgloss.JoinHorizontal(lipgloss.Left, leftSide, spacer, rightSide))
}
