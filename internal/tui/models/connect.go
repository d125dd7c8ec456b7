package models

import (
	"context"
	"fmt"
	"time"

	serial "github.com/Oscurlo/PHP-Serial"
	"github.com/Oscurlo/PHP-Serial/internal/tui/components"
	"github.com/Oscurlo/PHP-Serial/internal/tui/keys"
	"github.com/Oscurlo/PHP-Serial/internal/tui/styles"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// InputMode represents the current input mode (vim-like)
type InputMode int

const (
	InputModeNormal InputMode = iota
	InputModeInsert
)

func (m InputMode) String() string {
	switch m {
	case InputModeInsert:
		return "INSERT"
	default:
		return "NORMAL"
	}
}

// Link is the part of *serial.Port the connect screen drives
type Link interface {
	State() serial.State
	Device() serial.Device
	Family() serial.Family
	AutoFlush() bool
	SetAutoFlush(enabled bool)
	Buffered() []byte
	DeviceOpen(mode string) error
	DeviceClose() error
	SendMessageContext(ctx context.Context, data []byte, wait time.Duration) error
	SerialFlush() (bool, error)
	ReadPort(maxBytes int) ([]byte, error)
}

// ConnectOptions configures the connect screen
type ConnectOptions struct {
	Line         serial.LineConfig // shown in the status bar
	OpenMode     string            // used when reopening with 'o'
	PollInterval time.Duration
	LineEnding   string // appended to ASCII messages
}

type pollMsg time.Time

// Connect is the Bubble Tea model of the interactive terminal. All port
// access happens inside Update, so the port is only ever used from the
// program's goroutine.
type Connect struct {
	link      Link
	opts      ConnectOptions
	inputMode InputMode
	ready     bool
	width     int
	height    int
	closeErr  error

	terminal  *components.Terminal
	statusBar *components.StatusBar
	input     *components.Input
	help      help.Model
	keys      keys.ConnectKeys
	now       func() time.Time
}

func NewConnect(link Link, opts ConnectOptions) *Connect {
	if opts.PollInterval <= 0 {
		opts.PollInterval = 50 * time.Millisecond
	}
	if opts.OpenMode == "" {
		opts.OpenMode = serial.DefaultOpenMode
	}

	return &Connect{
		link:      link,
		opts:      opts,
		terminal:  components.NewTerminal(0, 0),
		statusBar: components.NewStatusBar(link.Device().Path),
		input:     components.NewInput(opts.LineEnding),
		help:      help.New(),
		keys:      keys.NewConnectKeys(),
		now:       time.Now,
	}
}

// CloseErr reports a failure to close the device on quit
func (m *Connect) CloseErr() error {
	return m.closeErr
}

func (m *Connect) Init() tea.Cmd {
	return m.poll()
}

func (m *Connect) poll() tea.Cmd {
	return tea.Tick(m.opts.PollInterval, func(t time.Time) tea.Msg {
		return pollMsg(t)
	})
}

func (m *Connect) logEvent(format string, args ...any) {
	m.terminal.AddMessage(components.DataReceivedMsg{
		Timestamp: m.now(),
		Data:      []byte(fmt.Sprintf(format, args...)),
		Direction: components.DirectionEvent,
	})
}

func (m *Connect) logError(err error) {
	m.statusBar.SetError(err)
	m.logEvent("%v", err)
}

func (m *Connect) readAvailable() {
	if m.link.State() != serial.StateOpened {
		return
	}

	data, err := m.link.ReadPort(0)
	if len(data) > 0 {
		m.terminal.AddMessage(components.DataReceivedMsg{
			Timestamp: m.now(),
			Data:      data,
			Direction: components.DirectionRX,
		})
	}
	if err != nil {
		m.logError(err)
	}
}

func (m *Connect) send() {
	if m.input.Value() == "" {
		return
	}

	data, err := m.input.Payload()
	if err != nil {
		m.logEvent("Invalid hex input: %v", err)
		return
	}

	entry := components.DataReceivedMsg{
		Timestamp: m.now(),
		Data:      data,
		Direction: components.DirectionTX,
		Status:    components.StatusWritten,
	}

	switch {
	case m.link.State() != serial.StateOpened:
		entry.Status = components.StatusError
		m.terminal.AddMessage(entry)
		m.logEvent("device is %s, press 'o' to open it", m.link.State())
		return
	case !m.link.AutoFlush():
		entry.Status = components.StatusBuffered
	}

	// no settle delay: replies are picked up by the next poll
	if err := m.link.SendMessageContext(context.Background(), data, 0); err != nil {
		entry.Status = components.StatusError
		m.terminal.AddMessage(entry)
		m.logError(err)
	} else {
		m.terminal.AddMessage(entry)
	}

	m.input.AddToHistory(m.input.Value())
	m.input.SetValue("")
}

func (m *Connect) flush() {
	pending := len(m.link.Buffered())
	ok, err := m.link.SerialFlush()
	switch {
	case err != nil:
		m.logError(err)
	case !ok:
		m.logEvent("nothing flushed, device is %s", m.link.State())
	default:
		m.logEvent("flushed %d bytes", pending)
	}
}

func (m *Connect) toggleOpen() {
	if m.link.State() == serial.StateOpened {
		if err := m.link.DeviceClose(); err != nil {
			m.logError(err)
			return
		}
		m.logEvent("closed %s", m.link.Device().Path)
		return
	}

	if err := m.link.DeviceOpen(m.opts.OpenMode); err != nil {
		m.logError(err)
		return
	}
	m.statusBar.SetError(nil)
	m.logEvent("opened %s (%s)", m.link.Device().Path, m.opts.OpenMode)
}

func (m *Connect) quit() tea.Cmd {
	m.closeErr = m.link.DeviceClose()
	return tea.Quit
}

func (m *Connect) resize() {
	// input box (3) and status bar (1)
	reserved := 4
	if m.help.ShowAll {
		reserved += lipgloss.Height(m.help.View(m.keys))
	}
	height := m.height - reserved
	if height < 1 {
		height = 1
	}
	m.terminal.SetSize(m.width, height)
	m.input.SetWidth(m.width)
	m.statusBar.SetWidth(m.width)
	m.help.Width = m.width
}

func (m *Connect) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.ready = true
		m.resize()

	case tea.MouseMsg:
		cmds = append(cmds, m.terminal.Update(msg))

	case pollMsg:
		m.readAvailable()
		return m, m.poll()

	case tea.KeyMsg:
		if m.inputMode == InputModeInsert {
			switch {
			case key.Matches(msg, m.keys.Escape):
				m.inputMode = InputModeNormal
				m.input.Blur()
				return m, nil
			case key.Matches(msg, m.keys.Enter):
				m.send()
				return m, nil
			case key.Matches(msg, m.keys.Up):
				m.input.NavigateHistoryUp()
				return m, nil
			case key.Matches(msg, m.keys.Down):
				m.input.NavigateHistoryDown()
				return m, nil
			case key.Matches(msg, m.keys.ToggleSendMode):
				m.input.ToggleSendingMode()
				return m, nil
			}

			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, m.quit()
		case key.Matches(msg, m.keys.InsertMode):
			m.inputMode = InputModeInsert
			m.input.Focus()
		case key.Matches(msg, m.keys.Clear):
			m.terminal.Clear()
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			m.resize()
		case key.Matches(msg, m.keys.ToggleHex):
			m.terminal.ToggleHex()
		case key.Matches(msg, m.keys.ToggleASCII):
			m.terminal.ToggleASCII()
		case key.Matches(msg, m.keys.ToggleSendMode):
			m.input.ToggleSendingMode()
		case key.Matches(msg, m.keys.Up):
			m.terminal.ScrollUp()
		case key.Matches(msg, m.keys.Down):
			m.terminal.ScrollDown()
		case key.Matches(msg, m.keys.GotoTop):
			m.terminal.GotoTop()
		case key.Matches(msg, m.keys.GotoBottom):
			m.terminal.GotoBottom()
		case key.Matches(msg, m.keys.Flush):
			m.flush()
		case key.Matches(msg, m.keys.ToggleAutoFlush):
			m.link.SetAutoFlush(!m.link.AutoFlush())
			m.logEvent("auto flush %v", m.link.AutoFlush())
		case key.Matches(msg, m.keys.ToggleOpen):
			m.toggleOpen()
		}
	}

	return m, tea.Batch(cmds...)
}

func (m *Connect) View() string {
	content := "Initializing..."
	if m.ready {
		content = m.terminal.View()
	}

	insert := m.inputMode == InputModeInsert
	m.statusBar.SetConnectionInfo(components.ConnectionInfo{
		Line:      m.opts.Line,
		Family:    m.link.Family(),
		State:     m.link.State(),
		AutoFlush: m.link.AutoFlush(),
		Buffered:  len(m.link.Buffered()),
	})

	parts := []string{
		styles.ContentBorderStyle.Render(content),
		m.input.View(insert),
	}
	if m.help.ShowAll {
		parts = append(parts, m.help.View(m.keys))
	}
	parts = append(parts, m.statusBar.View(insert, m.input.GetSendingMode().String(), m.now().Format("15:04:05")))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
