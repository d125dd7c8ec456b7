package keys

import "github.com/charmbracelet/bubbles/key"

// ConnectKeys includes terminal keys plus sending and port control
type ConnectKeys struct {
	TerminalKeys
	Enter           key.Binding
	ToggleSendMode  key.Binding
	Up              key.Binding
	Down            key.Binding
	GotoTop         key.Binding
	GotoBottom      key.Binding
	Flush           key.Binding
	ToggleAutoFlush key.Binding
	ToggleOpen      key.Binding
}

func NewConnectKeys() ConnectKeys {
	return ConnectKeys{
		TerminalKeys: NewTerminalKeys(),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "send message"),
		),
		ToggleSendMode: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "toggle send mode"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		GotoTop: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "goto top"),
		),
		GotoBottom: key.NewBinding(
			key.WithKeys("G"),
			key.WithHelp("G", "goto bottom"),
		),
		Flush: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "flush output"),
		),
		ToggleAutoFlush: key.NewBinding(
			key.WithKeys("F"),
			key.WithHelp("F", "toggle auto flush"),
		),
		ToggleOpen: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open/close device"),
		),
	}
}

func (k ConnectKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.InsertMode, k.Enter, k.Flush, k.Quit}
}

func (k ConnectKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.InsertMode, k.Escape, k.Enter, k.ToggleSendMode},
		{k.Clear, k.ToggleHex, k.ToggleASCII},
		{k.GotoTop, k.GotoBottom, k.Up, k.Down},
		{k.Flush, k.ToggleAutoFlush, k.ToggleOpen},
		{k.Help, k.Quit},
	}
}
