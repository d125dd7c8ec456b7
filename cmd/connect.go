package cmd

import (
	"fmt"
	"os"
	"time"

	serial "github.com/Oscurlo/PHP-Serial"
	"github.com/Oscurlo/PHP-Serial/internal/tui/models"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// connectCmd represents the connect command
var connectCmd = &cobra.Command{
	Use:   "connect <device>",
	Short: "Open an interactive terminal on a serial port",
	Long: `Configure and open a device and talk to it interactively.

Received data is polled and shown with timestamps in hex and ASCII. Messages
are typed in insert mode ('i') as text or hex (Tab toggles). With auto flush
off ('F') messages collect in the output buffer until flushed ('f'). The
device can be closed and reopened with 'o'.

Example usage:
  phpserial connect /dev/ttyUSB0
  phpserial connect COM1 --baud 115200 --line-ending lf`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		poll, _ := cmd.Flags().GetDuration("poll")
		mode, _ := cmd.Flags().GetString("mode")
		ending, _ := cmd.Flags().GetString("line-ending")
		manual, _ := cmd.Flags().GetBool("manual-flush")

		if err := runConnectTUI(args[0], mode, ending, poll, !manual); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(connectCmd)

	connectCmd.Flags().Duration("poll", 50*time.Millisecond, "How often to check for received data")
	connectCmd.Flags().String("mode", serial.DefaultOpenMode, "Open mode: r, w or a, optionally with + and b")
	connectCmd.Flags().String("line-ending", "crlf", "Appended to text messages: none, cr, lf, crlf")
	connectCmd.Flags().Bool("manual-flush", false, "Start with auto flush off")
}

func lineEnding(name string) (string, error) {
	switch name {
	case "none":
		return "", nil
	case "cr":
		return "\r", nil
	case "lf":
		return "\n", nil
	case "crlf":
		return "\r\n", nil
	default:
		return "", fmt.Errorf("unknown line ending %q", name)
	}
}

func runConnectTUI(device, mode, ending string, poll time.Duration, autoFlush bool) error {
	v := viper.GetViper()

	eol, err := lineEnding(ending)
	if err != nil {
		return err
	}
	lc, err := lineConfig(v)
	if err != nil {
		return err
	}

	// log lines would tear the alt screen
	port, err := newPort(v, serial.WithLogger(zerolog.Nop()), serial.WithAutoFlush(autoFlush))
	if err != nil {
		return err
	}
	if err := port.DeviceSet(device); err != nil {
		return err
	}
	if err := port.Configure(lc); err != nil {
		return err
	}
	if err := port.DeviceOpen(mode); err != nil {
		return err
	}

	m := models.NewConnect(port, models.ConnectOptions{
		Line:         lc,
		OpenMode:     mode,
		PollInterval: poll,
		LineEnding:   eol,
	})

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		port.DeviceClose()
		return err
	}
	return m.CloseErr()
}
