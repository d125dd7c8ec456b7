package cmd

import (
	"errors"
	"fmt"
	"os"

	serial "github.com/Oscurlo/PHP-Serial"
	"github.com/Oscurlo/PHP-Serial/internal/tui/components"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// configureCmd represents the configure command
var configureCmd = &cobra.Command{
	Use:   "configure <device>",
	Short: "Apply line parameters to a device",
	Long: `Apply baud rate, parity, character length, stop bits and flow control
to a device, in that order. The first setting the system refuses stops the
run and its error output is shown.

Example usage:
  phpserial configure /dev/ttyUSB0 --baud 115200
  phpserial configure COM3 -b 19200 -p even -s 2 -f xon/xoff`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		successStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("40")).Bold(true)
		errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)

		v := viper.GetViper()
		lc, err := lineConfig(v)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s %v\n", errorStyle.Render("✗"), err)
			os.Exit(1)
		}

		if _, err := prepare(v, args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "%s %v\n", errorStyle.Render("✗"), err)
			var cfgErr *serial.ConfigError
			if errors.As(err, &cfgErr) {
				fmt.Fprintf(os.Stderr, "  %s was refused; settings before it were applied\n", cfgErr.Setting)
			}
			os.Exit(1)
		}

		fmt.Printf("%s %s configured: %s\n", successStyle.Render("✓"), args[0], components.LineSummary(lc))
	},
}

func init() {
	rootCmd.AddCommand(configureCmd)
}
