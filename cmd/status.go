package cmd

import (
	"fmt"
	"os"
	"runtime"

	serial "github.com/Oscurlo/PHP-Serial"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status <device>",
	Short: "Check that a device can be configured",
	Long: `Resolve a device name and probe it with the platform's configuration
tool, without changing any line parameters.

Examples:
  phpserial status /dev/ttyUSB0
  phpserial status COM1        # /dev/ttyS0 on Linux`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		port, err := newPort(viper.GetViper())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
		okStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("40")).Bold(true)
		errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)

		fmt.Printf("Device: %s\n\n", args[0])
		fmt.Printf("  %s %s/%s\n", labelStyle.Render("System:     "), runtime.GOOS, port.Family())

		setErr := port.DeviceSet(args[0])
		if setErr == nil {
			dev := port.Device()
			fmt.Printf("  %s %s\n", labelStyle.Render("Path:       "), dev.Path)
			fmt.Printf("  %s %s\n", labelStyle.Render("Label:      "), dev.Label)
		}
		fmt.Printf("  %s %s\n", labelStyle.Render("State:      "), port.State())

		if setErr != nil {
			fmt.Printf("\n%s %v\n", errStyle.Render("✗"), setErr)
			os.Exit(1)
		}
		fmt.Printf("\n%s device answers to %s\n", okStyle.Render("✓"), configTool(port.Family()))
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func configTool(f serial.Family) string {
	if f == serial.FamilyWindowsMode {
		return "mode"
	}
	return "stty"
}
