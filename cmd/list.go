package cmd

import (
	"fmt"
	"os"
	"strings"

	serial "github.com/Oscurlo/PHP-Serial"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available serial ports",
	Long: `List the serial devices that can be passed to the other commands.

On Linux this scans /dev for USB adapters (ttyUSB*, ttyACM*), standard UARTs
(ttyS*) and SoC serial ports. On Darwin and the BSDs it lists the cu.* and
tty.* nodes. On Windows it reads the SERIALCOMM registry key.

Virtual terminals and pseudo-terminals are excluded from the listing.`,
	Run: func(cmd *cobra.Command, args []string) {
		ports, err := serial.ListPorts()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error listing ports: %v\n", err)
			os.Exit(1)
		}

		filterType, _ := cmd.Flags().GetString("filter")
		tableFormat, _ := cmd.Flags().GetBool("table")

		filtered := filterPorts(ports, filterType)
		if len(filtered) == 0 {
			if filterType != "" && filterType != "all" {
				fmt.Printf("No serial ports found matching filter: %s\n", filterType)
			} else {
				fmt.Println("No serial ports found")
			}
			return
		}

		if tableFormat {
			renderTable(filtered)
		} else {
			renderSimple(filtered)
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().String("filter", "", "Filter by port type: usb, standard, arm, com, all")
	listCmd.Flags().BoolP("table", "t", false, "Display output in a styled table format")
}

// filterPorts filters the port list based on the specified filter type
func filterPorts(ports []serial.PortInfo, filterType string) []serial.PortInfo {
	filterType = strings.ToLower(filterType)
	if filterType == "" || filterType == "all" {
		return ports
	}

	var filtered []serial.PortInfo
	for _, port := range ports {
		name := strings.ToLower(port.Name)
		var keep bool
		switch filterType {
		case "usb":
			keep = strings.HasPrefix(name, "ttyusb") || strings.HasPrefix(name, "ttyacm") ||
				strings.Contains(name, "usb")
		case "standard":
			keep = strings.HasPrefix(name, "ttys") && !strings.HasPrefix(name, "ttysac")
		case "arm":
			keep = strings.HasPrefix(name, "ttyama")
		case "com":
			keep = port.COMLabel != ""
		}
		if keep {
			filtered = append(filtered, port)
		}
	}
	return filtered
}

// renderTable renders the port list in a styled static table format
func renderTable(ports []serial.PortInfo) {
	fmt.Printf("Found %d serial port(s):\n\n", len(ports))

	portWidth := 24
	comWidth := 6
	typeWidth := 20

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("240")).
		PaddingBottom(1)

	cellStyle := lipgloss.NewStyle().
		PaddingRight(2)

	header := fmt.Sprintf("%-*s %-*s %-*s %s",
		portWidth, "Port",
		comWidth, "COM",
		typeWidth, "Type",
		"Description")
	fmt.Println(headerStyle.Render(header))

	for _, port := range ports {
		com := port.COMLabel
		if com == "" {
			com = "-"
		}
		row := fmt.Sprintf("%-*s %-*s %-*s %s",
			portWidth, port.Path,
			comWidth, com,
			typeWidth, getPortType(port.Name),
			port.Description)
		fmt.Println(cellStyle.Render(row))
	}
}

// renderSimple renders the port list in simple text format
func renderSimple(ports []serial.PortInfo) {
	for _, port := range ports {
		fmt.Println(port.Path)
	}
}

// getPortType returns a more specific type classification for the port
func getPortType(name string) string {
	name = strings.ToLower(name)
	switch {
	case strings.HasPrefix(name, "ttyusb"):
		return "USB Serial"
	case strings.HasPrefix(name, "ttyacm"):
		return "USB CDC/ACM"
	case strings.HasPrefix(name, "ttyama"):
		return "ARM Serial"
	case strings.HasPrefix(name, "ttymxc"):
		return "i.MX Serial"
	case strings.HasPrefix(name, "ttysac"):
		return "Samsung Serial"
	case strings.HasPrefix(name, "ttyths"):
		return "Tegra Serial"
	case strings.HasPrefix(name, "ttyo"):
		return "OMAP Serial"
	case strings.HasPrefix(name, "ttys"):
		return "Standard Serial"
	case strings.HasPrefix(name, "cu."):
		return "Call-out"
	case strings.HasPrefix(name, "tty."):
		return "Dial-in"
	case strings.HasPrefix(name, "com"):
		return "COM Port"
	default:
		return "Serial Port"
	}
}
