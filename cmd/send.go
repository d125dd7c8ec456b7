package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	serial "github.com/Oscurlo/PHP-Serial"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// sendCmd represents the send command
var sendCmd = &cobra.Command{
	Use:   "send [data] <device>",
	Short: "Send data to a serial port",
	Long: `Configure a device, open it and send data to it.

Data can be provided as:
- Command line argument: phpserial send "Hello World" /dev/ttyUSB0
- From stdin (pipe): echo "test data" | phpserial send /dev/ttyUSB0
- Interactive mode: phpserial send /dev/ttyUSB0 (prompts for input)

After the write the command waits for the settle delay (--settle) so the
device has time to answer. With --read the answer is printed.

Example usage:
  phpserial send "AT" COM1 --newline --read
  phpserial send "48656c6c6f" /dev/ttyUSB0 --hex`,
	Args: cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		var data string
		var device string

		if len(args) == 1 {
			device = args[0]
			stat, err := os.Stdin.Stat()
			if err != nil || (stat.Mode()&os.ModeCharDevice) != 0 {
				data = promptForData()
			} else {
				stdinData, err := io.ReadAll(os.Stdin)
				if err != nil {
					fmt.Fprintf(os.Stderr, "Error reading from stdin: %v\n", err)
					os.Exit(1)
				}
				data = strings.TrimRight(string(stdinData), "\r\n")
			}
		} else {
			data = args[0]
			device = args[1]
		}

		addNewline, _ := cmd.Flags().GetBool("newline")
		hexMode, _ := cmd.Flags().GetBool("hex")
		readBack, _ := cmd.Flags().GetBool("read")
		timeout, _ := cmd.Flags().GetDuration("timeout")

		if hexMode {
			processed, err := parseHexString(data)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Invalid hex data: %v\n", err)
				os.Exit(1)
			}
			data = processed
		}

		if addNewline && !hexMode {
			data += "\r\n"
		}

		if err := sendData(viper.GetViper(), device, data, timeout, readBack); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(sendCmd)

	sendCmd.Flags().BoolP("newline", "n", false, "Append CR LF to the data")
	sendCmd.Flags().BoolP("hex", "x", false, "Interpret data as hexadecimal (e.g., '48656c6c6f' for 'Hello')")
	sendCmd.Flags().BoolP("read", "r", false, "Print whatever the device answered after the settle delay")
	sendCmd.Flags().DurationP("timeout", "t", 5*time.Second, "Timeout for the whole exchange")
}

func promptForData() string {
	promptStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99"))

	fmt.Print(promptStyle.Render("Enter data to send: "))

	scanner := bufio.NewScanner(os.Stdin)
	if scanner.Scan() {
		return scanner.Text()
	}
	return ""
}

func parseHexString(hexStr string) (string, error) {
	hexStr = strings.ReplaceAll(hexStr, " ", "")
	hexStr = strings.ReplaceAll(hexStr, "0x", "")
	hexStr = strings.ReplaceAll(hexStr, "0X", "")

	if len(hexStr)%2 != 0 {
		return "", fmt.Errorf("hex string must have even length")
	}

	var result strings.Builder
	for i := 0; i < len(hexStr); i += 2 {
		hexByte := hexStr[i : i+2]
		var b byte
		if _, err := fmt.Sscanf(hexByte, "%x", &b); err != nil {
			return "", fmt.Errorf("invalid hex byte '%s': %v", hexByte, err)
		}
		result.WriteByte(b)
	}

	return result.String(), nil
}

func sendData(v *viper.Viper, device, data string, timeout time.Duration, readBack bool) error {
	infoStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("99")).
		Bold(true)

	successStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("40")).
		Bold(true)

	errorStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("196")).
		Bold(true)

	fmt.Printf("%s Opening %s...\n", infoStyle.Render("⚡"), device)

	port, err := prepare(v, device)
	if err != nil {
		return fmt.Errorf("%s %v", errorStyle.Render("✗"), err)
	}
	if err := port.DeviceOpen(serial.DefaultOpenMode); err != nil {
		return fmt.Errorf("%s %v", errorStyle.Render("✗"), err)
	}
	defer port.DeviceClose()

	fmt.Printf("%s Connected to %s\n", successStyle.Render("✓"), port.Device().Path)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	fmt.Printf("%s Sending %d bytes...\n", infoStyle.Render("📤"), len(data))

	if err := port.SendMessageContext(ctx, []byte(data), v.GetDuration("settle")); err != nil {
		return fmt.Errorf("%s failed to send data: %v", errorStyle.Render("✗"), err)
	}

	fmt.Printf("%s Successfully sent %d bytes\n", successStyle.Render("✓"), len(data))
	fmt.Printf("%s Data: %s\n", infoStyle.Render("📋"), preview(data))

	if !readBack {
		return nil
	}

	reply, err := port.ReadPort(0)
	if err != nil {
		return fmt.Errorf("%s failed to read reply: %v", errorStyle.Render("✗"), err)
	}
	fmt.Printf("%s Reply (%d bytes): %s\n", infoStyle.Render("📥"), len(reply), preview(string(reply)))
	return nil
}

// preview shortens data to 50 characters and masks non-printable ones
func preview(data string) string {
	if len(data) > 50 {
		data = data[:50] + "..."
	}
	return strings.Map(func(r rune) rune {
		if r < 32 || r > 126 {
			return '·'
		}
		return r
	}, data)
}
