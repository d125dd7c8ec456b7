package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// readCmd represents the read command
var readCmd = &cobra.Command{
	Use:   "read <device>",
	Short: "Read pending data from a serial port",
	Long: `Configure a device, open it read-only and print what it has to say.

The command waits up to --wait for the first byte and then drains whatever
is available, stopping at --max bytes when given.

Example usage:
  phpserial read /dev/ttyUSB0 --wait 2s
  phpserial read COM1 --hex --max 64`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		wait, _ := cmd.Flags().GetDuration("wait")
		maxBytes, _ := cmd.Flags().GetInt("max")
		hexMode, _ := cmd.Flags().GetBool("hex")

		port, err := prepare(viper.GetViper(), args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if err := port.DeviceOpen("r"); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer port.DeviceClose()

		data, err := port.ReadPortContext(cmd.Context(), maxBytes, wait)
		if len(data) > 0 {
			if hexMode {
				fmt.Printf("% X\n", data)
			} else {
				os.Stdout.Write(data)
			}
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(readCmd)

	readCmd.Flags().DurationP("wait", "w", time.Second, "How long to wait for the first byte")
	readCmd.Flags().IntP("max", "m", 0, "Stop after this many bytes (0 means no limit)")
	readCmd.Flags().BoolP("hex", "x", false, "Print the data as hex bytes")
}
