package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	serial "github.com/Oscurlo/PHP-Serial"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "phpserial",
	Short: "Configure and talk to serial ports",
	Long: `Configure and talk to RS-232 style serial ports.

Line parameters are applied with stty on Linux, Darwin and the BSDs and with
mode on Windows. Windows style names such as COM1 are accepted on Linux and
mapped to /dev/ttyS0.

Settings can come from flags, from a config file (--config, default
$HOME/.phpserial.yaml) or from PHPSERIAL_* environment variables:

  baud: 9600
  parity: none
  data-bits: 8
  stop-bits: 1
  flow-control: none`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and runs it
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default $HOME/.phpserial.yaml)")
	flags.BoolP("verbose", "v", false, "Log configuration commands and state changes")
	flags.IntP("baud", "b", 9600, "Baud rate: 110 to 115200")
	flags.StringP("parity", "p", "none", "Parity: none, odd, even")
	flags.IntP("data-bits", "d", 8, "Character length (below 5 means 5, anything else 8)")
	flags.Float64P("stop-bits", "s", 1, "Stop bits: 1, 1.5 (Linux only) or 2")
	flags.StringP("flow-control", "f", "none", "Flow control: none, rts/cts, xon/xoff")
	flags.String("locale", "", "LC_ALL for stty/mode commands")
	flags.Duration("settle", 100*time.Millisecond, "Wait after each write for the device to answer")
	flags.Duration("command-timeout", 5*time.Second, "Timeout for each stty/mode command")

	for _, name := range []string{"verbose", "baud", "parity", "data-bits", "stop-bits", "flow-control", "locale", "settle", "command-timeout"} {
		if err := viper.BindPFlag(name, flags.Lookup(name)); err != nil {
			panic(err)
		}
	}
}

// initConfig reads in config file and ENV variables if set
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".phpserial")
	}

	viper.SetEnvPrefix("phpserial")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && viper.GetBool("verbose") {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// newLogger returns a console logger, debug level when verbose
func newLogger(v *viper.Viper) zerolog.Logger {
	level := zerolog.WarnLevel
	if v.GetBool("verbose") {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05.000"}).
		Level(level).
		With().Timestamp().Logger()
}

// lineConfig builds the line profile from flags, config file and environment
func lineConfig(v *viper.Viper) (serial.LineConfig, error) {
	lc := serial.LineConfig{
		BaudRate: v.GetInt("baud"),
		DataBits: v.GetInt("data-bits"),
	}

	var err error
	if lc.Parity, err = serial.ParseParity(v.GetString("parity")); err != nil {
		return lc, err
	}
	if lc.StopBits, err = serial.ParseStopBits(v.GetFloat64("stop-bits")); err != nil {
		return lc, err
	}
	if lc.FlowControl, err = serial.ParseFlowControl(v.GetString("flow-control")); err != nil {
		return lc, err
	}
	return lc, nil
}

// newPort creates a port using the settings in v
func newPort(v *viper.Viper, opts ...serial.Option) (*serial.Port, error) {
	base := []serial.Option{
		serial.WithLogger(newLogger(v)),
		serial.WithLocale(v.GetString("locale")),
		serial.WithSettleDelay(v.GetDuration("settle")),
		serial.WithCommandTimeout(v.GetDuration("command-timeout")),
	}
	return serial.New(append(base, opts...)...)
}

// prepare sets the device and applies the line profile, leaving the port in
// the set state
func prepare(v *viper.Viper, device string) (*serial.Port, error) {
	lc, err := lineConfig(v)
	if err != nil {
		return nil, err
	}

	port, err := newPort(v)
	if err != nil {
		return nil, err
	}
	if err := port.DeviceSet(device); err != nil {
		return nil, err
	}
	if err := port.Configure(lc); err != nil {
		return nil, err
	}
	return port, nil
}
