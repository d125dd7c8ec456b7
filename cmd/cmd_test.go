package cmd

import (
	"testing"

	serial "github.com/Oscurlo/PHP-Serial"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHexString(t *testing.T) {
	got, err := parseHexString("0x48 0x69")
	require.NoError(t, err)
	assert.Equal(t, "Hi", got)

	_, err = parseHexString("123")
	assert.Error(t, err)
}

func TestLineConfigFromViper(t *testing.T) {
	v := viper.New()
	v.Set("baud", 19200)
	v.Set("parity", "even")
	v.Set("data-bits", 8)
	v.Set("stop-bits", 2.0)
	v.Set("flow-control", "rts/cts")

	lc, err := lineConfig(v)
	require.NoError(t, err)
	assert.Equal(t, serial.LineConfig{
		BaudRate:    19200,
		Parity:      serial.ParityEven,
		DataBits:    8,
		StopBits:    serial.StopBitsTwo,
		FlowControl: serial.FlowControlRTSCTS,
	}, lc)
}

func TestLineConfigRejectsUnknownValues(t *testing.T) {
	base := func() *viper.Viper {
		v := viper.New()
		v.Set("parity", "none")
		v.Set("stop-bits", 1.0)
		v.Set("flow-control", "none")
		return v
	}

	v := base()
	v.Set("parity", "mark")
	_, err := lineConfig(v)
	assert.ErrorIs(t, err, serial.ErrInvalidParameter)

	v = base()
	v.Set("stop-bits", 3.0)
	_, err = lineConfig(v)
	assert.ErrorIs(t, err, serial.ErrInvalidParameter)

	v = base()
	v.Set("flow-control", "dtr")
	_, err = lineConfig(v)
	assert.ErrorIs(t, err, serial.ErrInvalidParameter)
}

func TestLineEnding(t *testing.T) {
	for name, want := range map[string]string{"none": "", "cr": "\r", "lf": "\n", "crlf": "\r\n"} {
		got, err := lineEnding(name)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := lineEnding("lfcr")
	assert.Error(t, err)
}

func TestFilterPorts(t *testing.T) {
	ports := []serial.PortInfo{
		{Name: "ttyS0", Path: "/dev/ttyS0", COMLabel: "COM1"},
		{Name: "ttyUSB0", Path: "/dev/ttyUSB0"},
		{Name: "ttyACM1", Path: "/dev/ttyACM1"},
		{Name: "ttyAMA0", Path: "/dev/ttyAMA0"},
		{Name: "ttySAC2", Path: "/dev/ttySAC2"},
	}

	names := func(ps []serial.PortInfo) []string {
		var out []string
		for _, p := range ps {
			out = append(out, p.Name)
		}
		return out
	}

	assert.Len(t, filterPorts(ports, ""), 5)
	assert.Len(t, filterPorts(ports, "all"), 5)
	assert.Equal(t, []string{"ttyUSB0", "ttyACM1"}, names(filterPorts(ports, "usb")))
	assert.Equal(t, []string{"ttyS0"}, names(filterPorts(ports, "standard")))
	assert.Equal(t, []string{"ttyAMA0"}, names(filterPorts(ports, "arm")))
	assert.Equal(t, []string{"ttyS0"}, names(filterPorts(ports, "COM")))
}

func TestGetPortType(t *testing.T) {
	assert.Equal(t, "USB Serial", getPortType("ttyUSB0"))
	assert.Equal(t, "Standard Serial", getPortType("ttyS3"))
	assert.Equal(t, "Samsung Serial", getPortType("ttySAC0"))
	assert.Equal(t, "Call-out", getPortType("cu.usbserial-1410"))
	assert.Equal(t, "COM Port", getPortType("COM4"))
}
