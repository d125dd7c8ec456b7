package serial

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseParity(t *testing.T) {
	for in, want := range map[string]Parity{"none": ParityNone, "Odd": ParityOdd, " even ": ParityEven} {
		got, err := ParseParity(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseParity("mark")
	require.ErrorIs(t, err, ErrInvalidParameter)
}

func TestParseFlowControl(t *testing.T) {
	for in, want := range map[string]FlowControl{"none": FlowControlNone, "RTS/CTS": FlowControlRTSCTS, "xon/xoff": FlowControlXonXoff} {
		got, err := ParseFlowControl(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
		assert.Equal(t, want, mustParseFlow(t, got.String()))
	}
	_, err := ParseFlowControl("dtr/dsr")
	require.ErrorIs(t, err, ErrInvalidParameter)
}

func mustParseFlow(t *testing.T, s string) FlowControl {
	t.Helper()
	f, err := ParseFlowControl(s)
	require.NoError(t, err)
	return f
}

func TestParseStopBits(t *testing.T) {
	tests := []struct {
		in      float64
		want    StopBits
		wantErr bool
	}{
		{1, StopBitsOne, false},
		{1.5, StopBitsOnePointFive, false},
		{2, StopBitsTwo, false},
		{0, 0, true},
		{2.5, 0, true},
	}
	for _, tt := range tests {
		got, err := ParseStopBits(tt.in)
		if tt.wantErr {
			require.ErrorIs(t, err, ErrInvalidParameter)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestClampCharacterLength(t *testing.T) {
	for in, want := range map[int]int{-1: 5, 3: 5, 4: 5, 5: 8, 7: 8, 9: 8} {
		assert.Equal(t, want, clampCharacterLength(in), "length %d", in)
	}
}

func TestDefaultLineConfig(t *testing.T) {
	lc := DefaultLineConfig()
	assert.Equal(t, 9600, lc.BaudRate)
	assert.Equal(t, 8, lc.DataBits)
	assert.Equal(t, ParityNone, lc.Parity)
	assert.Equal(t, StopBitsOne, lc.StopBits)
	assert.Equal(t, FlowControlNone, lc.FlowControl)
}
