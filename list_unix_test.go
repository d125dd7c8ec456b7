//go:build unix

package serial

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListPortsInSkipsNonDevices(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ttyUSB0"), nil, 0o644))

	ports, err := listPortsIn(dir, linuxPortPatterns)
	require.NoError(t, err)
	assert.Empty(t, ports)
}

func TestListPortsInCharacterDevice(t *testing.T) {
	ports, err := listPortsIn("/dev", []*regexp.Regexp{regexp.MustCompile(`^null$`)})
	require.NoError(t, err)
	require.Len(t, ports, 1)
	assert.Equal(t, "/dev/null", ports[0].Path)
	assert.Equal(t, "null", ports[0].Name)
}

func TestIsCharacterDevice(t *testing.T) {
	assert.True(t, isCharacterDevice("/dev/null"))
	assert.False(t, isCharacterDevice(t.TempDir()))
	assert.False(t, isCharacterDevice("/nonexistent"))
}

func TestListPorts(t *testing.T) {
	ports, err := ListPorts()
	require.NoError(t, err)
	for i, p := range ports {
		assert.True(t, isCharacterDevice(p.Path), p.Path)
		if i > 0 {
			assert.LessOrEqual(t, ports[i-1].Name, p.Name)
		}
	}
}
