//go:build unix

package serial

import (
	"os"
	"path/filepath"
	"regexp"
	"runtime"
)

const devDir = "/dev"

// ListPorts returns the serial devices found under /dev, sorted.
// Virtual terminals and pseudo-terminals are excluded.
func ListPorts() ([]PortInfo, error) {
	return listPortsIn(devDir, portPatternsFor(runtime.GOOS))
}

func portPatternsFor(goos string) []*regexp.Regexp {
	if goos == "linux" {
		return linuxPortPatterns
	}
	return bsdPortPatterns
}

func listPortsIn(dir string, patterns []*regexp.Regexp) ([]PortInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}

	var ports []PortInfo
	for _, name := range filterPortNames(names, patterns) {
		path := filepath.Join(dir, name)
		if !isCharacterDevice(path) {
			continue
		}
		ports = append(ports, PortInfo{
			Name:        name,
			Path:        path,
			Description: getPortDescription(name),
			COMLabel:    comLabelFor(name),
		})
	}
	return ports, nil
}

// isCharacterDevice checks if the given path is a character device
func isCharacterDevice(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
