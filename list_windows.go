//go:build windows

package serial

import (
	"errors"
	"sort"

	"golang.org/x/sys/windows/registry"
)

// ListPorts returns the COM ports registered in SERIALCOMM, sorted
func ListPorts() ([]PortInfo, error) {
	k, err := registry.OpenKey(registry.LOCAL_MACHINE, `HARDWARE\DEVICEMAP\SERIALCOMM`, registry.QUERY_VALUE)
	if err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	defer k.Close()

	values, err := k.ReadValueNames(0)
	if err != nil {
		return nil, err
	}

	var ports []PortInfo
	for _, v := range values {
		label, _, err := k.GetStringValue(v)
		if err != nil {
			continue
		}
		ports = append(ports, PortInfo{
			Name:        label,
			Path:        label,
			Description: getPortDescription(label),
			COMLabel:    label,
		})
	}

	sort.Slice(ports, func(i, j int) bool { return ports[i].Name < ports[j].Name })
	return ports, nil
}
