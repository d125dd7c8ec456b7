//go:build windows

package serial

import (
	"golang.org/x/sys/windows"
)

const maxDWORD = 0xFFFFFFFF

// comHandle is a COM port handle whose read timeouts make ReadFile return
// immediately with whatever is buffered.
type comHandle struct {
	h windows.Handle
}

// OpenDevice opens a \\.\COMn path with reads that never wait for data.
func OpenDevice(path string, f OpenFlags) (Handle, error) {
	name, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return nil, err
	}

	var access uint32
	if f.Read {
		access |= windows.GENERIC_READ
	}
	if f.Write {
		access |= windows.GENERIC_WRITE
	}

	h, err := windows.CreateFile(name, access, 0, nil, windows.OPEN_EXISTING, windows.FILE_ATTRIBUTE_NORMAL, 0)
	if err != nil {
		return nil, err
	}

	timeouts := &windows.CommTimeouts{
		ReadIntervalTimeout:        maxDWORD,
		ReadTotalTimeoutMultiplier: 0,
		ReadTotalTimeoutConstant:   0,
	}
	if err := windows.SetCommTimeouts(h, timeouts); err != nil {
		windows.CloseHandle(h)
		return nil, err
	}

	return &comHandle{h: h}, nil
}

func (c *comHandle) Read(max int) ([]byte, error) {
	buf := make([]byte, max)
	var done uint32
	if err := windows.ReadFile(c.h, buf, &done, nil); err != nil {
		return nil, err
	}
	return buf[:done], nil
}

func (c *comHandle) Write(p []byte) (int, error) {
	var done uint32
	err := windows.WriteFile(c.h, p, &done, nil)
	return int(done), err
}

func (c *comHandle) Close() error {
	return windows.CloseHandle(c.h)
}
