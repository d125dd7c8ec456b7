//go:build unix

package serial

import (
	"errors"
	"time"

	"github.com/creack/goselect"
	"golang.org/x/sys/unix"
)

// fdHandle is a non-blocking file descriptor used through raw syscalls so
// reads come back with EAGAIN instead of parking in the runtime poller.
type fdHandle struct {
	fd int
}

// OpenDevice opens path in non-blocking mode without making it the
// controlling terminal.
func OpenDevice(path string, f OpenFlags) (Handle, error) {
	flags := unix.O_NOCTTY | unix.O_NONBLOCK | unix.O_CLOEXEC
	switch {
	case f.Read && f.Write:
		flags |= unix.O_RDWR
	case f.Write:
		flags |= unix.O_WRONLY
	default:
		flags |= unix.O_RDONLY
	}
	if f.Append {
		flags |= unix.O_APPEND | unix.O_CREAT
	}
	if f.Truncate {
		flags |= unix.O_TRUNC | unix.O_CREAT
	}

	fd, err := unix.Open(path, flags, 0o666)
	if err != nil {
		return nil, err
	}
	return &fdHandle{fd: fd}, nil
}

func (h *fdHandle) Read(max int) ([]byte, error) {
	buf := make([]byte, max)
	n, err := unix.Read(h.fd, buf)
	if err != nil {
		if errors.Is(err, unix.EAGAIN) || errors.Is(err, unix.EINTR) {
			return buf[:0], nil
		}
		return nil, err
	}
	return buf[:n], nil
}

func (h *fdHandle) Write(p []byte) (int, error) {
	written := 0
	for written < len(p) {
		n, err := unix.Write(h.fd, p[written:])
		if n > 0 {
			written += n
		}
		if err != nil {
			if errors.Is(err, unix.EAGAIN) || errors.Is(err, unix.EINTR) {
				ok, werr := h.waitWritable()
				if werr != nil {
					return written, werr
				}
				if !ok {
					return written, err
				}
				continue
			}
			return written, err
		}
	}
	return written, nil
}

func (h *fdHandle) Close() error {
	return unix.Close(h.fd)
}

// WaitReadable blocks until input is pending or timeout elapses
func (h *fdHandle) WaitReadable(timeout time.Duration) (bool, error) {
	fds := &goselect.FDSet{}
	fds.Set(uintptr(h.fd))
	if err := goselect.Select(h.fd+1, fds, nil, nil, timeout); err != nil {
		if errors.Is(err, unix.EINTR) {
			return false, nil
		}
		return false, err
	}
	return fds.IsSet(uintptr(h.fd)), nil
}

// waitWritable lets a full output queue drain before writing again
func (h *fdHandle) waitWritable() (bool, error) {
	fds := &goselect.FDSet{}
	fds.Set(uintptr(h.fd))
	if err := goselect.Select(h.fd+1, nil, fds, nil, time.Second); err != nil && !errors.Is(err, unix.EINTR) {
		return false, err
	}
	return fds.IsSet(uintptr(h.fd)), nil
}
