// Package serial configures and drives RS-232 style serial ports through a
// small lifecycle: set a device, configure its line parameters, open it,
// exchange bytes, close it.
//
// Line parameters are applied with the platform's own configuration tool:
// stty -F on Linux, stty -f on Darwin and the BSDs, and mode COMn on Windows.
// The tool is chosen once, when the Port is created.
//
// # Basic Usage
//
//	port, err := serial.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// COM1 is rewritten to /dev/ttyS0 on Linux
//	if err := port.DeviceSet("/dev/ttyUSB0"); err != nil {
//	    log.Fatal(err)
//	}
//
//	// Configuration is only possible before the device is opened
//	port.ConfBaudRate(9600)
//	port.ConfParity(serial.ParityNone)
//	port.ConfCharacterLength(8)
//	port.ConfStopBits(serial.StopBitsOne)
//	port.ConfFlowControl(serial.FlowControlNone)
//
//	if err := port.DeviceOpen(serial.DefaultOpenMode); err != nil {
//	    log.Fatal(err)
//	}
//	defer port.DeviceClose()
//
//	port.SendMessage([]byte("AT\r\n"))
//	reply, err := port.ReadPort(0)
//
// # States
//
//   - StateNotSet: no device chosen
//   - StateSet: device resolved and probed; line parameters can be changed
//   - StateOpened: handle open; reads and writes are possible
//
// Calling an operation in the wrong state fails with ErrNotReady or
// ErrAlreadyOpen and changes nothing. Closing a device that is not opened is
// a no-op.
//
// # Buffering
//
// SendMessage appends to an output buffer. With auto flush (the default) the
// buffer is written at once; otherwise call SerialFlush. A flush that fails
// still empties the buffer and reports ErrFlushFailed.
//
// Reads never wait for data: ReadPort drains what is available in chunks of
// 128 bytes. ReadPortContext can wait for the first byte.
//
// # Error Handling
//
// Use errors.Is with the Err* kinds. Failed configuration commands return a
// *ConfigError carrying the command's standard error output.
//
//	if errors.Is(err, serial.ErrConfigFailed) {
//	    var cfgErr *serial.ConfigError
//	    errors.As(err, &cfgErr)
//	    fmt.Println(cfgErr.Detail)
//	}
//
// A Port is not safe for concurrent use.
package serial
