package serial

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// PortInfo describes a device name that DeviceSet is likely to accept
type PortInfo struct {
	Name        string // base name, e.g. ttyUSB0 or COM3
	Path        string // what to pass to DeviceSet
	Description string
	COMLabel    string // equivalent COM<n> label, when one exists
}

var (
	// devices worth offering on Linux
	linuxPortPatterns = []*regexp.Regexp{
		regexp.MustCompile(`^ttyUSB\d+$`), // USB serial adapters
		regexp.MustCompile(`^ttyACM\d+$`), // USB CDC/ACM devices
		regexp.MustCompile(`^ttyS\d+$`),   // Standard serial ports
		regexp.MustCompile(`^ttyAMA\d+$`), // ARM/Raspberry Pi serial
		regexp.MustCompile(`^ttymxc\d+$`), // i.MX serial ports
		regexp.MustCompile(`^ttyO\d+$`),   // OMAP serial ports
		regexp.MustCompile(`^ttySAC\d+$`), // Samsung serial ports
		regexp.MustCompile(`^ttyTHS\d+$`), // Tegra serial ports
	}

	// Darwin and the BSDs expose call-out (cu.) and dial-in (tty.) nodes
	bsdPortPatterns = []*regexp.Regexp{
		regexp.MustCompile(`^cu\..+$`),
		regexp.MustCompile(`^tty\..+$`),
		regexp.MustCompile(`^cuaU?\d+$`),
		regexp.MustCompile(`^ttyU?\d+$`),
	}

	excludePortPatterns = []*regexp.Regexp{
		regexp.MustCompile(`^tty\d+$`),  // Virtual terminals (tty1, tty2, etc.)
		regexp.MustCompile(`^console$`), // Console
		regexp.MustCompile(`^ptmx$`),    // Pseudo-terminal multiplexer
		regexp.MustCompile(`^pty.*$`),   // Pseudo-terminals
		regexp.MustCompile(`^pts/.*$`),  // Pseudo-terminal slaves
		regexp.MustCompile(`\.(init|lock)$`),
	}

	ttySPattern = regexp.MustCompile(`^ttyS(\d+)$`)
)

// filterPortNames keeps the names matching one of patterns and none of the
// exclusions, sorted.
func filterPortNames(names []string, patterns []*regexp.Regexp) []string {
	var out []string
	for _, name := range names {
		if matchesAny(name, excludePortPatterns) {
			continue
		}
		if matchesAny(name, patterns) {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

func matchesAny(name string, patterns []*regexp.Regexp) bool {
	for _, p := range patterns {
		if p.MatchString(name) {
			return true
		}
	}
	return false
}

// comLabelFor returns the COM label that DeviceSet rewrites to name on the
// termios family, so ttyS0 is COM1.
func comLabelFor(name string) string {
	m := ttySPattern.FindStringSubmatch(name)
	if m == nil {
		return ""
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return ""
	}
	return "COM" + strconv.Itoa(n+1)
}

// getPortDescription provides human-readable descriptions for different port types
func getPortDescription(name string) string {
	switch {
	case strings.HasPrefix(name, "ttyUSB"):
		return "USB Serial Port"
	case strings.HasPrefix(name, "ttyACM"):
		return "USB CDC/ACM Device"
	case strings.HasPrefix(name, "ttyAMA"):
		return "ARM Serial Port"
	case strings.HasPrefix(name, "ttymxc"):
		return "i.MX Serial Port"
	case strings.HasPrefix(name, "ttySAC"):
		return "Samsung Serial Port"
	case strings.HasPrefix(name, "ttyTHS"):
		return "Tegra Serial Port"
	case strings.HasPrefix(name, "ttyO"):
		return "OMAP Serial Port"
	case strings.HasPrefix(name, "ttyS"):
		return "Standard Serial Port"
	case strings.HasPrefix(name, "cu."):
		return "Call-out Serial Port"
	case strings.HasPrefix(name, "tty."):
		return "Dial-in Serial Port"
	case strings.HasPrefix(strings.ToUpper(name), "COM"):
		return "COM Port"
	default:
		return "Serial Port"
	}
}
