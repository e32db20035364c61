package procscan

import (
	"fmt"
	"strings"
	"time"
)

// MaxPathDisplay is the default display width for directory paths.
const MaxPathDisplay = 50

// ShortenPath abbreviates a path for display: the home prefix becomes "~"
// and paths longer than maxLen keep only the trailing portion.
func ShortenPath(path, home string, maxLen int) string {
	if path == "" {
		return "N/A"
	}
	if home != "" && strings.HasPrefix(path, home) {
		path = "~" + path[len(home):]
	}
	if maxLen > 3 && len(path) > maxLen {
		return "..." + path[len(path)-(maxLen-3):]
	}
	return path
}

// FormatUptime renders an elapsed duration as "2d 3h", "3h 12m" or "12m".
func FormatUptime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh", days, hours)
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	default:
		return fmt.Sprintf("%dm", minutes)
	}
}

// FormatTerminal strips the /dev/ prefix for display; empty becomes "N/A".
func FormatTerminal(tty string) string {
	if tty == "" {
		return "N/A"
	}
	return strings.TrimPrefix(tty, "/dev/")
}
