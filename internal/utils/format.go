// Package utils holds small display helpers shared by the CLI and API.
package utils

import (
	"fmt"
	"time"
)

// FormatRelative renders a timestamp relative to now, e.g. "Just now",
// "5m ago", "Yesterday" or a plain date for anything older.
func FormatRelative(ts, now time.Time) string {
	if ts.IsZero() {
		return "N/A"
	}
	delta := now.Sub(ts)

	switch days := daysBetween(ts, now); {
	case days == 0:
		if delta < time.Minute {
			return "Just now"
		}
		if delta < time.Hour {
			return fmt.Sprintf("%dm ago", int(delta.Minutes()))
		}
		return fmt.Sprintf("%dh ago", int(delta.Hours()))
	case days == 1:
		return "Yesterday"
	default:
		return ts.Format("2006-01-02 15:04")
	}
}

func daysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	start := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	end := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(end.Sub(start).Hours() / 24)
}

// StatusColor maps a status string to a display color.
func StatusColor(status string) string {
	switch status {
	case "Online", "Connected":
		return "green"
	case "Warning", "Degraded":
		return "orange"
	case "Offline", "Disconnected", "Error":
		return "red"
	default:
		return "gray"
	}
}
