package utils

import (
	"fmt"
	"time"
)

// MessageType selects the color of a console message.
type MessageType int

// Message types printed by the folco CLI.
const (
	DefaultMessage MessageType = iota
	SuccessMessage
	ErrorMessage
	StatusMessage
	WarningMessage
)

const resetColor = "\x1b[0m"

var messageColors = map[MessageType]string{
	DefaultMessage: resetColor,
	StatusMessage:  "\x1b[36m",
	SuccessMessage: "\x1b[32m",
	ErrorMessage:   "\x1b[31m",
	WarningMessage: "\x1b[33m",
}

// NoColor disables the escape sequences added by DecorateText. The CLI sets
// it when the output is not a terminal.
var NoColor bool

// DecorateText wraps s in the escape sequence of its message type.
func DecorateText(s string, msgType MessageType) string {
	color, ok := messageColors[msgType]
	if NoColor || !ok {
		return s
	}
	return color + s + resetColor
}

// FormatTime prints the duration of a batch: seconds with two decimals below
// a minute, then whole minutes and hours.
func FormatTime(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
	d = d.Round(time.Second)
	h, m, s := d/time.Hour, (d%time.Hour)/time.Minute, (d%time.Minute)/time.Second
	if h == 0 {
		return fmt.Sprintf("%dm %ds", m, s)
	}
	return fmt.Sprintf("%dh %dm %ds", h, m, s)
}
