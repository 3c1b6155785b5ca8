package utils

import (
	"fmt"
	"time"
)

// MessageType selects the color of a CLI message.
type MessageType int

const (
	DefaultMessage MessageType = iota
	SuccessMessage
	ErrorMessage
	StatusMessage
)

// ANSI escape sequences of the message colors.
const (
	DefaultColor = "\x1b[0m"
	StatusColor  = "\x1b[36m"
	SuccessColor = "\x1b[32m"
	ErrorColor   = "\x1b[31m"
)

var messageColors = map[MessageType]string{
	DefaultMessage: DefaultColor,
	SuccessMessage: SuccessColor,
	ErrorMessage:   ErrorColor,
	StatusMessage:  StatusColor,
}

// DecorateText wraps s in the color of the message type and resets the
// terminal color afterwards. Unknown types leave s unchanged.
func DecorateText(s string, msgType MessageType) string {
	c, ok := messageColors[msgType]
	if !ok {
		return s
	}
	return c + s + DefaultColor
}

// Banner prefixes the message with the decorated application name.
func Banner(msg string, msgType MessageType) string {
	return DecorateText("✎ DOODLE", StatusMessage) + " " + DecorateText(msg, msgType)
}

// FormatTime renders a duration as seconds, "Xm Ys" or "Xh Ym Zs".
func FormatTime(d time.Duration) string {
	h := d / time.Hour
	m := (d % time.Hour) / time.Minute
	sec := (d % time.Minute).Seconds()

	switch {
	case h > 0:
		return fmt.Sprintf("%dh %dm %.2fs", int64(h), int64(m), sec)
	case m > 0:
		return fmt.Sprintf("%dm %.2fs", int64(m), sec)
	}
	return fmt.Sprintf("%.2fs", sec)
}
