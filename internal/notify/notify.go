package notify

import (
	"os/exec"

	"go.uber.org/zap"
)

const appName = "hyprcolor"

type Notifier interface {
	// Send shows a catalogue message. detail fills the %s of the body, or is
	// appended to error bodies.
	Send(mt MessageType, detail string)
}

// New returns the notifier for a notifications.type value.
func New(kind string, msgs map[MessageType]Message) Notifier {
	if msgs == nil {
		msgs = DefaultMessages()
	}
	switch kind {
	case "desktop":
		return Desktop{Messages: msgs}
	case "log":
		return Log{Messages: msgs}
	default:
		return Nop{}
	}
}

type Desktop struct {
	Messages map[MessageType]Message
}

func (d Desktop) Send(mt MessageType, detail string) {
	msg := lookup(d.Messages, mt).withDetail(detail)
	cmd := exec.Command("notify-send", desktopArgs(msg)...)
	if err := cmd.Run(); err != nil {
		zap.S().Warnf("Failed to send notification: %v", err)
	}
}

func desktopArgs(msg Message) []string {
	args := []string{"-a", appName,
		// replace the previous hyprcolor bubble instead of stacking
		"-h", "string:x-canonical-private-synchronous:" + appName}
	if msg.IsError {
		args = append(args, "-u", "critical")
	}
	args = append(args, msg.Title)
	if msg.Body != "" {
		args = append(args, msg.Body)
	}
	return args
}

// Log writes notifications to the logger instead of the desktop.
type Log struct {
	Messages map[MessageType]Message
}

func (l Log) Send(mt MessageType, detail string) {
	msg := lookup(l.Messages, mt).withDetail(detail)
	if msg.IsError {
		zap.S().Errorw(msg.Title, "body", msg.Body)
		return
	}
	zap.S().Infow(msg.Title, "body", msg.Body)
}

// Nop is a Notifier that does absolutely nothing.
// Useful in unit tests or headless builds.
type Nop struct{}

func (Nop) Send(MessageType, string) {}
