// Package notifier delivers desktop notifications for due reminders and
// blocks that start with their alarm on.
package notifier

import (
	"fmt"

	"github.com/gen2brain/beeep"

	"github.com/julianstephens/daychain/internal/constants"
	"github.com/julianstephens/daychain/internal/models"
)

// Notifier sends a single notification.
type Notifier interface {
	Notify(title, message string) error
}

// Desktop notifies through the OS notification center.
type Desktop struct {
	// Sound plays the system alert sound with the notification.
	Sound bool
}

var (
	notifyFunc = beeep.Notify
	alertFunc  = beeep.Alert
)

func NewDesktop(sound bool) *Desktop {
	return &Desktop{Sound: sound}
}

func (d *Desktop) Notify(title, message string) error {
	if d.Sound {
		return alertFunc(title, message, "")
	}
	return notifyFunc(title, message, "")
}

// Nop drops every notification.
type Nop struct{}

func (Nop) Notify(string, string) error { return nil }

// New returns a desktop notifier, or Nop when notifications are disabled.
func New(enabled, sound bool) Notifier {
	if !enabled {
		return Nop{}
	}
	return NewDesktop(sound)
}

var reminderMessages = map[string]string{
	constants.ReminderHydration: "Time for a glass of water.",
	constants.ReminderMovement:  "Stand up and stretch for a minute.",
}

// FormatReminder builds the title and body for a due reminder.
func FormatReminder(name string) (string, string) {
	msg, ok := reminderMessages[name]
	if !ok {
		msg = fmt.Sprintf("%s reminder is due.", name)
	}
	return constants.AppName, msg
}

// FormatBlockStart builds the title and body for a block whose alarm fired.
func FormatBlockStart(b models.TimeBlock) (string, string) {
	return fmt.Sprintf("%s · %s", constants.AppName, b.Time), fmt.Sprintf("%s (%s)", b.Activity, b.Category)
}
