// internal/notify/notify.go
package notify

import (
	"log"
	"sync"

	"github.com/0xAX/notificator"
)

// Notifier raises user-visible notifications. The desktop implementation
// is the stand-in for the platform notification channel; tests use the
// recording implementation.
type Notifier interface {
	Push(title, message string) error
}

// DesktopNotifier shows system notifications.
type DesktopNotifier struct {
	notify *notificator.Notificator
}

func NewDesktopNotifier(appName string) *DesktopNotifier {
	return &DesktopNotifier{
		notify: notificator.New(notificator.Options{
			AppName: appName,
		}),
	}
}

func (d *DesktopNotifier) Push(title, message string) error {
	return d.notify.Push(title, message, "", notificator.UR_NORMAL)
}

// RecordingNotifier captures notifications for tests.
type RecordingNotifier struct {
	mu     sync.Mutex
	Pushed []Notification
}

type Notification struct {
	Title   string
	Message string
}

func NewRecordingNotifier() *RecordingNotifier {
	return &RecordingNotifier{}
}

func (r *RecordingNotifier) Push(title, message string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Pushed = append(r.Pushed, Notification{Title: title, Message: message})
	return nil
}

// Last returns the most recent notification, if any.
func (r *RecordingNotifier) Last() (Notification, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.Pushed) == 0 {
		return Notification{}, false
	}
	return r.Pushed[len(r.Pushed)-1], true
}

// LogNotifier writes notifications to the process log. Used when no
// desktop session is available.
type LogNotifier struct{}

func (LogNotifier) Push(title, message string) error {
	log.Printf("[notify] %s: %s", title, message)
	return nil
}
