// internal/reminder/dispatcher.go
package reminder

import (
	"context"
	"fmt"
	"log"

	"github.com/focusdeck/focusdeck/internal/models"
	"github.com/focusdeck/focusdeck/internal/notify"
	"github.com/focusdeck/focusdeck/pkg/email"
	"github.com/focusdeck/focusdeck/pkg/sms"
)

// ContactSource supplies the stored phone/email pair at fire time. The
// dispatcher never reads controller state; everything it needs is the
// alarm payload plus this.
type ContactSource interface {
	Contact() (phone, emailAddr string)
}

// Dispatcher fans a fired alarm out over its configured delivery
// channels. A channel that cannot deliver substitutes a failure
// notification; unknown method names are skipped.
type Dispatcher struct {
	notifier notify.Notifier
	email    email.Service // nil when no SMTP relay is configured
	sms      sms.Sender    // nil when no SMS gateway is configured
	contacts ContactSource
}

func NewDispatcher(notifier notify.Notifier, emailSvc email.Service, smsSender sms.Sender, contacts ContactSource) *Dispatcher {
	return &Dispatcher{
		notifier: notifier,
		email:    emailSvc,
		sms:      smsSender,
		contacts: contacts,
	}
}

// Dispatch delivers one reminder through every configured method.
func (d *Dispatcher) Dispatch(ctx context.Context, title, description string, methods []string) {
	if title == "" {
		title = "Task reminder"
	}
	if description == "" {
		description = "A task of yours is coming due"
	}

	for _, name := range methods {
		switch models.ReminderMethod(name) {
		case models.RemindInApp, models.RemindFloatWindow:
			d.push(title, description)

		case models.RemindSMS:
			d.dispatchSMS(ctx, title, description)

		case models.RemindEmail:
			d.dispatchEmail(ctx, title, description)

		default:
			// Stale alarms may carry method names that no longer exist.
			log.Printf("skipping unknown reminder method %q", name)
		}
	}
}

func (d *Dispatcher) dispatchSMS(ctx context.Context, title, description string) {
	phone, _ := d.contacts.Contact()
	if phone == "" {
		d.push("SMS reminder failed", "No phone number on file")
		return
	}
	if d.sms == nil {
		d.push("SMS reminder failed", "No SMS gateway configured")
		return
	}

	message := fmt.Sprintf("Task reminder: %s. Details: %s", title, description)
	if err := d.sms.SendSMS(ctx, phone, message); err != nil {
		log.Printf("sms reminder to %s failed: %v", phone, err)
		d.push("SMS delivery failed", "Could not send reminder to "+phone)
	}
}

func (d *Dispatcher) dispatchEmail(ctx context.Context, title, description string) {
	_, addr := d.contacts.Contact()
	if addr == "" {
		d.push("Email reminder failed", "No email address on file")
		return
	}
	if d.email == nil {
		d.push("Email reminder failed", "No mail relay configured")
		return
	}

	if err := d.email.SendReminderEmail(ctx, addr, title, description); err != nil {
		log.Printf("email reminder to %s failed: %v", addr, err)
		d.push("Email delivery failed", "Could not send reminder to "+addr)
	}
}

func (d *Dispatcher) push(title, message string) {
	if err := d.notifier.Push(title, message); err != nil {
		log.Printf("notification %q failed: %v", title, err)
	}
}
