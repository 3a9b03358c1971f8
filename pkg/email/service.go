// pkg/email/service.go
package email

import (
	"context"
	"log"
	"sync"
)

// Service sends reminder emails on behalf of the alarm dispatcher.
type Service interface {
	SendReminderEmail(ctx context.Context, to, taskTitle, taskDescription string) error
}

// Template represents an email template.
type Template struct {
	Subject  string
	TextBody string
}

// Data contains data for template rendering.
type Data struct {
	AppName         string
	TaskTitle       string
	TaskDescription string
}

// Config holds email service configuration.
type Config struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromEmail    string
	FromName     string
	AppName      string
}

// NewReminderTemplate creates the default reminder template.
func NewReminderTemplate() Template {
	return Template{
		Subject: "Task reminder: {{.TaskTitle}}",
		TextBody: `Hi,

A task of yours is coming due.

Title: {{.TaskTitle}}
Details: {{.TaskDescription}}

Please take care of it in time.

— {{.AppName}}`,
	}
}

// MockService records sent emails instead of delivering them. Used in
// tests and in development mode.
type MockService struct {
	mu   sync.Mutex
	Sent []MockMessage
}

type MockMessage struct {
	To              string
	TaskTitle       string
	TaskDescription string
}

func NewMockService() *MockService {
	return &MockService{}
}

func (m *MockService) SendReminderEmail(ctx context.Context, to, taskTitle, taskDescription string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sent = append(m.Sent, MockMessage{To: to, TaskTitle: taskTitle, TaskDescription: taskDescription})
	log.Printf("[mock email] reminder to %s: %s", to, taskTitle)
	return nil
}
