// pkg/email/smtp.go
package email

import (
	"bytes"
	"context"
	"fmt"
	"net/smtp"
	"text/template"
)

// SMTPService implements Service using SMTP.
type SMTPService struct {
	config   *Config
	template Template
	auth     smtp.Auth
}

// NewSMTPService creates a new SMTP email service.
func NewSMTPService(config *Config) *SMTPService {
	auth := smtp.PlainAuth("", config.SMTPUsername, config.SMTPPassword, config.SMTPHost)

	return &SMTPService{
		config:   config,
		template: NewReminderTemplate(),
		auth:     auth,
	}
}

// SendReminderEmail renders the reminder template and delivers it.
func (s *SMTPService) SendReminderEmail(ctx context.Context, to, taskTitle, taskDescription string) error {
	data := &Data{
		AppName:         s.config.AppName,
		TaskTitle:       taskTitle,
		TaskDescription: taskDescription,
	}

	subject, err := s.render(s.template.Subject, data)
	if err != nil {
		return fmt.Errorf("render subject: %w", err)
	}

	body, err := s.render(s.template.TextBody, data)
	if err != nil {
		return fmt.Errorf("render body: %w", err)
	}

	msg := s.buildMessage(to, subject, body)
	addr := fmt.Sprintf("%s:%d", s.config.SMTPHost, s.config.SMTPPort)

	done := make(chan error, 1)
	go func() {
		done <- smtp.SendMail(addr, s.auth, s.config.FromEmail, []string{to}, msg)
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		if err != nil {
			return fmt.Errorf("send mail: %w", err)
		}
		return nil
	}
}

// TestConnection verifies the SMTP server is reachable.
func (s *SMTPService) TestConnection(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.config.SMTPHost, s.config.SMTPPort)
	client, err := smtp.Dial(addr)
	if err != nil {
		return fmt.Errorf("dial smtp server: %w", err)
	}
	return client.Close()
}

func (s *SMTPService) render(text string, data *Data) (string, error) {
	tmpl, err := template.New("email").Parse(text)
	if err != nil {
		return "", fmt.Errorf("parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute template: %w", err)
	}
	return buf.String(), nil
}

func (s *SMTPService) buildMessage(to, subject, body string) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "From: %s <%s>\r\n", s.config.FromName, s.config.FromEmail)
	fmt.Fprintf(&buf, "To: %s\r\n", to)
	fmt.Fprintf(&buf, "Subject: %s\r\n", subject)
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	buf.WriteString("\r\n")
	buf.WriteString(body)
	return buf.Bytes()
}
