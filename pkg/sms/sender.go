// pkg/sms/sender.go
package sms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"
)

// Sender delivers SMS reminders.
type Sender interface {
	SendSMS(ctx context.Context, phoneNumber, message string) error
}

// Config holds SMS gateway configuration.
type Config struct {
	GatewayURL string
	APIKey     string
	Sender     string
}

// GatewaySender posts messages to a JSON HTTP SMS gateway.
type GatewaySender struct {
	config *Config
	client *http.Client
}

func NewGatewaySender(config *Config) *GatewaySender {
	return &GatewaySender{
		config: config,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

type gatewayRequest struct {
	To      string `json:"to"`
	From    string `json:"from"`
	Message string `json:"message"`
}

func (g *GatewaySender) SendSMS(ctx context.Context, phoneNumber, message string) error {
	if g.config.GatewayURL == "" {
		return fmt.Errorf("sms gateway not configured")
	}

	payload, err := json.Marshal(gatewayRequest{
		To:      phoneNumber,
		From:    g.config.Sender,
		Message: message,
	})
	if err != nil {
		return fmt.Errorf("encode sms request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.config.GatewayURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build sms request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if g.config.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+g.config.APIKey)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("send sms: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("sms gateway returned status %d", resp.StatusCode)
	}
	return nil
}

// MockSender records messages instead of delivering them.
type MockSender struct {
	mu   sync.Mutex
	Sent []MockMessage
}

type MockMessage struct {
	PhoneNumber string
	Message     string
}

func NewMockSender() *MockSender {
	return &MockSender{}
}

func (m *MockSender) SendSMS(ctx context.Context, phoneNumber, message string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sent = append(m.Sent, MockMessage{PhoneNumber: phoneNumber, Message: message})
	log.Printf("[mock sms] to %s: %s", phoneNumber, message)
	return nil
}
