package notification

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"opaleka/config"

	"go.uber.org/zap"
)

const brevoEndpoint = "https://api.brevo.com/v3/smtp/email"

// Mailer sends transactional email through the Brevo HTTP API. A nil or
// unconfigured mailer silently skips sends so email stays optional in
// development.
type Mailer struct {
	apiKey      string
	senderEmail string
	senderName  string
	client      *http.Client
}

// NewMailer builds a Mailer from the loaded configuration.
func NewMailer() *Mailer {
	cfg := config.AppConfig
	if cfg.BrevoAPIKey == "" || cfg.EmailSender == "" {
		zap.L().Warn("mailer: email credentials not configured, sends will be skipped")
		return &Mailer{}
	}
	return &Mailer{
		apiKey:      cfg.BrevoAPIKey,
		senderEmail: cfg.EmailSender,
		senderName:  cfg.EmailSenderName,
		client:      &http.Client{Timeout: 10 * time.Second},
	}
}

// Enabled reports whether the mailer has credentials to send with.
func (m *Mailer) Enabled() bool {
	return m != nil && m.apiKey != ""
}

type brevoPayload struct {
	Sender      map[string]string   `json:"sender"`
	To          []map[string]string `json:"to"`
	Subject     string              `json:"subject"`
	HTMLContent string              `json:"htmlContent"`
}

// Send delivers one HTML email. Extra recipients (e.g. the billing CC
// address) may be appended after the primary one.
func (m *Mailer) Send(toEmail, toName, subject, htmlContent string, cc ...string) error {
	if !m.Enabled() {
		return nil
	}
	if toEmail == "" || !strings.Contains(toEmail, "@") {
		return fmt.Errorf("invalid recipient email: %s", toEmail)
	}

	recipientName := toName
	if recipientName == "" {
		recipientName = toEmail[:strings.Index(toEmail, "@")]
	}

	to := []map[string]string{{"email": toEmail, "name": recipientName}}
	for _, addr := range cc {
		if addr != "" {
			to = append(to, map[string]string{"email": addr})
		}
	}

	payload := brevoPayload{
		Sender:      map[string]string{"name": m.senderName, "email": m.senderEmail},
		To:          to,
		Subject:     subject,
		HTMLContent: htmlContent,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, brevoEndpoint, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("api-key", m.apiKey)
	req.Header.Set("content-type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("brevo api error: status %d, body: %s", resp.StatusCode, string(respBody))
	}
	return nil
}
