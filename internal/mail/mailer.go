package mail

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

// Mailer sends a single email. Implementations must be safe for concurrent
// use; the dispatcher calls Send from its worker goroutine.
type Mailer interface {
	Send(msg Message) error
}

// Message is one outbound email.
type Message struct {
	To      string
	Subject string
	HTML    string
}

type recipient struct {
	Email string `json:"email"`
}

type apiRequest struct {
	From    recipient   `json:"from"`
	To      []recipient `json:"to"`
	Subject string      `json:"subject"`
	HTML    string      `json:"html"`
}

// APIMailer delivers mail through an HTTP transactional-mail API.
type APIMailer struct {
	url    string
	apiKey string
	from   string
	client *http.Client
}

// NewAPIMailer creates an APIMailer for the given endpoint and sender.
func NewAPIMailer(url, apiKey, from string) *APIMailer {
	return &APIMailer{
		url:    url,
		apiKey: apiKey,
		from:   from,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// Send posts the message to the mail API.
func (m *APIMailer) Send(msg Message) error {
	payload, err := json.Marshal(apiRequest{
		From:    recipient{Email: m.from},
		To:      []recipient{{Email: msg.To}},
		Subject: msg.Subject,
		HTML:    msg.HTML,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal email request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, m.url, bytes.NewBuffer(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		return fmt.Errorf("mail API returned status: %d", resp.StatusCode)
	}
	return nil
}

// NoopMailer drops messages. Used when no mail API is configured, so local
// development does not need mail credentials.
type NoopMailer struct{}

// Send logs and discards the message.
func (NoopMailer) Send(msg Message) error {
	log.Info().Str("to", msg.To).Str("subject", msg.Subject).Msg("Mail delivery disabled, dropping message")
	return nil
}
