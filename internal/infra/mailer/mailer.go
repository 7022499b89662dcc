package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/bazarhat/backend/internal/domain/model"
	"github.com/bazarhat/backend/internal/infra/httpclient"
)

// Mailer delivers approved emails through an HTTP relay. Anything but a 2xx
// response is a delivery failure.
type Mailer struct {
	client   *http.Client
	endpoint string
	from     string
}

func New(endpoint, from string, timeout time.Duration) (*Mailer, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("mailer endpoint is required")
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Mailer{
		client:   httpclient.New(timeout),
		endpoint: endpoint,
		from:     from,
	}, nil
}

type relayPayload struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
	RelayedAt string `json:"relayed_at"`
}

func (m *Mailer) Send(ctx context.Context, item model.EmailItem) error {
	payload := relayPayload{
		From:      m.from,
		To:        item.Recipient,
		Subject:   item.Subject,
		Body:      item.Body,
		RelayedAt: time.Now().UTC().Format(time.RFC3339),
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal relay payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint, bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("build relay request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("relay email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("relay email: unexpected status %d", resp.StatusCode)
	}

	return nil
}
