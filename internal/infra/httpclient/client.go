package httpclient

import (
	"net/http"
	"time"
)

// New returns the client used for outbound calls, currently only the mail
// relay. The timeout bounds the whole exchange, not just the dial.
func New(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}
