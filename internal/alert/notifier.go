package alert

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"
)

// Notifier fires the outbound breach notification for one security code.
type Notifier interface {
	Notify(code string) error
}

// TriggerNotifier performs a single GET against a fixed base URL with the
// security code appended. One attempt, short timeout, no retry; the returned
// status code does not matter, only transport-level completion does.
type TriggerNotifier struct {
	BaseURL string
	Client  *http.Client
}

// NewTriggerNotifier creates a notifier with optional proxy support.
func NewTriggerNotifier(baseURL, proxyURL string) *TriggerNotifier {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &TriggerNotifier{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout:   10 * time.Second,
			Transport: transport,
		},
	}
}

// Notify fires the trigger for code.
func (t *TriggerNotifier) Notify(code string) error {
	target := t.BaseURL + code
	resp, err := t.Client.Get(target)
	if err != nil {
		return fmt.Errorf("notify %s: %w", code, err)
	}
	defer resp.Body.Close()

	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 100))
	log.Info().
		Str("code", code).
		Str("url", target).
		Int("status", resp.StatusCode).
		Str("body", string(snippet)).
		Msg("notification sent")
	return nil
}
