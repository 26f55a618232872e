package door

import (
	"context"
	"fmt"
	"net/http"
	"time"

	portssvc "github.com/gymtrack/gymtrack-api/internal/core/ports/services"
)

// Client pulses the door relay controller over HTTP. The controller exposes a
// single endpoint that opens the turnstile for one rotation.
type Client struct {
	url        string
	httpClient *http.Client
}

// NewClient creates a door relay client. An empty url yields a no-op client
// for environments without a relay controller (local development, tests).
func NewClient(url string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Client{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
	}
}

var _ portssvc.DoorSignaler = (*Client)(nil)

// SignalOpen requests one door pulse. The relay protocol has no body; any
// 2xx status is success.
func (c *Client) SignalOpen(ctx context.Context) error {
	if c.url == "" {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, nil)
	if err != nil {
		return fmt.Errorf("failed to build door signal request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("door signal request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("door controller returned status %d", resp.StatusCode)
	}
	return nil
}
