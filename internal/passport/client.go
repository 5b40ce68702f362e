package passport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/avelikov/flightdesk/config"
)

// ErrNotFound means the identity authority has no record for the passport id.
var ErrNotFound = errors.New("passport not found")

// Record is the authoritative identity for a passport id.
type Record struct {
	PassportID string `json:"passport_id"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
}

// Verifier looks up the authoritative name for a passport identifier.
type Verifier interface {
	Lookup(ctx context.Context, passportID string) (*Record, error)
}

// Client calls the external Passport API over HTTP.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient(cfg config.PassportConfig) *Client {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		BaseURL: cfg.BaseURL,
		HTTP:    &http.Client{Timeout: timeout},
	}
}

// Lookup fetches the identity record for a passport id. A 404 from the
// authority maps to ErrNotFound; any other non-200 is a transport error.
func (c *Client) Lookup(ctx context.Context, passportID string) (*Record, error) {
	if passportID == "" {
		return nil, errors.New("passport id cannot be empty")
	}

	url := fmt.Sprintf("%s/passports/%s", c.BaseURL, passportID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build passport request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call passport api: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("passport api returned %d: %s", resp.StatusCode, body)
	}

	var record Record
	if err := json.NewDecoder(resp.Body).Decode(&record); err != nil {
		return nil, fmt.Errorf("decode passport response: %w", err)
	}
	return &record, nil
}

var _ Verifier = (*Client)(nil)
