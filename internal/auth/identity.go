// Package auth holds the access-control core: the identity-assertion client,
// the session guard and its middleware, and the role/ownership policy.
package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// SessionData is the portion of the assertion-service response we care
// about. The service returns the verified profile behind an external session
// id plus a bearer token for the caller.
type SessionData struct {
	Email        string `json:"email"`
	Name         string `json:"name"`
	Picture      string `json:"picture"` // avatar URL
	SessionToken string `json:"session_token"`
}

// IdentityClient calls the external identity assertion service. One bounded
// synchronous GET per login — no retry, a failure surfaces immediately.
type IdentityClient struct {
	url    string
	client *http.Client
}

// NewIdentityClient creates a client for the assertion endpoint.
func NewIdentityClient(url string) *IdentityClient {
	return &IdentityClient{
		url:    url,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// SessionData exchanges an external session id for the verified profile.
// The session id travels in the X-Session-ID header; any non-2xx response
// is a failure.
func (c *IdentityClient) SessionData(ctx context.Context, sessionID string) (*SessionData, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("auth: building assertion request: %w", err)
	}
	req.Header.Set("X-Session-ID", sessionID)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("auth: calling assertion service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("auth: assertion service returned status %d", resp.StatusCode)
	}

	var data SessionData
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("auth: decoding assertion response: %w", err)
	}

	if data.Email == "" {
		return nil, fmt.Errorf("auth: assertion service returned no email")
	}

	return &data, nil
}
