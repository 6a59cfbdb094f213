package googleauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// DefaultUserInfoURL is Google's OpenID Connect userinfo endpoint.
const DefaultUserInfoURL = "https://www.googleapis.com/oauth2/v3/userinfo"

// ErrTokenRejected indicates Google did not accept the access token.
var ErrTokenRejected = errors.New("google rejected the access token")

// Profile is the identity Google reports for a verified access token.
type Profile struct {
	Subject string `json:"sub"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// Verifier checks a Google OAuth access token server-side and returns the
// profile Google associates with it. Client-claimed profiles must never be
// trusted without this check.
type Verifier interface {
	Verify(ctx context.Context, accessToken string) (*Profile, error)
}

// Client verifies access tokens against Google's userinfo endpoint.
type Client struct {
	userInfoURL string
	httpClient  *http.Client
}

// NewClient creates a verifier. An empty userInfoURL selects the real
// Google endpoint; tests point it at a local server.
func NewClient(userInfoURL string) *Client {
	if userInfoURL == "" {
		userInfoURL = DefaultUserInfoURL
	}
	return &Client{
		userInfoURL: userInfoURL,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
	}
}

// Verify fetches the userinfo document for the access token.
func (c *Client) Verify(ctx context.Context, accessToken string) (*Profile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.userInfoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build userinfo request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach Google userinfo endpoint: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		// fall through to decode
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, ErrTokenRejected
	default:
		return nil, fmt.Errorf("google userinfo endpoint returned status %d", resp.StatusCode)
	}

	var profile Profile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("failed to decode userinfo response: %w", err)
	}
	return &profile, nil
}
