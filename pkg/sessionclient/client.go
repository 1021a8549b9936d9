package sessionclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Client drives the session endpoints on behalf of a Handle: login remembers
// the minted pair, validation presents it, logout forgets it. Failures to
// reach the server are returned as errors distinct from a rejected session
// (ErrUnauthenticated) so callers can retry instead of dropping the handle.
type Client struct {
	baseURL string
	handle  *Handle
	http    *http.Client
}

// ErrUnauthenticated reports that the server rejected the presented session:
// the handle has been forgotten and the user must log in again.
var ErrUnauthenticated = fmt.Errorf("session rejected")

func New(baseURL string, handle *Handle) *Client {
	return &Client{
		baseURL: baseURL,
		handle:  handle,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	SessionToken string `json:"session_token"`
	Kind         Kind   `json:"kind"`
}

type validateRequest struct {
	SessionToken string `json:"session_token"`
	Kind         Kind   `json:"kind"`
}

// Login authenticates and remembers the minted session pair.
func (c *Client) Login(ctx context.Context, email, password string) error {
	var resp loginResponse
	status, err := c.post(ctx, "/api/login", loginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return ErrUnauthenticated
	}

	c.handle.Remember(resp.SessionToken, resp.Kind)
	return nil
}

// Validate presents the held pair to the server. A 401 forgets the handle and
// returns ErrUnauthenticated; transport and server errors leave it in place.
func (c *Client) Validate(ctx context.Context) error {
	token, kind, ok := c.handle.Current()
	if !ok {
		return ErrUnauthenticated
	}

	status, err := c.post(ctx, "/api/session/validate", validateRequest{SessionToken: token, Kind: kind}, nil)
	if err != nil {
		return err
	}
	switch {
	case status == http.StatusOK:
		return nil
	case status == http.StatusUnauthorized:
		c.handle.Forget()
		return ErrUnauthenticated
	default:
		return fmt.Errorf("session validate: status %d", status)
	}
}

// Logout forgets the handle and tells the server to drop the row.
func (c *Client) Logout(ctx context.Context) error {
	_, kind, ok := c.handle.Current()
	c.handle.Forget()
	if !ok {
		return nil
	}
	_, err := c.post(ctx, fmt.Sprintf("/api/logout?kind=%s", kind), struct{}{}, nil)
	return err
}

func (c *Client) post(ctx context.Context, path string, payload, out any) (int, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	if token, _, ok := c.handle.Current(); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("session request: %w", err)
	}
	defer res.Body.Close()

	if out != nil && res.StatusCode < http.StatusBadRequest {
		if err := json.NewDecoder(res.Body).Decode(out); err != nil {
			return res.StatusCode, fmt.Errorf("session response: %w", err)
		}
	}
	return res.StatusCode, nil
}
