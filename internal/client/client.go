// Package client implements the collaborator contracts the mobile core
// consumes: auth, catalog, orders, addresses and the admin console
// calls, all over the REST backend. Every failed call is terminal for
// that user action; there are no automatic retries.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// CollaboratorError is a failed service call, carrying the service's
// own message when it provided one.
type CollaboratorError struct {
	Status  int
	Message string
}

func (e *CollaboratorError) Error() string {
	return fmt.Sprintf("service error (%d): %s", e.Status, e.Message)
}

// TokenFunc supplies the current bearer token, or "" when logged out.
type TokenFunc func() string

// Client is the shared HTTP plumbing for the per-service clients.
type Client struct {
	baseURL string
	http    *http.Client
	token   TokenFunc
}

func New(baseURL string, token TokenFunc) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
		token:   token,
	}
}

// do sends a JSON request and decodes a JSON response into out (out may
// be nil for void calls). Non-2xx responses become CollaboratorErrors
// with the backend's message when it sent one.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	return c.doWith(ctx, method, path, nil, body, out)
}

// doWith is do plus extra request headers.
func (c *Client) doWith(ctx context.Context, method, path string, hdr map[string]string, body, out any) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	if c.token != nil {
		if t := c.token(); t != "" {
			req.Header.Set("Authorization", "Bearer "+t)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &CollaboratorError{Status: 0, Message: "service unreachable"}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errorFrom(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &CollaboratorError{Status: resp.StatusCode, Message: "malformed response"}
	}
	return nil
}

func errorFrom(resp *http.Response) error {
	msg := "request failed"
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&body); err == nil {
		if body.Error != "" {
			msg = body.Error
		} else if body.Message != "" {
			msg = body.Message
		}
	}
	return &CollaboratorError{Status: resp.StatusCode, Message: msg}
}
