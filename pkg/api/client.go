// Package api talks to the remote form service: one endpoint to register
// a user, one to fetch the form schema keyed by roll number. Both calls
// are single-shot; retries are always user-initiated.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/formfill/formfill/pkg/schema"
)

const defaultTimeout = 10 * time.Second

// Client is a thin wrapper over net/http for the two service endpoints.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// Option customises the client.
type Option func(*Client)

// WithHTTPClient swaps the underlying HTTP client, mainly for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout overrides the per-request timeout on the default client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithLogger attaches a diagnostics logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient builds a client for the given base address.
func NewClient(baseURL string, options ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     slog.Default(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	return c
}

type createUserRequest struct {
	RollNumber string `json:"rollNumber"`
	Name       string `json:"name"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// CreateUser registers the user with the remote service and returns the
// confirmation message. Failures come back as *AuthError: Rejected for a
// server-side decline (server message attached), transport otherwise.
func (c *Client) CreateUser(ctx context.Context, rollNumber, name string) (string, error) {
	body, err := json.Marshal(createUserRequest{RollNumber: rollNumber, Name: name})
	if err != nil {
		return "", fmt.Errorf("api: encode create-user body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/create-user", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("api: build create-user request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("create-user transport failure", "error", err)
		return "", &AuthError{Message: GenericRetryMessage, Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	payload := decodeMessage(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		message := payload.Message
		if message == "" {
			message = GenericRetryMessage
		}
		c.logger.Info("create-user rejected", "status", resp.StatusCode, "message", message)
		return "", &AuthError{Message: message, Rejected: true}
	}

	c.logger.Debug("create-user ok", "rollNumber", rollNumber)
	if payload.Message == "" {
		return DefaultUserCreatedMessage, nil
	}
	return payload.Message, nil
}

// GetForm fetches and decodes the form schema for a roll number. Any
// failure, transport, status, or decode, surfaces as *FetchError with the
// fixed failed-to-load message; the cause stays wrapped for diagnostics.
func (c *Client) GetForm(ctx context.Context, rollNumber string) (schema.Form, error) {
	endpoint := c.baseURL + "/get-form?rollNumber=" + url.QueryEscape(rollNumber)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return schema.Form{}, fmt.Errorf("api: build get-form request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("get-form transport failure", "error", err)
		return schema.Form{}, &FetchError{Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("get-form unexpected status", "status", resp.StatusCode)
		return schema.Form{}, &FetchError{Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return schema.Form{}, &FetchError{Err: err}
	}

	form, err := schema.DecodeJSON(data)
	if err != nil {
		c.logger.Warn("get-form decode failure", "error", err)
		return schema.Form{}, &FetchError{Err: err}
	}

	c.logger.Debug("get-form ok", "rollNumber", rollNumber, "sections", len(form.Sections))
	return form, nil
}

func decodeMessage(r io.Reader) messageResponse {
	var payload messageResponse
	// A missing or malformed body is not an error here; callers fall back
	// to the default messages.
	_ = json.NewDecoder(r).Decode(&payload)
	return payload
}
