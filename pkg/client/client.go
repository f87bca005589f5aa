// Package client is a typed HTTP client for the ConfGuard API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Config configures a Client
type Config struct {
	// BaseURL is the API root, e.g. http://localhost:8080
	BaseURL string
	// Actor is sent as X-Actor on every request
	Actor string
	// HTTPClient overrides the default client when set
	HTTPClient *http.Client
	// Timeout applies when HTTPClient is nil
	Timeout time.Duration
}

// Client talks to a ConfGuard server
type Client struct {
	baseURL string
	actor   string
	http    *http.Client

	Baselines  *BaselinesService
	Proposals  *ProposalsService
	Deviations *DeviationsService
}

// New creates a client from the given configuration
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("client: BaseURL is required")
	}

	hc := cfg.HTTPClient
	if hc == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = 30 * time.Second
		}
		hc = &http.Client{Timeout: timeout}
	}

	c := &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		actor:   cfg.Actor,
		http:    hc,
	}
	c.Baselines = &BaselinesService{client: c}
	c.Proposals = &ProposalsService{client: c}
	c.Deviations = &DeviationsService{client: c}
	return c, nil
}

type successEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
}

type errorEnvelope struct {
	Error struct {
		Code    string          `json:"code"`
		Message string          `json:"message"`
		Details json.RawMessage `json:"details"`
	} `json:"error"`
}

// doRequest performs one API call and unwraps the response envelope
// into out (when out is non-nil)
func (c *Client) doRequest(ctx context.Context, method, path string, body, out interface{}) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return fmt.Errorf("client: encode request: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return fmt.Errorf("client: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.actor != "" {
		req.Header.Set("X-Actor", c.actor)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("client: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var env errorEnvelope
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if err := json.NewDecoder(resp.Body).Decode(&env); err == nil {
			apiErr.Code = env.Error.Code
			apiErr.Message = env.Error.Message
		}
		return apiErr
	}

	if out == nil {
		return nil
	}

	var env successEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("client: decode response: %w", err)
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("client: decode payload: %w", err)
	}
	return nil
}
