// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package verses fetches verse text from the configured lookup API.
package verses

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"verse-notes/internal/config"
	"verse-notes/internal/logger"
)

const (
	userAgent      = "verse-notes/1.0"
	defaultTimeout = 30 * time.Second
	missingRef     = "No Reference"
	missingText    = "No Text"
)

// Verse is one verse as returned by the lookup API.
type Verse struct {
	Ref  string
	Text string
}

// Client queries the verse lookup API.
type Client struct {
	httpClient *http.Client
	api        config.API
}

// NewClient creates a client for the given API settings.
func NewClient(api config.API) *Client {
	timeout := api.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		api:        api,
	}
}

// Lookup fetches the verses matching query. Any JSON response without a
// "verses" list, including non-object bodies, yields an empty slice and a
// nil error.
func (c *Client) Lookup(ctx context.Context, query string) ([]Verse, error) {
	endpoint, err := url.Parse(c.api.URL)
	if err != nil {
		return nil, &NetworkError{Err: fmt.Errorf("invalid api url: %w", err)}
	}

	params := endpoint.Query()
	params.Set("String", query)
	params.Set("file", c.api.File)
	params.Set("Out", "json")
	params.Set("Lang", "eng")
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, &NetworkError{Err: fmt.Errorf("creating request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", c.api.Key)
	req.Header.Set("User-Agent", userAgent)

	logger.Debug("Looking up verses", "query", query)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logger.Warn("Verse API returned an error status", "query", query, "status", resp.Status)
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Err: fmt.Errorf("reading response: %w", err)}
	}

	var decoded any
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Status: resp.Status, Err: err}
	}
	payload, _ := decoded.(map[string]any)
	items, _ := payload["verses"].([]any)

	out := make([]Verse, 0, len(items))
	for _, item := range items {
		fields, _ := item.(map[string]any)
		out = append(out, Verse{
			Ref:  stringField(fields, "ref", missingRef),
			Text: strings.TrimSpace(stringField(fields, "text", missingText)),
		})
	}
	logger.Debug("Verse lookup finished", "query", query, "results", len(out))
	return out, nil
}

// stringField returns fields[name] as text, or fallback when it is absent or null.
func stringField(fields map[string]any, name, fallback string) string {
	switch v := fields[name].(type) {
	case nil:
		return fallback
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

// NetworkError reports a transport failure reaching the lookup API.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Timeout reports whether the failure was a deadline or client timeout.
func (e *NetworkError) Timeout() bool {
	if errors.Is(e.Err, context.DeadlineExceeded) {
		return true
	}
	var t interface{ Timeout() bool }
	return errors.As(e.Err, &t) && t.Timeout()
}

// UpstreamError reports a non-2xx response or a body that could not be decoded.
type UpstreamError struct {
	StatusCode int
	Status     string
	// Err is set when the body could not be decoded.
	Err error
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("could not parse response: %v", e.Err)
	}
	return fmt.Sprintf("HTTP error: %s", e.Status)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// Undecodable reports whether the response body was not valid JSON.
func (e *UpstreamError) Undecodable() bool {
	return e.Err != nil
}
