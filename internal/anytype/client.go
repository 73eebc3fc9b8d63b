// Copyright (c) 2025 Corvid Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package anytype

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// =============================================================================
// CONSTANTS
// =============================================================================

const (
	// APIVersion is sent on every request as the Anytype-Version header.
	APIVersion = "2025-05-20"

	// DefaultTimeout bounds a single API request.
	DefaultTimeout = 15 * time.Second

	// MaxResponseSize caps response bodies read into memory (10MB).
	MaxResponseSize = 10 * 1024 * 1024
)

// =============================================================================
// ERROR TYPES
// =============================================================================

var (
	// ErrNotConfigured means no endpoint URL is set.
	ErrNotConfigured = errors.New("endpoint is not configured")

	// ErrUnreachable means the endpoint did not answer the probe.
	ErrUnreachable = errors.New("endpoint is unreachable")

	// ErrUnauthorized means the API key was rejected.
	ErrUnauthorized = errors.New("api key rejected")

	// ErrNotFound means the requested object or space does not exist.
	ErrNotFound = errors.New("object not found")
)

// APIError carries a non-2xx response the sentinels do not cover.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api error (status %d)", e.StatusCode)
}

// =============================================================================
// CLIENT
// =============================================================================

// Client talks to an Anytype-style object API over HTTP.
type Client struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a client for the given endpoint. The endpoint may be
// empty; every call then fails with ErrNotConfigured.
func NewClient(endpoint, apiKey string) *Client {
	return &Client{
		endpoint:   strings.TrimRight(endpoint, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
}

// WithHTTPClient overrides the underlying HTTP client (used in tests).
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

// Configured reports whether an endpoint URL is set.
func (c *Client) Configured() bool {
	return c.endpoint != ""
}

// =============================================================================
// REACHABILITY
// =============================================================================

// CheckReachable probes the spaces endpoint. A 200 response counts as
// reachable, and so does a 401: an auth failure still proves a live
// server on the other end.
func (c *Client) CheckReachable(ctx context.Context) error {
	if !c.Configured() {
		return ErrNotConfigured
	}

	resp, err := c.do(ctx, http.MethodGet, "/v1/spaces", nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, MaxResponseSize))

	if resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusUnauthorized {
		return nil
	}
	return fmt.Errorf("%w: unexpected status %d", ErrUnreachable, resp.StatusCode)
}

// =============================================================================
// SPACES
// =============================================================================

// ListSpaces returns all spaces visible to the configured key.
func (c *Client) ListSpaces(ctx context.Context) ([]Space, error) {
	body, err := c.request(ctx, http.MethodGet, "/v1/spaces", nil)
	if err != nil {
		return nil, err
	}

	var env listEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("decode spaces response: %w", err)
	}

	spaces := make([]Space, 0, len(env.entries()))
	for _, raw := range env.entries() {
		var s Space
		if err := json.Unmarshal(raw, &s); err != nil {
			continue
		}
		spaces = append(spaces, s)
	}
	return spaces, nil
}

// =============================================================================
// OBJECT CRUD
// =============================================================================

// ListObjects returns the objects in a space, normalized.
func (c *Client) ListObjects(ctx context.Context, spaceID string) ([]Object, error) {
	path := fmt.Sprintf("/v1/spaces/%s/objects", url.PathEscape(spaceID))
	body, err := c.request(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	return decodeObjectList(body, spaceID)
}

// GetObject fetches a single object by ID, normalized.
func (c *Client) GetObject(ctx context.Context, spaceID, objectID string) (*Object, error) {
	path := fmt.Sprintf("/v1/spaces/%s/objects/%s",
		url.PathEscape(spaceID), url.PathEscape(objectID))
	body, err := c.request(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	return decodeObject(body, spaceID)
}

// CreateObject creates an object and returns the server's copy.
func (c *Client) CreateObject(ctx context.Context, spaceID string, req CreateRequest) (*Object, error) {
	path := fmt.Sprintf("/v1/spaces/%s/objects", url.PathEscape(spaceID))
	body, err := c.request(ctx, http.MethodPost, path, req)
	if err != nil {
		return nil, err
	}
	return decodeObject(body, spaceID)
}

// UpdateObject applies a partial update and returns the updated object.
func (c *Client) UpdateObject(ctx context.Context, spaceID, objectID string, req UpdateRequest) (*Object, error) {
	path := fmt.Sprintf("/v1/spaces/%s/objects/%s",
		url.PathEscape(spaceID), url.PathEscape(objectID))
	body, err := c.request(ctx, http.MethodPut, path, req)
	if err != nil {
		return nil, err
	}
	return decodeObject(body, spaceID)
}

// DeleteObject removes an object.
func (c *Client) DeleteObject(ctx context.Context, spaceID, objectID string) error {
	path := fmt.Sprintf("/v1/spaces/%s/objects/%s",
		url.PathEscape(spaceID), url.PathEscape(objectID))
	_, err := c.request(ctx, http.MethodDelete, path, nil)
	return err
}

// =============================================================================
// SEARCH
// =============================================================================

// SearchObjects runs a full-text search within a space, most recently
// modified first.
func (c *Client) SearchObjects(ctx context.Context, spaceID, query string) ([]Object, error) {
	path := fmt.Sprintf("/v1/spaces/%s/search", url.PathEscape(spaceID))
	req := SearchRequest{
		Query: query,
		Sort:  SearchSort{PropertyKey: "last_modified_date", Direction: "desc"},
	}
	body, err := c.request(ctx, http.MethodPost, path, req)
	if err != nil {
		return nil, err
	}
	return decodeObjectList(body, spaceID)
}

// =============================================================================
// HTTP PLUMBING
// =============================================================================

// request performs a round trip and returns the response body, mapping
// error statuses to sentinels.
func (c *Client) request(ctx context.Context, method, path string, payload any) ([]byte, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	resp, err := c.do(ctx, method, path, payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return body, nil
	}
	return nil, c.statusError(resp.StatusCode, body)
}

func (c *Client) do(ctx context.Context, method, path string, payload any) (*http.Response, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint+path, reqBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Anytype-Version", APIVersion)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	return c.httpClient.Do(req)
}

// statusError maps HTTP error statuses onto the package sentinels,
// extracting the server message when the body carries one.
func (c *Client) statusError(status int, body []byte) error {
	msg := extractErrorMessage(body)

	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		if msg != "" {
			return fmt.Errorf("%w: %s", ErrUnauthorized, msg)
		}
		return ErrUnauthorized
	case http.StatusNotFound, http.StatusGone:
		return ErrNotFound
	default:
		return &APIError{StatusCode: status, Message: msg}
	}
}

func extractErrorMessage(body []byte) string {
	var er apiErrorResponse
	if err := json.Unmarshal(body, &er); err != nil {
		return ""
	}
	if er.Error.Message != "" {
		return er.Error.Message
	}
	return er.Message
}

// =============================================================================
// DECODING
// =============================================================================

func decodeObject(body []byte, spaceID string) (*Object, error) {
	raw := json.RawMessage(body)

	var env singleEnvelope
	if err := json.Unmarshal(body, &env); err == nil && len(env.Object) > 0 {
		raw = env.Object
	}

	var wo wireObject
	if err := json.Unmarshal(raw, &wo); err != nil {
		return nil, fmt.Errorf("decode object: %w", err)
	}
	obj := normalizeObject(&wo)
	if obj.SpaceID == "" {
		obj.SpaceID = spaceID
	}
	return obj, nil
}

func decodeObjectList(body []byte, spaceID string) ([]Object, error) {
	var env listEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("decode object list: %w", err)
	}

	objects := make([]Object, 0, len(env.entries()))
	for _, raw := range env.entries() {
		var wo wireObject
		if err := json.Unmarshal(raw, &wo); err != nil {
			continue
		}
		obj := normalizeObject(&wo)
		if obj.SpaceID == "" {
			obj.SpaceID = spaceID
		}
		objects = append(objects, *obj)
	}
	return objects, nil
}
