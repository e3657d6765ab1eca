// Package client talks to the travel agent API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"travelagent/internal/types"
)

// DefaultTimeout bounds a single request when no HTTP client is supplied.
const DefaultTimeout = 60 * time.Second

// ErrUnexpectedStatus is wrapped by every *StatusError.
var ErrUnexpectedStatus = errors.New("unexpected status")

// StatusError reports a non-2xx response.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	// Message is the "error" field of the body, if the server sent one.
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s: %d: %s", e.Method, e.Path, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s %s: %d", e.Method, e.Path, e.StatusCode)
}

func (e *StatusError) Unwrap() error { return ErrUnexpectedStatus }

type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http = &http.Client{Timeout: d}
		}
	}
}

type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) SuggestByLocation(ctx context.Context, location string, prefs []string) ([]types.Destination, error) {
	if prefs == nil {
		prefs = []string{}
	}
	body, err := json.Marshal(types.LocationRequest{Location: location, Preferences: prefs})
	if err != nil {
		return nil, err
	}
	resp, err := do[types.SuggestionResponse](ctx, c, "/api/suggest-by-location", "application/json", body)
	if err != nil {
		return nil, err
	}
	return resp.Destinations, nil
}

// SuggestByImage uploads data as the "file" part; prefs are sent comma-joined.
func (c *Client) SuggestByImage(ctx context.Context, filename string, data []byte, prefs []string) ([]types.Destination, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, err
	}
	if _, err := fw.Write(data); err != nil {
		return nil, err
	}
	if err := mw.WriteField("preferences", strings.Join(prefs, ",")); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	resp, err := do[types.SuggestionResponse](ctx, c, "/api/suggest-by-image", mw.FormDataContentType(), buf.Bytes())
	if err != nil {
		return nil, err
	}
	return resp.Destinations, nil
}

func (c *Client) Weather(ctx context.Context, destination string) (types.WeatherResult, error) {
	body, err := json.Marshal(types.WeatherRequest{Destination: destination})
	if err != nil {
		return types.WeatherResult{}, err
	}
	return do[types.WeatherResult](ctx, c, "/api/weather", "application/json", body)
}

// do POSTs body to path and decodes a 2xx JSON response into Response.
func do[Response any](ctx context.Context, c *Client, path, contentType string, body []byte) (Response, error) {
	var resp Response

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return resp, err
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return resp, fmt.Errorf("POST %s: %w", path, err)
	}
	defer res.Body.Close()

	b, err := io.ReadAll(res.Body)
	if err != nil {
		return resp, fmt.Errorf("POST %s: read body: %w", path, err)
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		se := &StatusError{Method: http.MethodPost, Path: path, StatusCode: res.StatusCode}
		var e struct {
			Error  string `json:"error"`
			Detail string `json:"detail"`
		}
		if json.Unmarshal(b, &e) == nil {
			se.Message = e.Error
			if se.Message == "" {
				se.Message = e.Detail
			}
		}
		return resp, se
	}

	if err := json.Unmarshal(b, &resp); err != nil {
		return resp, fmt.Errorf("POST %s: decode: %w", path, err)
	}
	return resp, nil
}
