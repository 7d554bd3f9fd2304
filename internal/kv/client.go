// Package kv is a minimal client for the Cloudflare Workers KV REST API.
// Each method performs exactly one HTTP round trip against
// /accounts/{account}/storage/kv/namespaces/{namespace}; there is no
// caching, batching or retry layer on top.
package kv

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/flarekv/mcp-cloudflare-kv/internal/config"
)

// Client issues authenticated requests against one KV namespace.
// It is safe for concurrent use; all fields are read-only after NewClient.
type Client struct {
	baseURL     string
	accountID   string
	namespaceID string
	token       string
	httpClient  *http.Client
}

// NewClient builds a Client from the resolved configuration. The underlying
// transport is instrumented with otelhttp so outbound calls show up as
// client spans when tracing is enabled.
func NewClient(cfg *config.Config) *Client {
	return &Client{
		baseURL:     cfg.APIBaseURL,
		accountID:   cfg.AccountID,
		namespaceID: cfg.NamespaceID,
		token:       cfg.APIToken,
		httpClient: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   cfg.HTTPTimeout,
		},
	}
}

// namespaceURL returns the API root for this namespace.
func (c *Client) namespaceURL() string {
	return fmt.Sprintf("%s/accounts/%s/storage/kv/namespaces/%s", c.baseURL, c.accountID, c.namespaceID)
}

func (c *Client) valueURL(key string) string {
	return c.namespaceURL() + "/values/" + url.PathEscape(key)
}

// Get retrieves the value stored under key. The response body is the raw
// value, returned verbatim.
func (c *Client) Get(ctx context.Context, key string) (string, error) {
	resp, err := c.do(ctx, http.MethodGet, c.valueURL(key), "", "")
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return "", err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading value body: %w", err)
	}
	return string(body), nil
}

// Put stores value under key. A ttl greater than zero is forwarded as the
// expiration_ttl query parameter, making the key expire after that many
// seconds.
func (c *Client) Put(ctx context.Context, key, value string, ttl int) error {
	u := c.valueURL(key)
	if ttl > 0 {
		u += "?expiration_ttl=" + strconv.Itoa(ttl)
	}

	resp, err := c.do(ctx, http.MethodPut, u, value, "text/plain")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return checkStatus(resp)
}

// Delete removes the key from the namespace.
func (c *Client) Delete(ctx context.Context, key string) error {
	resp, err := c.do(ctx, http.MethodDelete, c.valueURL(key), "", "")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return checkStatus(resp)
}

// List returns the names of keys in the namespace. prefix and limit are
// sent only when set; with neither present the request carries no query
// string at all. A success=false envelope on a 2xx response surfaces as
// an *APIError joining the provider's error messages.
func (c *Client) List(ctx context.Context, prefix string, limit int) ([]string, error) {
	u := c.namespaceURL() + "/keys"
	q := url.Values{}
	if prefix != "" {
		q.Set("prefix", prefix)
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	resp, err := c.do(ctx, http.MethodGet, u, "", "")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var envelope struct {
		Success bool `json:"success"`
		Result  []struct {
			Name       string `json:"name"`
			Expiration int64  `json:"expiration,omitempty"`
		} `json:"result"`
		Errors []apiMessage `json:"errors"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("parsing list response: %w", err)
	}

	if !envelope.Success {
		messages := make([]string, 0, len(envelope.Errors))
		for _, m := range envelope.Errors {
			messages = append(messages, m.String())
		}
		return nil, &APIError{Messages: messages}
	}

	names := make([]string, 0, len(envelope.Result))
	for _, r := range envelope.Result {
		names = append(names, r.Name)
	}
	return names, nil
}

// do builds and sends one request with the bearer token attached.
func (c *Client) do(ctx context.Context, method, u, body, contentType string) (*http.Response, error) {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, fmt.Errorf("building %s request: %w", method, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling Cloudflare API: %w", err)
	}
	return resp, nil
}

// checkStatus converts a non-2xx response into a *StatusError carrying the
// provider's status text.
func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	return &StatusError{
		StatusCode: resp.StatusCode,
		Status:     statusText(resp),
	}
}

// statusText strips the numeric code from resp.Status, leaving the reason
// phrase ("404 Not Found" -> "Not Found").
func statusText(resp *http.Response) string {
	text := strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode))
	text = strings.TrimSpace(text)
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	if text == "" {
		text = resp.Status
	}
	return text
}
