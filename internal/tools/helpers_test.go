package tools

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/flarekv/mcp-cloudflare-kv/internal/config"
	"github.com/flarekv/mcp-cloudflare-kv/internal/kv"
)

// providerCall records what the fake Cloudflare API saw.
type providerCall struct {
	count  int
	method string
	path   string
	query  string
}

// newTestClient starts a fake provider and returns a KV client wired to it.
func newTestClient(t *testing.T, handler http.HandlerFunc) (*kv.Client, *providerCall) {
	t.Helper()

	call := &providerCall{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		call.count++
		call.method = r.Method
		call.path = r.URL.EscapedPath()
		call.query = r.URL.RawQuery
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	cfg := &config.Config{
		AccountID:   "acct",
		APIToken:    "token",
		NamespaceID: "ns",
		APIBaseURL:  srv.URL,
		HTTPTimeout: 5 * time.Second,
	}
	return kv.NewClient(cfg), call
}

// envelopeTextOf extracts the single text line from an envelope.
func envelopeTextOf(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()

	if result == nil {
		t.Fatal("envelope is nil")
	}
	if len(result.Content) != 1 {
		t.Fatalf("envelope has %d content items, want 1", len(result.Content))
	}
	text, ok := result.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatalf("content type = %T, want *mcp.TextContent", result.Content[0])
	}
	return text.Text
}

// verifySuccess asserts a non-error envelope with the exact text.
func verifySuccess(t *testing.T, result *mcp.CallToolResult, wantText string) {
	t.Helper()

	if result.IsError {
		t.Errorf("IsError = true, want success envelope (text: %s)", envelopeTextOf(t, result))
	}
	if got := envelopeTextOf(t, result); got != wantText {
		t.Errorf("text = %q, want %q", got, wantText)
	}
}
