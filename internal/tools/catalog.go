// Package tools defines the four KV tools exposed over MCP and the
// dispatch step that routes an inbound call to its HTTP adapter.
package tools

import (
	"context"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/flarekv/mcp-cloudflare-kv/internal/kv"
)

// handlerFunc adapts one tool call into one Cloudflare KV API request.
// Handlers never return Go errors; every outcome becomes an envelope.
type handlerFunc func(ctx context.Context, client *kv.Client, args map[string]any) *mcp.CallToolResult

// Descriptor declares one invocable tool: its name, human description,
// input schema and adapter.
type Descriptor struct {
	Name        string
	Description string
	InputSchema *jsonschema.Schema
	handler     handlerFunc
}

// catalog is the fixed, ordered tool set. Discovery responses present the
// tools in this order.
var catalog = []*Descriptor{
	{
		Name:        "kv_get",
		Description: "Get a value from Cloudflare KV storage",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"key": {Type: "string", Description: "The key to retrieve"},
			},
			Required: []string{"key"},
		},
		handler: handleGet,
	},
	{
		Name:        "kv_put",
		Description: "Store a value in Cloudflare KV storage",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"key":           {Type: "string", Description: "The key to store the value under"},
				"value":         {Type: "string", Description: "The value to store"},
				"expirationTtl": {Type: "number", Description: "Optional time-to-live in seconds"},
			},
			Required: []string{"key", "value"},
		},
		handler: handlePut,
	},
	{
		Name:        "kv_delete",
		Description: "Delete a key from Cloudflare KV storage",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"key": {Type: "string", Description: "The key to delete"},
			},
			Required: []string{"key"},
		},
		handler: handleDelete,
	},
	{
		Name:        "kv_list",
		Description: "List keys in the Cloudflare KV namespace",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"prefix": {Type: "string", Description: "Only list keys beginning with this prefix"},
				"limit":  {Type: "number", Description: "Maximum number of keys to return"},
			},
		},
		handler: handleList,
	},
}

// Catalog returns the static tool descriptors in registration order.
func Catalog() []*Descriptor {
	return catalog
}

// lookup finds a descriptor by tool name.
func lookup(name string) (*Descriptor, bool) {
	for _, d := range catalog {
		if d.Name == name {
			return d, true
		}
	}
	return nil, false
}
