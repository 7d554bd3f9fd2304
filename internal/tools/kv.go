package tools

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/flarekv/mcp-cloudflare-kv/internal/kv"
)

func handleGet(ctx context.Context, client *kv.Client, args map[string]any) *mcp.CallToolResult {
	key := stringArg(args, "key")

	value, err := client.Get(ctx, key)
	if err != nil {
		return ErrorResponse("Failed to get value: %v", err)
	}
	return SuccessResponse("%s", value)
}

func handlePut(ctx context.Context, client *kv.Client, args map[string]any) *mcp.CallToolResult {
	key := stringArg(args, "key")
	value := stringArg(args, "value")
	ttl := intArg(args, "expirationTtl")

	if err := client.Put(ctx, key, value, ttl); err != nil {
		return ErrorResponse("Failed to store value: %v", err)
	}
	return SuccessResponse("Successfully stored value for key: %s", key)
}

func handleDelete(ctx context.Context, client *kv.Client, args map[string]any) *mcp.CallToolResult {
	key := stringArg(args, "key")

	if err := client.Delete(ctx, key); err != nil {
		return ErrorResponse("Failed to delete key: %v", err)
	}
	return SuccessResponse("Successfully deleted key: %s", key)
}

func handleList(ctx context.Context, client *kv.Client, args map[string]any) *mcp.CallToolResult {
	prefix := stringArg(args, "prefix")
	limit := intArg(args, "limit")

	names, err := client.List(ctx, prefix, limit)
	if err != nil {
		return ErrorResponse("Failed to list keys: %v", err)
	}

	if names == nil {
		names = []string{}
	}
	pretty, err := json.MarshalIndent(names, "", "  ")
	if err != nil {
		return ErrorResponse("Failed to list keys: %v", err)
	}
	return SuccessResponse("%s", pretty)
}

// stringArg reads an optional string argument, returning "" when absent.
// Required strings are guaranteed present by schema validation upstream.
func stringArg(args map[string]any, key string) string {
	if v, ok := args[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// intArg reads an optional numeric argument. JSON numbers arrive as
// float64; zero means the argument was absent.
func intArg(args map[string]any, key string) int {
	if v, ok := args[key]; ok {
		switch n := v.(type) {
		case float64:
			return int(n)
		case int:
			return n
		}
	}
	return 0
}
