package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/flarekv/mcp-cloudflare-kv/internal/kv"
	"github.com/flarekv/mcp-cloudflare-kv/internal/validation"
)

// Dispatch routes one tool call to its adapter. It is the recovery
// boundary for the whole call: an unknown name, schema-invalid arguments
// or a panic anywhere below all come back as error envelopes, never as a
// crash.
func Dispatch(ctx context.Context, client *kv.Client, name string, args map[string]any) (result *mcp.CallToolResult) {
	defer func() {
		if r := recover(); r != nil {
			result = ErrorResponse("Tool call failed: %v", r)
		}
	}()

	desc, ok := lookup(name)
	if !ok {
		return ErrorResponse("Unknown tool: %s", name)
	}

	if err := validation.ValidateArgs(desc.InputSchema, args); err != nil {
		return ErrorResponse("Invalid arguments for %s: %s", name, validation.FormatValidationError(err))
	}

	return desc.handler(ctx, client, args)
}
