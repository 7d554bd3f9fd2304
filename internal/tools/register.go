package tools

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/flarekv/mcp-cloudflare-kv/internal/kv"
	"github.com/flarekv/mcp-cloudflare-kv/internal/telemetry"
)

// Register adds every catalog tool to the MCP server. Each registered
// handler decodes the raw arguments, funnels through Dispatch and wraps
// the call in an OTel span plus request metrics.
func Register(server *mcp.Server, client *kv.Client, meters *telemetry.Meters) {
	tracer := otel.Tracer("mcp-cloudflare-kv")

	for _, d := range Catalog() {
		desc := d
		server.AddTool(&mcp.Tool{
			Name:        desc.Name,
			Description: desc.Description,
			InputSchema: desc.InputSchema,
		}, func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			ctx, span := tracer.Start(ctx, "execute_tool "+desc.Name,
				trace.WithSpanKind(trace.SpanKindServer),
			)
			defer span.End()
			span.SetAttributes(
				attribute.String("gen_ai.operation.name", "execute_tool"),
				attribute.String("gen_ai.tool.name", desc.Name),
			)

			var args map[string]any
			if req.Params.Arguments != nil {
				if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
					result := ErrorResponse("Failed to parse arguments: %v", err)
					span.SetStatus(codes.Error, "unparseable arguments")
					recordMetrics(ctx, meters, desc.Name, true, 0)
					return result, nil
				}
			}

			start := time.Now()
			result := Dispatch(ctx, client, desc.Name, args)
			duration := time.Since(start).Seconds()

			recordMetrics(ctx, meters, desc.Name, result.IsError, duration)
			if result.IsError {
				span.SetStatus(codes.Error, envelopeText(result))
			} else {
				span.SetStatus(codes.Ok, "")
			}
			slog.Debug("tool call completed",
				"tool", desc.Name, "is_error", result.IsError, "duration_s", duration)

			return result, nil
		})
	}

	slog.Info("registered KV tools", "count", len(Catalog()))
}

func recordMetrics(ctx context.Context, meters *telemetry.Meters, toolName string, isError bool, duration float64) {
	if meters == nil {
		return
	}
	attrs := []attribute.KeyValue{
		attribute.String("gen_ai.tool.name", toolName),
	}
	meters.RequestDuration.Record(ctx, duration, telemetry.WithAttrs(attrs...))
	meters.RequestCount.Add(ctx, 1, telemetry.WithAttrs(attrs...))
	if isError {
		meters.ErrorsTotal.Add(ctx, 1, telemetry.WithAttrs(attrs...))
	}
}

// envelopeText returns the text line of an envelope, or "" when it holds
// no text content.
func envelopeText(result *mcp.CallToolResult) string {
	if result == nil || len(result.Content) == 0 {
		return ""
	}
	if text, ok := result.Content[0].(*mcp.TextContent); ok {
		return text.Text
	}
	return ""
}
