package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/flarekv/mcp-cloudflare-kv/internal/config"
	"github.com/flarekv/mcp-cloudflare-kv/internal/kv"
	"github.com/flarekv/mcp-cloudflare-kv/internal/telemetry"
	"github.com/flarekv/mcp-cloudflare-kv/internal/tools"
)

const serverVersion = "1.0.0"

func main() {
	// A .env file is optional; the real environment always wins.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}

	config.SetupLogging(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tracerShutdown, err := telemetry.InitTracer(ctx)
	if err != nil {
		slog.Error("failed to initialize tracer", "error", err)
		os.Exit(1)
	}

	meters, err := telemetry.NewMeters()
	if err != nil {
		slog.Warn("failed to create OTel meters, metrics will be unavailable", "error", err)
	}

	client := kv.NewClient(cfg)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "mcp-cloudflare-kv",
		Version: serverVersion,
	}, nil)

	tools.Register(server, client, meters)

	slog.Info("Cloudflare KV MCP server running on stdio",
		"account", cfg.AccountID, "namespace", cfg.NamespaceID)

	runErr := server.Run(ctx, &mcp.StdioTransport{})

	// Flush pending spans before exit.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := tracerShutdown(shutdownCtx); err != nil {
		slog.Error("tracer shutdown error", "error", err)
	}

	if runErr != nil && ctx.Err() == nil {
		slog.Error("server failed", "error", runErr)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
