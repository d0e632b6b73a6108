package mcp

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/mvp-joe/srcnav/internal/navigator"
)

// parseToolArguments validates and extracts the arguments map from an MCP tool request.
// Returns the arguments map or an error result if validation fails.
func parseToolArguments(request mcp.CallToolRequest) (map[string]interface{}, *mcp.CallToolResult) {
	if request.Params.Arguments == nil {
		return map[string]interface{}{}, nil
	}
	argsMap, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, mcp.NewToolResultError("invalid arguments format")
	}
	return argsMap, nil
}

// toolError converts a navigation error into a tool error result. Errors
// carrying recovery data (suggestions, known names) are rendered with it.
func toolError(action string, err error) *mcp.CallToolResult {
	var componentErr *navigator.ComponentNotFoundError
	var functionErr *navigator.FunctionNotFoundError
	if errors.As(err, &componentErr) || errors.As(err, &functionErr) {
		return mcp.NewToolResultError(navigator.ErrorText(err))
	}
	return mcp.NewToolResultError(action + ": " + err.Error())
}

// resultText returns the first text content of a result.
func resultText(result *mcp.CallToolResult) string {
	if result == nil {
		return ""
	}
	for _, c := range result.Content {
		if text, ok := mcp.AsTextContent(c); ok {
			return text.Text
		}
	}
	return ""
}

// withObservability logs every tool call with a request id and records it in metrics.
func withObservability(logger *slog.Logger, metrics *ToolMetrics) server.ToolHandlerMiddleware {
	return func(next server.ToolHandlerFunc) server.ToolHandlerFunc {
		return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			tool := request.Params.Name
			requestID := uuid.NewString()
			log := logger.With("tool", tool, "request_id", requestID)
			log.Debug("tool call started", "arguments", request.Params.Arguments)

			start := time.Now()
			result, err := next(ctx, request)
			elapsed := time.Since(start)

			failure := ""
			switch {
			case err != nil:
				failure = err.Error()
			case result != nil && result.IsError:
				failure = resultText(result)
			}
			metrics.RecordCall(tool, elapsed, failure)

			if failure != "" {
				log.Warn("tool call failed", "duration", elapsed, "error", failure)
			} else {
				log.Info("tool call completed", "duration", elapsed)
			}
			return result, err
		}
	}
}
