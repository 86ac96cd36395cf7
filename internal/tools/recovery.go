package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// WithRecovery converts a panic in handler into an error so one bad call
// cannot take the server down. Panics inside automation calls are already
// recovered on the apartment thread; this covers the handler itself.
func WithRecovery(handler server.ToolHandlerFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (result *mcp.CallToolResult, err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("internal error in %s: %v", request.Params.Name, r)
				result = nil
			}
		}()
		return handler(ctx, request)
	}
}
