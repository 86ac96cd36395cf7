package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/negokaz/comobject-mcp-server/internal/session"
	"gopkg.in/yaml.v3"
)

func AddAutomationListObjectsTool(server *server.MCPServer, host *Host) {
	server.AddTool(mcp.NewTool("automation_list_objects",
		mcp.WithDescription("List the live automation objects with their type, parent and number of owned objects"),
	), WithRecovery(host.handleListObjects))
}

func (h *Host) handleListObjects(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var objects []session.ObjectInfo
	err := h.Do(ctx, func(s *session.Session) error {
		objects = s.List()
		return nil
	})
	if err != nil {
		return nil, err
	}

	data, err := yaml.Marshal(objects)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal object list: %w", err)
	}

	result := "# Live Objects\n"
	result += fmt.Sprintf("Found %d object(s):\n\n", len(objects))
	if len(objects) > 0 {
		result += "```yaml\n"
		result += string(data)
		result += "```\n"
	}
	return mcp.NewToolResultText(result), nil
}
