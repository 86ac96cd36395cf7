package tools

import (
	"context"
	"errors"
	"fmt"

	z "github.com/Oudwins/zog"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	imcp "github.com/negokaz/comobject-mcp-server/internal/mcp"
	"github.com/negokaz/comobject-mcp-server/internal/session"
)

type AutomationReleaseObjectArguments struct {
	ObjectId string `zog:"objectId"`
}

var automationReleaseObjectArgumentsSchema = z.Struct(z.Shape{
	"objectId": z.String().Required(),
})

func AddAutomationReleaseObjectTool(server *server.MCPServer, host *Host) {
	server.AddTool(mcp.NewTool("automation_release_object",
		mcp.WithDescription("Release an automation object and every object obtained through it"),
		mcp.WithString("objectId",
			mcp.Required(),
			mcp.Description("Id of the object to release"),
		),
	), WithRecovery(host.handleReleaseObject))
}

func (h *Host) handleReleaseObject(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := AutomationReleaseObjectArguments{}
	if issues := automationReleaseObjectArgumentsSchema.Parse(request.GetArguments(), &args); len(issues) != 0 {
		return imcp.NewToolResultZogIssueMap(issues), nil
	}

	var remaining int
	err := h.Do(ctx, func(s *session.Session) error {
		err := s.Release(args.ObjectId)
		remaining = len(s.List())
		return err
	})
	if errors.Is(err, session.ErrNotFound) {
		return imcp.NewToolResultInvalidArgumentError(err.Error()), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to release object: %w", err)
	}

	result := "# Notice\n"
	result += fmt.Sprintf("Object %s has been released. %d object(s) remain.\n", args.ObjectId, remaining)
	return mcp.NewToolResultText(result), nil
}
