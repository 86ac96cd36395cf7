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

type AutomationGetPropertyArguments struct {
	ObjectId string `zog:"objectId"`
	Name     string `zog:"name"`
}

var automationGetPropertyArgumentsSchema = z.Struct(z.Shape{
	"objectId": z.String().Required(),
	"name":     z.String().Required(),
})

func AddAutomationGetPropertyTool(server *server.MCPServer, host *Host) {
	server.AddTool(mcp.NewTool("automation_get_property",
		mcp.WithDescription("Read a property of an automation object. Object results are registered and returned as {\"$object\": id}"),
		mcp.WithString("objectId",
			mcp.Required(),
			mcp.Description("Id of the object to read from"),
		),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Property name (e.g., \"Documents\")"),
		),
	), WithRecovery(host.handleGetProperty))
}

func (h *Host) handleGetProperty(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := AutomationGetPropertyArguments{}
	if issues := automationGetPropertyArgumentsSchema.Parse(request.GetArguments(), &args); len(issues) != 0 {
		return imcp.NewToolResultZogIssueMap(issues), nil
	}

	var value any
	err := h.Do(ctx, func(s *session.Session) error {
		p, err := s.Lookup(args.ObjectId)
		if err != nil {
			return err
		}
		v, err := p.Get(args.Name)
		if err != nil {
			return err
		}
		value = s.Export(args.ObjectId, v)
		return nil
	})
	if errors.Is(err, session.ErrNotFound) {
		return imcp.NewToolResultInvalidArgumentError(err.Error()), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get property %s: %w", args.Name, err)
	}
	return valueResult(value)
}

func valueResult(value any) (*mcp.CallToolResult, error) {
	block, err := jsonBlock(value)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText("# Result\n" + block), nil
}
