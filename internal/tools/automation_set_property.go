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

type AutomationSetPropertyArguments struct {
	ObjectId string `zog:"objectId"`
	Name     string `zog:"name"`
}

var automationSetPropertyArgumentsSchema = z.Struct(z.Shape{
	"objectId": z.String().Required(),
	"name":     z.String().Required(),
})

func AddAutomationSetPropertyTool(server *server.MCPServer, host *Host) {
	server.AddTool(mcp.NewTool("automation_set_property",
		mcp.WithDescription("Assign a property of an automation object"),
		mcp.WithString("objectId",
			mcp.Required(),
			mcp.Description("Id of the object to modify"),
		),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Property name (e.g., \"Visible\")"),
		),
		withValue("value",
			mcp.Required(),
			mcp.Description("New value. Use {\"$object\": id} to pass another object"),
		),
	), WithRecovery(host.handleSetProperty))
}

func (h *Host) handleSetProperty(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := AutomationSetPropertyArguments{}
	if issues := automationSetPropertyArgumentsSchema.Parse(request.GetArguments(), &args); len(issues) != 0 {
		return imcp.NewToolResultZogIssueMap(issues), nil
	}
	raw, ok := request.GetArguments()["value"]
	if !ok {
		return imcp.NewToolResultInvalidArgumentError("value is required"), nil
	}

	err := h.Do(ctx, func(s *session.Session) error {
		p, err := s.Lookup(args.ObjectId)
		if err != nil {
			return err
		}
		value, err := s.Import(raw)
		if err != nil {
			return err
		}
		return p.Set(args.Name, value)
	})
	if errors.Is(err, session.ErrNotFound) {
		return imcp.NewToolResultInvalidArgumentError(err.Error()), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to set property %s: %w", args.Name, err)
	}

	result := "# Notice\n"
	result += fmt.Sprintf("Property %s has been set.\n", args.Name)
	return mcp.NewToolResultText(result), nil
}
