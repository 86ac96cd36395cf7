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

type AutomationInvokeMethodArguments struct {
	ObjectId string `zog:"objectId"`
	Name     string `zog:"name"`
}

var automationInvokeMethodArgumentsSchema = z.Struct(z.Shape{
	"objectId": z.String().Required(),
	"name":     z.String().Required(),
})

func AddAutomationInvokeMethodTool(server *server.MCPServer, host *Host) {
	server.AddTool(mcp.NewTool("automation_invoke_method",
		mcp.WithDescription("Call a method of an automation object. Object results are registered and returned as {\"$object\": id}"),
		mcp.WithString("objectId",
			mcp.Required(),
			mcp.Description("Id of the object to call"),
		),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Method name (e.g., \"Open\")"),
		),
		mcp.WithArray("args",
			mcp.Description("Positional arguments. Use {\"$object\": id} to pass another object"),
		),
	), WithRecovery(host.handleInvokeMethod))
}

func (h *Host) handleInvokeMethod(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := AutomationInvokeMethodArguments{}
	if issues := automationInvokeMethodArgumentsSchema.Parse(request.GetArguments(), &args); len(issues) != 0 {
		return imcp.NewToolResultZogIssueMap(issues), nil
	}
	callArgs, err := argumentList(request, "args")
	if err != nil {
		return imcp.NewToolResultInvalidArgumentError(err.Error()), nil
	}

	var value any
	err = h.Do(ctx, func(s *session.Session) error {
		p, err := s.Lookup(args.ObjectId)
		if err != nil {
			return err
		}
		imported, err := s.Import(callArgs)
		if err != nil {
			return err
		}
		v, err := p.Invoke(args.Name, imported.([]any)...)
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
		return nil, fmt.Errorf("failed to invoke %s: %w", args.Name, err)
	}
	return valueResult(value)
}
