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

type AutomationGetIndexArguments struct {
	ObjectId string `zog:"objectId"`
}

var automationGetIndexArgumentsSchema = z.Struct(z.Shape{
	"objectId": z.String().Required(),
})

func AddAutomationGetIndexTool(server *server.MCPServer, host *Host) {
	server.AddTool(mcp.NewTool("automation_get_index",
		mcp.WithDescription("Read an element of an automation collection through its default member, e.g. Documents(1)"),
		mcp.WithString("objectId",
			mcp.Required(),
			mcp.Description("Id of the collection object"),
		),
		mcp.WithArray("indexes",
			mcp.Required(),
			mcp.Description("Index arguments (e.g., [1] or [\"Sheet1\"])"),
		),
	), WithRecovery(host.handleGetIndex))
}

func (h *Host) handleGetIndex(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := AutomationGetIndexArguments{}
	if issues := automationGetIndexArgumentsSchema.Parse(request.GetArguments(), &args); len(issues) != 0 {
		return imcp.NewToolResultZogIssueMap(issues), nil
	}
	indexes, err := argumentList(request, "indexes")
	if err != nil {
		return imcp.NewToolResultInvalidArgumentError(err.Error()), nil
	}
	if len(indexes) == 0 {
		return imcp.NewToolResultInvalidArgumentError("indexes must not be empty"), nil
	}

	var value any
	err = h.Do(ctx, func(s *session.Session) error {
		p, err := s.Lookup(args.ObjectId)
		if err != nil {
			return err
		}
		imported, err := s.Import(indexes)
		if err != nil {
			return err
		}
		v, err := p.Index(imported.([]any)...)
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
		return nil, fmt.Errorf("failed to get index: %w", err)
	}
	return valueResult(value)
}

// argumentList reads an optional array argument.
func argumentList(request mcp.CallToolRequest, name string) ([]any, error) {
	raw, ok := request.GetArguments()[name]
	if !ok || raw == nil {
		return []any{}, nil
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%s must be an array", name)
	}
	return list, nil
}
