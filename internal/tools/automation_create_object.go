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

type AutomationCreateObjectArguments struct {
	ProgId string `zog:"progId"`
	Attach bool   `zog:"attach"`
}

var automationCreateObjectArgumentsSchema = z.Struct(z.Shape{
	"progId": z.String().Required(),
	"attach": z.Bool().Default(false),
})

func AddAutomationCreateObjectTool(server *server.MCPServer, host *Host) {
	server.AddTool(mcp.NewTool("automation_create_object",
		mcp.WithDescription("Create an automation object from a program identifier such as Word.Application and return its object id"),
		mcp.WithString("progId",
			mcp.Required(),
			mcp.Description("Program identifier of the automation server (e.g., \"Excel.Application\")"),
		),
		mcp.WithBoolean("attach",
			mcp.Description("Attach to an already running instance when one exists"),
		),
	), WithRecovery(host.handleCreateObject))
}

func (h *Host) handleCreateObject(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := AutomationCreateObjectArguments{}
	if issues := automationCreateObjectArgumentsSchema.Parse(request.GetArguments(), &args); len(issues) != 0 {
		return imcp.NewToolResultZogIssueMap(issues), nil
	}

	var id, typeName string
	err := h.Do(ctx, func(s *session.Session) error {
		var err error
		if id, err = s.Create(args.ProgId, args.Attach); err != nil {
			return err
		}
		p, err := s.Lookup(id)
		if err != nil {
			return err
		}
		typeName = p.Descriptor().Name()
		return nil
	})
	if errors.Is(err, session.ErrNotAllowed) {
		return imcp.NewToolResultInvalidArgumentError(err.Error()), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create object: %w", err)
	}

	result := "# Notice\n"
	result += fmt.Sprintf("Created %s.\n", typeName)
	block, err := jsonBlock(map[string]any{session.ObjectKey: id, "type": typeName})
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(result + block), nil
}
