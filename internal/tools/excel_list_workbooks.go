package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/negokaz/comobject-mcp-server/internal/office"
	"github.com/negokaz/comobject-mcp-server/internal/session"
)

func AddExcelListWorkbooksTool(server *server.MCPServer, host *Host) {
	server.AddTool(mcp.NewTool("excel_list_workbooks",
		mcp.WithDescription("List all workbooks currently open in Excel (Windows only)"),
	), WithRecovery(host.handleListWorkbooks))
}

func (h *Host) handleListWorkbooks(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var workbooks []office.WorkbookInfo
	err := h.Do(ctx, func(s *session.Session) error {
		return h.withExcel(s, func(e *office.Excel) error {
			var err error
			workbooks, err = e.ListWorkbooks()
			return err
		})
	})
	if err != nil {
		return nil, err
	}

	jsonData, err := json.MarshalIndent(workbooks, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal workbook list: %w", err)
	}

	result := "# Open Workbooks\n"
	result += fmt.Sprintf("Found %d open workbook(s):\n\n", len(workbooks))
	result += "```json\n"
	result += string(jsonData) + "\n"
	result += "```\n"
	return mcp.NewToolResultText(result), nil
}
