package tools

import (
	"context"
	"fmt"

	z "github.com/Oudwins/zog"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	imcp "github.com/negokaz/comobject-mcp-server/internal/mcp"
	"github.com/negokaz/comobject-mcp-server/internal/office"
	"github.com/negokaz/comobject-mcp-server/internal/session"
)

type ExcelOpenWorkbookArguments struct {
	FileAbsolutePath string `zog:"fileAbsolutePath"`
}

var excelOpenWorkbookArgumentsSchema = z.Struct(z.Shape{
	"fileAbsolutePath": z.String().Test(AbsolutePathTest()).Required(),
})

func AddExcelOpenWorkbookTool(server *server.MCPServer, host *Host) {
	server.AddTool(mcp.NewTool("excel_open_workbook",
		mcp.WithDescription("Open a workbook file in Excel application (Windows only)"),
		mcp.WithString("fileAbsolutePath",
			mcp.Required(),
			mcp.Description("Absolute path to the Excel file to open"),
		),
	), WithRecovery(host.handleOpenWorkbook))
}

func (h *Host) handleOpenWorkbook(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := ExcelOpenWorkbookArguments{}
	if issues := excelOpenWorkbookArgumentsSchema.Parse(request.GetArguments(), &args); len(issues) != 0 {
		return imcp.NewToolResultZogIssueMap(issues), nil
	}

	var name string
	err := h.Do(ctx, func(s *session.Session) error {
		return h.withExcel(s, func(e *office.Excel) error {
			wb, err := e.OpenWorkbook(args.FileAbsolutePath)
			if err != nil {
				return err
			}
			v, err := wb.Get("Name")
			if err != nil {
				return err
			}
			name = fmt.Sprintf("%v", v)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	result := "# Notice\n"
	result += fmt.Sprintf("Workbook '%s' is open in Excel: %s\n", name, args.FileAbsolutePath)
	return mcp.NewToolResultText(result), nil
}
