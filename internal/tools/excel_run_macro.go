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

type ExcelRunMacroArguments struct {
	FileAbsolutePath string   `zog:"fileAbsolutePath"`
	MacroName        string   `zog:"macroName"`
	Args             []string `zog:"args"`
}

var excelRunMacroArgumentsSchema = z.Struct(z.Shape{
	"fileAbsolutePath": z.String().Test(AbsolutePathTest()).Required(),
	"macroName":        z.String().Required(),
	"args":             z.Slice(z.String()),
})

func AddExcelRunMacroTool(server *server.MCPServer, host *Host) {
	server.AddTool(mcp.NewTool("excel_run_macro",
		mcp.WithDescription("Run a VBA macro in an Excel workbook (Windows only)"),
		mcp.WithString("fileAbsolutePath",
			mcp.Required(),
			mcp.Description("Absolute path to the Excel file containing the macro"),
		),
		mcp.WithString("macroName",
			mcp.Required(),
			mcp.Description("Name of the macro to run (e.g., \"Sheet1.MyMacro\")"),
		),
		mcp.WithArray("args",
			mcp.Description("Arguments to pass to the macro (up to 10 string arguments)"),
			mcp.Items(map[string]any{
				"type": "string",
			}),
		),
	), WithRecovery(host.handleRunMacro))
}

func (h *Host) handleRunMacro(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := ExcelRunMacroArguments{}
	if issues := excelRunMacroArgumentsSchema.Parse(request.GetArguments(), &args); len(issues) != 0 {
		return imcp.NewToolResultZogIssueMap(issues), nil
	}
	if len(args.Args) > 10 {
		return imcp.NewToolResultInvalidArgumentError("macro supports at most 10 arguments"), nil
	}

	var macroResult string
	err := h.Do(ctx, func(s *session.Session) error {
		return h.withExcel(s, func(e *office.Excel) error {
			if _, err := e.OpenWorkbook(args.FileAbsolutePath); err != nil {
				return err
			}
			var err error
			macroResult, err = e.RunMacro(args.MacroName, args.Args)
			return err
		})
	})
	if err != nil {
		return nil, err
	}

	result := "# Notice\n"
	result += fmt.Sprintf("Macro '%s' executed successfully.\n", args.MacroName)
	if macroResult != "" {
		result += fmt.Sprintf("Return value: %s\n", macroResult)
	}
	return mcp.NewToolResultText(result), nil
}
