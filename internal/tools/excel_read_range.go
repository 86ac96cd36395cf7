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

type ExcelReadRangeArguments struct {
	FileAbsolutePath string `zog:"fileAbsolutePath"`
	SheetName        string `zog:"sheetName"`
	Range            string `zog:"range"`
	Page             int    `zog:"page"`
}

var excelReadRangeArgumentsSchema = z.Struct(z.Shape{
	"fileAbsolutePath": z.String().Test(AbsolutePathTest()).Required(),
	"sheetName":        z.String().Required(),
	"range":            z.String().Required(),
	"page":             z.Int().GTE(1).Default(1),
})

func AddExcelReadRangeTool(server *server.MCPServer, host *Host) {
	server.AddTool(mcp.NewTool("excel_read_range",
		mcp.WithDescription(fmt.Sprintf("Read cell values from a workbook in Excel. Ranges over %d cells are read page by page: pass the same range with the page number named in the result to continue. A row wider than a page is split by columns (Windows only)", office.MaxRangeCells)),
		mcp.WithString("fileAbsolutePath",
			mcp.Required(),
			mcp.Description("Absolute path to the Excel file"),
		),
		mcp.WithString("sheetName",
			mcp.Required(),
			mcp.Description("Sheet name in the Excel file"),
		),
		mcp.WithString("range",
			mcp.Required(),
			mcp.Description("Range of cells to read (e.g., \"A1:C10\")"),
		),
		mcp.WithNumber("page",
			mcp.Description("1-based page of the range to read. Defaults to 1"),
		),
	), WithRecovery(host.handleReadRange))
}

func (h *Host) handleReadRange(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := ExcelReadRangeArguments{}
	if issues := excelReadRangeArgumentsSchema.Parse(request.GetArguments(), &args); len(issues) != 0 {
		return imcp.NewToolResultZogIssueMap(issues), nil
	}
	cells, err := office.ParseRange(args.Range)
	if err != nil {
		return imcp.NewToolResultInvalidArgumentError(err.Error()), nil
	}

	total := cells.PageCount(office.MaxRangeCells)
	page, ok := cells.Page(args.Page, office.MaxRangeCells)
	if !ok {
		return imcp.NewToolResultInvalidArgumentError(fmt.Sprintf("page %d is out of range: %s has %d pages", args.Page, cells, total)), nil
	}

	var rows [][]any
	err = h.Do(ctx, func(s *session.Session) error {
		return h.withExcel(s, func(e *office.Excel) error {
			wb, err := e.OpenWorkbook(args.FileAbsolutePath)
			if err != nil {
				return err
			}
			rows, err = e.ReadRange(wb, args.SheetName, page.String())
			return err
		})
	})
	if err != nil {
		return nil, err
	}

	block, err := jsonBlock(rows)
	if err != nil {
		return nil, err
	}
	result := fmt.Sprintf("# %s!%s\n", args.SheetName, page)
	result += block
	if total > 1 {
		result += "# Notice\n"
		result += fmt.Sprintf("This is page %d of %d of %s.", args.Page, total, cells)
		if args.Page < total {
			next, _ := cells.Page(args.Page+1, office.MaxRangeCells)
			result += fmt.Sprintf(" Read the next page (%s) with range %s and page %d.", next, cells, args.Page+1)
		}
		result += "\n"
	}
	return mcp.NewToolResultText(result), nil
}
