package tools

import (
	"context"
	"fmt"

	z "github.com/Oudwins/zog"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/negokaz/comobject-mcp-server/internal/comobject"
	imcp "github.com/negokaz/comobject-mcp-server/internal/mcp"
	"github.com/negokaz/comobject-mcp-server/internal/office"
	"github.com/negokaz/comobject-mcp-server/internal/session"
)

type WordReadParagraphArguments struct {
	FileAbsolutePath string `zog:"fileAbsolutePath"`
	Index            int    `zog:"index"`
}

var wordReadParagraphArgumentsSchema = z.Struct(z.Shape{
	"fileAbsolutePath": z.String().Test(AbsolutePathTest()).Required(),
	"index":            z.Int().GTE(1).Default(1),
})

func AddWordReadParagraphTool(server *server.MCPServer, host *Host) {
	server.AddTool(mcp.NewTool("word_read_paragraph",
		mcp.WithDescription("Read one paragraph of a Word document (Windows only)"),
		mcp.WithString("fileAbsolutePath",
			mcp.Required(),
			mcp.Description("Absolute path to the document"),
		),
		mcp.WithNumber("index",
			mcp.Description("1-based paragraph number. Defaults to 1"),
		),
	), WithRecovery(host.handleWordReadParagraph))
}

func (h *Host) handleWordReadParagraph(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := WordReadParagraphArguments{}
	if issues := wordReadParagraphArgumentsSchema.Parse(request.GetArguments(), &args); len(issues) != 0 {
		return imcp.NewToolResultZogIssueMap(issues), nil
	}

	var paragraph string
	var count int
	err := h.Do(ctx, func(s *session.Session) error {
		return h.withWordDocument(s, args.FileAbsolutePath, func(w *office.Word, doc *comobject.Proxy) error {
			var err error
			if count, err = w.ParagraphCount(doc); err != nil {
				return err
			}
			if args.Index > count {
				return nil
			}
			paragraph, err = w.Paragraph(doc, args.Index)
			return err
		})
	})
	if err != nil {
		return nil, err
	}
	if args.Index > count {
		return imcp.NewToolResultInvalidArgumentError(fmt.Sprintf("index %d is out of range, the document has %d paragraph(s)", args.Index, count)), nil
	}

	result := fmt.Sprintf("# Paragraph %d of %d\n", args.Index, count)
	result += paragraph + "\n"
	return mcp.NewToolResultText(result), nil
}
