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

type WordConvertDocumentArguments struct {
	SourceAbsolutePath string `zog:"sourceAbsolutePath"`
	TargetAbsolutePath string `zog:"targetAbsolutePath"`
}

var wordConvertDocumentArgumentsSchema = z.Struct(z.Shape{
	"sourceAbsolutePath": z.String().Test(AbsolutePathTest()).Required(),
	"targetAbsolutePath": z.String().Test(AbsolutePathTest()).Required(),
})

func AddWordConvertDocumentTool(server *server.MCPServer, host *Host) {
	server.AddTool(mcp.NewTool("word_convert_document",
		mcp.WithDescription("Convert a document with Microsoft Word. The format follows the target extension (.docx, .doc, .pdf, .rtf, .txt, .html, .xps) (Windows only)"),
		mcp.WithString("sourceAbsolutePath",
			mcp.Required(),
			mcp.Description("Absolute path to the document to convert"),
		),
		mcp.WithString("targetAbsolutePath",
			mcp.Required(),
			mcp.Description("Absolute path to write the converted document to"),
		),
	), WithRecovery(host.handleWordConvertDocument))
}

func (h *Host) handleWordConvertDocument(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := WordConvertDocumentArguments{}
	if issues := wordConvertDocumentArgumentsSchema.Parse(request.GetArguments(), &args); len(issues) != 0 {
		return imcp.NewToolResultZogIssueMap(issues), nil
	}
	format, ok := office.WordFormatFor(args.TargetAbsolutePath)
	if !ok {
		return imcp.NewToolResultInvalidArgumentError(fmt.Sprintf("unsupported target format: %s", args.TargetAbsolutePath)), nil
	}

	err := h.Do(ctx, func(s *session.Session) error {
		return h.withWordDocument(s, args.SourceAbsolutePath, func(w *office.Word, doc *comobject.Proxy) error {
			return w.SaveAs(doc, args.TargetAbsolutePath, format)
		})
	})
	if err != nil {
		return nil, err
	}

	result := "# Notice\n"
	result += fmt.Sprintf("Document converted: %s\n", args.TargetAbsolutePath)
	return mcp.NewToolResultText(result), nil
}
