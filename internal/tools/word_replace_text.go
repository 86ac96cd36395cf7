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

type WordReplaceTextArguments struct {
	FileAbsolutePath string `zog:"fileAbsolutePath"`
	Search           string `zog:"search"`
	Replace          string `zog:"replace"`
}

var wordReplaceTextArgumentsSchema = z.Struct(z.Shape{
	"fileAbsolutePath": z.String().Test(AbsolutePathTest()).Required(),
	"search":           z.String().Required(),
	"replace":          z.String(),
})

func AddWordReplaceTextTool(server *server.MCPServer, host *Host) {
	server.AddTool(mcp.NewTool("word_replace_text",
		mcp.WithDescription("Replace every occurrence of a text in a Word document and save it (Windows only)"),
		mcp.WithString("fileAbsolutePath",
			mcp.Required(),
			mcp.Description("Absolute path to the document"),
		),
		mcp.WithString("search",
			mcp.Required(),
			mcp.Description("Text to search for"),
		),
		mcp.WithString("replace",
			mcp.Description("Replacement text. Empty deletes the matches"),
		),
	), WithRecovery(host.handleWordReplaceText))
}

func (h *Host) handleWordReplaceText(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := WordReplaceTextArguments{}
	if issues := wordReplaceTextArgumentsSchema.Parse(request.GetArguments(), &args); len(issues) != 0 {
		return imcp.NewToolResultZogIssueMap(issues), nil
	}
	format, ok := office.WordFormatFor(args.FileAbsolutePath)
	if !ok {
		return imcp.NewToolResultInvalidArgumentError(fmt.Sprintf("unsupported document format: %s", args.FileAbsolutePath)), nil
	}

	err := h.Do(ctx, func(s *session.Session) error {
		return h.withWordDocument(s, args.FileAbsolutePath, func(w *office.Word, doc *comobject.Proxy) error {
			if err := w.ReplaceAll(doc, args.Search, args.Replace); err != nil {
				return err
			}
			return w.SaveAs(doc, args.FileAbsolutePath, format)
		})
	})
	if err != nil {
		return nil, err
	}

	result := "# Notice\n"
	result += fmt.Sprintf("Replaced '%s' with '%s' in %s\n", args.Search, args.Replace, args.FileAbsolutePath)
	return mcp.NewToolResultText(result), nil
}
