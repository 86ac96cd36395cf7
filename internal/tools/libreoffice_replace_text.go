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

type LibreOfficeReplaceTextArguments struct {
	FileAbsolutePath string `zog:"fileAbsolutePath"`
	Search           string `zog:"search"`
	Replace          string `zog:"replace"`
}

var libreOfficeReplaceTextArgumentsSchema = z.Struct(z.Shape{
	"fileAbsolutePath": z.String().Test(AbsolutePathTest()).Required(),
	"search":           z.String().Required(),
	"replace":          z.String(),
})

func AddLibreOfficeReplaceTextTool(server *server.MCPServer, host *Host) {
	server.AddTool(mcp.NewTool("libreoffice_replace_text",
		mcp.WithDescription("Replace every occurrence of a text in a document with LibreOffice Writer and store it"),
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
	), WithRecovery(host.handleLibreOfficeReplaceText))
}

func (h *Host) handleLibreOfficeReplaceText(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := LibreOfficeReplaceTextArguments{}
	if issues := libreOfficeReplaceTextArgumentsSchema.Parse(request.GetArguments(), &args); len(issues) != 0 {
		return imcp.NewToolResultZogIssueMap(issues), nil
	}
	filter, ok := office.LibreOfficeFilterFor(args.FileAbsolutePath)
	if !ok {
		return imcp.NewToolResultInvalidArgumentError(fmt.Sprintf("unsupported document format: %s", args.FileAbsolutePath)), nil
	}

	var replaced int
	err := h.Do(ctx, func(s *session.Session) error {
		url := office.FileURL(args.FileAbsolutePath)
		return h.withLibreOfficeDocument(s, url, func(l *office.LibreOffice, doc *comobject.Proxy) error {
			var err error
			if replaced, err = l.ReplaceAll(doc, args.Search, args.Replace); err != nil {
				return err
			}
			if replaced == 0 {
				return nil
			}
			return l.Export(doc, url, filter)
		})
	})
	if err != nil {
		return nil, err
	}

	result := "# Notice\n"
	result += fmt.Sprintf("Replaced %d occurrence(s) of '%s' in %s\n", replaced, args.Search, args.FileAbsolutePath)
	return mcp.NewToolResultText(result), nil
}
