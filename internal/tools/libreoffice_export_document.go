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

type LibreOfficeExportDocumentArguments struct {
	SourceAbsolutePath string `zog:"sourceAbsolutePath"`
	TargetAbsolutePath string `zog:"targetAbsolutePath"`
}

var libreOfficeExportDocumentArgumentsSchema = z.Struct(z.Shape{
	"sourceAbsolutePath": z.String().Test(AbsolutePathTest()).Required(),
	"targetAbsolutePath": z.String().Test(AbsolutePathTest()).Required(),
})

func AddLibreOfficeExportDocumentTool(server *server.MCPServer, host *Host) {
	server.AddTool(mcp.NewTool("libreoffice_export_document",
		mcp.WithDescription("Export a document with LibreOffice Writer. The filter follows the target extension (.odt, .docx, .doc, .pdf, .rtf, .txt, .html)"),
		mcp.WithString("sourceAbsolutePath",
			mcp.Required(),
			mcp.Description("Absolute path to the document to export"),
		),
		mcp.WithString("targetAbsolutePath",
			mcp.Required(),
			mcp.Description("Absolute path to write the exported document to"),
		),
	), WithRecovery(host.handleLibreOfficeExportDocument))
}

func (h *Host) handleLibreOfficeExportDocument(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := LibreOfficeExportDocumentArguments{}
	if issues := libreOfficeExportDocumentArgumentsSchema.Parse(request.GetArguments(), &args); len(issues) != 0 {
		return imcp.NewToolResultZogIssueMap(issues), nil
	}
	filter, ok := office.LibreOfficeFilterFor(args.TargetAbsolutePath)
	if !ok {
		return imcp.NewToolResultInvalidArgumentError(fmt.Sprintf("unsupported target format: %s", args.TargetAbsolutePath)), nil
	}

	err := h.Do(ctx, func(s *session.Session) error {
		return h.withLibreOfficeDocument(s, office.FileURL(args.SourceAbsolutePath), func(l *office.LibreOffice, doc *comobject.Proxy) error {
			return l.Export(doc, office.FileURL(args.TargetAbsolutePath), filter)
		})
	})
	if err != nil {
		return nil, err
	}

	result := "# Notice\n"
	result += fmt.Sprintf("Document exported with filter '%s': %s\n", filter, args.TargetAbsolutePath)
	return mcp.NewToolResultText(result), nil
}
