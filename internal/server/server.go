package server

import (
	"context"
	"os"
	"runtime"

	"github.com/mark3labs/mcp-go/server"
	"github.com/negokaz/comobject-mcp-server/internal/tools"
)

type ComObjectServer struct {
	server *server.MCPServer
}

func New(version string, host *tools.Host) *ComObjectServer {
	s := &ComObjectServer{}
	s.server = server.NewMCPServer(
		"comobject-mcp-server",
		version,
	)
	tools.AddAutomationCreateObjectTool(s.server, host)
	tools.AddAutomationGetPropertyTool(s.server, host)
	tools.AddAutomationSetPropertyTool(s.server, host)
	tools.AddAutomationGetIndexTool(s.server, host)
	tools.AddAutomationInvokeMethodTool(s.server, host)
	tools.AddAutomationReleaseObjectTool(s.server, host)
	tools.AddAutomationListObjectsTool(s.server, host)
	// document flows need an automation server registered with COM
	if runtime.GOOS == "windows" {
		tools.AddLibreOfficeExportDocumentTool(s.server, host)
		tools.AddLibreOfficeReplaceTextTool(s.server, host)
		tools.AddWordConvertDocumentTool(s.server, host)
		tools.AddWordReplaceTextTool(s.server, host)
		tools.AddWordReadParagraphTool(s.server, host)
		tools.AddExcelListWorkbooksTool(s.server, host)
		tools.AddExcelOpenWorkbookTool(s.server, host)
		tools.AddExcelRunMacroTool(s.server, host)
		tools.AddExcelReadRangeTool(s.server, host)
	}
	return s
}

// Start serves stdio until ctx is done or the client disconnects.
func (s *ComObjectServer) Start(ctx context.Context) error {
	return server.NewStdioServer(s.server).Listen(ctx, os.Stdin, os.Stdout)
}
