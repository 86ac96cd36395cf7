package mcp

import (
	"fmt"
	"sort"
	"strings"

	z "github.com/Oudwins/zog"
	"github.com/mark3labs/mcp-go/mcp"
)

func NewToolResultInvalidArgumentError(message string) *mcp.CallToolResult {
	return mcp.NewToolResultError(fmt.Sprintf("Invalid argument: %s", message))
}

// NewToolResultZogIssueMap reports every validation issue, one content
// item per issue, ordered by argument name.
func NewToolResultZogIssueMap(issues z.ZogIssueMap) *mcp.CallToolResult {
	fields := make([]string, 0, len(issues))
	for field := range issues {
		// zog adds summary entries such as "$first"
		if strings.HasPrefix(field, "$") {
			continue
		}
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var content []mcp.Content
	for _, field := range fields {
		for _, issue := range issues[field] {
			content = append(content, mcp.NewTextContent(fmt.Sprintf("Invalid argument: %s: %s", field, issue.Message)))
		}
	}
	return &mcp.CallToolResult{
		Content: content,
		IsError: true,
	}
}
