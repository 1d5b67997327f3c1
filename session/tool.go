package session

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mark3labs/mcp-go/mcp"
)

// ToolDescriptor is one tool of one connected provider.
type ToolDescriptor struct {
	Provider    string         `json:"server"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"input_schema"`
}

func newToolDescriptor(provider string, tool mcp.Tool) (ToolDescriptor, error) {
	// mcp.Tool marshals either the raw or the structured schema, whichever is set.
	raw, err := json.Marshal(tool)
	if err != nil {
		return ToolDescriptor{}, goerr.Wrap(err, "failed to marshal tool", goerr.V("tool", tool.Name))
	}

	var decoded struct {
		InputSchema map[string]any `json:"inputSchema"`
	}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return ToolDescriptor{}, goerr.Wrap(err, "failed to decode tool input schema", goerr.V("tool", tool.Name))
	}

	return ToolDescriptor{
		Provider:    provider,
		Name:        tool.Name,
		Description: tool.Description,
		InputSchema: decoded.InputSchema,
	}, nil
}

// ToolResult is the content returned by a provider for one tool call. It is not
// validated or reshaped.
type ToolResult struct {
	Content []mcp.Content
	IsError bool
}

// Text renders the content as plain text, one content item per line.
func (x *ToolResult) Text() string {
	if x == nil {
		return ""
	}

	lines := make([]string, 0, len(x.Content))
	for _, c := range x.Content {
		lines = append(lines, contentText(c))
	}
	return strings.Join(lines, "\n")
}

func contentText(c mcp.Content) string {
	switch v := c.(type) {
	case mcp.TextContent:
		return v.Text
	case *mcp.TextContent:
		return v.Text
	case mcp.ImageContent:
		return fmt.Sprintf("[image %s, %d bytes base64]", v.MIMEType, len(v.Data))
	case *mcp.ImageContent:
		return fmt.Sprintf("[image %s, %d bytes base64]", v.MIMEType, len(v.Data))
	case mcp.EmbeddedResource:
		return resourceText(v.Resource)
	case *mcp.EmbeddedResource:
		return resourceText(v.Resource)
	}

	raw, err := json.Marshal(c)
	if err != nil {
		return fmt.Sprintf("%v", c)
	}
	return string(raw)
}

func resourceText(r mcp.ResourceContents) string {
	switch v := r.(type) {
	case mcp.TextResourceContents:
		return v.Text
	case *mcp.TextResourceContents:
		return v.Text
	case mcp.BlobResourceContents:
		return fmt.Sprintf("[resource %s %s]", v.URI, v.MIMEType)
	case *mcp.BlobResourceContents:
		return fmt.Sprintf("[resource %s %s]", v.URI, v.MIMEType)
	}
	return fmt.Sprintf("%v", r)
}
