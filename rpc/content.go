package rpc

// ContentItem is a single block in a tool result's `content` array. Only
// text blocks are produced by this server.
type ContentItem struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

// NewTextContent returns a ContentItem with type "text".
func NewTextContent(text string) ContentItem {
	return ContentItem{Type: "text", Text: text}
}

// CallToolResult is the MCP result payload for tools/call: one or more
// content blocks plus an error flag. Tool handlers that return one have it
// sent verbatim, so domain failures surface as flagged text rather than
// JSON-RPC protocol errors.
type CallToolResult struct {
	Content []ContentItem `json:"content"`
	IsError bool          `json:"isError,omitempty"`
}

// NewToolResultText returns a successful single-text-block result.
func NewToolResultText(text string) CallToolResult {
	return CallToolResult{Content: []ContentItem{NewTextContent(text)}}
}

// NewToolResultError returns an error-flagged single-text-block result.
func NewToolResultError(text string) CallToolResult {
	return CallToolResult{Content: []ContentItem{NewTextContent(text)}, IsError: true}
}
