package constants

// Server transports.
const (
	TransportHTTP  = "http"
	TransportStdio = "stdio"
)

// MCP tool names.
const (
	ToolListRequests   = "list_requests"
	ToolApproveRequest = "approve_request"
	ToolReloadRequests = "reload_requests"
	ToolRequestHistory = "request_history"
)
