package protocol

import "github.com/codex-k8s/court-review/internal/models"

// Tool call statuses.
const (
	StatusSuccess  = "success"
	StatusError    = "error"
	StatusSkipped  = "skipped"
	StatusNotFound = "not_found"
)

// ListRequestsInput selects the query and page of the request queue.
type ListRequestsInput struct {
	// Query replaces the search query when set; an empty string clears it.
	Query *string `json:"query,omitempty" jsonschema:"case-insensitive search over lawyer name or email or case id or address"`
	// PageSize switches the page size when non-zero.
	PageSize int `json:"page_size,omitempty" jsonschema:"items per page from the configured page sizes"`
	// Page moves to a 1-based page when non-zero.
	Page int `json:"page,omitempty" jsonschema:"1-based page number"`
}

// ApproveRequestInput names the request to approve.
type ApproveRequestInput struct {
	// ID is the access request id.
	ID string `json:"id" jsonschema:"id of the pending access request"`
}

// ReloadRequestsInput has no parameters.
type ReloadRequestsInput struct{}

// ViewResponse is the queue page returned to MCP clients.
type ViewResponse struct {
	// Status indicates the call status.
	Status string `json:"status"`
	// Reason is a human-readable message.
	Reason string `json:"reason,omitempty"`
	// Items are the requests on the current page.
	Items []models.CaseRequest `json:"items"`
	// Page is the 1-based page number.
	Page int `json:"page"`
	// PageSize is the number of items per page.
	PageSize int `json:"page_size"`
	// TotalPages is the number of pages for the filtered queue.
	TotalPages int `json:"total_pages"`
	// Total is the filtered count.
	Total int `json:"total"`
	// Showing is the range label for the page.
	Showing string `json:"showing"`
	// Query is the active search query.
	Query string `json:"query"`
	// PageSizes lists the allowed page sizes.
	PageSizes []int `json:"page_sizes"`
	// Loading is true while a reload is in progress.
	Loading bool `json:"loading"`
	// Error is the last load or approval error.
	Error string `json:"error,omitempty"`
	// Approving lists request ids with an approval in flight.
	Approving []string `json:"approving"`
}

// ApproveResponse is the approval outcome returned to MCP clients.
type ApproveResponse struct {
	// Status indicates the call status.
	Status string `json:"status"`
	// Reason is a human-readable message.
	Reason string `json:"reason,omitempty"`
	// Request is the approved request.
	Request *models.CaseRequest `json:"request,omitempty"`
	// InFlightFor is how long the outstanding approval has been running.
	InFlightFor string `json:"in_flight_for,omitempty"`
	// Result is the backend payload of the assignment.
	Result any `json:"result,omitempty"`
	// Remaining is the queue size after the call.
	Remaining int `json:"remaining"`
}

// RequestHistoryInput names the request whose audit trail is returned.
type RequestHistoryInput struct {
	// ID is the access request id.
	ID string `json:"id" jsonschema:"id of the access request"`
}

// HistoryEvent is one audit record.
type HistoryEvent struct {
	Type          string `json:"type"`
	CaseID        string `json:"case_id,omitempty"`
	Reviewer      string `json:"reviewer,omitempty"`
	CorrelationID string `json:"correlation_id,omitempty"`
	Reason        string `json:"reason,omitempty"`
	// At is RFC 3339 in UTC.
	At string `json:"at"`
}

// HistoryResponse lists the audit trail of a request, oldest first.
type HistoryResponse struct {
	// Status indicates the call status.
	Status string `json:"status"`
	// Reason is a human-readable message.
	Reason string `json:"reason,omitempty"`
	// Events are the recorded events.
	Events []HistoryEvent `json:"events"`
}
