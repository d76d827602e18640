package runtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/codex-k8s/court-review/internal/audit"
	"github.com/codex-k8s/court-review/internal/constants"
	"github.com/codex-k8s/court-review/internal/courtapi"
	"github.com/codex-k8s/court-review/internal/dsl"
	"github.com/codex-k8s/court-review/internal/protocol"
	"github.com/codex-k8s/court-review/internal/templates"
	"github.com/codex-k8s/court-review/internal/workflow"
)

// Builder constructs the MCP server exposing the request queue.
type Builder struct {
	// Logger is used for structured logging.
	Logger *slog.Logger
	// View holds the queue state shared by all tools.
	View *workflow.View
	// Templates provides localized messages.
	Templates templates.Renderer
	// History serves request_history; nil leaves the tool out.
	History History
}

// History reads the audit trail of a request.
type History interface {
	ListByRequest(ctx context.Context, requestID string) ([]audit.Event, error)
}

// Build creates an MCP server with the queue tools.
func (b Builder) Build(cfg *dsl.Config) (*mcp.Server, error) {
	if b.View == nil {
		return nil, fmt.Errorf("view is nil")
	}
	server := mcp.NewServer(&mcp.Implementation{
		Name:    cfg.Server.Name,
		Version: cfg.Server.Version,
	}, nil)

	notDestructive := false

	mcp.AddTool(server, &mcp.Tool{
		Name:        constants.ToolListRequests,
		Title:       "List access requests",
		Description: "Search and page through pending court case access requests.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, b.ListRequests)

	mcp.AddTool(server, &mcp.Tool{
		Name:        constants.ToolApproveRequest,
		Title:       "Approve access request",
		Description: "Assign the requesting lawyer to the case and remove the request from the queue.",
		Annotations: &mcp.ToolAnnotations{DestructiveHint: &notDestructive},
	}, b.ApproveRequest)

	mcp.AddTool(server, &mcp.Tool{
		Name:        constants.ToolReloadRequests,
		Title:       "Reload access requests",
		Description: "Fetch the pending access requests from the court backend again.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, b.ReloadRequests)

	if b.History != nil {
		mcp.AddTool(server, &mcp.Tool{
			Name:        constants.ToolRequestHistory,
			Title:       "Access request history",
			Description: "List recorded approval attempts for an access request.",
			Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
		}, b.RequestHistory)
	}

	return server, nil
}

// ListRequests applies the query and paging input and returns the current page.
func (b Builder) ListRequests(_ context.Context, _ *mcp.CallToolRequest, in protocol.ListRequestsInput) (*mcp.CallToolResult, protocol.ViewResponse, error) {
	if in.PageSize != 0 && !b.View.AllowsPageSize(in.PageSize) {
		resp := viewResponse(b.View.Snapshot())
		resp.Status = protocol.StatusError
		resp.Reason = fmt.Sprintf("%s: %d", workflow.ErrInvalidPageSize, in.PageSize)
		return nil, resp, nil
	}
	if in.Query != nil {
		b.View.SetQuery(*in.Query)
	}
	if in.PageSize != 0 {
		if err := b.View.SetPageSize(in.PageSize); err != nil {
			return nil, protocol.ViewResponse{}, err
		}
	}
	if in.Page != 0 {
		b.View.SetPage(in.Page)
	}
	return nil, viewResponse(b.View.Snapshot()), nil
}

// ApproveRequest approves the queued request with the given id.
func (b Builder) ApproveRequest(ctx context.Context, _ *mcp.CallToolRequest, in protocol.ApproveRequestInput) (*mcp.CallToolResult, protocol.ApproveResponse, error) {
	req, result, err := b.View.ApproveByID(ctx, in.ID)
	resp := protocol.ApproveResponse{Status: protocol.StatusSuccess}
	data := map[string]string{"ID": in.ID, "CaseID": req.CaseID}

	switch {
	case errors.Is(err, workflow.ErrRequestNotFound):
		resp.Status = protocol.StatusNotFound
		resp.Reason = templates.Text(b.Templates, templates.KeyNotFound, data, err.Error())
	case errors.Is(err, workflow.ErrApprovalInFlight):
		resp.Status = protocol.StatusSkipped
		resp.Reason = templates.Text(b.Templates, templates.KeyInFlight, data, err.Error())
		if started, ok := b.View.ApprovingSince(in.ID); ok {
			resp.InFlightFor = time.Since(started).Round(time.Millisecond).String()
		}
	case err != nil:
		resp.Status = protocol.StatusError
		resp.Reason = courtapi.MessageOf(err)
		if resp.Reason == "" {
			resp.Reason = templates.Text(b.Templates, templates.KeyApproveFailed, nil, workflow.DefaultApproveFailed)
		}
	default:
		resp.Request = &req
		resp.Reason = templates.Text(b.Templates, templates.KeyApproved, data, "approved")
		resp.Result = decodeResult(result)
	}

	resp.Remaining = len(b.View.Requests())
	if b.Logger != nil {
		b.Logger.Info("tool call", "tool", constants.ToolApproveRequest, "request_id", in.ID, "status", resp.Status)
	}
	return nil, resp, nil
}

// ReloadRequests fetches the queue again and returns the current page.
func (b Builder) ReloadRequests(ctx context.Context, _ *mcp.CallToolRequest, _ protocol.ReloadRequestsInput) (*mcp.CallToolResult, protocol.ViewResponse, error) {
	err := b.View.Load(ctx)
	resp := viewResponse(b.View.Snapshot())
	if err != nil {
		resp.Status = protocol.StatusError
		resp.Reason = resp.Error
	}
	return nil, resp, nil
}

// RequestHistory returns the audit trail recorded for a request.
func (b Builder) RequestHistory(ctx context.Context, _ *mcp.CallToolRequest, in protocol.RequestHistoryInput) (*mcp.CallToolResult, protocol.HistoryResponse, error) {
	resp := protocol.HistoryResponse{Status: protocol.StatusSuccess, Events: []protocol.HistoryEvent{}}
	events, err := b.History.ListByRequest(ctx, in.ID)
	if err != nil {
		resp.Status = protocol.StatusError
		resp.Reason = err.Error()
		return nil, resp, nil
	}
	if len(events) == 0 {
		resp.Status = protocol.StatusNotFound
		resp.Reason = fmt.Sprintf("no history recorded for request %s", in.ID)
	}
	for _, event := range events {
		resp.Events = append(resp.Events, protocol.HistoryEvent{
			Type:          event.Type,
			CaseID:        event.CaseID,
			Reviewer:      event.Reviewer,
			CorrelationID: event.CorrelationID,
			Reason:        event.Reason,
			At:            event.At.UTC().Format(time.RFC3339),
		})
	}
	return nil, resp, nil
}

func viewResponse(snap workflow.Snapshot) protocol.ViewResponse {
	return protocol.ViewResponse{
		Status:     protocol.StatusSuccess,
		Items:      snap.Items,
		Page:       snap.Page.Page,
		PageSize:   snap.PageSize,
		TotalPages: snap.TotalPages,
		Total:      snap.Total,
		Showing:    snap.Showing,
		Query:      snap.Query,
		PageSizes:  snap.PageSizes,
		Loading:    snap.Loading,
		Error:      snap.Error,
		Approving:  snap.Approving,
	}
}

func decodeResult(raw json.RawMessage) any {
	if len(raw) == 0 {
		return nil
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return string(raw)
	}
	return out
}
