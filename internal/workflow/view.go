package workflow

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/codex-k8s/court-review/internal/audit"
	"github.com/codex-k8s/court-review/internal/courtapi"
	"github.com/codex-k8s/court-review/internal/inflight"
	"github.com/codex-k8s/court-review/internal/metrics"
	"github.com/codex-k8s/court-review/internal/models"
	"github.com/codex-k8s/court-review/internal/templates"
)

// Default fallback messages when no template bundle is configured.
const (
	DefaultLoadFailed    = "Failed to load requests"
	DefaultApproveFailed = "Approval failed"
)

// DefaultPageSizes are the page size choices used when none are configured.
var DefaultPageSizes = []int{6, 12, 24, 48}

var (
	// ErrApprovalInFlight is returned when the request already has an approval outstanding.
	ErrApprovalInFlight = errors.New("approval already in flight")
	// ErrRequestNotFound is returned when the request is not in the queue.
	ErrRequestNotFound = errors.New("request not found")
	// ErrInvalidPageSize is returned for page sizes outside the configured choices.
	ErrInvalidPageSize = errors.New("invalid page size")
)

// Client is the backend the view talks to.
type Client interface {
	// FetchPendingRequests returns the pending requests.
	FetchPendingRequests(ctx context.Context) ([]models.CaseRequest, error)
	// AssignReviewer grants reviewerAddress access to caseID.
	AssignReviewer(ctx context.Context, caseID, reviewerAddress string) (json.RawMessage, error)
}

// Options configures a View.
type Options struct {
	// PageSizes lists the allowed page sizes.
	PageSizes []int
	// DefaultPageSize is the initial page size; it must be one of PageSizes.
	DefaultPageSize int
	// Messages renders localized fallback messages.
	Messages templates.Renderer
	// Logger receives structured logs.
	Logger *slog.Logger
	// Audit records loads and approvals.
	Audit audit.Logger
	// Metrics records queue metrics.
	Metrics *metrics.Metrics
}

// View holds the pending request queue with its search and paging state,
// and drives approvals against the backend.
//
// State is guarded by a mutex that is never held across backend calls or
// audit sinks, so approvals for different requests may run concurrently.
type View struct {
	client    Client
	messages  templates.Renderer
	logger    *slog.Logger
	audit     audit.Logger
	metrics   *metrics.Metrics
	approving *inflight.Set
	pageSizes []int

	mu       sync.Mutex
	requests []models.CaseRequest
	loading  bool
	errMsg   string
	query    string
	page     int
	pageSize int
	loaded   bool
}

// Snapshot is the derived state of the view at one point in time.
type Snapshot struct {
	Page
	// Query is the current search query.
	Query string `json:"query"`
	// Loading is true while a load is in progress.
	Loading bool `json:"loading"`
	// Error is the most recent error message.
	Error string `json:"error,omitempty"`
	// Approving lists request ids with an approval in flight.
	Approving []string `json:"approving"`
	// PageSizes lists the allowed page sizes.
	PageSizes []int `json:"page_sizes"`
	// Showing is the human-readable range label.
	Showing string `json:"showing"`
}

// New creates a View backed by client.
func New(client Client, opts Options) *View {
	pageSizes := slices.Clone(opts.PageSizes)
	if len(pageSizes) == 0 {
		pageSizes = slices.Clone(DefaultPageSizes)
	}
	pageSize := opts.DefaultPageSize
	if !slices.Contains(pageSizes, pageSize) {
		pageSize = pageSizes[0]
	}
	return &View{
		client:    client,
		messages:  opts.Messages,
		logger:    opts.Logger,
		audit:     opts.Audit,
		metrics:   opts.Metrics,
		approving: inflight.NewSet(),
		pageSizes: pageSizes,
		page:      1,
		pageSize:  pageSize,
	}
}

// Load replaces the queue with the backend's pending requests.
// On failure the previous queue is kept and the error message is stored.
func (v *View) Load(ctx context.Context) error {
	v.mu.Lock()
	v.loading = true
	v.errMsg = ""
	v.mu.Unlock()

	requests, err := v.client.FetchPendingRequests(ctx)

	if err != nil {
		msg := v.failureMessage(err, templates.KeyLoadFailed, DefaultLoadFailed)
		v.mu.Lock()
		v.loading = false
		v.errMsg = msg
		v.mu.Unlock()

		v.metrics.LoadFinished(metrics.ResultError)
		v.record(ctx, audit.Event{Type: audit.TypeLoadError, Reason: msg})
		if v.logger != nil {
			v.logger.Warn("load pending requests failed", "error", err)
		}
		return err
	}

	if requests == nil {
		requests = []models.CaseRequest{}
	}
	v.mu.Lock()
	v.loading = false
	v.requests = requests
	v.page = 1
	v.loaded = true
	v.mu.Unlock()

	v.metrics.LoadFinished(metrics.ResultOK)
	v.metrics.SetPending(len(requests))
	v.record(ctx, audit.Event{Type: audit.TypeLoadOK})
	if v.logger != nil {
		v.logger.Info("pending requests loaded", "count", len(requests))
	}
	return nil
}

// Approve assigns req's requester to req's case. On success the request
// leaves the queue and the page is clamped to the remaining pages; on
// failure it stays and the error message is stored.
// A second call for the same id while one is outstanding does nothing and
// returns ErrApprovalInFlight.
func (v *View) Approve(ctx context.Context, req models.CaseRequest) (json.RawMessage, error) {
	correlationID := uuid.NewString()
	event := audit.Event{
		RequestID:     req.ID,
		CaseID:        req.CaseID,
		Reviewer:      req.LawyerAddress,
		CorrelationID: correlationID,
	}

	if !v.approving.Acquire(req.ID) {
		v.metrics.ApprovalFinished(metrics.ResultSkipped, 0)
		event.Type = audit.TypeApprovalSkipped
		v.record(ctx, event)
		return nil, ErrApprovalInFlight
	}
	v.metrics.SetInFlight(v.approving.Len())
	defer func() {
		v.approving.Release(req.ID)
		v.metrics.SetInFlight(v.approving.Len())
	}()

	started := time.Now()
	result, err := v.client.AssignReviewer(ctx, req.CaseID, req.LawyerAddress)
	elapsed := time.Since(started)

	if err != nil {
		msg := v.failureMessage(err, templates.KeyApproveFailed, DefaultApproveFailed)
		v.mu.Lock()
		v.errMsg = msg
		v.mu.Unlock()

		v.metrics.ApprovalFinished(metrics.ResultError, elapsed)
		event.Type = audit.TypeApprovalError
		event.Reason = msg
		v.record(ctx, event)
		if v.logger != nil {
			v.logger.Warn("approval failed", "request_id", req.ID, "case_id", req.CaseID, "correlation_id", correlationID, "error", err)
		}
		return nil, err
	}

	v.mu.Lock()
	v.requests = slices.DeleteFunc(slices.Clone(v.requests), func(item models.CaseRequest) bool {
		return item.ID == req.ID
	})
	if total := TotalPages(len(Filter(v.requests, v.query)), v.pageSize); v.page > total {
		v.page = total
	}
	remaining := len(v.requests)
	v.mu.Unlock()

	v.metrics.ApprovalFinished(metrics.ResultOK, elapsed)
	v.metrics.SetPending(remaining)
	event.Type = audit.TypeApprovalOK
	v.record(ctx, event)
	if v.logger != nil {
		v.logger.Info("request approved", "request_id", req.ID, "case_id", req.CaseID, "correlation_id", correlationID)
	}
	return result, nil
}

// ApproveByID approves the queued request with the given id.
func (v *View) ApproveByID(ctx context.Context, id string) (models.CaseRequest, json.RawMessage, error) {
	req, ok := v.Request(id)
	if !ok {
		return models.CaseRequest{}, nil, ErrRequestNotFound
	}
	result, err := v.Approve(ctx, req)
	return req, result, err
}

// SetQuery sets the search query and returns to the first page.
func (v *View) SetQuery(query string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.query = query
	v.page = 1
}

// SetPageSize sets the page size and returns to the first page.
func (v *View) SetPageSize(size int) error {
	if !v.AllowsPageSize(size) {
		return ErrInvalidPageSize
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.pageSize = size
	v.page = 1
	return nil
}

// AllowsPageSize reports whether size is one of the configured page sizes.
func (v *View) AllowsPageSize(size int) bool {
	return slices.Contains(v.pageSizes, size)
}

// SetPage moves to page, clamped to the available pages.
func (v *View) SetPage(page int) int {
	v.mu.Lock()
	defer v.mu.Unlock()
	total := TotalPages(len(Filter(v.requests, v.query)), v.pageSize)
	switch {
	case page < 1:
		page = 1
	case page > total:
		page = total
	}
	v.page = page
	return page
}

// Snapshot derives the current page and flags.
func (v *View) Snapshot() Snapshot {
	v.mu.Lock()
	page := Paginate(v.requests, v.query, v.page, v.pageSize)
	snap := Snapshot{
		Page:      page,
		Query:     v.query,
		Loading:   v.loading,
		Error:     v.errMsg,
		PageSizes: slices.Clone(v.pageSizes),
	}
	v.mu.Unlock()

	snap.Approving = v.approving.IDs()
	snap.Showing = ShowingLabel(v.messages, page)
	return snap
}

// Request returns the queued request with id.
func (v *View) Request(id string) (models.CaseRequest, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for _, req := range v.requests {
		if req.ID == id {
			return req, true
		}
	}
	return models.CaseRequest{}, false
}

// Requests returns a copy of the whole queue.
func (v *View) Requests() []models.CaseRequest {
	v.mu.Lock()
	defer v.mu.Unlock()
	return slices.Clone(v.requests)
}

// IsApproving reports whether id has an approval in flight.
func (v *View) IsApproving(id string) bool {
	return v.approving.Has(id)
}

// ApprovingSince returns when the outstanding approval for id started.
func (v *View) ApprovingSince(id string) (time.Time, bool) {
	return v.approving.Since(id)
}

// Err returns the most recent error message.
func (v *View) Err() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.errMsg
}

// Loading reports whether a load is in progress.
func (v *View) Loading() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.loading
}

// Loaded reports whether at least one load has succeeded.
func (v *View) Loaded() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.loaded
}

// Run reloads the queue every interval until ctx is done.
// Load errors are kept in the view and do not stop the loop.
func (v *View) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_ = v.Load(ctx)
		}
	}
}

// ShowingLabel renders the "Showing a - b of n" label for page.
func ShowingLabel(r templates.Renderer, page Page) string {
	data := map[string]int{"From": page.From, "To": page.To, "Total": page.Total}
	fallback := fmt.Sprintf("Showing %d - %d of %d", page.From, page.To, page.Total)
	return templates.Text(r, templates.KeyShowing, data, fallback)
}

func (v *View) failureMessage(err error, key, fallback string) string {
	if msg := courtapi.MessageOf(err); msg != "" {
		return msg
	}
	return templates.Text(v.messages, key, nil, fallback)
}

func (v *View) record(ctx context.Context, event audit.Event) {
	if v.audit != nil {
		v.audit.Record(ctx, event)
	}
}
