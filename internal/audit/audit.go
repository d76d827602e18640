package audit

import (
	"context"
	"log/slog"
	"time"
)

// Event types.
const (
	TypeLoadOK          = "load_ok"
	TypeLoadError       = "load_error"
	TypeApprovalOK      = "approval_ok"
	TypeApprovalError   = "approval_error"
	TypeApprovalSkipped = "approval_skipped"
)

// Event represents an audit entry for queue loads and approvals.
type Event struct {
	// Type describes the event kind.
	Type string
	// RequestID is the affected request, if any.
	RequestID string
	// CaseID is the affected case, if any.
	CaseID string
	// Reviewer is the address granted access.
	Reviewer string
	// CorrelationID links related events.
	CorrelationID string
	// Reason provides additional context.
	Reason string
	// At is the event time; zero means now.
	At time.Time
}

// Logger records audit events.
type Logger interface {
	// Record stores an audit event.
	Record(ctx context.Context, event Event)
}

// StdLogger writes audit events to slog.
type StdLogger struct {
	logger *slog.Logger
}

// New returns a StdLogger.
func New(logger *slog.Logger) *StdLogger {
	return &StdLogger{logger: logger}
}

// Record logs an audit event.
func (l *StdLogger) Record(_ context.Context, event Event) {
	if l == nil || l.logger == nil {
		return
	}
	l.logger.Info("audit",
		"type", event.Type,
		"request_id", event.RequestID,
		"case_id", event.CaseID,
		"reviewer", event.Reviewer,
		"correlation_id", event.CorrelationID,
		"reason", event.Reason,
	)
}

// Multi fans an event out to several loggers.
type Multi []Logger

// Record forwards event to every non-nil logger.
func (m Multi) Record(ctx context.Context, event Event) {
	for _, item := range m {
		if item != nil {
			item.Record(ctx, event)
		}
	}
}
