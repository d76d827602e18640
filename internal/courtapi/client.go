package courtapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"github.com/codex-k8s/court-review/internal/models"
	"github.com/codex-k8s/court-review/internal/security"
)

const (
	pendingRequestsPath = "/api/court/requests"
	assignLawyerPath    = "/api/court/%s/assign-lawyer"

	maxBodyBytes = 8 << 20
	tracerName   = "github.com/codex-k8s/court-review/internal/courtapi"
)

// Operation names used in errors, logs and spans.
const (
	OpFetchPending   = "fetch_pending_requests"
	OpAssignReviewer = "assign_reviewer"
)

// Client calls the court backend.
type Client struct {
	// BaseURL is the backend origin, e.g. https://court.example.com.
	BaseURL string
	// Headers are added to every request.
	Headers map[string]string
	// Timeout is the HTTP timeout; zero disables it.
	Timeout time.Duration
	// Limiter throttles outgoing calls when set.
	Limiter *rate.Limiter
	// HTTPClient overrides the default transport.
	HTTPClient *http.Client
	// Tracer overrides the global OpenTelemetry tracer.
	Tracer trace.Tracer
	// Logger receives debug request logs.
	Logger *slog.Logger
}

type assignLawyerRequest struct {
	LawyerAddress string `json:"lawyerAddress"`
}

type envelope struct {
	Data json.RawMessage `json:"data"`
}

// FetchPendingRequests returns the pending requests held by the backend.
// The payload is returned as decoded, without validation.
func (c *Client) FetchPendingRequests(ctx context.Context) ([]models.CaseRequest, error) {
	data, err := c.do(ctx, OpFetchPending, http.MethodGet, pendingRequestsPath, nil)
	if err != nil {
		return nil, err
	}
	if isEmpty(data) {
		return nil, nil
	}
	var requests []models.CaseRequest
	if err := json.Unmarshal(data, &requests); err != nil {
		return nil, &Error{Op: OpFetchPending, Message: "invalid response payload", Err: err}
	}
	return requests, nil
}

// AssignReviewer grants reviewerAddress access to caseID and returns the
// backend's data payload untouched.
func (c *Client) AssignReviewer(ctx context.Context, caseID, reviewerAddress string) (json.RawMessage, error) {
	path := fmt.Sprintf(assignLawyerPath, url.PathEscape(caseID))
	return c.do(ctx, OpAssignReviewer, http.MethodPost, path, assignLawyerRequest{LawyerAddress: reviewerAddress})
}

func (c *Client) do(ctx context.Context, op, method, path string, payload any) (json.RawMessage, error) {
	ctx, span := c.tracer().Start(ctx, "courtapi."+op, trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()
	span.SetAttributes(attribute.String("http.method", method), attribute.String("http.path", path))

	data, err := c.roundTrip(ctx, op, method, path, payload, span)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, MessageOf(err))
		return nil, err
	}
	return data, nil
}

func (c *Client) roundTrip(ctx context.Context, op, method, path string, payload any, span trace.Span) (json.RawMessage, error) {
	if strings.TrimSpace(c.BaseURL) == "" {
		return nil, &Error{Op: op, Message: "api base url is empty"}
	}
	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx); err != nil {
			return nil, &Error{Op: op, Message: err.Error(), Err: err}
		}
	}

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, &Error{Op: op, Message: "failed to encode request", Err: err}
		}
		body = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, strings.TrimRight(c.BaseURL, "/")+path, body)
	if err != nil {
		return nil, &Error{Op: op, Message: "failed to build request", Err: err}
	}
	request.Header.Set("Accept", "application/json")
	if payload != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	for key, value := range c.Headers {
		if value == "" {
			continue
		}
		request.Header.Set(key, value)
	}

	if c.Logger != nil {
		c.Logger.Debug("court api request", "op", op, "method", method, "path", path, "headers", security.RedactHeaders(c.Headers))
	}

	resp, err := c.httpClient().Do(request)
	if err != nil {
		return nil, &Error{Op: op, Message: err.Error(), Err: err}
	}
	defer resp.Body.Close()
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &Error{Op: op, Status: resp.StatusCode, Message: "failed to read response", Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		message := backendMessage(data)
		if message == "" {
			message = fmt.Sprintf("request failed with status code %d", resp.StatusCode)
		}
		return nil, &Error{Op: op, Status: resp.StatusCode, Message: message}
	}

	var parsed envelope
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, &Error{Op: op, Status: resp.StatusCode, Message: "invalid response payload", Err: err}
	}
	return parsed.Data, nil
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return &http.Client{Timeout: c.Timeout}
}

func (c *Client) tracer() trace.Tracer {
	if c.Tracer != nil {
		return c.Tracer
	}
	return otel.Tracer(tracerName)
}

func isEmpty(data json.RawMessage) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// NewLimiter builds a limiter allowing ratePerMinute calls per minute.
// It returns nil when ratePerMinute is not positive.
func NewLimiter(ratePerMinute int) *rate.Limiter {
	if ratePerMinute <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(ratePerMinute)), ratePerMinute)
}
