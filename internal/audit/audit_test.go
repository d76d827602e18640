package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"
)

func TestStdLoggerRecord(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	New(logger).Record(context.Background(), Event{Type: TypeApprovalOK, RequestID: "1", CaseID: "C1", Reviewer: "0xA"})

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if entry["msg"] != "audit" || entry["type"] != TypeApprovalOK || entry["case_id"] != "C1" {
		t.Errorf("log entry = %v", entry)
	}
}

func TestStdLoggerNil(t *testing.T) {
	var l *StdLogger
	l.Record(context.Background(), Event{Type: TypeLoadOK})
	New(nil).Record(context.Background(), Event{Type: TypeLoadOK})
}

type recorder struct{ events []Event }

func (r *recorder) Record(_ context.Context, event Event) { r.events = append(r.events, event) }

func TestMulti(t *testing.T) {
	a, b := &recorder{}, &recorder{}
	Multi{a, nil, b}.Record(context.Background(), Event{Type: TypeLoadError})
	if len(a.events) != 1 || len(b.events) != 1 {
		t.Errorf("events = %d, %d, want 1, 1", len(a.events), len(b.events))
	}
}

func TestSQLiteStore(t *testing.T) {
	ctx := context.Background()
	store, err := OpenSQLite(ctx, ":memory:", nil)
	if err != nil {
		t.Fatalf("OpenSQLite() error = %v", err)
	}
	defer store.Close()

	at := time.UnixMilli(1_700_000_000_000)
	store.Record(ctx, Event{Type: TypeApprovalError, RequestID: "1", CaseID: "C1", Reviewer: "0xA", Reason: "network down", At: at})
	store.Record(ctx, Event{Type: TypeApprovalOK, RequestID: "1", CaseID: "C1", Reviewer: "0xA"})
	store.Record(ctx, Event{Type: TypeApprovalOK, RequestID: "2", CaseID: "C2", Reviewer: "0xB"})

	events, err := store.ListByRequest(ctx, "1")
	if err != nil {
		t.Fatalf("ListByRequest() error = %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("len(events) = %d, want 2", len(events))
	}
	if events[0].Type != TypeApprovalError || events[0].Reason != "network down" || !events[0].At.Equal(at) {
		t.Errorf("events[0] = %+v", events[0])
	}
	if events[1].Type != TypeApprovalOK {
		t.Errorf("events[1].Type = %s, want %s", events[1].Type, TypeApprovalOK)
	}

	if err := store.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := store.Insert(ctx, Event{Type: TypeLoadOK}); err == nil {
		t.Error("Insert after Close should fail")
	}
}
