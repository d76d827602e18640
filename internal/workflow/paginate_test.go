package workflow

import (
	"fmt"
	"math"
	"testing"

	"github.com/codex-k8s/court-review/internal/models"
)

func makeRequests(n int) []models.CaseRequest {
	out := make([]models.CaseRequest, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, models.CaseRequest{
			ID:            fmt.Sprint(i),
			CaseID:        fmt.Sprintf("C%d", i),
			LawyerAddress: fmt.Sprintf("0x%02d", i),
			RequestedAt:   int64(1000 * i),
			Status:        models.StatusPending,
		})
	}
	return out
}

func TestPaginateSingleRequest(t *testing.T) {
	requests := []models.CaseRequest{{ID: "1", CaseID: "C1", LawyerAddress: "0xA", RequestedAt: 1000}}
	page := Paginate(requests, "", 1, 6)
	if page.Total != 1 || page.TotalPages != 1 {
		t.Errorf("Total, TotalPages = %d, %d, want 1, 1", page.Total, page.TotalPages)
	}
	if len(page.Items) != 1 || page.Items[0].ID != "1" {
		t.Errorf("Items = %+v, want [id 1]", page.Items)
	}
}

func TestPaginateSevenBySix(t *testing.T) {
	requests := makeRequests(7)

	first := Paginate(requests, "", 1, 6)
	if first.TotalPages != 2 {
		t.Fatalf("TotalPages = %d, want 2", first.TotalPages)
	}
	if len(first.Items) != 6 || first.Items[0].ID != "1" || first.Items[5].ID != "6" {
		t.Errorf("page 1 items = %+v", first.Items)
	}
	if first.From != 1 || first.To != 6 {
		t.Errorf("page 1 range = %d-%d, want 1-6", first.From, first.To)
	}

	second := Paginate(requests, "", 2, 6)
	if len(second.Items) != 1 || second.Items[0].ID != "7" {
		t.Errorf("page 2 items = %+v, want [7]", second.Items)
	}
	if second.From != 7 || second.To != 7 || second.Total != 7 {
		t.Errorf("page 2 range = %d-%d of %d, want 7-7 of 7", second.From, second.To, second.Total)
	}
}

func TestPagesConcatenateToFiltered(t *testing.T) {
	requests := makeRequests(23)
	requests[4].LawyerName = "Zed"
	for _, query := range []string{"", "C1", "0x2", "zed", "nothing-matches"} {
		for _, size := range []int{1, 5, 6, 12, 50} {
			filtered := Filter(requests, query)
			first := Paginate(requests, query, 1, size)
			wantPages := (len(filtered) + size - 1) / size
			if wantPages < 1 {
				wantPages = 1
			}
			if first.TotalPages != wantPages {
				t.Errorf("query=%q size=%d TotalPages = %d, want %d", query, size, first.TotalPages, wantPages)
			}
			var joined []models.CaseRequest
			for p := 1; p <= first.TotalPages; p++ {
				joined = append(joined, Paginate(requests, query, p, size).Items...)
			}
			if len(joined) != len(filtered) {
				t.Fatalf("query=%q size=%d joined %d items, want %d", query, size, len(joined), len(filtered))
			}
			for i := range joined {
				if joined[i].ID != filtered[i].ID {
					t.Errorf("query=%q size=%d item %d = %s, want %s", query, size, i, joined[i].ID, filtered[i].ID)
				}
			}
		}
	}
}

func TestMatches(t *testing.T) {
	req := models.CaseRequest{
		ID:            "1",
		CaseID:        "CASE-2024-17",
		LawyerAddress: "0xAbCdEf",
		LawyerName:    "Maria Lopez",
		LawyerEmail:   "maria@firm.example",
	}
	tests := []struct {
		query string
		want  bool
	}{
		{query: "", want: true},
		{query: "   ", want: true},
		{query: "lopez", want: true},
		{query: "ARIA LO", want: true},
		{query: "@FIRM", want: true},
		{query: "2024-1", want: true},
		{query: "cdef", want: true},
		{query: "  maria  ", want: true},
		{query: "1", want: true},
		{query: "smith", want: false},
	}
	for _, tt := range tests {
		if got := Matches(req, tt.query); got != tt.want {
			t.Errorf("Matches(%q) = %v, want %v", tt.query, got, tt.want)
		}
	}
}

func TestMatchesIgnoresID(t *testing.T) {
	req := models.CaseRequest{ID: "secret-id", CaseID: "C1", LawyerAddress: "0xA"}
	if Matches(req, "secret") {
		t.Error("Matches should not search the request id")
	}
}

func TestPaginateEmpty(t *testing.T) {
	page := Paginate(nil, "", 1, 6)
	if page.TotalPages != 1 || page.Total != 0 || len(page.Items) != 0 {
		t.Errorf("page = %+v, want one empty page", page)
	}
	if page.From != 0 || page.To != 0 {
		t.Errorf("range = %d-%d, want 0-0", page.From, page.To)
	}
}

func TestPaginateDoesNotMutateInput(t *testing.T) {
	requests := makeRequests(3)
	page := Paginate(requests, "", 1, 2)
	page.Items[0].ID = "changed"
	if requests[0].ID != "1" {
		t.Errorf("input mutated: %s", requests[0].ID)
	}
}

func TestPaginateHugePage(t *testing.T) {
	page := Paginate(makeRequests(3), "", math.MaxInt, 2)
	if len(page.Items) != 0 || page.From != 0 || page.To != 0 {
		t.Errorf("page = %+v, want empty", page)
	}
	if page.TotalPages != 2 || page.Total != 3 {
		t.Errorf("TotalPages, Total = %d, %d, want 2, 3", page.TotalPages, page.Total)
	}
}
