package workflow

import (
	"strings"

	"github.com/codex-k8s/court-review/internal/models"
)

// Page is one page of the filtered request collection.
type Page struct {
	// Items are the requests shown on this page.
	Items []models.CaseRequest `json:"items"`
	// Page is the 1-based page number.
	Page int `json:"page"`
	// PageSize is the number of items per page.
	PageSize int `json:"page_size"`
	// TotalPages is max(1, ceil(Total/PageSize)).
	TotalPages int `json:"total_pages"`
	// Total is the filtered count.
	Total int `json:"total"`
	// From is the 1-based position of the first item, 0 when the page is empty.
	From int `json:"from"`
	// To is the 1-based position of the last item, 0 when the page is empty.
	To int `json:"to"`
}

// Matches reports whether req passes the free-text query.
// The query is trimmed and case-folded; an empty query matches everything.
func Matches(req models.CaseRequest, query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	for _, field := range []string{req.LawyerName, req.LawyerEmail, req.CaseID, req.LawyerAddress} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

// Filter returns the requests matching query, preserving order.
func Filter(requests []models.CaseRequest, query string) []models.CaseRequest {
	if strings.TrimSpace(query) == "" {
		return requests
	}
	out := make([]models.CaseRequest, 0, len(requests))
	for _, req := range requests {
		if Matches(req, query) {
			out = append(out, req)
		}
	}
	return out
}

// TotalPages returns max(1, ceil(count/pageSize)).
func TotalPages(count, pageSize int) int {
	if pageSize <= 0 || count <= 0 {
		return 1
	}
	return (count + pageSize - 1) / pageSize
}

// Paginate filters requests by query and slices out the requested page.
// It never modifies requests. Pages below 1 are treated as page 1; pages
// past the end yield no items.
func Paginate(requests []models.CaseRequest, query string, page, pageSize int) Page {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 1
	}
	filtered := Filter(requests, query)
	result := Page{
		Page:       page,
		PageSize:   pageSize,
		TotalPages: TotalPages(len(filtered), pageSize),
		Total:      len(filtered),
		Items:      []models.CaseRequest{},
	}

	if page > result.TotalPages {
		return result
	}
	start := (page - 1) * pageSize
	if start >= len(filtered) {
		return result
	}
	end := start + pageSize
	if end > len(filtered) {
		end = len(filtered)
	}
	result.Items = append(result.Items, filtered[start:end]...)
	result.From = start + 1
	result.To = end
	return result
}
