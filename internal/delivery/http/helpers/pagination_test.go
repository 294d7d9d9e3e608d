package helpers

import (
	"net/http/httptest"
	"testing"
)

func TestParsePagination(t *testing.T) {
	tests := []struct {
		name         string
		url          string
		wantPage     int
		wantPageSize int
	}{
		{"defaults", "/events", 1, 20},
		{"explicit values", "/events?page=3&page_size=50", 3, 50},
		{"page size clamped", "/events?page_size=500", 1, 100},
		{"invalid values fall back", "/events?page=abc&page_size=-1", 1, 20},
		{"zero page falls back", "/events?page=0", 1, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", tt.url, nil)
			got := ParsePagination(r)
			if got.Page != tt.wantPage || got.PageSize != tt.wantPageSize {
				t.Fatalf("got page=%d size=%d, want page=%d size=%d", got.Page, got.PageSize, tt.wantPage, tt.wantPageSize)
			}
		})
	}
}

func TestNewPaginationMeta(t *testing.T) {
	meta := NewPaginationMeta(2, 10, 41)
	if meta.TotalPages != 5 {
		t.Fatalf("expected 5 total pages, got %d", meta.TotalPages)
	}
	if meta.Total != 41 || meta.Page != 2 || meta.PageSize != 10 {
		t.Fatalf("unexpected meta: %+v", meta)
	}

	meta = NewPaginationMeta(1, 0, 41)
	if meta.TotalPages != 0 {
		t.Fatalf("expected 0 total pages for zero page size, got %d", meta.TotalPages)
	}
}
