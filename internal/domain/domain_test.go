package domain

import "testing"

func TestListFilterNormalize(t *testing.T) {
	tests := []struct {
		name      string
		in        ListFilter
		wantPage  int
		wantLimit int
	}{
		{"zero values get defaults", ListFilter{}, 1, 50},
		{"negative page clamped", ListFilter{Page: -3, Limit: 10}, 1, 10},
		{"limit capped", ListFilter{Page: 2, Limit: 5000}, 2, 200},
		{"in range untouched", ListFilter{Page: 4, Limit: 25}, 4, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := tt.in
			f.Normalize()
			if f.Page != tt.wantPage || f.Limit != tt.wantLimit {
				t.Errorf("got page=%d limit=%d, want page=%d limit=%d",
					f.Page, f.Limit, tt.wantPage, tt.wantLimit)
			}
		})
	}
}

func TestListFilterOffset(t *testing.T) {
	f := ListFilter{Page: 3, Limit: 20}
	f.Normalize()
	if got := f.Offset(); got != 40 {
		t.Errorf("Offset() = %d, want 40", got)
	}
}

func TestNewListResultPages(t *testing.T) {
	tests := []struct {
		name      string
		total     int64
		limit     int
		wantPages int
	}{
		{"exact multiple", 100, 50, 2},
		{"partial last page", 101, 50, 3},
		{"empty", 0, 50, 0},
		{"single row", 1, 50, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := ListFilter{Page: 1, Limit: tt.limit}
			f.Normalize()
			res := NewListResult([]int{}, f, tt.total)
			if res.Pages != tt.wantPages {
				t.Errorf("Pages = %d, want %d", res.Pages, tt.wantPages)
			}
			if res.Total != tt.total {
				t.Errorf("Total = %d, want %d", res.Total, tt.total)
			}
		})
	}
}
