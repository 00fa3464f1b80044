package inventory_repo

import (
	"strings"
	"testing"
	"time"

	"tokopos/internal/core/id"
	"tokopos/internal/domain/inventory"
)

func TestFilterConditions(t *testing.T) {
	repo := NewMovementRepo(nil)
	tenantID := id.New()
	productID := id.New()
	reason := inventory.ReasonSale
	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		filter   inventory.MovementFilter
		wantSQL  []string
		wantArgs int
	}{
		{
			name:     "tenant only",
			filter:   inventory.MovementFilter{},
			wantSQL:  []string{"m.tenant_id = ?"},
			wantArgs: 1,
		},
		{
			name:     "product and reason",
			filter:   inventory.MovementFilter{ProductID: &productID, Reason: &reason},
			wantSQL:  []string{"m.tenant_id = ?", "m.product_id = ?", "m.reason = ?"},
			wantArgs: 3,
		},
		{
			name:     "date range",
			filter:   inventory.MovementFilter{DateFrom: &from, DateTo: &to},
			wantSQL:  []string{"m.created_at >= ?", "m.created_at <= ?"},
			wantArgs: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cond := repo.filterConditions(tenantID, tt.filter)

			sql, args, err := cond.ToSql()
			if err != nil {
				t.Fatalf("ToSql: %v", err)
			}
			for _, frag := range tt.wantSQL {
				if !strings.Contains(sql, frag) {
					t.Errorf("sql %q missing %q", sql, frag)
				}
			}
			if len(args) != tt.wantArgs {
				t.Errorf("got %d args, want %d", len(args), tt.wantArgs)
			}
		})
	}
}
