package postgres

import "strings"

// ColumnList joins column names for interpolation into raw SQL.
func ColumnList(columns []string) string {
	return strings.Join(columns, ", ")
}

// allowed ORDER BY idents; anything else falls back to created_at.
var sortableColumns = map[string]struct{}{
	"name":           {},
	"created_at":     {},
	"updated_at":     {},
	"price_cents":    {},
	"stock_quantity": {},
	"sale_number":    {},
	"total_cents":    {},
}

// SortExpr converts an API sort key ("name", "-created_at") into an
// ORDER BY expression, whitelisting the column name.
func SortExpr(orderBy string) string {
	dir := "ASC"
	col := orderBy
	if strings.HasPrefix(orderBy, "-") {
		dir = "DESC"
		col = orderBy[1:]
	}
	if _, ok := sortableColumns[col]; !ok {
		col = "created_at"
	}
	return col + " " + dir
}
