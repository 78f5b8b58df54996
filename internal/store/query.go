package store

import (
	"fmt"
	"strings"
)

const (
	defaultLimit = 50
	maxLimit     = 5000

	orderBySaleDate  = "sale_date"
	orderByTotalCost = "total_cost"
	orderByCreatedAt = "created_at"
)

// validOrderBy maps allowed OrderBy values to their SQL column expressions.
var validOrderBy = map[string]string{
	orderBySaleDate:  "sale_date DESC NULLS LAST",
	orderByTotalCost: "total_cost ASC",
	orderByCreatedAt: "created_at DESC",
}

const defaultOrderBy = "sale_date DESC NULLS LAST"

const baseRecordsSelect = `SELECT id, source, dealer_name,
	make, model, year, COALESCE(variant, ''), COALESCE(variant_family, ''),
	COALESCE(body, ''), COALESCE(transmission, ''), COALESCE(drivetrain, ''), COALESCE(engine, ''),
	COALESCE(sale_date, 'epoch'::timestamptz), days_in_stock, sell_price, total_cost, gross_profit,
	created_at
FROM sales_records`

const countRecordsSelect = "SELECT COUNT(*) FROM sales_records"

// ToSQL builds the WHERE clause, ORDER BY, LIMIT, and OFFSET for a ledger
// query. It returns two SQL strings (one for the data query, one for the
// count query) and the positional parameters.
func (q *RecordQuery) ToSQL() (dataSQL, countSQL string, args []any) {
	var conditions []string
	paramIdx := 1

	// Containment either direction mirrors the engine's make/model rule:
	// a pool fetch for "Chev" must include "Chevrolet" rows and vice versa.
	if q.Make != nil {
		conditions = append(conditions, fmt.Sprintf(
			"(make ILIKE '%%' || $%d || '%%' OR $%d ILIKE '%%' || make || '%%')",
			paramIdx, paramIdx,
		))
		args = append(args, *q.Make)
		paramIdx++
	}

	if q.Model != nil {
		conditions = append(conditions, fmt.Sprintf(
			"(model ILIKE '%%' || $%d || '%%' OR $%d ILIKE '%%' || model || '%%')",
			paramIdx, paramIdx,
		))
		args = append(args, *q.Model)
		paramIdx++
	}

	if q.Dealer != nil {
		conditions = append(conditions, fmt.Sprintf("dealer_name = $%d", paramIdx))
		args = append(args, *q.Dealer)
		paramIdx++
	}

	if q.Source != nil {
		conditions = append(conditions, fmt.Sprintf("source = $%d", paramIdx))
		args = append(args, *q.Source)
		paramIdx++
	}

	if q.YearMin != nil {
		conditions = append(conditions, fmt.Sprintf("year >= $%d", paramIdx))
		args = append(args, *q.YearMin)
		paramIdx++
	}

	if q.YearMax != nil {
		conditions = append(conditions, fmt.Sprintf("year <= $%d", paramIdx))
		args = append(args, *q.YearMax)
		paramIdx++
	}

	var whereClause string
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	orderClause := defaultOrderBy
	if q.OrderBy != "" {
		if col, ok := validOrderBy[q.OrderBy]; ok {
			orderClause = col
		}
	}

	limit := q.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	offset := max(q.Offset, 0)

	dataSQL = fmt.Sprintf(
		"%s%s ORDER BY %s LIMIT %d OFFSET %d",
		baseRecordsSelect, whereClause, orderClause, limit, offset,
	)

	countSQL = countRecordsSelect + whereClause

	return dataSQL, countSQL, args
}

const baseAuditsSelect = `SELECT id, query, result, verdict, n_comps, created_at
FROM price_audits`

const countAuditsSelect = "SELECT COUNT(*) FROM price_audits"

// ToSQL builds the data and count queries for a pricing audit listing.
func (q *AuditQuery) ToSQL() (dataSQL, countSQL string, args []any) {
	var whereClause string
	if q.Verdict != nil {
		whereClause = " WHERE verdict = $1"
		args = append(args, *q.Verdict)
	}

	limit := q.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	offset := max(q.Offset, 0)

	dataSQL = fmt.Sprintf(
		"%s%s ORDER BY created_at DESC LIMIT %d OFFSET %d",
		baseAuditsSelect, whereClause, limit, offset,
	)

	countSQL = countAuditsSelect + whereClause

	return dataSQL, countSQL, args
}
