package repo

import (
	"strings"

	"gorm.io/gorm"
)

// Range constrains a column to inclusive bounds. A nil bound is open.
type Range struct {
	Column string
	Min    any
	Max    any
}

// Match constrains a text column to a case-insensitive substring.
type Match struct {
	Column string
	Term   string
}

// Query enumerates the supported read-shaping options. Every field is
// optional; the zero Query selects everything.
type Query struct {
	// Conds are column = value equality predicates, ANDed together.
	Conds map[string]any
	// Ranges are inclusive bound predicates, ANDed together.
	Ranges []Range
	// Matches are substring predicates, ANDed together.
	Matches []Match
	// AnyMatch are substring predicates ORed together (search).
	AnyMatch []Match
	// Preloads names relations resolved with the read.
	Preloads []string
	// Order is a raw ORDER BY expression.
	Order string
	// Limit caps the result set size. Zero means unbounded.
	Limit int
}

// apply folds the query options into a GORM statement. Column names come
// from the domain repositories, never from callers.
func (q Query) apply(tx *gorm.DB) *gorm.DB {
	if len(q.Conds) > 0 {
		tx = tx.Where(map[string]any(q.Conds))
	}
	for _, rg := range q.Ranges {
		if rg.Min != nil {
			tx = tx.Where(rg.Column+" >= ?", rg.Min)
		}
		if rg.Max != nil {
			tx = tx.Where(rg.Column+" <= ?", rg.Max)
		}
	}
	for _, m := range q.Matches {
		tx = tx.Where(m.Column+" ILIKE ?", "%"+m.Term+"%")
	}
	if len(q.AnyMatch) > 0 {
		parts := make([]string, 0, len(q.AnyMatch))
		args := make([]any, 0, len(q.AnyMatch))
		for _, m := range q.AnyMatch {
			parts = append(parts, m.Column+" ILIKE ?")
			args = append(args, "%"+m.Term+"%")
		}
		tx = tx.Where(strings.Join(parts, " OR "), args...)
	}
	for _, p := range q.Preloads {
		tx = tx.Preload(p)
	}
	if q.Order != "" {
		tx = tx.Order(q.Order)
	}
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}
	return tx
}
