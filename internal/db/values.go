package db

import (
	"context"
	"fmt"

	"github.com/ramanasai/moodpulse/internal/analytics"
)

var contextColumns = map[analytics.Field]string{
	analytics.FieldWho:              "ctx_who",
	analytics.FieldWhat:             "ctx_what",
	analytics.FieldPhysicalActivity: "ctx_activity",
}

// RecentValues returns the distinct values of a free-text context field,
// most recently used first. Used for completion hints on check-in.
func (s *Store) RecentValues(ctx context.Context, f analytics.Field, limit int) ([]string, error) {
	col, ok := contextColumns[f]
	if !ok {
		return nil, fmt.Errorf("%w: %s has no recent values", analytics.ErrUnknownField, f)
	}
	if limit <= 0 {
		limit = 10
	}

	query := fmt.Sprintf(`
		SELECT %[1]s
		FROM entries
		WHERE %[1]s IS NOT NULL AND %[1]s != ''
		GROUP BY %[1]s
		ORDER BY MAX(created_at) DESC
		LIMIT ?
	`, col)

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("recent %s values: %w", f, err)
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

// Dates returns every distinct entry date, newest first.
func (s *Store) Dates(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT entry_date FROM entries ORDER BY entry_date DESC`)
	if err != nil {
		return nil, fmt.Errorf("entry dates: %w", err)
	}
	defer rows.Close()

	var dates []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		dates = append(dates, d)
	}
	return dates, rows.Err()
}

// CountsByDate returns the number of entries per entry date in [from, to].
func (s *Store) CountsByDate(ctx context.Context, from, to string) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT entry_date, COUNT(*)
		FROM entries
		WHERE entry_date >= ? AND entry_date <= ?
		GROUP BY entry_date
	`, from, to)
	if err != nil {
		return nil, fmt.Errorf("counts by date: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var (
			d string
			n int
		)
		if err := rows.Scan(&d, &n); err != nil {
			return nil, err
		}
		counts[d] = n
	}
	return counts, rows.Err()
}
