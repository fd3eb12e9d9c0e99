package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ramanasai/moodpulse/internal/affect"
	"github.com/ramanasai/moodpulse/internal/journal"
	"go.uber.org/zap"
)

var _ journal.Store = (*Store)(nil)

const entryColumns = `id, quadrant, emotion, energy, pleasantness, note, encrypted,
	ctx_who, ctx_what, ctx_body, ctx_sleep_hours, ctx_activity,
	entry_date, created_at, updated_at`

// Add inserts a new entry.
func (s *Store) Add(ctx context.Context, e journal.Entry) error {
	if e.ID == "" {
		return errors.New("entry id is required")
	}
	note, encrypted, err := s.sealNote(e.Note)
	if err != nil {
		return err
	}
	who, what, body, sleep, activity := contextArgs(e.Context)

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO entries (`+entryColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, string(e.Quadrant), e.Emotion, nullFloat(e.Energy), nullFloat(e.Pleasantness),
		note, boolInt(encrypted),
		who, what, body, sleep, activity,
		e.EntryDate, formatTime(e.CreatedAt), formatTime(e.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert entry: %w", err)
	}
	s.log.Debug("entry added", zap.String("id", e.ID), zap.String("date", e.EntryDate))
	return nil
}

// Get returns one entry or journal.ErrNotFound.
func (s *Store) Get(ctx context.Context, id string) (journal.Entry, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+entryColumns+` FROM entries WHERE id = ?`, id)
	e, err := s.scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return journal.Entry{}, fmt.Errorf("%w: %s", journal.ErrNotFound, id)
	}
	return e, err
}

// Update rewrites the editable fields. The entry date and creation time stay
// as first stored.
func (s *Store) Update(ctx context.Context, e journal.Entry) error {
	note, encrypted, err := s.sealNote(e.Note)
	if err != nil {
		return err
	}
	who, what, body, sleep, activity := contextArgs(e.Context)

	res, err := s.db.ExecContext(ctx,
		`UPDATE entries SET
			quadrant = ?, emotion = ?, energy = ?, pleasantness = ?,
			note = ?, encrypted = ?,
			ctx_who = ?, ctx_what = ?, ctx_body = ?, ctx_sleep_hours = ?, ctx_activity = ?,
			updated_at = ?
		 WHERE id = ?`,
		string(e.Quadrant), e.Emotion, nullFloat(e.Energy), nullFloat(e.Pleasantness),
		note, boolInt(encrypted),
		who, what, body, sleep, activity,
		formatTime(e.UpdatedAt), e.ID,
	)
	if err != nil {
		return fmt.Errorf("update entry: %w", err)
	}
	return expectOne(res, e.ID)
}

// Delete removes an entry.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM entries WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	return expectOne(res, id)
}

// List returns entries newest first.
func (s *Store) List(ctx context.Context, f journal.Filter) ([]journal.Entry, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	where, args := filterClause(f)
	query := `SELECT ` + entryColumns + ` FROM entries` + where + ` ORDER BY created_at DESC, id ASC`
	if f.Limit > 0 {
		query += ` LIMIT ? OFFSET ?`
		args = append(args, f.Limit, f.Offset)
	} else if f.Offset > 0 {
		query += ` LIMIT -1 OFFSET ?`
		args = append(args, f.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	var out []journal.Entry
	for rows.Next() {
		e, err := s.scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Count returns the number of entries in the filter's date bounds.
func (s *Store) Count(ctx context.Context, f journal.Filter) (int, error) {
	if err := f.Validate(); err != nil {
		return 0, err
	}
	where, args := filterClause(f)
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM entries`+where, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count entries: %w", err)
	}
	return n, nil
}

func filterClause(f journal.Filter) (string, []any) {
	var conds []string
	var args []any
	if f.From != "" {
		conds = append(conds, "entry_date >= ?")
		args = append(args, f.From)
	}
	if f.To != "" {
		conds = append(conds, "entry_date <= ?")
		args = append(args, f.To)
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

type scanner interface {
	Scan(dest ...any) error
}

func (s *Store) scanEntry(sc scanner) (journal.Entry, error) {
	var (
		e                         journal.Entry
		quadrant                  string
		energy, pleasantness      sql.NullFloat64
		encrypted                 int
		who, what, body, activity sql.NullString
		sleep                     sql.NullFloat64
		createdAt, updatedAt      string
	)
	err := sc.Scan(&e.ID, &quadrant, &e.Emotion, &energy, &pleasantness, &e.Note, &encrypted,
		&who, &what, &body, &sleep, &activity,
		&e.EntryDate, &createdAt, &updatedAt)
	if err != nil {
		return journal.Entry{}, err
	}

	e.Quadrant = affect.Quadrant(quadrant)
	e.Energy = floatPtr(energy)
	e.Pleasantness = floatPtr(pleasantness)
	if e.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return journal.Entry{}, fmt.Errorf("entry %s created_at: %w", e.ID, err)
	}
	if e.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
		return journal.Entry{}, fmt.Errorf("entry %s updated_at: %w", e.ID, err)
	}

	c := &journal.Context{
		Who:              who.String,
		What:             what.String,
		Body:             body.String,
		SleepHours:       floatPtr(sleep),
		PhysicalActivity: activity.String,
	}
	if !c.IsZero() {
		e.Context = c
	}

	e.Note = s.openNote(e.ID, e.Note, encrypted != 0)
	return e, nil
}

func contextArgs(c *journal.Context) (who, what, body, sleep, activity any) {
	if c.IsZero() {
		return nil, nil, nil, nil, nil
	}
	return nullString(c.Who), nullString(c.What), nullString(c.Body), nullFloat(c.SleepHours), nullString(c.PhysicalActivity)
}

func expectOne(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", journal.ErrNotFound, id)
	}
	return nil
}

// timeLayout is fixed width so created_at sorts as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

func floatPtr(n sql.NullFloat64) *float64 {
	if !n.Valid {
		return nil
	}
	v := n.Float64
	return &v
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
