// Package journal holds the check-in entry model and the storage contracts
// the analytics read from.
package journal

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ramanasai/moodpulse/internal/affect"
)

// DateLayout is the calendar-date format of Entry.EntryDate.
const DateLayout = "2006-01-02"

// ErrNotFound is returned when an entry id does not exist.
var ErrNotFound = errors.New("entry not found")

// Context is the optional situational tagging of an entry.
type Context struct {
	Who              string   `json:"who,omitempty"`
	What             string   `json:"what,omitempty"`
	Body             string   `json:"body,omitempty"`
	SleepHours       *float64 `json:"sleep_hours,omitempty"`
	PhysicalActivity string   `json:"physical_activity,omitempty"`
}

// IsZero reports whether no field is set.
func (c *Context) IsZero() bool {
	return c == nil || (c.Who == "" && c.What == "" && c.Body == "" && c.SleepHours == nil && c.PhysicalActivity == "")
}

// Entry is one persisted check-in. EntryDate is fixed at creation in the
// user's timezone and is never recomputed.
type Entry struct {
	ID           string          `json:"id"`
	Quadrant     affect.Quadrant `json:"quadrant"`
	Emotion      string          `json:"emotion"`
	Energy       *float64        `json:"energy,omitempty"`
	Pleasantness *float64        `json:"pleasantness,omitempty"`
	Note         string          `json:"note,omitempty"`
	Context      *Context        `json:"context,omitempty"`
	EntryDate    string          `json:"entry_date"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// NewEntry builds an entry from a resolved selection. The entry date is taken
// from createdAt in loc.
func NewEntry(sel affect.Selection, note string, ctx *Context, createdAt time.Time, loc *time.Location) (Entry, error) {
	if loc == nil {
		return Entry{}, errors.New("journal: nil location")
	}
	if createdAt.IsZero() {
		return Entry{}, errors.New("journal: zero creation time")
	}
	if ctx.IsZero() {
		ctx = nil
	} else {
		ctx = normalizeContext(ctx)
	}

	energy, pleasantness := sel.Coordinate.Energy, sel.Coordinate.Pleasantness
	return Entry{
		ID:           uuid.NewString(),
		Quadrant:     sel.Quadrant,
		Emotion:      sel.Emotion,
		Energy:       &energy,
		Pleasantness: &pleasantness,
		Note:         strings.TrimSpace(note),
		Context:      ctx,
		EntryDate:    createdAt.In(loc).Format(DateLayout),
		CreatedAt:    createdAt.UTC(),
		UpdatedAt:    createdAt.UTC(),
	}, nil
}

func normalizeContext(c *Context) *Context {
	out := &Context{
		Who:              strings.TrimSpace(c.Who),
		What:             strings.TrimSpace(c.What),
		Body:             strings.TrimSpace(c.Body),
		PhysicalActivity: strings.TrimSpace(c.PhysicalActivity),
	}
	if c.SleepHours != nil {
		h := *c.SleepHours
		out.SleepHours = &h
	}
	return out
}

// Patch is an explicit user edit. Nil fields are left alone. The entry date
// is not editable.
type Patch struct {
	Emotion  *string
	Quadrant *affect.Quadrant
	Note     *string
	Context  *Context
}

// Apply returns a copy of e with p applied at time now.
func (p Patch) Apply(e Entry, now time.Time) Entry {
	if p.Emotion != nil {
		e.Emotion = *p.Emotion
	}
	if p.Quadrant != nil {
		e.Quadrant = *p.Quadrant
	}
	if p.Note != nil {
		e.Note = strings.TrimSpace(*p.Note)
	}
	if p.Context != nil {
		if p.Context.IsZero() {
			e.Context = nil
		} else {
			e.Context = normalizeContext(p.Context)
		}
	}
	e.UpdatedAt = now.UTC()
	return e
}

// Filter narrows a listing. From and To are inclusive entry dates.
type Filter struct {
	From   string
	To     string
	Limit  int
	Offset int
}

// Validate checks the date bounds.
func (f Filter) Validate() error {
	for _, d := range []string{f.From, f.To} {
		if d == "" {
			continue
		}
		if _, err := time.Parse(DateLayout, d); err != nil {
			return fmt.Errorf("invalid filter date %q: %w", d, err)
		}
	}
	return nil
}

// Matches reports whether e falls in the date bounds.
func (f Filter) Matches(e Entry) bool {
	if f.From != "" && e.EntryDate < f.From {
		return false
	}
	if f.To != "" && e.EntryDate > f.To {
		return false
	}
	return true
}

// Reader is the read-only view analytics consume.
type Reader interface {
	List(ctx context.Context, f Filter) ([]Entry, error)
}

// Store owns create, update and delete of entries.
type Store interface {
	Reader
	Add(ctx context.Context, e Entry) error
	Get(ctx context.Context, id string) (Entry, error)
	Update(ctx context.Context, e Entry) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context, f Filter) (int, error)
}
