package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/ramanasai/moodpulse/internal/affect"
	"github.com/ramanasai/moodpulse/internal/journal"
	"go.uber.org/zap"
)

// Report is every analytics view computed from one snapshot.
type Report struct {
	Timezone      string               `json:"timezone"`
	Today         string               `json:"today"`
	From          string               `json:"from,omitempty"`
	To            string               `json:"to,omitempty"`
	Entries       int                  `json:"entries"`
	Days          int                  `json:"days"`
	Streak        int                  `json:"streak"`
	LongestStreak int                  `json:"longest_streak"`
	Quadrants     []TagStats           `json:"quadrants"`
	TimeOfDay     []BucketStats        `json:"time_of_day"`
	Context       map[Field][]TagStats `json:"context"`
	Insights      []string             `json:"insights"`
	GeneratedAt   time.Time            `json:"generated_at"`
}

// Engine wires the analytics to their configured thresholds.
type Engine struct {
	Bounds BucketBounds
	Rules  InsightRules
	Logger *zap.Logger
}

// NewEngine validates the thresholds. A nil logger is replaced by a no-op one.
func NewEngine(bounds BucketBounds, rules InsightRules, logger *zap.Logger) (*Engine, error) {
	if err := bounds.Validate(); err != nil {
		return nil, err
	}
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{Bounds: bounds, Rules: rules, Logger: logger}, nil
}

// Report loads one snapshot from r and computes every view with the same
// now and timezone. The streak is always computed over the full history so a
// date filter only narrows the distributions.
func (en *Engine) Report(ctx context.Context, r journal.Reader, f journal.Filter, now time.Time, tz string) (*Report, error) {
	loc, err := LoadLocation(tz)
	if err != nil {
		return nil, err
	}

	history, err := r.List(ctx, journal.Filter{})
	if err != nil {
		return nil, fmt.Errorf("load entries: %w", err)
	}
	var scoped []journal.Entry
	for _, e := range history {
		if f.Matches(e) {
			scoped = append(scoped, e)
		}
	}

	today, yesterday := Today(now, loc)
	dates := EntryDates(history)
	streak, err := Streak(dates, today, yesterday)
	if err != nil {
		return nil, err
	}

	rep := &Report{
		Timezone:      loc.String(),
		Today:         today,
		From:          f.From,
		To:            f.To,
		Entries:       len(scoped),
		Days:          len(EntryDates(scoped)),
		Streak:        streak,
		LongestStreak: LongestStreak(dates),
		Quadrants:     quadrantTotals(scoped),
		TimeOfDay:     en.Bounds.Distribution(scoped, loc),
		Context:       make(map[Field][]TagStats, len(Fields())),
		Insights:      Insights(scoped, en.Rules),
		GeneratedAt:   now.UTC(),
	}
	for _, field := range Fields() {
		stats, err := Correlate(scoped, field)
		if err != nil {
			return nil, err
		}
		rep.Context[field] = stats
	}

	en.Logger.Debug("analytics report computed",
		zap.String("timezone", rep.Timezone),
		zap.String("today", today),
		zap.Int("entries", rep.Entries),
		zap.Int("streak", rep.Streak),
		zap.Int("insights", len(rep.Insights)),
	)
	return rep, nil
}

// quadrantTotals reports each quadrant as a TagStats row in quadrant order,
// skipping quadrants with no entries.
func quadrantTotals(entries []journal.Entry) []TagStats {
	counts := make(map[affect.Quadrant]int)
	for _, e := range entries {
		counts[e.Quadrant]++
	}
	out := []TagStats{}
	for _, q := range affect.Quadrants() {
		if counts[q] == 0 {
			continue
		}
		out = append(out, TagStats{
			Value:       string(q),
			Count:       counts[q],
			Quadrants:   map[affect.Quadrant]int{q: counts[q]},
			Percentages: map[affect.Quadrant]float64{q: float64(counts[q]) * 100 / float64(len(entries))},
			Dominant:    q,
		})
	}
	return out
}
