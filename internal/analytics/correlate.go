package analytics

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/ramanasai/moodpulse/internal/affect"
	"github.com/ramanasai/moodpulse/internal/journal"
	"golang.org/x/text/cases"
)

// ErrUnknownField is returned for context field names outside Fields().
var ErrUnknownField = errors.New("unknown context field")

// Field is a context attribute entries can be grouped by.
type Field string

const (
	FieldWho              Field = "who"
	FieldWhat             Field = "what"
	FieldSleepHours       Field = "sleepHours"
	FieldPhysicalActivity Field = "physicalActivity"
)

// Fields lists the correlatable fields in reporting order.
func Fields() []Field {
	return []Field{FieldWho, FieldWhat, FieldSleepHours, FieldPhysicalActivity}
}

// ParseField accepts the canonical names plus snake and kebab spellings.
func ParseField(s string) (Field, error) {
	key := strings.ToLower(strings.NewReplacer("_", "", "-", "", " ", "").Replace(strings.TrimSpace(s)))
	switch key {
	case "who":
		return FieldWho, nil
	case "what":
		return FieldWhat, nil
	case "sleephours", "sleep":
		return FieldSleepHours, nil
	case "physicalactivity", "activity":
		return FieldPhysicalActivity, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, s)
}

// Sleep buckets used as correlation values for FieldSleepHours.
const (
	SleepShort  = "under 6h"
	SleepNormal = "6-8h"
	SleepLong   = "8h+"
)

// SleepBucket groups a night's sleep into a coarse label.
func SleepBucket(hours float64) string {
	switch {
	case hours < 6:
		return SleepShort
	case hours < 8:
		return SleepNormal
	default:
		return SleepLong
	}
}

// value extracts the correlation value of f from e; ok is false when missing.
func value(e journal.Entry, f Field) (string, bool) {
	c := e.Context
	if c == nil {
		return "", false
	}
	var v string
	switch f {
	case FieldWho:
		v = c.Who
	case FieldWhat:
		v = c.What
	case FieldPhysicalActivity:
		v = c.PhysicalActivity
	case FieldSleepHours:
		if c.SleepHours == nil {
			return "", false
		}
		return SleepBucket(*c.SleepHours), true
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}

// TagStats is the quadrant mix of one distinct context value.
type TagStats struct {
	Value       string                      `json:"value"`
	Count       int                         `json:"count"`
	Quadrants   map[affect.Quadrant]int     `json:"quadrants"`
	Percentages map[affect.Quadrant]float64 `json:"percentages"`
	Dominant    affect.Quadrant             `json:"dominant"`
}

// Pleasant counts entries in pleasant quadrants.
func (s TagStats) Pleasant() int {
	return s.Quadrants[affect.HighPleasant] + s.Quadrants[affect.LowPleasant]
}

// Unpleasant counts entries in unpleasant quadrants.
func (s TagStats) Unpleasant() int {
	return s.Quadrants[affect.HighUnpleasant] + s.Quadrants[affect.LowUnpleasant]
}

// PleasantShare is the pleasant fraction in [0,1].
func (s TagStats) PleasantShare() float64 {
	if s.Count == 0 {
		return 0
	}
	return float64(s.Pleasant()) / float64(s.Count)
}

// Correlate groups entries by the value of f, most frequent first. Values
// that differ only in case share a group shown with the first spelling seen.
// Ties keep first-appearance order. Entries without the field are left out.
func Correlate(entries []journal.Entry, f Field) ([]TagStats, error) {
	field, err := ParseField(string(f))
	if err != nil {
		return nil, err
	}

	fold := cases.Fold()
	index := make(map[string]int)
	var out []TagStats
	for _, e := range entries {
		v, ok := value(e, field)
		if !ok {
			continue
		}
		key := fold.String(v)
		i, seen := index[key]
		if !seen {
			i = len(out)
			index[key] = i
			out = append(out, TagStats{Value: v, Quadrants: make(map[affect.Quadrant]int)})
		}
		out[i].Count++
		out[i].Quadrants[e.Quadrant]++
	}

	for i := range out {
		out[i].Percentages = percentages(out[i].Quadrants, out[i].Count)
		out[i].Dominant = dominant(out[i].Quadrants)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	if out == nil {
		out = []TagStats{}
	}
	return out, nil
}

// dominant picks the most frequent quadrant; ties go to the earlier quadrant
// in affect.Quadrants().
func dominant(counts map[affect.Quadrant]int) affect.Quadrant {
	var best affect.Quadrant
	bestCount := 0
	for _, q := range affect.Quadrants() {
		if counts[q] > bestCount {
			best, bestCount = q, counts[q]
		}
	}
	return best
}
