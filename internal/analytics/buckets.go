package analytics

import (
	"fmt"
	"time"

	"github.com/ramanasai/moodpulse/internal/affect"
	"github.com/ramanasai/moodpulse/internal/journal"
)

// Bucket is a time-of-day window.
type Bucket string

const (
	Morning   Bucket = "morning"
	Afternoon Bucket = "afternoon"
	Evening   Bucket = "evening"
	Night     Bucket = "night"
)

// Buckets returns the windows in reporting order.
func Buckets() []Bucket {
	return []Bucket{Morning, Afternoon, Evening, Night}
}

// BucketBounds holds the local hour at which each window starts. Night wraps
// past midnight up to MorningStart.
type BucketBounds struct {
	MorningStart   int `mapstructure:"morning_start" json:"morning_start"`
	AfternoonStart int `mapstructure:"afternoon_start" json:"afternoon_start"`
	EveningStart   int `mapstructure:"evening_start" json:"evening_start"`
	NightStart     int `mapstructure:"night_start" json:"night_start"`
}

// DefaultBounds: morning 05-11, afternoon 12-16, evening 17-20, night 21-04.
func DefaultBounds() BucketBounds {
	return BucketBounds{MorningStart: 5, AfternoonStart: 12, EveningStart: 17, NightStart: 21}
}

// Validate requires strictly increasing starts within [0,24).
func (b BucketBounds) Validate() error {
	starts := []int{b.MorningStart, b.AfternoonStart, b.EveningStart, b.NightStart}
	for i, h := range starts {
		if h < 0 || h > 23 {
			return fmt.Errorf("bucket start hour %d out of range", h)
		}
		if i > 0 && h <= starts[i-1] {
			return fmt.Errorf("bucket start hours must increase: %v", starts)
		}
	}
	return nil
}

// Bucket classifies ts by its local hour in loc.
func (b BucketBounds) Bucket(ts time.Time, loc *time.Location) Bucket {
	h := ts.In(loc).Hour()
	switch {
	case h >= b.MorningStart && h < b.AfternoonStart:
		return Morning
	case h >= b.AfternoonStart && h < b.EveningStart:
		return Afternoon
	case h >= b.EveningStart && h < b.NightStart:
		return Evening
	default:
		return Night
	}
}

// BucketOf classifies ts with the default bounds in the named zone.
func BucketOf(ts time.Time, tz string) (Bucket, error) {
	loc, err := LoadLocation(tz)
	if err != nil {
		return "", err
	}
	return DefaultBounds().Bucket(ts, loc), nil
}

// BucketStats is the quadrant mix of one time-of-day window. Percentages is
// nil when the window holds no entries.
type BucketStats struct {
	Bucket      Bucket                      `json:"bucket"`
	Count       int                         `json:"count"`
	Percentages map[affect.Quadrant]float64 `json:"percentages,omitempty"`
}

// HasData distinguishes an empty window from one with entries.
func (s BucketStats) HasData() bool { return s.Count > 0 }

// Distribution groups entries by the bucket of their creation time.
func (b BucketBounds) Distribution(entries []journal.Entry, loc *time.Location) []BucketStats {
	counts := make(map[Bucket]map[affect.Quadrant]int, len(Buckets()))
	totals := make(map[Bucket]int, len(Buckets()))
	for _, e := range entries {
		bucket := b.Bucket(e.CreatedAt, loc)
		if counts[bucket] == nil {
			counts[bucket] = make(map[affect.Quadrant]int)
		}
		counts[bucket][e.Quadrant]++
		totals[bucket]++
	}

	out := make([]BucketStats, 0, len(Buckets()))
	for _, bucket := range Buckets() {
		stats := BucketStats{Bucket: bucket, Count: totals[bucket]}
		if stats.Count > 0 {
			stats.Percentages = percentages(counts[bucket], stats.Count)
		}
		out = append(out, stats)
	}
	return out
}

// percentages always reports the four quadrants so a populated row sums to 100.
func percentages(counts map[affect.Quadrant]int, total int) map[affect.Quadrant]float64 {
	out := make(map[affect.Quadrant]float64, len(affect.Quadrants()))
	for _, q := range affect.Quadrants() {
		out[q] = float64(counts[q]) * 100 / float64(total)
	}
	return out
}
