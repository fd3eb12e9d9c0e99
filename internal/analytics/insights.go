package analytics

import (
	"fmt"

	"github.com/ramanasai/moodpulse/internal/journal"
)

// InsightRules are the thresholds of the pattern heuristics.
type InsightRules struct {
	// MinSamples is the fewest entries a value needs before it can be quoted.
	MinSamples int `mapstructure:"min_samples" json:"min_samples"`
	// GoodMoodRatio is the pleasant share that makes a value "feel good".
	GoodMoodRatio float64 `mapstructure:"good_mood_ratio" json:"good_mood_ratio"`
	// Max caps the number of insights returned.
	Max int `mapstructure:"max" json:"max"`
}

func DefaultInsightRules() InsightRules {
	return InsightRules{MinSamples: 2, GoodMoodRatio: 0.6, Max: 3}
}

func (r InsightRules) Validate() error {
	if r.MinSamples < 1 {
		return fmt.Errorf("insight min_samples must be at least 1, got %d", r.MinSamples)
	}
	if r.GoodMoodRatio <= 0 || r.GoodMoodRatio > 1 {
		return fmt.Errorf("insight good_mood_ratio must be in (0,1], got %v", r.GoodMoodRatio)
	}
	if r.Max < 0 {
		return fmt.Errorf("insight max must not be negative, got %d", r.Max)
	}
	return nil
}

type heuristic struct {
	field Field
	match func(TagStats, InsightRules) bool
	say   func(TagStats) string
}

// heuristics run in this order; the order is the presentation order.
// FieldWhat deliberately has none.
var heuristics = []heuristic{
	{
		field: FieldSleepHours,
		match: func(s TagStats, _ InsightRules) bool { return s.Pleasant() > s.Unpleasant() },
		say:   func(s TagStats) string { return fmt.Sprintf("You felt calmer with %s of sleep", s.Value) },
	},
	{
		field: FieldPhysicalActivity,
		match: func(s TagStats, r InsightRules) bool { return s.PleasantShare() >= r.GoodMoodRatio },
		say:   func(s TagStats) string { return fmt.Sprintf("%s often makes you feel good", s.Value) },
	},
	{
		field: FieldWho,
		match: func(s TagStats, r InsightRules) bool { return s.PleasantShare() >= r.GoodMoodRatio },
		say:   func(s TagStats) string { return fmt.Sprintf("You tend to feel good around %s", s.Value) },
	},
}

// Insights emits natural-language observations, capped to rules.Max in
// emission order.
func Insights(entries []journal.Entry, rules InsightRules) []string {
	out := []string{}
	for _, h := range heuristics {
		stats, err := Correlate(entries, h.field)
		if err != nil {
			continue
		}
		for _, s := range stats {
			if s.Count < rules.MinSamples || !h.match(s, rules) {
				continue
			}
			out = append(out, h.say(s))
		}
	}
	if rules.Max > 0 && len(out) > rules.Max {
		out = out[:rules.Max]
	}
	return out
}
