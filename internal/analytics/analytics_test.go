package analytics

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/ramanasai/moodpulse/internal/affect"
	"github.com/ramanasai/moodpulse/internal/journal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var seq int

// entry builds a stored-looking entry created at ts (UTC) on the given date.
func entry(date string, ts time.Time, q affect.Quadrant, c *journal.Context) journal.Entry {
	seq++
	return journal.Entry{
		ID:        fmt.Sprintf("e%03d", seq),
		Quadrant:  q,
		Emotion:   string(q),
		Context:   c,
		EntryDate: date,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
}

func onDate(date string, q affect.Quadrant, c *journal.Context) journal.Entry {
	ts, _ := time.Parse(journal.DateLayout, date)
	return entry(date, ts.Add(12*time.Hour), q, c)
}

func hours(h float64) *float64 { return &h }

func dateSet(dates ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(dates))
	for _, d := range dates {
		set[d] = struct{}{}
	}
	return set
}

func sum(m map[affect.Quadrant]float64) float64 {
	total := 0.0
	for _, v := range m {
		total += v
	}
	return total
}

// ============================================================
// Streaks
// ============================================================

func TestStreakScenarioB(t *testing.T) {
	dates := dateSet("2024-01-01", "2024-01-02", "2024-01-03", "2024-01-04", "2024-01-05")
	n, err := Streak(dates, "2024-01-05", "2024-01-04")
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	delete(dates, "2024-01-03")
	n, err = Streak(dates, "2024-01-05", "2024-01-04")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestStreakStartsFromYesterday(t *testing.T) {
	dates := dateSet("2024-02-27", "2024-02-28", "2024-02-29")
	n, err := Streak(dates, "2024-03-01", "2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, 3, n, "leap day and month rollover are consecutive")
}

func TestStreakZeroWithoutTodayOrYesterday(t *testing.T) {
	dates := dateSet("2024-01-01", "2024-01-02", "2024-01-03")
	n, err := Streak(dates, "2024-01-05", "2024-01-04")
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = Streak(nil, "2024-01-05", "2024-01-04")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestStreakIgnoresDuplicateDays(t *testing.T) {
	entries := []journal.Entry{
		onDate("2024-01-04", affect.HighPleasant, nil),
		onDate("2024-01-05", affect.HighPleasant, nil),
		onDate("2024-01-05", affect.LowUnpleasant, nil),
		onDate("2024-01-05", affect.LowPleasant, nil),
	}
	n, err := Streak(EntryDates(entries), "2024-01-05", "2024-01-04")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestStreakRejectsMalformedDates(t *testing.T) {
	_, err := Streak(dateSet("2024-01-01"), "01/05/2024", "2024-01-04")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestCurrentStreakUsesUserZone(t *testing.T) {
	entries := []journal.Entry{
		onDate("2024-01-01", affect.HighPleasant, nil),
		onDate("2024-01-02", affect.HighPleasant, nil),
	}
	// 2024-01-03 02:00 UTC is still 2024-01-02 in New York.
	now := time.Date(2024, 1, 3, 2, 0, 0, 0, time.UTC)

	n, err := CurrentStreak(entries, now, "America/New_York")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	// Ten hours later it is 2024-01-03 there: yesterday still counts.
	n, err = CurrentStreak(entries, now.Add(10*time.Hour), "America/New_York")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	// A day later Auckland is already at 2024-01-04 15:00.
	n, err = CurrentStreak(entries, now.Add(24*time.Hour), "Pacific/Auckland")
	require.NoError(t, err)
	assert.Zero(t, n)

	_, err = CurrentStreak(entries, now, "Mars/Olympus_Mons")
	assert.ErrorIs(t, err, ErrUnknownTimezone)
	_, err = CurrentStreak(entries, now, "")
	assert.ErrorIs(t, err, ErrUnknownTimezone)
}

func TestToday(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)
	today, yesterday := Today(time.Date(2024, 3, 1, 16, 0, 0, 0, time.UTC), tokyo)
	assert.Equal(t, "2024-03-02", today)
	assert.Equal(t, "2024-03-01", yesterday)
}

func TestLongestStreak(t *testing.T) {
	dates := dateSet("2024-01-01", "2024-01-02", "2024-01-04", "2024-01-05", "2024-01-06", "bogus")
	assert.Equal(t, 3, LongestStreak(dates))
	assert.Zero(t, LongestStreak(nil))
}

// ============================================================
// Time-of-day buckets
// ============================================================

func TestBucketBoundaries(t *testing.T) {
	b := DefaultBounds()
	want := map[int]Bucket{
		0: Night, 4: Night, 5: Morning, 11: Morning, 12: Afternoon,
		16: Afternoon, 17: Evening, 20: Evening, 21: Night, 23: Night,
	}
	for h, bucket := range want {
		ts := time.Date(2024, 1, 1, h, 30, 0, 0, time.UTC)
		assert.Equal(t, bucket, b.Bucket(ts, time.UTC), "hour %d", h)
	}
}

func TestBucketOfUsesZone(t *testing.T) {
	ts := time.Date(2024, 6, 1, 7, 0, 0, 0, time.UTC)
	got, err := BucketOf(ts, "UTC")
	require.NoError(t, err)
	assert.Equal(t, Morning, got)

	got, err = BucketOf(ts, "America/Los_Angeles")
	require.NoError(t, err)
	assert.Equal(t, Night, got)

	_, err = BucketOf(ts, "Not/AZone")
	assert.ErrorIs(t, err, ErrUnknownTimezone)
}

func TestBucketBoundsValidate(t *testing.T) {
	assert.NoError(t, DefaultBounds().Validate())
	assert.Error(t, BucketBounds{MorningStart: 5, AfternoonStart: 5, EveningStart: 17, NightStart: 21}.Validate())
	assert.Error(t, BucketBounds{MorningStart: 5, AfternoonStart: 12, EveningStart: 17, NightStart: 24}.Validate())
}

func TestDistribution(t *testing.T) {
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	entries := []journal.Entry{
		entry("2024-01-01", day.Add(8*time.Hour), affect.HighPleasant, nil),
		entry("2024-01-01", day.Add(9*time.Hour), affect.HighPleasant, nil),
		entry("2024-01-01", day.Add(10*time.Hour), affect.LowUnpleasant, nil),
		entry("2024-01-01", day.Add(22*time.Hour), affect.LowPleasant, nil),
	}

	got := DefaultBounds().Distribution(entries, time.UTC)
	require.Len(t, got, 4)
	assert.Equal(t, []Bucket{Morning, Afternoon, Evening, Night},
		[]Bucket{got[0].Bucket, got[1].Bucket, got[2].Bucket, got[3].Bucket})

	morning := got[0]
	assert.Equal(t, 3, morning.Count)
	assert.InDelta(t, 66.666, morning.Percentages[affect.HighPleasant], 0.01)
	assert.InDelta(t, 33.333, morning.Percentages[affect.LowUnpleasant], 0.01)
	assert.InDelta(t, 100, sum(morning.Percentages), 1e-9)

	assert.False(t, got[1].HasData())
	assert.Nil(t, got[1].Percentages)
	assert.Nil(t, got[2].Percentages)

	assert.Equal(t, 1, got[3].Count)
	assert.Equal(t, 100.0, got[3].Percentages[affect.LowPleasant])
}

func TestDistributionEmpty(t *testing.T) {
	got := DefaultBounds().Distribution(nil, time.UTC)
	require.Len(t, got, 4)
	for _, s := range got {
		assert.Zero(t, s.Count)
		assert.Nil(t, s.Percentages)
	}
}

// ============================================================
// Context correlation
// ============================================================

func TestCorrelateScenarioC(t *testing.T) {
	work := &journal.Context{What: "Work"}
	gym := &journal.Context{What: "Gym"}
	entries := []journal.Entry{
		onDate("2024-01-01", affect.HighPleasant, work),
		onDate("2024-01-02", affect.HighUnpleasant, work),
		onDate("2024-01-03", affect.HighPleasant, work),
		onDate("2024-01-04", affect.LowPleasant, gym),
		onDate("2024-01-05", affect.HighPleasant, gym),
		onDate("2024-01-06", affect.HighPleasant, nil),
	}

	stats, err := Correlate(entries, FieldWhat)
	require.NoError(t, err)
	require.Len(t, stats, 2)

	assert.Equal(t, "Work", stats[0].Value)
	assert.Equal(t, 3, stats[0].Count)
	assert.Equal(t, affect.HighPleasant, stats[0].Dominant)
	assert.Equal(t, 2, stats[0].Quadrants[affect.HighPleasant])
	assert.InDelta(t, 100, sum(stats[0].Percentages), 1e-9)

	assert.Equal(t, "Gym", stats[1].Value)
	assert.Equal(t, 2, stats[1].Count)
	assert.Equal(t, 1.0, stats[1].PleasantShare())

	assert.Empty(t, Insights(entries, DefaultInsightRules()))
}

func TestCorrelateDominantTieBreak(t *testing.T) {
	friends := &journal.Context{Who: "Friends"}
	entries := []journal.Entry{
		onDate("2024-01-01", affect.LowPleasant, friends),
		onDate("2024-01-02", affect.LowUnpleasant, friends),
		onDate("2024-01-03", affect.HighUnpleasant, friends),
	}
	stats, err := Correlate(entries, FieldWho)
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, affect.HighUnpleasant, stats[0].Dominant)
}

func TestCorrelateOrderAndMissingValues(t *testing.T) {
	entries := []journal.Entry{
		onDate("2024-01-01", affect.HighPleasant, &journal.Context{PhysicalActivity: "Yoga"}),
		onDate("2024-01-02", affect.HighPleasant, &journal.Context{PhysicalActivity: "Run"}),
		onDate("2024-01-03", affect.HighPleasant, &journal.Context{PhysicalActivity: "Run"}),
		onDate("2024-01-04", affect.HighPleasant, &journal.Context{PhysicalActivity: "Swim"}),
		onDate("2024-01-05", affect.HighPleasant, &journal.Context{PhysicalActivity: "  "}),
		onDate("2024-01-06", affect.HighPleasant, &journal.Context{Who: "Alone"}),
	}
	stats, err := Correlate(entries, FieldPhysicalActivity)
	require.NoError(t, err)

	var values []string
	for _, s := range stats {
		values = append(values, s.Value)
	}
	assert.Equal(t, []string{"Run", "Yoga", "Swim"}, values)
}

func TestCorrelateSleepBuckets(t *testing.T) {
	entries := []journal.Entry{
		onDate("2024-01-01", affect.LowUnpleasant, &journal.Context{SleepHours: hours(5)}),
		onDate("2024-01-02", affect.LowPleasant, &journal.Context{SleepHours: hours(7.5)}),
		onDate("2024-01-03", affect.HighPleasant, &journal.Context{SleepHours: hours(8)}),
		onDate("2024-01-04", affect.HighPleasant, &journal.Context{SleepHours: hours(6)}),
	}
	stats, err := Correlate(entries, FieldSleepHours)
	require.NoError(t, err)
	require.Len(t, stats, 3)
	assert.Equal(t, SleepNormal, stats[0].Value)
	assert.Equal(t, 2, stats[0].Count)
}

func TestCorrelateEmptyAndUnknownField(t *testing.T) {
	stats, err := Correlate(nil, FieldWho)
	require.NoError(t, err)
	assert.Empty(t, stats)

	_, err = Correlate(nil, Field("mood"))
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestParseField(t *testing.T) {
	for in, want := range map[string]Field{
		"who": FieldWho, "WHAT": FieldWhat, "sleep_hours": FieldSleepHours,
		"sleepHours": FieldSleepHours, "physical-activity": FieldPhysicalActivity, "activity": FieldPhysicalActivity,
	} {
		got, err := ParseField(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	_, err := ParseField("weather")
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestCorrelateAcceptsFieldAliases(t *testing.T) {
	walk := &journal.Context{PhysicalActivity: "Walking", SleepHours: hours(7)}
	entries := []journal.Entry{
		onDate("2024-01-01", affect.HighPleasant, walk),
		onDate("2024-01-02", affect.LowPleasant, walk),
	}
	for _, alias := range []string{"activity", "physical_activity", "physical-activity", "sleep", "sleep_hours"} {
		t.Run(alias, func(t *testing.T) {
			stats, err := Correlate(entries, Field(alias))
			require.NoError(t, err)
			require.Len(t, stats, 1)
			assert.Equal(t, 2, stats[0].Count)
		})
	}
}

func TestCorrelateFoldsCase(t *testing.T) {
	entries := []journal.Entry{
		onDate("2024-01-01", affect.HighPleasant, &journal.Context{Who: "Team"}),
		onDate("2024-01-02", affect.LowPleasant, &journal.Context{Who: "team"}),
		onDate("2024-01-03", affect.HighPleasant, &journal.Context{Who: "TEAM "}),
	}
	stats, err := Correlate(entries, FieldWho)
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, "Team", stats[0].Value)
	assert.Equal(t, 3, stats[0].Count)
	assert.Contains(t, Insights(entries, DefaultInsightRules()), "You tend to feel good around Team")
}

func TestOrderTablesAreCopies(t *testing.T) {
	q := affect.Quadrants()
	q[0], q[3] = q[3], q[0]
	assert.Equal(t, affect.HighPleasant, affect.Quadrants()[0])

	b := Buckets()
	b[0] = Night
	assert.Equal(t, Morning, Buckets()[0])

	f := Fields()
	f[0] = FieldSleepHours
	assert.Equal(t, FieldWho, Fields()[0])
}

// ============================================================
// Insights
// ============================================================

func TestInsights(t *testing.T) {
	long := &journal.Context{SleepHours: hours(8.5), PhysicalActivity: "Walking", Who: "Family"}
	entries := []journal.Entry{
		onDate("2024-01-01", affect.LowPleasant, long),
		onDate("2024-01-02", affect.HighPleasant, long),
		onDate("2024-01-03", affect.HighUnpleasant, long),
		onDate("2024-01-04", affect.HighPleasant, &journal.Context{PhysicalActivity: "Cycling"}),
	}

	got := Insights(entries, DefaultInsightRules())
	assert.Equal(t, []string{
		"You felt calmer with 8h+ of sleep",
		"Walking often makes you feel good",
		"You tend to feel good around Family",
	}, got)
}

func TestInsightsGoodMoodThreshold(t *testing.T) {
	run := &journal.Context{PhysicalActivity: "Running"}
	entries := []journal.Entry{
		onDate("2024-01-01", affect.HighPleasant, run),
		onDate("2024-01-02", affect.HighUnpleasant, run),
	}
	// 50% pleasant is below the 60% threshold.
	assert.Empty(t, Insights(entries, DefaultInsightRules()))

	entries = append(entries, onDate("2024-01-03", affect.LowPleasant, run))
	assert.Equal(t, []string{"Running often makes you feel good"}, Insights(entries, DefaultInsightRules()))
}

func TestInsightsNeedTwoSamples(t *testing.T) {
	entries := []journal.Entry{
		onDate("2024-01-01", affect.HighPleasant, &journal.Context{PhysicalActivity: "Yoga", SleepHours: hours(9), Who: "Sam"}),
	}
	assert.Empty(t, Insights(entries, DefaultInsightRules()))
}

func TestInsightsCap(t *testing.T) {
	var entries []journal.Entry
	for i, act := range []string{"A", "B", "C", "D"} {
		c := &journal.Context{PhysicalActivity: act}
		entries = append(entries,
			onDate(fmt.Sprintf("2024-01-%02d", i+1), affect.HighPleasant, c),
			onDate(fmt.Sprintf("2024-01-%02d", i+10), affect.HighPleasant, c))
	}
	rules := DefaultInsightRules()
	got := Insights(entries, rules)
	assert.Equal(t, []string{
		"A often makes you feel good",
		"B often makes you feel good",
		"C often makes you feel good",
	}, got)

	rules.Max = 0
	assert.Len(t, Insights(entries, rules), 4)
}

// ============================================================
// Report
// ============================================================

func TestEngineReport(t *testing.T) {
	ctx := context.Background()
	store := journal.NewMemoryStore()

	walk := &journal.Context{PhysicalActivity: "Walking", What: "Work"}
	for _, e := range []journal.Entry{
		onDate("2024-01-03", affect.HighPleasant, walk),
		onDate("2024-01-04", affect.LowPleasant, walk),
		onDate("2024-01-05", affect.HighUnpleasant, nil),
		onDate("2024-01-05", affect.HighPleasant, walk),
	} {
		require.NoError(t, store.Add(ctx, e))
	}

	en, err := NewEngine(DefaultBounds(), DefaultInsightRules(), nil)
	require.NoError(t, err)

	now := time.Date(2024, 1, 5, 20, 0, 0, 0, time.UTC)
	rep, err := en.Report(ctx, store, journal.Filter{From: "2024-01-04"}, now, "UTC")
	require.NoError(t, err)

	assert.Equal(t, "2024-01-05", rep.Today)
	assert.Equal(t, 3, rep.Streak, "streak spans the full history")
	assert.Equal(t, 3, rep.LongestStreak)
	assert.Equal(t, 3, rep.Entries)
	assert.Equal(t, 2, rep.Days)
	require.Len(t, rep.TimeOfDay, 4)
	assert.Equal(t, 3, rep.TimeOfDay[1].Count)
	assert.Len(t, rep.Context, 4)
	assert.Equal(t, 2, rep.Context[FieldWhat][0].Count)
	assert.Equal(t, []string{"Walking often makes you feel good"}, rep.Insights)

	require.Len(t, rep.Quadrants, 3)
	assert.Equal(t, string(affect.HighPleasant), rep.Quadrants[0].Value)

	_, err = en.Report(ctx, store, journal.Filter{}, now, "Nowhere/City")
	assert.ErrorIs(t, err, ErrUnknownTimezone)
}

func TestNewEngineValidates(t *testing.T) {
	_, err := NewEngine(BucketBounds{}, DefaultInsightRules(), nil)
	assert.Error(t, err)

	rules := DefaultInsightRules()
	rules.GoodMoodRatio = 1.5
	_, err = NewEngine(DefaultBounds(), rules, nil)
	assert.Error(t, err)
}
