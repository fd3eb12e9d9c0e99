// Package analytics aggregates check-in entries into streaks, time-of-day
// distributions and context correlations. Every function is a pure reader
// over a snapshot of entries; callers pass "now" and the timezone explicitly.
package analytics

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ramanasai/moodpulse/internal/journal"
)

var (
	ErrInvalidDate     = errors.New("invalid calendar date")
	ErrUnknownTimezone = errors.New("unknown timezone")
)

// LoadLocation resolves an IANA zone name. There is no fallback: an empty or
// unknown name is an error.
func LoadLocation(tz string) (*time.Location, error) {
	name := strings.TrimSpace(tz)
	if name == "" {
		return nil, fmt.Errorf("%w: empty name", ErrUnknownTimezone)
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrUnknownTimezone, tz, err)
	}
	return loc, nil
}

// Today returns the calendar dates of now and the day before, in loc.
func Today(now time.Time, loc *time.Location) (today, yesterday string) {
	local := now.In(loc)
	y, m, d := local.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return day.Format(journal.DateLayout), day.AddDate(0, 0, -1).Format(journal.DateLayout)
}

// EntryDates collects the distinct entry dates. Several entries on one day
// collapse into a single member.
func EntryDates(entries []journal.Entry) map[string]struct{} {
	dates := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if e.EntryDate != "" {
			dates[e.EntryDate] = struct{}{}
		}
	}
	return dates
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(journal.DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}

// Streak counts consecutive days present in dates, walking backward from
// today when it is present, else from yesterday. A set holding neither has a
// streak of zero.
func Streak(dates map[string]struct{}, today, yesterday string) (int, error) {
	if _, err := parseDate(today); err != nil {
		return 0, err
	}
	if _, err := parseDate(yesterday); err != nil {
		return 0, err
	}

	start := today
	if _, ok := dates[today]; !ok {
		if _, ok := dates[yesterday]; !ok {
			return 0, nil
		}
		start = yesterday
	}

	day, _ := parseDate(start)
	streak := 0
	for {
		if _, ok := dates[day.Format(journal.DateLayout)]; !ok {
			return streak, nil
		}
		streak++
		day = day.AddDate(0, 0, -1)
	}
}

// CurrentStreak resolves tz and computes the streak as of now.
func CurrentStreak(entries []journal.Entry, now time.Time, tz string) (int, error) {
	loc, err := LoadLocation(tz)
	if err != nil {
		return 0, err
	}
	today, yesterday := Today(now, loc)
	return Streak(EntryDates(entries), today, yesterday)
}

// LongestStreak is the longest run of consecutive days anywhere in dates.
// Malformed dates are skipped.
func LongestStreak(dates map[string]struct{}) int {
	days := make([]time.Time, 0, len(dates))
	for d := range dates {
		t, err := parseDate(d)
		if err != nil {
			continue
		}
		days = append(days, t)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	longest, run := 0, 0
	for i, d := range days {
		if i > 0 && days[i-1].AddDate(0, 0, 1).Equal(d) {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}
