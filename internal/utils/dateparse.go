package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/ramanasai/moodpulse/internal/journal"
)

var (
	agoPattern   = regexp.MustCompile(`^(\d+)\s*(m|min|mins|minutes?|h|hours?|d|days?|w|weeks?)\s+ago$`)
	spanPattern  = regexp.MustCompile(`^(\d+)\s*(d|days?|w|weeks?|months?|y|years?)$`)
	clockPattern = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)
)

var dateFormats = []string{
	"2006-01-02",
	"2006/01/02",
	"Jan 2, 2006",
	"2 Jan 2006",
	"January 2, 2006",
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
	time.RFC3339,
	time.RFC3339Nano,
}

// ParseFlexibleDate parses absolute dates and relative phrases ("today",
// "yesterday", "last week", "3 days", "this month") against now in loc.
func ParseFlexibleDate(input string, now time.Time, loc *time.Location) (time.Time, error) {
	raw := strings.TrimSpace(input)
	input = strings.ToLower(raw)
	if input == "" {
		return time.Time{}, fmt.Errorf("empty date input")
	}
	now = now.In(loc)
	midnight := func(t time.Time) time.Time {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	}

	switch input {
	case "today":
		return midnight(now), nil
	case "yesterday":
		return midnight(now.AddDate(0, 0, -1)), nil
	case "now":
		return now, nil
	case "last week":
		return midnight(now.AddDate(0, 0, -7)), nil
	case "last month":
		return midnight(now.AddDate(0, -1, 0)), nil
	case "last year":
		return midnight(now.AddDate(-1, 0, 0)), nil
	case "this week":
		weekday := int(now.Weekday())
		if weekday == 0 {
			weekday = 7
		}
		return midnight(now.AddDate(0, 0, -(weekday - 1))), nil
	case "this month":
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc), nil
	case "this year":
		return time.Date(now.Year(), 1, 1, 0, 0, 0, 0, loc), nil
	}

	if m := spanPattern.FindStringSubmatch(input); m != nil {
		n, _ := strconv.Atoi(m[1])
		switch m[2][0] {
		case 'd':
			return midnight(now.AddDate(0, 0, -n)), nil
		case 'w':
			return midnight(now.AddDate(0, 0, -7*n)), nil
		case 'm':
			return midnight(now.AddDate(0, -n, 0)), nil
		case 'y':
			return midnight(now.AddDate(-n, 0, 0)), nil
		}
	}

	for _, format := range dateFormats {
		if t, err := time.ParseInLocation(format, raw, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse date: %s", input)
}

// ParseDateBound turns user input into a journal.DateLayout bound. Empty
// input stays empty.
func ParseDateBound(input string, now time.Time, loc *time.Location) (string, error) {
	if strings.TrimSpace(input) == "" {
		return "", nil
	}
	t, err := ParseFlexibleDate(input, now, loc)
	if err != nil {
		return "", err
	}
	return t.In(loc).Format(journal.DateLayout), nil
}

// ParseCheckinTime resolves the --at flag of a check-in: empty means now,
// "HH:MM" is today at that time, "N units ago" is relative, anything else
// goes through ParseFlexibleDate. Times in the future are rejected.
func ParseCheckinTime(input string, now time.Time, loc *time.Location) (time.Time, error) {
	raw := strings.TrimSpace(input)
	input = strings.ToLower(raw)
	if input == "" {
		return now, nil
	}
	local := now.In(loc)

	var t time.Time
	switch {
	case clockPattern.MatchString(input):
		m := clockPattern.FindStringSubmatch(input)
		h, _ := strconv.Atoi(m[1])
		mins, _ := strconv.Atoi(m[2])
		if h > 23 || mins > 59 {
			return time.Time{}, fmt.Errorf("invalid time of day: %s", input)
		}
		t = time.Date(local.Year(), local.Month(), local.Day(), h, mins, 0, 0, loc)
	case agoPattern.MatchString(input):
		m := agoPattern.FindStringSubmatch(input)
		n, _ := strconv.Atoi(m[1])
		var unit time.Duration
		switch m[2][0] {
		case 'm':
			unit = time.Minute
		case 'h':
			unit = time.Hour
		case 'd':
			unit = 24 * time.Hour
		case 'w':
			unit = 7 * 24 * time.Hour
		}
		t = now.Add(-time.Duration(n) * unit)
	default:
		var err error
		if t, err = ParseFlexibleDate(raw, now, loc); err != nil {
			return time.Time{}, err
		}
	}

	if t.After(now) {
		return time.Time{}, fmt.Errorf("check-in time %s is in the future", t.Format(time.RFC3339))
	}
	return t, nil
}

// DateRange returns inclusive entry-date bounds for a named preset.
func DateRange(preset string, now time.Time, loc *time.Location) (from, to string, err error) {
	now = now.In(loc)
	today := now.Format(journal.DateLayout)
	back := func(days int) string { return now.AddDate(0, 0, -days).Format(journal.DateLayout) }

	switch strings.ToLower(strings.TrimSpace(preset)) {
	case "", "all":
		return "", "", nil
	case "today":
		return today, today, nil
	case "yesterday":
		return back(1), back(1), nil
	case "week", "last7days", "last-7-days":
		return back(6), today, nil
	case "month", "last30days", "last-30-days":
		return back(29), today, nil
	case "last90days", "last-90-days":
		return back(89), today, nil
	case "year":
		return time.Date(now.Year(), 1, 1, 0, 0, 0, 0, loc).Format(journal.DateLayout), today, nil
	default:
		return "", "", fmt.Errorf("unknown date preset: %s", preset)
	}
}
