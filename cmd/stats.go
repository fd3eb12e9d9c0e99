package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/ramanasai/moodpulse/internal/analytics"
	"github.com/ramanasai/moodpulse/internal/journal"
	"github.com/spf13/cobra"
)

func newStatsCmd(a *app) *cobra.Command {
	var (
		dates  dateFlags
		fields []string
		format string
	)

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Streak, quadrant mix, time of day and context patterns",
		Long: `The streak always counts your full history; the date flags narrow the
distributions and insights.

Examples:
	moodpulse stats
	moodpulse stats --preset month --field sleep
	moodpulse stats --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := dates.filter(a)
			if err != nil {
				return err
			}
			var selected []analytics.Field
			for _, name := range fields {
				field, err := analytics.ParseField(name)
				if err != nil {
					return fmt.Errorf("%w (want one of %s)", err, fieldNames())
				}
				selected = append(selected, field)
			}

			store, err := a.openStore()
			if err != nil {
				return err
			}
			rep, err := a.engine.Report(cmd.Context(), store, f, a.clock.Now(), a.cfg.TimezoneName())
			if err != nil {
				return err
			}

			r, err := a.renderer(format)
			if err != nil {
				return err
			}
			out, err := r.RenderReport(rep, selected)
			if err != nil {
				return err
			}
			return a.print(out)
		},
	}

	dates.register(cmd)
	cmd.Flags().StringSliceVar(&fields, "field", nil, "Only show these context fields: who, what, sleep, activity")
	cmd.Flags().StringVarP(&format, "format", "f", "default", "Output format: default|json")
	return cmd
}

func fieldNames() string {
	fields := analytics.Fields()
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}

func newStreakCmd(a *app) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "streak",
		Short: "Consecutive days with at least one check-in",
		Long: `Shows the current and longest streak followed by one line per recent day,
one dot per check-in.

Examples:
	moodpulse streak
	moodpulse streak --days 14
	moodpulse streak --days 0       # streak only`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if days < 0 {
				return fmt.Errorf("--days must not be negative")
			}
			store, err := a.openStore()
			if err != nil {
				return err
			}
			list, err := store.Dates(cmd.Context())
			if err != nil {
				return err
			}
			dates := make(map[string]struct{}, len(list))
			for _, d := range list {
				dates[d] = struct{}{}
			}

			now := a.clock.Now().In(a.loc)
			today, yesterday := analytics.Today(now, a.loc)
			current, err := analytics.Streak(dates, today, yesterday)
			if err != nil {
				return err
			}

			var b strings.Builder
			fmt.Fprintf(&b, "Current streak: %d day%s (longest %d)\n", current, plural(current), analytics.LongestStreak(dates))
			if _, ok := dates[today]; !ok && current > 0 {
				b.WriteString("No check-in yet today. Check in to keep it going.\n")
			}
			if days > 0 {
				from := now.AddDate(0, 0, -(days - 1)).Format(journal.DateLayout)
				counts, err := store.CountsByDate(cmd.Context(), from, today)
				if err != nil {
					return err
				}
				b.WriteString(dayStrip(now, days, counts))
			}
			return a.print(b.String())
		},
	}

	cmd.Flags().IntVar(&days, "days", 7, "Recent days to show, oldest first (0 hides them)")
	return cmd
}

const maxDots = 10

// dayStrip renders the days up to now, one line each.
func dayStrip(now time.Time, days int, counts map[string]int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Last %d day%s:\n", days, plural(days))
	for i := days - 1; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		date := day.Format(journal.DateLayout)
		mark := "·"
		if n := counts[date]; n > 0 {
			mark = strings.Repeat("●", min(n, maxDots))
		}
		fmt.Fprintf(&b, "  %s %s  %s\n", date, day.Format("Mon"), mark)
	}
	return b.String()
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
