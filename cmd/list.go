package cmd

import (
	"fmt"

	"github.com/ramanasai/moodpulse/internal/journal"
	"github.com/ramanasai/moodpulse/internal/utils"
	"github.com/spf13/cobra"
)

// dateFlags are the --since/--until/--preset trio shared by list and stats.
type dateFlags struct {
	since, until, preset string
}

func (d *dateFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&d.since, "since", "", "Start date (supports: yesterday, 'last week', '3 days', 2025-01-15, etc.)")
	cmd.Flags().StringVar(&d.until, "until", "", "End date, inclusive")
	cmd.Flags().StringVar(&d.preset, "preset", "", "Date preset: today, yesterday, week, month, year, last7days, last30days, last90days, all")
}

// filter resolves the flags into entry-date bounds in the user's zone.
func (d *dateFlags) filter(a *app) (journal.Filter, error) {
	now := a.clock.Now()
	if d.preset != "" {
		if d.since != "" || d.until != "" {
			return journal.Filter{}, fmt.Errorf("--preset cannot be combined with --since/--until")
		}
		from, to, err := utils.DateRange(d.preset, now, a.loc)
		if err != nil {
			return journal.Filter{}, fmt.Errorf("invalid preset %q: %w", d.preset, err)
		}
		return journal.Filter{From: from, To: to}, nil
	}

	from, err := utils.ParseDateBound(d.since, now, a.loc)
	if err != nil {
		return journal.Filter{}, fmt.Errorf("invalid --since date %q: %w", d.since, err)
	}
	to, err := utils.ParseDateBound(d.until, now, a.loc)
	if err != nil {
		return journal.Filter{}, fmt.Errorf("invalid --until date %q: %w", d.until, err)
	}
	if from != "" && to != "" && from > to {
		return journal.Filter{}, fmt.Errorf("--since %s is after --until %s", from, to)
	}
	return journal.Filter{From: from, To: to}, nil
}

func newListCmd(a *app) *cobra.Command {
	var (
		dates  dateFlags
		limit  int
		page   string
		format string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List check-ins, newest first",
		Long: `Examples:
	moodpulse list                              # everything, 20 per page
	moodpulse list --since yesterday            # since yesterday
	moodpulse list --preset week                # last 7 days
	moodpulse list --format csv --limit 500     # export
	moodpulse list --page last`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := dates.filter(a)
			if err != nil {
				return err
			}
			if limit <= 0 || limit > 1000 {
				limit = 20
			}

			store, err := a.openStore()
			if err != nil {
				return err
			}
			total, err := store.Count(cmd.Context(), f)
			if err != nil {
				return err
			}

			totalPages := utils.NewPagination(total, limit, 1).TotalPages
			current, err := utils.ParsePage(page, totalPages)
			if err != nil {
				return err
			}
			pagination := utils.NewPagination(total, limit, current)

			entries, err := store.List(cmd.Context(), pagination.Apply(f))
			if err != nil {
				return err
			}

			list := &utils.EntryList{
				Entries:    entries,
				Total:      total,
				Page:       pagination.Current,
				PerPage:    pagination.PerPage,
				TotalPages: pagination.TotalPages,
			}
			if f.From != "" {
				list.Filters = map[string]string{"since": f.From}
			}
			if f.To != "" {
				if list.Filters == nil {
					list.Filters = map[string]string{}
				}
				list.Filters["until"] = f.To
			}

			r, err := a.renderer(format)
			if err != nil {
				return err
			}
			out, err := r.RenderEntryList(list)
			if err != nil {
				return err
			}
			return a.print(out)
		},
	}

	dates.register(cmd)
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum entries per page")
	cmd.Flags().StringVar(&page, "page", "1", "Page number, or first/last")
	cmd.Flags().StringVarP(&format, "format", "f", "default", "Output format: default, table, json, csv, compact, quiet")
	return cmd
}
