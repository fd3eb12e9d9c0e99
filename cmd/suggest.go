package cmd

import (
	"fmt"
	"strings"

	"github.com/ramanasai/moodpulse/internal/affect"
	"github.com/spf13/cobra"
)

func newSuggestCmd(a *app) *cobra.Command {
	var (
		energy, pleasantness float64
		count                int
		all                  bool
		format               string
	)

	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "Show the emotion words closest to a point on the grid",
		Long: `By default only words from the point's own quadrant are ranked.

Examples:
	moodpulse suggest -e 80 -p 85
	moodpulse suggest -e 50 -p 50 -n 8 --all`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("count") {
				count = a.cfg.Suggest.Count
			}
			if count < 1 {
				return fmt.Errorf("--count must be positive")
			}
			c := affect.Coordinate{Energy: energy, Pleasantness: pleasantness}

			var (
				q       affect.Quadrant
				matches []affect.Match
				err     error
			)
			if all {
				if q, err = affect.Classify(c); err != nil {
					return err
				}
				matches, err = affect.Suggest(c, a.space.Catalog(), count)
			} else {
				q, matches, err = a.space.SuggestIn(c, count)
			}
			if err != nil {
				return err
			}

			r, err := a.renderer(format)
			if err != nil {
				return err
			}
			out, err := r.RenderMatches(c, q, matches)
			if err != nil {
				return err
			}
			return a.print(out)
		},
	}

	cmd.Flags().Float64VarP(&energy, "energy", "e", affect.Origin, "Energy 0-100")
	cmd.Flags().Float64VarP(&pleasantness, "pleasantness", "p", affect.Origin, "Pleasantness 0-100")
	cmd.Flags().IntVarP(&count, "count", "n", 4, "How many words to show (default suggest.count)")
	cmd.Flags().BoolVar(&all, "all", false, "Rank the whole catalog instead of one quadrant")
	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: default|json")
	return cmd
}

func newEmotionsCmd(a *app) *cobra.Command {
	var (
		quadrant string
		limit    int
		format   string
	)

	cmd := &cobra.Command{
		Use:   "emotions [query]",
		Short: "Browse or search the emotion catalog",
		Long: `Examples:
	moodpulse emotions                     # every word, grouped by quadrant
	moodpulse emotions ful                 # words containing "ful"
	moodpulse emotions --quadrant lp       # one quadrant: hp, hu, lu, lp or a color`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog := a.space.Catalog()
			if quadrant != "" {
				q, err := affect.ParseQuadrant(quadrant)
				if err != nil {
					return err
				}
				catalog = a.space.QuadrantCatalog(q)
			}

			list := catalog
			if query := strings.Join(args, " "); strings.TrimSpace(query) != "" {
				list = affect.Search(query, catalog, limit)
			} else if limit > 0 && len(list) > limit {
				list = list[:limit]
			}

			r, err := a.renderer(format)
			if err != nil {
				return err
			}
			out, err := r.RenderEmotions(list)
			if err != nil {
				return err
			}
			return a.print(out)
		},
	}

	cmd.Flags().StringVarP(&quadrant, "quadrant", "q", "", "Restrict to one quadrant")
	cmd.Flags().IntVarP(&limit, "limit", "l", 0, "Maximum words to show (0 = all)")
	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: default|json|quiet")
	_ = cmd.RegisterFlagCompletionFunc("quadrant", a.complete(sourceQuadrants))
	return cmd
}
