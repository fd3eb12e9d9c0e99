package cmd

import (
	"fmt"
	"strings"

	"github.com/ramanasai/moodpulse/internal/affect"
	"github.com/ramanasai/moodpulse/internal/journal"
	"github.com/ramanasai/moodpulse/internal/utils"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newCheckinCmd(a *app) *cobra.Command {
	var (
		energy, pleasantness float64
		emotion, note, at    string
		format               string
		c                    journal.Context
		sleep                float64
	)

	cmd := &cobra.Command{
		Use:   "checkin [note]",
		Short: "Record how you feel right now",
		Long: `Examples:
	moodpulse checkin -e 80 -p 85                       # closest word is picked for you
	moodpulse checkin -e 20 -p 70 --emotion calm        # pick the word yourself
	moodpulse checkin -e 30 -p 20 --who family --sleep 5 "long day"
	moodpulse checkin -e 60 -p 60 --at 08:30            # earlier today`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("energy") || !cmd.Flags().Changed("pleasantness") {
				return fmt.Errorf("both --energy and --pleasantness are required")
			}
			if len(args) > 0 {
				if note != "" {
					return fmt.Errorf("give the note either as --note or as arguments, not both")
				}
				note = strings.Join(args, " ")
			}
			if cmd.Flags().Changed("sleep") {
				if sleep < 0 || sleep > 24 {
					return fmt.Errorf("--sleep must be between 0 and 24 hours")
				}
				c.SleepHours = &sleep
			}

			now := a.clock.Now()
			createdAt, err := utils.ParseCheckinTime(at, now, a.loc)
			if err != nil {
				return fmt.Errorf("invalid --at %q: %w", at, err)
			}

			sel, err := a.space.Resolve(affect.Coordinate{Energy: energy, Pleasantness: pleasantness}, emotion)
			if err != nil {
				return err
			}
			entry, err := journal.NewEntry(sel, note, &c, createdAt, a.loc)
			if err != nil {
				return err
			}

			store, err := a.openStore()
			if err != nil {
				return err
			}
			if err := store.Add(cmd.Context(), entry); err != nil {
				return err
			}
			a.log.Info("check-in saved",
				zap.String("id", entry.ID),
				zap.String("quadrant", string(entry.Quadrant)),
				zap.Bool("suggested", sel.Suggested),
			)

			r, err := a.renderer(format)
			if err != nil {
				return err
			}
			if strings.EqualFold(format, string(utils.FormatJSON)) {
				list := &utils.EntryList{Entries: []journal.Entry{entry}, Total: 1}
				out, err := r.RenderEntryList(list)
				if err != nil {
					return err
				}
				return a.print(out)
			}
			how := "you picked"
			if sel.Suggested {
				how = "closest match"
			}
			return a.print(fmt.Sprintf("Saved (%s).\n%s", how, r.RenderEntry(entry)))
		},
	}

	cmd.Flags().Float64VarP(&energy, "energy", "e", 0, "Energy 0-100 (required)")
	cmd.Flags().Float64VarP(&pleasantness, "pleasantness", "p", 0, "Pleasantness 0-100 (required)")
	cmd.Flags().StringVar(&emotion, "emotion", "", "Emotion word; default is the closest catalog word")
	cmd.Flags().StringVarP(&note, "note", "n", "", "Free-text note")
	cmd.Flags().StringVar(&c.Who, "who", "", "Who you were with")
	cmd.Flags().StringVar(&c.What, "what", "", "What you were doing")
	cmd.Flags().StringVar(&c.Body, "body", "", "How your body feels")
	cmd.Flags().Float64Var(&sleep, "sleep", 0, "Hours slept last night")
	cmd.Flags().StringVar(&c.PhysicalActivity, "activity", "", "Physical activity")
	cmd.Flags().StringVar(&at, "at", "", `When this happened: "HH:MM", "2h ago" or a date (default now)`)
	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: default|json")
	a.registerContextCompletions(cmd)
	return cmd
}
