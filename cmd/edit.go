package cmd

import (
	"errors"
	"fmt"

	"github.com/ramanasai/moodpulse/internal/affect"
	"github.com/ramanasai/moodpulse/internal/journal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newEditCmd(a *app) *cobra.Command {
	var (
		emotion, note string
		clearContext  bool
		c             journal.Context
		sleep         float64
	)

	cmd := &cobra.Command{
		Use:   "edit <entry-id>",
		Short: "Edit an existing check-in",
		Long: `The entry keeps its original date; only the word, note and context change.
Changing the word moves the entry to that word's quadrant.

Examples:
	moodpulse edit 0b7c6f1e-... --emotion content
	moodpulse edit 0b7c6f1e-... --note "better after lunch" --who team`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			contextChanged := flags.Changed("who") || flags.Changed("what") || flags.Changed("body") ||
				flags.Changed("sleep") || flags.Changed("activity")
			if !flags.Changed("emotion") && !flags.Changed("note") && !contextChanged && !clearContext {
				return errors.New("nothing to update - specify at least one field to edit")
			}

			store, err := a.openStore()
			if err != nil {
				return err
			}
			entry, err := store.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			var p journal.Patch
			if flags.Changed("emotion") {
				ce, ok := a.space.Lookup(emotion)
				if !ok {
					return fmt.Errorf("%w: %q", affect.ErrUnknownEmotion, emotion)
				}
				p.Emotion, p.Quadrant = &ce.Emotion, &ce.Quadrant
			}
			if flags.Changed("note") {
				p.Note = &note
			}
			switch {
			case clearContext:
				p.Context = &journal.Context{}
			case contextChanged:
				merged := journal.Context{}
				if entry.Context != nil {
					merged = *entry.Context
				}
				if flags.Changed("who") {
					merged.Who = c.Who
				}
				if flags.Changed("what") {
					merged.What = c.What
				}
				if flags.Changed("body") {
					merged.Body = c.Body
				}
				if flags.Changed("activity") {
					merged.PhysicalActivity = c.PhysicalActivity
				}
				if flags.Changed("sleep") {
					if sleep < 0 || sleep > 24 {
						return fmt.Errorf("--sleep must be between 0 and 24 hours")
					}
					merged.SleepHours = &sleep
				}
				p.Context = &merged
			}

			updated := p.Apply(entry, a.clock.Now())
			if err := store.Update(cmd.Context(), updated); err != nil {
				return err
			}
			a.log.Info("check-in updated", zap.String("id", updated.ID))
			return a.print(fmt.Sprintf("Entry %s updated.\n", updated.ID))
		},
	}

	cmd.Flags().StringVar(&emotion, "emotion", "", "New emotion word")
	cmd.Flags().StringVarP(&note, "note", "n", "", "New note (empty clears it)")
	cmd.Flags().StringVar(&c.Who, "who", "", "Who you were with")
	cmd.Flags().StringVar(&c.What, "what", "", "What you were doing")
	cmd.Flags().StringVar(&c.Body, "body", "", "How your body felt")
	cmd.Flags().Float64Var(&sleep, "sleep", 0, "Hours slept")
	cmd.Flags().StringVar(&c.PhysicalActivity, "activity", "", "Physical activity")
	cmd.Flags().BoolVar(&clearContext, "clear-context", false, "Remove all context tags")
	a.registerContextCompletions(cmd)
	return cmd
}

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <entry-id>",
		Short: "Delete a check-in",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore()
			if err != nil {
				return err
			}
			if err := store.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			a.log.Info("check-in deleted", zap.String("id", args[0]))
			return a.print(fmt.Sprintf("Entry %s deleted.\n", args[0]))
		},
	}
}
