package cmd

import (
	"strings"

	"github.com/ramanasai/moodpulse/internal/analytics"
	"github.com/spf13/cobra"
)

func newValuesCmd(a *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:       "values <who|what|activity>",
		Short:     "Recently used context values, for reuse in check-ins",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"who", "what", "activity"},
		RunE: func(cmd *cobra.Command, args []string) error {
			field, err := analytics.ParseField(args[0])
			if err != nil {
				return err
			}
			store, err := a.openStore()
			if err != nil {
				return err
			}
			values, err := store.RecentValues(cmd.Context(), field, limit)
			if err != nil {
				return err
			}
			if len(values) == 0 {
				return nil
			}
			return a.print(strings.Join(values, "\n") + "\n")
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "l", 10, "Maximum values to show")
	return cmd
}
