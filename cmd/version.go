package cmd

import (
	"github.com/ramanasai/moodpulse/internal/version"
	"github.com/spf13/cobra"
)

func newVersionCmd(a *app) *cobra.Command {
	var short bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,

		// no config or database needed
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if short {
				return a.print(version.GetShortVersion() + "\n")
			}
			return a.print(version.GetVersionInfo() + "\n")
		},
	}
	cmd.Flags().BoolVar(&short, "short", false, "Only the version number")
	return cmd
}
