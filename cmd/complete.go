package cmd

import (
	"context"
	"strings"

	"github.com/ramanasai/moodpulse/internal/analytics"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
)

// completionSource is where flag completions come from.
type completionSource int

const (
	sourceEmotions completionSource = iota
	sourceQuadrants
	sourceWho
	sourceWhat
	sourceActivity
)

const maxCompletions = 20

var sourceFields = map[completionSource]analytics.Field{
	sourceWho:      analytics.FieldWho,
	sourceWhat:     analytics.FieldWhat,
	sourceActivity: analytics.FieldPhysicalActivity,
}

// complete returns a cobra completion func for source. Completion runs
// without the root pre-run hook, so store-backed sources set up on their own.
func (a *app) complete(source completionSource) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		var candidates []string
		switch source {
		case sourceEmotions:
			for _, ce := range a.space.Catalog() {
				candidates = append(candidates, ce.Emotion+"\t"+string(ce.Quadrant))
			}
		case sourceQuadrants:
			for _, q := range a.space.Quadrants() {
				candidates = append(candidates, string(q.Quadrant)+"\t"+q.Label)
			}
		default:
			values, err := a.recentValues(cmd, sourceFields[source])
			if err != nil {
				return nil, cobra.ShellCompDirectiveError
			}
			candidates = values
		}
		return filterPrefix(candidates, toComplete, maxCompletions), cobra.ShellCompDirectiveNoFileComp
	}
}

func (a *app) recentValues(cmd *cobra.Command, f analytics.Field) ([]string, error) {
	if err := a.setup(); err != nil {
		return nil, err
	}
	defer a.close()
	store, err := a.openStore()
	if err != nil {
		return nil, err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return store.RecentValues(ctx, f, 50)
}

// filterPrefix keeps candidates whose value (before any tab description)
// starts with prefix, ignoring case.
func filterPrefix(candidates []string, prefix string, limit int) []string {
	fold := cases.Fold()
	needle := fold.String(strings.TrimSpace(prefix))
	out := []string{}
	for _, c := range candidates {
		value, _, _ := strings.Cut(c, "\t")
		if !strings.HasPrefix(fold.String(value), needle) {
			continue
		}
		out = append(out, c)
		if len(out) == limit {
			break
		}
	}
	return out
}

// registerContextCompletions wires completions for the context flags shared
// by checkin and edit.
func (a *app) registerContextCompletions(cmd *cobra.Command) {
	_ = cmd.RegisterFlagCompletionFunc("emotion", a.complete(sourceEmotions))
	_ = cmd.RegisterFlagCompletionFunc("who", a.complete(sourceWho))
	_ = cmd.RegisterFlagCompletionFunc("what", a.complete(sourceWhat))
	_ = cmd.RegisterFlagCompletionFunc("activity", a.complete(sourceActivity))
}
