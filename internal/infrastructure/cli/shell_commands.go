package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

const msgNoHistoryRecorded = "No commands entered yet."

func newFindCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "find KEYWORD...",
		Short: "Show persons whose name has a KEYWORD as a word or who carry it as a tag",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := rt.container.Session.Find(args)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, res.Feedback)
			return RenderPersons(out, rt.container.Model.FilteredPersons())
		},
	}
}

func newSortCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "sort [PREFIX...]",
		Short: "Sort by n (name), p (phone), e (email), a (address), t (tags); no prefix restores insertion order",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := rt.container.Session.Sort(args)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, res.Feedback)
			return RenderPersons(out, rt.container.Model.FilteredPersons())
		},
	}
}

func newUndoCommand(rt *runtime, undo bool) *cobra.Command {
	use, short := "undo", "Revert the last change to the address book or filter"
	if !undo {
		use, short = "redo", "Reapply the last undone change"
	}
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := rt.container.Session
			run := svc.Undo
			if !undo {
				run = svc.Redo
			}
			res, err := run(cmd.Context())
			return printResult(cmd, res, err)
		},
	}
}

func newHistoryCommand(rt *runtime) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show commands entered in this session, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			inputs := rt.container.Session.History()
			if len(inputs) == 0 {
				fmt.Fprintln(out, msgNoHistoryRecorded)
				return nil
			}
			if limit > 0 && limit < len(inputs) {
				inputs = inputs[:limit]
			}
			for i, input := range inputs {
				fmt.Fprintf(out, "%3d  %s\n", i+1, input)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Max entries to show (0 shows all)")
	return cmd
}

func newStatsCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show model counters for this session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rt.container.Metrics.WriteSummary(cmd.OutOrStdout())
		},
	}
}
