package main

import (
	"fmt"
	"time"

	"shiftbot/internal/bridge"
	"shiftbot/internal/roster"

	"github.com/spf13/cobra"
)

var plainOutput bool

var todayCmd = &cobra.Command{
	Use:     "today",
	Short:   "Show today's shifts",
	GroupID: "roster",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return showDay(cmd, 0)
	},
}

var tomorrowCmd = &cobra.Command{
	Use:     "tomorrow",
	Short:   "Show tomorrow's shifts",
	GroupID: "roster",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return showDay(cmd, 1)
	},
}

var activeCmd = &cobra.Command{
	Use:     "active",
	Short:   "Show who is on shift right now",
	GroupID: "roster",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		loader, err := newLoader(cmd)
		if err != nil {
			return err
		}
		sched, err := loader.Load(cmd.Context())
		if err != nil {
			return err
		}
		now := loader.Today()
		active := sched.ActiveAt(now)

		out := cmd.OutOrStdout()
		switch {
		case jsonOutput:
			return printJSON(out, recordViews(active))
		case plainOutput:
			fmt.Fprintln(out, bridge.FormatActive(active))
		case len(active) == 0:
			fmt.Fprintf(out, "Nobody is on shift at %s.\n", now.Format(time.DateTime))
		default:
			fmt.Fprintln(out, titleStyle.Render("On shift at "+now.Format(time.DateTime)))
			fmt.Fprintln(out, renderRecords(active))
		}
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{todayCmd, tomorrowCmd, activeCmd} {
		c.Flags().BoolVar(&plainOutput, "plain", false, "print the chat message text")
	}
}

// showDay prints the schedule offset days from today.
func showDay(cmd *cobra.Command, offset int) error {
	loader, err := newLoader(cmd)
	if err != nil {
		return err
	}
	sched, err := loader.Load(cmd.Context())
	if err != nil {
		return err
	}
	day := loader.Today().AddDate(0, 0, offset)
	records := sched.OnDate(day)
	label := roster.DateKey(day)

	out := cmd.OutOrStdout()
	switch {
	case jsonOutput:
		return printJSON(out, recordViews(records))
	case plainOutput:
		fmt.Fprintln(out, bridge.FormatSchedule(records, label))
	case len(records) == 0:
		fmt.Fprintf(out, "No shifts scheduled for %s.\n", label)
	default:
		fmt.Fprintln(out, titleStyle.Render("Shifts for "+label))
		fmt.Fprintln(out, renderRecords(records))
	}
	return nil
}
