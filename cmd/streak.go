package cmd

import (
	"errors"
	"fmt"

	"github.com/abhisek/studycore/internal/errs"
	"github.com/abhisek/studycore/internal/engine"
	"github.com/abhisek/studycore/internal/reminder"
	"github.com/abhisek/studycore/internal/ui/theme"
	"github.com/spf13/cobra"
)

var streakCmd = &cobra.Command{
	Use:   "streak",
	Short: "Track daily study streaks",
}

var streakRecordCmd = &cobra.Command{
	Use:   "record",
	Short: "Record study activity for today (or --now)",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		at, err := evalTime(cmd)
		if err != nil {
			return err
		}
		st, tr, err := e.svc.RecordActivity(cmd.Context(), at)
		if errors.Is(err, errs.ErrOrderingViolation) {
			return fmt.Errorf("%w: activity can only be recorded on or after the last active day", err)
		}
		if err != nil {
			return err
		}
		fmt.Printf("Streak: %d days (%s). Longest %d, %d active days total.\n",
			st.CurrentStreak, tr, st.LongestStreak, st.TotalActiveDays)
		return nil
	},
}

var streakShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current streak",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		at, err := evalTime(cmd)
		if err != nil {
			return err
		}
		view, err := e.svc.Streak(cmd.Context(), at)
		if err != nil {
			return err
		}
		printStreak(view)
		return nil
	},
}

func printStreak(v engine.StreakView) {
	fmt.Printf("Current streak  %s\n", theme.Title.Render(fmt.Sprintf("%d days", v.Current)))
	fmt.Printf("Longest streak  %d days\n", v.State.LongestStreak)
	fmt.Printf("Active days     %d\n", v.State.TotalActiveDays)
	if v.State.LastActiveDate != nil {
		fmt.Printf("Last active     %s\n", v.State.LastActiveDate)
	}
	switch {
	case v.AtRisk:
		fmt.Println(theme.Bad.Render("Study today to keep the streak alive."))
	case v.Current > 0:
		fmt.Println(theme.Hint.Render(fmt.Sprintf("Next milestone: %d days", reminder.NextStreakMilestone(v.Current))))
	}
}

func init() {
	streakCmd.AddCommand(streakRecordCmd)
	streakCmd.AddCommand(streakShowCmd)
}
