package cmd

import (
	"fmt"

	"github.com/abhisek/studycore/internal/review"
	"github.com/abhisek/studycore/internal/ui/theme"
	"github.com/spf13/cobra"
)

var practiceCmd = &cobra.Command{
	Use:   "practice <concept-id> <pass|fail>",
	Short: "Record a practice or review outcome for a concept",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		outcome, err := review.ParseOutcome(args[1])
		if err != nil {
			return err
		}

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		at, err := evalTime(cmd)
		if err != nil {
			return err
		}
		res, err := e.svc.RecordPractice(cmd.Context(), args[0], outcome, at)
		if err != nil {
			return err
		}

		result := theme.Good.Render("pass")
		if outcome == review.OutcomeFail {
			result = theme.Bad.Render("fail")
		}
		loc := e.svc.Location()
		fmt.Printf("%s: %s (event #%d)\n", res.Concept.ID, result, res.Event.Sequence)
		fmt.Printf("  success rate  %.1f%%\n", res.Concept.SuccessRate)
		fmt.Printf("  next review   %s (rung %d, every %d days)\n",
			res.Schedule.DueAt.In(loc).Format("Mon 2006-01-02 15:04"),
			res.Schedule.IntervalIndex+1,
			e.cfg.Ladder[res.Schedule.IntervalIndex])
		fmt.Printf("  streak        %d days (%s)\n", res.Streak.CurrentStreak, res.Transition)
		return nil
	},
}
