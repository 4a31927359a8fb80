package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Inspect spaced review schedules",
}

var reviewDueCmd = &cobra.Command{
	Use:   "due",
	Short: "List reviews due now, weakest concept first",
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
		due, err := e.svc.DueReviews(cmd.Context(), at)
		if err != nil {
			return err
		}
		if len(due) == 0 {
			fmt.Println("Nothing due. Come back later.")
			return nil
		}

		loc := e.svc.Location()
		fmt.Printf("%-24s  %-4s  %-16s  %s\n", "Concept", "Rung", "Due", "Overdue (days)")
		fmt.Println(strings.Repeat("─", 64))
		for _, s := range due {
			fmt.Printf("%-24s  %-4d  %-16s  %.1f\n",
				s.ConceptID, s.IntervalIndex+1, s.DueAt.In(loc).Format("2006-01-02 15:04"), s.OverdueDays(at))
		}
		fmt.Printf("\n%d due\n", len(due))
		return nil
	},
}

func init() {
	reviewCmd.AddCommand(reviewDueCmd)
}
