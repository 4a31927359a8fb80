package cmd

import (
	"fmt"

	"github.com/abhisek/studycore/internal/ui/components"
	"github.com/abhisek/studycore/internal/ui/theme"
	"github.com/spf13/cobra"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show tier, weak concepts, due reviews, missions, streak and next reminder",
	RunE: func(cmd *cobra.Command, args []string) error {
		missions, questions, err := loadCatalogs(cmd)
		if err != nil {
			return err
		}
		top, _ := cmd.Flags().GetInt("top")

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		at, err := evalTime(cmd)
		if err != nil {
			return err
		}
		d, err := e.svc.Dashboard(cmd.Context(), at, missions, questions)
		if err != nil {
			return err
		}

		fmt.Println(theme.Title.Render("studycore") + "  " + theme.Hint.Render(d.At.In(e.svc.Location()).Format("Mon 2006-01-02 15:04")))
		fmt.Println()

		tier := theme.Hint.Render("not assessed (novice)")
		if d.Assessed {
			tier = theme.Tier(d.Tier)
		}
		fmt.Printf("Tier    %s\n", tier)
		fmt.Println(components.NewProgressBar("Today", d.Progress, d.Routine.DailyGoal, 48).View())
		fmt.Println()

		fmt.Println(theme.Heading.Render("Weakest concepts"))
		if len(d.Weak) == 0 {
			fmt.Println(theme.Hint.Render("  none tracked"))
		}
		for i, a := range d.Weak {
			if top > 0 && i >= top {
				break
			}
			fmt.Printf("  %-24s  %s  %5.1f%%  %s\n",
				a.Concept.ID, pad(theme.Urgency(a.Urgency), 8), a.Concept.SuccessRate, formatDays(a.DaysSincePractice))
		}
		fmt.Println()

		fmt.Println(theme.Heading.Render(fmt.Sprintf("Due reviews (%d)", len(d.Due))))
		for i, s := range d.Due {
			if top > 0 && i >= top {
				break
			}
			fmt.Printf("  %-24s  rung %d\n", s.ConceptID, s.IntervalIndex+1)
		}
		fmt.Println()

		fmt.Println(theme.Heading.Render("Missions"))
		printMissions(d.Missions)
		fmt.Println()

		fmt.Println(theme.Heading.Render("Streak"))
		printStreak(d.Streak)
		fmt.Println()

		printNotice(d.Reminder)
		return nil
	},
}

func init() {
	addCatalogFlags(dashboardCmd)
	dashboardCmd.Flags().Int("top", 5, "Rows per section (0 = all)")
}
