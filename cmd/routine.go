package cmd

import (
	"fmt"

	"github.com/abhisek/studycore/internal/reminder"
	"github.com/abhisek/studycore/internal/ui/theme"
	"github.com/spf13/cobra"
)

var routineCmd = &cobra.Command{
	Use:   "routine",
	Short: "Configure the daily study routine and reminders",
}

var routineSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update routine settings; unset flags keep their stored value",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := cmd.Context()
		s, err := e.svc.Routine(ctx)
		if err != nil {
			return err
		}

		flags := cmd.Flags()
		if flags.Changed("goal") {
			s.DailyGoal, _ = flags.GetInt("goal")
		}
		if flags.Changed("time") {
			v, _ := flags.GetString("time")
			if s.ReminderTime, err = reminder.ParseClock(v); err != nil {
				return err
			}
		}
		if flags.Changed("enabled") {
			s.Enabled, _ = flags.GetBool("enabled")
		}
		if flags.Changed("duration") {
			s.StudyDurationMinutes, _ = flags.GetInt("duration")
		}

		if err := e.svc.UpdateRoutine(ctx, s); err != nil {
			return err
		}
		printRoutine(s)
		return nil
	},
}

var routineShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show routine settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		s, err := e.svc.Routine(cmd.Context())
		if err != nil {
			return err
		}
		printRoutine(s)
		return nil
	},
}

var routineNextCmd = &cobra.Command{
	Use:   "next",
	Short: "Show when the next reminder fires and what it will say",
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
		n, err := e.svc.NextReminder(cmd.Context(), at)
		if err != nil {
			return err
		}
		printNotice(n)
		return nil
	},
}

func printRoutine(s reminder.Settings) {
	state := theme.Good.Render("on")
	if !s.Enabled {
		state = theme.Bad.Render("off")
	}
	fmt.Printf("Daily goal      %d\n", s.DailyGoal)
	fmt.Printf("Reminder        %s (%s)\n", s.ReminderTime, state)
	fmt.Printf("Study duration  %d min\n", s.StudyDurationMinutes)
}

func printNotice(n *reminder.Notice) {
	if n == nil {
		fmt.Println("Reminders are off.")
		return
	}
	fmt.Printf("Next reminder   %s\n", n.At.Format("Mon 2006-01-02 15:04 MST"))
	fmt.Printf("Message         %s\n", theme.Body.Render(n.Message))
	fmt.Println(theme.Hint.Render(string(n.Kind)))
}

func init() {
	routineSetCmd.Flags().Int("goal", 0, "Daily goal in practice sessions")
	routineSetCmd.Flags().String("time", "", "Reminder time of day, HH:MM (24h)")
	routineSetCmd.Flags().Bool("enabled", true, "Turn reminders on or off")
	routineSetCmd.Flags().Int("duration", 0, "Planned study minutes per day")

	routineCmd.AddCommand(routineSetCmd)
	routineCmd.AddCommand(routineShowCmd)
	routineCmd.AddCommand(routineNextCmd)
}
