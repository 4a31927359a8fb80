package cmd

import (
	"fmt"
	"math"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/abhisek/studycore/internal/ui/theme"
	"github.com/spf13/cobra"
)

var weakCmd = &cobra.Command{
	Use:   "weak",
	Short: "Rank concepts by how urgently they need practice",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		at, err := evalTime(cmd)
		if err != nil {
			return err
		}
		assessed, err := e.svc.Weak(cmd.Context(), at)
		if err != nil {
			return err
		}
		if len(assessed) == 0 {
			fmt.Println("No concepts found.")
			return nil
		}
		if limit > 0 && len(assessed) > limit {
			assessed = assessed[:limit]
		}

		fmt.Printf("%-4s  %-24s  %-30s  %-8s  %6s  %s\n", "#", "ID", "Name", "Urgency", "Rate", "Days idle")
		fmt.Println(strings.Repeat("─", 95))
		for i, a := range assessed {
			fmt.Printf("%-4d  %-24s  %-30s  %s  %5.1f%%  %s\n",
				i+1, a.Concept.ID, truncate(a.Concept.Name, 30),
				pad(theme.Urgency(a.Urgency), 8), a.Concept.SuccessRate, formatDays(a.DaysSincePractice))
		}
		return nil
	},
}

func formatDays(d float64) string {
	if math.IsInf(d, 1) {
		return "never"
	}
	return fmt.Sprintf("%.1f", d)
}

// pad right-pads a styled string to width visible cells.
func pad(s string, width int) string {
	if n := lipgloss.Width(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

func init() {
	weakCmd.Flags().Int("limit", 0, "Show at most this many concepts (0 = all)")
}
