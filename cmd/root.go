package cmd

import (
	"github.com/abhisek/studycore/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "studycore",
	Short: "Adaptive proficiency and review scheduling",
	Long: `studycore scores placement assessments, ranks weak concepts, schedules
spaced reviews, recommends missions, tracks study streaks and plans reminders.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides STUDYCORE_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().String("now", "", "Evaluate as of this RFC 3339 instant instead of the current time")

	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(conceptCmd)
	rootCmd.AddCommand(practiceCmd)
	rootCmd.AddCommand(weakCmd)
	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(missionsCmd)
	rootCmd.AddCommand(streakCmd)
	rootCmd.AddCommand(routineCmd)
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then the configured path, then STUDYCORE_DB and the default XDG path.
func resolveDBPath(cmd *cobra.Command, configured string) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if configured != "" {
		return configured, store.EnsureDir(configured)
	}
	return store.DefaultDBPath()
}
