package cmd

import (
	"fmt"
	"strings"

	"github.com/abhisek/studycore/internal/catalog"
	"github.com/abhisek/studycore/internal/mission"
	"github.com/abhisek/studycore/internal/proficiency"
	"github.com/abhisek/studycore/internal/ui/theme"
	"github.com/spf13/cobra"
)

var missionsCmd = &cobra.Command{
	Use:   "missions",
	Short: "Recommend missions for the learner's tier and weak concepts",
	RunE: func(cmd *cobra.Command, args []string) error {
		missions, questions, err := loadCatalogs(cmd)
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
		q, err := e.svc.Missions(cmd.Context(), at, missions, questions)
		if err != nil {
			return err
		}
		printMissions(q)
		return nil
	},
}

// loadCatalogs reads the --missions and optional --questions files.
func loadCatalogs(cmd *cobra.Command) ([]mission.Mission, []proficiency.Question, error) {
	mPath, _ := cmd.Flags().GetString("missions")
	qPath, _ := cmd.Flags().GetString("questions")

	var (
		missions  []mission.Mission
		questions []proficiency.Question
		err       error
	)
	if mPath != "" {
		if missions, err = catalog.LoadMissions(mPath); err != nil {
			return nil, nil, err
		}
	}
	if qPath != "" {
		if questions, err = catalog.LoadQuestions(qPath); err != nil {
			return nil, nil, err
		}
	}
	return missions, questions, nil
}

func printMissions(q mission.Queue) {
	if len(q.Missions) == 0 {
		fmt.Println("No missions match the current tier.")
		return
	}
	fmt.Printf("%-4s  %-20s  %-24s  %-36s  %s\n", "#", "ID", "Concept", "Title", "Min")
	fmt.Println(strings.Repeat("─", 95))
	for i, m := range q.Missions {
		fmt.Printf("%-4d  %-20s  %-24s  %-36s  %d\n",
			i+1, m.ID, m.ConceptID, truncate(m.Title, 36), m.EstimatedMinutes)
	}
	summary := fmt.Sprintf("%d missions, about %d minutes", len(q.Missions), mission.TotalMinutes(q.Missions))
	if q.Unranked > 0 {
		summary += fmt.Sprintf(" (%d for concepts not yet tracked)", q.Unranked)
	}
	fmt.Println(theme.Hint.Render(summary))
}

func addCatalogFlags(cmd *cobra.Command) {
	cmd.Flags().String("missions", "", "Mission catalog file, JSON or YAML")
	cmd.Flags().String("questions", "", "Question catalog used to rescore the latest assessment")
}

func init() {
	addCatalogFlags(missionsCmd)
	_ = missionsCmd.MarkFlagRequired("missions")
}
