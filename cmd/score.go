package cmd

import (
	"fmt"

	"github.com/abhisek/studycore/internal/catalog"
	"github.com/abhisek/studycore/internal/proficiency"
	"github.com/abhisek/studycore/internal/ui/theme"
	"github.com/spf13/cobra"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score an assessment attempt and report the proficiency tier",
	RunE: func(cmd *cobra.Command, args []string) error {
		qPath, _ := cmd.Flags().GetString("questions")
		rPath, _ := cmd.Flags().GetString("responses")
		save, _ := cmd.Flags().GetBool("save")

		questions, err := catalog.LoadQuestions(qPath)
		if err != nil {
			return err
		}
		responses, err := catalog.LoadResponses(rPath)
		if err != nil {
			return err
		}

		if !save {
			res, err := proficiency.Score(responses, questions)
			if err != nil {
				return err
			}
			printScore(res.Percentage, res.Tier, res.Ignored)
			return nil
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
		a, err := e.svc.SubmitAssessment(cmd.Context(), responses, questions, at)
		if err != nil {
			return err
		}
		printScore(a.Percentage, a.Tier, a.Ignored)
		fmt.Println(theme.Hint.Render("saved attempt " + a.ID))
		return nil
	},
}

func printScore(pct float64, tier proficiency.Tier, ignored []string) {
	fmt.Printf("Score: %.2f%%\n", pct)
	fmt.Printf("Tier:  %s\n", theme.Tier(tier))
	for _, id := range ignored {
		fmt.Println(theme.Hint.Render(fmt.Sprintf("ignored response to unknown question %q", id)))
	}
}

func init() {
	scoreCmd.Flags().String("questions", "", "Question catalog file, JSON or YAML (required)")
	scoreCmd.Flags().String("responses", "", "Responses file, JSON or YAML (required)")
	scoreCmd.Flags().Bool("save", false, "Store the attempt as the learner's latest assessment")
	_ = scoreCmd.MarkFlagRequired("questions")
	_ = scoreCmd.MarkFlagRequired("responses")
}
