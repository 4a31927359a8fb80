package cmd

import (
	"fmt"
	"strings"

	"github.com/abhisek/studycore/internal/catalog"
	"github.com/abhisek/studycore/internal/ui/theme"
	"github.com/spf13/cobra"
)

var conceptCmd = &cobra.Command{
	Use:   "concept",
	Short: "Manage the concept catalog",
}

var conceptImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import concepts from a JSON or YAML catalog",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		concepts, err := catalog.LoadConcepts(args[0])
		if err != nil {
			return err
		}

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		created, err := e.svc.ImportConcepts(cmd.Context(), concepts)
		if err != nil {
			return fmt.Errorf("import concepts: %w", err)
		}
		fmt.Printf("Imported %d concepts (%d new).\n", len(concepts), created)
		return nil
	},
}

var conceptListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored concepts",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		concepts, err := e.svc.Concepts(cmd.Context())
		if err != nil {
			return err
		}
		if len(concepts) == 0 {
			fmt.Println("No concepts found. Import a catalog with: studycore concept import <file>")
			return nil
		}

		fmt.Printf("%-24s  %-30s  %-16s  %-12s  %6s  %s\n",
			"ID", "Name", "Category", "Tier", "Rate", "Last practiced")
		fmt.Println(strings.Repeat("─", 110))
		for _, c := range concepts {
			last := "never"
			if c.LastPracticedAt != nil {
				last = c.LastPracticedAt.In(e.svc.Location()).Format("2006-01-02 15:04")
			}
			fmt.Printf("%-24s  %-30s  %-16s  %-12s  %5.1f%%  %s\n",
				c.ID, truncate(c.Name, 30), truncate(c.Category, 16), c.Tier, c.SuccessRate, last)
		}
		fmt.Println(theme.Hint.Render(fmt.Sprintf("%d concepts", len(concepts))))
		return nil
	},
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}

func init() {
	conceptCmd.AddCommand(conceptImportCmd)
	conceptCmd.AddCommand(conceptListCmd)
}
