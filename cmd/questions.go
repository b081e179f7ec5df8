package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/phonassess/internal/questions"
)

var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "Inspect question sets",
}

var questionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the items of the active question set",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("questions")
		set, err := loadQuestions(path)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-4s  %-10s  %-9s  %-40s  %s\n", "#", "ID", "Section", "Question", "Answer")
		fmt.Fprintln(out, strings.Repeat("─", 80))
		for g := range set.Len() {
			q, _ := set.At(g)
			section := "main"
			if g < len(set.Examples) {
				section = "practice"
			}
			fmt.Fprintf(out, "%-4d  %-10s  %-9s  %-40s  %s\n", g+1, q.ItemID, section, q.Question, q.CorrectAnswer)
		}
		fmt.Fprintf(out, "\n%d practice, %d main\n", len(set.Examples), len(set.Main))
		return nil
	},
}

var questionsValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Validate a question set file against the schema",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		set, err := questions.Load(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d practice, %d main)\n", args[0], len(set.Examples), len(set.Main))
		return nil
	},
}

func init() {
	questionsCmd.AddCommand(questionsListCmd)
	questionsCmd.AddCommand(questionsValidateCmd)
}
