package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/phonassess/internal/scoring"
)

var scoreCmd = &cobra.Command{
	Use:   "score <answer> <expected>",
	Short: "Score an answer against the expected text",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		r := scoring.Score(args[0], args[1])
		verdict := "incorrect"
		if r.Correct {
			verdict = "correct"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "similarity %.2f (distance %d, threshold %.2f): %s\n",
			r.Similarity, r.Distance, scoring.Threshold, verdict)
		return nil
	},
}
