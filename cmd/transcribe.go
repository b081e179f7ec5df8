package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/phonassess/internal/scoring"
	"github.com/abhisek/phonassess/internal/session"
	"github.com/abhisek/phonassess/internal/transcribe"
)

var transcribeCmd = &cobra.Command{
	Use:   "transcribe <audio-file>",
	Short: "Transcribe a recording with the configured provider",
	Long: `Transcribe a recording and print the text. With --item the expected
answer of that item is sent as a hint and the transcript is scored.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()
		if e.transcriber == nil {
			return errors.New("transcription is disabled; set transcription.provider or an API key")
		}

		req, err := transcribe.RequestFromFile(args[0], e.cfg.Transcription.Language)
		if err != nil {
			return err
		}

		itemID, _ := cmd.Flags().GetString("item")
		if itemID == "" {
			resp, err := e.transcriber.Transcribe(cmd.Context(), req)
			if err != nil {
				return fmt.Errorf("transcribe: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), resp.Text)
			return nil
		}

		g, ok := e.set.IndexOf(itemID)
		if !ok {
			return fmt.Errorf("unknown item %q", itemID)
		}
		q, _ := e.set.At(g)
		text, err := e.newSession().Transcribe(cmd.Context(), q, req)
		if err != nil {
			return err
		}

		r := scoring.Score(text, q.CorrectAnswer)
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, text)
		fmt.Fprintf(out, "expected %q, similarity %.2f: ", q.CorrectAnswer, r.Similarity)
		if r.Correct {
			fmt.Fprintln(out, session.FeedbackCorrect)
		} else {
			fmt.Fprintln(out, session.FeedbackIncorrect)
		}
		return nil
	},
}

func init() {
	transcribeCmd.Flags().String("item", "", "Item ID whose expected answer is used as hint and for scoring")
}
