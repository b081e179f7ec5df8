package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/phonassess/internal/flow"
	"github.com/abhisek/phonassess/internal/session"
	"github.com/abhisek/phonassess/internal/transcribe"
)

var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Run the assessment as a plain line-based prompt",
	Long: `Run the assessment without the full-screen UI.

Type the child's answer, or "@path" to transcribe a recording. Commands:
  :n       next item
  :p       previous item
  :g N     go to item N (1-based, practice items first)
  :q       quit and show the result`,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()
		return runConsole(cmd.Context(), e.newSession(), cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

// runConsole drives sess from line input until the result phase, the
// input ends, or the operator quits.
func runConsole(ctx context.Context, sess *session.Session, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)

	sess.Start()
	fmt.Fprintln(out, "── 연습 문제 안내 ──")
	for _, line := range session.Instructions {
		fmt.Fprintln(out, line)
	}
	fmt.Fprint(out, "\nEnter를 누르면 시작합니다.")
	if !scanner.Scan() {
		return scanner.Err()
	}
	sess.Start()

	for sess.Phase().Asking() {
		q, _ := sess.Current()
		fmt.Fprintf(out, "\n── %s (%d/%d) ──\n%s\n답> ",
			sess.Title(), sess.Flow().State().GlobalIndex+1, sess.Flow().Len(), q.Question)

		if !scanner.Scan() {
			fmt.Fprintln(out, "\n(입력 종료)")
			break
		}
		line := strings.TrimSpace(scanner.Text())

		if strings.HasPrefix(line, ":") {
			if quit := consoleCommand(sess, line, out); quit {
				break
			}
			continue
		}

		resp, err := consoleResponse(sess, line)
		if err != nil {
			fmt.Fprintf(out, "오류: %v\n", err)
			continue
		}
		outcome, err := sess.Respond(ctx, resp)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return err
			}
			fmt.Fprintf(out, "오류: %v\n", err)
			continue
		}

		switch outcome.Status {
		case session.StatusEmptyTranscript:
			fmt.Fprintln(out, "인식된 답변이 없습니다. 다시 말해 주세요.")
			continue
		case session.StatusNoRecording:
			fmt.Fprintln(out, "녹음된 답변이 없습니다.")
			continue
		}

		if outcome.Scored {
			mark := "\033[31m✗\033[0m"
			if outcome.Result.Correct {
				mark = "\033[32m✓\033[0m"
			}
			fmt.Fprintf(out, "%s %s\n", mark, outcome.Feedback())
		} else {
			fmt.Fprintln(out, "응답이 기록되었습니다.")
		}
		fmt.Fprintf(out, "인식된 답변: %s\n", outcome.Transcript)
		sess.Next()
	}

	printReport(out, session.BuildReport(sess))
	return nil
}

// consoleResponse turns an input line into a response. "@path" reads a
// recording; anything else is the transcript itself.
func consoleResponse(sess *session.Session, line string) (session.Response, error) {
	elapsed := sess.Elapsed()
	if !strings.HasPrefix(line, "@") {
		return session.Response{Text: line, Duration: elapsed}, nil
	}
	if !sess.CanTranscribe() {
		return session.Response{}, session.ErrNoTranscriber
	}
	req, err := transcribe.RequestFromFile(strings.TrimSpace(line[1:]), "")
	if err != nil {
		return session.Response{}, err
	}
	return session.Response{Audio: &req, Duration: elapsed}, nil
}

// consoleCommand handles a ":" command and reports whether to stop.
func consoleCommand(sess *session.Session, line string, out io.Writer) bool {
	fields := strings.Fields(line)
	g := sess.Flow().State().GlobalIndex
	switch fields[0] {
	case ":q":
		return true
	case ":n":
		sess.Next()
	case ":p":
		if !sess.Navigate(g - 1) {
			fmt.Fprintln(out, "첫 문항입니다.")
		}
	case ":g":
		if len(fields) != 2 {
			fmt.Fprintln(out, "사용법: :g N")
			return false
		}
		n, err := strconv.Atoi(fields[1])
		if err != nil || !sess.Navigate(n-1) {
			fmt.Fprintf(out, "1부터 %d 사이의 번호를 입력하세요.\n", sess.Flow().Len())
		}
	default:
		fmt.Fprintf(out, "알 수 없는 명령: %s\n", fields[0])
	}
	return false
}

func printReport(out io.Writer, r *session.Report) {
	fmt.Fprintln(out, "\n── 검사 결과 ──")
	for _, line := range r.Lines() {
		fmt.Fprintf(out, "%-8s %s\n", line.Label, line.Tally)
	}
	for _, a := range r.Answers {
		mark := "·"
		switch a.Verdict {
		case flow.VerdictCorrect:
			mark = "✓"
		case flow.VerdictIncorrect:
			mark = "✗"
		}
		fmt.Fprintf(out, "  %s %-8s %s\n", mark, a.QuestionID, a.AnswerText)
	}
}
