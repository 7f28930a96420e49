package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/golearn/internal/quiz"
	"github.com/abhisek/golearn/internal/session"
)

var challengeCmd = &cobra.Command{
	Use:   "challenge",
	Short: "List and submit coding challenges",
}

var challengeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List coding challenges",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, logToFile)
		if err != nil {
			return err
		}
		defer e.Close(cmd.Context())

		out := cmd.OutOrStdout()
		score := e.svc.State().ChallengeScore
		for i, c := range e.svc.Bank().Challenges() {
			mark := " "
			if i < score {
				mark = "✓"
			}
			fmt.Fprintf(out, "%s %d  %s\n", mark, i+1, c.Title)
			fmt.Fprintf(out, "     %s\n", c.Description)
		}
		return nil
	},
}

var challengeSubmitCmd = &cobra.Command{
	Use:   "submit <number>",
	Short: "Submit a solution from --file or standard input",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, logToFile)
		if err != nil {
			return err
		}
		defer e.Close(cmd.Context())

		idx, err := parseNumber(args[0], e.svc.Bank().ChallengeCount(), "challenge")
		if err != nil {
			return err
		}

		var code []byte
		if path, _ := cmd.Flags().GetString("file"); path != "" {
			code, err = os.ReadFile(path)
		} else {
			code, err = io.ReadAll(cmd.InOrStdin())
		}
		if err != nil {
			return fmt.Errorf("read solution: %w", err)
		}

		res, err := e.svc.Dispatch(cmd.Context(), session.SubmitChallenge{Challenge: idx, Code: string(code)})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if !res.ChallengeCounted {
			fmt.Fprintf(out, "Not recorded: a solution needs more than %d characters of code.\n", quiz.MinSubmissionLength)
			return nil
		}
		fmt.Fprintf(out, "Solution recorded. Challenges completed: %d/%d\n",
			res.State.ChallengeScore, e.svc.Bank().ChallengeCount())
		return nil
	},
}

func init() {
	challengeSubmitCmd.Flags().StringP("file", "f", "", "Read the solution from this file")

	challengeCmd.AddCommand(challengeListCmd)
	challengeCmd.AddCommand(challengeSubmitCmd)
}
