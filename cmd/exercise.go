package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/golearn/internal/exercise"
	"github.com/abhisek/golearn/internal/session"
)

var exerciseCmd = &cobra.Command{
	Use:     "exercise",
	Aliases: []string{"ex"},
	Short:   "List, show and answer exercises",
}

var exerciseListCmd = &cobra.Command{
	Use:   "list",
	Short: "List exercises",
	RunE: func(cmd *cobra.Command, args []string) error {
		diff, _ := cmd.Flags().GetString("difficulty")
		d, err := exercise.ParseDifficulty(diff)
		if err != nil {
			return err
		}

		e, err := openEnv(cmd, logToFile)
		if err != nil {
			return err
		}
		defer e.Close(cmd.Context())

		out := cmd.OutOrStdout()
		bank, st := e.svc.Bank(), e.svc.State()
		for _, i := range bank.FilterByDifficulty(d) {
			rec, _ := bank.Exercise(i)
			mark := " "
			if st.IsCompleted(i) {
				mark = "✓"
			}
			fmt.Fprintf(out, "%s %2d  %-12s  %s\n", mark, i+1, rec.Difficulty.Label(), firstLine(rec.Prompt))
		}
		return nil
	},
}

var exerciseShowCmd = &cobra.Command{
	Use:   "show <number>",
	Short: "Show an exercise and its options",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, logToFile)
		if err != nil {
			return err
		}
		defer e.Close(cmd.Context())

		idx, err := parseNumber(args[0], e.svc.Bank().Len(), "exercise")
		if err != nil {
			return err
		}
		rec, _ := e.svc.Bank().Exercise(idx)

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Exercise %d (%s)\n\n%s\n", idx+1, rec.Difficulty.Label(), rec.Prompt)
		if rec.Snippet != "" {
			fmt.Fprintf(out, "\n%s\n", indent(strings.TrimRight(rec.Snippet, "\n"), "    "))
		}
		fmt.Fprintln(out)
		for i, opt := range rec.Options {
			fmt.Fprintf(out, "  %c) %s\n", 'A'+i, opt)
		}
		if e.svc.State().IsCompleted(idx) {
			fmt.Fprintf(out, "\nCompleted. Answer: %s\n", rec.CorrectOption())
		}
		return nil
	},
}

var exerciseAnswerCmd = &cobra.Command{
	Use:   "answer <number> <option>",
	Short: "Answer an exercise (option as a letter A-D or a number 1-4)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, logToFile)
		if err != nil {
			return err
		}
		defer e.Close(cmd.Context())

		idx, err := parseNumber(args[0], e.svc.Bank().Len(), "exercise")
		if err != nil {
			return err
		}
		opt, err := parseOption(args[1])
		if err != nil {
			return err
		}
		res, err := e.svc.Dispatch(cmd.Context(), session.Answer{Exercise: idx, Option: opt})
		if err != nil {
			switch {
			case errors.Is(err, exercise.ErrOptionOutOfRange):
				return fmt.Errorf("option %s is not offered by exercise %d", args[1], idx+1)
			case errors.Is(err, session.ErrLocked):
				return fmt.Errorf("exercise %d is already completed", idx+1)
			}
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, res.Feedback.Message)
		fmt.Fprintf(out, "Score: %d/%d\n", res.State.Score, e.svc.Bank().Len())
		return nil
	},
}

func init() {
	exerciseListCmd.Flags().String("difficulty", "all", "Filter: all, beginner, intermediate or advanced")

	exerciseCmd.AddCommand(exerciseListCmd)
	exerciseCmd.AddCommand(exerciseShowCmd)
	exerciseCmd.AddCommand(exerciseAnswerCmd)
}

// parseNumber converts a 1-based number from the command line into a
// 0-based index below n.
func parseNumber(arg string, n int, what string) (int, error) {
	v, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid %s number %q", what, arg)
	}
	if v < 1 || v > n {
		return 0, fmt.Errorf("%s number %d out of range 1-%d", what, v, n)
	}
	return v - 1, nil
}

// parseOption accepts "A"-"D" (any case) or "1"-"4".
func parseOption(arg string) (int, error) {
	if len(arg) == 1 {
		c := arg[0]
		switch {
		case c >= 'a' && c <= 'd':
			return int(c - 'a'), nil
		case c >= 'A' && c <= 'D':
			return int(c - 'A'), nil
		case c >= '1' && c <= '4':
			return int(c - '1'), nil
		}
	}
	return 0, fmt.Errorf("invalid option %q: use A-D or 1-4", arg)
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func indent(s, prefix string) string {
	return prefix + strings.ReplaceAll(s, "\n", "\n"+prefix)
}
