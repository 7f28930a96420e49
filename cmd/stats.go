package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/golearn/internal/quiz"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, logToFile)
		if err != nil {
			return err
		}
		defer e.Close(cmd.Context())

		out := cmd.OutOrStdout()
		bank := e.svc.Bank()
		sum := quiz.Breakdown(bank, e.svc.State())

		fmt.Fprintf(out, "Overall progress: %.0f%%\n", sum.Percent)
		fmt.Fprintf(out, "Exercises:        %d/%d\n", sum.Score, sum.TotalExercises)
		fmt.Fprintf(out, "Challenges:       %d/%d\n", sum.ChallengeScore, sum.TotalChallenges)
		fmt.Fprintf(out, "Roadmap topics:   %d/%d\n", sum.RoadmapDone, sum.RoadmapTotal)
		for _, dc := range sum.ByDifficulty {
			fmt.Fprintf(out, "  %-14s  %d/%d\n", dc.Difficulty.Label(), dc.Completed, dc.Total)
		}

		if e.backend.Events == nil {
			return nil
		}
		stats, err := e.backend.Events.AnswerStats(cmd.Context())
		if err != nil {
			return fmt.Errorf("load answer stats: %w", err)
		}
		if len(stats) == 0 {
			return nil
		}

		fmt.Fprintln(out, "\nAnswer history:")
		for _, s := range stats {
			label := fmt.Sprintf("#%d", s.ExerciseIndex+1)
			if rec, err := bank.Exercise(s.ExerciseIndex); err == nil {
				label += "  " + firstLine(rec.Prompt)
			}
			fmt.Fprintf(out, "  %3d attempts  %3.0f%% correct  %s\n", s.Attempts, s.Accuracy()*100, label)
		}
		return nil
	},
}
