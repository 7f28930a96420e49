package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/golearn/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent answers (sqlite backend only)",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, logToFile)
		if err != nil {
			return err
		}
		defer e.Close(cmd.Context())

		if e.backend.Events == nil {
			return fmt.Errorf("answer history is not recorded by the %s backend", e.backend.Name)
		}

		limit, _ := cmd.Flags().GetInt("limit")
		sessionID, _ := cmd.Flags().GetString("session")
		since, _ := cmd.Flags().GetDuration("since")

		opts := store.QueryOpts{Limit: limit, SessionID: sessionID}
		if since > 0 {
			opts.From = time.Now().Add(-since)
		}
		events, err := e.backend.Events.QueryAnswerEvents(cmd.Context(), opts)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(events) == 0 {
			fmt.Fprintln(out, "No answers recorded yet.")
			return nil
		}
		for _, ev := range events {
			result := "wrong"
			if ev.Correct {
				result = "right"
			}
			fmt.Fprintf(out, "%s  exercise %2d  option %c  %s  %s\n",
				ev.Timestamp.Local().Format(time.DateTime),
				ev.ExerciseIndex+1,
				'A'+ev.ChosenIndex,
				result,
				shortID(ev.SessionID))
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "Maximum number of answers to show (0 for all)")
	historyCmd.Flags().String("session", "", "Only show answers from this session id")
	historyCmd.Flags().Duration("since", 0, "Only show answers newer than this, e.g. 24h")
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
