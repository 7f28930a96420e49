package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/golearn/internal/quiz"
	"github.com/abhisek/golearn/internal/session"
)

var roadmapCmd = &cobra.Command{
	Use:   "roadmap",
	Short: "Show and update the learning roadmap",
}

var roadmapListCmd = &cobra.Command{
	Use:   "list",
	Short: "List roadmap topics",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, logToFile)
		if err != nil {
			return err
		}
		defer e.Close(cmd.Context())

		out := cmd.OutOrStdout()
		st := e.svc.State()
		for _, t := range quiz.DefaultTopics {
			fmt.Fprintf(out, "%s %-16s %s\n", checkbox(st.IsTopicDone(t.ID)), t.ID, t.Title)
		}
		for _, id := range st.RoadmapList() {
			if _, ok := quiz.FindTopic(id); !ok {
				fmt.Fprintf(out, "%s %-16s (custom)\n", checkbox(true), id)
			}
		}
		return nil
	},
}

var roadmapToggleCmd = &cobra.Command{
	Use:   "toggle <topic-id>",
	Short: "Mark a topic done, or undone if it already is",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, logToFile)
		if err != nil {
			return err
		}
		defer e.Close(cmd.Context())

		res, err := e.svc.Dispatch(cmd.Context(), session.ToggleTopic{TopicID: args[0]})
		if err != nil {
			return err
		}
		state := "not done"
		if res.State.IsTopicDone(args[0]) {
			state = "done"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", args[0], state)
		return nil
	},
}

func init() {
	roadmapCmd.AddCommand(roadmapListCmd)
	roadmapCmd.AddCommand(roadmapToggleCmd)
}

func checkbox(done bool) string {
	if done {
		return "[✓]"
	}
	return "[ ]"
}
