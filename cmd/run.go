package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/golearn/internal/app"
)

// runApp starts a session and launches the TUI. Logs go to a file so they
// don't draw over the terminal UI.
func runApp(cmd *cobra.Command) error {
	e, err := openEnv(cmd, logToFile)
	if err != nil {
		return err
	}
	defer e.backend.Close()
	defer e.closeLog()

	// app.Run closes the session on exit.
	return app.Run(cmd.Context(), app.Options{
		Session: e.svc,
		Events:  e.backend.Events,
		Logger:  e.logger,
	})
}
