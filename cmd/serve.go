package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abhisek/golearn/internal/api"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the quiz as a JSON API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		e, err := openEnv(cmd, logToStderr)
		if err != nil {
			return err
		}
		defer e.Close(context.Background())

		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			e.cfg.HTTP.Addr = addr
		}

		handler := api.NewRouter(api.NewHandler(e.svc, e.logger), api.RouterOptions{
			CORSOrigins:    e.cfg.HTTP.CORSOrigins,
			RequestTimeout: e.cfg.HTTP.RequestTimeout,
		})

		e.logger.Info("serving quiz API",
			"addr", e.cfg.HTTP.Addr,
			"backend", e.backend.Name,
			"exercises", e.svc.Bank().Len())
		return api.Serve(ctx, e.cfg.HTTP.Addr, handler, e.cfg.HTTP.ShutdownTimeout, e.logger)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides GOLEARN_HTTP_ADDR)")
}
