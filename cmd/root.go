package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abhisek/golearn/internal/config"
	"github.com/abhisek/golearn/internal/exercise"
	"github.com/abhisek/golearn/internal/logging"
	"github.com/abhisek/golearn/internal/progress"
	"github.com/abhisek/golearn/internal/session"
	"github.com/abhisek/golearn/internal/store"
)

var rootCmd = &cobra.Command{
	Use:          "golearn",
	Short:        "Learn Go with quizzes, coding challenges and a roadmap",
	Long:         "golearn is a terminal quiz for learning Go: multiple-choice exercises, free-form coding challenges, a topic roadmap and progress tracking.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides GOLEARN_DB)")
	rootCmd.PersistentFlags().String("backend", "", "Progress backend: sqlite, redis, postgres or memory (overrides GOLEARN_BACKEND)")
	rootCmd.PersistentFlags().String("bank", "", "Path to a YAML question bank (overrides GOLEARN_BANK)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(exerciseCmd)
	rootCmd.AddCommand(challengeCmd)
	rootCmd.AddCommand(roadmapCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// env is everything a command needs to act on the learner's progress.
type env struct {
	cfg     *config.Config
	logger  *slog.Logger
	backend *store.Backend
	svc     *session.Service

	closeLog func() error
}

// Close persists the session and releases the backend and log file.
func (e *env) Close(ctx context.Context) {
	e.svc.Close(context.WithoutCancel(ctx))
	if err := e.backend.Close(); err != nil {
		e.logger.Warn("close backend failed", "error", err)
	}
	e.closeLog()
}

// logDest chooses where a command's logs go.
type logDest int

const (
	logToFile   logDest = iota // data dir log file unless GOLEARN_LOG_FILE is set
	logToStderr                // stderr unless GOLEARN_LOG_FILE is set
)

// loadConfig reads .env and the environment, then applies flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	config.LoadDotEnv()
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.DBPath = p
	}
	if b, _ := cmd.Flags().GetString("backend"); b != "" {
		cfg.Backend = b
	}
	if p, _ := cmd.Flags().GetString("bank"); p != "" {
		cfg.BankPath = p
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// openEnv loads configuration, opens the logger and backend, and starts a
// session over the configured question bank.
func openEnv(cmd *cobra.Command, dest logDest) (*env, error) {
	ctx := cmd.Context()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	fallback := ""
	if dest == logToFile {
		dir, err := store.DataDir()
		if err != nil {
			return nil, err
		}
		fallback = filepath.Join(dir, "golearn.log")
	}
	logger, closeLog, err := logging.Open(cfg.Log, fallback)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}

	bank := exercise.Default()
	if cfg.BankPath != "" {
		bank, err = exercise.Load(cfg.BankPath)
		if err != nil {
			closeLog()
			return nil, fmt.Errorf("load question bank: %w", err)
		}
	}

	backend, err := store.OpenBackend(ctx, cfg, logger)
	if err != nil {
		closeLog()
		return nil, err
	}

	ps := progress.NewStore(backend.KV, progress.Options{
		SnapshotKey: cfg.ProgressKey,
		TabKey:      cfg.TabKey,
		Limits:      progress.Limits{Exercises: bank.Len(), Challenges: bank.ChallengeCount()},
		Logger:      logger,
	})

	return &env{
		cfg:      cfg,
		logger:   logger,
		backend:  backend,
		svc:      session.New(ctx, bank, ps, backend.Events, logger),
		closeLog: closeLog,
	}, nil
}
