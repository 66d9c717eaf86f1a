package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/task-board/internal/config"
	"github.com/BuzzLyutic/task-board/internal/kv"
	"github.com/BuzzLyutic/task-board/internal/repo"
)

var (
	cfg    config.Config
	logger *zap.Logger
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "task-board",
		Short:         "Single-user task board with a persistent task list",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Загрузка конфигурации
			cfg = config.Load()

			var err error
			logger, err = newLogger(cfg)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			logger = logger.With(zap.String("correlation_id", uuid.NewString()))
			logger.Info("command start", zap.String("command", cmd.CommandPath()))
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				logger.Info("command end", zap.String("command", cmd.CommandPath()))
				_ = logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}

	root.AddCommand(newServeCmd(), newExportCmd(), newImportCmd())
	return root
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	if cfg.IsDevelopment() {
		zcfg = zap.NewDevelopmentConfig()
	}
	level, err := zap.ParseAtomicLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	zcfg.Level = level
	return zcfg.Build()
}

// openRepo подключает хранилище и загружает список задач.
func openRepo(ctx context.Context) (*repo.TaskRepo, kv.Store, error) {
	openCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	store, err := kv.Open(openCtx, cfg, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s store: %w", cfg.StoreDriver, err)
	}
	logger.Info("Store opened", zap.String("driver", cfg.StoreDriver))

	taskRepo, err := repo.NewTaskRepo(openCtx, store, cfg.StorageKey, logger)
	if err != nil {
		store.Close()
		return nil, nil, fmt.Errorf("load tasks: %w", err)
	}
	return taskRepo, store, nil
}
