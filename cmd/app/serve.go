package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/task-board/internal/editmode"
	"github.com/BuzzLyutic/task-board/internal/handler"
	"github.com/BuzzLyutic/task-board/internal/service"
	"github.com/BuzzLyutic/task-board/internal/worker"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP board and JSON API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	taskRepo, store, err := openRepo(ctx)
	if err != nil {
		return err
	}
	defer store.Close() // Запланированное закрытие хранилища

	taskService := service.NewTaskService(taskRepo)
	form := editmode.NewController(taskService)

	r := handler.NewRouter(
		handler.NewTaskHandler(taskService, logger),
		handler.NewUIHandler(taskService, form, logger),
		handler.Health(taskRepo.Dirty),
	)

	// Повторная запись зеркала, если хранилище было недоступно
	flusher := worker.NewFlusher(taskRepo, logger, cfg.FlushInterval)
	flusher.Start(ctx)

	srv := http.Server{ // Создаем сервер
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() { // Запуск сервера и обработка ошибок
		logger.Info("Server started", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	defer signal.Stop(quit)

	select {
	case <-quit:
	case err, ok := <-serverErr:
		if ok {
			flusher.Stop(context.Background())
			return err
		}
	}

	logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", zap.Error(err))
	}
	flusher.Stop(shutdownCtx) // последняя попытка записать несохраненные изменения
	if taskRepo.Dirty() {
		logger.Warn("Unsaved changes were lost on shutdown")
	}
	logger.Info("Server stopped successfully!")
	return nil
}
