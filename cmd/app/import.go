package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/task-board/internal/repo"
)

func newImportCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Replace the stored task list with a JSON array",
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("read %s: %w", file, err)
			}
			tasks, err := repo.Decode(string(raw))
			if err != nil {
				return fmt.Errorf("parse %s: %w", file, err)
			}

			taskRepo, store, err := openRepo(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			if err := taskRepo.Replace(cmd.Context(), tasks); err != nil {
				return fmt.Errorf("save tasks: %w", err)
			}
			logger.Info("Tasks imported", zap.String("file", file), zap.Int("count", len(tasks)))
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "JSON file with a task array")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
