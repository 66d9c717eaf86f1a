package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/task-board/internal/model"
	"github.com/BuzzLyutic/task-board/internal/render"
	"github.com/BuzzLyutic/task-board/internal/repo"
)

func newExportCmd() *cobra.Command {
	var format, out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Dump the stored task list as JSON or PDF",
		RunE: func(cmd *cobra.Command, args []string) error {
			taskRepo, store, err := openRepo(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			tasks, err := taskRepo.List(cmd.Context(), model.TaskFilter{})
			if err != nil {
				return err
			}

			var buf bytes.Buffer
			if err := exportTasks(&buf, format, tasks); err != nil {
				return err
			}

			if out == "" || out == "-" {
				_, err = cmd.OutOrStdout().Write(buf.Bytes())
				return err
			}
			if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}
			logger.Info("Tasks exported", zap.String("file", out), zap.Int("count", len(tasks)))
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "json", "output format: json or pdf")
	cmd.Flags().StringVar(&out, "out", "", "output file (stdout when empty)")
	return cmd
}

func exportTasks(w io.Writer, format string, tasks []model.Task) error {
	switch format {
	case "json":
		raw, err := repo.Encode(tasks)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, raw+"\n")
		return err
	case "pdf":
		return render.PDF(w, render.Render(tasks))
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
