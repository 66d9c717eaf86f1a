package repo

import (
	"context"

	"github.com/BuzzLyutic/task-board/internal/model"
)

// TaskRepository определяет интерфейс для работы с задачами
type TaskRepository interface {
	Create(ctx context.Context, t model.Task) (model.Task, error)
	Get(ctx context.Context, id int64) (model.Task, error)
	List(ctx context.Context, filter model.TaskFilter) ([]model.Task, error)
	Update(ctx context.Context, t model.Task) (model.Task, error)
	SetStatus(ctx context.Context, id int64, status string) (model.Task, error)
	Delete(ctx context.Context, id int64) error
	GetStats(ctx context.Context) (Stats, error)
}

type Stats struct {
	TotalTasks int            `json:"total_tasks"`
	ByStatus   map[string]int `json:"by_status"`
	ByPriority map[string]int `json:"by_priority"`
}
