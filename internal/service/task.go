package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/BuzzLyutic/task-board/internal/model"
	"github.com/BuzzLyutic/task-board/internal/repo"
)

var (
	ErrValidation = errors.New("validation error")
)

// TitleRequired is the notice shown when a task is submitted without a title.
const TitleRequired = "Please enter a task title."

// Confirmation is the synchronous yes/no gate in front of a delete.
type Confirmation func() bool

// Confirmed is a gate that always answers yes.
func Confirmed() bool { return true }

type TaskService struct {
	repo repo.TaskRepository
}

func NewTaskService(repo repo.TaskRepository) *TaskService {
	return &TaskService{repo: repo}
}

func (s *TaskService) Create(ctx context.Context, in model.TaskInput) (model.Task, error) {
	if err := s.validate(in); err != nil { // Валидация введенных данных
		return model.Task{}, err
	}
	return s.repo.Create(ctx, toTask(0, in))
}

func (s *TaskService) Get(ctx context.Context, id int64) (model.Task, error) {
	return s.repo.Get(ctx, id)
}

func (s *TaskService) List(ctx context.Context, filter model.TaskFilter) ([]model.Task, error) {
	return s.repo.List(ctx, filter)
}

func (s *TaskService) Update(ctx context.Context, id int64, in model.TaskInput) (model.Task, error) {
	if err := s.validate(in); err != nil {
		return model.Task{}, err
	}
	return s.repo.Update(ctx, toTask(id, in))
}

func (s *TaskService) SetStatus(ctx context.Context, id int64, status string) (model.Task, error) {
	if !model.ValidStatus(status) {
		return model.Task{}, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}
	return s.repo.SetStatus(ctx, id, status)
}

// Delete asks confirm first and reports whether the task was removed.
// A declined confirmation leaves everything untouched.
func (s *TaskService) Delete(ctx context.Context, id int64, confirm Confirmation) (bool, error) {
	if confirm == nil || !confirm() {
		return false, nil
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return false, err
	}
	return true, nil
}

func (s *TaskService) GetStats(ctx context.Context) (repo.Stats, error) {
	return s.repo.GetStats(ctx)
}

func (s *TaskService) validate(in model.TaskInput) error {
	if strings.TrimSpace(in.Title) == "" {
		return fmt.Errorf("%w: %s", ErrValidation, TitleRequired)
	}
	return nil
}

func toTask(id int64, in model.TaskInput) model.Task {
	priority := in.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}
	return model.Task{
		ID:          id,
		Title:       in.Title,
		Description: in.Description,
		DueDate:     in.DueDate,
		Priority:    priority,
	}
}
