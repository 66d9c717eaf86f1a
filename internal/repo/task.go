package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/BuzzLyutic/task-board/internal/kv"
	"github.com/BuzzLyutic/task-board/internal/model"
)

var (
	ErrorNotFound = errors.New("not found")
)

// TaskRepo owns the ordered task list. The kv store is only a mirror: it is
// read once by NewTaskRepo and overwritten with the whole list after every
// mutation.
type TaskRepo struct {
	mu     sync.Mutex
	store  kv.Store
	key    string
	logger *zap.Logger
	now    func() time.Time

	tasks  []model.Task
	lastID int64
	dirty  bool
}

func NewTaskRepo(ctx context.Context, store kv.Store, key string, logger *zap.Logger) (*TaskRepo, error) {
	r := &TaskRepo{
		store:  store,
		key:    key,
		logger: logger,
		now:    time.Now,
		tasks:  []model.Task{},
	}

	raw, ok, err := store.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", key, err)
	}
	if !ok {
		return r, nil
	}

	tasks, err := Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("decode %q: %w", key, err)
	}
	if r.adoptLocked(tasks) {
		// Повторяющиеся id получили новые значения, сохраним при первой возможности
		r.dirty = true
	}
	r.logger.Info("tasks loaded", zap.String("key", key), zap.Int("count", len(r.tasks)))
	return r, nil
}

// Encode produces the stored form of a task list: a JSON array of records.
func Encode(tasks []model.Task) (string, error) {
	if tasks == nil {
		tasks = []model.Task{}
	}
	b, err := json.Marshal(tasks)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Decode parses the stored form. A JSON null decodes to an empty list.
func Decode(raw string) ([]model.Task, error) {
	var tasks []model.Task
	if err := json.Unmarshal([]byte(raw), &tasks); err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	return tasks, nil
}

func (r *TaskRepo) Create(ctx context.Context, t model.Task) (model.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t.ID = r.nextIDLocked()
	t.Status = model.StatusToDo
	r.tasks = append(r.tasks, t)

	r.persistLocked(ctx)
	return t, nil
}

func (r *TaskRepo) Get(ctx context.Context, id int64) (model.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexLocked(id)
	if i < 0 {
		return model.Task{}, ErrorNotFound
	}
	return r.tasks[i], nil
}

func (r *TaskRepo) List(ctx context.Context, filter model.TaskFilter) ([]model.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tasks := make([]model.Task, 0, len(r.tasks))
	for _, t := range r.tasks {
		if filter.Match(t) {
			tasks = append(tasks, t)
		}
	}
	return tasks, nil
}

// Update replaces every field except ID and Status.
func (r *TaskRepo) Update(ctx context.Context, t model.Task) (model.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexLocked(t.ID)
	if i < 0 {
		return model.Task{}, ErrorNotFound
	}

	cur := &r.tasks[i]
	cur.Title = t.Title
	cur.Description = t.Description
	cur.DueDate = t.DueDate
	cur.Priority = t.Priority

	r.persistLocked(ctx)
	return *cur, nil
}

func (r *TaskRepo) SetStatus(ctx context.Context, id int64, status string) (model.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexLocked(id)
	if i < 0 {
		return model.Task{}, ErrorNotFound
	}
	r.tasks[i].Status = status

	r.persistLocked(ctx)
	return r.tasks[i], nil
}

func (r *TaskRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexLocked(id)
	if i < 0 {
		return ErrorNotFound
	}
	r.tasks = append(r.tasks[:i], r.tasks[i+1:]...)

	r.persistLocked(ctx)
	return nil
}

// Replace swaps the whole list, as an import does.
func (r *TaskRepo) Replace(ctx context.Context, tasks []model.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tasks = []model.Task{}
	r.lastID = 0
	r.adoptLocked(tasks)

	raw, err := Encode(r.tasks)
	if err != nil {
		return err
	}
	if err := r.store.Set(ctx, r.key, raw); err != nil {
		r.dirty = true
		return fmt.Errorf("write %q: %w", r.key, err)
	}
	r.dirty = false
	return nil
}

func (r *TaskRepo) GetStats(ctx context.Context) (Stats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stats := Stats{
		TotalTasks: len(r.tasks),
		ByStatus:   make(map[string]int, len(model.Statuses)),
		ByPriority: make(map[string]int, len(model.Priorities)),
	}
	for _, s := range model.Statuses {
		stats.ByStatus[s] = 0
	}
	for _, p := range model.Priorities {
		stats.ByPriority[p] = 0
	}
	for _, t := range r.tasks {
		stats.ByStatus[t.Status]++
		stats.ByPriority[t.Priority]++
	}
	return stats, nil
}

// Dirty reports whether the last write to the store failed.
func (r *TaskRepo) Dirty() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.dirty
}

// Flush retries the mirror write if an earlier one failed.
func (r *TaskRepo) Flush(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.dirty {
		return nil
	}
	raw, err := Encode(r.tasks)
	if err != nil {
		return err
	}
	if err := r.store.Set(ctx, r.key, raw); err != nil {
		return fmt.Errorf("write %q: %w", r.key, err)
	}
	r.dirty = false
	r.logger.Info("tasks flushed", zap.String("key", r.key), zap.Int("count", len(r.tasks)))
	return nil
}

// persistLocked never fails the mutation: the in-memory list stays
// authoritative and a failed write leaves the repo dirty for Flush.
func (r *TaskRepo) persistLocked(ctx context.Context) {
	raw, err := Encode(r.tasks)
	if err == nil {
		err = r.store.Set(ctx, r.key, raw)
	}
	if err != nil {
		r.dirty = true
		r.logger.Warn("failed to persist tasks", zap.String("key", r.key), zap.Error(err))
		return
	}
	r.dirty = false
}

// nextIDLocked hands out millisecond timestamps, bumped past the last id so
// two creates in the same millisecond never collide.
func (r *TaskRepo) nextIDLocked() int64 {
	id := r.now().UnixMilli()
	if id <= r.lastID {
		id = r.lastID + 1
	}
	r.lastID = id
	return id
}

func (r *TaskRepo) indexLocked(id int64) int {
	for i := range r.tasks {
		if r.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// adoptLocked appends tasks in order and reports whether any duplicate id had
// to be replaced with a fresh one.
func (r *TaskRepo) adoptLocked(tasks []model.Task) bool {
	seen := make(map[int64]bool, len(tasks))
	for _, t := range tasks {
		if t.ID > r.lastID {
			r.lastID = t.ID
		}
	}

	reassigned := false
	for _, t := range tasks {
		if seen[t.ID] {
			old := t.ID
			t.ID = r.nextIDLocked()
			reassigned = true
			r.logger.Warn("duplicate task id reassigned", zap.Int64("old_id", old), zap.Int64("new_id", t.ID))
		}
		seen[t.ID] = true
		r.tasks = append(r.tasks, t)
	}
	return reassigned
}
