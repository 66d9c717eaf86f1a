package editmode

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/task-board/internal/kv"
	"github.com/BuzzLyutic/task-board/internal/model"
	"github.com/BuzzLyutic/task-board/internal/repo"
	"github.com/BuzzLyutic/task-board/internal/service"
)

func setupController(t *testing.T) (*Controller, *service.TaskService) {
	t.Helper()
	r, err := repo.NewTaskRepo(context.Background(), kv.NewMemory(), "tasks", zap.NewNop())
	require.NoError(t, err)
	svc := service.NewTaskService(r)
	return NewController(svc), svc
}

func TestController_StartsCreating(t *testing.T) {
	c, _ := setupController(t)

	assert.Equal(t, State{Mode: Creating}, c.State())
	f := c.Form()
	assert.Equal(t, "Add New Task", f.Heading)
	assert.Equal(t, "Add Task", f.SubmitLabel)
	assert.Equal(t, "btn-primary", f.SubmitClass)
	assert.False(t, f.Editing)
	assert.Equal(t, model.PriorityMedium, f.Input.Priority)
}

func TestController_SubmitWhileCreating(t *testing.T) {
	c, svc := setupController(t)
	ctx := context.Background()

	created, err := c.Submit(ctx, model.TaskInput{Title: "Buy milk", Priority: model.PriorityLow})
	require.NoError(t, err)
	assert.Equal(t, model.StatusToDo, created.Status)

	tasks, _ := svc.List(ctx, model.TaskFilter{})
	assert.Len(t, tasks, 1)
	assert.Equal(t, State{Mode: Creating}, c.State())
}

func TestController_EditFlow(t *testing.T) {
	c, svc := setupController(t)
	ctx := context.Background()

	task, err := svc.Create(ctx, model.TaskInput{Title: "Draft", Description: "d", DueDate: "2024-05-05", Priority: model.PriorityHigh})
	require.NoError(t, err)
	_, err = svc.SetStatus(ctx, task.ID, model.StatusInProgress)
	require.NoError(t, err)

	require.NoError(t, c.StartEdit(ctx, task.ID))
	assert.Equal(t, State{Mode: Editing, TaskID: task.ID}, c.State())

	f := c.Form()
	assert.Equal(t, "Edit Task", f.Heading)
	assert.Equal(t, "Save Changes", f.SubmitLabel)
	assert.Equal(t, "btn-success", f.SubmitClass)
	assert.True(t, f.Editing)
	assert.Equal(t, task.ID, f.TaskID)
	assert.Equal(t, model.TaskInput{Title: "Draft", Description: "d", DueDate: "2024-05-05", Priority: model.PriorityHigh}, f.Input)

	saved, err := c.Submit(ctx, model.TaskInput{Title: "Final", Priority: model.PriorityLow})
	require.NoError(t, err)
	assert.Equal(t, task.ID, saved.ID)
	assert.Equal(t, model.StatusInProgress, saved.Status)

	tasks, _ := svc.List(ctx, model.TaskFilter{})
	require.Len(t, tasks, 1, "editing must not create a second task")
	assert.Equal(t, "Final", tasks[0].Title)
	assert.Equal(t, State{Mode: Creating}, c.State())
	assert.Equal(t, "Add Task", c.Form().SubmitLabel)
}

func TestController_ValidationKeepsState(t *testing.T) {
	c, svc := setupController(t)
	ctx := context.Background()
	task, err := svc.Create(ctx, model.TaskInput{Title: "Keep"})
	require.NoError(t, err)
	require.NoError(t, c.StartEdit(ctx, task.ID))

	_, err = c.Submit(ctx, model.TaskInput{Title: "  ", Description: "typed"})
	assert.ErrorIs(t, err, service.ErrValidation)

	assert.Equal(t, State{Mode: Editing, TaskID: task.ID}, c.State())
	assert.Equal(t, "typed", c.Form().Input.Description)

	got, _ := svc.Get(ctx, task.ID)
	assert.Equal(t, "Keep", got.Title)
}

func TestController_StartEditUnknownID(t *testing.T) {
	c, _ := setupController(t)

	err := c.StartEdit(context.Background(), 12345)
	assert.ErrorIs(t, err, repo.ErrorNotFound)
	assert.Equal(t, State{Mode: Creating}, c.State())
}

func TestController_EditedTaskDeleted(t *testing.T) {
	c, svc := setupController(t)
	ctx := context.Background()
	task, err := svc.Create(ctx, model.TaskInput{Title: "Gone soon"})
	require.NoError(t, err)
	require.NoError(t, c.StartEdit(ctx, task.ID))

	_, err = svc.Delete(ctx, task.ID, service.Confirmed)
	require.NoError(t, err)

	_, err = c.Submit(ctx, model.TaskInput{Title: "Too late"})
	require.NoError(t, err)

	tasks, _ := svc.List(ctx, model.TaskFilter{})
	assert.Empty(t, tasks, "saving a deleted task must not resurrect it")
	assert.Equal(t, State{Mode: Creating}, c.State())
}

func TestController_Reset(t *testing.T) {
	c, svc := setupController(t)
	ctx := context.Background()
	task, err := svc.Create(ctx, model.TaskInput{Title: "x"})
	require.NoError(t, err)
	require.NoError(t, c.StartEdit(ctx, task.ID))

	c.Reset()

	assert.Equal(t, State{Mode: Creating}, c.State())
	assert.Empty(t, c.Form().Input.Title)
}

func TestMode_String(t *testing.T) {
	assert.Equal(t, "creating", Creating.String())
	assert.Equal(t, "editing", Editing.String())
}
