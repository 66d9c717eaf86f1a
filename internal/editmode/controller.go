// Package editmode drives the board's dual-purpose task form.
//
// The form is either creating a new task or editing an existing one:
//
//	Creating --StartEdit(id)--> Editing(id)
//	Editing(id) --StartEdit(other)--> Editing(other)
//	any --successful Submit--> Creating
//	any --Reset (after another mutation)--> Creating
//
// There is no cancel transition. Submitting in Editing(id) updates task id
// instead of creating a new one.
package editmode

import (
	"context"
	"errors"
	"sync"

	"github.com/BuzzLyutic/task-board/internal/model"
	"github.com/BuzzLyutic/task-board/internal/repo"
)

type Mode int

const (
	Creating Mode = iota
	Editing
)

func (m Mode) String() string {
	if m == Editing {
		return "editing"
	}
	return "creating"
}

type State struct {
	Mode   Mode
	TaskID int64
}

// Form is everything a renderer needs to draw the task form.
type Form struct {
	Heading     string
	SubmitLabel string
	SubmitClass string
	Editing     bool
	TaskID      int64
	Input       model.TaskInput
}

type Tasks interface {
	Get(ctx context.Context, id int64) (model.Task, error)
	Create(ctx context.Context, in model.TaskInput) (model.Task, error)
	Update(ctx context.Context, id int64, in model.TaskInput) (model.Task, error)
}

type Controller struct {
	mu    sync.Mutex
	tasks Tasks
	state State
	input model.TaskInput
}

func NewController(tasks Tasks) *Controller {
	return &Controller{tasks: tasks, input: blankInput()}
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) Form() Form {
	c.mu.Lock()
	defer c.mu.Unlock()

	f := Form{
		Heading:     "Add New Task",
		SubmitLabel: "Add Task",
		SubmitClass: "btn-primary",
		Input:       c.input,
	}
	if c.state.Mode == Editing {
		f.Heading = "Edit Task"
		f.SubmitLabel = "Save Changes"
		f.SubmitClass = "btn-success"
		f.Editing = true
		f.TaskID = c.state.TaskID
	}
	return f
}

// StartEdit loads task id into the form. An unknown id leaves the state alone.
func (c *Controller) StartEdit(ctx context.Context, id int64) error {
	t, err := c.tasks.Get(ctx, id)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = State{Mode: Editing, TaskID: id}
	c.input = model.TaskInput{
		Title:       t.Title,
		Description: t.Description,
		DueDate:     t.DueDate,
		Priority:    t.Priority,
	}
	return nil
}

// Submit creates or updates depending on the current state. On a validation
// error the state is kept and the form holds what was typed.
func (c *Controller) Submit(ctx context.Context, in model.TaskInput) (model.Task, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var (
		t   model.Task
		err error
	)
	if c.state.Mode == Editing {
		t, err = c.tasks.Update(ctx, c.state.TaskID, in)
		// the task was deleted while being edited: nothing to save
		if errors.Is(err, repo.ErrorNotFound) {
			err = nil
		}
	} else {
		t, err = c.tasks.Create(ctx, in)
	}
	if err != nil {
		c.input = in
		return model.Task{}, err
	}

	c.resetLocked()
	return t, nil
}

// Reset returns to Creating with a blank form.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetLocked()
}

func (c *Controller) resetLocked() {
	c.state = State{Mode: Creating}
	c.input = blankInput()
}

func blankInput() model.TaskInput {
	return model.TaskInput{Priority: model.PriorityMedium}
}
