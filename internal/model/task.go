package model

import "strings"

const (
	StatusToDo       = "To Do"
	StatusInProgress = "In Progress"
	StatusCompleted  = "Completed"
)

const (
	PriorityLow    = "Low"
	PriorityMedium = "Medium"
	PriorityHigh   = "High"

	// PriorityAll is the filter value that matches every task.
	PriorityAll = "all"
)

// Statuses lists the selector options in display order.
var Statuses = []string{StatusToDo, StatusInProgress, StatusCompleted}

// Priorities lists the form options in display order.
var Priorities = []string{PriorityLow, PriorityMedium, PriorityHigh}

// Task field names follow the board's stored encoding, so a browser
// local-storage dump of the task list decodes as is.
type Task struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     string `json:"dueDate"`
	Priority    string `json:"priority"`
	Status      string `json:"status"`
}

// TaskInput holds the user-editable fields of a task.
type TaskInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     string `json:"dueDate"`
	Priority    string `json:"priority"`
}

type TaskFilter struct {
	Search   string
	Priority string
}

// Match reports whether t's title contains Search, ignoring case, and t has
// the filtered priority. An empty Priority behaves like PriorityAll.
func (f TaskFilter) Match(t Task) bool {
	if !strings.Contains(strings.ToLower(t.Title), strings.ToLower(f.Search)) {
		return false
	}
	return f.Priority == "" || f.Priority == PriorityAll || t.Priority == f.Priority
}

func ValidStatus(s string) bool {
	for _, v := range Statuses {
		if v == s {
			return true
		}
	}
	return false
}
