// Package render turns a filtered task list into the board's view.
//
// Render is pure: it builds the whole view from scratch on every call and
// never looks at a previous one. HTML and PDF write that view out.
package render

import "github.com/BuzzLyutic/task-board/internal/model"

const Placeholder = "No tasks found. Try adding one!"

type View struct {
	Empty       bool
	Placeholder string
	Cards       []Card
}

type Card struct {
	ID          int64
	Title       string
	Description string
	Due         string
	Priority    string
	BadgeClass  string
	Completed   bool
	Statuses    []Option
}

type Option struct {
	Value    string
	Selected bool
}

func Render(tasks []model.Task) View {
	if len(tasks) == 0 {
		return View{Empty: true, Placeholder: Placeholder}
	}

	cards := make([]Card, 0, len(tasks))
	for _, t := range tasks {
		due := t.DueDate
		if due == "" {
			due = "N/A"
		}
		cards = append(cards, Card{
			ID:          t.ID,
			Title:       t.Title,
			Description: t.Description,
			Due:         due,
			Priority:    t.Priority,
			BadgeClass:  PriorityClass(t.Priority),
			Completed:   t.Status == model.StatusCompleted,
			Statuses:    options(model.Statuses, t.Status),
		})
	}
	return View{Cards: cards}
}

// PriorityClass picks the badge colour. Unknown priorities fall back to info.
func PriorityClass(priority string) string {
	switch priority {
	case model.PriorityHigh:
		return "bg-danger"
	case model.PriorityMedium:
		return "bg-warning"
	default:
		return "bg-info"
	}
}

func options(values []string, selected string) []Option {
	out := make([]Option, len(values))
	for i, v := range values {
		out[i] = Option{Value: v, Selected: v == selected}
	}
	return out
}
