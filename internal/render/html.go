package render

import (
	"embed"
	"html/template"
	"io"

	"github.com/BuzzLyutic/task-board/internal/editmode"
	"github.com/BuzzLyutic/task-board/internal/model"
)

//go:embed templates/*.html
var templatesFS embed.FS

var (
	boardTmpl   = template.Must(template.ParseFS(templatesFS, "templates/layout.html", "templates/board.html"))
	confirmTmpl = template.Must(template.ParseFS(templatesFS, "templates/layout.html", "templates/confirm.html"))
)

// Page is the whole board: form, filters and the rendered list.
type Page struct {
	View           View
	Form           editmode.Form
	Search         string
	PriorityFilter string
	Warning        string
}

type Confirm struct {
	Task           model.Task
	Search         string
	PriorityFilter string
}

type boardData struct {
	Page
	FormPriorities []Option
	FilterOptions  []Option
}

func HTML(w io.Writer, p Page) error {
	filter := p.PriorityFilter
	if filter == "" {
		filter = model.PriorityAll
	}
	return boardTmpl.ExecuteTemplate(w, "layout", boardData{
		Page:           p,
		FormPriorities: options(model.Priorities, p.Form.Input.Priority),
		FilterOptions:  options(append([]string{model.PriorityAll}, model.Priorities...), filter),
	})
}

func ConfirmHTML(w io.Writer, c Confirm) error {
	return confirmTmpl.ExecuteTemplate(w, "layout", c)
}
