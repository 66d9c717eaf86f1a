package handler

import (
	"bytes"
	"errors"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"github.com/BuzzLyutic/task-board/internal/editmode"
	"github.com/BuzzLyutic/task-board/internal/model"
	"github.com/BuzzLyutic/task-board/internal/render"
	"github.com/BuzzLyutic/task-board/internal/repo"
	"github.com/BuzzLyutic/task-board/internal/service"
	"github.com/BuzzLyutic/task-board/pkg/respond"
)

// UIHandler serves the HTML board. Every mutation redirects back to the
// board, which is rebuilt from scratch on the next GET. Unknown task ids are
// silently ignored here.
type UIHandler struct {
	service *service.TaskService
	form    *editmode.Controller
	logger  *zap.Logger
}

func NewUIHandler(srv *service.TaskService, form *editmode.Controller, logger *zap.Logger) *UIHandler {
	return &UIHandler{
		service: srv,
		form:    form,
		logger:  logger,
	}
}

type filters struct {
	search   string
	priority string
}

func queryFilters(r *http.Request) filters {
	q := r.URL.Query()
	return filters{search: q.Get("search"), priority: q.Get("priority")}
}

// Forms carry the board's filters in hidden fields; "priority" is taken by
// the task form itself.
func formFilters(r *http.Request) filters {
	return filters{search: r.PostFormValue("search"), priority: r.PostFormValue("filter")}
}

func (f filters) boardURL() string {
	v := url.Values{}
	if f.search != "" {
		v.Set("search", f.search)
	}
	if f.priority != "" {
		v.Set("priority", f.priority)
	}
	if len(v) == 0 {
		return "/"
	}
	return "/?" + v.Encode()
}

func (f filters) taskFilter() model.TaskFilter {
	return model.TaskFilter{Search: f.search, Priority: f.priority}
}

func (h *UIHandler) Board(w http.ResponseWriter, r *http.Request) {
	h.renderBoard(w, r, http.StatusOK, queryFilters(r), "")
}

func (h *UIHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	f := formFilters(r)

	in := model.TaskInput{
		Title:       r.PostFormValue("title"),
		Description: r.PostFormValue("description"),
		DueDate:     r.PostFormValue("dueDate"),
		Priority:    r.PostFormValue("priority"),
	}
	_, err := h.form.Submit(r.Context(), in)
	if errors.Is(err, service.ErrValidation) {
		h.renderBoard(w, r, http.StatusUnprocessableEntity, f, service.TitleRequired)
		return
	}
	if err != nil {
		h.internalError(w, err)
		return
	}

	http.Redirect(w, r, f.boardURL(), http.StatusSeeOther)
}

func (h *UIHandler) Edit(w http.ResponseWriter, r *http.Request) {
	f := formFilters(r)
	id, err := parseID(r)
	if err == nil {
		err = h.form.StartEdit(r.Context(), id)
	}
	if err != nil && !isIgnorable(err) {
		h.internalError(w, err)
		return
	}
	http.Redirect(w, r, f.boardURL(), http.StatusSeeOther)
}

func (h *UIHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	f := formFilters(r)
	id, err := parseID(r)
	if err == nil {
		_, err = h.service.SetStatus(r.Context(), id, r.PostFormValue("status"))
		if err == nil {
			h.form.Reset()
		}
	}
	if errors.Is(err, service.ErrValidation) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil && !isIgnorable(err) {
		h.internalError(w, err)
		return
	}
	http.Redirect(w, r, f.boardURL(), http.StatusSeeOther)
}

// ConfirmDelete shows the yes/no gate.
func (h *UIHandler) ConfirmDelete(w http.ResponseWriter, r *http.Request) {
	f := queryFilters(r)
	id, err := parseID(r)
	var task model.Task
	if err == nil {
		task, err = h.service.Get(r.Context(), id)
	}
	if isIgnorable(err) {
		http.Redirect(w, r, f.boardURL(), http.StatusSeeOther)
		return
	}
	if err != nil {
		h.internalError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := render.ConfirmHTML(&buf, render.Confirm{Task: task, Search: f.search, PriorityFilter: f.priority}); err != nil {
		h.internalError(w, err)
		return
	}
	respond.HTML(w, r, http.StatusOK, buf.Bytes())
}

func (h *UIHandler) Delete(w http.ResponseWriter, r *http.Request) {
	f := formFilters(r)
	id, err := parseID(r)
	if err == nil {
		answer := r.PostFormValue("confirm")
		var deleted bool
		deleted, err = h.service.Delete(r.Context(), id, func() bool { return answer == "yes" })
		if deleted {
			h.form.Reset()
		}
	}
	if err != nil && !isIgnorable(err) {
		h.internalError(w, err)
		return
	}
	http.Redirect(w, r, f.boardURL(), http.StatusSeeOther)
}

func (h *UIHandler) ExportPDF(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.service.List(r.Context(), queryFilters(r).taskFilter())
	if err != nil {
		h.internalError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := render.PDF(&buf, render.Render(tasks)); err != nil {
		h.internalError(w, err)
		return
	}
	w.Header().Set("Content-Disposition", `attachment; filename="tasks.pdf"`)
	respond.Bytes(w, r, http.StatusOK, "application/pdf", buf.Bytes())
}

func (h *UIHandler) renderBoard(w http.ResponseWriter, r *http.Request, code int, f filters, warning string) {
	tasks, err := h.service.List(r.Context(), f.taskFilter())
	if err != nil {
		h.internalError(w, err)
		return
	}

	var buf bytes.Buffer
	err = render.HTML(&buf, render.Page{
		View:           render.Render(tasks),
		Form:           h.form.Form(),
		Search:         f.search,
		PriorityFilter: f.priority,
		Warning:        warning,
	})
	if err != nil {
		h.internalError(w, err)
		return
	}
	respond.HTML(w, r, code, buf.Bytes())
}

func (h *UIHandler) internalError(w http.ResponseWriter, err error) {
	h.logger.Error("internal error", zap.Error(err))
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func isIgnorable(err error) bool {
	return errors.Is(err, repo.ErrorNotFound) || errors.Is(err, errBadID)
}
