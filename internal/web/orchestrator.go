package web

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/eleven-am/taskdeck/internal/task"
)

// Action names accepted by a mutation submission.
const (
	ActionCreate   = "create"
	ActionUpdate   = "update"
	ActionDelete   = "delete"
	ActionComplete = "complete"
)

// Submission carries one request's action and raw form values. Nil
// pointers mean the field was absent; update applies only the fields
// that were sent.
type Submission struct {
	Action      string
	ID          int64
	Title       *string
	Description *string
	Status      *string
	Priority    *string
	DueDate     *string
	CategoryID  *string
}

// Result is the response model for a mutation: exactly one of Message
// or Error, plus the affected task when one exists.
type Result struct {
	Message string                 `json:"message,omitempty"`
	Error   string                 `json:"error,omitempty"`
	Task    map[string]interface{} `json:"task,omitempty"`
}

// View is everything a rendering layer needs to build the page:
// the filtered listing, categories, statistics, enums, and an optional
// edit-mode task.
type View struct {
	Message    string                   `json:"message,omitempty"`
	Error      string                   `json:"error,omitempty"`
	Tasks      []map[string]interface{} `json:"tasks"`
	Categories []task.Category          `json:"categories"`
	Statistics *task.Statistics         `json:"statistics"`
	EditTask   map[string]interface{}   `json:"edit_task,omitempty"`
	Statuses   []task.Status            `json:"allowed_statuses"`
	Priorities []task.Priority          `json:"allowed_priorities"`
}

// Orchestrator dispatches actions to the store and translates every
// outcome into a user-facing message. All entity and store errors are
// caught here, once, and nowhere above.
type Orchestrator struct {
	store *task.Store
	log   *slog.Logger
}

func NewOrchestrator(store *task.Store, log *slog.Logger) *Orchestrator {
	return &Orchestrator{store: store, log: log}
}

// Do runs one mutation. Unknown and empty actions are silently
// ignored: the result carries neither a message nor an error.
func (o *Orchestrator) Do(ctx context.Context, sub Submission) Result {
	var (
		t   *task.Task
		msg string
		err error
	)

	switch sub.Action {
	case ActionCreate:
		t, err = o.create(ctx, sub)
		msg = "Task created successfully."
	case ActionUpdate:
		t, err = o.update(ctx, sub.ID, sub)
		msg = "Task updated successfully."
	case ActionDelete:
		err = o.delete(ctx, sub.ID)
		msg = "Task deleted successfully."
	case ActionComplete:
		t, err = o.store.MarkAsCompleted(ctx, sub.ID)
		msg = "Task marked as completed."
	default:
		return Result{}
	}

	if err != nil {
		o.log.Warn("action failed", slog.String("action", sub.Action), slog.Any("error", err))
		return Result{Error: err.Error()}
	}

	result := Result{Message: msg}
	if t != nil {
		result.Task = t.ToMap()
	}
	return result
}

func (o *Orchestrator) create(ctx context.Context, sub Submission) (*task.Task, error) {
	t := o.store.NewTask()
	t.SetTitle(deref(sub.Title))
	t.SetDescription(deref(sub.Description))
	if sub.Status != nil && *sub.Status != "" {
		t.SetStatus(task.Status(*sub.Status))
	}
	if sub.Priority != nil && *sub.Priority != "" {
		t.SetPriority(task.Priority(*sub.Priority))
	}
	t.SetDueDate(deref(sub.DueDate))
	t.SetCategoryID(parseCategoryID(sub.CategoryID))

	if err := t.Save(ctx); err != nil {
		return nil, err
	}
	return t, nil
}

func (o *Orchestrator) update(ctx context.Context, id int64, sub Submission) (*task.Task, error) {
	t, err := o.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, task.ErrTaskNotFound
	}

	if sub.Title != nil {
		t.SetTitle(*sub.Title)
	}
	if sub.Description != nil {
		t.SetDescription(*sub.Description)
	}
	if sub.Status != nil {
		t.SetStatus(task.Status(*sub.Status))
	}
	if sub.Priority != nil {
		t.SetPriority(task.Priority(*sub.Priority))
	}
	if sub.DueDate != nil {
		t.SetDueDate(*sub.DueDate)
	}
	if sub.CategoryID != nil {
		t.SetCategoryID(parseCategoryID(sub.CategoryID))
	}

	if err := t.Save(ctx); err != nil {
		return nil, err
	}
	return t, nil
}

func (o *Orchestrator) delete(ctx context.Context, id int64) error {
	t, err := o.store.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if t == nil {
		return task.ErrTaskNotFound
	}
	return t.Delete(ctx)
}

// View assembles the full response model. A read failure yields a view
// with the error message and empty collections, mirroring what a
// rendering layer shows when the store is unreachable.
func (o *Orchestrator) View(ctx context.Context, statusFilter string, editID int64) View {
	view := View{
		Tasks:      []map[string]interface{}{},
		Categories: []task.Category{},
		Statuses:   task.AllowedStatuses(),
		Priorities: task.AllowedPriorities(),
	}

	tasks, err := o.store.GetAll(ctx, task.Status(statusFilter))
	if err != nil {
		o.log.Error("failed to load tasks", slog.Any("error", err))
		view.Error = err.Error()
		return view
	}
	for _, t := range tasks {
		view.Tasks = append(view.Tasks, t.ToMap())
	}

	categories, err := o.store.Categories(ctx)
	if err != nil {
		o.log.Error("failed to load categories", slog.Any("error", err))
		view.Error = err.Error()
		return view
	}
	view.Categories = categories

	stats, err := o.store.Statistics(ctx)
	if err != nil {
		o.log.Error("failed to load statistics", slog.Any("error", err))
		view.Error = err.Error()
		return view
	}
	view.Statistics = stats

	if editID > 0 {
		t, err := o.store.FindByID(ctx, editID)
		if err != nil {
			view.Error = err.Error()
			return view
		}
		if t != nil {
			view.EditTask = t.ToMap()
		}
	}

	return view
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func parseCategoryID(raw *string) *int64 {
	if raw == nil || *raw == "" {
		return nil
	}
	id, err := strconv.ParseInt(*raw, 10, 64)
	if err != nil || id <= 0 {
		return nil
	}
	return &id
}
