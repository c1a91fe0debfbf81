package task

import (
	"context"
	"strings"
	"unicode/utf8"
)

// Status is the closed set of task lifecycle states.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// Priority is the closed set of task priorities.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// AllowedStatuses returns the status enumeration for UI population and
// external validation.
func AllowedStatuses() []Status {
	return []Status{StatusPending, StatusInProgress, StatusCompleted}
}

// AllowedPriorities returns the priority enumeration for UI population
// and external validation.
func AllowedPriorities() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh}
}

const maxTitleLength = 255

// Task is the central entity: validated fields, a new/persisted
// lifecycle keyed on id, and persistence through the bound store.
//
// Setters are fluent and latch the first validation failure into the
// entity; Err exposes it and Save refuses to persist while one is set.
type Task struct {
	store *Store

	id          int64
	title       string
	description *string
	status      Status
	priority    Priority
	dueDate     *Date
	categoryID  *int64
	createdAt   *Stamp
	updatedAt   *Stamp

	// Populated only by listing queries that join categories.
	categoryName  *string
	categoryColor *string

	err error
}

// Getters

func (t *Task) ID() int64              { return t.id }
func (t *Task) Title() string          { return t.title }
func (t *Task) Description() *string   { return t.description }
func (t *Task) Status() Status         { return t.status }
func (t *Task) Priority() Priority     { return t.priority }
func (t *Task) DueDate() *Date         { return t.dueDate }
func (t *Task) CategoryID() *int64     { return t.categoryID }
func (t *Task) CreatedAt() *Stamp      { return t.createdAt }
func (t *Task) UpdatedAt() *Stamp      { return t.updatedAt }
func (t *Task) CategoryName() *string  { return t.categoryName }
func (t *Task) CategoryColor() *string { return t.categoryColor }

// Persisted reports whether the entity is backed by a stored row.
func (t *Task) Persisted() bool { return t.id != 0 }

// Err returns the first validation failure latched by a setter, or nil.
func (t *Task) Err() error { return t.err }

func (t *Task) fail(field, message string) *Task {
	if t.err == nil {
		t.err = &ValidationError{Field: field, Message: message}
	}
	return t
}

// SetTitle stores the trimmed title. Empty or whitespace-only input and
// titles longer than 255 characters after trimming are rejected.
func (t *Task) SetTitle(title string) *Task {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return t.fail("title", "must not be empty")
	}
	if utf8.RuneCountInString(trimmed) > maxTitleLength {
		return t.fail("title", "must not exceed 255 characters")
	}
	t.title = trimmed
	return t
}

// SetDescription stores the trimmed description; empty input clears it.
func (t *Task) SetDescription(description string) *Task {
	trimmed := strings.TrimSpace(description)
	if trimmed == "" {
		t.description = nil
		return t
	}
	t.description = &trimmed
	return t
}

// SetStatus enforces enum membership on every mutation.
func (t *Task) SetStatus(status Status) *Task {
	if !status.Valid() {
		return t.fail("status", "invalid task status")
	}
	t.status = status
	return t
}

// SetPriority enforces enum membership on every mutation.
func (t *Task) SetPriority(priority Priority) *Task {
	if !priority.Valid() {
		return t.fail("priority", "invalid task priority")
	}
	t.priority = priority
	return t
}

// SetDueDate parses value as YYYY-MM-DD; empty input clears the date.
// Past dates are accepted: the entity layer imposes no deadline policy.
func (t *Task) SetDueDate(value string) *Task {
	if value == "" {
		t.dueDate = nil
		return t
	}
	date, err := ParseDate(value)
	if err != nil {
		return t.fail("due_date", "invalid date format (expected YYYY-MM-DD)")
	}
	t.dueDate = &date
	return t
}

// SetCategoryID stores the reference without an existence check.
func (t *Task) SetCategoryID(id *int64) *Task {
	t.categoryID = id
	return t
}

// Save persists the entity: an insert that captures the generated id
// for a new task, an update keyed by id (refreshing updated_at) for a
// persisted one.
func (t *Task) Save(ctx context.Context) error {
	if t.err != nil {
		return t.err
	}
	if t.title == "" {
		return &ValidationError{Field: "title", Message: "must not be empty"}
	}
	if t.id == 0 {
		return t.store.insert(ctx, t)
	}
	return t.store.update(ctx, t)
}

// Delete removes the stored row. Deleting an unpersisted task fails
// with ErrNotPersisted. The in-memory value keeps its fields but is no
// longer backed by storage.
func (t *Task) Delete(ctx context.Context) error {
	if t.id == 0 {
		return ErrNotPersisted
	}
	return t.store.delete(ctx, t)
}

// ToMap produces the flat representation used by API responses and
// form pre-population: dates as YYYY-MM-DD, timestamps as
// YYYY-MM-DD HH:MM:SS, nils preserved.
func (t *Task) ToMap() map[string]interface{} {
	m := map[string]interface{}{
		"id":          nullableID(t.id),
		"title":       t.title,
		"description": nullableString(t.description),
		"status":      string(t.status),
		"priority":    string(t.priority),
		"due_date":    nil,
		"category_id": nil,
		"created_at":  nil,
		"updated_at":  nil,
	}
	if t.dueDate != nil {
		m["due_date"] = t.dueDate.String()
	}
	if t.categoryID != nil {
		m["category_id"] = *t.categoryID
	}
	if t.createdAt != nil {
		m["created_at"] = t.createdAt.String()
	}
	if t.updatedAt != nil {
		m["updated_at"] = t.updatedAt.String()
	}
	// Join enrichment, present only on listing reads.
	if t.categoryName != nil {
		m["category_name"] = *t.categoryName
	}
	if t.categoryColor != nil {
		m["category_color"] = *t.categoryColor
	}
	return m
}

func nullableID(id int64) interface{} {
	if id == 0 {
		return nil
	}
	return id
}

func nullableString(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}
