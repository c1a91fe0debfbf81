package task

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"

	"github.com/eleven-am/taskdeck/internal/db"
)

// priorityRank orders string priorities the way a native enum would:
// high before medium before low when sorted descending.
const priorityRank = "CASE t.priority WHEN 'high' THEN 3 WHEN 'medium' THEN 2 ELSE 1 END"

// Listing order: priority descending, then due date ascending. NULL
// due dates take the store's native placement: last on postgres,
// first on sqlite.
var listingOrder = []string{priorityRank + " DESC", "t.due_date ASC"}

var taskColumns = []string{
	"t.id", "t.title", "t.description", "t.status", "t.priority",
	"t.due_date", "t.category_id", "t.created_at", "t.updated_at",
}

var taskJoinColumns = append(append([]string{}, taskColumns...),
	"c.name AS category_name", "c.color AS category_color")

// Store issues all task and category SQL through the gateway. One
// store per process, constructed with the gateway passed in.
type Store struct {
	gw *db.Gateway
}

func NewStore(gw *db.Gateway) *Store {
	return &Store{gw: gw}
}

// NewTask returns an unpersisted entity bound to the store, with the
// default status and priority.
func (s *Store) NewTask() *Task {
	return &Task{
		store:    s,
		status:   StatusPending,
		priority: PriorityMedium,
	}
}

type taskRow struct {
	ID            int64          `db:"id"`
	Title         string         `db:"title"`
	Description   sql.NullString `db:"description"`
	Status        string         `db:"status"`
	Priority      string         `db:"priority"`
	DueDate       NullDate       `db:"due_date"`
	CategoryID    sql.NullInt64  `db:"category_id"`
	CreatedAt     NullStamp      `db:"created_at"`
	UpdatedAt     NullStamp      `db:"updated_at"`
	CategoryName  sql.NullString `db:"category_name"`
	CategoryColor sql.NullString `db:"category_color"`
}

func (s *Store) fromRow(row taskRow) *Task {
	t := &Task{
		store:    s,
		id:       row.ID,
		title:    row.Title,
		status:   Status(row.Status),
		priority: Priority(row.Priority),
	}
	if row.Description.Valid {
		t.description = &row.Description.String
	}
	if row.DueDate.Valid {
		d := row.DueDate.Date
		t.dueDate = &d
	}
	if row.CategoryID.Valid {
		id := row.CategoryID.Int64
		t.categoryID = &id
	}
	if row.CreatedAt.Valid {
		st := row.CreatedAt.Stamp
		t.createdAt = &st
	}
	if row.UpdatedAt.Valid {
		st := row.UpdatedAt.Stamp
		t.updatedAt = &st
	}
	if row.CategoryName.Valid {
		t.categoryName = &row.CategoryName.String
	}
	if row.CategoryColor.Valid {
		t.categoryColor = &row.CategoryColor.String
	}
	return t
}

// FindByID returns the matching entity, or nil without an error when
// no row exists: lookup misses are absence, not failures.
func (s *Store) FindByID(ctx context.Context, id int64) (*Task, error) {
	query, args, err := squirrel.Select(taskColumns...).
		From("tasks t").
		Where(squirrel.Eq{"t.id": id}).
		ToSql()
	if err != nil {
		return nil, err
	}

	var row taskRow
	if err := s.gw.Get(ctx, &row, query, args...); err != nil {
		if db.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return s.fromRow(row), nil
}

// GetAll returns every task, optionally restricted to one valid status.
// An empty or invalid filter means no filter. Listings are enriched
// with the category name and color through a LEFT JOIN.
func (s *Store) GetAll(ctx context.Context, statusFilter Status) ([]*Task, error) {
	builder := squirrel.Select(taskJoinColumns...).
		From("tasks t").
		LeftJoin("categories c ON t.category_id = c.id").
		OrderBy(listingOrder...)

	if statusFilter.Valid() {
		builder = builder.Where(squirrel.Eq{"t.status": statusFilter})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	var rows []taskRow
	if err := s.gw.Select(ctx, &rows, query, args...); err != nil {
		return nil, err
	}

	tasks := make([]*Task, 0, len(rows))
	for _, row := range rows {
		tasks = append(tasks, s.fromRow(row))
	}
	return tasks, nil
}

// MarkAsCompleted forces a task's status to completed. It is an
// ordinary update, not a distinct persistence path.
func (s *Store) MarkAsCompleted(ctx context.Context, id int64) (*Task, error) {
	t, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, ErrTaskNotFound
	}
	if err := t.SetStatus(StatusCompleted).Save(ctx); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Task) insertValues() map[string]interface{} {
	values := map[string]interface{}{
		"title":       t.title,
		"description": nullString(t.description),
		"status":      string(t.status),
		"priority":    string(t.priority),
		"due_date":    nullDate(t.dueDate),
		"category_id": nullInt64(t.categoryID),
	}
	return values
}

func (s *Store) insert(ctx context.Context, t *Task) error {
	builder := squirrel.Insert("tasks").SetMap(t.insertValues())

	if s.gw.SupportsReturning() {
		query, args, err := builder.Suffix("RETURNING id").ToSql()
		if err != nil {
			return err
		}
		var id int64
		if err := s.gw.Get(ctx, &id, query, args...); err != nil {
			return err
		}
		t.id = id
		return nil
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return err
	}
	result, err := s.gw.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return &db.Error{Op: "insert", Table: "tasks", Err: err}
	}
	t.id = id
	return nil
}

func (s *Store) update(ctx context.Context, t *Task) error {
	query, args, err := squirrel.Update("tasks").
		SetMap(t.insertValues()).
		Set("updated_at", squirrel.Expr("CURRENT_TIMESTAMP")).
		Where(squirrel.Eq{"id": t.id}).
		ToSql()
	if err != nil {
		return err
	}
	_, err = s.gw.Exec(ctx, query, args...)
	return err
}

func (s *Store) delete(ctx context.Context, t *Task) error {
	query, args, err := squirrel.Delete("tasks").
		Where(squirrel.Eq{"id": t.id}).
		ToSql()
	if err != nil {
		return err
	}
	_, err = s.gw.Exec(ctx, query, args...)
	return err
}

func nullString(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}

func nullInt64(i *int64) interface{} {
	if i == nil {
		return nil
	}
	return *i
}

func nullDate(d *Date) interface{} {
	if d == nil {
		return nil
	}
	return d.String()
}
