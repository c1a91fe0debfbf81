package task

import (
	"context"

	"github.com/Masterminds/squirrel"
)

// Category is a lightweight read-only reference entity used to enrich
// task listings and populate selection lists.
type Category struct {
	ID    int64  `db:"id" json:"id"`
	Name  string `db:"name" json:"name"`
	Color string `db:"color" json:"color"`
}

// Statistics aggregates task counts. Statuses or priorities with no
// tasks are absent from the maps; callers treat missing keys as zero.
type Statistics struct {
	ByStatus   map[Status]int   `json:"by_status"`
	ByPriority map[Priority]int `json:"by_priority"`
	Overdue    int              `json:"overdue"`
	DueToday   int              `json:"due_today"`
}

type groupCount struct {
	Key   string `db:"key"`
	Count int    `db:"count"`
}

// Statistics issues the independent aggregate queries and assembles
// one structural result. An empty task set yields empty maps and zero
// counts without error.
func (s *Store) Statistics(ctx context.Context) (*Statistics, error) {
	stats := &Statistics{
		ByStatus:   make(map[Status]int),
		ByPriority: make(map[Priority]int),
	}

	var byStatus []groupCount
	if err := s.gw.Select(ctx, &byStatus,
		"SELECT status AS key, COUNT(*) AS count FROM tasks GROUP BY status"); err != nil {
		return nil, err
	}
	for _, row := range byStatus {
		stats.ByStatus[Status(row.Key)] = row.Count
	}

	var byPriority []groupCount
	if err := s.gw.Select(ctx, &byPriority,
		"SELECT priority AS key, COUNT(*) AS count FROM tasks GROUP BY priority"); err != nil {
		return nil, err
	}
	for _, row := range byPriority {
		stats.ByPriority[Priority(row.Key)] = row.Count
	}

	// CURRENT_DATE is understood by both supported engines; sqlite
	// compares ISO date text lexically, which is equivalent.
	if err := s.gw.Get(ctx, &stats.Overdue,
		"SELECT COUNT(*) FROM tasks WHERE due_date < CURRENT_DATE AND status != ?",
		StatusCompleted); err != nil {
		return nil, err
	}

	if err := s.gw.Get(ctx, &stats.DueToday,
		"SELECT COUNT(*) FROM tasks WHERE due_date = CURRENT_DATE AND status != ?",
		StatusCompleted); err != nil {
		return nil, err
	}

	return stats, nil
}

// Search matches term as a substring against title or description,
// with the listing order. Case-sensitivity follows the store's
// collation. Matches come back as entities, same as every other read
// path.
func (s *Store) Search(ctx context.Context, term string) ([]*Task, error) {
	pattern := "%" + term + "%"
	query, args, err := squirrel.Select(taskJoinColumns...).
		From("tasks t").
		LeftJoin("categories c ON t.category_id = c.id").
		Where(squirrel.Or{
			squirrel.Like{"t.title": pattern},
			squirrel.Like{"t.description": pattern},
		}).
		OrderBy(listingOrder...).
		ToSql()
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

// Categories returns all categories ordered by name. No pagination,
// no filtering.
func (s *Store) Categories(ctx context.Context) ([]Category, error) {
	var categories []Category
	err := s.gw.Select(ctx, &categories,
		"SELECT id, name, color FROM categories ORDER BY name")
	if err != nil {
		return nil, err
	}
	return categories, nil
}
