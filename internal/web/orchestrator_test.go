package web

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eleven-am/taskdeck/internal/db"
	"github.com/eleven-am/taskdeck/internal/task"
)

var taskRowColumns = []string{
	"id", "title", "description", "status", "priority",
	"due_date", "category_id", "created_at", "updated_at",
}

var taskJoinRowColumns = append(append([]string{}, taskRowColumns...),
	"category_name", "category_color")

func newTestOrchestrator(t *testing.T) (*Orchestrator, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	store := task.NewStore(db.NewGateway(sqlx.NewDb(mockDB, "postgres")))
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewOrchestrator(store, log), mock
}

func strPtr(s string) *string { return &s }

func TestDoCreate(t *testing.T) {
	t.Run("persists and reports success", func(t *testing.T) {
		orch, mock := newTestOrchestrator(t)

		mock.ExpectQuery(`INSERT INTO tasks .* RETURNING id`).
			WithArgs(nil, nil, nil, "high", "pending", "Buy milk").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))

		result := orch.Do(context.Background(), Submission{
			Action:   ActionCreate,
			Title:    strPtr("Buy milk"),
			Status:   strPtr("pending"),
			Priority: strPtr("high"),
		})

		assert.Empty(t, result.Error)
		assert.Equal(t, "Task created successfully.", result.Message)
		require.NotNil(t, result.Task)
		assert.Equal(t, int64(1), result.Task["id"])
		assert.Equal(t, "high", result.Task["priority"])

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("validation failure becomes a user message", func(t *testing.T) {
		orch, mock := newTestOrchestrator(t)

		result := orch.Do(context.Background(), Submission{
			Action: ActionCreate,
			Title:  strPtr("   "),
		})

		assert.Empty(t, result.Message)
		assert.Contains(t, result.Error, "title")

		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDoUnknownActionIsNoOp(t *testing.T) {
	orch, mock := newTestOrchestrator(t)

	for _, action := range []string{"", "archive", "CREATE"} {
		result := orch.Do(context.Background(), Submission{Action: action, ID: 1})
		assert.Empty(t, result.Message)
		assert.Empty(t, result.Error)
	}

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDoUpdate(t *testing.T) {
	t.Run("applies only the sent fields", func(t *testing.T) {
		orch, mock := newTestOrchestrator(t)

		mock.ExpectQuery(`SELECT t\.id, t\.title, .* FROM tasks t WHERE t\.id = \$1`).
			WithArgs(int64(4)).
			WillReturnRows(sqlmock.NewRows(taskRowColumns).
				AddRow(int64(4), "Buy milk", "Two liters", "pending", "high", "2024-12-31", nil, nil, nil))

		// Only priority was sent; everything else keeps its stored value.
		mock.ExpectExec(`UPDATE tasks SET`).
			WithArgs(nil, "Two liters", "2024-12-31", "low", "pending", "Buy milk", int64(4)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		result := orch.Do(context.Background(), Submission{
			Action:   ActionUpdate,
			ID:       4,
			Priority: strPtr("low"),
		})

		assert.Equal(t, "Task updated successfully.", result.Message)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing id becomes a user message", func(t *testing.T) {
		orch, mock := newTestOrchestrator(t)

		mock.ExpectQuery(`SELECT t\.id, t\.title, .* FROM tasks t WHERE t\.id = \$1`).
			WithArgs(int64(999)).
			WillReturnRows(sqlmock.NewRows(taskRowColumns))

		result := orch.Do(context.Background(), Submission{
			Action: ActionUpdate,
			ID:     999,
			Title:  strPtr("Anything"),
		})

		assert.Equal(t, "task not found", result.Error)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDoComplete(t *testing.T) {
	orch, mock := newTestOrchestrator(t)

	mock.ExpectQuery(`SELECT t\.id, t\.title, .* FROM tasks t WHERE t\.id = \$1`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(taskRowColumns).
			AddRow(int64(7), "Buy milk", nil, "pending", "medium", nil, nil, nil, nil))

	mock.ExpectExec(`UPDATE tasks SET`).
		WithArgs(nil, nil, nil, "medium", "completed", "Buy milk", int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	result := orch.Do(context.Background(), Submission{Action: ActionComplete, ID: 7})

	assert.Equal(t, "Task marked as completed.", result.Message)
	assert.Equal(t, "completed", result.Task["status"])

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDoDelete(t *testing.T) {
	orch, mock := newTestOrchestrator(t)

	mock.ExpectQuery(`SELECT t\.id, t\.title, .* FROM tasks t WHERE t\.id = \$1`).
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows(taskRowColumns).
			AddRow(int64(2), "Old task", nil, "completed", "low", nil, nil, nil, nil))

	mock.ExpectExec(`DELETE FROM tasks WHERE id = \$1`).
		WithArgs(int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	result := orch.Do(context.Background(), Submission{Action: ActionDelete, ID: 2})

	assert.Equal(t, "Task deleted successfully.", result.Message)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestView(t *testing.T) {
	t.Run("assembles listing, categories, statistics and enums", func(t *testing.T) {
		orch, mock := newTestOrchestrator(t)

		mock.ExpectQuery(`SELECT .* FROM tasks t LEFT JOIN categories c .* WHERE t\.status = \$1 ORDER BY`).
			WithArgs("pending").
			WillReturnRows(sqlmock.NewRows(taskJoinRowColumns).
				AddRow(int64(1), "Buy milk", nil, "pending", "high", nil, nil, nil, nil, nil, nil))
		mock.ExpectQuery(`SELECT id, name, color FROM categories ORDER BY name`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "color"}).
				AddRow(int64(1), "Work", "#667eea"))
		mock.ExpectQuery(`SELECT status AS key`).
			WillReturnRows(sqlmock.NewRows([]string{"key", "count"}).AddRow("pending", 1))
		mock.ExpectQuery(`SELECT priority AS key`).
			WillReturnRows(sqlmock.NewRows([]string{"key", "count"}).AddRow("high", 1))
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM tasks WHERE due_date <`).
			WithArgs("completed").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM tasks WHERE due_date =`).
			WithArgs("completed").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		view := orch.View(context.Background(), "pending", 0)

		assert.Empty(t, view.Error)
		require.Len(t, view.Tasks, 1)
		assert.Equal(t, "Buy milk", view.Tasks[0]["title"])
		require.Len(t, view.Categories, 1)
		assert.Equal(t, 1, view.Statistics.ByStatus[task.StatusPending])
		assert.Equal(t, task.AllowedStatuses(), view.Statuses)
		assert.Equal(t, task.AllowedPriorities(), view.Priorities)
		assert.Nil(t, view.EditTask)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("edit id pre-populates the form model", func(t *testing.T) {
		orch, mock := newTestOrchestrator(t)

		mock.ExpectQuery(`SELECT .* FROM tasks t LEFT JOIN categories c .* ORDER BY`).
			WillReturnRows(sqlmock.NewRows(taskJoinRowColumns))
		mock.ExpectQuery(`SELECT id, name, color FROM categories`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "color"}))
		mock.ExpectQuery(`SELECT status AS key`).
			WillReturnRows(sqlmock.NewRows([]string{"key", "count"}))
		mock.ExpectQuery(`SELECT priority AS key`).
			WillReturnRows(sqlmock.NewRows([]string{"key", "count"}))
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM tasks WHERE due_date <`).
			WithArgs("completed").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM tasks WHERE due_date =`).
			WithArgs("completed").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectQuery(`SELECT t\.id, t\.title, .* FROM tasks t WHERE t\.id = \$1`).
			WithArgs(int64(5)).
			WillReturnRows(sqlmock.NewRows(taskRowColumns).
				AddRow(int64(5), "Edit me", nil, "pending", "medium", "2025-01-15", nil, nil, nil))

		view := orch.View(context.Background(), "", 5)

		require.NotNil(t, view.EditTask)
		assert.Equal(t, "Edit me", view.EditTask["title"])
		assert.Equal(t, "2025-01-15", view.EditTask["due_date"])

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("read failure yields an error view with empty collections", func(t *testing.T) {
		orch, mock := newTestOrchestrator(t)

		mock.ExpectQuery(`SELECT .* FROM tasks t LEFT JOIN categories c`).
			WillReturnError(assert.AnError)

		view := orch.View(context.Background(), "", 0)

		assert.NotEmpty(t, view.Error)
		assert.Empty(t, view.Tasks)
		assert.Empty(t, view.Categories)
		assert.Nil(t, view.Statistics)

		require.NoError(t, mock.ExpectationsWereMet())
	})
}

// End-to-end lifecycle: create, list under pending, complete, and the
// task shows up under completed.
func TestCreateCompleteFlow(t *testing.T) {
	orch, mock := newTestOrchestrator(t)

	mock.ExpectQuery(`INSERT INTO tasks .* RETURNING id`).
		WithArgs(nil, nil, nil, "high", "pending", "Buy milk").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(10)))

	result := orch.Do(context.Background(), Submission{
		Action:   ActionCreate,
		Title:    strPtr("Buy milk"),
		Status:   strPtr("pending"),
		Priority: strPtr("high"),
	})
	require.Empty(t, result.Error)

	mock.ExpectQuery(`SELECT .* WHERE t\.status = \$1 ORDER BY`).
		WithArgs("pending").
		WillReturnRows(sqlmock.NewRows(taskJoinRowColumns).
			AddRow(int64(10), "Buy milk", nil, "pending", "high", nil, nil, nil, nil, nil, nil))

	pending, err := orch.store.GetAll(context.Background(), task.StatusPending)
	require.NoError(t, err)
	require.Len(t, pending, 1)

	mock.ExpectQuery(`SELECT t\.id, t\.title, .* FROM tasks t WHERE t\.id = \$1`).
		WithArgs(int64(10)).
		WillReturnRows(sqlmock.NewRows(taskRowColumns).
			AddRow(int64(10), "Buy milk", nil, "pending", "high", nil, nil, nil, nil))
	mock.ExpectExec(`UPDATE tasks SET`).
		WithArgs(nil, nil, nil, "high", "completed", "Buy milk", int64(10)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	result = orch.Do(context.Background(), Submission{Action: ActionComplete, ID: 10})
	require.Empty(t, result.Error)

	mock.ExpectQuery(`SELECT .* WHERE t\.status = \$1 ORDER BY`).
		WithArgs("pending").
		WillReturnRows(sqlmock.NewRows(taskJoinRowColumns))
	mock.ExpectQuery(`SELECT .* WHERE t\.status = \$1 ORDER BY`).
		WithArgs("completed").
		WillReturnRows(sqlmock.NewRows(taskJoinRowColumns).
			AddRow(int64(10), "Buy milk", nil, "completed", "high", nil, nil, nil, nil, nil, nil))

	pending, err = orch.store.GetAll(context.Background(), task.StatusPending)
	require.NoError(t, err)
	assert.Empty(t, pending)

	completed, err := orch.store.GetAll(context.Background(), task.StatusCompleted)
	require.NoError(t, err)
	require.Len(t, completed, 1)
	assert.Equal(t, task.StatusCompleted, completed[0].Status())

	require.NoError(t, mock.ExpectationsWereMet())
}
