package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Gateway wraps the live sqlx pool and is the only component that
// issues SQL. Queries are written with ? placeholders and rebound for
// the active driver before execution.
type Gateway struct {
	conn *sqlx.DB
}

func NewGateway(conn *sqlx.DB) *Gateway {
	return &Gateway{conn: conn}
}

func (g *Gateway) Driver() string {
	return g.conn.DriverName()
}

// SupportsReturning reports whether inserts should capture the
// generated identity via a RETURNING clause instead of
// Result.LastInsertId, which lib/pq does not implement.
func (g *Gateway) SupportsReturning() bool {
	return g.conn.DriverName() == DriverPostgres
}

func (g *Gateway) Rebind(query string) string {
	return g.conn.Rebind(query)
}

// Select runs a parameterized read and scans all rows into dest.
func (g *Gateway) Select(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	if err := g.conn.SelectContext(ctx, dest, g.conn.Rebind(query), args...); err != nil {
		return &Error{Op: "select", Err: fmt.Errorf("query failed: %w", err)}
	}
	return nil
}

// Get runs a parameterized read expecting exactly one row.
// A miss surfaces as ErrNotFound so callers can treat absence distinctly.
func (g *Gateway) Get(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	err := g.conn.GetContext(ctx, dest, g.conn.Rebind(query), args...)
	if errors.Is(err, sql.ErrNoRows) {
		return &Error{Op: "get", Err: ErrNotFound}
	}
	if err != nil {
		return &Error{Op: "get", Err: fmt.Errorf("query failed: %w", err)}
	}
	return nil
}

// Exec runs a parameterized write.
func (g *Gateway) Exec(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	result, err := g.conn.ExecContext(ctx, g.conn.Rebind(query), args...)
	if err != nil {
		return nil, &Error{Op: "exec", Err: fmt.Errorf("query failed: %w", err)}
	}
	return result, nil
}

// WithTransaction runs fn inside a transaction, committing on nil and
// rolling back otherwise. No operation in the system spans multiple
// statements today; this exists for callers that will.
func (g *Gateway) WithTransaction(ctx context.Context, fn func(*sqlx.Tx) error) error {
	tx, err := g.conn.BeginTxx(ctx, nil)
	if err != nil {
		return &Error{Op: "begin", Err: fmt.Errorf("failed to begin transaction: %w", err)}
	}

	committed := false
	defer func() {
		if !committed {
			tx.Rollback()
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return &Error{Op: "commit", Err: fmt.Errorf("failed to commit transaction: %w", err)}
	}
	committed = true

	return nil
}

func (g *Gateway) Ping(ctx context.Context) error {
	return g.conn.PingContext(ctx)
}

func (g *Gateway) Close() error {
	return g.conn.Close()
}
