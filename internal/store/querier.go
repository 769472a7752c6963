package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Querier is the narrow store capability the orchestrator consumes:
// row-level select/insert/update/delete plus the ability to invoke the
// atomic upsert procedure. All raw driver responses are normalized into
// plain row maps by one adapter at this boundary, so orchestration logic
// never re-inspects driver-specific shapes.
type Querier interface {
	// QueryRows runs a statement and returns every row as a column->value map.
	QueryRows(ctx context.Context, sql string, args ...any) ([]map[string]any, error)

	// Exec runs a statement and returns the number of rows affected.
	Exec(ctx context.Context, sql string, args ...any) (int64, error)
}

// pgxQuerier adapts a pgx connection pool to the Querier boundary.
type pgxQuerier struct {
	pool *pgxpool.Pool
}

// NewQuerier wraps a pgx pool as a Querier.
func NewQuerier(pool *pgxpool.Pool) Querier {
	return &pgxQuerier{pool: pool}
}

func (q *pgxQuerier) QueryRows(ctx context.Context, sql string, args ...any) ([]map[string]any, error) {
	rows, err := q.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	var out []map[string]any
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("read row failed: %w", err)
		}
		row := make(map[string]any, len(fields))
		for i, fd := range fields {
			row[fd.Name] = values[i]
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration failed: %w", err)
	}
	return out, nil
}

func (q *pgxQuerier) Exec(ctx context.Context, sql string, args ...any) (int64, error) {
	tag, err := q.pool.Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("exec failed: %w", err)
	}
	return tag.RowsAffected(), nil
}
