package storage_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ---- mock Querier ----

type mockQuerier struct {
	queryRowFn func(ctx context.Context, sql string, args ...any) pgx.Row
	queryFn    func(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	execFn     func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

func (m *mockQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return m.queryRowFn(ctx, sql, args...)
}
func (m *mockQuerier) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return m.queryFn(ctx, sql, args...)
}
func (m *mockQuerier) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return m.execFn(ctx, sql, args...)
}

// ---- mock pgx.Row ----

type fakeRow struct {
	scanFn func(dest ...any) error
}

func (f *fakeRow) Scan(dest ...any) error { return f.scanFn(dest...) }

// ---- mock pgx.Rows ----

type fakeRows struct {
	rows    [][]any
	idx     int
	rowErr  error
	scanErr error
}

func (f *fakeRows) Next() bool                                   { f.idx++; return f.idx <= len(f.rows) }
func (f *fakeRows) Err() error                                   { return f.rowErr }
func (f *fakeRows) Close()                                       {}
func (f *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (f *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (f *fakeRows) Values() ([]any, error)                       { return nil, nil }
func (f *fakeRows) RawValues() [][]byte                          { return nil }
func (f *fakeRows) Conn() *pgx.Conn                              { return nil }

func (f *fakeRows) Scan(dest ...any) error {
	if f.scanErr != nil {
		return f.scanErr
	}
	return assignRow(f.rows[f.idx-1], dest...)
}

// assignRow copies the mock row values into scan destinations.
func assignRow(row []any, dest ...any) error {
	for i, d := range dest {
		if i >= len(row) {
			break
		}
		switch v := d.(type) {
		case *uuid.UUID:
			*v = row[i].(uuid.UUID)
		case *int:
			*v = row[i].(int)
		case *float64:
			*v = row[i].(float64)
		case *string:
			*v = row[i].(string)
		case **string:
			if row[i] == nil {
				*v = nil
			} else {
				s := row[i].(string)
				*v = &s
			}
		case **time.Time:
			if row[i] == nil {
				*v = nil
			} else {
				ts := row[i].(time.Time)
				*v = &ts
			}
		case *time.Time:
			*v = row[i].(time.Time)
		}
	}
	return nil
}

// rowQuerier returns each configured row in sequence via QueryRow,
// repeating the last one once exhausted.
func rowQuerier(rows ...[]any) *mockQuerier {
	idx := 0
	return &mockQuerier{
		queryRowFn: func(_ context.Context, _ string, _ ...any) pgx.Row {
			row := rows[idx]
			if idx < len(rows)-1 {
				idx++
			}
			return &fakeRow{scanFn: func(dest ...any) error {
				if row == nil {
					return pgx.ErrNoRows
				}
				return assignRow(row, dest...)
			}}
		},
	}
}

// fkError fabricates the Postgres foreign key violation error.
func fkError(constraint string) error {
	return &pgconn.PgError{Code: "23503", ConstraintName: constraint}
}
