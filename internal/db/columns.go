package db

import (
	"context"
	"fmt"

	"github.com/lib/pq"
)

// Optional columns that older deployments may be missing. The repositories
// for movies and games consult the probed set and leave absent columns out
// of their statements instead of failing per request with a 42703.
var optionalColumns = map[string][]string{
	"movies": {"director", "runtime_minutes"},
	"games":  {"hours_played", "completion"},
}

// undefinedColumn is the postgres error code for "column does not exist".
const undefinedColumn = "42703"

// ColumnSet records which optional columns exist in the connected database.
type ColumnSet struct {
	present map[string]bool
}

// Has reports whether table.column exists.
func (c *ColumnSet) Has(table, column string) bool {
	if c == nil {
		return false
	}
	return c.present[table+"."+column]
}

// AllColumns returns a ColumnSet with every optional column present, for
// tests and freshly migrated databases.
func AllColumns() *ColumnSet {
	c := &ColumnSet{present: make(map[string]bool)}
	for table, cols := range optionalColumns {
		for _, col := range cols {
			c.present[table+"."+col] = true
		}
	}
	return c
}

// NoColumns returns a ColumnSet with every optional column absent.
func NoColumns() *ColumnSet {
	return &ColumnSet{present: make(map[string]bool)}
}

// ProbeColumns queries information_schema once at startup and records which
// optional columns exist.
func (db *DB) ProbeColumns(ctx context.Context) (*ColumnSet, error) {
	set := &ColumnSet{present: make(map[string]bool)}

	for table, cols := range optionalColumns {
		query := `
			SELECT column_name
			FROM information_schema.columns
			WHERE table_name = $1 AND column_name = ANY($2)
		`

		rows, err := db.QueryContext(ctx, query, table, pq.Array(cols))
		if err != nil {
			return nil, fmt.Errorf("probe columns for %s: %w", table, err)
		}

		for rows.Next() {
			var name string
			if err := rows.Scan(&name); err != nil {
				rows.Close()
				return nil, err
			}
			set.present[table+"."+name] = true
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return nil, err
		}
		rows.Close()
	}

	return set, nil
}

// isUndefinedColumn reports whether err is the postgres "column does not
// exist" error.
func isUndefinedColumn(err error) bool {
	pqErr, ok := err.(*pq.Error)
	return ok && string(pqErr.Code) == undefinedColumn
}

// markDrift annotates a 42703 from a statement built against the probed
// column set. It can only mean the schema changed after startup, so the
// log line should point at the probe rather than the statement.
func markDrift(err error) error {
	if isUndefinedColumn(err) {
		return fmt.Errorf("optional column dropped after startup probe: %w", err)
	}
	return err
}

func isUniqueViolation(err error) bool {
	pqErr, ok := err.(*pq.Error)
	return ok && string(pqErr.Code) == "23505"
}
