// Package repo is the persistence boundary. The simulation core consumes a
// transaction object with execute/escape primitives; the concrete database
// driver lives outside this repository and is injected as a Connector. A
// map-backed provider ships for development and tests.
package repo

import "context"

// Row is one result row, read by column name with typed conversion.
type Row map[string]any

// Uint64 converts the named column, or returns 0 when absent.
func (r Row) Uint64(col string) uint64 {
	switch v := r[col].(type) {
	case uint64:
		return v
	case int64:
		return uint64(v)
	case int:
		return uint64(v)
	case float64:
		return uint64(v)
	}
	return 0
}

// Int64 converts the named column, or returns 0 when absent.
func (r Row) Int64(col string) int64 {
	switch v := r[col].(type) {
	case int64:
		return v
	case uint64:
		return int64(v)
	case int:
		return int64(v)
	case float64:
		return int64(v)
	}
	return 0
}

// String converts the named column, or returns "" when absent.
func (r Row) String(col string) string {
	if v, ok := r[col].(string); ok {
		return v
	}
	return ""
}

// Bool converts the named column, or returns false when absent.
func (r Row) Bool(col string) bool {
	switch v := r[col].(type) {
	case bool:
		return v
	case int64:
		return v != 0
	case uint64:
		return v != 0
	}
	return false
}

// Rows is a result set. Inserts that hit a uniqueness conflict return an
// empty set rather than an error; repositories read that as "already
// exists".
type Rows []Row

// Transaction is the execute/escape boundary to the external database.
// A transaction is acquired, used, and released within one handler
// invocation; it never crosses a tick.
type Transaction interface {
	Execute(stmt string) (Rows, error)
	Escape(s string) string
	Commit() error
	Rollback() error
}

// Connector opens transactions against the external database.
type Connector interface {
	Begin(ctx context.Context) (Transaction, error)
}
