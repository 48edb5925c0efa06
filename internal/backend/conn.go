package backend

import (
	"database/sql"
	"strings"

	_ "modernc.org/sqlite" // embedded engine, always available
)

// conn adapts a database/sql handle to the Connection capability set. Both
// backends share it; they differ only in driver, DSN and script capability.
//
// Statements run inside an explicit transaction that is begun lazily on first
// execute and finished by Commit. A failed statement rolls the transaction
// back (on Postgres a failed statement poisons it until rollback), which keeps
// the connection usable for subsequent commands.
type conn struct {
	db   *sql.DB
	tx   *sql.Tx
	exec Executor
}

// NewConnection wraps an opened database/sql handle. scripts selects whether
// the executor advertises native multi-statement execution.
func NewConnection(db *sql.DB, scripts bool) Connection {
	c := &conn{db: db}
	e := &executor{c: c}
	if scripts {
		c.exec = &scriptCapableExecutor{executor: e}
	} else {
		c.exec = e
	}
	return c
}

func openEmbedded(target string) (Connection, error) {
	db, err := sql.Open("sqlite", target)
	if err != nil {
		return nil, &ConnError{Kind: OpenFailure, Target: target, Err: err}
	}

	// A :memory: database exists per low-level connection; cap the pool at
	// one so the whole session sees a single instance.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, &ConnError{Kind: OpenFailure, Target: target, Err: err}
	}

	return NewConnection(db, true), nil
}

func (c *conn) Executor() Executor {
	return c.exec
}

func (c *conn) Commit() error {
	if c.tx == nil {
		return nil
	}
	tx := c.tx
	c.tx = nil
	return tx.Commit()
}

// Close is safe to call repeatedly; any open transaction is rolled back
// best-effort first.
func (c *conn) Close() error {
	if c.db == nil {
		return nil
	}
	c.abort()
	db := c.db
	c.db = nil
	return db.Close()
}

// begin opens the transaction lazily. Access is single-threaded per the
// client's concurrency model, so no locking here.
func (c *conn) begin() (*sql.Tx, error) {
	if c.tx != nil {
		return c.tx, nil
	}
	tx, err := c.db.Begin()
	if err != nil {
		return nil, err
	}
	c.tx = tx
	return tx, nil
}

func (c *conn) abort() {
	if c.tx != nil {
		_ = c.tx.Rollback()
		c.tx = nil
	}
}

// rowKeywords lead statements that produce column metadata. database/sql
// separates Query from Exec, so the executor classifies by leading keyword
// rather than inspecting a cursor description.
var rowKeywords = []string{"SELECT", "WITH", "VALUES", "SHOW", "EXPLAIN", "PRAGMA"}

func returnsRows(query string) bool {
	q := strings.ToUpper(strings.TrimSpace(query))
	for _, kw := range rowKeywords {
		if !strings.HasPrefix(q, kw) {
			continue
		}
		rest := q[len(kw):]
		if rest == "" || rest[0] == ' ' || rest[0] == '\t' || rest[0] == '\n' || rest[0] == '\r' || rest[0] == '(' || rest[0] == ';' {
			return true
		}
	}
	return false
}

type executor struct {
	c *conn
}

func (e *executor) Execute(query string) (*Result, error) {
	tx, err := e.c.begin()
	if err != nil {
		return nil, err
	}

	if !returnsRows(query) {
		res, err := tx.Exec(query)
		if err != nil {
			e.c.abort()
			return nil, err
		}
		affected, err := res.RowsAffected()
		if err != nil {
			affected = 0
		}
		return &Result{Affected: affected}, nil
	}

	rows, err := tx.Query(query)
	if err != nil {
		e.c.abort()
		return nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		e.c.abort()
		return nil, err
	}

	// A row-keyword statement can still produce no result set, e.g. a
	// data-modifying CTE. Report it like a plain mutation.
	if len(cols) == 0 {
		if err := rows.Err(); err != nil {
			e.c.abort()
			return nil, err
		}
		return &Result{}, nil
	}

	collected := make([][]any, 0)
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			e.c.abort()
			return nil, err
		}
		collected = append(collected, values)
	}
	if err := rows.Err(); err != nil {
		e.c.abort()
		return nil, err
	}

	return &Result{Columns: cols, Rows: collected, HasRows: true}, nil
}

// scriptCapableExecutor adds native multi-statement execution. The sqlite
// driver runs every statement of an argument-free Exec, so the whole script
// text goes down in one call.
type scriptCapableExecutor struct {
	*executor
}

func (e *scriptCapableExecutor) ExecuteScript(script string) error {
	tx, err := e.c.begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(script); err != nil {
		e.c.abort()
		return err
	}
	return nil
}
