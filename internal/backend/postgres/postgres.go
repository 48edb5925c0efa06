// Package postgres wires the remote PostgreSQL backend into the backend
// registry. Importing it (usually blank, through the public postgres
// subpackage) is what enables postgres:// targets; builds that leave it out
// report a missing-driver error for remote targets instead, which keeps the
// capability optional and testable.
package postgres

import (
	"database/sql"

	_ "github.com/lib/pq" // registers the "postgres" database/sql driver

	"github.com/dbshell/dbshell/internal/backend"
)

func init() {
	backend.RegisterRemote(open)
}

func open(target string) (backend.Connection, error) {
	db, err := sql.Open("postgres", target)
	if err != nil {
		return nil, &backend.ConnError{Kind: backend.OpenFailure, Target: target, Err: err}
	}

	// One statement in flight at a time; a second low-level connection
	// would only split the transaction state.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, &backend.ConnError{Kind: backend.OpenFailure, Target: target, Err: err}
	}

	// No native script capability: lib/pq prepares one statement per call,
	// so scripts are split by the engine instead.
	return backend.NewConnection(db, false), nil
}
