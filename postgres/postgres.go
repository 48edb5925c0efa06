// Package postgres enables remote PostgreSQL targets. Blank-import it to
// register the backend:
//
//	import _ "github.com/dbshell/dbshell/postgres"
//
// Without this import, connecting to a postgres:// target fails with
// dbshell.ErrMissingDriver before any network attempt.
//
// The package only re-exposes the registration; the implementation remains
// hidden under internal/backend/postgres.
package postgres

import (
	_ "github.com/dbshell/dbshell/internal/backend/postgres"
)
