// Package dbshell provides a backend-agnostic SQL execution client: it
// connects to an embedded SQLite database (local file or :memory:) or a
// remote PostgreSQL server (postgres:// connection string), executes SQL
// text, and renders results as aligned text tables.
//
// # Basic Usage
//
// Create a client, run statements, read back outcome text:
//
//	cl := dbshell.New(":memory:", nil)
//	defer cl.Close()
//
//	out, _ := cl.RunStatement("CREATE TABLE users (id INTEGER, name TEXT)")
//	out, _ = cl.RunStatement("INSERT INTO users VALUES (1, 'Anna')")
//	// out == "OK (1 rows affected)"
//
//	out, _ = cl.RunStatement("SELECT * FROM users")
//	fmt.Println(out)
//	// id | name
//	// ---+-----
//	// 1  | Anna
//
// # Remote databases
//
// PostgreSQL support is optional. Blank-import the postgres subpackage to
// enable postgres:// targets:
//
//	import _ "github.com/dbshell/dbshell/postgres"
//
// Without it, connecting to a postgres:// target fails with
// dbshell.ErrMissingDriver before any network attempt.
//
// A Client is single-threaded: callers serialize RunStatement/RunScript on
// one instance. Every operation blocks until the backend returns.
package dbshell

import (
	"io"

	"github.com/dbshell/dbshell/internal/backend"
	"github.com/dbshell/dbshell/internal/client"
	"github.com/dbshell/dbshell/internal/logger"
)

// Client executes SQL against one connection at a time. See client.Client.
type Client = client.Client

// Logger is the logging port consumed by the client. See logger.Logger.
type Logger = logger.Logger

// Ctx is structured log line context.
type Ctx = logger.Ctx

// ConnError is a failed connection attempt.
type ConnError = backend.ConnError

// ErrMissingDriver matches connection errors caused by an absent remote
// backend (errors.Is).
var ErrMissingDriver = backend.ErrMissingDriver

// New returns a Client for the given target; the connection opens lazily on
// first use. A nil log discards all log output.
func New(target string, log Logger) *Client {
	return client.New(target, log)
}

// NewLogger returns a Logger writing human-readable lines to w. verbose
// enables informational messages, debug everything.
func NewLogger(w io.Writer, verbose bool, debug bool) Logger {
	return logger.New(w, verbose, debug)
}

// FormatRows renders columns and rows as an aligned text table.
func FormatRows(columns []string, rows [][]any) string {
	return client.FormatRows(columns, rows)
}

// SplitStatements splits script text into individual SQL statements.
func SplitStatements(script string) []string {
	return client.SplitStatements(script)
}
