// Package backend provides the database connection abstraction used by the
// execution engine.
//
// What: A minimal capability set (open, get-executor, commit, close) that both
// supported engines satisfy: an embedded SQLite database (modernc.org/sqlite,
// local file or :memory:) and a remote PostgreSQL server (lib/pq, reached via
// a postgres:// connection string).
// How: Target strings are classified by prefix; postgres:// targets route to
// the remote opener, everything else to the embedded one. The remote opener is
// optional and registers itself when its subpackage is imported, mirroring the
// database/sql driver registration pattern. Requesting a remote target without
// that registration fails with ErrMissingDriver before any network I/O.
package backend

import "strings"

// Kind identifies which concrete engine a target string selects.
type Kind int

const (
	// KindEmbedded is the in-process SQLite engine (file path or :memory:).
	KindEmbedded Kind = iota
	// KindRemote is the client/server PostgreSQL engine.
	KindRemote
)

// String returns a human readable backend name.
func (k Kind) String() string {
	if k == KindRemote {
		return "postgres"
	}
	return "sqlite"
}

// Classify decides which backend a target string selects. The decision is a
// pure function of the target's prefix and is resolved once per connect.
func Classify(target string) Kind {
	if strings.HasPrefix(target, "postgres://") || strings.HasPrefix(target, "postgresql://") {
		return KindRemote
	}
	return KindEmbedded
}

// Result is the outcome of executing one SQL statement. HasRows reports
// whether the statement produced column metadata; when false, Affected holds
// the engine-reported row count.
type Result struct {
	Columns  []string
	Rows     [][]any
	HasRows  bool
	Affected int64
}

// Executor runs SQL text against its owning Connection. It is bound 1:1 to
// that Connection and becomes invalid when the Connection closes.
type Executor interface {
	Execute(query string) (*Result, error)
}

// ScriptExecutor is the optional capability of running a whole multi-statement
// script natively. Backends lacking it have scripts split for them.
type ScriptExecutor interface {
	ExecuteScript(script string) error
}

// Connection owns exactly one live Executor.
type Connection interface {
	// Executor returns the connection's executor handle. It is idempotent:
	// the same handle is returned for the lifetime of the connection.
	Executor() Executor

	// Commit makes the effects of previously executed statements durable.
	Commit() error

	// Close releases the connection. It is safe to call multiple times.
	Close() error
}

// OpenFunc opens a Connection for a target string.
type OpenFunc func(target string) (Connection, error)

var remoteOpen OpenFunc

// RegisterRemote installs the opener for the remote backend. It is called
// from the postgres subpackage's init; importing that package is what makes
// postgres:// targets work.
func RegisterRemote(fn OpenFunc) {
	remoteOpen = fn
}

// Open connects to the backend selected by target. For remote targets the
// registered opener is required; its absence is a configuration error
// (ErrMissingDriver), reported before any network attempt.
func Open(target string) (Connection, error) {
	if Classify(target) == KindRemote {
		if remoteOpen == nil {
			return nil, &ConnError{Kind: MissingDriver, Target: target}
		}
		return remoteOpen(target)
	}
	return openEmbedded(target)
}
