// Package client implements the execution engine behind every dbshell
// front-end: it owns the connection lifecycle, runs single statements and
// script files, and turns results into display text.
package client

import (
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/dbshell/dbshell/internal/backend"
	"github.com/dbshell/dbshell/internal/logger"
)

// Client executes SQL against one connection at a time. It is not safe for
// concurrent use; front-ends serialize calls onto one Client instance.
type Client struct {
	target string
	conn   backend.Connection
	log    logger.Logger
}

// New returns a Client for the given target. The connection is opened lazily
// on first use. A nil log discards everything.
func New(target string, log logger.Logger) *Client {
	if log == nil {
		log = logger.Discard()
	}
	return &Client{
		target: target,
		log:    log.AddContext(logger.Ctx{"session": uuid.NewString()}),
	}
}

// Target returns the currently configured connection target.
func (c *Client) Target() string {
	return c.target
}

// SetTarget changes the target used by the next Connect. An already open
// connection is unaffected until then.
func (c *Client) SetTarget(target string) {
	c.target = target
}

// Connect opens a connection to the configured target, closing any previous
// one first. There is never more than one live connection per Client.
func (c *Client) Connect() error {
	c.Close()

	conn, err := backend.Open(c.target)
	if err != nil {
		c.log.Error("Connection failed", logger.Ctx{"target": c.target, "err": err})
		return err
	}
	c.conn = conn
	c.log.Info("Connected", logger.Ctx{"target": c.target, "backend": backend.Classify(c.target).String()})
	return nil
}

// Connected reports whether a connection is currently open.
func (c *Client) Connected() bool {
	return c.conn != nil
}

func (c *Client) ensureExecutor() (backend.Executor, error) {
	if c.conn == nil {
		if err := c.Connect(); err != nil {
			return nil, err
		}
	}
	return c.conn.Executor(), nil
}

// RunStatement executes a single SQL statement and returns its outcome text:
// a rendered table for queries, "OK (N rows affected)" for mutations, or an
// "Error: ..." message for a failed statement. Statement failures are
// recovered into text; only connection-level problems surface as an error.
// The connection is committed before returning.
func (c *Client) RunStatement(sql string) (string, error) {
	exec, err := c.ensureExecutor()
	if err != nil {
		return "", err
	}

	out := c.executeStatement(exec, sql)

	if err := c.conn.Commit(); err != nil {
		c.log.Error("Commit failed", logger.Ctx{"err": err})
		return "", fmt.Errorf("commit: %w", err)
	}
	return out, nil
}

func (c *Client) executeStatement(exec backend.Executor, sql string) string {
	res, err := exec.Execute(sql)
	if err != nil {
		out := "Error: " + err.Error()
		c.log.Error(out)
		return out
	}

	if res.HasRows {
		c.log.Info("Query returned rows", logger.Ctx{"rows": len(res.Rows)})
		return FormatRows(res.Columns, res.Rows)
	}

	out := fmt.Sprintf("OK (%d rows affected)", res.Affected)
	c.log.Info(out)
	return out
}

// RunScript reads the file at path and executes its statements. Backends with
// native script execution get the full text in one call; otherwise the text
// is split and statements run in sequence, stopping at the first failure. The
// returned text is a status message only, never per-statement results.
func (c *Client) RunScript(path string) (string, error) {
	exec, err := c.ensureExecutor()
	if err != nil {
		return "", err
	}

	text, err := os.ReadFile(path)
	if err != nil {
		c.log.Error("Script read failed", logger.Ctx{"path": path, "err": err})
		return "", fmt.Errorf("read script %s: %w", path, err)
	}
	script := string(text)

	var execErr error
	if se, ok := exec.(backend.ScriptExecutor); ok {
		execErr = se.ExecuteScript(script)
	} else {
		for _, stmt := range SplitStatements(script) {
			if _, execErr = exec.Execute(stmt); execErr != nil {
				break
			}
		}
	}

	var out string
	if execErr != nil {
		out = fmt.Sprintf("Error executing script %s: %v", path, execErr)
		c.log.Error(out)
	} else {
		out = fmt.Sprintf("Executed script: %s", path)
		c.log.Info(out)
	}

	if err := c.conn.Commit(); err != nil {
		c.log.Error("Commit failed", logger.Ctx{"err": err})
		return "", fmt.Errorf("commit: %w", err)
	}
	return out, nil
}

// Close tears the connection down best-effort. It never fails and is safe to
// call repeatedly or before any connection was opened.
func (c *Client) Close() {
	if c.conn == nil {
		return
	}
	if err := c.conn.Close(); err != nil {
		c.log.Debug("Close failed", logger.Ctx{"err": err})
	}
	c.conn = nil
}
