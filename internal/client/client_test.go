package client_test

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbshell/dbshell/internal/backend"
	"github.com/dbshell/dbshell/internal/client"
	"github.com/dbshell/dbshell/internal/logger"
)

func newMemClient(t *testing.T) *client.Client {
	t.Helper()
	cl := client.New(":memory:", nil)
	t.Cleanup(cl.Close)
	return cl
}

func TestRunStatementCreateInsertSelect(t *testing.T) {
	cl := newMemClient(t)

	out, err := cl.RunStatement("CREATE TABLE t(x INTEGER);")
	require.NoError(t, err)
	assert.Equal(t, "OK (0 rows affected)", out)

	out, err = cl.RunStatement("INSERT INTO t VALUES (1);")
	require.NoError(t, err)
	assert.Equal(t, "OK (1 rows affected)", out)

	out, err = cl.RunStatement("SELECT * FROM t;")
	require.NoError(t, err)
	assert.Equal(t, "x\n-\n1", out)
}

func TestRunStatementErrorIsRecovered(t *testing.T) {
	cl := newMemClient(t)

	out, err := cl.RunStatement("SELECT * FROM missing;")
	require.NoError(t, err, "statement failures must not surface as hard errors")
	assert.True(t, strings.HasPrefix(out, "Error: "), "got %q", out)

	// The connection stays usable for subsequent commands.
	out, err = cl.RunStatement("CREATE TABLE t(x INTEGER);")
	require.NoError(t, err)
	assert.Equal(t, "OK (0 rows affected)", out)
}

func TestRunStatementDataModifyingCTE(t *testing.T) {
	cl := newMemClient(t)

	_, err := cl.RunStatement("CREATE TABLE t(x INTEGER);")
	require.NoError(t, err)

	out, err := cl.RunStatement("WITH seed(x) AS (VALUES (1)) INSERT INTO t SELECT x FROM seed;")
	require.NoError(t, err)
	assert.Equal(t, "OK (0 rows affected)", out, "a rowless statement must not render an empty table")
}

func TestRunStatementNullAndBinaryRendering(t *testing.T) {
	cl := newMemClient(t)

	_, err := cl.RunStatement("CREATE TABLE t(v BLOB);")
	require.NoError(t, err)
	_, err = cl.RunStatement("INSERT INTO t VALUES (NULL);")
	require.NoError(t, err)
	_, err = cl.RunStatement("INSERT INTO t VALUES (x'dead');")
	require.NoError(t, err)

	out, err := cl.RunStatement("SELECT v FROM t ORDER BY v;")
	require.NoError(t, err)
	assert.Equal(t, "v   \n----\nNULL\ndead", out)
}

func TestRunStatementPersistsAcrossCommit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.db")

	cl := client.New(path, nil)
	_, err := cl.RunStatement("CREATE TABLE t(x INTEGER);")
	require.NoError(t, err)
	_, err = cl.RunStatement("INSERT INTO t VALUES (7);")
	require.NoError(t, err)
	cl.Close()

	// A fresh connection sees the committed data.
	cl = client.New(path, nil)
	defer cl.Close()
	out, err := cl.RunStatement("SELECT x FROM t;")
	require.NoError(t, err)
	assert.Equal(t, "x\n-\n7", out)
}

func TestRunScriptNativeExecution(t *testing.T) {
	cl := newMemClient(t)

	path := filepath.Join(t.TempDir(), "setup.sql")
	script := "CREATE TABLE t(x INTEGER);\nINSERT INTO t VALUES (1);\nINSERT INTO t VALUES (2);\n"
	require.NoError(t, os.WriteFile(path, []byte(script), 0o644))

	out, err := cl.RunScript(path)
	require.NoError(t, err)
	assert.Equal(t, "Executed script: "+path, out)

	out, err = cl.RunStatement("SELECT count(*) FROM t;")
	require.NoError(t, err)
	lines := strings.Split(out, "\n")
	assert.Equal(t, "2", strings.TrimSpace(lines[len(lines)-1]), "got %q", out)
}

func TestRunScriptFailureReportsAndKeepsConnection(t *testing.T) {
	cl := newMemClient(t)

	path := filepath.Join(t.TempDir(), "broken.sql")
	script := "CREATE TABLE t(x INTEGER);\nINSERT INTO nowhere VALUES (1);\n"
	require.NoError(t, os.WriteFile(path, []byte(script), 0o644))

	out, err := cl.RunScript(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Error executing script "+path), "got %q", out)

	// Subsequent commands still work.
	out, err = cl.RunStatement("SELECT 1;")
	require.NoError(t, err)
	assert.Equal(t, "1\n-\n1", out)
}

type errorLineHook struct {
	lines []string
}

func (h *errorLineHook) Levels() []logrus.Level { return []logrus.Level{logrus.ErrorLevel} }
func (h *errorLineHook) Fire(e *logrus.Entry) error {
	h.lines = append(h.lines, e.Message)
	return nil
}

func TestRunScriptMissingFile(t *testing.T) {
	log := logger.New(io.Discard, false, false)
	hook := &errorLineHook{}
	log.AddHook(hook)

	cl := client.New(":memory:", log)
	t.Cleanup(cl.Close)

	_, err := cl.RunScript(filepath.Join(t.TempDir(), "absent.sql"))
	require.Error(t, err)

	// The read failure is logged, not just returned.
	require.NotEmpty(t, hook.lines)
	assert.Equal(t, "Script read failed", hook.lines[0])
}

func TestCloseIsIdempotentAndSafeUnopened(t *testing.T) {
	cl := client.New(":memory:", nil)
	cl.Close()
	cl.Close()

	cl = newMemClient(t)
	_, err := cl.RunStatement("SELECT 1;")
	require.NoError(t, err)
	cl.Close()
	cl.Close()
}

func TestConnectSupersedesPreviousConnection(t *testing.T) {
	cl := newMemClient(t)

	_, err := cl.RunStatement("CREATE TABLE t(x INTEGER);")
	require.NoError(t, err)

	// Reconnecting to :memory: opens a fresh instance; the old table is gone.
	require.NoError(t, cl.Connect())
	out, err := cl.RunStatement("SELECT * FROM t;")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Error: "), "got %q", out)
}

// scriptlessConn fakes a remote backend without native script execution so
// the splitter path is exercised without a live server.
type scriptlessConn struct {
	inner backend.Connection
	exec  backend.Executor
}

func (c *scriptlessConn) Executor() backend.Executor {
	if c.exec == nil {
		c.exec = &scriptlessExecutor{inner: c.inner.Executor()}
	}
	return c.exec
}

func (c *scriptlessConn) Commit() error { return c.inner.Commit() }
func (c *scriptlessConn) Close() error  { return c.inner.Close() }

type scriptlessExecutor struct {
	inner    backend.Executor
	executed []string
}

func (e *scriptlessExecutor) Execute(query string) (*backend.Result, error) {
	e.executed = append(e.executed, query)
	return e.inner.Execute(query)
}

func TestRunScriptSplitsForBackendsWithoutNativeScripts(t *testing.T) {
	backend.RegisterRemote(func(target string) (backend.Connection, error) {
		inner, err := backend.Open(":memory:")
		if err != nil {
			return nil, err
		}
		return &scriptlessConn{inner: inner}, nil
	})
	defer backend.RegisterRemote(nil)

	cl := client.New("postgres://stub/db", nil)
	defer cl.Close()

	path := filepath.Join(t.TempDir(), "setup.sql")
	script := "CREATE TABLE t(x INTEGER);\nINSERT INTO t VALUES (1);\nINSERT INTO t VALUES (2)\n"
	require.NoError(t, os.WriteFile(path, []byte(script), 0o644))

	out, err := cl.RunScript(path)
	require.NoError(t, err)
	assert.Equal(t, "Executed script: "+path, out)

	out, err = cl.RunStatement("SELECT count(*) FROM t;")
	require.NoError(t, err)
	lines := strings.Split(out, "\n")
	assert.Equal(t, "2", strings.TrimSpace(lines[len(lines)-1]), "got %q", out)
}

func TestRunScriptSplitStopsAtFirstFailure(t *testing.T) {
	var exec *scriptlessExecutor
	backend.RegisterRemote(func(target string) (backend.Connection, error) {
		inner, err := backend.Open(":memory:")
		if err != nil {
			return nil, err
		}
		c := &scriptlessConn{inner: inner}
		c.Executor()
		exec = c.exec.(*scriptlessExecutor)
		return c, nil
	})
	defer backend.RegisterRemote(nil)

	cl := client.New("postgres://stub/db", nil)
	defer cl.Close()

	path := filepath.Join(t.TempDir(), "broken.sql")
	script := "CREATE TABLE t(x INTEGER);\nINSERT INTO nowhere VALUES (1);\nINSERT INTO t VALUES (2);\n"
	require.NoError(t, os.WriteFile(path, []byte(script), 0o644))

	out, err := cl.RunScript(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Error executing script "), "got %q", out)
	require.NotNil(t, exec)
	assert.Len(t, exec.executed, 2, "execution must stop at the failing statement")
}

func TestMissingRemoteDriver(t *testing.T) {
	// No remote opener registered in this test binary by default.
	backend.RegisterRemote(nil)

	cl := client.New("postgresql://user@host/db", nil)
	_, err := cl.RunStatement("SELECT 1;")
	require.Error(t, err)
	assert.True(t, errors.Is(err, backend.ErrMissingDriver), "got %v", err)

	var cerr *backend.ConnError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, backend.MissingDriver, cerr.Kind)
}
