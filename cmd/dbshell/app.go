package main

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	wailsrt "github.com/wailsapp/wails/v2/pkg/runtime"

	"github.com/dbshell/dbshell/internal/client"
	"github.com/dbshell/dbshell/internal/logger"
)

// App glues the web frontend to the execution engine. Wails dispatches bound
// method calls on their own goroutines while the engine expects one request
// in flight at a time, so every database-touching method takes the mutex.
type App struct {
	ctx context.Context
	mu  sync.Mutex
	cl  *client.Client
	log logger.Logger
}

// NewApp returns the GUI application bound to the given initial target.
func NewApp(log logger.Logger, target string) *App {
	return &App{
		cl:  client.New(target, log),
		log: log,
	}
}

// startup attaches the log pane sink and opens the initial connection.
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx
	a.log.AddHook(&logPaneHook{app: a})

	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.cl.Connect(); err != nil {
		wailsrt.EventsEmit(a.ctx, "result", "Error: "+err.Error())
	}
}

func (a *App) shutdown(ctx context.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.cl.Close()
}

// Target returns the currently configured connection target for the entry
// field.
func (a *App) Target() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.cl.Target()
}

// Connect reconnects to the entered target; a blank entry falls back to an
// in-memory database. The returned text goes to the results pane.
func (a *App) Connect(target string) string {
	target = strings.TrimSpace(target)
	if target == "" {
		target = ":memory:"
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.cl.SetTarget(target)
	if err := a.cl.Connect(); err != nil {
		return "Error: " + err.Error()
	}
	return "Connected to " + target
}

// Execute runs the SQL from the input box and returns the outcome text.
func (a *App) Execute(sql string) string {
	if strings.TrimSpace(sql) == "" {
		return "Enter an SQL statement to execute."
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	out, err := a.cl.RunStatement(sql)
	if err != nil {
		return "Error: " + err.Error()
	}
	return out
}

// RunScript opens a file dialog and executes the chosen script. An empty
// string comes back when the user cancels.
func (a *App) RunScript() string {
	path, err := wailsrt.OpenFileDialog(a.ctx, wailsrt.OpenDialogOptions{
		Title: "Select SQL script",
		Filters: []wailsrt.FileFilter{
			{DisplayName: "SQL Files (*.sql)", Pattern: "*.sql"},
			{DisplayName: "All files (*.*)", Pattern: "*.*"},
		},
	})
	if err != nil {
		return "Error: " + err.Error()
	}
	if path == "" {
		return ""
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	out, err := a.cl.RunScript(path)
	if err != nil {
		return "Error: " + err.Error()
	}
	return out
}

// BrowseDatabase opens a file dialog for picking an SQLite database file and
// returns the chosen path ("" on cancel).
func (a *App) BrowseDatabase() (string, error) {
	return wailsrt.OpenFileDialog(a.ctx, wailsrt.OpenDialogOptions{
		Title: "Select SQLite database",
		Filters: []wailsrt.FileFilter{
			{DisplayName: "SQLite DB (*.db)", Pattern: "*.db"},
			{DisplayName: "All files (*.*)", Pattern: "*.*"},
		},
	})
}

// logPaneHook mirrors log lines into the GUI's live log pane.
type logPaneHook struct {
	app *App
}

func (h *logPaneHook) Levels() []logrus.Level {
	return []logrus.Level{logrus.ErrorLevel, logrus.WarnLevel, logrus.InfoLevel}
}

func (h *logPaneHook) Fire(entry *logrus.Entry) error {
	line := fmt.Sprintf("%s [%s] %s", entry.Time.Format("2006-01-02 15:04:05"),
		strings.ToUpper(entry.Level.String()), entry.Message)
	for k, v := range entry.Data {
		line += fmt.Sprintf(" %s=%v", k, v)
	}
	wailsrt.EventsEmit(h.app.ctx, "log", line)
	return nil
}
