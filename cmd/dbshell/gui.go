package main

import (
	"embed"
	"os"

	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"

	"github.com/dbshell/dbshell/internal/logger"
)

//go:embed all:frontend/dist
var assets embed.FS

// launchGUI starts the graphical shell. The GUI always logs at info so the
// log pane mirrors connection notices and row counts.
func launchGUI(c *cmdGlobal) error {
	log := logger.New(os.Stderr, true, c.flagDebug)
	app := NewApp(log, c.flagDB)

	return wails.Run(&options.App{
		Title:  "dbshell",
		Width:  960,
		Height: 720,
		AssetServer: &assetserver.Options{
			Assets: assets,
		},
		OnStartup:  app.startup,
		OnShutdown: app.shutdown,
		Bind: []interface{}{
			app,
		},
	})
}
