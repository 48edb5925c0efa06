package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dbshell/dbshell/internal/client"
	"github.com/dbshell/dbshell/internal/config"
	"github.com/dbshell/dbshell/internal/logger"

	// Enables postgres:// targets. Builds without this import still work
	// against the embedded backend.
	_ "github.com/dbshell/dbshell/postgres"
)

type cmdGlobal struct {
	flagConfig  string
	flagDB      string
	flagExecute string
	flagScript  string
	flagGUI     bool
	flagVerbose bool
	flagDebug   bool
}

func (c *cmdGlobal) run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(c.flagConfig)
	if err != nil {
		return err
	}

	if !cmd.Flags().Changed("db") && cfg.Target != "" {
		c.flagDB = cfg.Target
	}

	if c.flagGUI {
		return launchGUI(c)
	}

	log := logger.New(os.Stderr, c.flagVerbose || cfg.Verbose, c.flagDebug || cfg.Debug)
	cl := client.New(c.flagDB, log)
	defer cl.Close()

	if err := cl.Connect(); err != nil {
		return err
	}

	ran := false
	if c.flagScript != "" {
		out, err := cl.RunScript(c.flagScript)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		ran = true
	}
	if c.flagExecute != "" {
		out, err := cl.RunStatement(c.flagExecute)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		ran = true
	}
	if ran {
		return nil
	}

	return runREPL(cl, os.Stdin, cmd.OutOrStdout())
}

func run() error {
	globalCmd := cmdGlobal{}

	app := &cobra.Command{
		Use:   "dbshell",
		Short: "Execute SQL statements against SQLite or PostgreSQL databases",
		Long: `Description:
  dbshell runs SQL against an embedded SQLite database (local file or the
  :memory: sentinel) or a remote PostgreSQL server (postgres:// connection
  string). Statements come from the --execute flag, a --script file, an
  interactive prompt or the graphical shell (--gui).
`,
		RunE:          globalCmd.run,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	app.CompletionOptions = cobra.CompletionOptions{DisableDefaultCmd: true}

	app.Flags().StringVar(&globalCmd.flagConfig, "config", "", "Path to an alternate configuration file")
	app.Flags().StringVar(&globalCmd.flagDB, "db", ":memory:", "Path to SQLite database or PostgreSQL connection string")
	app.Flags().StringVar(&globalCmd.flagExecute, "execute", "", "Execute a single SQL statement and exit")
	app.Flags().StringVar(&globalCmd.flagScript, "script", "", "Execute all statements in a SQL script file")
	app.Flags().BoolVar(&globalCmd.flagGUI, "gui", false, "Launch the graphical interface")
	app.Flags().BoolVarP(&globalCmd.flagVerbose, "verbose", "v", false, "Show all information messages")
	app.Flags().BoolVarP(&globalCmd.flagDebug, "debug", "d", false, "Show debug messages")

	return app.Execute()
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
