// Package ui implements the daybar command-line interface.
package ui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/javiermolinar/daybar/internal/config"
	"github.com/javiermolinar/daybar/internal/db"
	"github.com/javiermolinar/daybar/internal/task"
	"github.com/javiermolinar/daybar/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	store    *db.SQLite
	ownStore bool // opened by the app, closed by Close
	registry *task.Registry
	config   *config.Config
	root     *cobra.Command

	debug   bool // Write the TUI debug log
	verbose bool // Debug-level CLI logging
	noColor bool
}

// NewApp creates a new CLI application. A nil store is opened lazily from
// the configured database path.
func NewApp(store *db.SQLite, cfg *config.Config) *App {
	a := &App{store: store, config: cfg}
	if store != nil {
		a.registry = task.NewRegistry(store)
	}

	a.root = &cobra.Command{
		Use:   "daybar",
		Short: "Split your day into time blocks",
		Long: `daybar divides a time range into contiguous, labeled blocks.

Run without arguments for the interactive bar, or use the subcommands
to resize, add, remove and rescale blocks from the shell.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if a.noColor {
				DisableColor()
			}
			level := parseLevel(a.config.Log.Level)
			if a.verbose {
				level = log.DebugLevel
			}
			logger := newLogger(cmd.ErrOrStderr(), level)
			cmd.SetContext(withLogger(cmd.Context(), logger))
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.ensureStore(); err != nil {
				return err
			}
			return tui.RunWithDebug(a.store, a.config, a.debug)
		},
	}

	flags := a.root.PersistentFlags()
	flags.BoolVar(&a.debug, "debug", false, "Enable TUI debug logging (writes "+tui.DebugLogPath+")")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug-level logging")
	flags.BoolVar(&a.noColor, "no-color", false, "Disable colored output")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.showCmd())
	a.root.AddCommand(a.resizeCmd())
	a.root.AddCommand(a.blockCmd())
	a.root.AddCommand(a.addCmd())
	a.root.AddCommand(a.removeCmd())
	a.root.AddCommand(a.rangeCmd())
	a.root.AddCommand(a.categoriesCmd())
	a.root.AddCommand(a.resetCmd())
	a.root.AddCommand(a.exportCmd())
	a.root.AddCommand(a.importCmd())
	a.root.AddCommand(a.taskCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "daybar %s (commit: %s)\n", Version, Commit)
		},
	}
}

// ensureStore opens the configured database if no store was injected.
func (a *App) ensureStore() error {
	if a.store != nil {
		return nil
	}
	store, err := openStore(a.config.Storage.DBPath)
	if err != nil {
		return err
	}
	a.store = store
	a.ownStore = true
	a.registry = task.NewRegistry(store)
	return nil
}

func openStore(dbPath string) (*db.SQLite, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("db path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	store, err := db.New(dbPath)
	if err != nil {
		return nil, fmt.Errorf("initializing database: %w", err)
	}
	return store, nil
}

// Close releases the store if the app opened it.
func (a *App) Close() error {
	if a.ownStore && a.store != nil {
		return a.store.Close()
	}
	return nil
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.ExecuteContext(context.Background())
}

// ExecuteContext runs the CLI application with ctx.
func (a *App) ExecuteContext(ctx context.Context) error {
	return a.root.ExecuteContext(ctx)
}
