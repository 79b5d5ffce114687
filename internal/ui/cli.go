package ui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/almanac/internal/config"
	"github.com/javiermolinar/almanac/internal/dateutil"
	"github.com/javiermolinar/almanac/internal/db"
	"github.com/javiermolinar/almanac/internal/event"
	"github.com/javiermolinar/almanac/internal/log"
	"github.com/javiermolinar/almanac/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	repo   event.Repository
	ownsDB bool // repo was opened by ensureRepo
	config *config.Config
	root   *cobra.Command
	out    io.Writer
	in     io.Reader
	now    func() time.Time
	debug  bool
}

// NewApp creates a new CLI application. A nil repo is opened lazily from the
// configured database path by the commands that need it.
func NewApp(repo event.Repository, cfg *config.Config) *App {
	if cfg == nil {
		cfg = config.Default()
	}
	a := &App{
		repo:   repo,
		config: cfg,
		out:    os.Stdout,
		in:     os.Stdin,
		now:    time.Now,
	}

	a.root = &cobra.Command{
		Use:   "almanac",
		Short: "A terminal calendar",
		Long: `Almanac is a terminal calendar with an endlessly scrolling year and
month view. Multi-day events are drawn as bars across the week grid.

Run without a command to open the calendar.`,
		SilenceUsage: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			level := a.config.LogLevel()
			if a.debug {
				level = log.LevelDebug
				a.config.Log.Level = string(log.LevelDebug)
			}
			log.Default().SetLevel(level)
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			return tui.Run(a.repo, a.config)
		},
	}

	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.addCmd())
	a.root.AddCommand(a.updateCmd())
	a.root.AddCommand(a.deleteCmd())
	a.root.AddCommand(a.listCmd())
	a.root.AddCommand(a.weekCmd())
	a.root.AddCommand(a.importCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintf(a.out, "almanac %s (commit: %s)\n", Version, Commit)
		},
	}
}

// SetOutput redirects command output, including cobra's usage and errors.
func (a *App) SetOutput(w io.Writer) {
	a.out = w
	a.root.SetOut(w)
	a.root.SetErr(w)
}

// SetArgs overrides os.Args for the next Execute.
func (a *App) SetArgs(args []string) {
	a.root.SetArgs(args)
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}

// Close releases the database if the app opened it.
func (a *App) Close() error {
	if a.repo == nil || !a.ownsDB {
		return nil
	}
	err := a.repo.Close()
	a.repo = nil
	return err
}

// ensureRepo opens the configured database on first use.
func (a *App) ensureRepo() error {
	if a.repo != nil {
		return nil
	}
	path := a.config.Storage.DBPath
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	repo, err := db.New(path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	log.Debug("opened database", "path", path)
	a.repo = repo
	a.ownsDB = true
	return nil
}

// location returns the configured calendar zone.
func (a *App) location() *time.Location {
	loc, err := a.config.Location()
	if err != nil {
		return time.Local
	}
	return loc
}

// today returns midnight of the current day in the calendar zone.
func (a *App) today() time.Time {
	return dateutil.TruncateToDay(a.now().In(a.location()))
}
