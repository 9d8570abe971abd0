// Package ui provides the classboard command line.
package ui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/classboard/internal/board"
	"github.com/javiermolinar/classboard/internal/config"
	"github.com/javiermolinar/classboard/internal/logging"
	"github.com/javiermolinar/classboard/internal/roster"
	"github.com/javiermolinar/classboard/internal/schedule"
	"github.com/javiermolinar/classboard/internal/store"
	"github.com/javiermolinar/classboard/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	config     *config.Config
	configPath string
	root       *cobra.Command
	debug      bool   // Enable debug logging
	rosterPath string // --roster override
}

// NewApp creates a new CLI application with the given config.
func NewApp(cfg *config.Config, configPath string) *App {
	a := &App{config: cfg, configPath: configPath}

	a.root = &cobra.Command{
		Use:   "classboard",
		Short: "A scheduling board for class projects and teachers",
		Long: `Classboard lays out class projects on a calendar grid.

Each project row holds spans of days booked for a teacher and a subject.
The board rejects overlapping spans in a project, double-booked teachers
and days a teacher is busy elsewhere. Every edit can be undone.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runBoard(cmd.Context())
		},
	}

	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging (logs to the configured debug file)")
	a.root.PersistentFlags().StringVar(&a.rosterPath, "roster", "", "Roster file to use instead of the configured one")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.teachersCmd())
	a.root.AddCommand(a.projectsCmd())
	a.root.AddCommand(a.checkCmd())
	a.root.AddCommand(a.importCmd())
	a.root.AddCommand(a.exportCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "classboard %s (commit: %s)\n", Version, Commit)
		},
	}
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.ExecuteContext(context.Background())
}

// runBoard opens the interactive board over the configured roster.
func (a *App) runBoard(ctx context.Context) error {
	logger, closeLog, err := logging.New(a.debug, a.config.Log.DebugPath)
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()

	r, err := a.loadRoster(ctx)
	switch {
	case errors.Is(err, roster.ErrNotFound):
		logger.Info("no roster yet, starting an empty board", "path", a.rosterConfig().Path)
	case err != nil:
		return err
	}
	if r.DroppedBusy > 0 {
		logger.Warn("dropped unparsable busy windows", "count", r.DroppedBusy)
	}
	logger.Debug("roster loaded",
		"projects", len(r.Projects), "subjects", len(r.Subjects), "teachers", len(r.Teachers))

	session := openSession(r, logger)
	return tui.Run(session, tui.Options{
		Theme:       a.config.UI.Theme,
		WindowDays:  a.config.Board.WindowDays,
		ShiftAmount: a.config.Board.ShiftAmount,
		Anchor:      a.config.AnchorDate(),
		Logger:      logger,
	})
}

// openSession creates the board session and seeds it with the roster's
// schedule entries. The seed is the starting point, not an edit, so the
// history starts empty.
func openSession(r roster.Roster, logger *slog.Logger) *board.Session {
	session := board.New(r, board.WithLogger(logger))
	session.Subscribe(store.ObserverFunc(func(c schedule.Change) {
		logger.Debug("schedule change", "op", c.Op, "project", c.ProjectID, "id", c.ScheduleID)
	}))
	if len(r.Entries) > 0 {
		session.Load(r.ScheduleData())
		session.ClearHistory()
		logger.Info("schedule loaded", "entries", len(r.Entries))
	}
	return session
}

// rosterConfig returns the roster location after applying --roster.
func (a *App) rosterConfig() config.RosterConfig {
	rc := a.config.Roster
	if a.rosterPath != "" {
		rc.Path = a.rosterPath
		rc.Format = config.InferFormat(a.rosterPath)
	}
	return rc
}

func (a *App) loadRoster(ctx context.Context) (roster.Roster, error) {
	return loadRoster(ctx, a.rosterConfig())
}
