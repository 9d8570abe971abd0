package ui

import (
	"context"
	"fmt"

	"github.com/javiermolinar/classboard/internal/config"
	"github.com/javiermolinar/classboard/internal/db"
	"github.com/javiermolinar/classboard/internal/roster"
)

// openSource returns the roster source for the configured format. The close
// function releases the source once loading is done.
func openSource(rc config.RosterConfig) (roster.Source, func() error, error) {
	switch rc.Format {
	case config.FormatSQLite:
		repo, err := db.New(rc.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("opening roster database: %w", err)
		}
		return repo, repo.Close, nil
	case config.FormatTOML, "":
		return roster.File{Path: rc.Path}, func() error { return nil }, nil
	default:
		return nil, nil, fmt.Errorf("unknown roster format %q", rc.Format)
	}
}

func loadRoster(ctx context.Context, rc config.RosterConfig) (roster.Roster, error) {
	src, closeSrc, err := openSource(rc)
	if err != nil {
		return roster.Roster{}, err
	}
	defer func() { _ = closeSrc() }()

	r, err := src.Load(ctx)
	if err != nil {
		return roster.Roster{}, fmt.Errorf("loading roster %s: %w", rc.Path, err)
	}
	return r, nil
}
