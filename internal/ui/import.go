package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/classboard/internal/config"
	"github.com/javiermolinar/classboard/internal/db"
	"github.com/javiermolinar/classboard/internal/roster"
)

func (a *App) importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <roster.toml> [database_path]",
		Short: "Import a TOML roster into a SQLite roster database",
		Long: `Replace the contents of a SQLite roster database with a TOML roster file.

The database defaults to the configured roster when its format is sqlite.`,
		Example: `  classboard import roster.toml
  classboard import roster.toml ~/.local/share/classboard/roster.db`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sourcePath, err := resolvePath(args[0])
			if err != nil {
				return err
			}

			var dest string
			switch {
			case len(args) == 2:
				dest = args[1]
			case a.rosterConfig().Format == config.FormatSQLite:
				dest = a.rosterConfig().Path
			default:
				return fmt.Errorf("the configured roster is not a sqlite database; pass a database path")
			}
			destPath, err := resolvePath(dest)
			if err != nil {
				return err
			}
			if sourcePath == destPath {
				return fmt.Errorf("source roster matches destination database")
			}

			r, err := importRoster(cmd.Context(), sourcePath, destPath)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d projects, %d subjects and %d teachers into %s\n",
				len(r.Projects), len(r.Subjects), len(r.Teachers), destPath)
			if len(r.Entries) > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %d schedule entries\n", len(r.Entries))
			}
			if r.DroppedBusy > 0 {
				fmt.Fprintln(cmd.OutOrStdout(), formatWarn(fmt.Sprintf("Dropped %d unparsable busy window(s)", r.DroppedBusy)))
			}
			return nil
		},
	}

	return cmd
}

// importRoster decodes the TOML roster at sourcePath and saves it into the
// database at destPath.
func importRoster(ctx context.Context, sourcePath, destPath string) (roster.Roster, error) {
	r, err := roster.File{Path: sourcePath}.Load(ctx)
	if err != nil {
		return roster.Roster{}, fmt.Errorf("reading source roster: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return roster.Roster{}, fmt.Errorf("creating database directory: %w", err)
	}
	repo, err := db.New(destPath)
	if err != nil {
		return roster.Roster{}, fmt.Errorf("opening destination database: %w", err)
	}
	defer func() { _ = repo.Close() }()

	if err := repo.Save(ctx, r); err != nil {
		return roster.Roster{}, fmt.Errorf("saving roster: %w", err)
	}
	return r, nil
}

func (a *App) exportCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the configured roster as TOML",
		Long: `Write the configured roster, whatever its format, as a TOML roster file.

Writes to standard output unless --output is given.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := a.loadRoster(cmd.Context())
			if err != nil {
				return err
			}
			if output == "" {
				return exportRoster(cmd.OutOrStdout(), r)
			}

			path, err := resolvePath(output)
			if err != nil {
				return err
			}
			f, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("creating %s: %w", path, err)
			}
			if err := exportRoster(f, r); err != nil {
				_ = f.Close()
				return err
			}
			return f.Close()
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "File to write instead of standard output")
	return cmd
}

func exportRoster(w io.Writer, r roster.Roster) error {
	if err := roster.Encode(w, r); err != nil {
		return fmt.Errorf("encoding roster: %w", err)
	}
	return nil
}

func resolvePath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("empty path")
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	return absPath, nil
}
