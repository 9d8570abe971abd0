package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/classboard/internal/config"
	"github.com/javiermolinar/classboard/internal/tui/theme"
)

func (a *App) configCmd() *cobra.Command {
	var show bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "View or edit configuration",
		Long: `Interactive configuration management.

If no config file exists, creates one with default values.
Otherwise, displays current config and allows editing.

Example:
  classboard config
  classboard config --show`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := a.configPath
			if path == "" {
				path = config.DefaultConfigPath()
			}
			if show {
				cfg, err := config.LoadFrom(path)
				if err != nil {
					return fmt.Errorf("loading config: %w", err)
				}
				printConfig(cmd.OutOrStdout(), cfg)
				return nil
			}
			return runConfigInteractive(cmd.InOrStdin(), cmd.OutOrStdout(), path)
		},
	}

	cmd.Flags().BoolVar(&show, "show", false, "Print the current configuration and exit")
	return cmd
}

func runConfigInteractive(in io.Reader, out io.Writer, configPath string) error {
	fmt.Fprintf(out, "Config file: %s\n\n", configPath)

	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	_, fileErr := os.Stat(configPath)
	if os.IsNotExist(fileErr) {
		fmt.Fprintln(out, "No config file found. Creating with default values...")
		if err := cfg.SaveTo(configPath); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Fprintf(out, "Created %s\n\n", configPath)
	}

	printConfig(out, cfg)

	reader := bufio.NewReader(in)
	if !promptYesNo(reader, out, "\nWould you like to edit the configuration?") {
		return nil
	}

	cfg.Board.WindowDays = promptInt(reader, out, "Visible days (0 for a calendar month)", cfg.Board.WindowDays)
	cfg.Board.ShiftAmount = promptInt(reader, out, "Default shift amount in days", cfg.Board.ShiftAmount)
	cfg.Board.Anchor = promptValue(reader, out, "Shift anchor (YYYY-MM-DD, - for none)", cfg.Board.Anchor)
	if cfg.Board.Anchor == "-" {
		cfg.Board.Anchor = ""
	}
	cfg.Roster.Path = promptValue(reader, out, "Roster path", cfg.Roster.Path)
	cfg.Roster.Format = promptValue(reader, out, "Roster format (toml, sqlite)", config.InferFormat(cfg.Roster.Path))
	cfg.UI.Theme = promptTheme(reader, out, cfg.UI.Theme)
	cfg.Log.DebugPath = promptValue(reader, out, "Debug log path", cfg.Log.DebugPath)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if err := cfg.SaveTo(configPath); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Fprintln(out, "\nConfiguration saved!")
	return nil
}

func printConfig(w io.Writer, cfg *config.Config) {
	fmt.Fprintln(w, "Current configuration:")
	fmt.Fprintln(w, "──────────────────────")
	fmt.Fprintln(w, "[board]")
	fmt.Fprintf(w, "  window_days  = %d\n", cfg.Board.WindowDays)
	fmt.Fprintf(w, "  shift_amount = %d\n", cfg.Board.ShiftAmount)
	if cfg.Board.Anchor != "" {
		fmt.Fprintf(w, "  anchor       = %s\n", cfg.Board.Anchor)
	}
	fmt.Fprintln(w, "\n[roster]")
	fmt.Fprintf(w, "  path         = %s\n", cfg.Roster.Path)
	fmt.Fprintf(w, "  format       = %s\n", cfg.Roster.Format)
	fmt.Fprintln(w, "\n[ui]")
	fmt.Fprintf(w, "  theme        = %s\n", cfg.UI.Theme)
	fmt.Fprintln(w, "\n[log]")
	fmt.Fprintf(w, "  debug_path   = %s\n", cfg.Log.DebugPath)
}

func promptYesNo(reader *bufio.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", question)
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}

func promptValue(reader *bufio.Reader, out io.Writer, label, current string) string {
	if current == "" {
		fmt.Fprintf(out, "  %s: ", label)
	} else {
		fmt.Fprintf(out, "  %s [%s]: ", label, current)
	}
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return current
	}
	return input
}

func promptInt(reader *bufio.Reader, out io.Writer, label string, current int) int {
	for {
		value := promptValue(reader, out, label, strconv.Itoa(current))
		n, err := strconv.Atoi(value)
		if err == nil && n >= 0 {
			return n
		}
		fmt.Fprintf(out, "  Invalid number %q\n", value)
	}
}

func promptTheme(reader *bufio.Reader, out io.Writer, current string) string {
	options := strings.Join(theme.Available(), ", ")
	label := fmt.Sprintf("UI theme (%s)", options)
	for {
		value := strings.ToLower(promptValue(reader, out, label, current))
		if theme.IsAvailable(value) {
			return value
		}
		fmt.Fprintf(out, "  Invalid theme %q. Available: %s\n", value, options)
	}
}
