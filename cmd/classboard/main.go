package main

import (
	"fmt"
	"os"

	"github.com/javiermolinar/classboard/internal/config"
	"github.com/javiermolinar/classboard/internal/ui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	path := os.Getenv("CLASSBOARD_CONFIG")
	if path == "" {
		path = config.DefaultConfigPath()
	}

	cfg, err := config.LoadFrom(path)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	return ui.NewApp(cfg, path).Execute()
}
