// Package app wires the CLI configuration to the library and the output
// layer.
package app

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"

	"github.com/bethropolis/globber"
	"github.com/bethropolis/globber/internal/config"
	"github.com/bethropolis/globber/internal/logger"
	"github.com/bethropolis/globber/internal/printer"
	"github.com/bethropolis/globber/internal/summary"
)

// App encapsulates one CLI invocation.
type App struct {
	cfg    *config.Config
	log    *logger.Logger
	Output io.Writer
}

// New creates an App from a finalized configuration.
func New(cfg *config.Config) (*App, error) {
	color.NoColor = !cfg.UseColors

	var output io.Writer = os.Stdout
	if cfg.OutputFile != "" {
		file, err := os.Create(cfg.OutputFile)
		if err != nil {
			return nil, fmt.Errorf("app: creating output file: %w", err)
		}
		output = file
	}

	log := logger.New(os.Stderr, cfg.Verbose, cfg.UseColors)
	if cfg.LogLevel != "" {
		log.SetLevel(cfg.LogLevel)
	} else if cfg.Quiet {
		log.WithLevel(logger.LevelWarn)
	}

	return &App{cfg: cfg, log: log, Output: output}, nil
}

// Close releases the output file when one was opened.
func (a *App) Close() {
	if f, ok := a.Output.(*os.File); ok && f != os.Stdout {
		f.Close()
	}
}

// Run executes the glob and prints the results. The returned count is
// the number of matched entries; when only the version is printed it
// is 1.
func (a *App) Run() (int64, error) {
	start := time.Now()

	if a.cfg.ShowVersion {
		fmt.Fprintf(a.Output, "globber version %s\n", a.cfg.Version)
		return 1, nil
	}

	patterns := append([]string(nil), a.cfg.Patterns...)
	if a.cfg.PatternsFrom != "" {
		extra, err := globber.ReadPatternsFile(nil, a.cfg.PatternsFrom)
		if err != nil {
			return 0, err
		}
		patterns = append(patterns, extra...)
	}
	if len(patterns) == 0 {
		return 0, fmt.Errorf("app: at least one pattern is required")
	}

	if a.cfg.CWD != "" {
		if err := globber.EnsureDirectory(nil, a.cfg.CWD); err != nil {
			return 0, err
		}
	}

	a.log.Debug("Patterns: %v", patterns)
	a.log.Debug("Base directory: %q (gitignore: %v, dot: %v, deep: %d)",
		a.cfg.CWD, a.cfg.Gitignore, a.cfg.Dot, a.cfg.Deep)

	p := printer.New().
		WithOutput(a.Output).
		WithColors(a.cfg.UseColors)
	switch a.cfg.Format {
	case config.FormatJSON:
		p.WithJSON(true).WithColors(false)
	case config.FormatTable:
		p.WithTable(true)
	}

	opts := a.cfg.ToOptions()

	if a.cfg.ObjectMode() {
		entries, err := globber.Entries(patterns, opts)
		if err != nil {
			return 0, err
		}
		for _, e := range entries {
			p.PrintEntry(e)
		}
	} else {
		paths, err := globber.Glob(patterns, opts)
		if err != nil {
			return 0, err
		}
		for _, path := range paths {
			p.PrintPath(path)
		}
	}

	p.Finalize()
	summary.DisplayResults(a.log, p.Count(), time.Since(start), a.cfg.Quiet)
	return p.Count(), nil
}
