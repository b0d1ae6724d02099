// Package config holds the CLI configuration and its mapping onto the
// library options.
package config

import (
	"os"

	"github.com/mattn/go-isatty"

	"github.com/bethropolis/globber"
)

// Output formats accepted by --format.
const (
	FormatPath  = "path"
	FormatJSON  = "json"
	FormatTable = "table"
)

// Config holds all command-line settings.
type Config struct {
	// Matching
	Patterns     []string
	PatternsFrom string
	CWD          string
	Gitignore    bool
	IgnoreFiles  []string
	Ignore       []string
	OnlyDirs     bool
	Dot          bool
	Deep         int
	Follow       bool
	Suppress     bool
	Absolute     bool
	Mark         bool
	NoCase       bool
	BaseName     bool
	Stats        bool
	ExpandDirs   bool

	// Output
	Format     string
	OutputFile string
	NoColor    bool
	UseColors  bool

	// Logging
	Quiet    bool
	Verbose  bool
	LogLevel string

	// Version info
	ShowVersion bool
	Version     string
}

// New returns a Config with the CLI defaults.
func New() *Config {
	return &Config{
		CWD:        "",
		Deep:       -1,
		Follow:     true,
		ExpandDirs: true,
		Format:     FormatPath,
		Version:    "1.0.0",
	}
}

// Finalize computes the derived settings after flag parsing.
func (c *Config) Finalize() {
	c.UseColors = !c.NoColor && isatty.IsTerminal(os.Stdout.Fd()) && c.OutputFile == ""
}

// ObjectMode reports whether entry records (not bare paths) are needed.
func (c *Config) ObjectMode() bool {
	return c.Stats || c.Format == FormatJSON || c.Format == FormatTable
}

// ToOptions maps the CLI settings onto library options.
func (c *Config) ToOptions() *globber.Options {
	b := globber.NewBuilder().
		CWD(c.CWD).
		ExpandDirectories(c.ExpandDirs).
		Gitignore(c.Gitignore).
		Dot(c.Dot).
		Deep(c.Deep).
		FollowSymbolicLinks(c.Follow).
		SuppressErrors(c.Suppress).
		Absolute(c.Absolute).
		MarkDirectories(c.Mark).
		CaseSensitiveMatch(!c.NoCase).
		BaseNameMatch(c.BaseName).
		ObjectMode(c.ObjectMode()).
		Stats(c.Stats)
	if c.OnlyDirs {
		b.OnlyDirectories(true)
	}
	if len(c.IgnoreFiles) > 0 {
		b.IgnoreFiles(c.IgnoreFiles...)
	}
	if len(c.Ignore) > 0 {
		b.Ignore(c.Ignore...)
	}
	return b.Build()
}
