// Package cli defines the cobra command fronting the library.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bethropolis/globber/internal/app"
	"github.com/bethropolis/globber/internal/config"
)

var cfg = config.New()

var rootCmd = &cobra.Command{
	Use:   "globber [flags] <pattern>...",
	Short: "Find files matching glob patterns with gitignore-aware filtering",
	Long: `globber enumerates filesystem entries matching one or more glob
patterns. Prefix a pattern with ! to exclude its matches. Ignore files
following the gitignore convention can be honored with --gitignore or
supplied explicitly with --ignore-files.`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg.Patterns = args
		cfg.Finalize()

		a, err := app.New(cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		count, err := a.Run()
		if err != nil {
			return err
		}
		if count == 0 {
			os.Exit(1)
		}
		return nil
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	f := rootCmd.Flags()

	f.StringVarP(&cfg.CWD, "cwd", "C", "", "base directory for patterns and output (default: working directory)")
	f.StringVar(&cfg.PatternsFrom, "patterns-from", "", "read additional patterns from a file")
	f.BoolVar(&cfg.Gitignore, "gitignore", false, "respect ignore files in the base directory's neighborhood")
	f.StringSliceVar(&cfg.IgnoreFiles, "ignore-files", nil, "extra ignore-file sources (filenames or globs)")
	f.StringSliceVar(&cfg.Ignore, "ignore", nil, "extra exclusion globs (repeatable)")
	f.BoolVarP(&cfg.OnlyDirs, "only-dirs", "d", false, "match directories instead of regular files")
	f.BoolVar(&cfg.Dot, "dot", false, "include dotfiles")
	f.IntVar(&cfg.Deep, "deep", -1, "max recursion depth (-1 = unbounded, 0 = base directory only)")
	f.BoolVar(&cfg.Follow, "follow", true, "descend into symlinked directories")
	f.BoolVar(&cfg.Suppress, "suppress-errors", false, "swallow filesystem errors during traversal")
	f.BoolVarP(&cfg.Absolute, "absolute", "a", false, "emit absolute paths")
	f.BoolVar(&cfg.Mark, "mark", false, "append a separator to directory paths")
	f.BoolVarP(&cfg.NoCase, "case-insensitive", "i", false, "case-insensitive matching")
	f.BoolVar(&cfg.BaseName, "base-name-match", false, "match patterns against basenames only")
	f.BoolVar(&cfg.Stats, "stats", false, "attach stat records to entries")
	f.BoolVar(&cfg.ExpandDirs, "expand-dirs", true, "expand patterns naming a directory to recurse it")
	f.StringVarP(&cfg.Format, "format", "f", config.FormatPath, "output format: path|json|table")
	f.StringVarP(&cfg.OutputFile, "output", "o", "", "write output to a file instead of stdout")
	f.BoolVar(&cfg.NoColor, "no-color", false, "disable color output")
	f.BoolVarP(&cfg.Quiet, "quiet", "q", false, "suppress informational messages")
	f.BoolVarP(&cfg.Verbose, "verbose", "v", false, "enable debug logging")
	f.StringVar(&cfg.LogLevel, "log-level", "", "log level (debug, info, warn, error, none)")
	f.BoolVar(&cfg.ShowVersion, "version", false, "show version information")
}
