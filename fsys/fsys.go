// Package fsys defines the read-only filesystem view shared by the
// matcher, the ignore evaluator and the orchestrator. The default
// implementation is backed by afero, so the same adapter serves the host
// OS and an in-memory fixture tree in tests.
package fsys

import "os"

// GlobFlag adjusts how FS.Glob matches.
type GlobFlag int

const (
	// GlobFold makes segment matching case-insensitive.
	GlobFold GlobFlag = 1 << iota
)

// FS is the capability set the library consumes. Implementations must be
// safe for concurrent readers.
type FS interface {
	// Exists reports whether the path names an existing entry.
	Exists(name string) bool
	// IsDir reports whether the path names a directory.
	IsDir(name string) bool
	// IsFile reports whether the path names a regular file.
	IsFile(name string) bool
	// ReadFile returns the file's contents, or "" on any error.
	ReadFile(name string) string
	// ReadDir lists a directory without recursing.
	ReadDir(name string) ([]os.FileInfo, error)
	// Stat follows symlinks.
	Stat(name string) (os.FileInfo, error)
	// Lstat does not follow symlinks.
	Lstat(name string) (os.FileInfo, error)
	// Glob expands a shell pattern (with brace expansion) to the paths it
	// matches. Dotfiles are only matched by dot-leading segments.
	Glob(pat string, flags GlobFlag) []string
	// Realpath resolves symlinks, returning "" when resolution fails.
	Realpath(name string) string
	// Getwd returns the working directory.
	Getwd() (string, error)
}
