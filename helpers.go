package globber

import (
	"strings"

	"github.com/bethropolis/globber/fsys"
)

// EnsureDirectory verifies that the path names an existing directory.
// It returns a FileNotFound error when nothing exists at the path and a
// PathNotDirectory error when something else does.
func EnsureDirectory(f fsys.FS, path string) error {
	if f == nil {
		f = fsys.NewOS()
	}
	if !f.Exists(path) {
		return newError(KindFileNotFound, path, "")
	}
	if !f.IsDir(path) {
		return newError(KindPathNotDirectory, path, "")
	}
	return nil
}

// ReadPatternsFile loads newline-separated patterns from a file. Blank
// lines and # comments are dropped. Missing files raise FileNotFound;
// files that exist but cannot be read raise FileUnreadable.
func ReadPatternsFile(f fsys.FS, path string) ([]string, error) {
	if f == nil {
		f = fsys.NewOS()
	}
	if !f.Exists(path) {
		return nil, newError(KindFileNotFound, path, "")
	}
	if !f.IsFile(path) {
		return nil, newError(KindFileUnreadable, path, "not a regular file")
	}
	content := f.ReadFile(path)
	if content == "" {
		if fi, err := f.Stat(path); err != nil || fi.Size() > 0 {
			return nil, newError(KindFileUnreadable, path, "")
		}
	}

	var patterns []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, line)
	}
	return patterns, nil
}
