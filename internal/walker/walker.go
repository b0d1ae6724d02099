package walker

import (
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/bethropolis/globber/fsys"
	"github.com/bethropolis/globber/pattern"
)

// Enumerate returns the paths under root matching the glob pattern.
// Absolute patterns and patterns without ** are delegated to the
// filesystem's shell glob; globstar patterns walk the tree from the static
// prefix. Result order is unspecified; callers sort.
func Enumerate(fsx fsys.FS, pat, root string, opts ...Option) ([]string, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	pat = filepath.ToSlash(pat)
	root = strings.TrimSuffix(filepath.ToSlash(root), "/")

	switch {
	case strings.HasPrefix(pat, "/"):
		return fsx.Glob(pat, o.globFlags()), nil
	case strings.Contains(pat, "**"):
		return enumerateRecursive(fsx, pat, root, o)
	default:
		joined := joinSlash(root, pat)
		out := fsx.Glob(joined, o.globFlags())
		if o.Dot {
			if dotted := dotVariant(joined); dotted != "" {
				out = append(out, fsx.Glob(dotted, o.globFlags())...)
			}
		}
		return out, nil
	}
}

func (o Options) globFlags() fsys.GlobFlag {
	if o.CaseFold {
		return fsys.GlobFold
	}
	return 0
}

// enumerateRecursive splits the pattern at the first ** and walks the base
// directory named by the static prefix, testing every visited entry
// against the suffix.
func enumerateRecursive(fsx fsys.FS, pat, root string, o Options) ([]string, error) {
	idx := strings.Index(pat, "**")
	prefix := strings.TrimSuffix(pat[:idx], "/")
	suffix := strings.TrimPrefix(pat[idx+2:], "/")

	base := root
	if prefix != "" {
		base = joinSlash(root, prefix)
	}
	if !fsx.IsDir(base) {
		return nil, nil
	}

	var suffixMatch *pattern.Matcher
	if suffix != "" && suffix != "*" {
		var copts []pattern.Option
		if o.CaseFold {
			copts = append(copts, pattern.CaseFold(true))
		}
		suffixMatch = pattern.Compile("**/"+suffix, copts...)
	}

	w := &walk{
		fsx:     fsx,
		base:    base,
		suffix:  suffixMatch,
		opts:    o,
		visited: map[string]struct{}{},
	}
	if rp := fsx.Realpath(base); rp != "" {
		w.visited[rp] = struct{}{}
	}
	if err := w.dir(base, 0); err != nil {
		return nil, err
	}
	return w.out, nil
}

type walk struct {
	fsx     fsys.FS
	base    string
	suffix  *pattern.Matcher
	opts    Options
	visited map[string]struct{} // realpaths of the base and of followed symlinked directories
	out     []string
}

// dir visits one directory pre-order: each entry is emitted before the
// entries beneath it, and a subdirectory is walked as soon as it is
// emitted, before its later siblings.
func (w *walk) dir(dir string, depth int) error {
	infos, err := w.fsx.ReadDir(dir)
	if err != nil {
		if w.opts.SuppressErrors {
			w.opts.Logger.Warn("walker: skipping %q: %v", dir, err)
			return nil
		}
		return err
	}

	for _, fi := range infos {
		name := fi.Name()
		if !w.opts.Dot && strings.HasPrefix(name, ".") {
			continue
		}
		full := joinSlash(dir, name)

		if w.suffix == nil || w.suffix.Match(w.rel(full)) {
			w.out = append(w.out, full)
		}

		if !w.descendable(fi, full) {
			continue
		}
		if w.opts.Deep >= 0 && depth >= w.opts.Deep {
			continue
		}
		if err := w.dir(full, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// descendable decides whether the entry is a directory to walk into,
// applying the symlink policy and the cycle guard.
func (w *walk) descendable(fi os.FileInfo, full string) bool {
	if fi.IsDir() {
		return true
	}
	if fi.Mode()&os.ModeSymlink == 0 || !w.opts.FollowSymlinks {
		return false
	}
	if !w.fsx.IsDir(full) {
		return false
	}
	rp := w.fsx.Realpath(full)
	if rp == "" {
		return false
	}
	if _, seen := w.visited[rp]; seen {
		w.opts.Logger.Debug("walker: symlink cycle at %q", full)
		return false
	}
	w.visited[rp] = struct{}{}
	return true
}

func (w *walk) rel(full string) string {
	return strings.TrimPrefix(strings.TrimPrefix(full, w.base), "/")
}

// dotVariant rewrites the basename component of a shell pattern to its
// dotfile form ("dir/*" becomes "dir/.*"). Returns "" when the basename
// already matches dotfiles.
func dotVariant(pat string) string {
	dir, seg := path.Split(pat)
	if seg == "" || strings.HasPrefix(seg, ".") {
		return ""
	}
	return dir + "." + seg
}

func joinSlash(dir, name string) string {
	if dir == "" {
		return name
	}
	if dir == "/" {
		return "/" + name
	}
	return dir + "/" + name
}
