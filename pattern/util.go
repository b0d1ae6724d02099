package pattern

import (
	"path/filepath"
	"strings"
)

// dynamicChars are the metacharacters that make a pattern dynamic.
const dynamicChars = "*?[]{}"

// IsDynamic reports whether the pattern contains any glob metacharacter.
func IsDynamic(pat string) bool {
	return strings.ContainsAny(pat, dynamicChars)
}

// Escape returns a pattern that matches the given path literally.
// Separators are normalized to / and every metacharacter is prefixed
// with a backslash.
func Escape(path string) string {
	path = filepath.ToSlash(path)
	var b strings.Builder
	b.Grow(len(path))
	for _, c := range path {
		switch c {
		case '[', ']', '(', ')', '{', '}', '?', '*':
			b.WriteByte('\\')
		}
		b.WriteRune(c)
	}
	return b.String()
}

// MatchPath evaluates the pattern against the path, relativized against
// root when the path is a descendant of it.
func MatchPath(path, pat, root string, opts ...Option) bool {
	p := filepath.ToSlash(path)
	r := strings.TrimSuffix(filepath.ToSlash(root), "/")
	if r != "" && r != "." {
		switch {
		case p == r:
			p = ""
		case strings.HasPrefix(p, r+"/"):
			p = p[len(r)+1:]
		}
	}
	return Compile(pat, opts...).Match(p)
}
