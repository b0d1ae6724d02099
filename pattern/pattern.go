// Package pattern compiles glob patterns into anchored matchers.
//
// The syntax covers the usual glob vocabulary: * (segment wildcard),
// ** (globstar, crossing separators), ? (single non-separator character),
// [...] character classes with negation, ranges and POSIX named classes,
// {a,b} alternation (groups may nest), and backslash escapes. Compilation never
// fails: input that cannot be compiled (an unterminated character class)
// produces a matcher that rejects every string.
package pattern

import (
	"regexp"
	"strings"
)

// Matcher is a compiled glob pattern. It is immutable and safe for
// concurrent use.
type Matcher struct {
	pattern   string
	matchBase bool
	re        *regexp.Regexp // nil rejects all input
}

// Option configures compilation.
type Option func(*config)

type config struct {
	caseFold  bool
	matchBase bool
}

// CaseFold makes the compiled matcher case-insensitive.
func CaseFold(enable bool) Option {
	return func(c *config) { c.caseFold = enable }
}

// MatchBase anchors the matcher to the final path component, so a pattern
// without separators matches entries at any depth.
func MatchBase(enable bool) Option {
	return func(c *config) { c.matchBase = enable }
}

// Compile translates a glob pattern into a Matcher. The input is expected
// to use / as its separator. Compile is infallible; malformed input yields
// a matcher that matches nothing.
func Compile(pat string, opts ...Option) *Matcher {
	var cfg config
	for _, o := range opts {
		o(&cfg)
	}

	m := &Matcher{pattern: pat, matchBase: cfg.matchBase}
	src, ok := translate([]rune(pat))
	if !ok {
		return m
	}
	prefix := `\A(?:`
	if cfg.caseFold {
		prefix = `(?i)` + prefix
	}
	re, err := regexp.Compile(prefix + src + `)\z`)
	if err != nil {
		return m
	}
	m.re = re
	return m
}

// Match reports whether the /-normalized path satisfies the pattern.
func (m *Matcher) Match(path string) bool {
	if m.re == nil {
		return false
	}
	if m.matchBase {
		if i := strings.LastIndexByte(path, '/'); i >= 0 {
			path = path[i+1:]
		}
	}
	return m.re.MatchString(path)
}

// String returns the original pattern text.
func (m *Matcher) String() string { return m.pattern }

// translate converts a rune sequence to a regexp fragment. ok is false
// when the sequence cannot be compiled (unterminated character class).
func translate(r []rune) (string, bool) {
	var b strings.Builder
	n := len(r)
	i := 0
	for i < n {
		switch c := r[i]; c {
		case '\\':
			if i+1 < n {
				b.WriteString(regexp.QuoteMeta(string(r[i+1])))
				i += 2
			} else {
				// trailing backslash is a literal backslash
				b.WriteString(regexp.QuoteMeta(`\`))
				i++
			}
		case '*':
			j := i
			for j < n && r[j] == '*' {
				j++
			}
			if j-i >= 2 {
				atBoundary := i == 0 || r[i-1] == '/'
				if atBoundary && j < n && r[j] == '/' {
					// slash-bordered globstar also elides the segment
					b.WriteString(`(?:.*/)?`)
					j++
				} else {
					b.WriteString(`.*`)
				}
			} else {
				b.WriteString(`[^/]*`)
			}
			i = j
		case '?':
			b.WriteString(`[^/]`)
			i++
		case '[':
			frag, next, ok := translateClass(r, i)
			if !ok {
				return "", false
			}
			b.WriteString(frag)
			i = next
		case '{':
			frag, next, ok := translateAlternation(r, i)
			if !ok {
				// no matching close brace at this level: literal {
				b.WriteString(`\{`)
				i++
			} else {
				b.WriteString(frag)
				i = next
			}
		default:
			b.WriteString(regexp.QuoteMeta(string(c)))
			i++
		}
	}
	return b.String(), true
}

// translateClass compiles a [...] construct starting at r[i] == '['.
// Returns ok=false for an unterminated class.
func translateClass(r []rune, i int) (frag string, next int, ok bool) {
	var b strings.Builder
	n := len(r)
	j := i + 1
	b.WriteByte('[')
	if j < n && (r[j] == '!' || r[j] == '^') {
		// a negated class still never matches the separator
		b.WriteString(`^/`)
		j++
	}
	first := j
	if j < n && r[j] == ']' {
		// ] first in the set is a literal
		b.WriteString(`\]`)
		j++
	}
	for j < n && r[j] != ']' {
		if r[j] == '[' && j+1 < n && r[j+1] == ':' {
			end := indexFrom(r, j+2, ":]")
			if end < 0 {
				return "", 0, false
			}
			name := string(r[j+2 : end])
			body, known := posixClasses[name]
			if !known {
				return "", 0, false
			}
			b.WriteString(body)
			j = end + 2
			continue
		}
		if r[j] == '\\' && j+1 < n {
			b.WriteString(escapeInClass(r[j+1]))
			j += 2
			continue
		}
		if r[j] == '-' {
			// ranges pass through; leading or trailing - is a literal
			if j == first {
				b.WriteString(`\-`)
			} else {
				b.WriteByte('-')
			}
			j++
			continue
		}
		b.WriteString(escapeInClass(r[j]))
		j++
	}
	if j >= n {
		return "", 0, false
	}
	b.WriteByte(']')
	return b.String(), j + 1, true
}

// translateAlternation compiles a {a,b,c} construct starting at r[i] == '{'.
// Each branch is compiled with translate, so a nested group inside a
// branch becomes a nested alternation.
func translateAlternation(r []rune, i int) (frag string, next int, ok bool) {
	end := matchingBrace(r, i)
	if end < 0 {
		return "", 0, false
	}
	parts := splitAlternation(r[i+1 : end])
	subs := make([]string, 0, len(parts))
	for _, p := range parts {
		sub, ok := translate(p)
		if !ok {
			return "", 0, false
		}
		subs = append(subs, sub)
	}
	return `(?:` + strings.Join(subs, "|") + `)`, end + 1, true
}

// matchingBrace returns the index of the } balancing r[i] == '{', or -1.
// Escapes and character classes are skipped over.
func matchingBrace(r []rune, i int) int {
	depth := 0
	for j := i; j < len(r); j++ {
		switch r[j] {
		case '\\':
			j++
		case '[':
			if k := classEnd(r, j); k >= 0 {
				j = k
			}
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return j
			}
		}
	}
	return -1
}

// classEnd returns the index of the ] terminating a class at r[i] == '[',
// or -1 when unterminated.
func classEnd(r []rune, i int) int {
	j := i + 1
	if j < len(r) && (r[j] == '!' || r[j] == '^') {
		j++
	}
	if j < len(r) && r[j] == ']' {
		j++
	}
	for j < len(r) {
		if r[j] == '\\' {
			j += 2
			continue
		}
		if r[j] == ']' {
			return j
		}
		j++
	}
	return -1
}

// splitAlternation splits a brace body on top-level commas.
func splitAlternation(r []rune) [][]rune {
	var parts [][]rune
	depth := 0
	start := 0
	for j := 0; j < len(r); j++ {
		switch r[j] {
		case '\\':
			j++
		case '[':
			if k := classEnd(r, j); k >= 0 {
				j = k
			}
		case '{':
			depth++
		case '}':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, r[start:j])
				start = j + 1
			}
		}
	}
	parts = append(parts, r[start:])
	return parts
}

func escapeInClass(c rune) string {
	switch c {
	case '\\', ']', '[', '^':
		return `\` + string(c)
	}
	return string(c)
}

// indexFrom finds the first occurrence of sep in r at or after from.
func indexFrom(r []rune, from int, sep string) int {
	s := []rune(sep)
	for j := from; j+len(s) <= len(r); j++ {
		match := true
		for k := range s {
			if r[j+k] != s[k] {
				match = false
				break
			}
		}
		if match {
			return j
		}
	}
	return -1
}
