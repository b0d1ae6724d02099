// Package globber locates filesystem entries matching glob patterns,
// with negation patterns, gitignore-convention ignore files and the
// filtering knobs of Options.
//
// The package is library-first: construct Options (directly, through
// NewBuilder, or from a map) and call Glob, Entries or Stream. All
// matching happens against /-normalized paths; emitted paths use the
// native separator.
package globber

import (
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bethropolis/globber/fsys"
	"github.com/bethropolis/globber/internal/ignorefile"
	"github.com/bethropolis/globber/internal/utils"
	"github.com/bethropolis/globber/internal/walker"
	"github.com/bethropolis/globber/pattern"
)

// universalPattern is prepended when a request consists only of negation
// patterns.
const universalPattern = "**/*"

// Glob returns the sorted paths matching the patterns. patterns is a
// string or a []string; a leading ! marks a pattern as a negation.
func Glob(patterns any, opts *Options) ([]string, error) {
	req, err := newRequest(patterns, opts)
	if err != nil {
		return nil, err
	}
	return req.collect()
}

// Entries runs the same pipeline as Glob but returns materialized entry
// records, with stats attached when Options.Stats is set.
func Entries(patterns any, opts *Options) ([]Entry, error) {
	req, err := newRequest(patterns, opts)
	if err != nil {
		return nil, err
	}
	paths, err := req.collect()
	if err != nil {
		return nil, err
	}
	return req.materialize(paths)
}

// IsDynamic reports whether the pattern contains any glob metacharacter.
func IsDynamic(pat string) bool { return pattern.IsDynamic(pat) }

// Escape returns a pattern matching the given path literally.
func Escape(path string) string { return pattern.Escape(path) }

// IsIgnored reports whether the path is ignored under the ignore rules
// collected for the request's cwd neighborhood.
func IsIgnored(p string, opts *Options) (bool, error) {
	req, err := newRequest([]string{}, opts)
	if err != nil {
		return false, err
	}
	rules := req.evaluator().CollectFor(req.cwd, req.o.Deep)
	return req.evaluator().IsIgnored(req.absolute(p), rules, req.cwd), nil
}

// IsIgnoredByFiles reports whether the path is ignored under the rules
// parsed from the given ignore-file sources (literal filenames or globs).
func IsIgnoredByFiles(p string, files []string, opts *Options) (bool, error) {
	req, err := newRequest([]string{}, opts)
	if err != nil {
		return false, err
	}
	rules := req.evaluator().CollectFrom(files, req.cwd)
	return req.evaluator().IsIgnored(req.absolute(p), rules, req.cwd), nil
}

// request carries one normalized invocation through the pipeline.
type request struct {
	o    *Options
	fs   fsys.FS
	cwd  string
	pos  []string
	neg  []string
	eval *ignorefile.Evaluator
}

func newRequest(patterns any, opts *Options) (*request, error) {
	pats, err := normalizePatterns(patterns)
	if err != nil {
		return nil, err
	}

	o := opts.normalized()
	r := &request{o: o, fs: o.filesystem()}

	cwd := path.Clean(filepath.ToSlash(o.CWD))
	if o.CWD == "" || !path.IsAbs(cwd) {
		wd, werr := r.fs.Getwd()
		if werr != nil {
			return nil, newError(KindDirectoryNotFound, o.CWD, werr.Error())
		}
		if o.CWD == "" {
			cwd = wd
		} else {
			cwd = path.Join(wd, cwd)
		}
	}
	if !r.fs.IsDir(cwd) {
		return nil, newError(KindDirectoryNotFound, cwd, "")
	}
	r.cwd = cwd

	for _, p := range pats {
		if rest, ok := strings.CutPrefix(p, "!"); ok {
			r.neg = append(r.neg, rest)
		} else {
			r.pos = append(r.pos, p)
		}
	}
	if len(r.pos) == 0 && len(r.neg) > 0 {
		r.pos = []string{universalPattern}
	}
	r.pos = r.expandDirectories(r.pos)
	return r, nil
}

// normalizePatterns coerces the accepted pattern shapes to a list.
func normalizePatterns(patterns any) ([]string, error) {
	var pats []string
	switch v := patterns.(type) {
	case string:
		pats = []string{v}
	case []string:
		pats = append(pats, v...)
	default:
		return nil, newError(KindInvalidPatternType, "", "patterns must be a string or a list of strings")
	}
	for _, p := range pats {
		if p == "" || p == "!" {
			return nil, newError(KindInvalidPattern, "", "empty pattern")
		}
	}
	return pats, nil
}

// expandDirectories rewrites positive patterns naming an existing
// directory under cwd so they recurse its contents.
func (r *request) expandDirectories(pats []string) []string {
	if !r.o.ExpandDirectories {
		return pats
	}
	out := make([]string, 0, len(pats))
	for _, p := range pats {
		if !r.fs.IsDir(r.absolute(p)) {
			out = append(out, p)
			continue
		}
		base := strings.TrimSuffix(p, "/")
		if len(r.o.ExpandFiles) == 0 && len(r.o.ExpandExtensions) == 0 {
			out = append(out, base+"/**/*")
			continue
		}
		for _, f := range r.o.ExpandFiles {
			out = append(out, base+"/**/"+f)
		}
		for _, ext := range r.o.ExpandExtensions {
			out = append(out, base+"/**/*."+strings.TrimPrefix(ext, "."))
		}
	}
	return out
}

// collect runs the full pipeline and returns finalized path strings.
func (r *request) collect() ([]string, error) {
	var entries []string
	for _, p := range r.pos {
		if r.o.BaseNameMatch && !strings.Contains(p, "/") {
			p = "**/" + p
		}
		found, err := walker.Enumerate(r.fs, p, r.cwd, r.walkerOptions()...)
		if err != nil {
			return nil, err
		}
		entries = append(entries, found...)
	}

	entries = r.applyNegatives(entries)

	if r.o.Gitignore {
		rules := r.evaluator().CollectFor(r.cwd, r.o.Deep)
		entries = r.applyRules(entries, rules)
	}
	if len(r.o.IgnoreFiles) > 0 {
		rules := r.evaluator().CollectFrom(r.o.IgnoreFiles, r.cwd)
		entries = r.applyRules(entries, rules)
	}
	if len(r.o.Ignore) > 0 {
		keep := entries[:0]
		for _, e := range entries {
			if !r.matchesAny(e, r.o.Ignore) {
				keep = append(keep, e)
			}
		}
		entries = keep
	}

	switch {
	case r.o.OnlyFiles:
		entries = r.filterType(entries, r.fs.IsFile)
	case r.o.OnlyDirectories:
		entries = r.filterType(entries, r.fs.IsDir)
	}

	if r.o.ThrowErrorOnBrokenSymbolicLink {
		if err := r.checkSymlinks(entries); err != nil {
			return nil, err
		}
	}

	final := make([]string, 0, len(entries))
	for _, e := range entries {
		if r.o.MarkDirectories && r.fs.IsDir(e) {
			e += "/"
		}
		if !r.o.Absolute {
			e = strings.TrimPrefix(e, r.cwd+"/")
		}
		final = append(final, filepath.FromSlash(e))
	}

	if r.o.Unique {
		final = dedupe(final)
	}
	sort.Strings(final)
	return final, nil
}

// applyNegatives drops entries matching every negation pattern.
func (r *request) applyNegatives(entries []string) []string {
	if len(r.neg) == 0 {
		return entries
	}
	keep := entries[:0]
	for _, e := range entries {
		all := true
		for _, np := range r.neg {
			if !pattern.MatchPath(e, np, r.cwd, r.matchOptions(np)...) {
				all = false
				break
			}
		}
		if !all {
			keep = append(keep, e)
		}
	}
	return keep
}

// applyRules drops entries the evaluator declares ignored.
func (r *request) applyRules(entries []string, rules []ignorefile.Rule) []string {
	if len(rules) == 0 {
		return entries
	}
	keep := entries[:0]
	for _, e := range entries {
		if !r.evaluator().IsIgnored(e, rules, r.cwd) {
			keep = append(keep, e)
		}
	}
	return keep
}

func (r *request) matchesAny(e string, pats []string) bool {
	for _, p := range pats {
		if pattern.MatchPath(e, p, r.cwd, r.matchOptions(p)...) {
			return true
		}
	}
	return false
}

func (r *request) filterType(entries []string, pred func(string) bool) []string {
	keep := entries[:0]
	for _, e := range entries {
		if pred(e) {
			keep = append(keep, e)
		}
	}
	return keep
}

// checkSymlinks fails on the first result whose link target is missing.
func (r *request) checkSymlinks(entries []string) error {
	for _, e := range entries {
		lfi, err := r.fs.Lstat(e)
		if err != nil || lfi.Mode()&os.ModeSymlink == 0 {
			continue
		}
		if r.fs.Realpath(e) == "" {
			return newError(KindBrokenSymbolicLink, e, "")
		}
	}
	return nil
}

// materialize wraps finalized paths into entry records.
func (r *request) materialize(paths []string) ([]Entry, error) {
	entries := make([]Entry, 0, len(paths))
	for _, p := range paths {
		slashed := strings.TrimSuffix(filepath.ToSlash(p), "/")
		statPath := r.absolute(slashed)

		e := Entry{Path: p, Name: path.Base(slashed)}
		lfi, lerr := r.fs.Lstat(statPath)
		if lerr == nil {
			e.Dirent = direntFromInfo(lfi)
		}
		if r.o.Stats {
			fi, err := r.fs.Stat(statPath)
			if err != nil {
				return nil, newError(KindCannotStatFile, p, err.Error())
			}
			if lerr != nil {
				lfi = nil
			}
			e.Stats = statsFromInfo(fi, lfi)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func (r *request) evaluator() *ignorefile.Evaluator {
	if r.eval == nil {
		r.eval = ignorefile.NewEvaluator(r.fs, utils.NoopLogger{})
	}
	return r.eval
}

func (r *request) walkerOptions() []walker.Option {
	return []walker.Option{
		walker.WithDot(r.o.Dot),
		walker.WithDeep(r.o.Deep),
		walker.WithFollowSymlinks(r.o.FollowSymbolicLinks),
		walker.WithSuppressErrors(r.o.SuppressErrors),
		walker.WithCaseFold(!r.o.CaseSensitiveMatch),
	}
}

func (r *request) matchOptions(pat string) []pattern.Option {
	var opts []pattern.Option
	if !r.o.CaseSensitiveMatch {
		opts = append(opts, pattern.CaseFold(true))
	}
	if r.o.BaseNameMatch && !strings.Contains(pat, "/") {
		opts = append(opts, pattern.MatchBase(true))
	}
	return opts
}

// absolute anchors a request-relative path under cwd.
func (r *request) absolute(p string) string {
	p = filepath.ToSlash(p)
	if strings.HasPrefix(p, "/") {
		return path.Clean(p)
	}
	return path.Clean(r.cwd + "/" + p)
}

// dedupe removes equal strings preserving first occurrence.
func dedupe(paths []string) []string {
	seen := make(map[string]struct{}, len(paths))
	out := paths[:0]
	for _, p := range paths {
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}
