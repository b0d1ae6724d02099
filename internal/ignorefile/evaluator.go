package ignorefile

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/danwakefield/fnmatch"

	"github.com/bethropolis/globber/fsys"
	"github.com/bethropolis/globber/internal/utils"
	"github.com/bethropolis/globber/pattern"
)

// FileName is the ignore file the evaluator scans for.
const FileName = ".gitignore"

// repoMarker denotes a repository root when present in a directory.
const repoMarker = ".git"

// Evaluator collects rules from ignore files and decides whether paths
// are ignored. Parse results are cached per absolute file path for the
// lifetime of the evaluator; the cache is not safe for concurrent
// writers, so use one evaluator per request.
type Evaluator struct {
	fsx   fsys.FS
	log   utils.Logger
	cache map[string][]Rule
}

// NewEvaluator creates an Evaluator over the given filesystem.
func NewEvaluator(fsx fsys.FS, log utils.Logger) *Evaluator {
	if log == nil {
		log = utils.NoopLogger{}
	}
	return &Evaluator{fsx: fsx, log: log, cache: map[string][]Rule{}}
}

// rulesFromFile parses one ignore file, consulting the cache first.
// Unreadable files contribute no rules.
func (e *Evaluator) rulesFromFile(file string) []Rule {
	file = path.Clean(filepath.ToSlash(file))
	if rules, ok := e.cache[file]; ok {
		return rules
	}
	content := e.fsx.ReadFile(file)
	rules := ParseRules(content, path.Dir(file))
	e.cache[file] = rules
	return rules
}

// CollectFor gathers the rules governing cwd: the ignore file in cwd, the
// files of every ancestor up to the repository root when cwd sits inside
// one, and every ignore file in the subtree below cwd bounded by deep.
// Shallower files come first so deeper rules override them.
func (e *Evaluator) CollectFor(cwd string, deep int) []Rule {
	cwd = strings.TrimSuffix(filepath.ToSlash(cwd), "/")

	var rules []Rule
	if root := e.repoRoot(cwd); root != "" && root != cwd {
		for _, dir := range ancestorChain(root, cwd) {
			rules = append(rules, e.rulesFromFile(joinSlash(dir, FileName))...)
		}
	}
	own := joinSlash(cwd, FileName)
	rules = append(rules, e.rulesFromFile(own)...)
	rules = append(rules, e.collectSubtree(cwd, 0, deep, own)...)
	return rules
}

// CollectFrom gathers rules from configurable ignore-file sources. Each
// entry is a literal filename resolved in cwd or a glob resolved through
// the filesystem. Every match is parsed relative to its own directory.
func (e *Evaluator) CollectFrom(files []string, cwd string) []Rule {
	cwd = strings.TrimSuffix(filepath.ToSlash(cwd), "/")

	var rules []Rule
	for _, f := range files {
		f = filepath.ToSlash(f)
		if !strings.HasPrefix(f, "/") {
			f = joinSlash(cwd, f)
		}
		if pattern.IsDynamic(f) {
			for _, m := range e.fsx.Glob(f, 0) {
				rules = append(rules, e.rulesFromFile(m)...)
			}
			continue
		}
		if e.fsx.IsFile(f) {
			rules = append(rules, e.rulesFromFile(f)...)
		}
	}
	return rules
}

// IsIgnored evaluates the rules in order against the path. The last
// matching rule wins; negated rules re-include.
func (e *Evaluator) IsIgnored(p string, rules []Rule, cwd string) bool {
	p = path.Clean(filepath.ToSlash(p))
	cwd = strings.TrimSuffix(filepath.ToSlash(cwd), "/")

	ignored := false
	for _, r := range rules {
		base := r.Base
		if base == "" {
			base = cwd
		}
		cand, ok := relativeTo(base, p)
		if !ok {
			// the rule is scoped to its base directory
			continue
		}
		if e.ruleMatches(r, cand, p) {
			ignored = !r.Negated
		}
	}
	return ignored
}

// ruleMatches tests the candidate path and each of its ancestors against
// the rule, so a directory rule also covers everything beneath the
// directory. A match on the candidate itself honors DirOnly through the
// filesystem; a matched ancestor is a directory by construction.
func (e *Evaluator) ruleMatches(r Rule, cand, abs string) bool {
	for c := cand; c != "" && c != "." && c != "/"; c = parentOf(c) {
		if !matchOne(r, c) {
			continue
		}
		if c == cand && r.DirOnly && !e.fsx.IsDir(abs) {
			continue
		}
		return true
	}
	return false
}

// matchOne applies the rule's pattern to one candidate string. Patterns
// containing ** are collapsed to spanning wildcards and matched without
// separator awareness, and a **/ may also stand for no directory at all;
// everything else is separator-sensitive. Slash-free source patterns also
// get a basename attempt.
func matchOne(r Rule, cand string) bool {
	if strings.Contains(r.Pattern, "**") {
		if fnmatch.Match(collapseGlobstar(r.Pattern), cand, 0) {
			return true
		}
		if elided := strings.ReplaceAll(r.Pattern, "**/", ""); elided != r.Pattern &&
			fnmatch.Match(collapseGlobstar(elided), cand, 0) {
			return true
		}
	} else if fnmatch.Match(r.Pattern, cand, fnmatch.FNM_PATHNAME) {
		return true
	}
	if !strings.Contains(r.Raw, "/") {
		return fnmatch.Match(r.Raw, path.Base(cand), 0)
	}
	return false
}

// collapseGlobstar reduces runs of * to a single spanning star.
func collapseGlobstar(pat string) string {
	for strings.Contains(pat, "**") {
		pat = strings.ReplaceAll(pat, "**", "*")
	}
	return pat
}

// collectSubtree walks below dir gathering ignore files, swallowing every
// filesystem error. Symlinked directories are not entered.
func (e *Evaluator) collectSubtree(dir string, depth, deep int, skip string) []Rule {
	if deep >= 0 && depth > deep {
		return nil
	}
	infos, err := e.fsx.ReadDir(dir)
	if err != nil {
		e.log.Debug("ignorefile: subtree scan skipping %q: %v", dir, err)
		return nil
	}

	var rules []Rule
	for _, fi := range infos {
		full := joinSlash(dir, fi.Name())
		if fi.Mode().IsRegular() && fi.Name() == FileName && full != skip {
			rules = append(rules, e.rulesFromFile(full)...)
		}
		if fi.IsDir() {
			rules = append(rules, e.collectSubtree(full, depth+1, deep, skip)...)
		}
	}
	return rules
}

// repoRoot returns the closest ancestor of cwd (inclusive) containing a
// .git marker, or "".
func (e *Evaluator) repoRoot(cwd string) string {
	for dir := cwd; ; {
		if e.fsx.Exists(joinSlash(dir, repoMarker)) {
			return dir
		}
		parent := parentDir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// ancestorChain lists the directories from root down to the immediate
// parent of cwd, shallowest first.
func ancestorChain(root, cwd string) []string {
	var chain []string
	for dir := parentDir(cwd); ; dir = parentDir(dir) {
		chain = append([]string{dir}, chain...)
		if dir == root || parentDir(dir) == dir {
			break
		}
	}
	return chain
}

// relativeTo strips base from p, reporting whether p is inside base.
func relativeTo(base, p string) (string, bool) {
	if base == "" || base == "." {
		return p, true
	}
	if p == base {
		return "", false
	}
	if strings.HasPrefix(p, base+"/") {
		return p[len(base)+1:], true
	}
	return "", false
}

func parentOf(p string) string {
	i := strings.LastIndexByte(p, '/')
	if i <= 0 {
		return ""
	}
	return p[:i]
}

func parentDir(dir string) string {
	parent := path.Dir(dir)
	return parent
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
