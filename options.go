package globber

import "github.com/bethropolis/globber/fsys"

// Options is the immutable bundle of knobs recognized by every operation.
// Construct one with DefaultOptions, NewBuilder or OptionsFromMap; the
// orchestrator never mutates a caller's Options.
type Options struct {
	// CWD is the base directory for relative patterns and output.
	// Empty means the filesystem's working directory.
	CWD string

	// ExpandDirectories rewrites patterns naming an existing directory to
	// recurse its contents. ExpandFiles and ExpandExtensions refine the
	// rewrite; when either is set, one pattern is produced per entry.
	ExpandDirectories bool
	ExpandFiles       []string
	ExpandExtensions  []string

	// Gitignore enables the ignore-file evaluator against the cwd
	// neighborhood.
	Gitignore bool

	// IgnoreFiles names extra sources of ignore rules (literal filenames
	// or globs).
	IgnoreFiles []string

	// Ignore lists additional exclusion globs.
	Ignore []string

	// OnlyFiles keeps regular files; OnlyDirectories keeps directories.
	// Mutually exclusive.
	OnlyFiles       bool
	OnlyDirectories bool

	// Dot includes dotfile entries in traversal.
	Dot bool

	// Deep bounds recursion depth: negative = unbounded, 0 = base
	// directory only.
	Deep int

	// FollowSymbolicLinks descends into symlinked directories.
	FollowSymbolicLinks bool

	// SuppressErrors swallows filesystem errors during descent.
	SuppressErrors bool

	// Absolute emits absolute paths.
	Absolute bool

	// Unique deduplicates results.
	Unique bool

	// MarkDirectories appends a separator to directory paths.
	MarkDirectories bool

	// CaseSensitiveMatch selects case-sensitive character matching.
	CaseSensitiveMatch bool

	// BaseNameMatch matches patterns against the basename only.
	BaseNameMatch bool

	// ThrowErrorOnBrokenSymbolicLink fails when a result is a symlink
	// whose target does not exist.
	ThrowErrorOnBrokenSymbolicLink bool

	// ObjectMode emits entry records instead of path strings.
	ObjectMode bool

	// Stats attaches stat records to entries; implies ObjectMode.
	Stats bool

	// Negative carries the stripped negation patterns of a generated
	// task. It is populated by GenerateTasks.
	Negative []string

	// FS overrides the filesystem abstraction. Nil means the host OS.
	FS fsys.FS
}

// DefaultOptions returns the fixed defaults of the options table.
func DefaultOptions() *Options {
	return &Options{
		ExpandDirectories:   true,
		OnlyFiles:           true,
		Deep:                -1,
		FollowSymbolicLinks: true,
		Unique:              true,
		CaseSensitiveMatch:  true,
	}
}

// normalized returns a reconciled copy: Stats implies ObjectMode, and
// OnlyDirectories wins over OnlyFiles when both are set.
func (o *Options) normalized() *Options {
	var c Options
	if o == nil {
		c = *DefaultOptions()
	} else {
		c = *o
	}
	if c.Stats {
		c.ObjectMode = true
	}
	if c.OnlyDirectories {
		c.OnlyFiles = false
	}
	return &c
}

func (o *Options) filesystem() fsys.FS {
	if o.FS != nil {
		return o.FS
	}
	return fsys.NewOS()
}

// Builder assembles an Options value one field at a time, enforcing the
// mutual exclusions at set time.
type Builder struct {
	o Options
}

// NewBuilder starts from the defaults.
func NewBuilder() *Builder {
	return &Builder{o: *DefaultOptions()}
}

func (b *Builder) CWD(dir string) *Builder { b.o.CWD = dir; return b }

func (b *Builder) ExpandDirectories(enabled bool) *Builder {
	b.o.ExpandDirectories = enabled
	return b
}

// ExpandDirectoriesWith narrows directory expansion to the given file
// names and extensions.
func (b *Builder) ExpandDirectoriesWith(files, extensions []string) *Builder {
	b.o.ExpandDirectories = true
	b.o.ExpandFiles = files
	b.o.ExpandExtensions = extensions
	return b
}

func (b *Builder) Gitignore(enabled bool) *Builder { b.o.Gitignore = enabled; return b }

func (b *Builder) IgnoreFiles(files ...string) *Builder { b.o.IgnoreFiles = files; return b }

func (b *Builder) Ignore(patterns ...string) *Builder { b.o.Ignore = patterns; return b }

func (b *Builder) OnlyFiles(enabled bool) *Builder {
	b.o.OnlyFiles = enabled
	if enabled {
		b.o.OnlyDirectories = false
	}
	return b
}

func (b *Builder) OnlyDirectories(enabled bool) *Builder {
	b.o.OnlyDirectories = enabled
	if enabled {
		b.o.OnlyFiles = false
	}
	return b
}

func (b *Builder) Dot(enabled bool) *Builder { b.o.Dot = enabled; return b }

func (b *Builder) Deep(depth int) *Builder { b.o.Deep = depth; return b }

func (b *Builder) FollowSymbolicLinks(enabled bool) *Builder {
	b.o.FollowSymbolicLinks = enabled
	return b
}

func (b *Builder) SuppressErrors(enabled bool) *Builder { b.o.SuppressErrors = enabled; return b }

func (b *Builder) Absolute(enabled bool) *Builder { b.o.Absolute = enabled; return b }

func (b *Builder) Unique(enabled bool) *Builder { b.o.Unique = enabled; return b }

func (b *Builder) MarkDirectories(enabled bool) *Builder { b.o.MarkDirectories = enabled; return b }

func (b *Builder) CaseSensitiveMatch(enabled bool) *Builder {
	b.o.CaseSensitiveMatch = enabled
	return b
}

func (b *Builder) BaseNameMatch(enabled bool) *Builder { b.o.BaseNameMatch = enabled; return b }

func (b *Builder) ThrowErrorOnBrokenSymbolicLink(enabled bool) *Builder {
	b.o.ThrowErrorOnBrokenSymbolicLink = enabled
	return b
}

func (b *Builder) ObjectMode(enabled bool) *Builder { b.o.ObjectMode = enabled; return b }

func (b *Builder) Stats(enabled bool) *Builder {
	b.o.Stats = enabled
	if enabled {
		b.o.ObjectMode = true
	}
	return b
}

func (b *Builder) FS(f fsys.FS) *Builder { b.o.FS = f; return b }

// Build returns a copy of the assembled options.
func (b *Builder) Build() *Options {
	o := b.o
	return &o
}

// OptionsFromMap builds Options from a loosely-typed key/value map.
// Values of the wrong shape are silently discarded and the default kept.
func OptionsFromMap(m map[string]any) *Options {
	b := NewBuilder()
	for key, val := range m {
		switch key {
		case "cwd":
			if s, ok := val.(string); ok {
				b.CWD(s)
			}
		case "expandDirectories":
			switch v := val.(type) {
			case bool:
				b.ExpandDirectories(v)
			case map[string]any:
				b.ExpandDirectoriesWith(stringList(v["files"]), stringList(v["extensions"]))
			}
		case "gitignore":
			if v, ok := val.(bool); ok {
				b.Gitignore(v)
			}
		case "ignoreFiles":
			switch v := val.(type) {
			case string:
				b.IgnoreFiles(v)
			default:
				if l := stringList(val); l != nil {
					b.IgnoreFiles(l...)
				}
			}
		case "ignore":
			if l := stringList(val); l != nil {
				b.Ignore(l...)
			}
		case "onlyFiles":
			if v, ok := val.(bool); ok {
				b.OnlyFiles(v)
			}
		case "onlyDirectories":
			if v, ok := val.(bool); ok {
				b.OnlyDirectories(v)
			}
		case "dot":
			if v, ok := val.(bool); ok {
				b.Dot(v)
			}
		case "deep":
			switch v := val.(type) {
			case int:
				b.Deep(v)
			case float64:
				b.Deep(int(v))
			case nil:
				b.Deep(-1)
			}
		case "followSymbolicLinks":
			if v, ok := val.(bool); ok {
				b.FollowSymbolicLinks(v)
			}
		case "suppressErrors":
			if v, ok := val.(bool); ok {
				b.SuppressErrors(v)
			}
		case "absolute":
			if v, ok := val.(bool); ok {
				b.Absolute(v)
			}
		case "unique":
			if v, ok := val.(bool); ok {
				b.Unique(v)
			}
		case "markDirectories":
			if v, ok := val.(bool); ok {
				b.MarkDirectories(v)
			}
		case "caseSensitiveMatch":
			if v, ok := val.(bool); ok {
				b.CaseSensitiveMatch(v)
			}
		case "baseNameMatch":
			if v, ok := val.(bool); ok {
				b.BaseNameMatch(v)
			}
		case "throwErrorOnBrokenSymbolicLink":
			if v, ok := val.(bool); ok {
				b.ThrowErrorOnBrokenSymbolicLink(v)
			}
		case "objectMode":
			if v, ok := val.(bool); ok {
				b.ObjectMode(v)
			}
		case "stats":
			if v, ok := val.(bool); ok {
				b.Stats(v)
			}
		case "fs":
			if v, ok := val.(fsys.FS); ok {
				b.FS(v)
			}
		}
	}
	return b.Build()
}

// stringList coerces a []string or []any of strings; anything else is nil.
func stringList(val any) []string {
	switch v := val.(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil
			}
			out = append(out, s)
		}
		return out
	}
	return nil
}
