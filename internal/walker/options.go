// Package walker enumerates filesystem entries matching one glob pattern.
package walker

import "github.com/bethropolis/globber/internal/utils"

// Options configures a single enumeration.
type Options struct {
	Dot            bool
	Deep           int // -1 = unbounded, 0 = base directory only
	FollowSymlinks bool
	SuppressErrors bool
	CaseFold       bool
	Logger         utils.Logger
}

func defaultOptions() Options {
	return Options{
		Deep:           -1,
		FollowSymlinks: true,
		Logger:         utils.NoopLogger{},
	}
}

// Option is a functional option for Enumerate.
type Option func(*Options)

// WithDot includes entries whose basename starts with a dot.
func WithDot(enabled bool) Option {
	return func(o *Options) { o.Dot = enabled }
}

// WithDeep bounds recursion depth. Negative means unbounded; zero visits
// only the base directory.
func WithDeep(depth int) Option {
	return func(o *Options) { o.Deep = depth }
}

// WithFollowSymlinks enables descent into symlinked directories.
func WithFollowSymlinks(enabled bool) Option {
	return func(o *Options) { o.FollowSymlinks = enabled }
}

// WithSuppressErrors swallows traversal errors instead of failing.
func WithSuppressErrors(enabled bool) Option {
	return func(o *Options) { o.SuppressErrors = enabled }
}

// WithCaseFold makes pattern matching case-insensitive.
func WithCaseFold(enabled bool) Option {
	return func(o *Options) { o.CaseFold = enabled }
}

// WithLogger sets a custom logger.
func WithLogger(logger utils.Logger) Option {
	return func(o *Options) {
		if logger != nil {
			o.Logger = logger
		}
	}
}
