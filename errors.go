package globber

import (
	"errors"
	"fmt"
)

// Kind discriminates the error variants raised by this package.
type Kind uint8

const (
	// KindDirectoryNotFound reports a cwd that does not resolve to an
	// existing directory.
	KindDirectoryNotFound Kind = iota + 1
	// KindBrokenSymbolicLink reports a result entry whose link target
	// does not exist (only with ThrowErrorOnBrokenSymbolicLink).
	KindBrokenSymbolicLink
	// KindCannotStatFile reports a failed stat while building stats.
	KindCannotStatFile
	// KindFileNotFound reports a missing file where one is required.
	KindFileNotFound
	// KindFileUnreadable reports a file that exists but cannot be read.
	KindFileUnreadable
	// KindPathNotDirectory reports a path that exists but is not a
	// directory where one is required.
	KindPathNotDirectory
	// KindInvalidPattern reports an empty pattern where one is required.
	KindInvalidPattern
	// KindInvalidPatternType reports a pattern argument that is neither a
	// string nor a list of strings.
	KindInvalidPatternType
)

func (k Kind) String() string {
	switch k {
	case KindDirectoryNotFound:
		return "directory not found"
	case KindBrokenSymbolicLink:
		return "broken symbolic link"
	case KindCannotStatFile:
		return "cannot stat file"
	case KindFileNotFound:
		return "file not found"
	case KindFileUnreadable:
		return "file unreadable"
	case KindPathNotDirectory:
		return "path is not a directory"
	case KindInvalidPattern:
		return "invalid pattern"
	case KindInvalidPatternType:
		return "invalid pattern type"
	}
	return "unknown error"
}

// Error is the common marker for every error this package raises.
type Error struct {
	Kind   Kind
	Path   string
	Detail string
}

func (e *Error) Error() string {
	msg := "globber: " + e.Kind.String()
	if e.Path != "" {
		msg += fmt.Sprintf(" (%s)", e.Path)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

func newError(kind Kind, path, detail string) *Error {
	return &Error{Kind: kind, Path: path, Detail: detail}
}

// IsKind reports whether err is a globber error of the given kind.
func IsKind(err error, kind Kind) bool {
	var ge *Error
	return errors.As(err, &ge) && ge.Kind == kind
}
