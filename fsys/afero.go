package fsys

import (
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"

	"github.com/bethropolis/globber/pattern"
)

// aferoFS adapts an afero.Fs to the FS capability set.
type aferoFS struct {
	fs   afero.Fs
	wd   func() (string, error)
	real bool // backed by the host OS
}

// NewOS returns an FS backed by the host operating system.
func NewOS() FS {
	return &aferoFS{fs: afero.NewOsFs(), wd: os.Getwd, real: true}
}

// New wraps an arbitrary afero filesystem. The working directory of such
// a filesystem is /, except for an *afero.OsFs, which reports the
// process working directory.
func New(base afero.Fs) FS {
	if _, ok := base.(*afero.OsFs); ok {
		return &aferoFS{fs: base, wd: os.Getwd, real: true}
	}
	return &aferoFS{fs: base, wd: func() (string, error) { return "/", nil }}
}

func (f *aferoFS) Exists(name string) bool {
	ok, err := afero.Exists(f.fs, filepath.FromSlash(name))
	return err == nil && ok
}

func (f *aferoFS) IsDir(name string) bool {
	fi, err := f.fs.Stat(filepath.FromSlash(name))
	return err == nil && fi.IsDir()
}

func (f *aferoFS) IsFile(name string) bool {
	fi, err := f.fs.Stat(filepath.FromSlash(name))
	return err == nil && fi.Mode().IsRegular()
}

func (f *aferoFS) ReadFile(name string) string {
	data, err := afero.ReadFile(f.fs, filepath.FromSlash(name))
	if err != nil {
		return ""
	}
	return string(data)
}

func (f *aferoFS) ReadDir(name string) ([]os.FileInfo, error) {
	return afero.ReadDir(f.fs, filepath.FromSlash(name))
}

func (f *aferoFS) Stat(name string) (os.FileInfo, error) {
	return f.fs.Stat(filepath.FromSlash(name))
}

func (f *aferoFS) Lstat(name string) (os.FileInfo, error) {
	if lst, ok := f.fs.(afero.Lstater); ok {
		fi, _, err := lst.LstatIfPossible(filepath.FromSlash(name))
		return fi, err
	}
	return f.fs.Stat(filepath.FromSlash(name))
}

func (f *aferoFS) Realpath(name string) string {
	if f.real {
		resolved, err := filepath.EvalSymlinks(filepath.FromSlash(name))
		if err != nil {
			return ""
		}
		return filepath.ToSlash(resolved)
	}
	if !f.Exists(name) {
		return ""
	}
	return path.Clean(filepath.ToSlash(name))
}

func (f *aferoFS) Getwd() (string, error) {
	dir, err := f.wd()
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(dir), nil
}

// Glob expands the pattern segment by segment, walking only directories
// named by the static parts. Brace groups are expanded up front.
func (f *aferoFS) Glob(pat string, flags GlobFlag) []string {
	var out []string
	for _, p := range pattern.ExpandBraces(filepath.ToSlash(pat)) {
		out = f.globOne(p, flags, out)
	}
	sort.Strings(out)
	return out
}

func (f *aferoFS) globOne(pat string, flags GlobFlag, out []string) []string {
	if !pattern.IsDynamic(pat) {
		if f.Exists(pat) {
			return append(out, pat)
		}
		return out
	}

	dir, seg := path.Split(pat)
	switch dir {
	case "":
		dir = "."
	case "/":
	default:
		dir = strings.TrimSuffix(dir, "/")
	}

	if !pattern.IsDynamic(dir) {
		return f.globDir(dir, seg, flags, out)
	}
	for _, d := range f.globOne(dir, flags, nil) {
		out = f.globDir(d, seg, flags, out)
	}
	return out
}

func (f *aferoFS) globDir(dir, seg string, flags GlobFlag, out []string) []string {
	if !f.IsDir(dir) {
		return out
	}
	infos, err := f.ReadDir(dir)
	if err != nil {
		return out
	}

	var opts []pattern.Option
	if flags&GlobFold != 0 {
		opts = append(opts, pattern.CaseFold(true))
	}
	m := pattern.Compile(seg, opts...)

	for _, fi := range infos {
		name := fi.Name()
		if strings.HasPrefix(name, ".") && !strings.HasPrefix(seg, ".") {
			continue
		}
		if !m.Match(name) {
			continue
		}
		if dir == "." {
			out = append(out, name)
		} else {
			out = append(out, path.Join(dir, name))
		}
	}
	return out
}
