package globber_test

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/globber"
)

// fixtureTree lays out the tree the end-to-end scenarios run against.
func fixtureTree(t *testing.T) string {
	t.Helper()
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)

	files := []string{
		"unicorn.txt",
		"cake.txt",
		"rainbow.txt",
		".hidden",
		"nested/file1.php",
		"nested/file2.php",
		"nested/file3.js",
		"nested/deep/secret.txt",
		"nested/deep/readme.md",
		"docs/guide.md",
		"complex-patterns/file1.txt",
		"complex-patterns/file2.txt",
		"complex-patterns/fileA.txt",
		"complex-patterns/fileB.txt",
		"complex-patterns/data0.log",
		"complex-patterns/data5.log",
		"complex-patterns/data9.log",
		"complex-patterns/test-a.js",
		"complex-patterns/test-b.js",
	}
	for _, name := range files {
		p := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(name), 0o644))
	}
	gitignore := filepath.Join(dir, ".gitignore")
	require.NoError(t, os.WriteFile(gitignore, []byte("cake.txt\n"), 0o644))
	return filepath.ToSlash(dir)
}

func opts(fx string) *globber.Options {
	return globber.NewBuilder().CWD(fx).Build()
}

func TestGlobSimplePattern(t *testing.T) {
	fx := fixtureTree(t)

	got, err := globber.Glob("*.txt", opts(fx))
	require.NoError(t, err)
	assert.Equal(t, []string{"cake.txt", "rainbow.txt", "unicorn.txt"}, got)
}

func TestGlobNegationPattern(t *testing.T) {
	fx := fixtureTree(t)

	got, err := globber.Glob([]string{"*.txt", "!cake.txt"}, opts(fx))
	require.NoError(t, err)
	assert.Equal(t, []string{"rainbow.txt", "unicorn.txt"}, got)
}

func TestGlobGitignore(t *testing.T) {
	fx := fixtureTree(t)

	got, err := globber.Glob("*.txt", globber.NewBuilder().CWD(fx).Gitignore(true).Build())
	require.NoError(t, err)
	assert.Equal(t, []string{"rainbow.txt", "unicorn.txt"}, got)
}

func TestGlobGlobstar(t *testing.T) {
	fx := fixtureTree(t)

	got, err := globber.Glob("**/*.md", opts(fx))
	require.NoError(t, err)
	assert.Equal(t, []string{"docs/guide.md", "nested/deep/readme.md"}, got)
}

func TestGlobCharacterClass(t *testing.T) {
	fx := fixtureTree(t)

	got, err := globber.Glob("file[0-9A-Za-z].txt", opts(fx+"/complex-patterns"))
	require.NoError(t, err)
	assert.Equal(t, []string{"file1.txt", "file2.txt", "fileA.txt", "fileB.txt"}, got)
}

func TestGlobPosixClass(t *testing.T) {
	fx := fixtureTree(t)

	got, err := globber.Glob("data[[:digit:]].log", opts(fx+"/complex-patterns"))
	require.NoError(t, err)
	assert.Equal(t, []string{"data0.log", "data5.log", "data9.log"}, got)
}

func TestGlobDotPolicy(t *testing.T) {
	fx := fixtureTree(t)

	got, err := globber.Glob("*", globber.NewBuilder().CWD(fx).Dot(true).Build())
	require.NoError(t, err)
	assert.Contains(t, got, ".hidden")

	got, err = globber.Glob("*", opts(fx))
	require.NoError(t, err)
	for _, p := range got {
		assert.NotEqual(t, byte('.'), filepath.Base(p)[0])
	}
}

func TestGlobDirectoryExpansion(t *testing.T) {
	fx := fixtureTree(t)

	short, err := globber.Glob("nested", opts(fx))
	require.NoError(t, err)
	long, err := globber.Glob("nested/**/*", opts(fx))
	require.NoError(t, err)

	assert.Equal(t, long, short)
	assert.Equal(t, []string{
		"nested/deep/readme.md",
		"nested/deep/secret.txt",
		"nested/file1.php",
		"nested/file2.php",
		"nested/file3.js",
	}, short)
}

func TestGlobDirectoryExpansionDisabled(t *testing.T) {
	fx := fixtureTree(t)

	got, err := globber.Glob("nested", globber.NewBuilder().CWD(fx).ExpandDirectories(false).Build())
	require.NoError(t, err)
	// "nested" is a directory and onlyFiles is the default
	assert.Empty(t, got)
}

func TestGlobDirectoryExpansionWithFilesAndExtensions(t *testing.T) {
	fx := fixtureTree(t)

	o := globber.NewBuilder().
		CWD(fx).
		ExpandDirectoriesWith([]string{"readme.md"}, []string{"php"}).
		Build()
	got, err := globber.Glob("nested", o)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"nested/deep/readme.md",
		"nested/file1.php",
		"nested/file2.php",
	}, got)
}

func TestGlobDeterminism(t *testing.T) {
	fx := fixtureTree(t)

	first, err := globber.Glob([]string{"**/*", "!**/*.js"}, opts(fx))
	require.NoError(t, err)
	second, err := globber.Glob([]string{"**/*", "!**/*.js"}, opts(fx))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestGlobSortedAndUnique(t *testing.T) {
	fx := fixtureTree(t)

	got, err := globber.Glob([]string{"*.txt", "unicorn.txt"}, opts(fx))
	require.NoError(t, err)
	assert.Equal(t, []string{"cake.txt", "rainbow.txt", "unicorn.txt"}, got)

	for i := 1; i < len(got); i++ {
		assert.LessOrEqual(t, got[i-1], got[i])
	}

	dup, err := globber.Glob([]string{"*.txt", "unicorn.txt"},
		globber.NewBuilder().CWD(fx).Unique(false).Build())
	require.NoError(t, err)
	assert.Len(t, dup, 4)
}

func TestGlobNegationIdempotence(t *testing.T) {
	fx := fixtureTree(t)

	plain, err := globber.Glob("*.txt", opts(fx))
	require.NoError(t, err)
	withNoop, err := globber.Glob([]string{"*.txt", "!matches-nothing-*.xyz"}, opts(fx))
	require.NoError(t, err)
	assert.Equal(t, plain, withNoop)
}

func TestGlobOnlyNegativesGetUniversalPositive(t *testing.T) {
	fx := fixtureTree(t)

	got, err := globber.Glob("!**/*.js", opts(fx))
	require.NoError(t, err)
	assert.NotEmpty(t, got)
	for _, p := range got {
		assert.NotEqual(t, ".js", filepath.Ext(p))
	}
}

func TestGlobDeepBound(t *testing.T) {
	fx := fixtureTree(t)

	got, err := globber.Glob("**/*", globber.NewBuilder().CWD(fx).Deep(0).Build())
	require.NoError(t, err)
	assert.Equal(t, []string{"cake.txt", "rainbow.txt", "unicorn.txt"}, got)

	got, err = globber.Glob("**/*", globber.NewBuilder().CWD(fx).Deep(1).Build())
	require.NoError(t, err)
	for _, p := range got {
		// no path may exceed one separator beyond the base directory
		assert.LessOrEqual(t, countSeparators(p), 1, "path %q exceeds depth bound", p)
	}
	assert.Contains(t, got, "docs/guide.md")
	assert.NotContains(t, got, "nested/deep/secret.txt")
}

func countSeparators(p string) int {
	n := 0
	for i := 0; i < len(p); i++ {
		if p[i] == '/' || p[i] == os.PathSeparator {
			n++
		}
	}
	return n
}

func TestGlobOnlyDirectories(t *testing.T) {
	fx := fixtureTree(t)

	got, err := globber.Glob("*", globber.NewBuilder().CWD(fx).OnlyDirectories(true).Build())
	require.NoError(t, err)
	assert.Equal(t, []string{"complex-patterns", "docs", "nested"}, got)
}

func TestGlobMarkDirectories(t *testing.T) {
	fx := fixtureTree(t)

	got, err := globber.Glob("*", globber.NewBuilder().
		CWD(fx).
		OnlyDirectories(true).
		MarkDirectories(true).
		Build())
	require.NoError(t, err)
	sep := string(os.PathSeparator)
	assert.Equal(t, []string{"complex-patterns" + sep, "docs" + sep, "nested" + sep}, got)
}

func TestGlobAbsolute(t *testing.T) {
	fx := fixtureTree(t)

	got, err := globber.Glob("*.txt", globber.NewBuilder().CWD(fx).Absolute(true).Build())
	require.NoError(t, err)
	require.Len(t, got, 3)
	for _, p := range got {
		assert.True(t, filepath.IsAbs(p), "path %q should be absolute", p)
	}
}

func TestGlobCaseInsensitive(t *testing.T) {
	fx := fixtureTree(t)

	got, err := globber.Glob("**/*.MD", globber.NewBuilder().CWD(fx).CaseSensitiveMatch(false).Build())
	require.NoError(t, err)
	assert.Equal(t, []string{"docs/guide.md", "nested/deep/readme.md"}, got)

	got, err = globber.Glob("**/*.MD", opts(fx))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestGlobBaseNameMatch(t *testing.T) {
	fx := fixtureTree(t)

	got, err := globber.Glob("*.md", globber.NewBuilder().CWD(fx).BaseNameMatch(true).Build())
	require.NoError(t, err)
	assert.Equal(t, []string{"docs/guide.md", "nested/deep/readme.md"}, got)
}

func TestGlobIgnoreGlobs(t *testing.T) {
	fx := fixtureTree(t)

	got, err := globber.Glob("*.txt", globber.NewBuilder().CWD(fx).Ignore("cake.*").Build())
	require.NoError(t, err)
	assert.Equal(t, []string{"rainbow.txt", "unicorn.txt"}, got)
}

func TestGlobIgnoreFilesOption(t *testing.T) {
	fx := fixtureTree(t)
	require.NoError(t, os.WriteFile(filepath.Join(fx, ".customignore"), []byte("rainbow.txt\n"), 0o644))

	got, err := globber.Glob("*.txt", globber.NewBuilder().CWD(fx).IgnoreFiles(".customignore").Build())
	require.NoError(t, err)
	assert.Equal(t, []string{"cake.txt", "unicorn.txt"}, got)
}

func TestGlobGitignoreNegationOverrides(t *testing.T) {
	fx := fixtureTree(t)
	require.NoError(t, os.WriteFile(filepath.Join(fx, ".gitignore"),
		[]byte("*.txt\n!rainbow.txt\n"), 0o644))

	got, err := globber.Glob("*.txt", globber.NewBuilder().CWD(fx).Gitignore(true).Build())
	require.NoError(t, err)
	assert.Equal(t, []string{"rainbow.txt"}, got)
}

func TestGlobInvalidPatternType(t *testing.T) {
	fx := fixtureTree(t)

	_, err := globber.Glob(42, opts(fx))
	require.Error(t, err)
	assert.True(t, globber.IsKind(err, globber.KindInvalidPatternType))

	_, err = globber.Glob([]string{""}, opts(fx))
	require.Error(t, err)
	assert.True(t, globber.IsKind(err, globber.KindInvalidPattern))
}

func TestGlobDirectoryNotFound(t *testing.T) {
	fx := fixtureTree(t)

	_, err := globber.Glob("*", opts(fx+"/does-not-exist"))
	require.Error(t, err)
	assert.True(t, globber.IsKind(err, globber.KindDirectoryNotFound))
	assert.Contains(t, err.Error(), "does-not-exist")
}

func TestGlobBrokenSymlink(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks are unreliable on windows")
	}
	fx := fixtureTree(t)
	require.NoError(t, os.Symlink(filepath.Join(fx, "missing-target"), filepath.Join(fx, "dangling")))

	o := globber.NewBuilder().
		CWD(fx).
		OnlyFiles(false).
		ThrowErrorOnBrokenSymbolicLink(true).
		Build()
	_, err := globber.Glob("*", o)
	require.Error(t, err)
	assert.True(t, globber.IsKind(err, globber.KindBrokenSymbolicLink))

	// without the flag the dangling link is just an entry
	got, err := globber.Glob("*", globber.NewBuilder().CWD(fx).OnlyFiles(false).Build())
	require.NoError(t, err)
	assert.Contains(t, got, "dangling")
}

func TestEntriesObjectMode(t *testing.T) {
	fx := fixtureTree(t)

	entries, err := globber.Entries("*.txt", opts(fx))
	require.NoError(t, err)
	require.Len(t, entries, 3)

	first := entries[0]
	assert.Equal(t, "cake.txt", first.Path)
	assert.Equal(t, "cake.txt", first.Name)
	require.NotNil(t, first.Dirent)
	assert.True(t, first.Dirent.IsFile)
	assert.False(t, first.Dirent.IsDirectory)
	assert.Nil(t, first.Stats)
}

func TestEntriesStats(t *testing.T) {
	fx := fixtureTree(t)

	entries, err := globber.Entries("unicorn.txt", globber.NewBuilder().CWD(fx).Stats(true).Build())
	require.NoError(t, err)
	require.Len(t, entries, 1)

	st := entries[0].Stats
	require.NotNil(t, st)
	assert.Equal(t, int64(len("unicorn.txt")), st.Size)
	assert.Greater(t, st.MTime, int64(0))
	assert.True(t, st.IsFile)
	assert.False(t, st.IsDirectory)
}

func TestStream(t *testing.T) {
	fx := fixtureTree(t)

	seq, err := globber.Stream("*.txt", opts(fx))
	require.NoError(t, err)

	var paths []string
	for e, err := range seq {
		require.NoError(t, err)
		paths = append(paths, e.Path)
	}
	assert.Equal(t, []string{"cake.txt", "rainbow.txt", "unicorn.txt"}, paths)
}

func TestStreamEarlyStop(t *testing.T) {
	fx := fixtureTree(t)

	seq, err := globber.Stream("**/*", opts(fx))
	require.NoError(t, err)

	count := 0
	for _, err := range seq {
		require.NoError(t, err)
		count++
		if count == 2 {
			break
		}
	}
	assert.Equal(t, 2, count)
}

func TestGenerateTasks(t *testing.T) {
	fx := fixtureTree(t)

	tasks, err := globber.GenerateTasks([]string{"nested", "!cake.txt"}, opts(fx))
	require.NoError(t, err)
	require.Len(t, tasks, 1)

	assert.Equal(t, []string{"nested/**/*"}, tasks[0].Patterns)
	assert.Equal(t, []string{"cake.txt"}, tasks[0].Options.Negative)
	assert.Equal(t, fx, tasks[0].Options.CWD)
}

func TestIsDynamicAndEscape(t *testing.T) {
	assert.True(t, globber.IsDynamic("*.txt"))
	assert.True(t, globber.IsDynamic("a{b,c}"))
	assert.False(t, globber.IsDynamic("plain/path.txt"))

	assert.Equal(t, `weird\[name\]\*.txt`, globber.Escape("weird[name]*.txt"))
}

func TestIsIgnoredHelper(t *testing.T) {
	fx := fixtureTree(t)

	ignored, err := globber.IsIgnored("cake.txt", opts(fx))
	require.NoError(t, err)
	assert.True(t, ignored)

	ignored, err = globber.IsIgnored("rainbow.txt", opts(fx))
	require.NoError(t, err)
	assert.False(t, ignored)
}

func TestIsIgnoredByFilesHelper(t *testing.T) {
	fx := fixtureTree(t)
	require.NoError(t, os.WriteFile(filepath.Join(fx, ".customignore"), []byte("*.log\n"), 0o644))

	ignored, err := globber.IsIgnoredByFiles("debug.log", []string{".customignore"}, opts(fx))
	require.NoError(t, err)
	assert.True(t, ignored)

	ignored, err = globber.IsIgnoredByFiles("debug.txt", []string{".customignore"}, opts(fx))
	require.NoError(t, err)
	assert.False(t, ignored)
}
