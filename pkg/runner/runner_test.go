package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdedit/pkg/runner"
	"github.com/yaklabco/mdedit/pkg/workspace"
)

const image = "![logo](data:image/png;base64,Zm9vZm9vZm9v)"

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func newRunner() *runner.Runner {
	return runner.New(workspace.NewStore(workspace.StoreOptions{}))
}

func TestRunFind(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"a.md":          "Foo bar\nsecond FOO line\n",
		"notes/b.md":    "nothing here\n" + image + "\n",
		"notes/c.md":    "foo",
		"ignored.txt":   "foo foo foo",
		".hidden/d.md":  "foo",
		"notes/e.mdown": "foo",
	})

	result, err := newRunner().Run(context.Background(), runner.Options{
		WorkingDir: dir,
		Query:      "foo",
	})
	require.NoError(t, err)

	assert.Equal(t, 3, result.Stats.FilesDiscovered)
	assert.Equal(t, 3, result.Stats.FilesSearched)
	assert.Equal(t, 2, result.Stats.FilesMatched)
	assert.Equal(t, 3, result.Stats.Matches)
	assert.True(t, result.HasMatches())
	assert.False(t, result.HasErrors())

	require.Len(t, result.Files, 3)
	first := result.Files[0]
	assert.Equal(t, filepath.Join(dir, "a.md"), first.Path)
	require.Len(t, first.Matches, 2)
	assert.Equal(t, runner.MatchLine{
		Line: 1, Column: 1, Start: 0, End: 3,
		Text: "Foo bar", TextStart: 0, TextEnd: 3,
	}, first.Matches[0])
	assert.Equal(t, 2, first.Matches[1].Line)
	assert.Equal(t, 8, first.Matches[1].Column)
	assert.Equal(t, "FOO", first.Matches[1].Text[first.Matches[1].TextStart:first.Matches[1].TextEnd])

	assert.Empty(t, result.Files[1].Matches, "image payload must not match")
}

func TestRunFindMatchesPlaceholder(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"doc.md": "see " + image})

	result, err := newRunner().Run(context.Background(), runner.Options{
		Paths: []string{filepath.Join(dir, "doc.md")},
		Query: "image hidden",
	})
	require.NoError(t, err)
	require.Len(t, result.Files, 1)
	require.Len(t, result.Files[0].Matches, 1)
	assert.Equal(t, "see ![logo]([base64 image hidden])", result.Files[0].Matches[0].Text)
}

func TestRunReplace(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"a.md": "cat and Cat\n" + image + "\n",
		"b.md": "dog\n",
	})

	result, err := newRunner().Run(context.Background(), runner.Options{
		WorkingDir:  dir,
		Query:       "cat",
		Replacement: "bird",
		Replace:     true,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, result.Stats.Replaced)
	assert.Equal(t, 1, result.Stats.FilesModified)

	got, err := os.ReadFile(filepath.Join(dir, "a.md"))
	require.NoError(t, err)
	assert.Equal(t, "bird and bird\n"+image+"\n", string(got))

	outcome := result.Files[0]
	assert.True(t, outcome.Written)
	require.NotNil(t, outcome.Diff)
	assert.Equal(t, 1, outcome.Diff.Added)
	assert.Equal(t, 1, outcome.Diff.Removed)
	assert.NotContains(t, outcome.Diff.String(), "Zm9v", "diffs show folded text")

	assert.False(t, result.Files[1].Written)
	assert.Nil(t, result.Files[1].Diff)
}

func TestRunReplaceLeavesPlaceholders(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.md": image + "\n"})

	result, err := newRunner().Run(context.Background(), runner.Options{
		WorkingDir:  dir,
		Query:       "hidden])",
		Replacement: "gone",
		Replace:     true,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Stats.Matches)
	assert.Zero(t, result.Stats.Replaced)
	assert.False(t, result.Files[0].Written)
	assert.Nil(t, result.Files[0].Diff)

	got, err := os.ReadFile(filepath.Join(dir, "a.md"))
	require.NoError(t, err)
	assert.Equal(t, image+"\n", string(got))
}

func TestRunReplaceDryRun(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.md": "old text\n"})

	result, err := newRunner().Run(context.Background(), runner.Options{
		WorkingDir:  dir,
		Query:       "old",
		Replacement: "new",
		Replace:     true,
		DryRun:      true,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Stats.Replaced)
	assert.Equal(t, 0, result.Stats.FilesModified)
	require.NotNil(t, result.Files[0].Diff)
	assert.True(t, strings.Contains(result.Files[0].Diff.String(), "+new text"))

	got, err := os.ReadFile(filepath.Join(dir, "a.md"))
	require.NoError(t, err)
	assert.Equal(t, "old text\n", string(got))
}

func TestRunEmptyQuery(t *testing.T) {
	t.Parallel()

	_, err := newRunner().Run(context.Background(), runner.Options{WorkingDir: t.TempDir(), Query: "  "})
	require.ErrorIs(t, err, runner.ErrEmptyQuery)
}

func TestRunMissingPath(t *testing.T) {
	t.Parallel()

	_, err := newRunner().Run(context.Background(), runner.Options{
		WorkingDir: t.TempDir(),
		Paths:      []string{"missing.md"},
		Query:      "x",
	})
	require.Error(t, err)
}

func TestRunFileError(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"big.md": strings.Repeat("x", 64)})

	r := runner.New(workspace.NewStore(workspace.StoreOptions{MaxFileSize: 16}))
	result, err := r.Run(context.Background(), runner.Options{
		Paths: []string{filepath.Join(dir, "big.md")},
		Query: "x",
	})
	require.NoError(t, err)
	assert.True(t, result.HasErrors())
	assert.Equal(t, 1, result.Stats.FilesErrored)
	require.Error(t, result.Files[0].Error)
}

func TestRunCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newRunner().Run(ctx, runner.Options{WorkingDir: t.TempDir(), Query: "x"})
	require.Error(t, err)
}

func TestDiscoverDeduplicates(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.md": "", "sub/b.md": ""})

	files, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir: dir,
		Paths:      []string{".", "a.md", "sub"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.md"), filepath.Join(dir, "sub", "b.md")}, files)
}

func TestDiscoverScanOptions(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.md": "", "drafts/b.md": "", "c.markdown": ""})

	files, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir: dir,
		Scan: workspace.ScanOptions{
			Extensions: []string{".md", ".markdown"},
			Ignore:     []string{"drafts/**"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.md"), filepath.Join(dir, "c.markdown")}, files)
}
