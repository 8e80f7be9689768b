package workspace_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdedit/pkg/workspace"
)

func mkfile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func relNames(t *testing.T, root string, p *workspace.Project) []string {
	t.Helper()
	var out []string
	p.Walk(func(n *workspace.Node, depth int) {
		rel, err := filepath.Rel(root, n.Path)
		require.NoError(t, err)
		suffix := ""
		if n.IsDir() {
			suffix = "/"
		}
		out = append(out, strings.Repeat("  ", depth)+filepath.ToSlash(rel)+suffix)
	})
	return out
}

func TestScan(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	mkfile(t, root, "b.md", "b")
	mkfile(t, root, "A.md", "a")
	mkfile(t, root, "notes.txt", "not markdown")
	mkfile(t, root, ".hidden.md", "hidden")
	mkfile(t, root, "docs/guide.MD", "guide")
	mkfile(t, root, "docs/img/logo.png", "png")
	mkfile(t, root, "node_modules/pkg/readme.md", "dep")
	mkfile(t, root, ".git/HEAD.md", "git")

	project, err := workspace.Scan(context.Background(), root, workspace.ScanOptions{})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"docs/",
		"  docs/img/",
		"  docs/guide.MD",
		"A.md",
		"b.md",
	}, relNames(t, root, project))

	first, ok := project.FirstFile()
	require.True(t, ok)
	assert.Equal(t, filepath.Join(root, "docs", "guide.MD"), first)
	assert.Len(t, project.Files(), 3)
}

func TestScanSkipsLargeFiles(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	mkfile(t, root, "small.md", "ok")
	mkfile(t, root, "big.md", strings.Repeat("x", 64))

	project, err := workspace.Scan(context.Background(), root, workspace.ScanOptions{MaxFileSize: 32})
	require.NoError(t, err)

	assert.Equal(t, []string{filepath.Join(root, "small.md")}, project.Files())
	require.Len(t, project.Skipped, 1)
	assert.Equal(t, filepath.Join(root, "big.md"), project.Skipped[0].Path)
}

func TestScanIgnoreAndExtensions(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	mkfile(t, root, "keep.md", "")
	mkfile(t, root, "drafts/wip.md", "")
	mkfile(t, root, "deep/a/b/skip.md", "")
	mkfile(t, root, "page.markdown", "")

	project, err := workspace.Scan(context.Background(), root, workspace.ScanOptions{
		Extensions: []string{"md", ".markdown"},
		Ignore:     []string{"drafts", "**/skip.md"},
	})
	require.NoError(t, err)

	files := project.Files()
	assert.Contains(t, files, filepath.Join(root, "keep.md"))
	assert.Contains(t, files, filepath.Join(root, "page.markdown"))
	assert.NotContains(t, files, filepath.Join(root, "drafts", "wip.md"))
	assert.NotContains(t, files, filepath.Join(root, "deep", "a", "b", "skip.md"))

	_, ok := project.Find(filepath.Join(root, "deep", "a"))
	assert.True(t, ok)
}

func TestScanErrors(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	mkfile(t, root, "file.md", "")

	_, err := workspace.Scan(context.Background(), filepath.Join(root, "file.md"), workspace.ScanOptions{})
	require.Error(t, err)

	_, err = workspace.Scan(context.Background(), filepath.Join(root, "missing"), workspace.ScanOptions{})
	require.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = workspace.Scan(ctx, root, workspace.ScanOptions{})
	require.ErrorIs(t, err, context.Canceled)
}

func TestScanEmptyProject(t *testing.T) {
	t.Parallel()

	project, err := workspace.Scan(context.Background(), t.TempDir(), workspace.ScanOptions{})
	require.NoError(t, err)

	_, ok := project.FirstFile()
	assert.False(t, ok)
}
