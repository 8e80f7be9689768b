package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdedit/internal/cli"
	"github.com/yaklabco/mdedit/pkg/fsutil"
	"github.com/yaklabco/mdedit/pkg/imagefold"
	"github.com/yaklabco/mdedit/pkg/reporter"
)

// testDocument hides the query inside an image payload, where it must
// never match.
const testDocument = "A cat here.\n\n![cat](data:image/png;base64,cat)\n"

// testProject writes a document and an isolating config file into a temp
// dir and returns the dir and the config path.
func testProject(t *testing.T) (string, string) {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "doc.md"), []byte(testDocument), 0o644))

	cfgFile := filepath.Join(t.TempDir(), ".mdedit.yml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("flavor: gfm\n"), 0o644))
	return dir, cfgFile
}

// execute runs the root command and returns stdout, stderr and the error.
func execute(t *testing.T, cfgFile string, args ...string) (string, string, error) {
	t.Helper()

	cmd := cli.NewRootCommand(cli.BuildInfo{Version: "test", Commit: "test", Date: "test"})

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config", cfgFile, "--color", "never"}, args...))

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestIntegration_FindJSON(t *testing.T) {
	t.Parallel()

	dir, cfgFile := testProject(t)

	stdout, _, err := execute(t, cfgFile, "find", "CAT", dir, "--format", "json")
	require.NoError(t, err)

	var out reporter.JSONOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))

	assert.Equal(t, "CAT", out.Query)
	require.Len(t, out.Files, 1)
	assert.Equal(t, filepath.Join(dir, "doc.md"), out.Files[0].Path)

	// "cat" in the prose and in the alt text; the payload is folded away.
	require.Len(t, out.Files[0].Matches, 2)
	assert.Equal(t, 1, out.Files[0].Matches[0].Line)
	assert.Equal(t, 3, out.Files[0].Matches[0].Column)
	assert.Equal(t, 3, out.Files[0].Matches[1].Line)
	assert.Equal(t, 2, out.Summary.Matches)
}

func TestIntegration_FindText(t *testing.T) {
	t.Parallel()

	dir, cfgFile := testProject(t)

	stdout, _, err := execute(t, cfgFile, "find", "hidden", dir)
	require.NoError(t, err)

	assert.Contains(t, stdout, "doc.md (1 match)")
	assert.Contains(t, stdout, imagefold.Placeholder)
	assert.NotContains(t, stdout, "base64,cat")
}

func TestIntegration_FindNoMatches(t *testing.T) {
	t.Parallel()

	dir, cfgFile := testProject(t)

	stdout, _, err := execute(t, cfgFile, "find", "png", dir)
	require.ErrorIs(t, err, cli.ErrNoMatches)
	assert.Equal(t, cli.ExitNoMatches, cli.ExitCode(err))
	assert.Contains(t, stdout, "No matches found")
}

func TestIntegration_ReplaceDryRun(t *testing.T) {
	t.Parallel()

	dir, cfgFile := testProject(t)
	doc := filepath.Join(dir, "doc.md")

	stdout, _, err := execute(t, cfgFile, "replace", "cat", "dog", dir, "--dry-run")
	require.NoError(t, err)

	assert.Contains(t, stdout, "-A cat here.")
	assert.Contains(t, stdout, "+A dog here.")
	assert.NotContains(t, stdout, "base64,cat")

	got, err := os.ReadFile(doc)
	require.NoError(t, err)
	assert.Equal(t, testDocument, string(got), "dry run leaves the file alone")
}

func TestIntegration_Replace(t *testing.T) {
	t.Parallel()

	dir, cfgFile := testProject(t)
	doc := filepath.Join(dir, "doc.md")

	stdout, _, err := execute(t, cfgFile, "replace", "cat", "dog", dir, "--format", "summary")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Replaced")

	got, err := os.ReadFile(doc)
	require.NoError(t, err)
	assert.Equal(t, "A dog here.\n\n![dog](data:image/png;base64,cat)\n", string(got))

	backup, err := os.ReadFile(fsutil.BackupPath(doc))
	require.NoError(t, err)
	assert.Equal(t, testDocument, string(backup))
}

func TestIntegration_ReplaceNoBackups(t *testing.T) {
	t.Parallel()

	dir, cfgFile := testProject(t)
	doc := filepath.Join(dir, "doc.md")

	_, _, err := execute(t, cfgFile, "replace", "cat", "dog", dir, "--no-backups")
	require.NoError(t, err)
	assert.False(t, fsutil.Exists(fsutil.BackupPath(doc)))
}

func TestIntegration_FoldUnfold(t *testing.T) {
	t.Parallel()

	dir, cfgFile := testProject(t)
	doc := filepath.Join(dir, "doc.md")

	folded, _, err := execute(t, cfgFile, "fold", doc)
	require.NoError(t, err)
	assert.Equal(t, "A cat here.\n\n![cat]([base64 image hidden])\n", folded)

	edited := filepath.Join(dir, "view.txt")
	require.NoError(t, os.WriteFile(edited, []byte(strings.Replace(folded, "A cat", "One cat", 1)), 0o644))

	restored, _, err := execute(t, cfgFile, "unfold", doc, edited)
	require.NoError(t, err)
	assert.Equal(t, "One cat here.\n\n![cat](data:image/png;base64,cat)\n", restored)
}

func TestIntegration_EmbedInto(t *testing.T) {
	t.Parallel()

	dir, cfgFile := testProject(t)
	doc := filepath.Join(dir, "doc.md")
	svg := `<svg xmlns="http://www.w3.org/2000/svg"/>`
	image := filepath.Join(dir, "dot.svg")
	require.NoError(t, os.WriteFile(image, []byte(svg), 0o644))

	snippet, _, err := execute(t, cfgFile, "embed", image, "--alt", "Dot")
	require.NoError(t, err)
	want := imagefold.Snippet("Dot", imagefold.DataURL("image/svg+xml", []byte(svg)))
	assert.Equal(t, want+"\n", snippet)

	_, _, err = execute(t, cfgFile, "embed", image, "--into", doc, "--line", "2", "--alt", "Dot")
	require.NoError(t, err)

	got, err := os.ReadFile(doc)
	require.NoError(t, err)
	assert.Equal(t, "A cat here.\n"+want+"\n\n![cat](data:image/png;base64,cat)\n", string(got))
}

func TestIntegration_ExportAndTOC(t *testing.T) {
	t.Parallel()

	dir, cfgFile := testProject(t)
	doc := filepath.Join(dir, "guide.md")
	require.NoError(t, os.WriteFile(doc, []byte("# Guide\n\n## Install it\n\ntext\n"), 0o644))

	_, _, err := execute(t, cfgFile, "export", doc)
	require.NoError(t, err)

	page, err := os.ReadFile(filepath.Join(dir, "guide.html"))
	require.NoError(t, err)
	assert.Contains(t, string(page), "<title>guide</title>")
	assert.Contains(t, string(page), `id="install-it"`)

	toc, _, err := execute(t, cfgFile, "export", doc, "--toc")
	require.NoError(t, err)
	assert.Equal(t, "- Guide (#guide)\n  - Install it (#install-it)\n", toc)
}

func TestIntegration_TreeList(t *testing.T) {
	t.Parallel()

	dir, cfgFile := testProject(t)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "notes"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes", "a.md"), []byte("a"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "image.png"), []byte("x"), 0o644))

	stdout, _, err := execute(t, cfgFile, "tree", dir, "--list")
	require.NoError(t, err)
	assert.Equal(t, "notes/a.md\ndoc.md\n", stdout)

	tree, _, err := execute(t, cfgFile, "tree", dir)
	require.NoError(t, err)
	assert.Contains(t, tree, "notes/")
	assert.NotContains(t, tree, "image.png")
}

func TestIntegration_NewAndRename(t *testing.T) {
	t.Parallel()

	dir, cfgFile := testProject(t)

	stdout, _, err := execute(t, cfgFile, "new", "ideas", "--dir", dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "ideas.md")+"\n", stdout)

	_, _, err = execute(t, cfgFile, "new", "ideas", "--dir", dir)
	require.Error(t, err, "existing documents are not replaced")

	stdout, _, err = execute(t, cfgFile, "rename", filepath.Join(dir, "ideas.md"), "plans")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "plans.md")+"\n", stdout)
	assert.True(t, fsutil.Exists(filepath.Join(dir, "plans.md")))
}

func TestIntegration_Init(t *testing.T) {
	t.Parallel()

	dir, cfgFile := testProject(t)
	out := filepath.Join(dir, "custom.yml")

	_, _, err := execute(t, cfgFile, "init", "--output", out)
	require.NoError(t, err)

	content, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(content), "flavor: gfm")

	_, _, err = execute(t, cfgFile, "init", "--output", out)
	require.Error(t, err, "init refuses to overwrite without --force")

	_, _, err = execute(t, cfgFile, "init", "--output", out, "--force", "--full")
	require.NoError(t, err)
}

func TestIntegration_InvalidConfig(t *testing.T) {
	t.Parallel()

	dir, _ := testProject(t)
	bad := filepath.Join(t.TempDir(), "bad.yml")
	require.NoError(t, os.WriteFile(bad, []byte("flavor: [unclosed\n"), 0o644))

	_, _, err := execute(t, bad, "find", "cat", dir)
	require.Error(t, err)
	assert.Equal(t, cli.ExitConfigError, cli.ExitCode(err))
}
