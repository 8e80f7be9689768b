package pretty

import (
	"fmt"

	"github.com/charmbracelet/lipgloss/tree"

	"github.com/yaklabco/mdedit/pkg/workspace"
)

// FormatTree renders a scanned project as a directory tree. Directories
// are suffixed with "/"; skipped files are listed after the tree.
func (s *Styles) FormatTree(project *workspace.Project) string {
	if project == nil || project.Root == nil {
		return ""
	}

	root := tree.Root(s.TreeRoot.Render(project.Root.Name + "/")).
		EnumeratorStyle(s.TreeBranch).
		Enumerator(tree.RoundedEnumerator)
	s.addChildren(root, project.Root)

	out := root.String() + "\n"
	for _, skipped := range project.Skipped {
		out += s.Dim.Render(fmt.Sprintf("skipped %s: %s", skipped.Path, skipped.Reason)) + "\n"
	}
	return out
}

func (s *Styles) addChildren(t *tree.Tree, node *workspace.Node) {
	for _, child := range node.Children {
		if !child.IsDir() {
			t.Child(child.Name)
			continue
		}
		sub := tree.Root(s.TreeDir.Render(child.Name + "/"))
		s.addChildren(sub, child)
		t.Child(sub)
	}
}
