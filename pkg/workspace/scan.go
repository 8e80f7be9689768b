// Package workspace models a project folder of Markdown documents: scanning
// it into a tree, reading and writing files for the editor, and saving in the
// background.
package workspace

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gobwas/glob"
	"github.com/samber/lo"
)

// DefaultMaxFileSize is the largest document included in a scan.
const DefaultMaxFileSize int64 = 10 << 20

// DefaultExtensions are the file extensions treated as Markdown.
var DefaultExtensions = []string{".md"} //nolint:gochecknoglobals // read-only default

// DefaultHidden are entry names never shown, in addition to dot files.
var DefaultHidden = []string{"node_modules", ".git", ".DS_Store", ".gitignore", ".vscode", ".mdoc"} //nolint:gochecknoglobals // read-only default

// Kind distinguishes files from directories.
type Kind int

const (
	KindFile Kind = iota
	KindDir
)

// Node is an entry of the project tree.
type Node struct {
	Name     string
	Path     string
	Kind     Kind
	Size     int64
	Children []*Node
}

// IsDir reports whether the node is a directory.
func (n *Node) IsDir() bool { return n.Kind == KindDir }

// Skipped records a file left out of the tree.
type Skipped struct {
	Path   string
	Reason string
}

// Project is a scanned project folder.
type Project struct {
	Root    *Node
	Skipped []Skipped
}

// ScanOptions controls Scan.
type ScanOptions struct {
	// Extensions lists accepted file extensions. Empty means DefaultExtensions.
	Extensions []string

	// Hidden lists entry names to skip. Names starting with a dot are always
	// skipped. Empty means DefaultHidden.
	Hidden []string

	// Ignore holds glob patterns, relative to the root, of entries to skip.
	// "**" matches across directories.
	Ignore []string

	// MaxFileSize skips larger files. Zero means DefaultMaxFileSize; negative
	// disables the limit.
	MaxFileSize int64
}

type scanner struct {
	root       string
	extensions []string
	hidden     map[string]struct{}
	ignore     []glob.Glob
	maxSize    int64
}

func newScanner(root string, opts ScanOptions) (*scanner, error) {
	exts := opts.Extensions
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	hidden := opts.Hidden
	if len(hidden) == 0 {
		hidden = DefaultHidden
	}
	maxSize := opts.MaxFileSize
	if maxSize == 0 {
		maxSize = DefaultMaxFileSize
	}

	ignore := make([]glob.Glob, 0, len(opts.Ignore))
	for _, pattern := range opts.Ignore {
		g, err := glob.Compile(filepath.ToSlash(pattern), '/')
		if err != nil {
			return nil, fmt.Errorf("ignore pattern %q: %w", pattern, err)
		}
		ignore = append(ignore, g)
	}

	return &scanner{
		root: root,
		extensions: lo.Uniq(lo.Map(exts, func(e string, _ int) string {
			return strings.ToLower("." + strings.TrimPrefix(e, "."))
		})),
		hidden:  lo.SliceToMap(hidden, func(h string) (string, struct{}) { return h, struct{}{} }),
		ignore:  ignore,
		maxSize: maxSize,
	}, nil
}

// Scan walks root and builds the project tree. Hidden entries and files
// without a Markdown extension are left out; oversized files are left out and
// listed in Skipped. Directories sort before files, each group by name.
func Scan(ctx context.Context, root string, opts ScanOptions) (*Project, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", root, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s: not a directory", root)
	}

	sc, err := newScanner(abs, opts)
	if err != nil {
		return nil, err
	}

	project := &Project{Root: &Node{Name: filepath.Base(abs), Path: abs, Kind: KindDir}}
	dirs := map[string]*Node{abs: project.Root}

	err = filepath.WalkDir(abs, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if path == abs {
			return walkErr
		}
		if walkErr != nil {
			if errors.Is(walkErr, fs.ErrPermission) {
				project.Skipped = append(project.Skipped, Skipped{Path: path, Reason: "permission denied"})
				return nil
			}
			return walkErr
		}

		if sc.skip(path, entry) {
			if entry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		parent := dirs[filepath.Dir(path)]
		if parent == nil {
			return nil
		}

		if entry.IsDir() {
			node := &Node{Name: entry.Name(), Path: path, Kind: KindDir}
			parent.Children = append(parent.Children, node)
			dirs[path] = node
			return nil
		}

		if !sc.accepts(entry.Name()) {
			return nil
		}
		fi, err := entry.Info()
		if err != nil {
			return nil //nolint:nilerr // entry vanished during the walk
		}
		if sc.maxSize > 0 && fi.Size() > sc.maxSize {
			project.Skipped = append(project.Skipped, Skipped{
				Path:   path,
				Reason: fmt.Sprintf("larger than %d bytes", sc.maxSize),
			})
			return nil
		}

		parent.Children = append(parent.Children, &Node{
			Name: entry.Name(),
			Path: path,
			Kind: KindFile,
			Size: fi.Size(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}

	sortTree(project.Root)
	return project, nil
}

func (sc *scanner) skip(path string, entry fs.DirEntry) bool {
	name := entry.Name()
	if strings.HasPrefix(name, ".") {
		return true
	}
	if _, ok := sc.hidden[name]; ok {
		return true
	}
	if entry.Type()&fs.ModeSymlink != 0 {
		return true
	}

	rel, err := filepath.Rel(sc.root, path)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	return lo.SomeBy(sc.ignore, func(g glob.Glob) bool {
		return g.Match(rel) || g.Match(name)
	})
}

func (sc *scanner) accepts(name string) bool {
	return slices.Contains(sc.extensions, strings.ToLower(filepath.Ext(name)))
}

func sortTree(n *Node) {
	slices.SortFunc(n.Children, func(a, b *Node) int {
		if a.Kind != b.Kind {
			if a.IsDir() {
				return -1
			}
			return 1
		}
		return strings.Compare(a.Name, b.Name)
	})
	for _, child := range n.Children {
		if child.IsDir() {
			sortTree(child)
		}
	}
}

// Files returns every document path in tree order.
func (p *Project) Files() []string {
	var out []string
	p.Walk(func(n *Node, _ int) {
		if !n.IsDir() {
			out = append(out, n.Path)
		}
	})
	return out
}

// FirstFile returns the first document in tree order.
func (p *Project) FirstFile() (string, bool) {
	files := p.Files()
	if len(files) == 0 {
		return "", false
	}
	return files[0], true
}

// Find returns the node for path.
func (p *Project) Find(path string) (*Node, bool) {
	var found *Node
	p.Walk(func(n *Node, _ int) {
		if found == nil && n.Path == path {
			found = n
		}
	})
	return found, found != nil
}

// Walk visits every node below the root depth first, in tree order. depth is
// 0 for the root's children.
func (p *Project) Walk(fn func(n *Node, depth int)) {
	var visit func(n *Node, depth int)
	visit = func(n *Node, depth int) {
		for _, child := range n.Children {
			fn(child, depth)
			if child.IsDir() {
				visit(child, depth+1)
			}
		}
	}
	visit(p.Root, 0)
}
