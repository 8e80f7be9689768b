// Package preview renders Markdown documents to HTML for previewing and
// export.
package preview

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// Flavors accepted by Options.Flavor.
const (
	FlavorCommonMark = "commonmark"
	FlavorGFM        = "gfm"
)

// Options configures a Renderer.
type Options struct {
	// Flavor is FlavorGFM or FlavorCommonMark. Unknown values mean GFM.
	Flavor string

	// Linkify turns bare URLs into links (GFM only).
	Linkify bool

	// Typographer replaces quotes and dashes with typographic punctuation.
	Typographer bool

	// HardWraps renders every newline in a paragraph as a line break.
	HardWraps bool

	// HighlightStyle names the chroma style used for code blocks. Empty
	// picks one matching the theme.
	HighlightStyle string

	// Theme selects the color scheme.
	Theme Theme
}

// DefaultOptions mirrors the editor's preview pane.
func DefaultOptions() Options {
	return Options{
		Flavor:      FlavorGFM,
		Linkify:     true,
		Typographer: true,
		HardWraps:   true,
		Theme:       ThemeLight,
	}
}

// Result is a rendered document.
type Result struct {
	// HTML is the rendered body fragment.
	HTML []byte

	// TOC lists the document headings in order.
	TOC []Heading
}

// Renderer converts Markdown to HTML. Raw HTML in the source is omitted from
// the output. A Renderer is safe for concurrent use.
type Renderer struct {
	opts Options
	md   goldmark.Markdown
}

// New returns a Renderer for opts.
func New(opts Options) *Renderer {
	var exts []goldmark.Extender
	switch opts.Flavor {
	case FlavorCommonMark:
	default:
		opts.Flavor = FlavorGFM
		exts = append(exts, extension.Table, extension.Strikethrough, extension.TaskList)
		if opts.Linkify {
			exts = append(exts, extension.Linkify)
		}
	}
	if opts.Typographer {
		exts = append(exts, extension.Typographer)
	}

	htmlOpts := []renderer.Option{html.WithXHTML()}
	if opts.HardWraps {
		htmlOpts = append(htmlOpts, html.WithHardWraps())
	}

	md := goldmark.New(
		goldmark.WithExtensions(exts...),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
			parser.WithASTTransformers(util.Prioritized(externalLinks{}, 100)),
		),
		goldmark.WithRendererOptions(htmlOpts...),
		goldmark.WithRendererOptions(
			renderer.WithNodeRenderers(util.Prioritized(newCodeRenderer(opts.HighlightStyle, opts.Theme), 200)),
		),
	)

	return &Renderer{opts: opts, md: md}
}

// Options returns the options the renderer was built with.
func (r *Renderer) Options() Options { return r.opts }

// Render converts source to an HTML fragment and collects its headings.
func (r *Renderer) Render(source []byte) (*Result, error) {
	ctx := parser.NewContext(parser.WithIDs(newSlugIDs()))
	doc := r.md.Parser().Parse(text.NewReader(source), parser.WithContext(ctx))

	var buf bytes.Buffer
	if err := r.md.Renderer().Render(&buf, source, doc); err != nil {
		return nil, fmt.Errorf("render markdown: %w", err)
	}

	return &Result{HTML: buf.Bytes(), TOC: collectHeadings(doc, source)}, nil
}

// externalLinks opens absolute links in a new browsing context.
type externalLinks struct{}

func (externalLinks) Transform(doc *ast.Document, reader text.Reader, _ parser.Context) {
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		var dest []byte
		switch link := n.(type) {
		case *ast.Link:
			dest = link.Destination
		case *ast.AutoLink:
			dest = link.URL(reader.Source())
		default:
			return ast.WalkContinue, nil
		}
		if isExternal(dest) {
			n.SetAttributeString("target", []byte("_blank"))
			n.SetAttributeString("rel", []byte("noopener noreferrer"))
		}
		return ast.WalkContinue, nil
	})
}

func isExternal(dest []byte) bool {
	for _, scheme := range [][]byte{[]byte("http://"), []byte("https://"), []byte("mailto:")} {
		if bytes.HasPrefix(bytes.ToLower(dest), scheme) {
			return true
		}
	}
	return false
}
