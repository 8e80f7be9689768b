package preview

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"html/template"
	"path/filepath"
	"strings"

	"github.com/yaklabco/mdedit/pkg/fsutil"
)

// Theme selects the preview color scheme.
type Theme string

// Themes.
const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Valid reports whether t is a known theme.
func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark
}

var (
	//go:embed assets/light.css
	lightCSS string

	//go:embed assets/dark.css
	darkCSS string
)

// Stylesheet returns the CSS for theme. Unknown themes get the light sheet.
func Stylesheet(theme Theme) string {
	if theme == ThemeDark {
		return darkCSS
	}
	return lightCSS
}

var documentTemplate = template.Must(template.New("document").Parse(`<!DOCTYPE html>
<html lang="{{.Lang}}">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{.Title}}</title>
<style>
{{.CSS}}
</style>
</head>
<body>
<div class="markdown-preview">
{{.Body}}
</div>
</body>
</html>
`))

type documentData struct {
	Lang  string
	Title string
	CSS   template.CSS
	Body  template.HTML
}

// DocumentOptions configures a standalone page.
type DocumentOptions struct {
	Title string
	Lang  string
	Theme Theme
}

// Document wraps a rendered fragment in a standalone HTML page.
func Document(body []byte, opts DocumentOptions) ([]byte, error) {
	lang := opts.Lang
	if lang == "" {
		lang = "en"
	}

	var buf bytes.Buffer
	err := documentTemplate.Execute(&buf, documentData{
		Lang:  lang,
		Title: opts.Title,
		CSS:   template.CSS(Stylesheet(opts.Theme)), //nolint:gosec // embedded stylesheet
		Body:  template.HTML(body),                  //nolint:gosec // goldmark output with raw HTML disabled
	})
	if err != nil {
		return nil, fmt.Errorf("execute document template: %w", err)
	}
	return buf.Bytes(), nil
}

// ExportPath returns the HTML path written by Export for a Markdown file.
func ExportPath(mdPath string) string {
	ext := filepath.Ext(mdPath)
	if strings.EqualFold(ext, ".md") || strings.EqualFold(ext, ".markdown") {
		return strings.TrimSuffix(mdPath, ext) + ".html"
	}
	return mdPath + ".html"
}

// Export renders content as a standalone page next to mdPath and returns the
// written path. The page title is the file name without extension.
func Export(ctx context.Context, r *Renderer, mdPath string, content []byte) (string, error) {
	res, err := r.Render(content)
	if err != nil {
		return "", err
	}

	title := strings.TrimSuffix(filepath.Base(mdPath), filepath.Ext(mdPath))
	page, err := Document(res.HTML, DocumentOptions{Title: title, Theme: r.Options().Theme})
	if err != nil {
		return "", err
	}

	out := ExportPath(mdPath)
	if err := fsutil.WriteAtomic(ctx, out, page, fsutil.DefaultFileMode); err != nil {
		return "", fmt.Errorf("export %s: %w", out, err)
	}
	return out, nil
}
