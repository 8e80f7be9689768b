// Package tui is the terminal editor: a Bubble Tea program that drives an
// editor.Buffer through a text surface with find, replace and image
// embedding.
package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/mattn/go-runewidth"

	"github.com/yaklabco/mdedit/internal/logging"
	"github.com/yaklabco/mdedit/internal/ui/pretty"
	"github.com/yaklabco/mdedit/pkg/editor"
	"github.com/yaklabco/mdedit/pkg/imagefold"
	"github.com/yaklabco/mdedit/pkg/search"
	"github.com/yaklabco/mdedit/pkg/workspace"
)

// chromeLines is the number of rows used below the text: status bar and
// prompt or help line.
const chromeLines = 2

// Options configures the editor.
type Options struct {
	// Path is the document to edit.
	Path string

	// Store reads and writes documents. Required.
	Store *workspace.Store

	// Watcher, when set, reports external changes to the document.
	Watcher *workspace.Watcher

	// AutoSave saves the document after AutoSaveDelay without edits.
	AutoSave      bool
	AutoSaveDelay time.Duration

	ScrollContext int
	TabWidth      int

	// MaxImageSide bounds embedded raster images.
	MaxImageSide int

	Styles    *pretty.Styles
	Logger    *log.Logger
	Clipboard Clipboard
}

type promptMode int

const (
	promptNone promptMode = iota
	promptFind
	promptReplaceQuery
	promptReplaceWith
	promptImage
)

type (
	// fileChangedMsg reports a write to a watched file.
	fileChangedMsg struct{ path string }

	// backgroundErrMsg carries failures from the watcher.
	backgroundErrMsg struct{ err error }

	// autosaveMsg reports that the autosave delay elapsed.
	autosaveMsg struct{}
)

// Model is the Bubble Tea model of the editor.
type Model struct {
	ctx    context.Context
	opts   Options
	logger *log.Logger
	styles *pretty.Styles

	buf      *editor.Buffer
	view     *surface
	autosave *workspace.AutoSaver
	saveDue  chan struct{}

	keys   keyMap
	help   help.Model
	prompt textinput.Model
	mode   promptMode

	query       string
	replacement string

	status    string
	statusErr bool
	quitArmed bool

	width  int
	height int
}

// New opens opts.Path and returns the editor model.
func New(ctx context.Context, opts Options) (*Model, error) {
	if opts.Store == nil {
		return nil, errors.New("tui: store is required")
	}
	if opts.Styles == nil {
		opts.Styles = pretty.NewStyles(true)
	}
	if opts.Logger == nil {
		opts.Logger = logging.FromContext(ctx)
	}
	if opts.Clipboard == nil {
		opts.Clipboard = SystemClipboard{}
	}

	path, err := filepath.Abs(opts.Path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", opts.Path, err)
	}

	m := &Model{
		ctx:     ctx,
		opts:    opts,
		logger:  opts.Logger,
		styles:  opts.Styles,
		view:    newSurface(opts.TabWidth),
		saveDue: make(chan struct{}, 1),
		keys:    defaultKeyMap(),
		help:    help.New(),
		prompt:  textinput.New(),
	}

	bufOpts := []editor.Option{
		editor.WithSurface(m.view),
		editor.WithScrollContext(opts.ScrollContext),
	}
	if opts.AutoSave {
		m.autosave = workspace.NewAutoSaver(opts.AutoSaveDelay, m.requestSave, nil)
		bufOpts = append(bufOpts, editor.WithOnChange(m.autosave.Changed))
	}
	m.buf = editor.New(opts.Store, bufOpts...)

	if err := m.buf.Open(ctx, path); err != nil {
		return nil, err
	}
	m.view.Focus()

	if opts.Watcher != nil {
		if err := opts.Watcher.Add(path); err != nil {
			m.logger.Warn("file watching disabled", logging.FieldPath, path, logging.FieldError, err)
		}
	}

	m.logger.Info("opened", logging.FieldPath, path, logging.FieldBytes, len(m.buf.Storage()),
		logging.FieldImages, len(m.buf.Mapper().Spans()))
	return m, nil
}

// Buffer returns the document controller.
func (m *Model) Buffer() *editor.Buffer { return m.buf }

// requestSave is the autosave target. It runs on the timer goroutine, so it
// only signals Update, which owns the buffer.
func (m *Model) requestSave(context.Context, string) error {
	select {
	case m.saveDue <- struct{}{}:
	default:
	}
	return nil
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.listen()
}

// listen waits for the next background event.
func (m *Model) listen() tea.Cmd {
	var changes <-chan string
	var watchErrs <-chan error
	if m.opts.Watcher != nil {
		changes = m.opts.Watcher.Events()
		watchErrs = m.opts.Watcher.Errors()
	}

	return func() tea.Msg {
		select {
		case <-m.ctx.Done():
			return nil
		case <-m.saveDue:
			return autosaveMsg{}
		case path, ok := <-changes:
			if !ok {
				return nil
			}
			return fileChangedMsg{path: path}
		case err, ok := <-watchErrs:
			if !ok {
				return nil
			}
			return backgroundErrMsg{err: fmt.Errorf("watch: %w", err)}
		}
	}
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.view.setSize(msg.Width, msg.Height-chromeLines)
		m.help.Width = msg.Width
		m.prompt.Width = max(msg.Width-lipgloss.Width(m.prompt.Prompt)-1, 1)
		return m, nil

	case fileChangedMsg:
		m.externalChange(msg.path)
		return m, m.listen()

	case backgroundErrMsg:
		m.fail(msg.err)
		return m, m.listen()

	case autosaveMsg:
		m.autoSave()
		return m, m.listen()

	case tea.KeyMsg:
		if m.mode != promptNone {
			return m.updatePrompt(msg)
		}
		return m.updateEditor(msg)
	}

	return m, nil
}

// externalChange reloads the document when it changed on disk and has no
// unsaved edits.
func (m *Model) externalChange(path string) {
	if path != m.buf.Path() {
		return
	}
	changed, err := m.opts.Store.Changed(m.ctx, path)
	if err != nil || !changed {
		return
	}
	if m.buf.Dirty() {
		m.setStatus("file changed on disk; unsaved edits kept")
		m.logger.Warn("external change ignored", logging.FieldPath, path, logging.FieldDirty, true)
		return
	}

	cursor := m.buf.Cursor()
	if err := m.buf.Open(m.ctx, path); err != nil {
		m.fail(err)
		return
	}
	m.buf.SetCursor(cursor)
	m.setStatus("reloaded from disk")
	m.logger.Info("reloaded", logging.FieldPath, path)
}

func (m *Model) updateEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !key.Matches(msg, m.keys.Quit) {
		m.quitArmed = false
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, m.quit()
	case key.Matches(msg, m.keys.Save):
		m.save()
	case key.Matches(msg, m.keys.Find):
		return m, m.openPrompt(promptFind, "Find: ", m.query)
	case key.Matches(msg, m.keys.Next):
		m.reportSearch(m.buf.Next())
	case key.Matches(msg, m.keys.Previous):
		m.reportSearch(m.buf.Previous())
	case key.Matches(msg, m.keys.Replace):
		return m, m.openPrompt(promptReplaceQuery, "Replace: ", m.query)
	case key.Matches(msg, m.keys.Image):
		return m, m.openPrompt(promptImage, "Image file: ", "")
	case key.Matches(msg, m.keys.Paste):
		m.paste()
	case key.Matches(msg, m.keys.Copy):
		m.copySelection()
	case key.Matches(msg, m.keys.SelectAll):
		m.view.selectAll()
	case key.Matches(msg, m.keys.Cancel):
		m.view.moveTo(m.view.caret, false)
	default:
		m.editKey(msg)
	}
	return m, nil
}

// editKey handles navigation and typing.
func (m *Model) editKey(msg tea.KeyMsg) {
	v := m.view
	switch msg.String() {
	case "left", "shift+left":
		v.left(msg.Type == tea.KeyShiftLeft)
	case "right", "shift+right":
		v.right(msg.Type == tea.KeyShiftRight)
	case "up", "shift+up":
		v.vertical(-1, msg.Type == tea.KeyShiftUp)
	case "down", "shift+down":
		v.vertical(1, msg.Type == tea.KeyShiftDown)
	case "pgup":
		v.vertical(-v.height, false)
	case "pgdown":
		v.vertical(v.height, false)
	case "home", "shift+home":
		v.home(msg.Type == tea.KeyShiftHome)
	case "end", "shift+end":
		v.end(msg.Type == tea.KeyShiftEnd)
	case "ctrl+home":
		v.moveTo(0, false)
	case "ctrl+end":
		v.moveTo(len(v.text), false)
	case "backspace":
		if text, ok := v.backspace(); ok {
			m.buf.Edit(text)
		}
	case "delete":
		if text, ok := v.deleteForward(); ok {
			m.buf.Edit(text)
		}
	case "enter":
		m.buf.Edit(v.replaceSelection("\n"))
	case "tab":
		m.buf.Edit(v.replaceSelection("\t"))
	default:
		if msg.Type != tea.KeyRunes && msg.Type != tea.KeySpace {
			return
		}
		if msg.Paste {
			m.insert(string(msg.Runes))
			return
		}
		m.buf.Edit(v.replaceSelection(string(msg.Runes)))
	}
}

// insert replaces the selection with text through the buffer, so pasted
// data URIs are folded.
func (m *Model) insert(text string) {
	if m.view.hasSelection() {
		m.buf.Edit(m.view.replaceSelection(""))
	}
	m.buf.InsertAtCursor(text)
	m.view.follow()
}

func (m *Model) paste() {
	text, err := m.opts.Clipboard.ReadAll()
	if err != nil {
		m.fail(fmt.Errorf("paste: %w", err))
		return
	}
	if text != "" {
		m.insert(text)
	}
}

// copySelection copies the selected text with image payloads restored.
func (m *Model) copySelection() {
	if !m.view.hasSelection() {
		return
	}
	start, end := m.buf.Selection()
	mapper := m.buf.Mapper()
	text := mapper.Storage()[mapper.DisplayToStorage(start):mapper.DisplayToStorage(end)]
	if err := m.opts.Clipboard.WriteAll(text); err != nil {
		m.fail(fmt.Errorf("copy: %w", err))
		return
	}
	m.setStatus(fmt.Sprintf("copied %d bytes", len(text)))
}

func (m *Model) save() {
	if err := m.buf.Save(m.ctx); err != nil {
		m.fail(err)
		return
	}
	m.setStatus("saved")
	m.logger.Info("saved", logging.FieldPath, m.buf.Path(), logging.FieldBytes, len(m.buf.Storage()))
}

// autoSave writes the buffer after the autosave delay. Blank documents are
// left for an explicit save.
func (m *Model) autoSave() {
	if !m.buf.Dirty() || strings.TrimSpace(m.buf.Storage()) == "" {
		return
	}
	if err := m.buf.Save(m.ctx); err != nil {
		m.fail(fmt.Errorf("autosave: %w", err))
		return
	}
	m.logger.Debug("autosaved", logging.FieldPath, m.buf.Path(), logging.FieldBytes, len(m.buf.Storage()))
}

// quit saves pending autosave content and exits. Without autosave, a dirty
// buffer needs the quit key twice.
func (m *Model) quit() tea.Cmd {
	if m.autosave != nil {
		if m.autosave.Pending() {
			if err := m.buf.Save(m.ctx); err != nil {
				m.fail(err)
				return nil
			}
		}
		m.autosave.Stop()
	}
	if m.buf.Dirty() && m.autosave == nil && !m.quitArmed {
		m.quitArmed = true
		m.setStatus("unsaved changes; press ctrl+q again to quit")
		return nil
	}
	return tea.Quit
}

func (m *Model) openPrompt(mode promptMode, label, value string) tea.Cmd {
	m.mode = mode
	m.prompt.Prompt = label
	m.prompt.SetValue(value)
	m.prompt.CursorEnd()
	if m.width > 0 {
		m.prompt.Width = max(m.width-lipgloss.Width(label)-1, 1)
	}
	return m.prompt.Focus()
}

func (m *Model) closePrompt() {
	m.mode = promptNone
	m.prompt.Blur()
}

func (m *Model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.closePrompt()
		return m, nil
	case m.mode == promptReplaceWith && key.Matches(msg, m.keys.ReplaceAll):
		m.replacement = m.prompt.Value()
		m.replaceAll()
		m.closePrompt()
		return m, nil
	case msg.Type == tea.KeyEnter:
		return m, m.submitPrompt()
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

func (m *Model) submitPrompt() tea.Cmd {
	value := m.prompt.Value()

	switch m.mode {
	case promptFind:
		m.query = value
		m.closePrompt()
		m.reportSearch(m.buf.Search(value))
		m.logger.Debug("search", logging.FieldQuery, value, logging.FieldMatches, m.buf.SearchResult().Matches)
	case promptReplaceQuery:
		if search.Blank(value) {
			m.closePrompt()
			return nil
		}
		m.query = value
		m.reportSearch(m.buf.Search(value))
		return m.openPrompt(promptReplaceWith, "With (enter: one, ctrl+a: all): ", m.replacement)
	case promptReplaceWith:
		m.replacement = value
		m.replaceOne()
		if m.buf.SearchResult().Matches == 0 {
			m.closePrompt()
		}
	case promptImage:
		m.closePrompt()
		m.embedImage(value)
	case promptNone:
	}
	return nil
}

func (m *Model) replaceOne() {
	n, err := m.buf.ReplaceOne(m.query, m.replacement)
	if err != nil {
		m.fail(err)
		return
	}
	res := m.buf.SearchResult()
	m.setStatus(fmt.Sprintf("replaced %d, %d left", n, res.Matches))
	m.view.follow()
}

func (m *Model) replaceAll() {
	n, err := m.buf.ReplaceAll(m.query, m.replacement)
	if err != nil {
		m.fail(err)
		return
	}
	m.setStatus(fmt.Sprintf("replaced %d", n))
	m.logger.Info("replace all", logging.FieldQuery, m.query, logging.FieldReplaced, n)
}

// embedImage reads an image file and inserts it as a data URI at the caret.
func (m *Model) embedImage(path string) {
	path = strings.TrimSpace(path)
	if path == "" {
		return
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(filepath.Dir(m.buf.Path()), path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		m.fail(err)
		return
	}
	snippet, err := imagefold.EmbedImage(path, data, imagefold.EmbedOptions{MaxSide: m.opts.MaxImageSide})
	if err != nil {
		m.fail(err)
		return
	}
	m.insert(snippet)
	m.setStatus("embedded " + filepath.Base(path))
	m.logger.Info("embedded image", logging.FieldPath, path, logging.FieldBytes, len(snippet))
}

func (m *Model) reportSearch(res search.Result) {
	if res.Matches == 0 {
		m.setStatus("no matches")
		return
	}
	m.setStatus(fmt.Sprintf("match %d of %d", res.Current, res.Matches))
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *Model) fail(err error) {
	m.status = err.Error()
	m.statusErr = true
	m.logger.Error("editor", logging.FieldError, err)
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 {
		return ""
	}

	var bottom string
	if m.mode != promptNone {
		bottom = m.prompt.View()
	} else {
		bottom = m.help.View(m.keys)
	}

	return m.view.view(m.styles) + "\n" + m.statusBar() + "\n" + bottom
}

// statusBar renders the file name, dirty marker, status message, search
// position and caret location on one line.
func (m *Model) statusBar() string {
	name := filepath.Base(m.buf.Path())
	left := m.styles.StatusKey.Render(" " + name + " ")
	if m.buf.Dirty() {
		left += m.styles.StatusDirty.Render(" ● ")
	}

	line, col := m.caretPosition()
	right := fmt.Sprintf(" Ln %d, Col %d ", line, col)
	if res := m.buf.SearchResult(); res.Matches > 0 {
		right = fmt.Sprintf(" %d/%d ", res.Current, res.Matches) + right
	}

	room := max(m.width-lipgloss.Width(left)-lipgloss.Width(right)-2, 0)
	status := runewidth.Truncate(m.status, room, "…")
	gap := max(room-runewidth.StringWidth(status), 0)
	if m.statusErr {
		status = m.styles.Error.Render(status)
	}

	return left + m.styles.StatusBar.Render(" "+status+strings.Repeat(" ", gap)+" "+right)
}

// caretPosition returns the 1-based line and display column of the caret.
func (m *Model) caretPosition() (int, int) {
	line := m.view.index.Line(m.view.caret)
	return line + 1, m.view.column(line, m.view.caret) + 1
}
