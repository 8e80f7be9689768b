package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the editor's key bindings.
type keyMap struct {
	Save       key.Binding
	Find       key.Binding
	Next       key.Binding
	Previous   key.Binding
	Replace    key.Binding
	ReplaceAll key.Binding
	Image      key.Binding
	Paste      key.Binding
	Copy       key.Binding
	SelectAll  key.Binding
	Cancel     key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Save:       key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Find:       key.NewBinding(key.WithKeys("ctrl+f"), key.WithHelp("ctrl+f", "find")),
		Next:       key.NewBinding(key.WithKeys("f3", "ctrl+n"), key.WithHelp("f3", "next")),
		Previous:   key.NewBinding(key.WithKeys("shift+f3", "f15", "ctrl+p"), key.WithHelp("shift+f3", "previous")),
		Replace:    key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "replace")),
		ReplaceAll: key.NewBinding(key.WithKeys("ctrl+a"), key.WithHelp("ctrl+a", "replace all")),
		Image:      key.NewBinding(key.WithKeys("ctrl+g"), key.WithHelp("ctrl+g", "image")),
		Paste:      key.NewBinding(key.WithKeys("ctrl+v"), key.WithHelp("ctrl+v", "paste")),
		Copy:       key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "copy")),
		SelectAll:  key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "select all")),
		Cancel:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Quit:       key.NewBinding(key.WithKeys("ctrl+q"), key.WithHelp("ctrl+q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Save, k.Find, k.Replace, k.Image, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Save, k.Quit},
		{k.Find, k.Next, k.Previous},
		{k.Replace, k.ReplaceAll},
		{k.Image, k.Paste, k.Copy, k.SelectAll},
	}
}
