package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Run opens the editor on opts.Path and blocks until the user quits.
func Run(ctx context.Context, opts Options, programOpts ...tea.ProgramOption) error {
	model, err := New(ctx, opts)
	if err != nil {
		return err
	}

	programOpts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, programOpts...)
	if _, err := tea.NewProgram(model, programOpts...).Run(); err != nil {
		return fmt.Errorf("editor: %w", err)
	}
	return nil
}
