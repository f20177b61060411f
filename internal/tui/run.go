package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/huangsam/moodmixer/core"
)

// Run starts the interactive mixer and blocks until the user quits or ctx ends.
func Run(ctx context.Context, s *core.Session) error {
	p := tea.NewProgram(NewModel(ctx, s), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}
