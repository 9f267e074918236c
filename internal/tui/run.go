package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"notes-client/internal/controller"
)

// Run запускает интерактивный интерфейс и блокируется до выхода.
// По завершении контроллер закрыт.
func Run(ctx context.Context, ctrl *controller.Controller, opts ...tea.ProgramOption) error {
	defer ctrl.Close()

	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	if _, err := tea.NewProgram(New(ctx, ctrl), opts...).Run(); err != nil {
		return fmt.Errorf("tea.Program.Run: %w", err)
	}
	return nil
}
