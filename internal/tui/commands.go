package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"notes-client/internal/controller"
	"notes-client/internal/model"
	"notes-client/internal/notify"
)

// Сообщения о завершении асинхронных запросов
type (
	notesLoadedMsg struct{ err error }
	noteCreatedMsg struct {
		note model.Note
		err  error
	}
	noteSavedMsg struct {
		note model.Note
		err  error
	}
	noteDeletedMsg struct {
		id  string
		err error
	}
	notificationMsg notify.Notification
)

func refreshCmd(ctx context.Context, ctrl *controller.Controller) tea.Cmd {
	return func() tea.Msg {
		return notesLoadedMsg{err: ctrl.Refresh(ctx)}
	}
}

func createCmd(ctx context.Context, ctrl *controller.Controller, title, content string) tea.Cmd {
	return func() tea.Msg {
		note, err := ctrl.Create(ctx, title, content)
		return noteCreatedMsg{note: note, err: err}
	}
}

func saveCmd(ctx context.Context, ctrl *controller.Controller) tea.Cmd {
	return func() tea.Msg {
		note, err := ctrl.SaveEdit(ctx)
		return noteSavedMsg{note: note, err: err}
	}
}

func deleteCmd(ctx context.Context, ctrl *controller.Controller, id string) tea.Cmd {
	return func() tea.Msg {
		return noteDeletedMsg{id: id, err: ctrl.Delete(ctx, id)}
	}
}

// waitForNotification ждет следующее уведомление; после закрытия хаба возвращает nil
func waitForNotification(sub <-chan notify.Notification) tea.Cmd {
	return func() tea.Msg {
		n, ok := <-sub
		if !ok {
			return nil
		}
		return notificationMsg(n)
	}
}
