package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"notes-client/internal/controller"
	"notes-client/internal/model"
	"notes-client/internal/notify"
	"notes-client/internal/state"
)

type mode int

const (
	modeList mode = iota
	modeSearch
	modeCreate
	modeEdit
	modeConfirmDelete
)

const (
	focusTitle = iota
	focusContent
)

// Model состояние экрана. Данные заметок живут в контроллере,
// здесь только отображаемый срез и состояние ввода.
type Model struct {
	ctx  context.Context
	ctrl *controller.Controller
	sub  <-chan notify.Notification

	mode    mode
	notes   []model.Note
	cursor  int
	pending int

	search  textinput.Model
	title   textinput.Model
	content textinput.Model
	focus   int

	status      string
	statusLevel notify.Level

	width, height int
}

// New создает модель поверх контроллера и подписывается на его уведомления
func New(ctx context.Context, ctrl *controller.Controller) Model {
	search := textinput.New()
	search.Prompt = "Search: "
	search.Placeholder = "title or content"
	search.CharLimit = 100

	title := textinput.New()
	title.Placeholder = "Title"
	title.CharLimit = 200

	content := textinput.New()
	content.Placeholder = "Content"

	return Model{
		ctx:     ctx,
		ctrl:    ctrl,
		sub:     ctrl.Notifications().Subscribe(),
		search:  search,
		title:   title,
		content: content,
		notes:   ctrl.Visible(),
		pending: 1,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		refreshCmd(m.ctx, m.ctrl),
		waitForNotification(m.sub),
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		inputWidth := max(msg.Width-16, 20)
		m.search.Width = inputWidth
		m.title.Width = inputWidth
		m.content.Width = inputWidth
		return m, nil

	case notificationMsg:
		m.setStatus(msg.Level, msg.Message)
		return m, waitForNotification(m.sub)

	case notesLoadedMsg:
		m.pending--
		m.reload()
		if msg.err == nil {
			m.setStatus(notify.LevelInfo, fmt.Sprintf("Loaded %d notes", len(m.ctrl.Notes())))
		}
		return m, nil

	case noteCreatedMsg:
		m.pending--
		m.reload()
		if msg.err != nil {
			m.reportLocal(msg.err)
			return m, nil
		}
		// форма очищается только после успешного создания
		m.title.Reset()
		m.content.Reset()
		m.closeForm()
		m.selectID(msg.note.ID)
		m.setStatus(notify.LevelInfo, fmt.Sprintf("Created %q", msg.note.Title))
		return m, nil

	case noteSavedMsg:
		m.pending--
		m.reload()
		if _, open := m.ctrl.Session(); !open && m.mode == modeEdit {
			m.closeForm()
		}
		if msg.err != nil {
			m.reportLocal(msg.err)
			return m, nil
		}
		m.setStatus(notify.LevelInfo, fmt.Sprintf("Saved %q", msg.note.Title))
		return m, nil

	case noteDeletedMsg:
		m.pending--
		m.reload()
		if msg.err == nil {
			m.setStatus(notify.LevelInfo, "Note deleted")
		}
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeSearch:
			return m.updateSearch(msg)
		case modeCreate, modeEdit:
			return m.updateForm(msg)
		case modeConfirmDelete:
			return m.updateConfirm(msg)
		default:
			return m.updateList(msg)
		}
	}

	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m.quit()
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.notes)-1 {
			m.cursor++
		}
	case "/":
		m.mode = modeSearch
		cmd := m.search.Focus()
		return m, cmd
	case "esc":
		if m.search.Value() != "" {
			m.search.Reset()
			m.ctrl.SetSearch("")
			m.reload()
		}
	case "s":
		applied := m.ctrl.ToggleSort()
		m.reload()
		m.setStatus(notify.LevelInfo, "Sorted "+applied.String())
	case "r":
		m.pending++
		return m, refreshCmd(m.ctx, m.ctrl)
	case "n":
		m.mode = modeCreate
		m.focus = focusTitle
		m.content.Blur()
		cmd := m.title.Focus()
		return m, cmd
	case "e", "enter":
		note, ok := m.selected()
		if !ok {
			return m, nil
		}
		draft, err := m.ctrl.BeginEdit(note.ID)
		if err != nil {
			m.reportLocal(err)
			return m, nil
		}
		m.mode = modeEdit
		m.focus = focusTitle
		m.title.SetValue(draft.Title)
		m.title.CursorEnd()
		m.content.SetValue(draft.Content)
		m.content.CursorEnd()
		m.content.Blur()
		cmd := m.title.Focus()
		return m, cmd
	case "d":
		if _, ok := m.selected(); ok {
			m.mode = modeConfirmDelete
		}
	}
	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m.quit()
	case "esc", "enter":
		m.mode = modeList
		m.search.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.ctrl.SetSearch(m.search.Value())
	m.reload()
	return m, cmd
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m.quit()
	case "esc":
		if m.mode == modeEdit {
			m.ctrl.CancelEdit()
			m.title.Reset()
			m.content.Reset()
		}
		m.closeForm()
		return m, nil
	case "tab", "shift+tab", "up", "down":
		cmd := m.toggleFocus()
		return m, cmd
	case "enter":
		if m.focus == focusTitle {
			cmd := m.toggleFocus()
			return m, cmd
		}
		return m.submit()
	case "ctrl+s":
		return m.submit()
	}

	var cmd tea.Cmd
	if m.focus == focusTitle {
		m.title, cmd = m.title.Update(msg)
	} else {
		m.content, cmd = m.content.Update(msg)
	}

	if m.mode == modeEdit {
		var err error
		if m.focus == focusTitle {
			err = m.ctrl.SetDraftTitle(m.title.Value())
		} else {
			err = m.ctrl.SetDraftContent(m.content.Value())
		}
		if err != nil {
			m.reportLocal(err)
		}
	}
	return m, cmd
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.mode = modeList
	switch msg.String() {
	case "ctrl+c":
		return m.quit()
	case "y", "Y":
		note, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.pending++
		return m, deleteCmd(m.ctx, m.ctrl, note.ID)
	}
	m.setStatus(notify.LevelInfo, "Delete cancelled")
	return m, nil
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	m.pending++
	if m.mode == modeEdit {
		return m, saveCmd(m.ctx, m.ctrl)
	}
	return m, createCmd(m.ctx, m.ctrl, m.title.Value(), m.content.Value())
}

// quit закрывает контроллер: ответы, пришедшие после выхода, не применяются
func (m Model) quit() (tea.Model, tea.Cmd) {
	m.ctrl.Close()
	return m, tea.Quit
}

func (m *Model) toggleFocus() tea.Cmd {
	if m.focus == focusTitle {
		m.focus = focusContent
		m.title.Blur()
		return m.content.Focus()
	}
	m.focus = focusTitle
	m.content.Blur()
	return m.title.Focus()
}

func (m *Model) closeForm() {
	m.mode = modeList
	m.title.Blur()
	m.content.Blur()
}

func (m *Model) reload() {
	m.notes = m.ctrl.Visible()
	if m.cursor >= len(m.notes) {
		m.cursor = max(len(m.notes)-1, 0)
	}
}

func (m *Model) selected() (model.Note, bool) {
	if m.cursor < 0 || m.cursor >= len(m.notes) {
		return model.Note{}, false
	}
	return m.notes[m.cursor], true
}

func (m *Model) selectID(id string) {
	for i, n := range m.notes {
		if n.ID == id {
			m.cursor = i
			return
		}
	}
}

func (m *Model) setStatus(level notify.Level, text string) {
	m.statusLevel = level
	m.status = text
}

// reportLocal показывает ошибки, которые контроллер не публикует в хаб.
// Сетевые, серверные ошибки и рассинхронизация приходят уведомлением.
func (m *Model) reportLocal(err error) {
	switch {
	case errors.Is(err, model.ErrValidation):
		m.setStatus(notify.LevelWarn, err.Error())
	case errors.Is(err, state.ErrSessionOpen), errors.Is(err, state.ErrNoSession):
		m.setStatus(notify.LevelWarn, err.Error())
	}
}
