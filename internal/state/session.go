package state

import "notes-client/internal/model"

// EditSession единственный слот редактирования: closed -> open(snapshot) -> closed.
// Черновик может расходиться с коллекцией, пока сессия открыта.
type EditSession struct {
	open  bool
	draft model.Note
	seq   uint64
}

// Begin открывает сессию с копией заметки
func (s *EditSession) Begin(note model.Note) error {
	if s.open {
		return ErrSessionOpen
	}
	s.seq++
	s.open = true
	s.draft = note
	return nil
}

// SetTitle меняет заголовок черновика
func (s *EditSession) SetTitle(title string) error {
	if !s.open {
		return ErrNoSession
	}
	s.draft.Title = title
	return nil
}

// SetContent меняет содержимое черновика
func (s *EditSession) SetContent(content string) error {
	if !s.open {
		return ErrNoSession
	}
	s.draft.Content = content
	return nil
}

// Draft текущий черновик
func (s *EditSession) Draft() (model.Note, bool) {
	return s.draft, s.open
}

// Seq номер текущей (или последней) сессии. Позволяет закрыть именно ту сессию,
// из которой был отправлен save, а не открытую позже.
func (s *EditSession) Seq() uint64 {
	return s.seq
}

// IsOpen открыта ли сессия
func (s *EditSession) IsOpen() bool {
	return s.open
}

// Close закрывает сессию, черновик отбрасывается
func (s *EditSession) Close() {
	s.open = false
	s.draft = model.Note{}
}

// CloseIf закрывает сессию, только если она все еще имеет номер seq
func (s *EditSession) CloseIf(seq uint64) bool {
	if !s.open || s.seq != seq {
		return false
	}
	s.Close()
	return true
}
