package state

import (
	"errors"
	"fmt"
)

var (
	// ErrConsistency совпадает с любой ConsistencyFault
	ErrConsistency = errors.New("consistency fault")
	// ErrSessionOpen сессия редактирования уже открыта
	ErrSessionOpen = errors.New("edit session already open")
	// ErrNoSession сессия редактирования не открыта
	ErrNoSession = errors.New("no edit session open")
)

// ConsistencyFault локальная мутация указывает на ID, которого нет в коллекции
// (или пытается добавить существующий). Признак расхождения с сервером.
type ConsistencyFault struct {
	Op     string
	NoteID string
	Reason string
}

func (e *ConsistencyFault) Error() string {
	return fmt.Sprintf("consistency fault: %s %s: %s", e.Op, e.NoteID, e.Reason)
}

func (e *ConsistencyFault) Is(target error) bool {
	return target == ErrConsistency
}
