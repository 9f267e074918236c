package state

import (
	"slices"

	"notes-client/internal/model"
)

// Collection локальная копия заметок после последней успешной синхронизации.
// Инвариант: два элемента не могут иметь одинаковый ID.
//
// Каждая мутация строит новый слайс, поэтому снимки, отданные ранее, не меняются.
// Collection не потокобезопасна, синхронизация на стороне владельца.
type Collection struct {
	notes []model.Note
}

// NewCollection создает пустую коллекцию
func NewCollection() *Collection {
	return &Collection{}
}

// ReplaceAll заменяет содержимое коллекции результатом list.
// Дубликаты ID отбрасываются (побеждает первое вхождение), их ID возвращаются.
func (c *Collection) ReplaceAll(notes []model.Note) (dropped []string) {
	seen := make(map[string]struct{}, len(notes))
	next := make([]model.Note, 0, len(notes))

	for _, n := range notes {
		if _, ok := seen[n.ID]; ok {
			dropped = append(dropped, n.ID)
			continue
		}
		seen[n.ID] = struct{}{}
		next = append(next, n)
	}

	c.notes = next
	return dropped
}

// Append добавляет созданную заметку в конец
func (c *Collection) Append(note model.Note) error {
	if c.index(note.ID) >= 0 {
		return &ConsistencyFault{Op: "append", NoteID: note.ID, Reason: "id already present"}
	}

	next := make([]model.Note, len(c.notes), len(c.notes)+1)
	copy(next, c.notes)
	c.notes = append(next, note)
	return nil
}

// ReplaceByID заменяет заметку с указанным ID на месте
func (c *Collection) ReplaceByID(id string, note model.Note) error {
	if note.ID != id {
		return &ConsistencyFault{Op: "replace", NoteID: id, Reason: "replacement carries id " + note.ID}
	}

	i := c.index(id)
	if i < 0 {
		return &ConsistencyFault{Op: "replace", NoteID: id, Reason: "id not present"}
	}

	next := slices.Clone(c.notes)
	next[i] = note
	c.notes = next
	return nil
}

// RemoveByID удаляет заметку с указанным ID
func (c *Collection) RemoveByID(id string) error {
	i := c.index(id)
	if i < 0 {
		return &ConsistencyFault{Op: "remove", NoteID: id, Reason: "id not present"}
	}

	c.notes = slices.Delete(slices.Clone(c.notes), i, i+1)
	return nil
}

// Get возвращает заметку по ID
func (c *Collection) Get(id string) (model.Note, bool) {
	i := c.index(id)
	if i < 0 {
		return model.Note{}, false
	}
	return c.notes[i], true
}

// Has проверяет наличие ID
func (c *Collection) Has(id string) bool {
	return c.index(id) >= 0
}

// Snapshot возвращает копию текущей последовательности
func (c *Collection) Snapshot() []model.Note {
	return slices.Clone(c.notes)
}

// Len количество заметок
func (c *Collection) Len() int {
	return len(c.notes)
}

func (c *Collection) index(id string) int {
	return slices.IndexFunc(c.notes, func(n model.Note) bool { return n.ID == id })
}
