package state

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"notes-client/internal/model"
)

// Direction направление сортировки по заголовку
type Direction int

const (
	Ascending Direction = iota
	Descending
)

func (d Direction) String() string {
	if d == Descending {
		return "descending"
	}
	return "ascending"
}

// Flip возвращает противоположное направление
func (d Direction) Flip() Direction {
	if d == Descending {
		return Ascending
	}
	return Descending
}

// ParseDirection разбирает asc|ascending|desc|descending
func ParseDirection(s string) (Direction, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asc", "ascending":
		return Ascending, true
	case "desc", "descending":
		return Descending, true
	default:
		return Ascending, false
	}
}

// Projection параметры отображения: строка поиска и порядок сортировки.
//
// Сортировка - только порядок показа поверх полной коллекции,
// отсортированное подмножество никогда не записывается обратно в Collection.
// Projection не потокобезопасна (Collator и Caser хранят внутренние буферы).
type Projection struct {
	term   string
	folded string

	next    Direction  // направление, которое применит следующий Sort
	applied *Direction // nil - порядок коллекции

	collator *collate.Collator
	fold     cases.Caser
}

// NewProjection создает проекцию без фильтра и сортировки; первая сортировка - по возрастанию.
// tag задает локаль сравнения заголовков, language.Und - корневая (CLDR root) коллация.
func NewProjection(tag language.Tag) *Projection {
	return &Projection{
		next:     Ascending,
		collator: collate.New(tag),
		fold:     cases.Fold(),
	}
}

// SetSearchTerm задает строку поиска
func (p *Projection) SetSearchTerm(term string) {
	p.term = term
	p.folded = p.fold.String(term)
}

// SearchTerm текущая строка поиска
func (p *Projection) SearchTerm() string {
	return p.term
}

// Direction направление, которое будет применено следующим вызовом Sort
func (p *Projection) Direction() Direction {
	return p.next
}

// SortedBy примененный порядок; false - сортировка не включалась
func (p *Projection) SortedBy() (Direction, bool) {
	if p.applied == nil {
		return Ascending, false
	}
	return *p.applied, true
}

// Sort применяет текущее направление и переключает его для следующего вызова
func (p *Projection) Sort() Direction {
	d := p.next
	p.SortAs(d)
	return d
}

// SortAs применяет указанное направление; следующий Sort применит противоположное
func (p *Projection) SortAs(d Direction) {
	p.applied = &d
	p.next = d.Flip()
}

// Matches проверяет, попадает ли заметка под строку поиска
func (p *Projection) Matches(note model.Note) bool {
	if p.folded == "" {
		return true
	}
	return strings.Contains(p.fold.String(note.Title), p.folded) ||
		strings.Contains(p.fold.String(note.Content), p.folded)
}

// Apply строит отображаемый список: фильтр, затем (если включена) сортировка по заголовку.
// Входной слайс не изменяется.
func (p *Projection) Apply(notes []model.Note) []model.Note {
	visible := make([]model.Note, 0, len(notes))
	for _, n := range notes {
		if p.Matches(n) {
			visible = append(visible, n)
		}
	}

	if p.applied == nil {
		return visible
	}

	// Убывающий порядок - точный разворот возрастающего (стабильного),
	// так что два Sort подряд дают взаимно обратные порядки и при равных заголовках.
	slices.SortStableFunc(visible, func(a, b model.Note) int {
		return p.collator.CompareString(a.Title, b.Title)
	})
	if *p.applied == Descending {
		slices.Reverse(visible)
	}

	return visible
}
