// Пакет model — доменные модели Catalog Module.
package model

import "time"

// Kind — тип записи каталога.
type Kind string

// Допустимые типы записей.
const (
	KindMovie  Kind = "Movie"
	KindTVShow Kind = "TVShow"
)

// Valid возвращает true, если значение — один из допустимых типов.
func (k Kind) Valid() bool {
	return k == KindMovie || k == KindTVShow
}

// CatalogEntry — запись каталога (фильм или сериал).
// ID присваивается хранилищем при создании и никогда не меняется.
// CreatedAt устанавливается один раз, UpdatedAt — при каждом обновлении.
type CatalogEntry struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Kind      Kind      `json:"type"`
	Director  string    `json:"director"`
	Budget    string    `json:"budget"`
	Location  string    `json:"location"`
	Duration  string    `json:"duration"`
	YearTime  string    `json:"yearTime"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// EntryPatch — частичное обновление записи каталога.
// nil-поля не изменяются, заданные — перезаписывают текущие значения.
type EntryPatch struct {
	Title    *string
	Kind     *Kind
	Director *string
	Budget   *string
	Location *string
	Duration *string
	YearTime *string
}

// Empty возвращает true, если patch не содержит ни одного поля.
func (p *EntryPatch) Empty() bool {
	return p.Title == nil && p.Kind == nil && p.Director == nil &&
		p.Budget == nil && p.Location == nil && p.Duration == nil &&
		p.YearTime == nil
}

// Apply накладывает заданные поля patch на запись.
// Не трогает ID и timestamps — это зона ответственности хранилища.
func (p *EntryPatch) Apply(e *CatalogEntry) {
	if p.Title != nil {
		e.Title = *p.Title
	}
	if p.Kind != nil {
		e.Kind = *p.Kind
	}
	if p.Director != nil {
		e.Director = *p.Director
	}
	if p.Budget != nil {
		e.Budget = *p.Budget
	}
	if p.Location != nil {
		e.Location = *p.Location
	}
	if p.Duration != nil {
		e.Duration = *p.Duration
	}
	if p.YearTime != nil {
		e.YearTime = *p.YearTime
	}
}
