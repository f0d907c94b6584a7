// Пакет validation — общая схема валидации записей каталога.
//
// Единственное место, где заданы границы полей: формы создания
// (все поля обязательны) и обновления (все поля опциональны,
// но хотя бы одно должно присутствовать) используют одни и те же
// пофайловые правила.
package validation

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/bigkaa/gocatalog/catalog-module/internal/domain/model"
)

// Границы длин текстовых полей (в символах).
const (
	TitleMinLen    = 2
	TitleMaxLen    = 255
	DirectorMaxLen = 255
	BudgetMaxLen   = 100
	LocationMaxLen = 255
	DurationMaxLen = 50
	YearTimeMaxLen = 50
)

// FieldErrors — ошибки валидации, сгруппированные по полям.
// Сериализуется в поле errors ответа API.
type FieldErrors map[string][]string

// Add добавляет сообщение об ошибке для поля.
func (e FieldErrors) Add(field, msg string) {
	e[field] = append(e[field], msg)
}

// OK возвращает true, если ошибок нет.
func (e FieldErrors) OK() bool {
	return len(e) == 0
}

// ValidID проверяет, что строка — синтаксически корректный UUID.
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// EntryCreate — тело запроса создания записи (POST /api/movies).
// Все поля обязательны.
type EntryCreate struct {
	Title    string `json:"title"`
	Kind     string `json:"type"`
	Director string `json:"director"`
	Budget   string `json:"budget"`
	Location string `json:"location"`
	Duration string `json:"duration"`
	YearTime string `json:"yearTime"`
}

// Validate проверяет тело запроса создания по полной схеме.
func (r *EntryCreate) Validate() FieldErrors {
	errs := FieldErrors{}
	checkLength(errs, "title", r.Title, TitleMinLen, TitleMaxLen)
	checkKind(errs, r.Kind)
	checkLength(errs, "director", r.Director, 1, DirectorMaxLen)
	checkLength(errs, "budget", r.Budget, 1, BudgetMaxLen)
	checkLength(errs, "location", r.Location, 1, LocationMaxLen)
	checkLength(errs, "duration", r.Duration, 1, DurationMaxLen)
	checkLength(errs, "yearTime", r.YearTime, 1, YearTimeMaxLen)
	return errs
}

// Entry преобразует провалидированное тело запроса в доменную модель.
// ID и timestamps присвоит хранилище.
func (r *EntryCreate) Entry() *model.CatalogEntry {
	return &model.CatalogEntry{
		Title:    r.Title,
		Kind:     model.Kind(r.Kind),
		Director: r.Director,
		Budget:   r.Budget,
		Location: r.Location,
		Duration: r.Duration,
		YearTime: r.YearTime,
	}
}

// EntryUpdate — тело запроса частичного обновления (PUT /api/movies/{id}).
// Поля опциональны; правила для присутствующих полей те же, что при
// создании. Пустое тело отклоняется: обновление без полей бессмысленно.
type EntryUpdate struct {
	Title    *string `json:"title"`
	Kind     *string `json:"type"`
	Director *string `json:"director"`
	Budget   *string `json:"budget"`
	Location *string `json:"location"`
	Duration *string `json:"duration"`
	YearTime *string `json:"yearTime"`
}

// Empty возвращает true, если в теле не задано ни одно поле.
func (r *EntryUpdate) Empty() bool {
	return r.Title == nil && r.Kind == nil && r.Director == nil &&
		r.Budget == nil && r.Location == nil && r.Duration == nil &&
		r.YearTime == nil
}

// Validate проверяет тело запроса обновления по частичной схеме.
func (r *EntryUpdate) Validate() FieldErrors {
	errs := FieldErrors{}

	if r.Empty() {
		errs.Add("body", "необходимо указать хотя бы одно поле")
		return errs
	}

	if r.Title != nil {
		checkLength(errs, "title", *r.Title, TitleMinLen, TitleMaxLen)
	}
	if r.Kind != nil {
		checkKind(errs, *r.Kind)
	}
	if r.Director != nil {
		checkLength(errs, "director", *r.Director, 1, DirectorMaxLen)
	}
	if r.Budget != nil {
		checkLength(errs, "budget", *r.Budget, 1, BudgetMaxLen)
	}
	if r.Location != nil {
		checkLength(errs, "location", *r.Location, 1, LocationMaxLen)
	}
	if r.Duration != nil {
		checkLength(errs, "duration", *r.Duration, 1, DurationMaxLen)
	}
	if r.YearTime != nil {
		checkLength(errs, "yearTime", *r.YearTime, 1, YearTimeMaxLen)
	}

	return errs
}

// Patch преобразует провалидированное тело запроса в EntryPatch.
func (r *EntryUpdate) Patch() model.EntryPatch {
	p := model.EntryPatch{
		Title:    r.Title,
		Director: r.Director,
		Budget:   r.Budget,
		Location: r.Location,
		Duration: r.Duration,
		YearTime: r.YearTime,
	}
	if r.Kind != nil {
		k := model.Kind(*r.Kind)
		p.Kind = &k
	}
	return p
}

// --- Пофайловые правила ---

// checkLength проверяет длину текстового поля в рунах.
// Без trim: пробельные строки считаются значащими (схема не нормализует).
func checkLength(errs FieldErrors, field, value string, minLen, maxLen int) {
	n := len([]rune(value))
	if n < minLen || n > maxLen {
		errs.Add(field, fmt.Sprintf("длина должна быть от %d до %d символов", minLen, maxLen))
	}
}

// checkKind проверяет поле type по enum {Movie, TVShow}.
func checkKind(errs FieldErrors, value string) {
	if !model.Kind(value).Valid() {
		errs.Add("type", fmt.Sprintf("недопустимое значение %q, допустимые: %s, %s",
			value, model.KindMovie, model.KindTVShow))
	}
}
