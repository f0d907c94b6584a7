// errors.go — ошибки бизнес-логики сервисного слоя.
package service

import "errors"

var (
	// ErrNotFound — запись каталога не найдена.
	ErrNotFound = errors.New("запись каталога не найдена")
)
