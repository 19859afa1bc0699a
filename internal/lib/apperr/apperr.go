// Package apperr определяет классы ошибок приложения и их соответствие
// HTTP-статусам. Сервисы оборачивают ошибки через %w, обработчики
// переводят их в статус через Status, не раскрывая клиенту деталей.
package apperr

import (
	"errors"
	"net/http"
)

var (
	// ErrInvalidArgument — некорректные или отсутствующие поля запроса.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUnauthenticated — креденшелы отсутствуют или не предъявлены.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrForbidden — креденшелы предъявлены, но невалидны, истекли
	// или роли недостаточно.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound — запрошенная сущность отсутствует.
	ErrNotFound = errors.New("not found")
)

// Status возвращает HTTP-статус для ошибки. Неклассифицированные ошибки
// (сбои хранилища, хеширования) считаются внутренними.
func Status(err error) int {
	switch {
	case errors.Is(err, ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
