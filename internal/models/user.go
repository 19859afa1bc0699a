// Package models содержит доменные структуры приложения: пользователи,
// задачи и спецификация фильтра для выборки задач.
package models

import "time"

// Роли пользователей. Хранятся в нижнем регистре.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User представляет зарегистрированного пользователя системы.
type User struct {
	ID           int64     `json:"id"`    // Уникальный идентификатор, выдается базой
	Email        string    `json:"email"` // Электронная почта (уникальная)
	Name         string    `json:"name"`  // Отображаемое имя
	PasswordHash string    `json:"-"`     // Хэш пароля, никогда не отдается наружу
	Role         string    `json:"role"`  // Роль пользователя, admin или user
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Principal — аутентифицированная личность запроса. Собирается в auth
// middleware из записи пользователя и claims токена. Поле Role всегда
// берется из токена, а не из свежего чтения базы: смена роли вступает
// в силу только после перевыпуска токена.
type Principal struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// UserPatch описывает частичное обновление пользователя.
// nil означает «поле не трогать» — отсутствие поля не равно его очистке.
type UserPatch struct {
	Email        *string
	Name         *string
	PasswordHash *string
	Role         *string
}
