// Package models содержит доменную модель задачи, а также вспомогательные
// типы для приёма данных из JSON-запросов до их валидации.
package models

import "time"

// Статусы, приоритеты и периодичность задач. Значения по умолчанию
// выставляются бизнес-логикой при создании.
const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"

	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"

	RecurringNone    = "none"
	RecurringDaily   = "daily"
	RecurringWeekly  = "weekly"
	RecurringMonthly = "monthly"
)

// Task представляет задачу пользователя.
// DueDate может быть nil — задача без срока.
type Task struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	Recurring   string     `json:"recurring"`
	UserID      int64      `json:"user_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// DummyTask используется для приёма данных создания задачи из JSON-запроса.
// Дата приходит строкой (RFC3339 или 2006-01-02) и парсится в сервисе.
type DummyTask struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"omitempty"`
	DueDate     string `json:"due_date" validate:"omitempty"`
	Status      string `json:"status" validate:"omitempty,oneof=pending in_progress completed"`
	Priority    string `json:"priority" validate:"omitempty,oneof=low medium high"`
	Recurring   string `json:"recurring" validate:"omitempty,oneof=none daily weekly monthly"`
}

// DummyTaskPatch — частичное обновление задачи из JSON-запроса.
// Явный список изменяемых полей: id, user_id и created_at сюда
// намеренно не входят и изменены быть не могут.
type DummyTaskPatch struct {
	Title       *string `json:"title" validate:"omitempty,min=1"`
	Description *string `json:"description"`
	DueDate     *string `json:"due_date"`
	Status      *string `json:"status" validate:"omitempty,oneof=pending in_progress completed"`
	Priority    *string `json:"priority" validate:"omitempty,oneof=low medium high"`
	Recurring   *string `json:"recurring" validate:"omitempty,oneof=none daily weekly monthly"`
}

// TaskPatch — провалидированное частичное обновление, передаваемое
// в слой хранения. nil означает «поле не трогать».
type TaskPatch struct {
	Title       *string
	Description *string
	DueDate     *time.Time
	Status      *string
	Priority    *string
	Recurring   *string
}

// TaskReminder — данные для письма-напоминания о задаче,
// срок которой наступает завтра. Передается через очередь сообщений.
type TaskReminder struct {
	Email   string    `json:"email"`
	Name    string    `json:"name"`
	Title   string    `json:"title"`
	DueDate time.Time `json:"due_date"`
}
