package models

import "time"

// TaskFilter — спецификация выборки задач: фильтрация, сортировка и
// пагинация. Строится пакетом taskquery из параметров запроса и
// потребляется слоем хранения. nil-поля означают отсутствие фильтра.
//
// SortField всегда содержит имя колонки из allow-list, SortOrder — только
// asc или desc: произвольные значения сюда не попадают.
type TaskFilter struct {
	Status    *string     // Точное совпадение статуса, без нормализации
	Search    *TaskSearch // Дизъюнктивный поиск, nil если параметр search не задан
	SortField string
	SortOrder string
	Limit     int
	Offset    int
}

// TaskSearch — набор условий поиска, объединяемых через OR.
// Text всегда задан; UserID и Instant присутствуют только если текст
// удалось разобрать как число или дату соответственно.
type TaskSearch struct {
	Text    string     // Подстрока для title, description, recurring, priority
	UserID  *int64     // Точное совпадение user_id
	Instant *time.Time // Точное совпадение due_date или created_at
}
