// Package taskquery превращает недоверенные query-параметры запроса списка
// задач в провалидированную спецификацию фильтра models.TaskFilter.
//
// Поле сортировки выбирается только из allow-list: нераспознанный или
// отсутствующий sortBy никогда не пробрасывается в хранилище как есть —
// это граница, закрывающая сортировку по произвольным колонкам.
package taskquery

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/magabrotheeeer/task-manager/internal/lib/apperr"
	"github.com/magabrotheeeer/task-manager/internal/models"
)

// Значения пагинации по умолчанию.
const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// DefaultSortColumn используется при отсутствующем или нераспознанном sortBy.
const DefaultSortColumn = "created_at"

// sortColumns — allow-list параметров сортировки и соответствующих колонок.
var sortColumns = map[string]string{
	"dueDate":   "due_date",
	"createdAt": "created_at",
	"status":    "status",
	"userId":    "user_id",
	"recurring": "recurring",
	"priority":  "priority",
}

// searchTimeFormats — форматы, в которых search распознается как дата.
var searchTimeFormats = []string{time.RFC3339, "2006-01-02"}

// Parse строит TaskFilter из query-параметров
// {status, search, sortBy, order, page, limit}.
//
// Нечисловые page/limit, limit < 1 и order вне {asc, desc} отклоняются
// с apperr.ErrInvalidArgument. Числовой page < 1 приводится к 1.
func Parse(values url.Values) (models.TaskFilter, error) {
	var f models.TaskFilter

	if values.Has("status") {
		status := values.Get("status")
		f.Status = &status
	}

	f.SortField = DefaultSortColumn
	if col, ok := sortColumns[values.Get("sortBy")]; ok {
		f.SortField = col
	}

	switch order := values.Get("order"); order {
	case "", "asc":
		f.SortOrder = "asc"
	case "desc":
		f.SortOrder = "desc"
	default:
		return models.TaskFilter{}, fmt.Errorf("%w: order must be asc or desc, got %q", apperr.ErrInvalidArgument, order)
	}

	limit, offset, err := ParsePage(values)
	if err != nil {
		return models.TaskFilter{}, err
	}
	f.Limit = limit
	f.Offset = offset

	if values.Has("search") {
		f.Search = parseSearch(values.Get("search"))
	}

	return f, nil
}

// ParsePage разбирает параметры page и limit и возвращает limit и offset
// для выборки. Используется также списком задач конкретного пользователя.
func ParsePage(values url.Values) (limit, offset int, err error) {
	page := DefaultPage
	if raw := values.Get("page"); raw != "" {
		page, err = strconv.Atoi(raw)
		if err != nil {
			return 0, 0, fmt.Errorf("%w: page is not a number: %q", apperr.ErrInvalidArgument, raw)
		}
		if page < 1 {
			page = 1
		}
	}

	limit = DefaultLimit
	if raw := values.Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil {
			return 0, 0, fmt.Errorf("%w: limit is not a number: %q", apperr.ErrInvalidArgument, raw)
		}
		if limit < 1 {
			return 0, 0, fmt.Errorf("%w: limit must be positive, got %d", apperr.ErrInvalidArgument, limit)
		}
	}

	return limit, (page - 1) * limit, nil
}

// parseSearch собирает набор условий поиска: подстрочный матч всегда,
// совпадение по user_id — если текст является числом, совпадение по
// due_date/created_at — если текст разбирается как дата.
func parseSearch(text string) *models.TaskSearch {
	search := &models.TaskSearch{Text: text}

	if id, err := strconv.ParseInt(text, 10, 64); err == nil {
		search.UserID = &id
	}

	for _, layout := range searchTimeFormats {
		if instant, err := time.Parse(layout, text); err == nil {
			search.Instant = &instant
			break
		}
	}

	return search
}
