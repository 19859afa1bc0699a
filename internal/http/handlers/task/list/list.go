// Package list реализует HTTP-обработчик получения списка задач
// с фильтрацией, сортировкой и пагинацией.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/task-manager/internal/http/response"
	"github.com/magabrotheeeer/task-manager/internal/lib/sl"
	"github.com/magabrotheeeer/task-manager/internal/lib/taskquery"
	"github.com/magabrotheeeer/task-manager/internal/models"
)

// Service описывает интерфейс бизнес-логики получения списка задач.
type Service interface {
	List(ctx context.Context, filter models.TaskFilter) ([]*models.Task, int, int, error)
}

// Handler обрабатывает запросы на получение списка задач.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список задач
// @Description Возвращает список задач с поддержкой фильтрации по статусу,
// @Description поиска, сортировки и пагинации
// @Tags tasks
// @Produce json
// @Param status query string false "Фильтр по статусу"
// @Param search query string false "Поисковая строка"
// @Param sortBy query string false "Поле сортировки"
// @Param order query string false "Направление сортировки (asc|desc)"
// @Param page query int false "Номер страницы"
// @Param limit query int false "Размер страницы"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /tasks [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.task.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	filter, err := taskquery.Parse(r.URL.Query())
	if err != nil {
		log.Error("invalid query parameters", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error(err.Error()))
		return
	}

	tasks, total, totalPages, err := h.service.List(r.Context(), filter)
	if err != nil {
		log.Error("failed to list tasks", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list tasks"))
		return
	}

	log.Info("tasks listed", slog.Int("count", len(tasks)), slog.Int("total", total))

	// Пустая страница сериализуется как [], а не null
	if tasks == nil {
		tasks = []*models.Task{}
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"tasks":       tasks,
		"total_tasks": total,
		"total_pages": totalPages,
	}))
}
