// Package listbyuser реализует HTTP-обработчик получения задач конкретного пользователя.
package listbyuser

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/task-manager/internal/http/response"
	"github.com/magabrotheeeer/task-manager/internal/lib/sl"
	"github.com/magabrotheeeer/task-manager/internal/lib/taskquery"
	"github.com/magabrotheeeer/task-manager/internal/models"
)

// Service описывает интерфейс бизнес-логики получения задач пользователя.
type Service interface {
	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]*models.Task, error)
}

// Handler обрабатывает запросы на получение задач пользователя.
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

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.task.listbyuser"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userID, err := strconv.ParseInt(chi.URLParam(r, "userId"), 10, 64)
	if err != nil {
		log.Error("invalid user id format", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid user id"))
		return
	}

	limit, offset, err := taskquery.ParsePage(r.URL.Query())
	if err != nil {
		log.Error("invalid pagination parameters", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error(err.Error()))
		return
	}

	tasks, err := h.service.ListByUser(r.Context(), userID, limit, offset)
	if err != nil {
		log.Error("failed to list tasks by user", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list tasks"))
		return
	}

	// Пустая страница сериализуется как [], а не null
	if tasks == nil {
		tasks = []*models.Task{}
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"tasks": tasks,
	}))
}
