// Package task содержит бизнес-логику управления задачами, включая кеширование.
package task

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/task-manager/internal/lib/apperr"
	"github.com/magabrotheeeer/task-manager/internal/models"
)

// Repository определяет методы для работы с задачами в хранилище.
type Repository interface {
	// CreateTask добавляет новую задачу и возвращает её ID.
	CreateTask(ctx context.Context, task models.Task) (int64, error)
	// GetTask возвращает задачу по ID.
	GetTask(ctx context.Context, id int64) (*models.Task, error)
	// ListTasks возвращает страницу задач по спецификации фильтра.
	ListTasks(ctx context.Context, filter models.TaskFilter) ([]*models.Task, error)
	// CountTasks подсчитывает задачи, подходящие под фильтр.
	CountTasks(ctx context.Context, filter models.TaskFilter) (int, error)
	// ListTasksByUser возвращает задачи конкретного пользователя.
	ListTasksByUser(ctx context.Context, userID int64, limit, offset int) ([]*models.Task, error)
	// UpdateTask применяет частичное обновление и возвращает число строк.
	UpdateTask(ctx context.Context, id int64, patch models.TaskPatch) (int, error)
	// RemoveTask удаляет задачу и возвращает число удалённых строк.
	RemoveTask(ctx context.Context, id int64) (int, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// Service реализует бизнес-логику работы с задачами.
type Service struct {
	repo  Repository
	cache Cache
	log   *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, cache Cache, log *slog.Logger) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// dueDateFormats — допустимые форматы поля due_date во входных данных.
var dueDateFormats = []string{time.RFC3339, "2006-01-02"}

func parseDueDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	for _, layout := range dueDateFormats {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return &parsed, nil
		}
	}
	return nil, fmt.Errorf("%w: due_date must be RFC3339 or 2006-01-02: %q", apperr.ErrInvalidArgument, raw)
}

// Create создает задачу для пользователя, выставляя значения по умолчанию
// (status=pending, priority=low, recurring=none), и кеширует её.
func (s *Service) Create(ctx context.Context, userID int64, req models.DummyTask) (*models.Task, error) {
	dueDate, err := parseDueDate(req.DueDate)
	if err != nil {
		return nil, err
	}

	task := models.Task{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     dueDate,
		Status:      req.Status,
		Priority:    req.Priority,
		Recurring:   req.Recurring,
		UserID:      userID,
	}
	if task.Status == "" {
		task.Status = models.StatusPending
	}
	if task.Priority == "" {
		task.Priority = models.PriorityLow
	}
	if task.Recurring == "" {
		task.Recurring = models.RecurringNone
	}

	id, err := s.repo.CreateTask(ctx, task)
	if err != nil {
		return nil, err
	}
	s.log.Info("created new task", slog.Int64("id", id))

	created, err := s.repo.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}

	cacheKey := fmt.Sprintf("task:%d", id)
	if err := s.cache.Set(cacheKey, created, time.Hour); err != nil {
		s.log.Warn("failed to cache task", slog.String("key", cacheKey), slog.Any("err", err))
	}

	return created, nil
}

// Read возвращает задачу по ID, используя кеш или репозиторий.
func (s *Service) Read(ctx context.Context, id int64) (*models.Task, error) {
	var result *models.Task
	cacheKey := fmt.Sprintf("task:%d", id)
	found, err := s.cache.Get(cacheKey, &result)
	if err != nil {
		return nil, err
	}
	if found {
		return result, nil
	}
	result, err = s.repo.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(cacheKey, result, time.Hour); err != nil {
		s.log.Warn("failed to add to cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return result, nil
}

// List возвращает страницу задач по фильтру вместе с общим количеством
// подходящих задач и числом страниц. Пустая выборка — не ошибка:
// возвращаются пустой список и нулевые счетчики.
func (s *Service) List(ctx context.Context, filter models.TaskFilter) ([]*models.Task, int, int, error) {
	tasks, err := s.repo.ListTasks(ctx, filter)
	if err != nil {
		return nil, 0, 0, err
	}
	total, err := s.repo.CountTasks(ctx, filter)
	if err != nil {
		return nil, 0, 0, err
	}

	totalPages := 0
	if total > 0 {
		totalPages = (total + filter.Limit - 1) / filter.Limit
	}
	return tasks, total, totalPages, nil
}

// ListByUser возвращает задачи конкретного пользователя с пагинацией.
func (s *Service) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]*models.Task, error) {
	return s.repo.ListTasksByUser(ctx, userID, limit, offset)
}

// Update применяет частичное обновление задачи и инвалидирует кеш.
// Поля, отсутствующие в запросе, не изменяются.
func (s *Service) Update(ctx context.Context, id int64, req models.DummyTaskPatch) (*models.Task, error) {
	patch := models.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		Recurring:   req.Recurring,
	}
	if req.DueDate != nil {
		dueDate, err := parseDueDate(*req.DueDate)
		if err != nil {
			return nil, err
		}
		patch.DueDate = dueDate
	}

	// Пустой патч валиден: хранилище не трогается, задача возвращается
	// как есть (или ErrNotFound, если её нет).
	if patch == (models.TaskPatch{}) {
		return s.repo.GetTask(ctx, id)
	}

	count, err := s.repo.UpdateTask(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, fmt.Errorf("%w: task %d", apperr.ErrNotFound, id)
	}

	cacheKey := fmt.Sprintf("task:%d", id)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to invalidate cache", slog.String("key", cacheKey), slog.Any("err", err))
	}

	return s.repo.GetTask(ctx, id)
}

// Complete переводит задачу в статус completed.
func (s *Service) Complete(ctx context.Context, id int64) (*models.Task, error) {
	status := models.StatusCompleted
	return s.Update(ctx, id, models.DummyTaskPatch{Status: &status})
}

// Remove удаляет задачу по ID и инвалидирует кеш.
func (s *Service) Remove(ctx context.Context, id int64) (int, error) {
	cacheKey := fmt.Sprintf("task:%d", id)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to remove from cache", slog.String("key", cacheKey), slog.Any("err", err))
	}

	count, err := s.repo.RemoveTask(ctx, id)
	if err != nil {
		return 0, err
	}
	if count == 0 {
		return 0, fmt.Errorf("%w: task %d", apperr.ErrNotFound, id)
	}
	return count, nil
}
