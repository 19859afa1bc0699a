// Package scheduler периодически находит задачи со сроком завтра
// и публикует события-напоминания в очередь.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/task-manager/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/task-manager/internal/lib/sl"
	"github.com/magabrotheeeer/task-manager/internal/models"
)

// TaskRepository определяет выборку задач для напоминаний.
type TaskRepository interface {
	FindTasksDueTomorrow(ctx context.Context) ([]*models.TaskReminder, error)
}

// Service публикует напоминания о задачах, срок которых наступает завтра.
type Service struct {
	repo TaskRepository
	log  *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo TaskRepository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log,
	}
}

// FindTasksDueTomorrow запускает публикацию напоминаний сразу и затем
// каждые 12 часов, пока контекст не отменен.
func (s *Service) FindTasksDueTomorrow(ctx context.Context, publisher rabbitmq.Publisher) {
	s.runFindTasksDueTomorrow(ctx, publisher)

	ticker := time.NewTicker(12 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.runFindTasksDueTomorrow(ctx, publisher)
		case <-ctx.Done():
			return
		}
	}
}

func (s *Service) runFindTasksDueTomorrow(ctx context.Context, publisher rabbitmq.Publisher) {
	s.log.Info("starting service to find tasks due tomorrow")
	reminders, err := s.repo.FindTasksDueTomorrow(ctx)
	if err != nil {
		s.log.Error("failed to find tasks", sl.Err(err))
		return
	}
	if len(reminders) == 0 {
		s.log.Info("no tasks due tomorrow found")
		return
	}
	s.log.Info("found tasks due tomorrow", "count", len(reminders))
	for _, reminder := range reminders {
		err = publisher.Publish(rabbitmq.ReminderExchange, rabbitmq.DueTomorrowRoutingKey, reminder)
		if err != nil {
			s.log.Error("failed to publish message", sl.Err(err))
		}
	}
}
