package scheduler_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/task-manager/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/task-manager/internal/models"
	schedulerservice "github.com/magabrotheeeer/task-manager/internal/services/scheduler"
)

type TaskRepoMock struct {
	mock.Mock
}

func (m *TaskRepoMock) FindTasksDueTomorrow(ctx context.Context) ([]*models.TaskReminder, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.TaskReminder), args.Error(1)
}

type PublisherMock struct {
	mock.Mock
}

func (m *PublisherMock) Publish(exchange, routingKey string, message any) error {
	args := m.Called(exchange, routingKey, message)
	return args.Error(0)
}

func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func runOnce(t *testing.T, repo *TaskRepoMock, publisher *PublisherMock) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	svc := schedulerservice.New(repo, newLogger())

	done := make(chan struct{})
	go func() {
		svc.FindTasksDueTomorrow(ctx, publisher)
		close(done)
	}()

	// первый проход выполняется сразу при старте
	time.Sleep(100 * time.Millisecond)
	cancel()
	<-done
}

func TestScheduler_PublishesReminders(t *testing.T) {
	reminders := []*models.TaskReminder{
		{Email: "a@example.com", Name: "a", Title: "first"},
		{Email: "b@example.com", Name: "b", Title: "second"},
	}

	repo := new(TaskRepoMock)
	publisher := new(PublisherMock)

	repo.On("FindTasksDueTomorrow", mock.Anything).Return(reminders, nil).Once()
	publisher.On("Publish", rabbitmq.ReminderExchange, rabbitmq.DueTomorrowRoutingKey, reminders[0]).Return(nil).Once()
	publisher.On("Publish", rabbitmq.ReminderExchange, rabbitmq.DueTomorrowRoutingKey, reminders[1]).Return(nil).Once()

	runOnce(t, repo, publisher)

	repo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestScheduler_NoRemindersNoPublish(t *testing.T) {
	repo := new(TaskRepoMock)
	publisher := new(PublisherMock)

	repo.On("FindTasksDueTomorrow", mock.Anything).Return([]*models.TaskReminder{}, nil).Once()

	runOnce(t, repo, publisher)

	repo.AssertExpectations(t)
	publisher.AssertNotCalled(t, "Publish")
}

func TestScheduler_RepositoryErrorDoesNotPublish(t *testing.T) {
	repo := new(TaskRepoMock)
	publisher := new(PublisherMock)

	repo.On("FindTasksDueTomorrow", mock.Anything).Return(nil, errors.New("db down")).Once()

	runOnce(t, repo, publisher)

	repo.AssertExpectations(t)
	publisher.AssertNotCalled(t, "Publish")
}
