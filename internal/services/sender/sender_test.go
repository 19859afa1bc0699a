package sender_test

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/task-manager/internal/lib/smtp"
	"github.com/magabrotheeeer/task-manager/internal/models"
	senderservice "github.com/magabrotheeeer/task-manager/internal/services/sender"
)

type MockTransport struct {
	mock.Mock
}

func (m *MockTransport) Connect() (smtp.Client, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(smtp.Client), args.Error(1)
}

func (m *MockTransport) GetSMTPUser() string {
	args := m.Called()
	return args.String(0)
}

type MockSMTPClient struct {
	mock.Mock
}

func (m *MockSMTPClient) Mail(from string) error {
	args := m.Called(from)
	return args.Error(0)
}

func (m *MockSMTPClient) Rcpt(to string) error {
	args := m.Called(to)
	return args.Error(0)
}

func (m *MockSMTPClient) Data() (io.WriteCloser, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.WriteCloser), args.Error(1)
}

func (m *MockSMTPClient) Quit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockSMTPClient) Close() error {
	args := m.Called()
	return args.Error(0)
}

type writeRecorder struct {
	data []byte
}

func (w *writeRecorder) Write(p []byte) (int, error) {
	w.data = append(w.data, p...)
	return len(p), nil
}

func (w *writeRecorder) Close() error { return nil }

func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSendTaskDueReminder(t *testing.T) {
	reminder := models.TaskReminder{
		Email:   "user@example.com",
		Name:    "Иван",
		Title:   "Сдать отчет",
		DueDate: time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC),
	}
	body, err := json.Marshal(reminder)
	require.NoError(t, err)

	transport := new(MockTransport)
	client := new(MockSMTPClient)
	recorder := &writeRecorder{}

	transport.On("GetSMTPUser").Return("noreply@example.com")
	transport.On("Connect").Return(client, nil).Once()
	client.On("Mail", "noreply@example.com").Return(nil).Once()
	client.On("Rcpt", "user@example.com").Return(nil).Once()
	client.On("Data").Return(recorder, nil).Once()
	client.On("Quit").Return(nil).Once()
	client.On("Close").Return(nil).Once()

	svc := senderservice.New(transport, newLogger())

	err = svc.SendTaskDueReminder(body)
	require.NoError(t, err)

	letter := string(recorder.data)
	assert.Contains(t, letter, "To: user@example.com")
	assert.Contains(t, letter, "Сдать отчет")
	assert.Contains(t, letter, "01.09.2026")

	transport.AssertExpectations(t)
	client.AssertExpectations(t)
}

func TestSendTaskDueReminder_BadPayload(t *testing.T) {
	transport := new(MockTransport)

	svc := senderservice.New(transport, newLogger())

	err := svc.SendTaskDueReminder([]byte("not json"))
	assert.Error(t, err)
	transport.AssertNotCalled(t, "Connect")
}

func TestSendTaskDueReminder_ConnectError(t *testing.T) {
	reminder := models.TaskReminder{Email: "user@example.com", Name: "Иван", Title: "x"}
	body, err := json.Marshal(reminder)
	require.NoError(t, err)

	transport := new(MockTransport)
	transport.On("GetSMTPUser").Return("noreply@example.com")
	transport.On("Connect").Return(nil, errors.New("connection refused")).Once()

	svc := senderservice.New(transport, newLogger())

	err = svc.SendTaskDueReminder(body)
	assert.Error(t, err)

	transport.AssertExpectations(t)
}
