package update

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/task-manager/internal/lib/apperr"
	"github.com/magabrotheeeer/task-manager/internal/models"
)

// MockService реализует интерфейс update.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Update(ctx context.Context, id int64, patch models.DummyTaskPatch) (*models.Task, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Task), args.Error(1)
}

func TestUpdateHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name           string
		id             string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешное частичное обновление",
			id:   "5",
			body: `{"title":"renamed"}`,
			setupMock: func(m *MockService) {
				m.On("Update", mock.Anything, int64(5), mock.MatchedBy(func(p models.DummyTaskPatch) bool {
					return p.Title != nil && *p.Title == "renamed" && p.Status == nil
				})).Return(&models.Task{ID: 5, Title: "renamed"}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"title":"renamed"`,
		},
		{
			name:           "некорректный id",
			id:             "abc",
			body:           `{"title":"x"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "invalid id",
		},
		{
			name:           "недопустимый приоритет",
			id:             "5",
			body:           `{"priority":"urgent"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "field Priority has an unsupported value",
		},
		{
			name: "задача не найдена",
			id:   "404",
			body: `{"title":"x"}`,
			setupMock: func(m *MockService) {
				m.On("Update", mock.Anything, int64(404), mock.Anything).
					Return(nil, apperr.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   "task not found",
		},
		{
			name: "некорректный формат даты",
			id:   "5",
			body: `{"due_date":"next tuesday"}`,
			setupMock: func(m *MockService) {
				m.On("Update", mock.Anything, int64(5), mock.Anything).
					Return(nil, apperr.ErrInvalidArgument)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "invalid due_date format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPut, "/tasks/"+tt.id, strings.NewReader(tt.body))
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.id)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)

			mockService.AssertExpectations(t)
		})
	}
}
