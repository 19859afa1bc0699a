package update

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/task-manager/internal/http/middlewarectx"
	"github.com/magabrotheeeer/task-manager/internal/lib/apperr"
	"github.com/magabrotheeeer/task-manager/internal/models"
	userservice "github.com/magabrotheeeer/task-manager/internal/services/user"
)

// MockService реализует интерфейс update.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Update(ctx context.Context, principal models.Principal, patch userservice.ProfilePatch) (*models.User, error) {
	args := m.Called(ctx, principal, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func withPrincipal(req *http.Request, p models.Principal) *http.Request {
	ctx := context.WithValue(req.Context(), middlewarectx.PrincipalKey, p)
	return req.WithContext(ctx)
}

func TestProfileUpdateHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	user := models.Principal{ID: 3, Role: models.RoleUser}
	admin := models.Principal{ID: 1, Role: models.RoleAdmin}

	tests := []struct {
		name           string
		principal      *models.Principal
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:      "обновление имени",
			principal: &user,
			body:      `{"name":"new name"}`,
			setupMock: func(m *MockService) {
				m.On("Update", mock.Anything, user, mock.MatchedBy(func(p userservice.ProfilePatch) bool {
					return p.Name != nil && *p.Name == "new name" && p.Role == nil
				})).Return(&models.User{ID: 3, Name: "new name"}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"name":"new name"`,
		},
		{
			name:           "нет принципала в контексте",
			principal:      nil,
			body:           `{"name":"x"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   "unauthorized",
		},
		{
			name:           "невалидная роль",
			principal:      &admin,
			body:           `{"role":"superuser"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "field Role has an unsupported value",
		},
		{
			name:      "обычный пользователь не может сменить роль",
			principal: &user,
			body:      `{"role":"admin"}`,
			setupMock: func(m *MockService) {
				m.On("Update", mock.Anything, user, mock.Anything).
					Return(nil, apperr.ErrForbidden)
			},
			expectedStatus: http.StatusForbidden,
			expectedBody:   "only admin may change roles",
		},
		{
			name:      "admin меняет роль",
			principal: &admin,
			body:      `{"role":"user"}`,
			setupMock: func(m *MockService) {
				m.On("Update", mock.Anything, admin, mock.MatchedBy(func(p userservice.ProfilePatch) bool {
					return p.Role != nil && *p.Role == models.RoleUser
				})).Return(&models.User{ID: 1, Role: models.RoleUser}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"role":"user"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPut, "/profile", strings.NewReader(tt.body))
			if tt.principal != nil {
				req = withPrincipal(req, *tt.principal)
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)

			mockService.AssertExpectations(t)
		})
	}
}
