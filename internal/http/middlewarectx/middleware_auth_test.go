package middlewarectx

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/task-manager/internal/lib/apperr"
	"github.com/magabrotheeeer/task-manager/internal/lib/jwt"
	"github.com/magabrotheeeer/task-manager/internal/models"
)

// MockUserProvider реализует интерфейс UserProvider
type MockUserProvider struct {
	mock.Mock
}

func (m *MockUserProvider) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	if res := args.Get(0); res != nil {
		return res.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestAuthMiddleware(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	maker := jwt.NewJWTMaker("test_secret_key", 15*time.Minute)

	validToken, err := maker.GenerateToken(1, models.RoleUser)
	require.NoError(t, err)

	adminToken, err := maker.GenerateToken(2, models.RoleAdmin)
	require.NoError(t, err)

	expiredMaker := jwt.NewJWTMaker("test_secret_key", -time.Hour)
	expiredToken, err := expiredMaker.GenerateToken(1, models.RoleUser)
	require.NoError(t, err)

	foreignMaker := jwt.NewJWTMaker("another_secret_key", 15*time.Minute)
	foreignToken, err := foreignMaker.GenerateToken(1, models.RoleUser)
	require.NoError(t, err)

	tests := []struct {
		name           string
		authHeader     string
		setupMock      func(*MockUserProvider)
		expectedStatus int
		wantPrincipal  *models.Principal
	}{
		{
			name:           "missing authorization header",
			authHeader:     "",
			setupMock:      func(_ *MockUserProvider) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "wrong scheme",
			authHeader:     "Basic dXNlcjpwYXNz",
			setupMock:      func(_ *MockUserProvider) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "garbage token",
			authHeader:     "Bearer not.a.token",
			setupMock:      func(_ *MockUserProvider) {},
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "expired token",
			authHeader:     "Bearer " + expiredToken,
			setupMock:      func(_ *MockUserProvider) {},
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "token signed with another key",
			authHeader:     "Bearer " + foreignToken,
			setupMock:      func(_ *MockUserProvider) {},
			expectedStatus: http.StatusForbidden,
		},
		{
			name:       "token refers to a deleted user",
			authHeader: "Bearer " + validToken,
			setupMock: func(m *MockUserProvider) {
				m.On("GetUserByID", mock.Anything, int64(1)).Return(nil, apperr.ErrNotFound)
			},
			expectedStatus: http.StatusForbidden,
		},
		{
			name:       "storage failure",
			authHeader: "Bearer " + validToken,
			setupMock: func(m *MockUserProvider) {
				m.On("GetUserByID", mock.Anything, int64(1)).Return(nil, errors.New("db down"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
		{
			name:       "valid token",
			authHeader: "Bearer " + validToken,
			setupMock: func(m *MockUserProvider) {
				m.On("GetUserByID", mock.Anything, int64(1)).Return(&models.User{
					ID:    1,
					Email: "user@example.com",
					Name:  "user",
					Role:  models.RoleUser,
				}, nil)
			},
			expectedStatus: http.StatusOK,
			wantPrincipal: &models.Principal{
				ID:    1,
				Name:  "user",
				Email: "user@example.com",
				Role:  models.RoleUser,
			},
		},
		{
			name:       "role comes from token claims, not from storage",
			authHeader: "Bearer " + adminToken,
			setupMock: func(m *MockUserProvider) {
				// в базе роль уже понижена, но токен выпущен с admin
				m.On("GetUserByID", mock.Anything, int64(2)).Return(&models.User{
					ID:    2,
					Email: "admin@example.com",
					Name:  "admin",
					Role:  models.RoleUser,
				}, nil)
			},
			expectedStatus: http.StatusOK,
			wantPrincipal: &models.Principal{
				ID:    2,
				Name:  "admin",
				Email: "admin@example.com",
				Role:  models.RoleAdmin,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUsers := new(MockUserProvider)
			tt.setupMock(mockUsers)

			var gotPrincipal *models.Principal
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if p, ok := PrincipalFromContext(r.Context()); ok {
					gotPrincipal = &p
				}
				w.WriteHeader(http.StatusOK)
			})

			handler := Auth(maker, mockUsers, logger)(next)

			req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.wantPrincipal != nil {
				require.NotNil(t, gotPrincipal)
				assert.Equal(t, *tt.wantPrincipal, *gotPrincipal)
			} else {
				assert.Nil(t, gotPrincipal)
			}

			mockUsers.AssertExpectations(t)
		})
	}
}
