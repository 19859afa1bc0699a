// Package middlewarectx содержит HTTP middleware аутентификации и авторизации.
//
// Auth проверяет bearer-токен из заголовка Authorization, подтягивает
// пользователя из хранилища и кладет Principal в контекст запроса.
// Различие статусов строгое: отсутствующий или неправильно оформленный
// заголовок — 401, предъявленный, но невалидный или истекший токен — 403.
package middlewarectx

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/task-manager/internal/http/response"
	"github.com/magabrotheeeer/task-manager/internal/lib/apperr"
	"github.com/magabrotheeeer/task-manager/internal/lib/jwt"
	"github.com/magabrotheeeer/task-manager/internal/lib/sl"
	"github.com/magabrotheeeer/task-manager/internal/models"
)

// Key — тип для ключей контекста HTTP-запроса.
type Key string

// PrincipalKey — ключ, под которым Principal лежит в контексте.
const PrincipalKey Key = "principal"

// UserProvider описывает доступ к пользователям, нужный middleware
// для сборки Principal.
type UserProvider interface {
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
}

// PrincipalFromContext извлекает Principal, положенный middleware Auth.
func PrincipalFromContext(ctx context.Context) (models.Principal, bool) {
	p, ok := ctx.Value(PrincipalKey).(models.Principal)
	return p, ok
}

// Auth возвращает HTTP middleware, который проверяет JWT в заголовке Authorization.
//
// Роль в Principal берется из claims токена, а не из записи пользователя:
// смена роли в базе не действует до перевыпуска токена. Пользователь,
// удаленный после выпуска токена, получает 403.
func Auth(tokens jwt.Maker, users UserProvider, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.Auth"
			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				log.Error("missing or invalid authorization header")
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("missing or invalid authorization header"))
				return
			}
			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

			claims, err := tokens.ParseToken(tokenStr)
			if err != nil {
				log.Error("invalid or expired token", sl.Err(err))
				w.WriteHeader(http.StatusForbidden)
				render.JSON(w, r, response.Error("invalid or expired token"))
				return
			}

			user, err := users.GetUserByID(r.Context(), claims.UserID)
			if err != nil {
				if errors.Is(err, apperr.ErrNotFound) || errors.Is(err, sql.ErrNoRows) {
					log.Error("token refers to a deleted user", slog.Int64("user_id", claims.UserID))
					w.WriteHeader(http.StatusForbidden)
					render.JSON(w, r, response.Error("user no longer exists"))
					return
				}
				log.Error("failed to load user", sl.Err(err))
				w.WriteHeader(http.StatusInternalServerError)
				render.JSON(w, r, response.Error("internal service error"))
				return
			}

			principal := models.Principal{
				ID:    user.ID,
				Name:  user.Name,
				Email: user.Email,
				Role:  claims.Role,
			}
			ctx := context.WithValue(r.Context(), PrincipalKey, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
