package middlewarectx

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/task-manager/internal/http/response"
)

// RequireRole создает middleware, пропускающий только принципалов с заданной ролью.
//
// Должен стоять строго после Auth: отсутствие Principal в контексте —
// нарушение контракта выше по цепочке и отвечает 401. Несовпадение роли — 403.
func RequireRole(role string, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := PrincipalFromContext(r.Context())
			if !ok {
				log.Error("principal missing in context, RequireRole mounted before Auth")
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("unauthorized"))
				return
			}

			if principal.Role != role {
				log.Error("insufficient role",
					slog.String("required", role),
					slog.String("actual", principal.Role),
				)
				w.WriteHeader(http.StatusForbidden)
				render.JSON(w, r, response.Error("forbidden"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
