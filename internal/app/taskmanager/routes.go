// Package taskmanager предоставляет маршруты для основного приложения.
package taskmanager

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/task-manager/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/task-manager/internal/http/handlers/auth/register"
	profileget "github.com/magabrotheeeer/task-manager/internal/http/handlers/profile/get"
	profileupdate "github.com/magabrotheeeer/task-manager/internal/http/handlers/profile/update"
	"github.com/magabrotheeeer/task-manager/internal/http/handlers/task/complete"
	"github.com/magabrotheeeer/task-manager/internal/http/handlers/task/create"
	"github.com/magabrotheeeer/task-manager/internal/http/handlers/task/list"
	"github.com/magabrotheeeer/task-manager/internal/http/handlers/task/listbyuser"
	"github.com/magabrotheeeer/task-manager/internal/http/handlers/task/read"
	"github.com/magabrotheeeer/task-manager/internal/http/handlers/task/remove"
	"github.com/magabrotheeeer/task-manager/internal/http/handlers/task/update"
	"github.com/magabrotheeeer/task-manager/internal/http/middlewarectx"
	"github.com/magabrotheeeer/task-manager/internal/lib/jwt"
	"github.com/magabrotheeeer/task-manager/internal/models"
	authservice "github.com/magabrotheeeer/task-manager/internal/services/auth"
	taskservice "github.com/magabrotheeeer/task-manager/internal/services/task"
	userservice "github.com/magabrotheeeer/task-manager/internal/services/user"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, jwtMaker jwt.Maker, users middlewarectx.UserProvider,
	authService *authservice.Service, userService *userservice.Service, taskService *taskservice.Service) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/auth/register", register.New(logger, authService).ServeHTTP)
		r.Post("/auth/login", login.New(logger, authService).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.Auth(jwtMaker, users, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))

			r.Get("/profile", profileget.New(logger, userService).ServeHTTP)
			r.Put("/profile", profileupdate.New(logger, userService).ServeHTTP)

			r.Post("/tasks", create.New(logger, taskService).ServeHTTP)
			r.Get("/tasks", list.New(logger, taskService).ServeHTTP)
			r.Get("/tasks/user/{userId}/tasks", listbyuser.New(logger, taskService).ServeHTTP)
			r.Get("/tasks/{id}", read.New(logger, taskService).ServeHTTP)
			r.Put("/tasks/{id}", update.New(logger, taskService).ServeHTTP)
			r.Patch("/tasks/{id}/complete", complete.New(logger, taskService).ServeHTTP)

			// Группа только для администратора
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.RequireRole(models.RoleAdmin, logger))
				r.Delete("/tasks/{id}", remove.New(logger, taskService).ServeHTTP)
			})
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
