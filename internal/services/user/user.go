// Package user содержит бизнес-логику работы с профилем пользователя.
package user

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/task-manager/internal/lib/apperr"
	"github.com/magabrotheeeer/task-manager/internal/lib/password"
	"github.com/magabrotheeeer/task-manager/internal/models"
)

// Repository определяет методы для работы с пользователями в хранилище.
type Repository interface {
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	UpdateUser(ctx context.Context, id int64, patch models.UserPatch) (int, error)
}

// ProfilePatch — частичное обновление профиля из JSON-запроса.
type ProfilePatch struct {
	Email    *string `json:"email" validate:"omitempty,email"`
	Name     *string `json:"name" validate:"omitempty,min=1"`
	Password *string `json:"password" validate:"omitempty,min=6"`
	Role     *string `json:"role" validate:"omitempty,oneof=admin user"`
}

// Service реализует операции над профилем.
type Service struct {
	repo Repository
}

// New создает новый экземпляр Service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// Get возвращает запись пользователя по ID.
func (s *Service) Get(ctx context.Context, id int64) (*models.User, error) {
	return s.repo.GetUserByID(ctx, id)
}

// Update применяет частичное обновление профиля вызывающего.
//
// Смена роли разрешена только если вызывающий уже admin: попытка
// самоповышения обычным пользователем отклоняется.
func (s *Service) Update(ctx context.Context, principal models.Principal, patch ProfilePatch) (*models.User, error) {
	if patch.Role != nil && principal.Role != models.RoleAdmin {
		return nil, fmt.Errorf("%w: only admin may change roles", apperr.ErrForbidden)
	}

	update := models.UserPatch{
		Email: patch.Email,
		Name:  patch.Name,
		Role:  patch.Role,
	}
	if patch.Password != nil {
		hashed, err := password.GetHash(*patch.Password)
		if err != nil {
			return nil, err
		}
		update.PasswordHash = &hashed
	}

	if _, err := s.repo.UpdateUser(ctx, principal.ID, update); err != nil {
		return nil, err
	}
	return s.repo.GetUserByID(ctx, principal.ID)
}
