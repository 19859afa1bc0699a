package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid argument", ErrInvalidArgument, http.StatusBadRequest},
		{"unauthenticated", ErrUnauthenticated, http.StatusUnauthorized},
		{"forbidden", ErrForbidden, http.StatusForbidden},
		{"not found", ErrNotFound, http.StatusNotFound},
		{"unclassified error", errors.New("connection refused"), http.StatusInternalServerError},
		{"nil error", nil, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Status(tt.err))
		})
	}
}

func TestStatus_WrappedErrors(t *testing.T) {
	// Сервисы оборачивают sentinel-ошибки через %w, статус должен сохраняться
	wrapped := fmt.Errorf("services.task.Update: %w", ErrNotFound)
	assert.Equal(t, http.StatusNotFound, Status(wrapped))

	doubleWrapped := fmt.Errorf("storage.repository.UpdateTask: %w", wrapped)
	assert.Equal(t, http.StatusNotFound, Status(doubleWrapped))
}
