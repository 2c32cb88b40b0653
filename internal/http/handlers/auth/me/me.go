// Package me реализует действие me: возвращает имя и роль текущего сеанса.
package me

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/egsmart/smartwifi-backend/internal/models"
)

// Handler обрабатывает действие me.
type Handler struct {
	log *slog.Logger
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger) *Handler {
	return &Handler{log: log}
}

// Handle возвращает идентичность аутентифицированного пользователя.
func (h *Handler) Handle(_ context.Context, sess *models.Session, _ json.RawMessage) (any, error) {
	return map[string]any{
		"user": sess.Username,
		"role": sess.Role,
	}, nil
}
