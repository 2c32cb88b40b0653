// Package install реализует действие installCafe: выдачу установочного
// токена контроллера. Выдача идемпотентна — повторный вызов возвращает
// тот же токен.
package install

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator"

	"github.com/egsmart/smartwifi-backend/internal/http/dispatch"
	"github.com/egsmart/smartwifi-backend/internal/lib/sl"
	"github.com/egsmart/smartwifi-backend/internal/models"
)

// Request — идентификатор кафе.
type Request struct {
	ID string `json:"id" validate:"required,uuid"`
}

// Service описывает интерфейс выдачи установочного токена.
type Service interface {
	GetOrCreateToken(ctx context.Context, cafeID string) (string, error)
}

// Handler обрабатывает действие installCafe.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// Handle возвращает установочный токен кафе.
func (h *Handler) Handle(ctx context.Context, _ *models.Session, data json.RawMessage) (any, error) {
	const op = "handlers.cafe.install"

	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		h.log.Error("failed to decode request", slog.String("op", op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, dispatch.ErrInvalidPayload)
	}
	if err := h.validate.Struct(req); err != nil {
		h.log.Error("validation failed", slog.String("op", op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, dispatch.ErrInvalidPayload)
	}

	token, err := h.service.GetOrCreateToken(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	return map[string]any{"token": token}, nil
}
