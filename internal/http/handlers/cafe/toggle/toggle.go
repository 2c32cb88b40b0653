// Package toggle реализует действие toggleCafe: перевод кафе между
// статусами active и suspended.
package toggle

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

// Request — идентификатор кафе и целевой статус.
type Request struct {
	ID     string `json:"id" validate:"required,uuid"`
	Status string `json:"status" validate:"required,oneof=active suspended"`
}

// Service описывает интерфейс бизнес-логики переключения статуса.
type Service interface {
	ToggleCafe(ctx context.Context, id, status string) error
}

// Handler обрабатывает действие toggleCafe.
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

// Handle меняет статус кафе.
func (h *Handler) Handle(ctx context.Context, _ *models.Session, data json.RawMessage) (any, error) {
	const op = "handlers.cafe.toggle"

	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		h.log.Error("failed to decode request", slog.String("op", op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, dispatch.ErrInvalidPayload)
	}
	if err := h.validate.Struct(req); err != nil {
		h.log.Error("validation failed", slog.String("op", op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, dispatch.ErrInvalidPayload)
	}

	if err := h.service.ToggleCafe(ctx, req.ID, req.Status); err != nil {
		return nil, err
	}
	return map[string]any{"ok": true}, nil
}
