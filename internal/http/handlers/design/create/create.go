// Package create реализует действие addDesign.
package create

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

// Request — данные нового макета печати.
type Request struct {
	CafeID   string `json:"cafeId" validate:"required,uuid"`
	Name     string `json:"name" validate:"required,min=1"`
	Template string `json:"template" validate:"required,min=1"`
}

// Service описывает интерфейс бизнес-логики создания макета.
type Service interface {
	AddDesign(ctx context.Context, design models.Design) (string, error)
}

// Handler обрабатывает действие addDesign.
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

// Handle создаёт макет печати и возвращает его ID.
func (h *Handler) Handle(ctx context.Context, _ *models.Session, data json.RawMessage) (any, error) {
	const op = "handlers.design.create"

	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		h.log.Error("failed to decode request", slog.String("op", op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, dispatch.ErrInvalidPayload)
	}
	if err := h.validate.Struct(req); err != nil {
		h.log.Error("validation failed", slog.String("op", op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, dispatch.ErrInvalidPayload)
	}

	id, err := h.service.AddDesign(ctx, models.Design{
		CafeID:   req.CafeID,
		Name:     req.Name,
		Template: req.Template,
	})
	if err != nil {
		return nil, err
	}
	return map[string]any{"insertedId": id}, nil
}
