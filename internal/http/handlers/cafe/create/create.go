// Package create реализует действие addCafe.
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

// Request — данные нового кафе.
type Request struct {
	Name     string  `json:"name" validate:"required,min=1"`
	Address  *string `json:"address"`
	Owner    *string `json:"owner"`
	Phone    *string `json:"phone"`
	Landline *string `json:"landline"`
}

// Service описывает интерфейс бизнес-логики создания кафе.
type Service interface {
	AddCafe(ctx context.Context, cafe models.Cafe) (string, error)
}

// Handler обрабатывает действие addCafe.
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

// Handle создаёт кафе и возвращает его ID.
func (h *Handler) Handle(ctx context.Context, _ *models.Session, data json.RawMessage) (any, error) {
	const op = "handlers.cafe.create"

	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		h.log.Error("failed to decode request", slog.String("op", op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, dispatch.ErrInvalidPayload)
	}
	if err := h.validate.Struct(req); err != nil {
		h.log.Error("validation failed", slog.String("op", op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, dispatch.ErrInvalidPayload)
	}

	id, err := h.service.AddCafe(ctx, models.Cafe{
		Name:     req.Name,
		Address:  req.Address,
		Owner:    req.Owner,
		Phone:    req.Phone,
		Landline: req.Landline,
	})
	if err != nil {
		return nil, err
	}
	return map[string]any{"insertedId": id}, nil
}
