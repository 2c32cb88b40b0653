// Package generate реализует действие generateCards: выпуск партии
// уникальных кодов доступа для кафе и тарифа.
//
// Существование кафе и тарифа на этапе выпуска не проверяется: карты
// ссылаются на идентификаторы непрозрачно, валидность принадлежности
// проверяет контроллер при погашении.
package generate

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator"

	"github.com/egsmart/smartwifi-backend/internal/http/dispatch"
	"github.com/egsmart/smartwifi-backend/internal/lib/sl"
	"github.com/egsmart/smartwifi-backend/internal/models"
	"github.com/egsmart/smartwifi-backend/internal/services/voucher"
)

// Request — параметры выпуска партии карт.
type Request struct {
	CafeID string `json:"cafeId" validate:"required,uuid"`
	PlanID string `json:"planId" validate:"required,uuid"`
	Count  int    `json:"count" validate:"required,min=1,max=5000"`
	Length int    `json:"length" validate:"required,min=4,max=20"`
	Prefix string `json:"prefix" validate:"omitempty,max=32"`
}

// Service описывает интерфейс бизнес-логики выпуска карт.
type Service interface {
	Issue(ctx context.Context, req voucher.IssueRequest) (*voucher.IssueResult, error)
}

// Handler обрабатывает действие generateCards.
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

// Handle выпускает партию карт и возвращает коды с превью.
func (h *Handler) Handle(ctx context.Context, _ *models.Session, data json.RawMessage) (any, error) {
	const op = "handlers.card.generate"

	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		h.log.Error("failed to decode request", slog.String("op", op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, dispatch.ErrInvalidPayload)
	}
	if err := h.validate.Struct(req); err != nil {
		h.log.Error("validation failed", slog.String("op", op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, dispatch.ErrInvalidPayload)
	}

	result, err := h.service.Issue(ctx, voucher.IssueRequest{
		CafeID: req.CafeID,
		PlanID: req.PlanID,
		Count:  req.Count,
		Length: req.Length,
		Prefix: req.Prefix,
	})
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"inserted": result.Inserted,
		"preview":  result.Preview,
	}, nil
}
