// Package search реализует действие searchCards: поиск карт по кафе
// и/или точному коду с ограничением размера страницы.
package search

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

// Request — фильтры поиска карт.
type Request struct {
	CafeID string `json:"cafeId" validate:"omitempty,uuid"`
	Code   string `json:"code" validate:"omitempty"`
	Limit  int    `json:"limit" validate:"omitempty,gte=0"`
}

// Service описывает интерфейс бизнес-логики поиска карт.
type Service interface {
	Search(ctx context.Context, filter models.CardFilter) ([]*models.Card, error)
}

// Handler обрабатывает действие searchCards.
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

// Handle возвращает карты по фильтру, новые первыми.
func (h *Handler) Handle(ctx context.Context, _ *models.Session, data json.RawMessage) (any, error) {
	const op = "handlers.card.search"

	var req Request
	if len(data) > 0 {
		if err := json.Unmarshal(data, &req); err != nil {
			h.log.Error("failed to decode request", slog.String("op", op), sl.Err(err))
			return nil, fmt.Errorf("%s: %w", op, dispatch.ErrInvalidPayload)
		}
	}
	if err := h.validate.Struct(req); err != nil {
		h.log.Error("validation failed", slog.String("op", op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, dispatch.ErrInvalidPayload)
	}

	cards, err := h.service.Search(ctx, models.CardFilter{
		CafeID: req.CafeID,
		Code:   req.Code,
		Limit:  req.Limit,
	})
	if err != nil {
		return nil, err
	}
	if cards == nil {
		cards = []*models.Card{}
	}
	return cards, nil
}
