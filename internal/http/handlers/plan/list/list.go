// Package list реализует действие getPlans.
package list

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/egsmart/smartwifi-backend/internal/models"
)

// Service описывает интерфейс бизнес-логики списка тарифов.
type Service interface {
	ListPlans(ctx context.Context) ([]*models.Plan, error)
}

// Handler обрабатывает действие getPlans.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// Handle возвращает все тарифные планы, новые первыми.
func (h *Handler) Handle(ctx context.Context, _ *models.Session, _ json.RawMessage) (any, error) {
	plans, err := h.service.ListPlans(ctx)
	if err != nil {
		return nil, err
	}
	if plans == nil {
		plans = []*models.Plan{}
	}
	return plans, nil
}
