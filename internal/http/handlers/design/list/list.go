// Package list реализует действие getDesigns.
package list

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/egsmart/smartwifi-backend/internal/models"
)

// Service описывает интерфейс бизнес-логики списка макетов.
type Service interface {
	ListDesigns(ctx context.Context) ([]*models.Design, error)
}

// Handler обрабатывает действие getDesigns.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// Handle возвращает все макеты печати, новые первыми.
func (h *Handler) Handle(ctx context.Context, _ *models.Session, _ json.RawMessage) (any, error) {
	designs, err := h.service.ListDesigns(ctx)
	if err != nil {
		return nil, err
	}
	if designs == nil {
		designs = []*models.Design{}
	}
	return designs, nil
}
