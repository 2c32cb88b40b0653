// Package list реализует действие getCafes.
package list

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/egsmart/smartwifi-backend/internal/models"
)

// Service описывает интерфейс бизнес-логики списка кафе.
type Service interface {
	ListCafes(ctx context.Context) ([]*models.Cafe, error)
}

// Handler обрабатывает действие getCafes.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// Handle возвращает все кафе, новые первыми.
func (h *Handler) Handle(ctx context.Context, _ *models.Session, _ json.RawMessage) (any, error) {
	cafes, err := h.service.ListCafes(ctx)
	if err != nil {
		return nil, err
	}
	if cafes == nil {
		cafes = []*models.Cafe{}
	}
	return cafes, nil
}
