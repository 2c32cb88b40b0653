// Package create реализует действие addPlan.
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

// Duration — срок действия тарифа в запросе.
type Duration struct {
	Value int    `json:"value" validate:"required,gt=0"`
	Unit  string `json:"unit" validate:"required,oneof=hours days months"`
}

// Request — данные нового тарифного плана.
type Request struct {
	Name         string   `json:"name" validate:"required,min=1"`
	Price        float64  `json:"price" validate:"gte=0"`
	QuotaMB      int64    `json:"quotaMB" validate:"gte=0"`
	UploadMbps   int      `json:"uploadMbps" validate:"gte=0"`
	DownloadMbps int      `json:"downloadMbps" validate:"gte=0"`
	Duration     Duration `json:"duration" validate:"required"`
}

// Service описывает интерфейс бизнес-логики создания тарифа.
type Service interface {
	AddPlan(ctx context.Context, plan models.Plan) (string, error)
}

// Handler обрабатывает действие addPlan.
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

// Handle создаёт тарифный план и возвращает его ID.
func (h *Handler) Handle(ctx context.Context, _ *models.Session, data json.RawMessage) (any, error) {
	const op = "handlers.plan.create"

	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		h.log.Error("failed to decode request", slog.String("op", op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, dispatch.ErrInvalidPayload)
	}
	if err := h.validate.Struct(req); err != nil {
		h.log.Error("validation failed", slog.String("op", op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, dispatch.ErrInvalidPayload)
	}

	id, err := h.service.AddPlan(ctx, models.Plan{
		Name:         req.Name,
		Price:        req.Price,
		QuotaMB:      req.QuotaMB,
		UploadMbps:   req.UploadMbps,
		DownloadMbps: req.DownloadMbps,
		Duration: models.PlanDuration{
			Value: req.Duration.Value,
			Unit:  req.Duration.Unit,
		},
	})
	if err != nil {
		return nil, err
	}
	return map[string]any{"insertedId": id}, nil
}
