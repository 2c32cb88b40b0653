// Package login реализует действие login — единственное действие,
// доступное без токена сеанса.
//
// Ответ при любой неудаче одинаков: {"error":"invalid"} — по нему нельзя
// понять, не найдено имя или не совпал пароль.
package login

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

// Request — структура входных данных для авторизации.
type Request struct {
	User string `json:"user" validate:"required"`
	Pass string `json:"pass" validate:"required"`
}

// Service описывает интерфейс бизнес-логики аутентификации.
type Service interface {
	Login(ctx context.Context, username, password string) (string, error)
}

// Handler обрабатывает действие login.
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

// Handle выполняет вход и возвращает подписанный токен сеанса.
func (h *Handler) Handle(ctx context.Context, _ *models.Session, data json.RawMessage) (any, error) {
	const op = "handlers.auth.login"

	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		h.log.Error("failed to decode request", slog.String("op", op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, dispatch.ErrInvalidPayload)
	}
	if err := h.validate.Struct(req); err != nil {
		h.log.Error("validation failed", slog.String("op", op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, dispatch.ErrInvalidPayload)
	}

	token, err := h.service.Login(ctx, req.User, req.Pass)
	if err != nil {
		return nil, err
	}

	h.log.Info("login success", slog.String("username", req.User))
	return map[string]any{"token": token}, nil
}
