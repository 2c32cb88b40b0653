// Package dispatch реализует единую точку входа API: разбор конверта
// {action, data}, аутентификацию и маршрутизацию к обработчикам действий.
//
// Каждое действие, кроме login, требует валидного bearer-токена; проверка
// выполняется до вызова обработчика, так что неаутентифицированный запрос
// не производит побочных эффектов. Доменные ошибки переводятся в мягкий
// конверт {"error": <код>} с HTTP 200, отказ аутентификации — в 401,
// ошибки хранилища — в 500.
package dispatch

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/egsmart/smartwifi-backend/internal/http/response"
	"github.com/egsmart/smartwifi-backend/internal/lib/sl"
	"github.com/egsmart/smartwifi-backend/internal/metrics"
	"github.com/egsmart/smartwifi-backend/internal/models"
	"github.com/egsmart/smartwifi-backend/internal/services/auth"
	"github.com/egsmart/smartwifi-backend/internal/services/voucher"
	"github.com/egsmart/smartwifi-backend/internal/storage/repository"
)

// ActionLogin — единственное действие, обходящее аутентификацию.
const ActionLogin = "login"

// ErrInvalidPayload возвращается обработчиком при некорректном или
// не прошедшем валидацию payload.
var ErrInvalidPayload = errors.New("invalid payload")

// Action описывает обработчик одного действия.
type Action interface {
	Handle(ctx context.Context, sess *models.Session, data json.RawMessage) (any, error)
}

// SessionValidator описывает интерфейс проверки токена сеанса.
type SessionValidator interface {
	ValidateToken(token string) (*models.Session, error)
}

// Envelope — конверт входящего запроса.
type Envelope struct {
	Action string          `json:"action"`
	Data   json.RawMessage `json:"data"`
}

// Dispatcher принимает конверты на POST /api и раздаёт их обработчикам.
type Dispatcher struct {
	log       *slog.Logger
	validator SessionValidator
	actions   map[string]Action
}

// New создает новый Dispatcher.
func New(log *slog.Logger, validator SessionValidator) *Dispatcher {
	return &Dispatcher{
		log:       log,
		validator: validator,
		actions:   make(map[string]Action),
	}
}

// Register привязывает обработчик к имени действия.
func (d *Dispatcher) Register(name string, action Action) {
	d.actions[name] = action
}

func (d *Dispatcher) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "dispatch.ServeHTTP"
	log := d.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		render.JSON(w, r, response.Error(response.CodeMethodNotAllowed))
		return
	}

	var env Envelope
	if err := json.NewDecoder(r.Body).Decode(&env); err != nil {
		log.Error("failed to decode request envelope", sl.Err(err))
		render.JSON(w, r, response.Error(response.CodeInvalid))
		return
	}
	log = log.With(slog.String("action", env.Action))

	var sess *models.Session
	if env.Action != ActionLogin {
		token, ok := bearerToken(r)
		if !ok {
			log.Error("missing or invalid authorization header")
			metrics.ActionsTotal.WithLabelValues(env.Action, response.CodeUnauthorized).Inc()
			w.WriteHeader(http.StatusUnauthorized)
			render.JSON(w, r, response.Error(response.CodeUnauthorized))
			return
		}
		var err error
		sess, err = d.validator.ValidateToken(token)
		if err != nil {
			log.Error("invalid or expired token", sl.Err(err))
			metrics.ActionsTotal.WithLabelValues(env.Action, response.CodeUnauthorized).Inc()
			w.WriteHeader(http.StatusUnauthorized)
			render.JSON(w, r, response.Error(response.CodeUnauthorized))
			return
		}
		log = log.With(slog.String("username", sess.Username))
	}

	action, ok := d.actions[env.Action]
	if !ok {
		log.Error("unknown action")
		metrics.ActionsTotal.WithLabelValues(env.Action, response.CodeUnknownAction).Inc()
		render.JSON(w, r, response.Error(response.CodeUnknownAction))
		return
	}

	result, err := action.Handle(r.Context(), sess, env.Data)
	if err != nil {
		code, status := classify(err)
		log.Error("action failed", sl.Err(err))
		metrics.ActionsTotal.WithLabelValues(env.Action, code).Inc()
		if status != http.StatusOK {
			w.WriteHeader(status)
		}
		render.JSON(w, r, response.Error(code))
		return
	}

	metrics.ActionsTotal.WithLabelValues(env.Action, "ok").Inc()
	render.JSON(w, r, result)
}

// classify переводит ошибку обработчика в код конверта и HTTP-статус.
// Всё нераспознанное считается отказом хранилища и отдаётся как 500.
func classify(err error) (string, int) {
	switch {
	case errors.Is(err, ErrInvalidPayload),
		errors.Is(err, voucher.ErrInvalidRequest),
		errors.Is(err, auth.ErrInvalidCredentials):
		return response.CodeInvalid, http.StatusOK
	case errors.Is(err, repository.ErrNotFound):
		return response.CodeNotFound, http.StatusOK
	default:
		return response.CodeInternal, http.StatusInternalServerError
	}
}

func bearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", false
	}
	return strings.TrimPrefix(authHeader, "Bearer "), true
}
