package smartwifi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/egsmart/smartwifi-backend/internal/cache"
	"github.com/egsmart/smartwifi-backend/internal/config"
	"github.com/egsmart/smartwifi-backend/internal/lib/jwt"
	"github.com/egsmart/smartwifi-backend/internal/lib/sl"
	"github.com/egsmart/smartwifi-backend/internal/migrations"
	"github.com/egsmart/smartwifi-backend/internal/rabbitmq"
	authservice "github.com/egsmart/smartwifi-backend/internal/services/auth"
	catalogservice "github.com/egsmart/smartwifi-backend/internal/services/catalog"
	installservice "github.com/egsmart/smartwifi-backend/internal/services/install"
	voucherservice "github.com/egsmart/smartwifi-backend/internal/services/voucher"
	"github.com/egsmart/smartwifi-backend/internal/storage/repository"
)

// App держит процессные ресурсы: HTTP-сервер, соединение с базой и кеш.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	cache  *cache.Cache
}

// New собирает приложение: подключает базу, применяет миграции, один раз
// создаёт администратора и регистрирует маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	authSvc := authservice.New(db, jwtMaker, logger)
	if err = authSvc.EnsureAdmin(ctx, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		return nil, err
	}

	// Публикация событий о партиях включается только при заданном URL.
	var publisher voucherservice.BatchPublisher
	if cfg.RabbitURL != "" {
		conn, err := rabbitmq.Connect(cfg.RabbitURL, 5, 2*time.Second)
		if err != nil {
			logger.Warn("rabbitmq unavailable, batch events disabled", sl.Err(err))
		} else {
			ch, err := rabbitmq.SetupChannel(conn, rabbitmq.GetPrintQueues())
			if err != nil {
				logger.Warn("rabbitmq channel setup failed, batch events disabled", sl.Err(err))
			} else {
				publisher = rabbitmq.NewPublisher(ch)
			}
		}
	}

	voucherSvc := voucherservice.New(db, publisher, logger)
	installSvc := installservice.New(db, cacheRedis, logger)
	catalogSvc := catalogservice.New(db, cacheRedis, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, authSvc, voucherSvc, installSvc, catalogSvc)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		cache:  cacheRedis,
	}, nil
}

// Run запускает HTTP-сервер и останавливает его по отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		_ = a.db.DB.Close()
		return err
	}
}
