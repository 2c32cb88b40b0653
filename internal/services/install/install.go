// Package install реализует выдачу установочных токенов контроллеров.
//
// Токен назначается кафе ровно один раз и дальше отдаётся без изменений:
// он зашивается в конфигурацию точки доступа, и его смена сломала бы все
// развёрнутые устройства. Гонку конкурентных установок закрывает условный
// UPDATE на стороне базы, а не чтение с последующей записью.
package install

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/egsmart/smartwifi-backend/internal/lib/codegen"
	"github.com/egsmart/smartwifi-backend/internal/lib/sl"
	"github.com/egsmart/smartwifi-backend/internal/metrics"
)

// cacheTTL — время жизни токена в кеше. Токен неизменяем, TTL нужен только
// чтобы кеш не рос бесконечно.
const cacheTTL = 24 * time.Hour

// CafeRepository определяет доступ к установочным токенам кафе.
type CafeRepository interface {
	// ClaimInstallToken атомарно назначает токен, если его ещё нет,
	// и возвращает фактически сохранённый токен. Второй результат —
	// выиграл ли кандидат гонку назначения.
	ClaimInstallToken(ctx context.Context, id, candidate string) (string, bool, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
}

// Service реализует идемпотентную выдачу установочного токена.
type Service struct {
	repo  CafeRepository
	cache Cache
	log   *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo CafeRepository, cache Cache, log *slog.Logger) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

func cacheKey(cafeID string) string {
	return fmt.Sprintf("cafe:install_token:%s", cafeID)
}

// GetOrCreateToken возвращает установочный токен кафе, генерируя его при
// первом обращении. Повторные и конкурентные вызовы возвращают один и тот
// же токен.
func (s *Service) GetOrCreateToken(ctx context.Context, cafeID string) (string, error) {
	const op = "install.GetOrCreateToken"

	key := cacheKey(cafeID)
	var cached string
	found, err := s.cache.Get(key, &cached)
	if err != nil {
		s.log.Warn("failed to read install token from cache", sl.Err(err))
	}
	if found && cached != "" {
		return cached, nil
	}

	candidate, err := codegen.Generate(codegen.Alphabet, codegen.InstallTokenLength)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	token, claimed, err := s.repo.ClaimInstallToken(ctx, cafeID, candidate)
	if err != nil {
		return "", err
	}
	if claimed {
		metrics.InstallTokensIssuedTotal.Inc()
		s.log.Info("install token generated", slog.String("cafe_id", cafeID))
	}

	if err := s.cache.Set(key, token, cacheTTL); err != nil {
		s.log.Warn("failed to cache install token", slog.String("key", key), sl.Err(err))
	}
	return token, nil
}
