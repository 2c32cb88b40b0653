// Package catalog содержит бизнес-логику справочников: кафе, тарифные планы
// и макеты печати. Операции без собственных инвариантов — создание, списки,
// переключение статуса — с кешированием списков в Redis.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/egsmart/smartwifi-backend/internal/lib/sl"
	"github.com/egsmart/smartwifi-backend/internal/models"
	"github.com/egsmart/smartwifi-backend/internal/storage/repository"
)

// Ключи кеша списков.
const (
	cafesCacheKey = "catalog:cafes"
	plansCacheKey = "catalog:plans"
	listCacheTTL  = time.Minute
)

// Repository определяет методы хранилища для справочников.
type Repository interface {
	CreateCafe(ctx context.Context, cafe models.Cafe) (string, error)
	ListCafes(ctx context.Context) ([]*models.Cafe, error)
	GetCafe(ctx context.Context, id string) (*models.Cafe, error)
	UpdateCafeStatus(ctx context.Context, id, status string) (int, error)

	CreatePlan(ctx context.Context, plan models.Plan) (string, error)
	ListPlans(ctx context.Context) ([]*models.Plan, error)
	DeletePlan(ctx context.Context, id string) (int, error)

	CreateDesign(ctx context.Context, design models.Design) (string, error)
	ListDesigns(ctx context.Context) ([]*models.Design, error)
	GetDesign(ctx context.Context, id string) (*models.Design, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// Service реализует операции над справочниками.
type Service struct {
	repo  Repository
	cache Cache
	log   *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, cache Cache, log *slog.Logger) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// AddCafe создаёт кафе в статусе "active" и возвращает его ID.
func (s *Service) AddCafe(ctx context.Context, cafe models.Cafe) (string, error) {
	cafe.Status = models.CafeStatusActive
	id, err := s.repo.CreateCafe(ctx, cafe)
	if err != nil {
		return "", err
	}
	s.invalidate(cafesCacheKey)
	s.log.Info("created cafe", slog.String("id", id))
	return id, nil
}

// ListCafes возвращает все кафе, используя кеш или хранилище.
func (s *Service) ListCafes(ctx context.Context) ([]*models.Cafe, error) {
	var cached []*models.Cafe
	found, err := s.cache.Get(cafesCacheKey, &cached)
	if err != nil {
		s.log.Warn("failed to read cafes from cache", sl.Err(err))
	}
	if found {
		return cached, nil
	}

	cafes, err := s.repo.ListCafes(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(cafesCacheKey, cafes, listCacheTTL); err != nil {
		s.log.Warn("failed to cache cafes", sl.Err(err))
	}
	return cafes, nil
}

// ToggleCafe переключает статус кафе.
func (s *Service) ToggleCafe(ctx context.Context, id, status string) error {
	const op = "catalog.ToggleCafe"
	count, err := s.repo.UpdateCafeStatus(ctx, id, status)
	if err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("%s: %w", op, repository.ErrNotFound)
	}
	s.invalidate(cafesCacheKey)
	return nil
}

// AddPlan создаёт тарифный план и возвращает его ID.
func (s *Service) AddPlan(ctx context.Context, plan models.Plan) (string, error) {
	id, err := s.repo.CreatePlan(ctx, plan)
	if err != nil {
		return "", err
	}
	s.invalidate(plansCacheKey)
	s.log.Info("created plan", slog.String("id", id))
	return id, nil
}

// ListPlans возвращает все тарифные планы, используя кеш или хранилище.
func (s *Service) ListPlans(ctx context.Context) ([]*models.Plan, error) {
	var cached []*models.Plan
	found, err := s.cache.Get(plansCacheKey, &cached)
	if err != nil {
		s.log.Warn("failed to read plans from cache", sl.Err(err))
	}
	if found {
		return cached, nil
	}

	plans, err := s.repo.ListPlans(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(plansCacheKey, plans, listCacheTTL); err != nil {
		s.log.Warn("failed to cache plans", sl.Err(err))
	}
	return plans, nil
}

// DeletePlan удаляет тарифный план.
func (s *Service) DeletePlan(ctx context.Context, id string) error {
	const op = "catalog.DeletePlan"
	count, err := s.repo.DeletePlan(ctx, id)
	if err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("%s: %w", op, repository.ErrNotFound)
	}
	s.invalidate(plansCacheKey)
	return nil
}

// AddDesign создаёт макет печати, фиксируя имя кафе на момент создания.
// Отсутствующее кафе не считается ошибкой: имя остаётся пустым, как и при
// создании макета для уже удалённого кафе.
func (s *Service) AddDesign(ctx context.Context, design models.Design) (string, error) {
	cafe, err := s.repo.GetCafe(ctx, design.CafeID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return "", err
	}
	if cafe != nil {
		design.CafeName = &cafe.Name
	}

	id, err := s.repo.CreateDesign(ctx, design)
	if err != nil {
		return "", err
	}
	s.log.Info("created design", slog.String("id", id))
	return id, nil
}

// ListDesigns возвращает все макеты печати.
func (s *Service) ListDesigns(ctx context.Context) ([]*models.Design, error) {
	return s.repo.ListDesigns(ctx)
}

// GetDesign возвращает макет по ID.
func (s *Service) GetDesign(ctx context.Context, id string) (*models.Design, error) {
	return s.repo.GetDesign(ctx, id)
}

func (s *Service) invalidate(key string) {
	if err := s.cache.Invalidate(key); err != nil {
		s.log.Warn("failed to invalidate cache", slog.String("key", key), sl.Err(err))
	}
}
