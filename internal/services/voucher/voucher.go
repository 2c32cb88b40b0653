// Package voucher содержит бизнес-логику выпуска партий карт доступа
// и поиска по ним.
//
// Уникальность кода карты — глобальный инвариант: коллизии между партиями
// отсекает уникальный индекс в базе, а сервис догенерирует замену ровно для
// отклонённых кодов, так что запрошенное количество выдаётся полностью либо
// операция завершается ошибкой.
package voucher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/egsmart/smartwifi-backend/internal/lib/codegen"
	"github.com/egsmart/smartwifi-backend/internal/lib/sl"
	"github.com/egsmart/smartwifi-backend/internal/metrics"
	"github.com/egsmart/smartwifi-backend/internal/models"
)

// Пределы выпуска: размер партии и длина кода.
const (
	MinCount  = 1
	MaxCount  = 5000
	MinLength = 4
	MaxLength = 20
)

// MaxSearchLimit — максимальный размер страницы поиска.
const MaxSearchLimit = 200

// DefaultSearchLimit — размер страницы, если лимит не задан.
const DefaultSearchLimit = 100

// PreviewSize — сколько карт попадает в превью результата выпуска.
const PreviewSize = 20

// maxInsertAttempts ограничивает число догенераций при коллизиях кодов.
const maxInsertAttempts = 5

// ErrInvalidRequest возвращается при выходе параметров выпуска за пределы.
var ErrInvalidRequest = errors.New("invalid issue request")

// CardRepository определяет методы для работы с картами в хранилище.
type CardRepository interface {
	// InsertCards вставляет партию и возвращает реально вставленные коды.
	InsertCards(ctx context.Context, cafeID, planID string, codes []string) ([]string, error)
	// ListCards возвращает карты по фильтру равенства.
	ListCards(ctx context.Context, filter models.CardFilter) ([]*models.Card, error)
}

// BatchPublisher публикует событие о выпущенной партии.
type BatchPublisher interface {
	PublishBatchIssued(event models.CardBatchEvent) error
}

// IssueRequest задаёт параметры выпуска партии карт.
type IssueRequest struct {
	CafeID string
	PlanID string
	Count  int
	Length int
	Prefix string
}

// IssueResult содержит все вставленные коды и превью первых карт.
type IssueResult struct {
	Inserted []string
	Preview  []*models.Card
}

// Service реализует выпуск и поиск карт доступа.
type Service struct {
	repo      CardRepository
	publisher BatchPublisher
	log       *slog.Logger
}

// New создает новый экземпляр Service. Publisher может быть nil —
// тогда события о партиях не публикуются.
func New(repo CardRepository, publisher BatchPublisher, log *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		publisher: publisher,
		log:       log,
	}
}

// Issue выпускает партию из req.Count уникальных карт для кафе и тарифа.
// При коллизии с уже существующими кодами заменяются только отклонённые
// коды партии; молчаливое уменьшение количества не допускается.
func (s *Service) Issue(ctx context.Context, req IssueRequest) (*IssueResult, error) {
	const op = "voucher.Issue"

	if req.Count < MinCount || req.Count > MaxCount {
		return nil, fmt.Errorf("%s: count %d: %w", op, req.Count, ErrInvalidRequest)
	}
	if req.Length < MinLength || req.Length > MaxLength {
		return nil, fmt.Errorf("%s: length %d: %w", op, req.Length, ErrInvalidRequest)
	}

	issued := make([]string, 0, req.Count)
	seen := make(map[string]struct{}, req.Count)

	for attempt := 0; attempt < maxInsertAttempts && len(issued) < req.Count; attempt++ {
		need := req.Count - len(issued)
		candidates := make([]string, 0, need)
		for len(candidates) < need {
			code, err := codegen.Generate(codegen.Alphabet, req.Length)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", op, err)
			}
			if req.Prefix != "" {
				code = req.Prefix + "-" + code
			}
			// Дубликаты внутри партии отбрасываем ещё до вставки.
			if _, ok := seen[code]; ok {
				continue
			}
			seen[code] = struct{}{}
			candidates = append(candidates, code)
		}

		inserted, err := s.repo.InsertCards(ctx, req.CafeID, req.PlanID, candidates)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		issued = append(issued, inserted...)
		if len(inserted) < len(candidates) {
			s.log.Warn("code collisions in batch, regenerating remainder",
				slog.Int("attempt", attempt+1),
				slog.Int("collisions", len(candidates)-len(inserted)))
		}
	}

	if len(issued) < req.Count {
		return nil, fmt.Errorf("%s: could not allocate %d unique codes after %d attempts",
			op, req.Count, maxInsertAttempts)
	}

	now := time.Now().UTC()
	previewLen := min(PreviewSize, len(issued))
	preview := make([]*models.Card, 0, previewLen)
	for _, code := range issued[:previewLen] {
		preview = append(preview, &models.Card{
			Code:      code,
			CafeID:    req.CafeID,
			PlanID:    req.PlanID,
			Status:    models.CardStatusNew,
			CreatedAt: now,
		})
	}

	metrics.CardsIssuedTotal.Add(float64(len(issued)))
	s.log.Info("issued card batch",
		slog.String("cafe_id", req.CafeID),
		slog.String("plan_id", req.PlanID),
		slog.Int("count", len(issued)))

	if s.publisher != nil {
		event := models.CardBatchEvent{
			BatchID:  uuid.New().String(),
			CafeID:   req.CafeID,
			PlanID:   req.PlanID,
			Count:    len(issued),
			IssuedAt: now,
		}
		if err := s.publisher.PublishBatchIssued(event); err != nil {
			s.log.Warn("failed to publish batch event", sl.Err(err))
		}
	}

	return &IssueResult{Inserted: issued, Preview: preview}, nil
}

// Search возвращает карты по фильтру, ограничивая размер страницы.
func (s *Service) Search(ctx context.Context, filter models.CardFilter) ([]*models.Card, error) {
	if filter.Limit <= 0 {
		filter.Limit = DefaultSearchLimit
	}
	if filter.Limit > MaxSearchLimit {
		filter.Limit = MaxSearchLimit
	}
	return s.repo.ListCards(ctx, filter)
}
