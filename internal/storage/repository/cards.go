package repository

import (
	"context"
	"fmt"
	"strconv"

	"github.com/egsmart/smartwifi-backend/internal/models"
)

// InsertCards вставляет партию карт со статусом "new" и возвращает коды,
// которые реально были вставлены. Коды, столкнувшиеся с уже существующими
// (в том числе вставленными конкурентно), отбрасываются уникальным индексом
// и в результат не попадают — их замену выполняет вызывающий сервис.
func (s *Storage) InsertCards(ctx context.Context, cafeID, planID string, codes []string) ([]string, error) {
	const op = "storage.InsertCards"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO cards (code, cafe_id, plan_id, status)
			  SELECT c.code, $2::uuid, $3::uuid, 'new'
			  FROM unnest($1::text[]) AS c(code)
			  ON CONFLICT (code) DO NOTHING
			  RETURNING code`
	rows, err := s.DB.QueryContext(ctx, query, codes, cafeID, planID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var inserted []string
	for rows.Next() {
		var code string
		if err = rows.Scan(&code); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		inserted = append(inserted, code)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return inserted, nil
}

// ListCards возвращает карты по фильтру равенства, новые первыми.
// Limit должен быть уже нормализован вызывающим сервисом.
func (s *Storage) ListCards(ctx context.Context, filter models.CardFilter) ([]*models.Card, error) {
	const op = "storage.ListCards"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT code, cafe_id, plan_id, status, created_at FROM cards`
	var conditions []string
	var args []any
	if filter.CafeID != "" {
		args = append(args, filter.CafeID)
		conditions = append(conditions, "cafe_id = $"+strconv.Itoa(len(args)))
	}
	if filter.Code != "" {
		args = append(args, filter.Code)
		conditions = append(conditions, "code = $"+strconv.Itoa(len(args)))
	}
	for i, cond := range conditions {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	args = append(args, filter.Limit)
	query += " ORDER BY created_at DESC LIMIT $" + strconv.Itoa(len(args))

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Card
	for rows.Next() {
		var c models.Card
		if err = rows.Scan(&c.Code, &c.CafeID, &c.PlanID, &c.Status, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
