package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/egsmart/smartwifi-backend/internal/models"
)

// CreateDesign вставляет новый макет печати и возвращает его ID.
func (s *Storage) CreateDesign(ctx context.Context, design models.Design) (string, error) {
	const op = "storage.CreateDesign"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO designs (cafe_id, cafe_name, name, template)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id`
	var newID string
	err := s.DB.QueryRowContext(ctx, query,
		design.CafeID, design.CafeName, design.Name, design.Template).Scan(&newID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListDesigns возвращает все макеты, новые первыми.
func (s *Storage) ListDesigns(ctx context.Context) ([]*models.Design, error) {
	const op = "storage.ListDesigns"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, cafe_id, cafe_name, name, template, created_at
			  FROM designs
			  ORDER BY created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Design
	for rows.Next() {
		var d models.Design
		if err = rows.Scan(&d.ID, &d.CafeID, &d.CafeName, &d.Name, &d.Template, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &d)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// GetDesign возвращает макет по его ID.
func (s *Storage) GetDesign(ctx context.Context, id string) (*models.Design, error) {
	const op = "storage.GetDesign"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, cafe_id, cafe_name, name, template, created_at
			  FROM designs
			  WHERE id = $1`
	d := &models.Design{}
	row := s.DB.QueryRowContext(ctx, query, id)
	if err := row.Scan(&d.ID, &d.CafeID, &d.CafeName, &d.Name, &d.Template, &d.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return d, nil
}
