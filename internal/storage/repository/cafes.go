package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/egsmart/smartwifi-backend/internal/models"
)

// CreateCafe вставляет новое кафе и возвращает его ID.
func (s *Storage) CreateCafe(ctx context.Context, cafe models.Cafe) (string, error) {
	const op = "storage.CreateCafe"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO cafes (name, address, owner_name, phone, landline, status)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id`
	var newID string
	err := s.DB.QueryRowContext(ctx, query,
		cafe.Name, cafe.Address, cafe.Owner, cafe.Phone, cafe.Landline, cafe.Status).Scan(&newID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListCafes возвращает все кафе, новые первыми.
func (s *Storage) ListCafes(ctx context.Context) ([]*models.Cafe, error) {
	const op = "storage.ListCafes"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, address, owner_name, phone, landline, status,
			      install_token, created_at
			  FROM cafes
			  ORDER BY created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Cafe
	for rows.Next() {
		var c models.Cafe
		if err = rows.Scan(&c.ID, &c.Name, &c.Address, &c.Owner, &c.Phone,
			&c.Landline, &c.Status, &c.InstallToken, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// GetCafe возвращает кафе по его ID.
func (s *Storage) GetCafe(ctx context.Context, id string) (*models.Cafe, error) {
	const op = "storage.GetCafe"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, address, owner_name, phone, landline, status,
			      install_token, created_at
			  FROM cafes
			  WHERE id = $1`
	c := &models.Cafe{}
	row := s.DB.QueryRowContext(ctx, query, id)
	if err := row.Scan(&c.ID, &c.Name, &c.Address, &c.Owner, &c.Phone,
		&c.Landline, &c.Status, &c.InstallToken, &c.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return c, nil
}

// UpdateCafeStatus меняет статус кафе и возвращает количество изменённых строк.
func (s *Storage) UpdateCafeStatus(ctx context.Context, id, status string) (int, error) {
	const op = "storage.UpdateCafeStatus"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE cafes SET status = $2 WHERE id = $1`
	result, err := s.DB.ExecContext(ctx, query, id, status)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// ClaimInstallToken атомарно назначает установочный токен, если он ещё
// не назначен, и возвращает фактически сохранённый токен. При гонке двух
// вызовов условный UPDATE пропускает проигравшего, и оба получают токен
// победителя.
func (s *Storage) ClaimInstallToken(ctx context.Context, id, candidate string) (string, bool, error) {
	const op = "storage.ClaimInstallToken"
	select {
	case <-ctx.Done():
		return "", false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE cafes SET install_token = $2
			  WHERE id = $1 AND install_token IS NULL`
	result, err := s.DB.ExecContext(ctx, query, id, candidate)
	if err != nil {
		return "", false, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return "", false, fmt.Errorf("%s: %w", op, err)
	}

	var token sql.NullString
	row := s.DB.QueryRowContext(ctx, `SELECT install_token FROM cafes WHERE id = $1`, id)
	if err := row.Scan(&token); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return "", false, fmt.Errorf("%s: %w", op, err)
	}
	if !token.Valid {
		return "", false, fmt.Errorf("%s: install token is empty after claim", op)
	}
	return token.String, rowsAffected > 0, nil
}
