package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/egsmart/smartwifi-backend/internal/models"
)

// CreateUserIfAbsent сохраняет пользователя, если имя ещё не занято.
// Повторный вызов с тем же username ничего не меняет, что делает
// стартовое создание администратора идемпотентным.
func (s *Storage) CreateUserIfAbsent(ctx context.Context, username, passwordHash, role string) error {
	const op = "storage.CreateUserIfAbsent"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO users (username, password_hash, role)
			  VALUES ($1, $2, $3)
			  ON CONFLICT (username) DO NOTHING`
	if _, err := s.DB.ExecContext(ctx, query, username, passwordHash, role); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetUserByUsername возвращает пользователя по его username.
func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	const op = "storage.GetUserByUsername"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, username, password_hash, role, created_at
			  FROM users
			  WHERE username = $1`
	u := &models.User{}
	row := s.DB.QueryRowContext(ctx, query, username)

	if err := row.Scan(&u.UID, &u.Username, &u.PasswordHash, &u.Role, &u.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}
