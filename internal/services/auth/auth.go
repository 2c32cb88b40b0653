// Package auth содержит логику аутентификации: вход по паролю, проверку
// токена сеанса и однократное создание администратора при старте процесса.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/egsmart/smartwifi-backend/internal/lib/jwt"
	"github.com/egsmart/smartwifi-backend/internal/lib/password"
	"github.com/egsmart/smartwifi-backend/internal/models"
	"github.com/egsmart/smartwifi-backend/internal/storage/repository"
)

// ErrInvalidCredentials возвращается и для неизвестного имени, и для
// неверного пароля: ответ не должен выдавать, какая половина не совпала.
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// GetUserByUsername возвращает пользователя по имени или ErrNotFound.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	// CreateUserIfAbsent сохраняет пользователя, если имя свободно.
	CreateUserIfAbsent(ctx context.Context, username, passwordHash, role string) error
}

// Service отвечает за вход, проверку JWT и стартовое создание администратора.
type Service struct {
	users    UserRepository
	jwtMaker jwt.Maker
	log      *slog.Logger
}

// New создает новый экземпляр Service.
func New(users UserRepository, jwtMaker jwt.Maker, log *slog.Logger) *Service {
	return &Service{
		users:    users,
		jwtMaker: jwtMaker,
		log:      log,
	}
}

// Login проверяет пароль пользователя и выпускает JWT сеанса.
func (s *Service) Login(ctx context.Context, username, rawPassword string) (string, error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", ErrInvalidCredentials
	}
	token, err := s.jwtMaker.GenerateToken(user.Username, user.Role, user.UID)
	if err != nil {
		return "", err
	}
	return token, nil
}

// ValidateToken проверяет JWT и возвращает сеанс. Любая ошибка означает
// "не аутентифицирован" — различать причины вызывающему не нужно.
func (s *Service) ValidateToken(token string) (*models.Session, error) {
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return nil, err
	}
	sess := &models.Session{
		UserUID:  claims.UserUID,
		Username: claims.Username,
		Role:     claims.Role,
	}
	if claims.IssuedAt != nil {
		sess.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		sess.ExpiresAt = claims.ExpiresAt.Time
	}
	return sess, nil
}

// EnsureAdmin один раз создаёт администратора с учётными данными из
// конфигурации. Повторный запуск и конкурентный запуск ничего не меняют:
// вставка идёт через ON CONFLICT DO NOTHING.
func (s *Service) EnsureAdmin(ctx context.Context, username, rawPassword string) error {
	const op = "auth.EnsureAdmin"

	_, err := s.users.GetUserByUsername(ctx, username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%s: %w", op, err)
	}

	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.users.CreateUserIfAbsent(ctx, username, hashed, models.RoleAdmin); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("admin account seeded", slog.String("username", username))
	return nil
}
