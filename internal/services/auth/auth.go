// Package services содержит бизнес-логику регистрации и аутентификации
// пользователей.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	jwtMaker "github.com/magabrotheeeer/estate-leads/internal/lib/jwt"
	"github.com/magabrotheeeer/estate-leads/internal/lib/password"
	"github.com/magabrotheeeer/estate-leads/internal/models"
)

// ErrInvalidCredentials — неверная пара логин/пароль. Обе причины
// (нет пользователя, неверный пароль) схлопываются в одну ошибку,
// чтобы не раскрывать, какой логин зарегистрирован.
var ErrInvalidCredentials = errors.New("invalid username or password")

// Repository определяет методы хранилища для работы с пользователями.
type Repository interface {
	RegisterUser(ctx context.Context, user models.User) (string, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// Service реализует регистрацию и вход пользователей.
type Service struct {
	repo  Repository
	maker jwtMaker.Maker
	log   *slog.Logger
}

// New создает новый Service.
func New(repo Repository, maker jwtMaker.Maker, log *slog.Logger) *Service {
	return &Service{
		repo:  repo,
		maker: maker,
		log:   log,
	}
}

// Register создает нового пользователя с ролью standard и возвращает его UID.
func (s *Service) Register(ctx context.Context, email, username, pass string) (string, error) {
	const op = "auth.Register"

	hash, err := password.GetHash(pass)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	uid, err := s.repo.RegisterUser(ctx, models.User{
		Email:        email,
		Username:     username,
		PasswordHash: hash,
		Role:         "standard",
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("user registered", slog.String("username", username))
	return uid, nil
}

// Login проверяет учётные данные и возвращает подписанный JWT-токен.
func (s *Service) Login(ctx context.Context, username, pass string) (string, error) {
	const op = "auth.Login"

	user, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if err := password.CompareHash(user.PasswordHash, pass); err != nil {
		return "", ErrInvalidCredentials
	}

	token, err := s.maker.GenerateToken(user.Username, user.Role, user.UID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return token, nil
}
