// Package services содержит бизнес-логику чтения каталога лидов
// с кешированием. Сервис отдаёт немаскированные записи: решение о
// маскировании принимает перехватчик на границе сериализации, поэтому
// кеш хранит только оригинальные данные и не зависит от уровня доступа.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/estate-leads/internal/models"
)

// Repository определяет методы чтения каталога из хранилища.
type Repository interface {
	ListProperties(ctx context.Context, limit, offset int) ([]*models.Property, error)
	ReadProperty(ctx context.Context, id int) (*models.Property, error)
	ListAuctions(ctx context.Context, limit, offset int) ([]*models.Auction, error)
	ListOwners(ctx context.Context, limit, offset int) ([]*models.Owner, error)
	ListLoans(ctx context.Context, limit, offset int) ([]*models.Loan, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// Service реализует чтение каталога с кешированием.
type Service struct {
	repo  Repository
	cache Cache
	log   *slog.Logger
}

// New создает новый Service.
func New(repo Repository, cache Cache, log *slog.Logger) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

const cacheTTL = 10 * time.Minute

// ListProperties возвращает страницу объектов недвижимости.
func (s *Service) ListProperties(ctx context.Context, limit, offset int) ([]*models.Property, error) {
	cacheKey := fmt.Sprintf("properties:%d:%d", limit, offset)
	var cached []*models.Property
	if found := s.fromCache(cacheKey, &cached); found {
		return cached, nil
	}

	result, err := s.repo.ListProperties(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	s.toCache(cacheKey, result)
	return result, nil
}

// ReadProperty возвращает объект недвижимости по ID.
func (s *Service) ReadProperty(ctx context.Context, id int) (*models.Property, error) {
	cacheKey := fmt.Sprintf("property:%d", id)
	var cached *models.Property
	if found := s.fromCache(cacheKey, &cached); found {
		return cached, nil
	}

	result, err := s.repo.ReadProperty(ctx, id)
	if err != nil {
		return nil, err
	}
	s.toCache(cacheKey, result)
	return result, nil
}

// ListAuctions возвращает страницу аукционных записей.
func (s *Service) ListAuctions(ctx context.Context, limit, offset int) ([]*models.Auction, error) {
	cacheKey := fmt.Sprintf("auctions:%d:%d", limit, offset)
	var cached []*models.Auction
	if found := s.fromCache(cacheKey, &cached); found {
		return cached, nil
	}

	result, err := s.repo.ListAuctions(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	s.toCache(cacheKey, result)
	return result, nil
}

// ListOwners возвращает страницу собственников.
func (s *Service) ListOwners(ctx context.Context, limit, offset int) ([]*models.Owner, error) {
	cacheKey := fmt.Sprintf("owners:%d:%d", limit, offset)
	var cached []*models.Owner
	if found := s.fromCache(cacheKey, &cached); found {
		return cached, nil
	}

	result, err := s.repo.ListOwners(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	s.toCache(cacheKey, result)
	return result, nil
}

// ListLoans возвращает страницу займов.
func (s *Service) ListLoans(ctx context.Context, limit, offset int) ([]*models.Loan, error) {
	cacheKey := fmt.Sprintf("loans:%d:%d", limit, offset)
	var cached []*models.Loan
	if found := s.fromCache(cacheKey, &cached); found {
		return cached, nil
	}

	result, err := s.repo.ListLoans(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	s.toCache(cacheKey, result)
	return result, nil
}

// fromCache читает значение из кеша; сбой кеша логируется и считается
// промахом, запрос уходит в хранилище.
func (s *Service) fromCache(key string, result any) bool {
	found, err := s.cache.Get(key, result)
	if err != nil {
		s.log.Warn("cache lookup failed", slog.String("key", key), slog.Any("err", err))
		return false
	}
	return found
}

// toCache сохраняет значение в кеш; сбой логируется и не прерывает запрос.
func (s *Service) toCache(key string, value any) {
	if err := s.cache.Set(key, value, cacheTTL); err != nil {
		s.log.Warn("failed to cache catalog page", slog.String("key", key), slog.Any("err", err))
	}
}
