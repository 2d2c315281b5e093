package services

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/estate-leads/internal/models"
)

// MockRepository реализует интерфейс catalog.Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) ListProperties(ctx context.Context, limit, offset int) ([]*models.Property, error) {
	args := m.Called(ctx, limit, offset)
	if res := args.Get(0); res != nil {
		return res.([]*models.Property), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) ReadProperty(ctx context.Context, id int) (*models.Property, error) {
	args := m.Called(ctx, id)
	if res := args.Get(0); res != nil {
		return res.(*models.Property), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) ListAuctions(ctx context.Context, limit, offset int) ([]*models.Auction, error) {
	args := m.Called(ctx, limit, offset)
	if res := args.Get(0); res != nil {
		return res.([]*models.Auction), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) ListOwners(ctx context.Context, limit, offset int) ([]*models.Owner, error) {
	args := m.Called(ctx, limit, offset)
	if res := args.Get(0); res != nil {
		return res.([]*models.Owner), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) ListLoans(ctx context.Context, limit, offset int) ([]*models.Loan, error) {
	args := m.Called(ctx, limit, offset)
	if res := args.Get(0); res != nil {
		return res.([]*models.Loan), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockCache реализует интерфейс catalog.Cache
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(key string, result any) (bool, error) {
	args := m.Called(key, result)
	return args.Bool(0), args.Error(1)
}

func (m *MockCache) Set(key string, value any, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

func (m *MockCache) Invalidate(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestListProperties_CacheMiss(t *testing.T) {
	props := []*models.Property{{ID: 1, StreetNum: "1024", StreetName: "Elm Street"}}

	mockCache := new(MockCache)
	mockCache.On("Get", "properties:20:0", mock.Anything).Return(false, nil)
	mockCache.On("Set", "properties:20:0", props, mock.Anything).Return(nil)

	mockRepo := new(MockRepository)
	mockRepo.On("ListProperties", mock.Anything, 20, 0).Return(props, nil)

	service := New(mockRepo, mockCache, newTestLogger())

	got, err := service.ListProperties(context.Background(), 20, 0)
	require.NoError(t, err)
	assert.Equal(t, props, got)
	mockRepo.AssertExpectations(t)
	mockCache.AssertExpectations(t)
}

func TestListProperties_CacheHit(t *testing.T) {
	mockCache := new(MockCache)
	mockCache.On("Get", "properties:20:0", mock.Anything).
		Run(func(args mock.Arguments) {
			out := args.Get(1).(*[]*models.Property)
			*out = []*models.Property{{ID: 2, StreetName: "Oak Avenue"}}
		}).
		Return(true, nil)

	mockRepo := new(MockRepository)

	service := New(mockRepo, mockCache, newTestLogger())

	got, err := service.ListProperties(context.Background(), 20, 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Oak Avenue", got[0].StreetName)
	mockRepo.AssertNotCalled(t, "ListProperties", mock.Anything, mock.Anything, mock.Anything)
}

// Сбой кеша считается промахом и не прерывает запрос.
func TestListProperties_CacheFailureFallsThrough(t *testing.T) {
	props := []*models.Property{{ID: 3}}

	mockCache := new(MockCache)
	mockCache.On("Get", "properties:10:0", mock.Anything).Return(false, errors.New("redis down"))
	mockCache.On("Set", "properties:10:0", props, mock.Anything).Return(errors.New("redis down"))

	mockRepo := new(MockRepository)
	mockRepo.On("ListProperties", mock.Anything, 10, 0).Return(props, nil)

	service := New(mockRepo, mockCache, newTestLogger())

	got, err := service.ListProperties(context.Background(), 10, 0)
	require.NoError(t, err)
	assert.Equal(t, props, got)
}

func TestReadProperty_StoreError(t *testing.T) {
	mockCache := new(MockCache)
	mockCache.On("Get", "property:5", mock.Anything).Return(false, nil)

	mockRepo := new(MockRepository)
	mockRepo.On("ReadProperty", mock.Anything, 5).Return(nil, errors.New("db unavailable"))

	service := New(mockRepo, mockCache, newTestLogger())

	_, err := service.ReadProperty(context.Background(), 5)
	assert.Error(t, err)
	mockCache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything)
}

func TestListAuctions(t *testing.T) {
	auctions := []*models.Auction{{ID: 1, AuctionID: "AUC-2024-001"}}

	mockCache := new(MockCache)
	mockCache.On("Get", "auctions:20:0", mock.Anything).Return(false, nil)
	mockCache.On("Set", "auctions:20:0", auctions, mock.Anything).Return(nil)

	mockRepo := new(MockRepository)
	mockRepo.On("ListAuctions", mock.Anything, 20, 0).Return(auctions, nil)

	service := New(mockRepo, mockCache, newTestLogger())

	got, err := service.ListAuctions(context.Background(), 20, 0)
	require.NoError(t, err)
	assert.Equal(t, auctions, got)
}

func TestListOwners(t *testing.T) {
	owners := []*models.Owner{{ID: 1, LastName: "Myers"}}

	mockCache := new(MockCache)
	mockCache.On("Get", "owners:20:0", mock.Anything).Return(false, nil)
	mockCache.On("Set", "owners:20:0", owners, mock.Anything).Return(nil)

	mockRepo := new(MockRepository)
	mockRepo.On("ListOwners", mock.Anything, 20, 0).Return(owners, nil)

	service := New(mockRepo, mockCache, newTestLogger())

	got, err := service.ListOwners(context.Background(), 20, 0)
	require.NoError(t, err)
	assert.Equal(t, owners, got)
}

func TestListLoans(t *testing.T) {
	loans := []*models.Loan{{ID: 1, LenderName: "First National"}}

	mockCache := new(MockCache)
	mockCache.On("Get", "loans:20:0", mock.Anything).Return(false, nil)
	mockCache.On("Set", "loans:20:0", loans, mock.Anything).Return(nil)

	mockRepo := new(MockRepository)
	mockRepo.On("ListLoans", mock.Anything, 20, 0).Return(loans, nil)

	service := New(mockRepo, mockCache, newTestLogger())

	got, err := service.ListLoans(context.Background(), 20, 0)
	require.NoError(t, err)
	assert.Equal(t, loans, got)
}
