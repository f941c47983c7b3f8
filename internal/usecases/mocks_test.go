package usecases_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/Erik-List/ranked-capital/internal/domain/entities"
	"github.com/Erik-List/ranked-capital/internal/infrastructure/linkedin"
	"github.com/Erik-List/ranked-capital/pkg/redis"
)

// Mock UnitOfWork
type MockUnitOfWork struct {
	mock.Mock
}

func (m *MockUnitOfWork) Do(ctx context.Context, f func(context.Context) error) error {
	m.Called(ctx, f)
	return f(ctx)
}

func (m *MockUnitOfWork) WithLock(ctx context.Context) context.Context {
	args := m.Called(ctx)
	return args.Get(0).(context.Context)
}

// Mock UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *entities.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) GetByExternalRef(ctx context.Context, externalRef string) (*entities.User, error) {
	args := m.Called(ctx, externalRef)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) Touch(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// Mock InvestorRepository
type MockInvestorRepository struct {
	mock.Mock
}

func (m *MockInvestorRepository) Create(ctx context.Context, investor *entities.Investor) error {
	return m.Called(ctx, investor).Error(0)
}

func (m *MockInvestorRepository) Update(ctx context.Context, investor *entities.Investor) error {
	return m.Called(ctx, investor).Error(0)
}

func (m *MockInvestorRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Investor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Investor), args.Error(1)
}

func (m *MockInvestorRepository) GetBySlug(ctx context.Context, slug string) (*entities.Investor, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Investor), args.Error(1)
}

func (m *MockInvestorRepository) List(ctx context.Context, filter entities.InvestorFilter) ([]*entities.Investor, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Investor), args.Error(1)
}

func (m *MockInvestorRepository) Search(ctx context.Context, query string, limit int) ([]*entities.Investor, error) {
	args := m.Called(ctx, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Investor), args.Error(1)
}

func (m *MockInvestorRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.ApprovalStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *MockInvestorRepository) DistinctStages(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockInvestorRepository) DistinctLocations(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// Mock RatingRepository
type MockRatingRepository struct {
	mock.Mock
}

func (m *MockRatingRepository) Create(ctx context.Context, rating *entities.Rating) error {
	return m.Called(ctx, rating).Error(0)
}

func (m *MockRatingRepository) Update(ctx context.Context, rating *entities.Rating) error {
	return m.Called(ctx, rating).Error(0)
}

func (m *MockRatingRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Rating, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Rating), args.Error(1)
}

func (m *MockRatingRepository) GetByUserAndInvestor(ctx context.Context, userID, investorID uuid.UUID) (*entities.Rating, error) {
	args := m.Called(ctx, userID, investorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Rating), args.Error(1)
}

func (m *MockRatingRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entities.Rating, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Rating), args.Error(1)
}

func (m *MockRatingRepository) ListByInvestor(ctx context.Context, investorID uuid.UUID, status entities.ApprovalStatus) ([]*entities.Rating, error) {
	args := m.Called(ctx, investorID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Rating), args.Error(1)
}

func (m *MockRatingRepository) ListByInvestorIDs(ctx context.Context, investorIDs []uuid.UUID, status entities.ApprovalStatus) ([]*entities.Rating, error) {
	args := m.Called(ctx, investorIDs, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Rating), args.Error(1)
}

func (m *MockRatingRepository) ListByStatus(ctx context.Context, status entities.ApprovalStatus, limit, offset int) ([]*entities.Rating, int, error) {
	args := m.Called(ctx, status, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.Rating), args.Int(1), args.Error(2)
}

func (m *MockRatingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.ApprovalStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

// Mock LogRepository
type MockLogRepository struct {
	mock.Mock
}

func (m *MockLogRepository) Create(ctx context.Context, log *entities.Log) error {
	return m.Called(ctx, log).Error(0)
}

func (m *MockLogRepository) UpdateStatusByRating(ctx context.Context, ratingID uuid.UUID, status entities.ApprovalStatus) error {
	return m.Called(ctx, ratingID, status).Error(0)
}

func (m *MockLogRepository) ListByRating(ctx context.Context, ratingID uuid.UUID) ([]*entities.Log, error) {
	args := m.Called(ctx, ratingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Log), args.Error(1)
}

func (m *MockLogRepository) ListVisible(ctx context.Context, filter entities.LogFilter, limit int) ([]*entities.Log, error) {
	args := m.Called(ctx, filter, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Log), args.Error(1)
}

func (m *MockLogRepository) CountByRating(ctx context.Context, ratingID uuid.UUID) (int, error) {
	args := m.Called(ctx, ratingID)
	return args.Int(0), args.Error(1)
}

func (m *MockLogRepository) DistinctStages(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockLogRepository) DistinctPositions(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// Mock RankingCache
type MockRankingCache struct {
	mock.Mock
}

func (m *MockRankingCache) GetDefault(ctx context.Context, dst interface{}) (bool, error) {
	args := m.Called(ctx, dst)
	return args.Bool(0), args.Error(1)
}

func (m *MockRankingCache) SetDefault(ctx context.Context, v interface{}) error {
	return m.Called(ctx, v).Error(0)
}

func (m *MockRankingCache) Invalidate(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

// Mock IdentityProvider
type MockIdentityProvider struct {
	mock.Mock
}

func (m *MockIdentityProvider) AuthorizationURL(state string) string {
	return m.Called(state).String(0)
}

func (m *MockIdentityProvider) ExchangeCode(ctx context.Context, code string) (*linkedin.Token, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*linkedin.Token), args.Error(1)
}

func (m *MockIdentityProvider) FetchProfile(ctx context.Context, accessToken string) (*linkedin.Profile, error) {
	args := m.Called(ctx, accessToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*linkedin.Profile), args.Error(1)
}

// Mock SessionStore
type MockSessionStore struct {
	mock.Mock
}

func (m *MockSessionStore) CreateSession(ctx context.Context, sessionID string, data *redis.SessionData, expiration time.Duration) error {
	return m.Called(ctx, sessionID, data, expiration).Error(0)
}

func (m *MockSessionStore) DeleteSession(ctx context.Context, sessionID string) error {
	return m.Called(ctx, sessionID).Error(0)
}
