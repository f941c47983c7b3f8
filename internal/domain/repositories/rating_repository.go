package repositories

import (
	"context"

	"github.com/Erik-List/ranked-capital/internal/domain/entities"
	"github.com/google/uuid"
)

// RatingRepository defines rating data operations. A unique index on
// (user_id, investor_id) backs the one-rating-per-pair invariant; a Create
// that violates it reports a conflict.
type RatingRepository interface {
	Create(ctx context.Context, rating *entities.Rating) error
	Update(ctx context.Context, rating *entities.Rating) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Rating, error)
	GetByUserAndInvestor(ctx context.Context, userID, investorID uuid.UUID) (*entities.Rating, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*entities.Rating, error)
	ListByInvestor(ctx context.Context, investorID uuid.UUID, status entities.ApprovalStatus) ([]*entities.Rating, error)
	ListByInvestorIDs(ctx context.Context, investorIDs []uuid.UUID, status entities.ApprovalStatus) ([]*entities.Rating, error)
	ListByStatus(ctx context.Context, status entities.ApprovalStatus, limit, offset int) ([]*entities.Rating, int, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entities.ApprovalStatus) error
}

// LogRepository defines activity log operations. Log events are append-only;
// UpdateStatusByRating only re-syncs the denormalized status column when the
// owning rating moves through moderation.
type LogRepository interface {
	Create(ctx context.Context, log *entities.Log) error
	UpdateStatusByRating(ctx context.Context, ratingID uuid.UUID, status entities.ApprovalStatus) error
	ListByRating(ctx context.Context, ratingID uuid.UUID) ([]*entities.Log, error)
	ListVisible(ctx context.Context, filter entities.LogFilter, limit int) ([]*entities.Log, error)
	CountByRating(ctx context.Context, ratingID uuid.UUID) (int, error)
	DistinctStages(ctx context.Context) ([]string, error)
	DistinctPositions(ctx context.Context) ([]string, error)
}
