package repositories

import (
	"context"

	"github.com/Erik-List/ranked-capital/internal/domain/entities"
	"github.com/google/uuid"
)

// InvestorRepository defines investor data operations
type InvestorRepository interface {
	Create(ctx context.Context, investor *entities.Investor) error
	Update(ctx context.Context, investor *entities.Investor) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Investor, error)
	GetBySlug(ctx context.Context, slug string) (*entities.Investor, error)
	List(ctx context.Context, filter entities.InvestorFilter) ([]*entities.Investor, error)
	Search(ctx context.Context, query string, limit int) ([]*entities.Investor, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entities.ApprovalStatus) error
	DistinctStages(ctx context.Context) ([]string, error)
	DistinctLocations(ctx context.Context) ([]string, error)
}
