package usecases

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"

	"github.com/Erik-List/ranked-capital/internal/domain/entities"
	domainerrors "github.com/Erik-List/ranked-capital/internal/domain/errors"
	"github.com/Erik-List/ranked-capital/internal/domain/repositories"
	"github.com/Erik-List/ranked-capital/pkg/logger"
)

const defaultSearchLimit = 10

var slugCleaner = regexp.MustCompile(`[^a-z0-9]+`)

// InvestorUsecase manages the investor directory: admin-curated records that
// enter moderation as PENDING_APPROVAL, plus the public search used by the
// rating form picker.
type InvestorUsecase struct {
	investorRepo repositories.InvestorRepository
	cache        RankingCache
}

// NewInvestorUsecase creates a new investor usecase
func NewInvestorUsecase(investorRepo repositories.InvestorRepository, cache RankingCache) *InvestorUsecase {
	return &InvestorUsecase{investorRepo: investorRepo, cache: cache}
}

// CreateInvestor creates an investor record in PENDING_APPROVAL
func (u *InvestorUsecase) CreateInvestor(ctx context.Context, actor *entities.User, input *entities.CreateInvestorInput) (*entities.Investor, error) {
	if actor == nil || !actor.IsAdmin() {
		return nil, domainerrors.Forbidden("investor curation requires an admin")
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, domainerrors.Validation("name", "is required")
	}

	slug := input.Slug
	if slug == "" {
		slug = Slugify(input.Name)
	}
	if slug == "" {
		return nil, domainerrors.Validation("slug", "cannot be derived from name")
	}

	investor := investorFromInput(input)
	investor.Slug = slug
	investor.Status = entities.StatusPendingApproval

	if err := u.investorRepo.Create(ctx, investor); err != nil {
		if errors.Is(err, domainerrors.ErrConflict) {
			return nil, domainerrors.Conflict("slug already taken")
		}
		return nil, err
	}
	return investor, nil
}

// UpdateInvestor overwrites the descriptive fields of an investor. Status is
// untouched; moderation owns it.
func (u *InvestorUsecase) UpdateInvestor(ctx context.Context, actor *entities.User, id uuid.UUID, input *entities.CreateInvestorInput) (*entities.Investor, error) {
	if actor == nil || !actor.IsAdmin() {
		return nil, domainerrors.Forbidden("investor curation requires an admin")
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, domainerrors.Validation("name", "is required")
	}

	existing, err := u.investorRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	investor := investorFromInput(input)
	investor.ID = existing.ID
	investor.Slug = existing.Slug
	investor.Status = existing.Status
	investor.CreatedAt = existing.CreatedAt

	if err := u.investorRepo.Update(ctx, investor); err != nil {
		return nil, err
	}

	if existing.Status.IsPublic() && u.cache != nil {
		if err := u.cache.Invalidate(ctx); err != nil {
			logger.Warn(ctx, "failed to invalidate ranking cache", zap.Error(err))
		}
	}
	return investor, nil
}

// SearchInvestors finds approved investors by name substring
func (u *InvestorUsecase) SearchInvestors(ctx context.Context, query string, limit int) ([]*entities.Investor, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domainerrors.Validation("q", "is required")
	}
	if limit <= 0 || limit > defaultSearchLimit {
		limit = defaultSearchLimit
	}
	return u.investorRepo.Search(ctx, query, limit)
}

// Slugify derives a URL slug from an investor name
func Slugify(name string) string {
	slug := slugCleaner.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(slug, "-")
}

func investorFromInput(input *entities.CreateInvestorInput) *entities.Investor {
	investor := &entities.Investor{
		Slug:               input.Slug,
		Name:               input.Name,
		Partners:           input.Partners,
		AUM:                input.AUM,
		FundsInfo:          input.FundsInfo,
		HQLocation:         input.HQLocation,
		OtherLocations:     input.OtherLocations,
		InvestmentStage:    input.InvestmentStage,
		InvestmentGeo:      input.InvestmentGeo,
		InvestmentFocus:    input.InvestmentFocus,
		InvestmentStyle:    input.InvestmentStyle,
		NotableInvestments: input.NotableInvestments,
		InvestorType:       input.InvestorType,
	}
	if input.LogoURL != "" {
		investor.LogoURL = null.StringFrom(input.LogoURL)
	}
	if input.History != "" {
		investor.History = null.StringFrom(input.History)
	}
	if input.InvestmentConcept != "" {
		investor.InvestmentConcept = null.StringFrom(input.InvestmentConcept)
	}
	return investor
}
