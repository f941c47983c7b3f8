package usecases_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Erik-List/ranked-capital/internal/domain/entities"
	domainerrors "github.com/Erik-List/ranked-capital/internal/domain/errors"
	"github.com/Erik-List/ranked-capital/internal/usecases"
)

func newInvestorUsecase() (*usecases.InvestorUsecase, *MockInvestorRepository, *MockRankingCache) {
	investorRepo := new(MockInvestorRepository)
	cache := new(MockRankingCache)
	return usecases.NewInvestorUsecase(investorRepo, cache), investorRepo, cache
}

func TestSlugify(t *testing.T) {
	require.Equal(t, "alpha-ventures", usecases.Slugify("Alpha Ventures"))
	require.Equal(t, "a16z", usecases.Slugify("a16z"))
	require.Equal(t, "point-nine-capital", usecases.Slugify("  Point Nine Capital!  "))
	require.Equal(t, "", usecases.Slugify("???"))
}

func TestCreateInvestor_EntersModerationPending(t *testing.T) {
	u, investorRepo, _ := newInvestorUsecase()
	ctx := context.Background()

	investorRepo.On("Create", ctx, mock.MatchedBy(func(inv *entities.Investor) bool {
		return inv.Slug == "alpha-ventures" && inv.Status == entities.StatusPendingApproval
	})).Return(nil)

	investor, err := u.CreateInvestor(ctx, admin(), &entities.CreateInvestorInput{Name: "Alpha Ventures"})
	require.NoError(t, err)
	require.Equal(t, "alpha-ventures", investor.Slug)
	require.Equal(t, entities.StatusPendingApproval, investor.Status)
	investorRepo.AssertExpectations(t)
}

func TestCreateInvestor_Guards(t *testing.T) {
	u, investorRepo, _ := newInvestorUsecase()
	ctx := context.Background()

	_, err := u.CreateInvestor(ctx, founder(), &entities.CreateInvestorInput{Name: "X"})
	require.ErrorIs(t, err, domainerrors.ErrForbidden)

	_, err = u.CreateInvestor(ctx, admin(), &entities.CreateInvestorInput{Name: "   "})
	require.ErrorIs(t, err, domainerrors.ErrValidation)

	_, err = u.CreateInvestor(ctx, admin(), &entities.CreateInvestorInput{Name: "???"})
	require.ErrorIs(t, err, domainerrors.ErrValidation)

	investorRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateInvestor_SlugTaken(t *testing.T) {
	u, investorRepo, _ := newInvestorUsecase()
	ctx := context.Background()

	investorRepo.On("Create", ctx, mock.Anything).Return(domainerrors.ErrConflict)

	_, err := u.CreateInvestor(ctx, admin(), &entities.CreateInvestorInput{Name: "Alpha Ventures"})
	require.ErrorIs(t, err, domainerrors.ErrConflict)
}

func TestUpdateInvestor_KeepsSlugAndStatus(t *testing.T) {
	u, investorRepo, cache := newInvestorUsecase()
	ctx := context.Background()
	id := uuid.New()

	investorRepo.On("GetByID", ctx, id).Return(&entities.Investor{
		ID:     id,
		Slug:   "alpha-ventures",
		Name:   "Alpha Ventures",
		Status: entities.StatusApproved,
	}, nil)
	investorRepo.On("Update", ctx, mock.MatchedBy(func(inv *entities.Investor) bool {
		return inv.ID == id &&
			inv.Slug == "alpha-ventures" &&
			inv.Status == entities.StatusApproved &&
			inv.Name == "Alpha Ventures Capital"
	})).Return(nil)
	cache.On("Invalidate", ctx).Return(nil)

	investor, err := u.UpdateInvestor(ctx, admin(), id, &entities.CreateInvestorInput{
		Slug: "ignored-new-slug",
		Name: "Alpha Ventures Capital",
	})
	require.NoError(t, err)
	require.Equal(t, "alpha-ventures", investor.Slug)
	cache.AssertExpectations(t)
}

func TestUpdateInvestor_PendingDoesNotTouchCache(t *testing.T) {
	u, investorRepo, cache := newInvestorUsecase()
	ctx := context.Background()
	id := uuid.New()

	investorRepo.On("GetByID", ctx, id).Return(&entities.Investor{
		ID:     id,
		Slug:   "beta-capital",
		Status: entities.StatusPendingApproval,
	}, nil)
	investorRepo.On("Update", ctx, mock.Anything).Return(nil)

	_, err := u.UpdateInvestor(ctx, admin(), id, &entities.CreateInvestorInput{Name: "Beta Capital"})
	require.NoError(t, err)
	cache.AssertNotCalled(t, "Invalidate", mock.Anything)
}

func TestSearchInvestors(t *testing.T) {
	u, investorRepo, _ := newInvestorUsecase()
	ctx := context.Background()

	investorRepo.On("Search", ctx, "alpha", 10).
		Return([]*entities.Investor{{Name: "Alpha Ventures"}}, nil)

	results, err := u.SearchInvestors(ctx, "  alpha  ", 100)
	require.NoError(t, err)
	require.Len(t, results, 1)

	_, err = u.SearchInvestors(ctx, "   ", 10)
	require.ErrorIs(t, err, domainerrors.ErrValidation)
}
