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

func validSubmitInput(investorID uuid.UUID) *entities.SubmitRatingInput {
	return &entities.SubmitRatingInput{
		InvestorID: investorID.String(),
		Score: map[string]int{
			entities.DimensionIntegrity:          8,
			entities.DimensionOperationalSupport: 7,
			entities.DimensionFundraisingSupport: 6,
			entities.DimensionResponsiveness:     9,
		},
		Comments:          map[string]string{entities.DimensionIntegrity: "kept every promise"},
		StageOfCompany:    "seed",
		PositionOfFounder: "CEO",
	}
}

type ratingMocks struct {
	userRepo     *MockUserRepository
	investorRepo *MockInvestorRepository
	ratingRepo   *MockRatingRepository
	logRepo      *MockLogRepository
	uow          *MockUnitOfWork
	cache        *MockRankingCache
}

func newRatingUsecase() (*usecases.RatingUsecase, *ratingMocks) {
	m := &ratingMocks{
		userRepo:     new(MockUserRepository),
		investorRepo: new(MockInvestorRepository),
		ratingRepo:   new(MockRatingRepository),
		logRepo:      new(MockLogRepository),
		uow:          new(MockUnitOfWork),
		cache:        new(MockRankingCache),
	}
	u := usecases.NewRatingUsecase(m.userRepo, m.investorRepo, m.ratingRepo, m.logRepo, m.uow, m.cache)
	return u, m
}

func TestSubmitRating_CreatesPendingWithNewLog(t *testing.T) {
	u, m := newRatingUsecase()
	ctx := context.Background()
	userID, investorID := uuid.New(), uuid.New()
	input := validSubmitInput(investorID)

	m.userRepo.On("GetByID", ctx, userID).Return(&entities.User{ID: userID, Role: entities.UserRoleFounder}, nil)
	m.investorRepo.On("GetByID", ctx, investorID).
		Return(&entities.Investor{ID: investorID, Name: "Alpha Ventures", Status: entities.StatusApproved}, nil)
	m.uow.On("Do", ctx, mock.Anything).Return(nil)
	m.uow.On("WithLock", ctx).Return(ctx)
	m.ratingRepo.On("GetByUserAndInvestor", ctx, userID, investorID).Return(nil, domainerrors.ErrNotFound)
	m.ratingRepo.On("Create", ctx, mock.MatchedBy(func(r *entities.Rating) bool {
		return r.UserID == userID && r.InvestorID == investorID && r.Status == entities.StatusPendingApproval
	})).Return(nil)
	m.logRepo.On("Create", ctx, mock.MatchedBy(func(l *entities.Log) bool {
		return l.LogType == entities.LogTypeNew &&
			l.Status == entities.StatusPendingApproval &&
			l.StageOfCompany == "seed" && l.PositionOfFounder == "CEO"
	})).Return(nil)
	m.cache.On("Invalidate", ctx).Return(nil)

	result, err := u.SubmitRating(ctx, userID, input)
	require.NoError(t, err)
	require.True(t, result.Created)
	require.Equal(t, entities.StatusPendingApproval, result.Status)
	require.InDelta(t, 7.5, result.Overall, 0.0001)

	m.ratingRepo.AssertExpectations(t)
	m.logRepo.AssertNumberOfCalls(t, "Create", 1)
	m.cache.AssertExpectations(t)
}

func TestSubmitRating_UnknownUserIsUnauthenticated(t *testing.T) {
	u, m := newRatingUsecase()
	ctx := context.Background()
	userID := uuid.New()

	m.userRepo.On("GetByID", ctx, userID).Return(nil, domainerrors.ErrNotFound)

	_, err := u.SubmitRating(ctx, userID, validSubmitInput(uuid.New()))
	require.ErrorIs(t, err, domainerrors.ErrUnauthenticated)
}

func TestSubmitRating_InvalidTarget(t *testing.T) {
	u, m := newRatingUsecase()
	ctx := context.Background()
	userID := uuid.New()
	m.userRepo.On("GetByID", ctx, userID).Return(&entities.User{ID: userID}, nil)

	missing := uuid.New()
	m.investorRepo.On("GetByID", ctx, missing).Return(nil, domainerrors.ErrNotFound)
	_, err := u.SubmitRating(ctx, userID, validSubmitInput(missing))
	require.ErrorIs(t, err, domainerrors.ErrInvalidTarget)

	pending := uuid.New()
	m.investorRepo.On("GetByID", ctx, pending).
		Return(&entities.Investor{ID: pending, Status: entities.StatusPendingApproval}, nil)
	_, err = u.SubmitRating(ctx, userID, validSubmitInput(pending))
	require.ErrorIs(t, err, domainerrors.ErrInvalidTarget)
}

func TestSubmitRating_Validation(t *testing.T) {
	u, m := newRatingUsecase()
	ctx := context.Background()
	userID, investorID := uuid.New(), uuid.New()
	m.userRepo.On("GetByID", ctx, userID).Return(&entities.User{ID: userID}, nil)

	cases := []struct {
		name   string
		mutate func(*entities.SubmitRatingInput)
		field  string
	}{
		{"bad investor id", func(in *entities.SubmitRatingInput) { in.InvestorID = "not-a-uuid" }, "investorId"},
		{"missing dimension", func(in *entities.SubmitRatingInput) { delete(in.Score, entities.DimensionIntegrity) }, "score.integrity"},
		{"score too low", func(in *entities.SubmitRatingInput) { in.Score[entities.DimensionResponsiveness] = 0 }, "score.responsiveness"},
		{"score too high", func(in *entities.SubmitRatingInput) { in.Score[entities.DimensionIntegrity] = 11 }, "score.integrity"},
		{"unknown score key", func(in *entities.SubmitRatingInput) { in.Score["vibes"] = 5 }, "score.vibes"},
		{"unknown comment key", func(in *entities.SubmitRatingInput) { in.Comments["vibes"] = "great" }, "comments.vibes"},
		{"bad stage", func(in *entities.SubmitRatingInput) { in.StageOfCompany = "series z" }, "stageOfCompany"},
		{"bad position", func(in *entities.SubmitRatingInput) { in.PositionOfFounder = "intern" }, "positionOfFounder"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := validSubmitInput(investorID)
			tc.mutate(input)

			_, err := u.SubmitRating(ctx, userID, input)
			require.ErrorIs(t, err, domainerrors.ErrValidation)

			var appErr *domainerrors.AppError
			require.ErrorAs(t, err, &appErr)
			require.Equal(t, tc.field, appErr.Field)
		})
	}
}

func TestSubmitRating_EditResetsModeration(t *testing.T) {
	u, m := newRatingUsecase()
	ctx := context.Background()
	userID, investorID, ratingID := uuid.New(), uuid.New(), uuid.New()
	input := validSubmitInput(investorID)

	m.userRepo.On("GetByID", ctx, userID).Return(&entities.User{ID: userID}, nil)
	m.investorRepo.On("GetByID", ctx, investorID).
		Return(&entities.Investor{ID: investorID, Name: "Alpha Ventures", Status: entities.StatusApproved}, nil)
	m.uow.On("Do", ctx, mock.Anything).Return(nil)
	m.uow.On("WithLock", ctx).Return(ctx)
	m.ratingRepo.On("GetByUserAndInvestor", ctx, userID, investorID).Return(&entities.Rating{
		ID:         ratingID,
		UserID:     userID,
		InvestorID: investorID,
		Score:      map[string]int{entities.DimensionIntegrity: 2},
		Status:     entities.StatusApproved,
	}, nil)
	m.ratingRepo.On("Update", ctx, mock.MatchedBy(func(r *entities.Rating) bool {
		return r.ID == ratingID &&
			r.Status == entities.StatusPendingApproval &&
			r.Score[entities.DimensionIntegrity] == 8
	})).Return(nil)
	m.logRepo.On("UpdateStatusByRating", ctx, ratingID, entities.StatusPendingApproval).Return(nil)
	m.logRepo.On("Create", ctx, mock.MatchedBy(func(l *entities.Log) bool {
		return l.LogType == entities.LogTypeUpdate && l.RatingID == ratingID
	})).Return(nil)
	m.cache.On("Invalidate", ctx).Return(nil)

	result, err := u.SubmitRating(ctx, userID, input)
	require.NoError(t, err)
	require.False(t, result.Created)
	require.Equal(t, ratingID, result.RatingID)
	require.Equal(t, entities.StatusPendingApproval, result.Status)

	m.ratingRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	m.logRepo.AssertNumberOfCalls(t, "Create", 1)
}

func TestRetractRating_SoftDeletesWithDeletionLog(t *testing.T) {
	u, m := newRatingUsecase()
	ctx := context.Background()
	userID, ratingID := uuid.New(), uuid.New()

	m.uow.On("Do", ctx, mock.Anything).Return(nil)
	m.uow.On("WithLock", ctx).Return(ctx)
	m.ratingRepo.On("GetByID", ctx, ratingID).Return(&entities.Rating{
		ID:                ratingID,
		UserID:            userID,
		Status:            entities.StatusApproved,
		StageOfCompany:    "seed",
		PositionOfFounder: "CTO",
	}, nil)
	m.ratingRepo.On("UpdateStatus", ctx, ratingID, entities.StatusRejected).Return(nil)
	m.logRepo.On("UpdateStatusByRating", ctx, ratingID, entities.StatusRejected).Return(nil)
	m.logRepo.On("Create", ctx, mock.MatchedBy(func(l *entities.Log) bool {
		// the entry carries the pre-retraction status
		return l.LogType == entities.LogTypeDeletion && l.Status == entities.StatusApproved
	})).Return(nil)
	m.cache.On("Invalidate", ctx).Return(nil)

	require.NoError(t, u.RetractRating(ctx, userID, ratingID))
	m.logRepo.AssertExpectations(t)
	m.cache.AssertExpectations(t)
}

func TestRetractRating_NotOwnerIsForbidden(t *testing.T) {
	u, m := newRatingUsecase()
	ctx := context.Background()
	ratingID := uuid.New()

	m.uow.On("Do", ctx, mock.Anything).Return(nil)
	m.uow.On("WithLock", ctx).Return(ctx)
	m.ratingRepo.On("GetByID", ctx, ratingID).Return(&entities.Rating{
		ID:     ratingID,
		UserID: uuid.New(),
		Status: entities.StatusApproved,
	}, nil)

	err := u.RetractRating(ctx, uuid.New(), ratingID)
	require.ErrorIs(t, err, domainerrors.ErrForbidden)
	m.ratingRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestRetractRating_AlreadyRejectedIsIdempotentNoOp(t *testing.T) {
	u, m := newRatingUsecase()
	ctx := context.Background()
	userID, ratingID := uuid.New(), uuid.New()

	m.uow.On("Do", ctx, mock.Anything).Return(nil)
	m.uow.On("WithLock", ctx).Return(ctx)
	m.ratingRepo.On("GetByID", ctx, ratingID).Return(&entities.Rating{
		ID:     ratingID,
		UserID: userID,
		Status: entities.StatusRejected,
	}, nil)

	err := u.RetractRating(ctx, userID, ratingID)
	require.ErrorIs(t, err, domainerrors.ErrForbidden)

	// no second DELETION entry, no state change
	m.ratingRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	m.logRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	m.cache.AssertNotCalled(t, "Invalidate", mock.Anything)
}

func TestGetMyRatings(t *testing.T) {
	u, m := newRatingUsecase()
	ctx := context.Background()
	userID := uuid.New()

	m.ratingRepo.On("ListByUser", ctx, userID).
		Return([]*entities.Rating{{ID: uuid.New(), UserID: userID}}, nil)

	ratings, err := u.GetMyRatings(ctx, userID)
	require.NoError(t, err)
	require.Len(t, ratings, 1)
}
