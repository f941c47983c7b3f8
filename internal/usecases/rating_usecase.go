package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Erik-List/ranked-capital/internal/domain/entities"
	domainerrors "github.com/Erik-List/ranked-capital/internal/domain/errors"
	"github.com/Erik-List/ranked-capital/internal/domain/repositories"
	"github.com/Erik-List/ranked-capital/pkg/logger"
)

// RatingUsecase drives the rating lifecycle: submission, in-place edits and
// retraction. Every mutation commits together with exactly one log entry.
type RatingUsecase struct {
	userRepo     repositories.UserRepository
	investorRepo repositories.InvestorRepository
	ratingRepo   repositories.RatingRepository
	logRepo      repositories.LogRepository
	uow          repositories.UnitOfWork
	cache        RankingCache
}

// NewRatingUsecase creates a new rating usecase
func NewRatingUsecase(
	userRepo repositories.UserRepository,
	investorRepo repositories.InvestorRepository,
	ratingRepo repositories.RatingRepository,
	logRepo repositories.LogRepository,
	uow repositories.UnitOfWork,
	cache RankingCache,
) *RatingUsecase {
	return &RatingUsecase{
		userRepo:     userRepo,
		investorRepo: investorRepo,
		ratingRepo:   ratingRepo,
		logRepo:      logRepo,
		uow:          uow,
		cache:        cache,
	}
}

// SubmitRating creates the caller's rating of an investor, or overwrites the
// existing one. Either way the rating (re-)enters moderation as
// PENDING_APPROVAL and one log entry records the transition.
func (u *RatingUsecase) SubmitRating(ctx context.Context, userID uuid.UUID, input *entities.SubmitRatingInput) (*entities.SubmitRatingResult, error) {
	if _, err := u.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.Unauthenticated("unknown user")
		}
		return nil, err
	}

	investorID, appErr := validateSubmitRatingInput(input)
	if appErr != nil {
		return nil, appErr
	}

	investor, err := u.investorRepo.GetByID(ctx, investorID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.InvalidTarget("investor does not exist")
		}
		return nil, err
	}
	if !investor.Status.IsPublic() {
		return nil, domainerrors.InvalidTarget("investor is not approved")
	}

	var result *entities.SubmitRatingResult
	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		lockCtx := u.uow.WithLock(txCtx)

		existing, err := u.ratingRepo.GetByUserAndInvestor(lockCtx, userID, investorID)
		if err != nil && !errors.Is(err, domainerrors.ErrNotFound) {
			return err
		}

		if existing == nil {
			rating := &entities.Rating{
				UserID:            userID,
				InvestorID:        investorID,
				Score:             input.Score,
				Comments:          input.Comments,
				StageOfCompany:    input.StageOfCompany,
				PositionOfFounder: input.PositionOfFounder,
				Status:            entities.StatusPendingApproval,
			}
			if err := u.ratingRepo.Create(txCtx, rating); err != nil {
				return err
			}
			if err := u.logRepo.Create(txCtx, &entities.Log{
				RatingID:          rating.ID,
				LogType:           entities.LogTypeNew,
				Message:           fmt.Sprintf("New rating submitted for %s", investor.Name),
				StageOfCompany:    rating.StageOfCompany,
				PositionOfFounder: rating.PositionOfFounder,
				Status:            entities.StatusPendingApproval,
			}); err != nil {
				return err
			}
			result = &entities.SubmitRatingResult{
				RatingID: rating.ID,
				Status:   rating.Status,
				Overall:  rating.Overall(),
				Created:  true,
			}
			return nil
		}

		existing.Score = input.Score
		existing.Comments = input.Comments
		existing.StageOfCompany = input.StageOfCompany
		existing.PositionOfFounder = input.PositionOfFounder
		existing.Status = entities.StatusPendingApproval
		if err := u.ratingRepo.Update(txCtx, existing); err != nil {
			return err
		}
		// earlier entries re-enter moderation along with the rating
		if err := u.logRepo.UpdateStatusByRating(txCtx, existing.ID, entities.StatusPendingApproval); err != nil {
			return err
		}
		if err := u.logRepo.Create(txCtx, &entities.Log{
			RatingID:          existing.ID,
			LogType:           entities.LogTypeUpdate,
			Message:           fmt.Sprintf("Rating updated for %s", investor.Name),
			StageOfCompany:    existing.StageOfCompany,
			PositionOfFounder: existing.PositionOfFounder,
			Status:            entities.StatusPendingApproval,
		}); err != nil {
			return err
		}
		result = &entities.SubmitRatingResult{
			RatingID: existing.ID,
			Status:   existing.Status,
			Overall:  existing.Overall(),
			Created:  false,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.invalidateRanking(ctx)
	return result, nil
}

// RetractRating soft-deletes the caller's rating by moving it to REJECTED.
// An already-rejected rating is not retractable again, so a second call
// cannot emit a duplicate DELETION entry.
func (u *RatingUsecase) RetractRating(ctx context.Context, userID, ratingID uuid.UUID) error {
	var wasApproved bool
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		lockCtx := u.uow.WithLock(txCtx)

		rating, err := u.ratingRepo.GetByID(lockCtx, ratingID)
		if err != nil {
			return err
		}
		if rating.UserID != userID {
			return domainerrors.Forbidden("rating belongs to another user")
		}
		if rating.Status == entities.StatusRejected {
			return domainerrors.Forbidden("rating is no longer active")
		}
		wasApproved = rating.Status == entities.StatusApproved

		if err := u.ratingRepo.UpdateStatus(txCtx, ratingID, entities.StatusRejected); err != nil {
			return err
		}
		// history of the retracted rating drops out of the feed
		if err := u.logRepo.UpdateStatusByRating(txCtx, ratingID, entities.StatusRejected); err != nil {
			return err
		}
		// the DELETION entry keeps the pre-retraction status so the feed
		// still shows that a retraction happened
		return u.logRepo.Create(txCtx, &entities.Log{
			RatingID:          ratingID,
			LogType:           entities.LogTypeDeletion,
			Message:           "Rating retracted",
			StageOfCompany:    rating.StageOfCompany,
			PositionOfFounder: rating.PositionOfFounder,
			Status:            rating.Status,
		})
	})
	if err != nil {
		return err
	}

	if wasApproved {
		u.invalidateRanking(ctx)
	}
	return nil
}

// GetMyRatings lists the caller's ratings, any status
func (u *RatingUsecase) GetMyRatings(ctx context.Context, userID uuid.UUID) ([]*entities.Rating, error) {
	return u.ratingRepo.ListByUser(ctx, userID)
}

func (u *RatingUsecase) invalidateRanking(ctx context.Context) {
	if u.cache == nil {
		return
	}
	if err := u.cache.Invalidate(ctx); err != nil {
		logger.Warn(ctx, "failed to invalidate ranking cache", zap.Error(err))
	}
}

func validateSubmitRatingInput(input *entities.SubmitRatingInput) (uuid.UUID, *domainerrors.AppError) {
	investorID, err := uuid.Parse(input.InvestorID)
	if err != nil {
		return uuid.Nil, domainerrors.Validation("investorId", "must be a valid UUID")
	}

	for _, dim := range entities.RatingDimensions {
		score, ok := input.Score[dim]
		if !ok {
			return uuid.Nil, domainerrors.Validation("score."+dim, "is required")
		}
		if score < entities.ScoreMin || score > entities.ScoreMax {
			return uuid.Nil, domainerrors.Validation("score."+dim, fmt.Sprintf("must be between %d and %d", entities.ScoreMin, entities.ScoreMax))
		}
	}
	for key := range input.Score {
		if !isRatingDimension(key) {
			return uuid.Nil, domainerrors.Validation("score."+key, "is not a rating dimension")
		}
	}
	for key := range input.Comments {
		if !isRatingDimension(key) {
			return uuid.Nil, domainerrors.Validation("comments."+key, "is not a rating dimension")
		}
	}

	if !containsString(entities.CompanyStages, input.StageOfCompany) {
		return uuid.Nil, domainerrors.Validation("stageOfCompany", "is not an allowed stage")
	}
	if !containsString(entities.FounderPositions, input.PositionOfFounder) {
		return uuid.Nil, domainerrors.Validation("positionOfFounder", "is not an allowed position")
	}
	return investorID, nil
}

func isRatingDimension(key string) bool {
	return containsString(entities.RatingDimensions, key)
}

func containsString(haystack []string, needle string) bool {
	for _, v := range haystack {
		if v == needle {
			return true
		}
	}
	return false
}
