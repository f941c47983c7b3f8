package usecases

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Erik-List/ranked-capital/internal/domain/entities"
	domainerrors "github.com/Erik-List/ranked-capital/internal/domain/errors"
	"github.com/Erik-List/ranked-capital/internal/domain/repositories"
	"github.com/Erik-List/ranked-capital/pkg/logger"
)

// ModerationUsecase drives admin approval decisions. Allowed transitions:
// PENDING_APPROVAL to APPROVED or REJECTED, and APPROVED to REJECTED for
// later takedowns. Nothing returns to PENDING_APPROVAL except a fresh
// rating edit.
type ModerationUsecase struct {
	investorRepo repositories.InvestorRepository
	ratingRepo   repositories.RatingRepository
	logRepo      repositories.LogRepository
	uow          repositories.UnitOfWork
	cache        RankingCache
}

// NewModerationUsecase creates a new moderation usecase
func NewModerationUsecase(
	investorRepo repositories.InvestorRepository,
	ratingRepo repositories.RatingRepository,
	logRepo repositories.LogRepository,
	uow repositories.UnitOfWork,
	cache RankingCache,
) *ModerationUsecase {
	return &ModerationUsecase{
		investorRepo: investorRepo,
		ratingRepo:   ratingRepo,
		logRepo:      logRepo,
		uow:          uow,
		cache:        cache,
	}
}

// TransitionRatingStatus moves a rating through moderation and keeps the
// denormalized status on its log entries in sync, atomically.
func (u *ModerationUsecase) TransitionRatingStatus(ctx context.Context, actor *entities.User, ratingID uuid.UUID, newStatus entities.ApprovalStatus) error {
	if actor == nil || !actor.IsAdmin() {
		return domainerrors.Forbidden("moderation requires an admin")
	}
	if !newStatus.Valid() {
		return domainerrors.Validation("status", "is not a known status")
	}

	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		lockCtx := u.uow.WithLock(txCtx)
		rating, err := u.ratingRepo.GetByID(lockCtx, ratingID)
		if err != nil {
			return err
		}
		if err := checkTransition(rating.Status, newStatus); err != nil {
			return err
		}
		if err := u.ratingRepo.UpdateStatus(txCtx, ratingID, newStatus); err != nil {
			return err
		}
		return u.logRepo.UpdateStatusByRating(txCtx, ratingID, newStatus)
	})
	if err != nil {
		return err
	}

	u.invalidateRanking(ctx)
	return nil
}

// TransitionInvestorStatus moves an investor through moderation
func (u *ModerationUsecase) TransitionInvestorStatus(ctx context.Context, actor *entities.User, investorID uuid.UUID, newStatus entities.ApprovalStatus) error {
	if actor == nil || !actor.IsAdmin() {
		return domainerrors.Forbidden("moderation requires an admin")
	}
	if !newStatus.Valid() {
		return domainerrors.Validation("status", "is not a known status")
	}

	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		lockCtx := u.uow.WithLock(txCtx)
		investor, err := u.investorRepo.GetByID(lockCtx, investorID)
		if err != nil {
			return err
		}
		if err := checkTransition(investor.Status, newStatus); err != nil {
			return err
		}
		return u.investorRepo.UpdateStatus(txCtx, investorID, newStatus)
	})
	if err != nil {
		return err
	}

	u.invalidateRanking(ctx)
	return nil
}

// ListRatingsByStatus pages through the moderation queue
func (u *ModerationUsecase) ListRatingsByStatus(ctx context.Context, actor *entities.User, status entities.ApprovalStatus, limit, offset int) ([]*entities.Rating, int, error) {
	if actor == nil || !actor.IsAdmin() {
		return nil, 0, domainerrors.Forbidden("moderation requires an admin")
	}
	if !status.Valid() {
		return nil, 0, domainerrors.Validation("status", "is not a known status")
	}
	return u.ratingRepo.ListByStatus(ctx, status, limit, offset)
}

// ListInvestorsByStatus lists investors for review
func (u *ModerationUsecase) ListInvestorsByStatus(ctx context.Context, actor *entities.User, statuses []entities.ApprovalStatus) ([]*entities.Investor, error) {
	if actor == nil || !actor.IsAdmin() {
		return nil, domainerrors.Forbidden("moderation requires an admin")
	}
	for _, s := range statuses {
		if !s.Valid() {
			return nil, domainerrors.Validation("status", "is not a known status")
		}
	}
	return u.investorRepo.List(ctx, entities.InvestorFilter{Statuses: statuses})
}

func (u *ModerationUsecase) invalidateRanking(ctx context.Context) {
	if u.cache == nil {
		return
	}
	if err := u.cache.Invalidate(ctx); err != nil {
		logger.Warn(ctx, "failed to invalidate ranking cache", zap.Error(err))
	}
}

func checkTransition(from, to entities.ApprovalStatus) error {
	if to == entities.StatusPendingApproval {
		return domainerrors.Forbidden("cannot move back to pending approval")
	}
	if from == to {
		return domainerrors.Conflict("already in the requested status")
	}
	// the only move out of a terminal state is the APPROVED -> REJECTED takedown
	if from.IsTerminal() && to != entities.StatusRejected {
		return domainerrors.Conflict("status is final")
	}
	return nil
}
