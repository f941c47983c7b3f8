package usecases

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Erik-List/ranked-capital/internal/domain/entities"
	domainerrors "github.com/Erik-List/ranked-capital/internal/domain/errors"
	"github.com/Erik-List/ranked-capital/internal/domain/repositories"
	"github.com/Erik-List/ranked-capital/pkg/logger"
)

const defaultFeedLimit = 50

// RankingCache caches the default (unfiltered) leaderboard between
// mutations. A nil cache disables caching.
type RankingCache interface {
	GetDefault(ctx context.Context, dst interface{}) (bool, error)
	SetDefault(ctx context.Context, v interface{}) error
	Invalidate(ctx context.Context) error
}

// FilterOptions carries the distinct values public dropdowns offer
type FilterOptions struct {
	Stages    []string `json:"stages"`
	Locations []string `json:"locations,omitempty"`
	Positions []string `json:"positions,omitempty"`
}

// LeaderboardUsecase serves the public read model: the ranking, investor
// profiles and the activity feed. Everything here aggregates approved data
// only; it never mutates.
type LeaderboardUsecase struct {
	investorRepo repositories.InvestorRepository
	ratingRepo   repositories.RatingRepository
	logRepo      repositories.LogRepository
	cache        RankingCache
}

// NewLeaderboardUsecase creates a new leaderboard usecase
func NewLeaderboardUsecase(
	investorRepo repositories.InvestorRepository,
	ratingRepo repositories.RatingRepository,
	logRepo repositories.LogRepository,
	cache RankingCache,
) *LeaderboardUsecase {
	return &LeaderboardUsecase{
		investorRepo: investorRepo,
		ratingRepo:   ratingRepo,
		logRepo:      logRepo,
		cache:        cache,
	}
}

// GetInvestorRanking returns the fully materialized leaderboard: approved
// investors ordered by mean overall score (descending, name ascending on
// ties), investors without approved ratings last with a nil display rating.
func (u *LeaderboardUsecase) GetInvestorRanking(ctx context.Context, filter entities.RankingFilter) ([]*entities.RankedInvestor, error) {
	cacheable := filter == (entities.RankingFilter{})
	if cacheable && u.cache != nil {
		var cached []*entities.RankedInvestor
		hit, err := u.cache.GetDefault(ctx, &cached)
		if err != nil {
			logger.Warn(ctx, "ranking cache read failed", zap.Error(err))
		} else if hit {
			return cached, nil
		}
	}

	investors, err := u.investorRepo.List(ctx, entities.InvestorFilter{
		Statuses:        []entities.ApprovalStatus{entities.StatusApproved},
		InvestmentStage: filter.InvestmentStage,
		HQLocation:      filter.HQLocation,
		Query:           filter.Query,
	})
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(investors))
	for _, inv := range investors {
		ids = append(ids, inv.ID)
	}
	ratings, err := u.ratingRepo.ListByInvestorIDs(ctx, ids, entities.StatusApproved)
	if err != nil {
		return nil, err
	}

	aggregates := aggregateRatings(ratings)

	ranking := make([]*entities.RankedInvestor, 0, len(investors))
	for _, inv := range investors {
		ranking = append(ranking, &entities.RankedInvestor{
			Investor:      inv,
			DisplayRating: aggregates[inv.ID],
		})
	}

	sort.SliceStable(ranking, func(i, j int) bool {
		a, b := ranking[i].DisplayRating, ranking[j].DisplayRating
		switch {
		case a != nil && b == nil:
			return true
		case a == nil && b != nil:
			return false
		case a != nil && b != nil && a.Overall != b.Overall:
			return a.Overall > b.Overall
		default:
			return strings.ToLower(ranking[i].Investor.Name) < strings.ToLower(ranking[j].Investor.Name)
		}
	})
	for i := range ranking {
		ranking[i].Rank = i + 1
	}

	if cacheable && u.cache != nil {
		if err := u.cache.SetDefault(ctx, ranking); err != nil {
			logger.Warn(ctx, "ranking cache write failed", zap.Error(err))
		}
	}
	return ranking, nil
}

// GetInvestorProfile returns an approved investor's public page data,
// including the per-dimension breakdown means.
func (u *LeaderboardUsecase) GetInvestorProfile(ctx context.Context, slug string) (*entities.InvestorProfile, error) {
	investor, err := u.investorRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !investor.Status.IsPublic() {
		// unapproved investors are indistinguishable from absent ones
		return nil, domainerrors.ErrNotFound
	}

	ratings, err := u.ratingRepo.ListByInvestor(ctx, investor.ID, entities.StatusApproved)
	if err != nil {
		return nil, err
	}

	profile := &entities.InvestorProfile{Investor: investor}
	if len(ratings) > 0 {
		profile.DisplayRating = displayRatingOf(ratings)
		profile.Breakdown = dimensionMeans(ratings)
	}
	return profile, nil
}

// GetRankingFilterOptions lists the distinct stages and locations of
// approved investors for the leaderboard dropdowns.
func (u *LeaderboardUsecase) GetRankingFilterOptions(ctx context.Context) (*FilterOptions, error) {
	stages, err := u.investorRepo.DistinctStages(ctx)
	if err != nil {
		return nil, err
	}
	locations, err := u.investorRepo.DistinctLocations(ctx)
	if err != nil {
		return nil, err
	}
	return &FilterOptions{Stages: stages, Locations: locations}, nil
}

// GetActivityFeed returns the newest visible log entries
func (u *LeaderboardUsecase) GetActivityFeed(ctx context.Context, filter entities.LogFilter, limit int) ([]*entities.Log, error) {
	if limit <= 0 || limit > defaultFeedLimit {
		limit = defaultFeedLimit
	}
	logs, err := u.logRepo.ListVisible(ctx, filter, limit)
	if err != nil {
		return nil, err
	}
	// rejected entries must never reach the public feed, whatever the query returned
	visible := logs[:0]
	for _, l := range logs {
		if l.FeedVisible() {
			visible = append(visible, l)
		}
	}
	return visible, nil
}

// GetFeedFilterOptions lists the distinct stages and positions occurring in
// visible log entries.
func (u *LeaderboardUsecase) GetFeedFilterOptions(ctx context.Context) (*FilterOptions, error) {
	stages, err := u.logRepo.DistinctStages(ctx)
	if err != nil {
		return nil, err
	}
	positions, err := u.logRepo.DistinctPositions(ctx)
	if err != nil {
		return nil, err
	}
	return &FilterOptions{Stages: stages, Positions: positions}, nil
}

func aggregateRatings(ratings []*entities.Rating) map[uuid.UUID]*entities.DisplayRating {
	grouped := make(map[uuid.UUID][]*entities.Rating)
	for _, r := range ratings {
		grouped[r.InvestorID] = append(grouped[r.InvestorID], r)
	}
	out := make(map[uuid.UUID]*entities.DisplayRating, len(grouped))
	for id, group := range grouped {
		out[id] = displayRatingOf(group)
	}
	return out
}

func displayRatingOf(ratings []*entities.Rating) *entities.DisplayRating {
	if len(ratings) == 0 {
		return nil
	}
	sum := 0.0
	for _, r := range ratings {
		sum += r.Overall()
	}
	return &entities.DisplayRating{
		Overall: sum / float64(len(ratings)),
		Count:   len(ratings),
	}
}

func dimensionMeans(ratings []*entities.Rating) map[string]float64 {
	if len(ratings) == 0 {
		return nil
	}
	means := make(map[string]float64, len(entities.RatingDimensions))
	for _, dim := range entities.RatingDimensions {
		sum := 0
		for _, r := range ratings {
			sum += r.Score[dim]
		}
		means[dim] = float64(sum) / float64(len(ratings))
	}
	return means
}
