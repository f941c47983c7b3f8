package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Erik-List/ranked-capital/internal/domain/entities"
	"github.com/Erik-List/ranked-capital/internal/interfaces/http/response"
	"github.com/Erik-List/ranked-capital/internal/usecases"
)

type leaderboardService interface {
	GetInvestorRanking(ctx context.Context, filter entities.RankingFilter) ([]*entities.RankedInvestor, error)
	GetInvestorProfile(ctx context.Context, slug string) (*entities.InvestorProfile, error)
	GetRankingFilterOptions(ctx context.Context) (*usecases.FilterOptions, error)
	GetActivityFeed(ctx context.Context, filter entities.LogFilter, limit int) ([]*entities.Log, error)
	GetFeedFilterOptions(ctx context.Context) (*usecases.FilterOptions, error)
}

// LeaderboardHandler handles the public read endpoints: the ranking,
// investor profiles and the activity feed.
type LeaderboardHandler struct {
	leaderboardService leaderboardService
}

// NewLeaderboardHandler creates a new leaderboard handler
func NewLeaderboardHandler(leaderboardService leaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{leaderboardService: leaderboardService}
}

// GetLeaderboard returns the ranked investor list
// GET /api/v1/leaderboard
func (h *LeaderboardHandler) GetLeaderboard(c *gin.Context) {
	filter := entities.RankingFilter{
		InvestmentStage: c.Query("stage"),
		HQLocation:      c.Query("location"),
		Query:           c.Query("q"),
	}

	ranking, err := h.leaderboardService.GetInvestorRanking(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"leaderboard": ranking})
}

// GetLeaderboardFilters returns the distinct filter values for the ranking
// GET /api/v1/leaderboard/filters
func (h *LeaderboardHandler) GetLeaderboardFilters(c *gin.Context) {
	opts, err := h.leaderboardService.GetRankingFilterOptions(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, opts)
}

// GetInvestorProfile returns an approved investor's public page data
// GET /api/v1/investors/:slug
func (h *LeaderboardHandler) GetInvestorProfile(c *gin.Context) {
	profile, err := h.leaderboardService.GetInvestorProfile(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, profile)
}

// GetActivityFeed returns the newest visible rating events
// GET /api/v1/logs
func (h *LeaderboardHandler) GetActivityFeed(c *gin.Context) {
	filter := entities.LogFilter{
		StageOfCompany:    c.Query("stage"),
		PositionOfFounder: c.Query("position"),
	}
	limit, _ := strconv.Atoi(c.Query("limit"))

	logs, err := h.leaderboardService.GetActivityFeed(c.Request.Context(), filter, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"logs": logs})
}

// GetFeedFilters returns the distinct filter values for the activity feed
// GET /api/v1/logs/filters
func (h *LeaderboardHandler) GetFeedFilters(c *gin.Context) {
	opts, err := h.leaderboardService.GetFeedFilterOptions(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, opts)
}
