package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Erik-List/ranked-capital/internal/domain/entities"
	domainerrors "github.com/Erik-List/ranked-capital/internal/domain/errors"
	"github.com/Erik-List/ranked-capital/internal/interfaces/http/middleware"
	"github.com/Erik-List/ranked-capital/internal/interfaces/http/response"
)

const (
	defaultModerationPageSize = 20
	maxModerationPageSize     = 100
)

type investorAdminService interface {
	CreateInvestor(ctx context.Context, actor *entities.User, input *entities.CreateInvestorInput) (*entities.Investor, error)
	UpdateInvestor(ctx context.Context, actor *entities.User, id uuid.UUID, input *entities.CreateInvestorInput) (*entities.Investor, error)
}

type moderationService interface {
	TransitionRatingStatus(ctx context.Context, actor *entities.User, ratingID uuid.UUID, newStatus entities.ApprovalStatus) error
	TransitionInvestorStatus(ctx context.Context, actor *entities.User, investorID uuid.UUID, newStatus entities.ApprovalStatus) error
	ListRatingsByStatus(ctx context.Context, actor *entities.User, status entities.ApprovalStatus, limit, offset int) ([]*entities.Rating, int, error)
	ListInvestorsByStatus(ctx context.Context, actor *entities.User, statuses []entities.ApprovalStatus) ([]*entities.Investor, error)
}

// AdminHandler handles moderation and investor management endpoints
type AdminHandler struct {
	investorService   investorAdminService
	moderationService moderationService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(investorService investorAdminService, moderationService moderationService) *AdminHandler {
	return &AdminHandler{
		investorService:   investorService,
		moderationService: moderationService,
	}
}

// CreateInvestor creates a new investor record, pending approval
// POST /api/v1/admin/investors
func (h *AdminHandler) CreateInvestor(c *gin.Context) {
	actor, ok := middleware.Actor(c)
	if !ok {
		response.Error(c, domainerrors.Unauthenticated("authentication required"))
		return
	}

	var input entities.CreateInvestorInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	investor, err := h.investorService.CreateInvestor(c.Request.Context(), actor, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, investor)
}

// UpdateInvestor updates an investor's descriptive fields
// PUT /api/v1/admin/investors/:id
func (h *AdminHandler) UpdateInvestor(c *gin.Context) {
	actor, ok := middleware.Actor(c)
	if !ok {
		response.Error(c, domainerrors.Unauthenticated("authentication required"))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.Validation("id", "must be a valid UUID"))
		return
	}

	var input entities.CreateInvestorInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	investor, err := h.investorService.UpdateInvestor(c.Request.Context(), actor, id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, investor)
}

// ListInvestors lists investors for review, optionally narrowed by status
// GET /api/v1/admin/investors
func (h *AdminHandler) ListInvestors(c *gin.Context) {
	actor, ok := middleware.Actor(c)
	if !ok {
		response.Error(c, domainerrors.Unauthenticated("authentication required"))
		return
	}

	var statuses []entities.ApprovalStatus
	if raw := c.Query("status"); raw != "" {
		for _, s := range strings.Split(raw, ",") {
			statuses = append(statuses, entities.ApprovalStatus(s))
		}
	}

	investors, err := h.moderationService.ListInvestorsByStatus(c.Request.Context(), actor, statuses)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"investors": investors})
}

// UpdateInvestorStatus moves an investor through moderation
// PUT /api/v1/admin/investors/:id/status
func (h *AdminHandler) UpdateInvestorStatus(c *gin.Context) {
	actor, ok := middleware.Actor(c)
	if !ok {
		response.Error(c, domainerrors.Unauthenticated("authentication required"))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.Validation("id", "must be a valid UUID"))
		return
	}

	var input struct {
		Status entities.ApprovalStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	if err := h.moderationService.TransitionInvestorStatus(c.Request.Context(), actor, id, input.Status); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"id": id, "status": input.Status})
}

// ListRatings pages through the rating moderation queue
// GET /api/v1/admin/ratings
func (h *AdminHandler) ListRatings(c *gin.Context) {
	actor, ok := middleware.Actor(c)
	if !ok {
		response.Error(c, domainerrors.Unauthenticated("authentication required"))
		return
	}

	status := entities.ApprovalStatus(c.DefaultQuery("status", string(entities.StatusPendingApproval)))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultModerationPageSize)))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit <= 0 || limit > maxModerationPageSize {
		limit = defaultModerationPageSize
	}
	if offset < 0 {
		offset = 0
	}

	ratings, total, err := h.moderationService.ListRatingsByStatus(c.Request.Context(), actor, status, limit, offset)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"ratings": ratings,
		"total":   total,
		"limit":   limit,
		"offset":  offset,
	})
}

// UpdateRatingStatus moves a rating through moderation
// PUT /api/v1/admin/ratings/:id/status
func (h *AdminHandler) UpdateRatingStatus(c *gin.Context) {
	actor, ok := middleware.Actor(c)
	if !ok {
		response.Error(c, domainerrors.Unauthenticated("authentication required"))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.Validation("id", "must be a valid UUID"))
		return
	}

	var input struct {
		Status entities.ApprovalStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	if err := h.moderationService.TransitionRatingStatus(c.Request.Context(), actor, id, input.Status); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"id": id, "status": input.Status})
}
