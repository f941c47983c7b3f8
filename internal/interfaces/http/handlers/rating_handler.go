package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Erik-List/ranked-capital/internal/domain/entities"
	domainerrors "github.com/Erik-List/ranked-capital/internal/domain/errors"
	"github.com/Erik-List/ranked-capital/internal/interfaces/http/middleware"
	"github.com/Erik-List/ranked-capital/internal/interfaces/http/response"
)

type ratingService interface {
	SubmitRating(ctx context.Context, userID uuid.UUID, input *entities.SubmitRatingInput) (*entities.SubmitRatingResult, error)
	RetractRating(ctx context.Context, userID, ratingID uuid.UUID) error
	GetMyRatings(ctx context.Context, userID uuid.UUID) ([]*entities.Rating, error)
}

// RatingHandler handles rating endpoints
type RatingHandler struct {
	ratingService ratingService
}

// NewRatingHandler creates a new rating handler
func NewRatingHandler(ratingService ratingService) *RatingHandler {
	return &RatingHandler{ratingService: ratingService}
}

// SubmitRating creates or overwrites the caller's rating of an investor
// POST /api/v1/ratings
func (h *RatingHandler) SubmitRating(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthenticated("authentication required"))
		return
	}

	var input entities.SubmitRatingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	result, err := h.ratingService.SubmitRating(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}
	response.Success(c, status, result)
}

// GetMyRatings lists the caller's ratings across all statuses
// GET /api/v1/ratings/mine
func (h *RatingHandler) GetMyRatings(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthenticated("authentication required"))
		return
	}

	ratings, err := h.ratingService.GetMyRatings(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"ratings": ratings})
}

// RetractRating soft-deletes the caller's rating
// DELETE /api/v1/ratings/:id
func (h *RatingHandler) RetractRating(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthenticated("authentication required"))
		return
	}

	ratingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.Validation("id", "must be a valid UUID"))
		return
	}

	if err := h.ratingService.RetractRating(c.Request.Context(), userID, ratingID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "rating retracted"})
}
