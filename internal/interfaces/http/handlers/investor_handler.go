package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Erik-List/ranked-capital/internal/domain/entities"
	"github.com/Erik-List/ranked-capital/internal/interfaces/http/response"
)

type investorSearchService interface {
	SearchInvestors(ctx context.Context, query string, limit int) ([]*entities.Investor, error)
}

// InvestorHandler handles the public investor search
type InvestorHandler struct {
	searchService investorSearchService
}

// NewInvestorHandler creates a new investor handler
func NewInvestorHandler(searchService investorSearchService) *InvestorHandler {
	return &InvestorHandler{searchService: searchService}
}

// SearchInvestors matches approved investors by name prefix
// GET /api/v1/investors/search
func (h *InvestorHandler) SearchInvestors(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))

	investors, err := h.searchService.SearchInvestors(c.Request.Context(), c.Query("q"), limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"investors": investors})
}
