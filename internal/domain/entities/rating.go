package entities

import (
	"time"

	"github.com/google/uuid"
)

// Rating dimension keys. Every submitted score map must cover exactly this set.
const (
	DimensionIntegrity          = "integrity"
	DimensionOperationalSupport = "operational_support"
	DimensionFundraisingSupport = "fundraising_support"
	DimensionResponsiveness     = "responsiveness"
)

// RatingDimensions lists the fixed dimension key set in display order
var RatingDimensions = []string{
	DimensionIntegrity,
	DimensionOperationalSupport,
	DimensionFundraisingSupport,
	DimensionResponsiveness,
}

// Score bounds (inclusive)
const (
	ScoreMin = 1
	ScoreMax = 10
)

// CompanyStages lists the accepted stage_of_company values
var CompanyStages = []string{"pre-seed", "seed", "series a", "series b", "other"}

// FounderPositions lists the accepted position_of_founder values
var FounderPositions = []string{"CEO", "CTO", "COO", "other"}

// Rating represents one founder's evaluation of one investor. At most one
// rating exists per (user, investor) pair; a resubmission updates it in place
// and re-enters moderation.
type Rating struct {
	ID                uuid.UUID         `json:"id"`
	UserID            uuid.UUID         `json:"userId"`
	InvestorID        uuid.UUID         `json:"investorId"`
	Score             map[string]int    `json:"score"`
	Comments          map[string]string `json:"comments,omitempty"`
	StageOfCompany    string            `json:"stageOfCompany"`
	PositionOfFounder string            `json:"positionOfFounder"`
	Status            ApprovalStatus    `json:"status"`
	CreatedAt         time.Time         `json:"createdAt"`
	UpdatedAt         time.Time         `json:"updatedAt"`
}

// Overall returns the mean of the dimension scores. It is derived on read and
// never stored, so it cannot drift from the score map.
func (r *Rating) Overall() float64 {
	if len(r.Score) == 0 {
		return 0
	}
	sum := 0
	for _, v := range r.Score {
		sum += v
	}
	return float64(sum) / float64(len(r.Score))
}

// SubmitRatingInput represents input for submitting or editing a rating
type SubmitRatingInput struct {
	InvestorID        string            `json:"investorId" binding:"required"`
	Score             map[string]int    `json:"score" binding:"required"`
	Comments          map[string]string `json:"comments"`
	StageOfCompany    string            `json:"stageOfCompany" binding:"required"`
	PositionOfFounder string            `json:"positionOfFounder" binding:"required"`
}

// SubmitRatingResult represents the outcome of a rating submission
type SubmitRatingResult struct {
	RatingID uuid.UUID      `json:"ratingId"`
	Status   ApprovalStatus `json:"status"`
	Overall  float64        `json:"overall"`
	Created  bool           `json:"created"`
}
