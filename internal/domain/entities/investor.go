package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// FundInfo represents one fund raised by an investor
type FundInfo struct {
	Name string `json:"name"`
	Size string `json:"size"`
}

// NotableInvestment represents a highlighted portfolio company
type NotableInvestment struct {
	Name string `json:"name"`
	Note string `json:"note"`
}

// Investor represents a ratable venture fund. The descriptive fields are
// display-only; the backend never interprets them beyond filtering and search.
type Investor struct {
	ID                 uuid.UUID           `json:"id"`
	Slug               string              `json:"slug"`
	Name               string              `json:"name"`
	LogoURL            null.String         `json:"logoUrl,omitempty"`
	Partners           []string            `json:"partners"`
	AUM                string              `json:"aum"`
	FundsInfo          []FundInfo          `json:"fundsInfo"`
	HQLocation         string              `json:"hqLocation"`
	OtherLocations     []string            `json:"otherLocations"`
	InvestmentStage    string              `json:"investmentStage"`
	InvestmentGeo      []string            `json:"investmentGeo"`
	InvestmentFocus    []string            `json:"investmentFocus"`
	InvestmentStyle    string              `json:"investmentStyle"`
	History            null.String         `json:"history,omitempty"`
	InvestmentConcept  null.String         `json:"investmentConcept,omitempty"`
	NotableInvestments []NotableInvestment `json:"notableInvestments"`
	InvestorType       string              `json:"investorType"`
	Status             ApprovalStatus      `json:"status"`
	CreatedAt          time.Time           `json:"createdAt"`
	UpdatedAt          time.Time           `json:"updatedAt"`
}

// CreateInvestorInput represents input for creating an investor record
type CreateInvestorInput struct {
	Slug               string              `json:"slug"`
	Name               string              `json:"name" binding:"required"`
	LogoURL            string              `json:"logoUrl"`
	Partners           []string            `json:"partners"`
	AUM                string              `json:"aum"`
	FundsInfo          []FundInfo          `json:"fundsInfo"`
	HQLocation         string              `json:"hqLocation"`
	OtherLocations     []string            `json:"otherLocations"`
	InvestmentStage    string              `json:"investmentStage"`
	InvestmentGeo      []string            `json:"investmentGeo"`
	InvestmentFocus    []string            `json:"investmentFocus"`
	InvestmentStyle    string              `json:"investmentStyle"`
	History            string              `json:"history"`
	InvestmentConcept  string              `json:"investmentConcept"`
	NotableInvestments []NotableInvestment `json:"notableInvestments"`
	InvestorType       string              `json:"investorType"`
}

// InvestorFilter narrows investor listings
type InvestorFilter struct {
	InvestmentStage string
	HQLocation      string
	Query           string
	Statuses        []ApprovalStatus
}
