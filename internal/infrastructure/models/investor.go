package models

import (
	"time"

	"github.com/google/uuid"
)

// Investor persists list and object fields as serialized JSON text so the
// schema stays portable between postgres (jsonb) and the sqlite test driver.
type Investor struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	Slug               string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Name               string    `gorm:"type:varchar(255);not null"`
	LogoURL            *string   `gorm:"type:varchar(512)"`
	Partners           string    `gorm:"type:jsonb;default:'[]'"`
	AUM                string    `gorm:"type:varchar(100)"`
	FundsInfo          string    `gorm:"type:jsonb;default:'[]'"`
	HQLocation         string    `gorm:"type:varchar(255);index"`
	OtherLocations     string    `gorm:"type:jsonb;default:'[]'"`
	InvestmentStage    string    `gorm:"type:varchar(100);index"`
	InvestmentGeo      string    `gorm:"type:jsonb;default:'[]'"`
	InvestmentFocus    string    `gorm:"type:jsonb;default:'[]'"`
	InvestmentStyle    string    `gorm:"type:varchar(255)"`
	History            *string   `gorm:"type:text"`
	InvestmentConcept  *string   `gorm:"type:text"`
	NotableInvestments string    `gorm:"type:jsonb;default:'[]'"`
	InvestorType       string    `gorm:"type:varchar(100)"`
	Status             string    `gorm:"type:varchar(50);not null;index;default:'PENDING_APPROVAL'"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
