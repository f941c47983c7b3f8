package models

import (
	"time"

	"github.com/google/uuid"
)

type Rating struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	UserID            uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_ratings_user_investor"`
	InvestorID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_ratings_user_investor;index"`
	Score             string    `gorm:"type:jsonb;not null"`
	Comments          string    `gorm:"type:jsonb;default:'{}'"`
	StageOfCompany    string    `gorm:"type:varchar(50);not null"`
	PositionOfFounder string    `gorm:"type:varchar(50);not null"`
	Status            string    `gorm:"type:varchar(50);not null;index"`
	CreatedAt         time.Time
	UpdatedAt         time.Time

	User     User     `gorm:"foreignKey:UserID"`
	Investor Investor `gorm:"foreignKey:InvestorID"`
}

type Log struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	RatingID          uuid.UUID `gorm:"type:uuid;not null;index"`
	Timestamp         time.Time `gorm:"not null;index"`
	LogType           string    `gorm:"type:varchar(50);not null"`
	Message           string    `gorm:"type:text"`
	StageOfCompany    string    `gorm:"type:varchar(50);index"`
	PositionOfFounder string    `gorm:"type:varchar(50);index"`
	Status            string    `gorm:"type:varchar(50);not null;index"`

	Rating Rating `gorm:"foreignKey:RatingID"`
}
