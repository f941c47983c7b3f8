package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	ExternalRef  *string   `gorm:"type:varchar(255);uniqueIndex"`
	Email        *string   `gorm:"type:varchar(255);uniqueIndex"`
	PasswordHash string    `gorm:"type:varchar(255)"`
	Role         string    `gorm:"type:varchar(50);not null;default:'FOUNDER'"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
