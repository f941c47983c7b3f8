package entities

import (
	"time"

	"github.com/google/uuid"
)

// LogType represents a rating lifecycle transition
type LogType string

const (
	LogTypeNew      LogType = "NEW"
	LogTypeUpdate   LogType = "UPDATE"
	LogTypeDeletion LogType = "DELETION"
)

// Log represents a record of one rating lifecycle transition. Stage and
// position are copied from the rating at event time so the feed renders
// without joins. The event fields are immutable; only the denormalized
// status is re-synced when the rating moves through moderation, so the
// feed never surfaces entries of a rejected rating.
type Log struct {
	ID                uuid.UUID      `json:"id"`
	RatingID          uuid.UUID      `json:"ratingId"`
	Timestamp         time.Time      `json:"timestamp"`
	LogType           LogType        `json:"logType"`
	Message           string         `json:"message"`
	StageOfCompany    string         `json:"stageOfCompany"`
	PositionOfFounder string         `json:"positionOfFounder"`
	Status            ApprovalStatus `json:"status"`
}

// FeedVisible reports whether the log may appear in the public activity feed.
// Pending items surface (marked pending) for transparency; rejected never do.
func (l *Log) FeedVisible() bool {
	return l.Status == StatusApproved || l.Status == StatusPendingApproval
}

// LogFilter narrows the activity feed
type LogFilter struct {
	StageOfCompany    string
	PositionOfFounder string
}
