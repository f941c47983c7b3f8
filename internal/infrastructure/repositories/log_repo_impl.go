package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Erik-List/ranked-capital/internal/domain/entities"
	"github.com/Erik-List/ranked-capital/internal/infrastructure/models"
)

// LogRepository implements activity log operations. Events are append-only;
// only the denormalized status column is ever rewritten.
type LogRepository struct {
	db *gorm.DB
}

// NewLogRepository creates a new log repository
func NewLogRepository(db *gorm.DB) *LogRepository {
	return &LogRepository{db: db}
}

// Create appends a log entry
func (r *LogRepository) Create(ctx context.Context, log *entities.Log) error {
	if log.ID == uuid.Nil {
		log.ID = uuid.New()
	}
	if log.Timestamp.IsZero() {
		log.Timestamp = time.Now()
	}

	m := &models.Log{
		ID:                log.ID,
		RatingID:          log.RatingID,
		Timestamp:         log.Timestamp,
		LogType:           string(log.LogType),
		Message:           log.Message,
		StageOfCompany:    log.StageOfCompany,
		PositionOfFounder: log.PositionOfFounder,
		Status:            string(log.Status),
	}

	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return translateWriteError(err)
	}
	log.ID = m.ID
	return nil
}

// UpdateStatusByRating re-syncs the status of all entries belonging to a
// rating. Zero affected rows is not an error: a first submission has its
// log created with the right status already.
func (r *LogRepository) UpdateStatusByRating(ctx context.Context, ratingID uuid.UUID, status entities.ApprovalStatus) error {
	db := GetDB(ctx, r.db)
	return db.WithContext(ctx).Model(&models.Log{}).
		Where("rating_id = ?", ratingID).
		Update("status", string(status)).Error
}

// ListByRating lists all lifecycle entries for one rating, oldest first
func (r *LogRepository) ListByRating(ctx context.Context, ratingID uuid.UUID) ([]*entities.Log, error) {
	var ms []models.Log
	db := GetDB(ctx, r.db)
	err := db.WithContext(ctx).
		Where("rating_id = ?", ratingID).
		Order("timestamp ASC").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	return logsToEntities(ms), nil
}

// ListVisible lists feed-visible entries (approved and pending, never
// rejected) matching the filter, newest first.
func (r *LogRepository) ListVisible(ctx context.Context, filter entities.LogFilter, limit int) ([]*entities.Log, error) {
	db := GetDB(ctx, r.db)
	query := db.WithContext(ctx).Model(&models.Log{}).
		Where("status IN ?", []string{
			string(entities.StatusApproved),
			string(entities.StatusPendingApproval),
		}).
		Order("timestamp DESC")

	if filter.StageOfCompany != "" {
		query = query.Where("stage_of_company = ?", filter.StageOfCompany)
	}
	if filter.PositionOfFounder != "" {
		query = query.Where("position_of_founder = ?", filter.PositionOfFounder)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var ms []models.Log
	if err := query.Find(&ms).Error; err != nil {
		return nil, err
	}
	return logsToEntities(ms), nil
}

// CountByRating counts lifecycle entries for one rating
func (r *LogRepository) CountByRating(ctx context.Context, ratingID uuid.UUID) (int, error) {
	var total int64
	db := GetDB(ctx, r.db)
	err := db.WithContext(ctx).Model(&models.Log{}).
		Where("rating_id = ?", ratingID).
		Count(&total).Error
	if err != nil {
		return 0, err
	}
	return int(total), nil
}

// DistinctStages lists stage values present in feed-visible logs
func (r *LogRepository) DistinctStages(ctx context.Context) ([]string, error) {
	return r.distinctColumn(ctx, "stage_of_company")
}

// DistinctPositions lists position values present in feed-visible logs
func (r *LogRepository) DistinctPositions(ctx context.Context) ([]string, error) {
	return r.distinctColumn(ctx, "position_of_founder")
}

func (r *LogRepository) distinctColumn(ctx context.Context, column string) ([]string, error) {
	db := GetDB(ctx, r.db)
	var values []string
	err := db.WithContext(ctx).Model(&models.Log{}).
		Where("status IN ?", []string{
			string(entities.StatusApproved),
			string(entities.StatusPendingApproval),
		}).
		Where(column+" <> ''").
		Distinct(column).
		Order(column + " ASC").
		Pluck(column, &values).Error
	if err != nil {
		return nil, err
	}
	return values, nil
}

func logsToEntities(ms []models.Log) []*entities.Log {
	logs := make([]*entities.Log, 0, len(ms))
	for i := range ms {
		m := ms[i]
		logs = append(logs, &entities.Log{
			ID:                m.ID,
			RatingID:          m.RatingID,
			Timestamp:         m.Timestamp,
			LogType:           entities.LogType(m.LogType),
			Message:           m.Message,
			StageOfCompany:    m.StageOfCompany,
			PositionOfFounder: m.PositionOfFounder,
			Status:            entities.ApprovalStatus(m.Status),
		})
	}
	return logs
}
