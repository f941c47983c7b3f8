package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Erik-List/ranked-capital/internal/domain/entities"
	domainerrors "github.com/Erik-List/ranked-capital/internal/domain/errors"
	"github.com/Erik-List/ranked-capital/internal/infrastructure/models"
)

// RatingRepository implements rating data operations
type RatingRepository struct {
	db *gorm.DB
}

// NewRatingRepository creates a new rating repository
func NewRatingRepository(db *gorm.DB) *RatingRepository {
	return &RatingRepository{db: db}
}

// Create creates a new rating. A unique index on (user_id, investor_id)
// rejects a concurrent duplicate as a conflict.
func (r *RatingRepository) Create(ctx context.Context, rating *entities.Rating) error {
	if rating.ID == uuid.Nil {
		rating.ID = uuid.New()
	}
	now := time.Now()
	if rating.CreatedAt.IsZero() {
		rating.CreatedAt = now
		rating.UpdatedAt = now
	}

	m, err := ratingToModel(rating)
	if err != nil {
		return err
	}

	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return translateWriteError(err)
	}
	rating.ID = m.ID
	return nil
}

// Update overwrites the founder-editable fields and the moderation status
func (r *RatingRepository) Update(ctx context.Context, rating *entities.Rating) error {
	m, err := ratingToModel(rating)
	if err != nil {
		return err
	}
	m.UpdatedAt = time.Now()
	rating.UpdatedAt = m.UpdatedAt

	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).Model(&models.Rating{}).
		Where("id = ?", rating.ID).
		Updates(map[string]interface{}{
			"score":               m.Score,
			"comments":            m.Comments,
			"stage_of_company":    m.StageOfCompany,
			"position_of_founder": m.PositionOfFounder,
			"status":              m.Status,
			"updated_at":          m.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// GetByID gets a rating by ID
func (r *RatingRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Rating, error) {
	var m models.Rating
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return ratingToEntity(&m)
}

// GetByUserAndInvestor gets the single rating for a (user, investor) pair,
// regardless of moderation status.
func (r *RatingRepository) GetByUserAndInvestor(ctx context.Context, userID, investorID uuid.UUID) (*entities.Rating, error) {
	var m models.Rating
	db := GetDB(ctx, r.db)
	err := db.WithContext(ctx).
		Where("user_id = ? AND investor_id = ?", userID, investorID).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return ratingToEntity(&m)
}

// ListByUser lists a founder's ratings, newest first
func (r *RatingRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entities.Rating, error) {
	var ms []models.Rating
	db := GetDB(ctx, r.db)
	err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	return ratingsToEntities(ms)
}

// ListByInvestor lists an investor's ratings with the given status
func (r *RatingRepository) ListByInvestor(ctx context.Context, investorID uuid.UUID, status entities.ApprovalStatus) ([]*entities.Rating, error) {
	var ms []models.Rating
	db := GetDB(ctx, r.db)
	err := db.WithContext(ctx).
		Where("investor_id = ? AND status = ?", investorID, string(status)).
		Order("created_at DESC").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	return ratingsToEntities(ms)
}

// ListByInvestorIDs lists ratings with the given status across a set of
// investors, for aggregate computation in one query.
func (r *RatingRepository) ListByInvestorIDs(ctx context.Context, investorIDs []uuid.UUID, status entities.ApprovalStatus) ([]*entities.Rating, error) {
	if len(investorIDs) == 0 {
		return nil, nil
	}
	var ms []models.Rating
	db := GetDB(ctx, r.db)
	err := db.WithContext(ctx).
		Where("investor_id IN ? AND status = ?", investorIDs, string(status)).
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	return ratingsToEntities(ms)
}

// ListByStatus lists ratings for the moderation queue with pagination
func (r *RatingRepository) ListByStatus(ctx context.Context, status entities.ApprovalStatus, limit, offset int) ([]*entities.Rating, int, error) {
	db := GetDB(ctx, r.db)

	var total int64
	if err := db.WithContext(ctx).Model(&models.Rating{}).
		Where("status = ?", string(status)).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ms []models.Rating
	err := db.WithContext(ctx).
		Where("status = ?", string(status)).
		Order("created_at ASC").
		Limit(limit).Offset(offset).
		Find(&ms).Error
	if err != nil {
		return nil, 0, err
	}

	ratings, err := ratingsToEntities(ms)
	if err != nil {
		return nil, 0, err
	}
	return ratings, int(total), nil
}

// UpdateStatus moves a rating to a new moderation status
func (r *RatingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.ApprovalStatus) error {
	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).Model(&models.Rating{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     string(status),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func ratingToModel(e *entities.Rating) (*models.Rating, error) {
	score, err := marshalJSON(e.Score)
	if err != nil {
		return nil, err
	}
	comments, err := marshalJSON(e.Comments)
	if err != nil {
		return nil, err
	}
	return &models.Rating{
		ID:                e.ID,
		UserID:            e.UserID,
		InvestorID:        e.InvestorID,
		Score:             score,
		Comments:          comments,
		StageOfCompany:    e.StageOfCompany,
		PositionOfFounder: e.PositionOfFounder,
		Status:            string(e.Status),
		CreatedAt:         e.CreatedAt,
		UpdatedAt:         e.UpdatedAt,
	}, nil
}

func ratingToEntity(m *models.Rating) (*entities.Rating, error) {
	e := &entities.Rating{
		ID:                m.ID,
		UserID:            m.UserID,
		InvestorID:        m.InvestorID,
		Score:             map[string]int{},
		Comments:          map[string]string{},
		StageOfCompany:    m.StageOfCompany,
		PositionOfFounder: m.PositionOfFounder,
		Status:            entities.ApprovalStatus(m.Status),
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
	if err := unmarshalJSON(m.Score, &e.Score); err != nil {
		return nil, err
	}
	if err := unmarshalJSON(m.Comments, &e.Comments); err != nil {
		return nil, err
	}
	return e, nil
}

func ratingsToEntities(ms []models.Rating) ([]*entities.Rating, error) {
	ratings := make([]*entities.Rating, 0, len(ms))
	for i := range ms {
		e, err := ratingToEntity(&ms[i])
		if err != nil {
			return nil, err
		}
		ratings = append(ratings, e)
	}
	return ratings, nil
}
