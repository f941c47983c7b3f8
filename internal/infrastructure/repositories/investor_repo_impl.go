package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"

	"github.com/Erik-List/ranked-capital/internal/domain/entities"
	domainerrors "github.com/Erik-List/ranked-capital/internal/domain/errors"
	"github.com/Erik-List/ranked-capital/internal/infrastructure/models"
)

// InvestorRepository implements investor data operations
type InvestorRepository struct {
	db *gorm.DB
}

// NewInvestorRepository creates a new investor repository
func NewInvestorRepository(db *gorm.DB) *InvestorRepository {
	return &InvestorRepository{db: db}
}

// Create creates a new investor
func (r *InvestorRepository) Create(ctx context.Context, investor *entities.Investor) error {
	if investor.ID == uuid.Nil {
		investor.ID = uuid.New()
	}
	now := time.Now()
	if investor.CreatedAt.IsZero() {
		investor.CreatedAt = now
		investor.UpdatedAt = now
	}

	m, err := investorToModel(investor)
	if err != nil {
		return err
	}

	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return translateWriteError(err)
	}
	investor.ID = m.ID
	return nil
}

// Update overwrites the descriptive fields of an investor
func (r *InvestorRepository) Update(ctx context.Context, investor *entities.Investor) error {
	m, err := investorToModel(investor)
	if err != nil {
		return err
	}
	m.UpdatedAt = time.Now()

	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).Model(&models.Investor{}).
		Where("id = ?", investor.ID).
		Updates(map[string]interface{}{
			"name":                m.Name,
			"logo_url":            m.LogoURL,
			"partners":            m.Partners,
			"aum":                 m.AUM,
			"funds_info":          m.FundsInfo,
			"hq_location":         m.HQLocation,
			"other_locations":     m.OtherLocations,
			"investment_stage":    m.InvestmentStage,
			"investment_geo":      m.InvestmentGeo,
			"investment_focus":    m.InvestmentFocus,
			"investment_style":    m.InvestmentStyle,
			"history":             m.History,
			"investment_concept":  m.InvestmentConcept,
			"notable_investments": m.NotableInvestments,
			"investor_type":       m.InvestorType,
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

// GetByID gets an investor by ID
func (r *InvestorRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Investor, error) {
	var m models.Investor
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return investorToEntity(&m)
}

// GetBySlug gets an investor by its URL slug
func (r *InvestorRepository) GetBySlug(ctx context.Context, slug string) (*entities.Investor, error) {
	var m models.Investor
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Where("slug = ?", slug).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return investorToEntity(&m)
}

// List lists investors matching the filter, ordered by name for stable output
func (r *InvestorRepository) List(ctx context.Context, filter entities.InvestorFilter) ([]*entities.Investor, error) {
	db := GetDB(ctx, r.db)
	query := db.WithContext(ctx).Model(&models.Investor{}).Order("name ASC")

	if len(filter.Statuses) > 0 {
		statuses := make([]string, 0, len(filter.Statuses))
		for _, s := range filter.Statuses {
			statuses = append(statuses, string(s))
		}
		query = query.Where("status IN ?", statuses)
	}
	if filter.InvestmentStage != "" {
		query = query.Where("investment_stage = ?", filter.InvestmentStage)
	}
	if filter.HQLocation != "" {
		query = query.Where("hq_location = ?", filter.HQLocation)
	}
	if filter.Query != "" {
		term := "%" + strings.ToLower(filter.Query) + "%"
		query = query.Where(
			"LOWER(name) LIKE ? OR LOWER(hq_location) LIKE ? OR LOWER(investment_focus) LIKE ?",
			term, term, term,
		)
	}

	var ms []models.Investor
	if err := query.Find(&ms).Error; err != nil {
		return nil, err
	}

	investors := make([]*entities.Investor, 0, len(ms))
	for i := range ms {
		inv, err := investorToEntity(&ms[i])
		if err != nil {
			return nil, err
		}
		investors = append(investors, inv)
	}
	return investors, nil
}

// Search finds approved investors by name substring for the rating form picker
func (r *InvestorRepository) Search(ctx context.Context, query string, limit int) ([]*entities.Investor, error) {
	db := GetDB(ctx, r.db)
	term := "%" + strings.ToLower(query) + "%"

	var ms []models.Investor
	err := db.WithContext(ctx).
		Where("status = ?", string(entities.StatusApproved)).
		Where("LOWER(name) LIKE ?", term).
		Order("name ASC").
		Limit(limit).
		Find(&ms).Error
	if err != nil {
		return nil, err
	}

	investors := make([]*entities.Investor, 0, len(ms))
	for i := range ms {
		inv, err := investorToEntity(&ms[i])
		if err != nil {
			return nil, err
		}
		investors = append(investors, inv)
	}
	return investors, nil
}

// UpdateStatus moves an investor to a new moderation status
func (r *InvestorRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.ApprovalStatus) error {
	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).Model(&models.Investor{}).
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

// DistinctStages lists the investment stages of approved investors
func (r *InvestorRepository) DistinctStages(ctx context.Context) ([]string, error) {
	return r.distinctColumn(ctx, "investment_stage")
}

// DistinctLocations lists the HQ locations of approved investors
func (r *InvestorRepository) DistinctLocations(ctx context.Context) ([]string, error) {
	return r.distinctColumn(ctx, "hq_location")
}

func (r *InvestorRepository) distinctColumn(ctx context.Context, column string) ([]string, error) {
	db := GetDB(ctx, r.db)
	var values []string
	err := db.WithContext(ctx).Model(&models.Investor{}).
		Where("status = ?", string(entities.StatusApproved)).
		Where(column+" <> ''").
		Distinct(column).
		Order(column + " ASC").
		Pluck(column, &values).Error
	if err != nil {
		return nil, err
	}
	return values, nil
}

func investorToModel(e *entities.Investor) (*models.Investor, error) {
	partners, err := marshalJSON(e.Partners)
	if err != nil {
		return nil, err
	}
	fundsInfo, err := marshalJSON(e.FundsInfo)
	if err != nil {
		return nil, err
	}
	otherLocations, err := marshalJSON(e.OtherLocations)
	if err != nil {
		return nil, err
	}
	geo, err := marshalJSON(e.InvestmentGeo)
	if err != nil {
		return nil, err
	}
	focus, err := marshalJSON(e.InvestmentFocus)
	if err != nil {
		return nil, err
	}
	notable, err := marshalJSON(e.NotableInvestments)
	if err != nil {
		return nil, err
	}

	return &models.Investor{
		ID:                 e.ID,
		Slug:               e.Slug,
		Name:               e.Name,
		LogoURL:            e.LogoURL.Ptr(),
		Partners:           partners,
		AUM:                e.AUM,
		FundsInfo:          fundsInfo,
		HQLocation:         e.HQLocation,
		OtherLocations:     otherLocations,
		InvestmentStage:    e.InvestmentStage,
		InvestmentGeo:      geo,
		InvestmentFocus:    focus,
		InvestmentStyle:    e.InvestmentStyle,
		History:            e.History.Ptr(),
		InvestmentConcept:  e.InvestmentConcept.Ptr(),
		NotableInvestments: notable,
		InvestorType:       e.InvestorType,
		Status:             string(e.Status),
		CreatedAt:          e.CreatedAt,
		UpdatedAt:          e.UpdatedAt,
	}, nil
}

func investorToEntity(m *models.Investor) (*entities.Investor, error) {
	e := &entities.Investor{
		ID:                m.ID,
		Slug:              m.Slug,
		Name:              m.Name,
		LogoURL:           null.StringFromPtr(m.LogoURL),
		AUM:               m.AUM,
		HQLocation:        m.HQLocation,
		InvestmentStage:   m.InvestmentStage,
		InvestmentStyle:   m.InvestmentStyle,
		History:           null.StringFromPtr(m.History),
		InvestmentConcept: null.StringFromPtr(m.InvestmentConcept),
		InvestorType:      m.InvestorType,
		Status:            entities.ApprovalStatus(m.Status),
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}

	if err := unmarshalJSON(m.Partners, &e.Partners); err != nil {
		return nil, err
	}
	if err := unmarshalJSON(m.FundsInfo, &e.FundsInfo); err != nil {
		return nil, err
	}
	if err := unmarshalJSON(m.OtherLocations, &e.OtherLocations); err != nil {
		return nil, err
	}
	if err := unmarshalJSON(m.InvestmentGeo, &e.InvestmentGeo); err != nil {
		return nil, err
	}
	if err := unmarshalJSON(m.InvestmentFocus, &e.InvestmentFocus); err != nil {
		return nil, err
	}
	if err := unmarshalJSON(m.NotableInvestments, &e.NotableInvestments); err != nil {
		return nil, err
	}
	return e, nil
}

func marshalJSON(v interface{}) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func unmarshalJSON(raw string, dst interface{}) error {
	if raw == "" {
		return nil
	}
	return json.Unmarshal([]byte(raw), dst)
}
