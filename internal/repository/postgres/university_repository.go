package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"uniFinder/business/finaid"
	"uniFinder/business/matching"
	"uniFinder/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UniversityRepository struct {
	DB *gorm.DB
}

var (
	_ finaid.UniversityRepository = (*UniversityRepository)(nil)
	_ matching.CatalogRepository  = (*UniversityRepository)(nil)
	_ matching.CatalogVersioner   = (*UniversityRepository)(nil)
)

func NewUniversityRepository(db *gorm.DB) *UniversityRepository {
	return &UniversityRepository{
		DB: db,
	}
}

func (r *UniversityRepository) Create(ctx context.Context, university *domain.University) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(university).Error; err != nil {
		return fmt.Errorf("failed to create university: %w", err)
	}

	return nil
}

func (r *UniversityRepository) FindByID(ctx context.Context, id uuid.UUID) (domain.University, error) {
	if err := ctx.Err(); err != nil {
		return domain.University{}, fmt.Errorf("context error: %w", err)
	}

	var university domain.University

	err := r.DB.WithContext(ctx).Where("id = ?", id).First(&university).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.University{}, domain.ErrUniversityNotFound
		}
		return domain.University{}, fmt.Errorf("failed to find university: %w", err)
	}

	return university, nil
}

// FindByIDs returns the universities that exist, in no particular order.
func (r *UniversityRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.University, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if len(ids) == 0 {
		return []domain.University{}, nil
	}

	var universities []domain.University
	if err := r.DB.WithContext(ctx).Where("id IN ?", ids).Find(&universities).Error; err != nil {
		return nil, fmt.Errorf("failed to find universities: %w", err)
	}

	return universities, nil
}

func (r *UniversityRepository) FindAll(ctx context.Context) ([]domain.University, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var universities []domain.University
	err := r.DB.WithContext(ctx).Order("name").Find(&universities).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find universities: %w", err)
	}

	return universities, nil
}

func (r *UniversityRepository) Update(ctx context.Context, university *domain.University) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	// every column is written so cleared attributes become NULL
	updateData := map[string]interface{}{
		"name":                        university.Name,
		"country":                     university.Country,
		"type":                        university.Type,
		"tuition_international":       university.TuitionInternational,
		"tuition_out_of_state":        university.TuitionOutOfState,
		"tuition_in_state":            university.TuitionInState,
		"avg_tuition_per_year":        university.AvgTuitionPerYear,
		"cost_of_living_est":          university.CostOfLivingEst,
		"avg_financial_aid_package":   university.AvgFinancialAidPackage,
		"percentage_receiving_aid":    university.PercentageReceivingAid,
		"need_blind_admission":        university.NeedBlindAdmission,
		"scholarships_international":  university.ScholarshipsInternational,
		"min_gpa":                     university.MinGPA,
		"required_tests":              university.RequiredTests,
		"post_grad_visa_strength":     university.PostGradVisaStrength,
		"post_study_work_visa_months": university.PostStudyWorkVisaMonths,
		"ranking_global":              university.RankingGlobal,
		"ranking_world":               university.RankingWorld,
		"updated_at":                  time.Now(),
	}

	result := r.DB.WithContext(ctx).Model(&domain.University{}).Where("id = ?", university.ID).Updates(updateData)
	if result.Error != nil {
		return fmt.Errorf("failed to update university: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrUniversityNotFound
	}

	return nil
}

func (r *UniversityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).Where("id = ?", id).Delete(&domain.University{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete university: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrUniversityNotFound
	}

	return nil
}

type catalogStats struct {
	Total  int64
	Latest *time.Time
}

// CatalogVersion combines row count and the latest update time.
func (r *UniversityRepository) CatalogVersion(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("context error: %w", err)
	}

	var stats catalogStats
	err := r.DB.WithContext(ctx).
		Model(&domain.University{}).
		Select("COUNT(*) AS total, MAX(updated_at) AS latest").
		Scan(&stats).Error
	if err != nil {
		return "", fmt.Errorf("failed to read catalog version: %w", err)
	}

	var latest int64
	if stats.Latest != nil {
		latest = stats.Latest.UnixNano()
	}

	return fmt.Sprintf("%d-%d", stats.Total, latest), nil
}
