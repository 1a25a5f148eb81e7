package postgres

import (
	"context"
	"errors"
	"fmt"

	"uniFinder/business/finaid"
	"uniFinder/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type StudentProfileRepository struct {
	DB *gorm.DB
}

var _ finaid.ProfileRepository = (*StudentProfileRepository)(nil)

func NewStudentProfileRepository(db *gorm.DB) *StudentProfileRepository {
	return &StudentProfileRepository{DB: db}
}

func (r *StudentProfileRepository) FindByStudentID(ctx context.Context, studentID uuid.UUID) (domain.StudentProfile, error) {
	if err := ctx.Err(); err != nil {
		return domain.StudentProfile{}, fmt.Errorf("context error: %w", err)
	}

	var row domain.StudentProfile
	err := r.DB.WithContext(ctx).Where("student_id = ?", studentID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.StudentProfile{}, domain.ErrProfileNotFound
	}
	if err != nil {
		return domain.StudentProfile{}, fmt.Errorf("failed to find student profile: %w", err)
	}

	return row, nil
}

func (r *StudentProfileRepository) Upsert(ctx context.Context, profile *domain.StudentProfile) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	err := r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "student_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"gpa",
				"sat_score",
				"act_score",
				"family_income",
				"dependents",
				"international_student",
				"in_state",
				"first_generation",
				"special_talents",
				"updated_at",
			}),
		}).
		Create(profile).Error
	if err != nil {
		return fmt.Errorf("failed to upsert student profile: %w", err)
	}

	return nil
}
