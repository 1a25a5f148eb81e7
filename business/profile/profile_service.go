package profile

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"uniFinder/business/finaid"
	"uniFinder/domain"
	"uniFinder/pkg/logger"

	"github.com/google/uuid"
)

var ErrInvalidProfile = errors.New("invalid student profile")

type ProfileRepository interface {
	FindByStudentID(ctx context.Context, studentID uuid.UUID) (domain.StudentProfile, error)
	Upsert(ctx context.Context, profile *domain.StudentProfile) error
}

type Service struct {
	repo ProfileRepository
}

func NewService(repo ProfileRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetProfile(ctx context.Context, studentID uuid.UUID) (*domain.StudentProfile, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if studentID == uuid.Nil {
		return nil, fmt.Errorf("%w: student_id is required", ErrInvalidProfile)
	}

	p, err := s.repo.FindByStudentID(ctx, studentID)
	if err != nil {
		if !errors.Is(err, domain.ErrProfileNotFound) {
			logger.Error("failed to load student profile", "student_id", studentID, "error", err)
		}
		return nil, err
	}

	return &p, nil
}

func (s *Service) UpsertProfile(ctx context.Context, p *domain.StudentProfile) (*domain.StudentProfile, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if err := Validate(p); err != nil {
		return nil, err
	}

	p.UpdatedAt = time.Now()
	if err := s.repo.Upsert(ctx, p); err != nil {
		logger.Error("failed to upsert student profile", "student_id", p.StudentID, "error", err)
		return nil, fmt.Errorf("failed to save student profile: %w", err)
	}

	logger.Info("student profile saved", "student_id", p.StudentID)

	// An upsert over an existing row keeps its created_at, which p does not
	// reflect, so answer with the stored row.
	stored, err := s.repo.FindByStudentID(ctx, p.StudentID)
	if err != nil {
		logger.Error("failed to reload student profile", "student_id", p.StudentID, "error", err)
		return nil, fmt.Errorf("failed to reload student profile: %w", err)
	}

	return &stored, nil
}

// Validate rejects values the predictor would otherwise have to guess about.
func Validate(p *domain.StudentProfile) error {
	if p == nil {
		return fmt.Errorf("%w: body is required", ErrInvalidProfile)
	}
	if p.StudentID == uuid.Nil {
		return fmt.Errorf("%w: student_id is required", ErrInvalidProfile)
	}
	if p.GPA != nil && (*p.GPA < 0 || *p.GPA > 4 || math.IsNaN(*p.GPA)) {
		return fmt.Errorf("%w: gpa must be between 0 and 4", ErrInvalidProfile)
	}
	if p.SATScore != nil && (*p.SATScore < 400 || *p.SATScore > 1600) {
		return fmt.Errorf("%w: sat_score must be between 400 and 1600", ErrInvalidProfile)
	}
	if p.ACTScore != nil && (*p.ACTScore < 1 || *p.ACTScore > 36) {
		return fmt.Errorf("%w: act_score must be between 1 and 36", ErrInvalidProfile)
	}
	if p.FamilyIncome != nil && (*p.FamilyIncome < 0 || math.IsNaN(*p.FamilyIncome) || *p.FamilyIncome > finaid.MaxMoneyAmount) {
		return fmt.Errorf("%w: family_income must be between 0 and %.0f", ErrInvalidProfile, finaid.MaxMoneyAmount)
	}
	if p.Dependents != nil && *p.Dependents < 0 {
		return fmt.Errorf("%w: dependents cannot be negative", ErrInvalidProfile)
	}
	return nil
}
