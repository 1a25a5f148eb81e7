package university

import (
	"context"
	"errors"
	"fmt"

	"uniFinder/business/finaid"
	"uniFinder/domain"
	"uniFinder/pkg/logger"

	"github.com/google/uuid"
)

var ErrInvalidUniversity = errors.New("invalid university")

// UniversityRepository contract interface
type UniversityRepository interface {
	Create(ctx context.Context, university *domain.University) error
	FindByID(ctx context.Context, id uuid.UUID) (domain.University, error)
	FindAll(ctx context.Context) ([]domain.University, error)
	Update(ctx context.Context, university *domain.University) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type universityService struct {
	universityRepo UniversityRepository
}

func NewUniversityService(universityRepo UniversityRepository) *universityService {
	return &universityService{
		universityRepo: universityRepo,
	}
}

func (s *universityService) GetAllUniversities(ctx context.Context) ([]domain.University, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when get all universities")
		return nil, fmt.Errorf("context error: %w", err)
	}

	universities, err := s.universityRepo.FindAll(ctx)
	if err != nil {
		logger.Error("failed to find all universities", "error", err)
		return nil, err
	}

	return universities, nil
}

func (s *universityService) GetUniversityByID(ctx context.Context, id uuid.UUID) (*domain.University, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("%w: id is required", ErrInvalidUniversity)
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	university, err := s.universityRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("failed to find university by id", "id", id, "error", err)
		return nil, err
	}

	return &university, nil
}

func (s *universityService) CreateUniversity(ctx context.Context, university *domain.University) (*domain.University, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when create university")
		return nil, fmt.Errorf("context error: %w", err)
	}

	if err := validateUniversity(university); err != nil {
		logger.Warn("invalid university data", "error", err)
		return nil, err
	}

	if err := s.universityRepo.Create(ctx, university); err != nil {
		logger.Error("failed to create university", "error", err)
		return nil, fmt.Errorf("failed to create university: %w", err)
	}

	logger.Info("university created", "id", university.ID, "name", university.Name)

	return university, nil
}

func (s *universityService) UpdateUniversity(ctx context.Context, university *domain.University) (*domain.University, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when updating university")
		return nil, fmt.Errorf("context error: %w", err)
	}

	if university.ID == uuid.Nil {
		return nil, fmt.Errorf("%w: id is required", ErrInvalidUniversity)
	}

	if err := validateUniversity(university); err != nil {
		logger.Warn("invalid university data", "id", university.ID, "error", err)
		return nil, err
	}

	if err := s.universityRepo.Update(ctx, university); err != nil {
		logger.Error("failed to update university", "id", university.ID, "error", err)
		if errors.Is(err, domain.ErrUniversityNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update university: %w", err)
	}

	updated, err := s.universityRepo.FindByID(ctx, university.ID)
	if err != nil {
		logger.Error("failed to fetch updated university", "id", university.ID, "error", err)
		return nil, fmt.Errorf("failed to fetch updated university: %w", err)
	}

	return &updated, nil
}

func (s *universityService) DeleteUniversity(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if id == uuid.Nil {
		return fmt.Errorf("%w: id is required", ErrInvalidUniversity)
	}

	if err := s.universityRepo.Delete(ctx, id); err != nil {
		logger.Error("failed to delete university", "id", id, "error", err)
		return err
	}

	logger.Info("university deleted", "id", id)

	return nil
}

func validateUniversity(u *domain.University) error {
	if u == nil {
		return fmt.Errorf("%w: body is required", ErrInvalidUniversity)
	}
	if u.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidUniversity)
	}

	if err := finaid.ValidateAmounts(u); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidUniversity, err)
	}

	if p := u.PercentageReceivingAid; p != nil && (*p < 0 || *p > 100) {
		return fmt.Errorf("%w: percentage_receiving_aid must be between 0 and 100", ErrInvalidUniversity)
	}
	if g := u.MinGPA; g != nil && (*g < 0 || *g > 4) {
		return fmt.Errorf("%w: min_gpa must be between 0 and 4", ErrInvalidUniversity)
	}

	return nil
}
