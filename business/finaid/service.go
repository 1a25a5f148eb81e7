package finaid

import (
	"context"
	"errors"
	"fmt"
	"time"

	"uniFinder/domain"
	"uniFinder/pkg/logger"
	"uniFinder/pkg/metrics"

	"github.com/google/uuid"
)

// MaxBatchSize bounds predict-batch requests.
const MaxBatchSize = 20

var ErrBatchTooLarge = fmt.Errorf("%w: at most %d universities per batch", ErrInvalidInput, MaxBatchSize)

type UniversityRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (domain.University, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.University, error)
}

type ProfileRepository interface {
	FindByStudentID(ctx context.Context, studentID uuid.UUID) (domain.StudentProfile, error)
}

// PredictInput names the university either by id or by inline data.
// Inline data wins when both are set.
type PredictInput struct {
	StudentID      uuid.UUID
	UniversityID   uuid.UUID
	UniversityData *domain.University
}

type Service struct {
	universityRepo UniversityRepository
	profileRepo    ProfileRepository
}

func NewService(universityRepo UniversityRepository, profileRepo ProfileRepository) *Service {
	return &Service{
		universityRepo: universityRepo,
		profileRepo:    profileRepo,
	}
}

// loadProfile returns the stored profile, or an empty one for students who
// have not filled theirs in yet. The confidence score reflects the gap.
func (s *Service) loadProfile(ctx context.Context, studentID uuid.UUID) (*domain.StudentProfile, error) {
	profile, err := s.profileRepo.FindByStudentID(ctx, studentID)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			logger.Info("no financial profile, predicting with defaults", "student_id", studentID)
			return &domain.StudentProfile{StudentID: studentID}, nil
		}
		return nil, fmt.Errorf("failed to load student profile: %w", err)
	}
	return &profile, nil
}

func (s *Service) PredictForStudent(ctx context.Context, in PredictInput) (*domain.Prediction, *domain.StudentProfile, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, fmt.Errorf("context error: %w", err)
	}
	if in.StudentID == uuid.Nil {
		return nil, nil, fmt.Errorf("%w: student_id is required", ErrInvalidInput)
	}

	university := in.UniversityData
	if university == nil {
		if in.UniversityID == uuid.Nil {
			return nil, nil, fmt.Errorf("%w: university_id or university_data is required", ErrInvalidInput)
		}
		found, err := s.universityRepo.FindByID(ctx, in.UniversityID)
		if err != nil {
			logger.Error("failed to load university", "university_id", in.UniversityID, "error", err)
			return nil, nil, err
		}
		university = &found
	}

	profile, err := s.loadProfile(ctx, in.StudentID)
	if err != nil {
		logger.Error("failed to load profile", "student_id", in.StudentID, "error", err)
		return nil, nil, err
	}

	start := time.Now()
	prediction, err := Predict(university, profile)
	metrics.PredictDuration.WithLabelValues("single").Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, nil, err
	}
	metrics.PredictionsTotal.WithLabelValues("single").Inc()

	logger.Debug("prediction computed",
		"student_id", in.StudentID,
		"university_id", university.ID,
		"net_cost", prediction.NetCost,
		"confidence", prediction.ConfidenceScore,
	)

	return prediction, profile, nil
}

// PredictBatchForStudent predicts every requested university, in request
// order. One unknown id fails the whole batch.
func (s *Service) PredictBatchForStudent(ctx context.Context, studentID uuid.UUID, universityIDs []uuid.UUID) ([]domain.BatchPrediction, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if studentID == uuid.Nil {
		return nil, fmt.Errorf("%w: student_id is required", ErrInvalidInput)
	}
	if len(universityIDs) == 0 {
		return nil, fmt.Errorf("%w: university_ids is required", ErrInvalidInput)
	}
	if len(universityIDs) > MaxBatchSize {
		return nil, ErrBatchTooLarge
	}

	rows, err := s.universityRepo.FindByIDs(ctx, universityIDs)
	if err != nil {
		logger.Error("failed to load universities", "count", len(universityIDs), "error", err)
		return nil, err
	}

	byID := make(map[uuid.UUID]*domain.University, len(rows))
	for i := range rows {
		byID[rows[i].ID] = &rows[i]
	}

	ordered := make([]*domain.University, 0, len(universityIDs))
	for _, id := range universityIDs {
		u, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: %s", domain.ErrUniversityNotFound, id)
		}
		ordered = append(ordered, u)
	}

	profile, err := s.loadProfile(ctx, studentID)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	predictions, err := PredictBatch(ordered, profile)
	metrics.PredictDuration.WithLabelValues("batch").Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, err
	}

	metrics.PredictionsTotal.WithLabelValues("batch").Add(float64(len(predictions)))
	metrics.PredictBatchSize.Observe(float64(len(predictions)))

	return predictions, nil
}
