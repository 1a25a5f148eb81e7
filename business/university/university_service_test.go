package university

import (
	"context"
	"errors"
	"testing"

	"uniFinder/domain"
	"uniFinder/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type fakeRepo struct {
	rows      map[uuid.UUID]domain.University
	createErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{rows: make(map[uuid.UUID]domain.University)}
}

func (f *fakeRepo) Create(_ context.Context, u *domain.University) error {
	if f.createErr != nil {
		return f.createErr
	}
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	f.rows[u.ID] = *u
	return nil
}

func (f *fakeRepo) FindByID(_ context.Context, id uuid.UUID) (domain.University, error) {
	u, ok := f.rows[id]
	if !ok {
		return domain.University{}, domain.ErrUniversityNotFound
	}
	return u, nil
}

func (f *fakeRepo) FindAll(context.Context) ([]domain.University, error) {
	out := make([]domain.University, 0, len(f.rows))
	for _, u := range f.rows {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeRepo) Update(_ context.Context, u *domain.University) error {
	if _, ok := f.rows[u.ID]; !ok {
		return domain.ErrUniversityNotFound
	}
	f.rows[u.ID] = *u
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.rows[id]; !ok {
		return domain.ErrUniversityNotFound
	}
	delete(f.rows, id)
	return nil
}

func f64(v float64) *float64 { return &v }

func TestUniversityService_Lifecycle(t *testing.T) {
	logger.Use(zaptest.NewLogger(t))
	svc := NewUniversityService(newFakeRepo())
	ctx := context.Background()

	created, err := svc.CreateUniversity(ctx, &domain.University{Name: "Alpha", AvgTuitionPerYear: f64(30000)})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, created.ID)

	got, err := svc.GetUniversityByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alpha", got.Name)

	updated, err := svc.UpdateUniversity(ctx, &domain.University{ID: created.ID, Name: "Alpha College"})
	require.NoError(t, err)
	assert.Equal(t, "Alpha College", updated.Name)
	assert.Nil(t, updated.AvgTuitionPerYear, "update replaces every field")

	all, err := svc.GetAllUniversities(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, svc.DeleteUniversity(ctx, created.ID))

	_, err = svc.GetUniversityByID(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrUniversityNotFound)
}

func TestUniversityService_Validation(t *testing.T) {
	logger.Use(zaptest.NewLogger(t))
	svc := NewUniversityService(newFakeRepo())
	ctx := context.Background()

	tests := []struct {
		name string
		u    *domain.University
	}{
		{"nil", nil},
		{"missing name", &domain.University{}},
		{"negative tuition", &domain.University{Name: "X", TuitionInState: f64(-1)}},
		{"negative aid package", &domain.University{Name: "X", AvgFinancialAidPackage: f64(-500)}},
		{"tuition above ceiling", &domain.University{Name: "X", TuitionOutOfState: f64(1e30)}},
		{"percentage over 100", &domain.University{Name: "X", PercentageReceivingAid: f64(140)}},
		{"gpa over 4", &domain.University{Name: "X", MinGPA: f64(4.5)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateUniversity(ctx, tt.u)
			assert.ErrorIs(t, err, ErrInvalidUniversity)
		})
	}

	_, err := svc.GetUniversityByID(ctx, uuid.Nil)
	assert.ErrorIs(t, err, ErrInvalidUniversity)

	_, err = svc.UpdateUniversity(ctx, &domain.University{Name: "X"})
	assert.ErrorIs(t, err, ErrInvalidUniversity)

	assert.ErrorIs(t, svc.DeleteUniversity(ctx, uuid.Nil), ErrInvalidUniversity)
}

func TestUniversityService_NotFound(t *testing.T) {
	logger.Use(zaptest.NewLogger(t))
	svc := NewUniversityService(newFakeRepo())
	ctx := context.Background()

	_, err := svc.UpdateUniversity(ctx, &domain.University{ID: uuid.New(), Name: "Ghost"})
	assert.ErrorIs(t, err, domain.ErrUniversityNotFound)

	assert.ErrorIs(t, svc.DeleteUniversity(ctx, uuid.New()), domain.ErrUniversityNotFound)
}

func TestUniversityService_CreateFailure(t *testing.T) {
	logger.Use(zaptest.NewLogger(t))
	repo := newFakeRepo()
	repo.createErr = errors.New("duplicate key")
	svc := NewUniversityService(repo)

	_, err := svc.CreateUniversity(context.Background(), &domain.University{Name: "Alpha"})
	assert.ErrorIs(t, err, repo.createErr)
	assert.NotErrorIs(t, err, ErrInvalidUniversity)
}
