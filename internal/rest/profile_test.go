package rest

import (
	"context"
	"net/http"
	"testing"

	"uniFinder/business/profile"
	"uniFinder/domain"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProfileService struct {
	rows map[uuid.UUID]domain.StudentProfile
}

func (f *fakeProfileService) GetProfile(_ context.Context, id uuid.UUID) (*domain.StudentProfile, error) {
	p, ok := f.rows[id]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	return &p, nil
}

func (f *fakeProfileService) UpsertProfile(_ context.Context, p *domain.StudentProfile) (*domain.StudentProfile, error) {
	if err := profile.Validate(p); err != nil {
		return nil, err
	}
	f.rows[p.StudentID] = *p
	return p, nil
}

func TestProfileHandler(t *testing.T) {
	svc := &fakeProfileService{rows: map[uuid.UUID]domain.StudentProfile{}}
	h := NewProfileHandler(svc)
	e := echo.New()
	e.GET("/students/:id/profile", h.GetProfile)
	e.PUT("/students/:id/profile", h.UpsertProfile)

	id := uuid.New()
	path := "/students/" + id.String() + "/profile"

	rec := doRequest(t, e, http.MethodGet, path, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(t, e, http.MethodPut, path, `{"gpa":3.8,"act_score":31,"family_income":64000,"special_talents":["chess"]}`)
	require.Equal(t, http.StatusOK, rec.Code)

	saved := svc.rows[id]
	assert.Equal(t, 3.8, *saved.GPA)
	assert.Equal(t, 31, *saved.ACTScore)
	assert.Nil(t, saved.SATScore)
	assert.Equal(t, []string{"chess"}, []string(saved.SpecialTalents))

	rec = doRequest(t, e, http.MethodGet, path, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"gpa":3.8`)

	for _, body := range []string{
		`{"gpa":4.2}`,
		`{"sat_score":200}`,
		`{"act_score":40}`,
		`{"family_income":-10}`,
	} {
		rec = doRequest(t, e, http.MethodPut, path, body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}

	rec = doRequest(t, e, http.MethodPut, "/students/not-a-uuid/profile", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
