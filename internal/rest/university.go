package rest

import (
	"context"
	"net/http"
	"time"

	"uniFinder/domain"
	"uniFinder/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"gorm.io/datatypes"
)

type UniversityService interface {
	GetAllUniversities(ctx context.Context) ([]domain.University, error)
	GetUniversityByID(ctx context.Context, id uuid.UUID) (*domain.University, error)
	CreateUniversity(ctx context.Context, university *domain.University) (*domain.University, error)
	UpdateUniversity(ctx context.Context, university *domain.University) (*domain.University, error)
	DeleteUniversity(ctx context.Context, id uuid.UUID) error
}

type UniversityHandler struct {
	universityService UniversityService
	validator         *validator.Validate
	timeout           time.Duration
}

func NewUniversityHandler(universityService UniversityService) *UniversityHandler {
	return &UniversityHandler{
		universityService: universityService,
		validator:         validator.New(),
		timeout:           10 * time.Second,
	}
}

// UniversityRequest is used for both create and update; update replaces every field.
type UniversityRequest struct {
	Name                      string   `json:"name" validate:"required"`
	Country                   *string  `json:"country"`
	Type                      *string  `json:"type" validate:"omitempty,oneof=public private"`
	TuitionInternational      *float64 `json:"tuition_international" validate:"omitempty,gte=0"`
	TuitionOutOfState         *float64 `json:"tuition_out_of_state" validate:"omitempty,gte=0"`
	TuitionInState            *float64 `json:"tuition_in_state" validate:"omitempty,gte=0"`
	AvgTuitionPerYear         *float64 `json:"avg_tuition_per_year" validate:"omitempty,gte=0"`
	CostOfLivingEst           *float64 `json:"cost_of_living_est" validate:"omitempty,gte=0"`
	AvgFinancialAidPackage    *float64 `json:"avg_financial_aid_package" validate:"omitempty,gte=0"`
	PercentageReceivingAid    *float64 `json:"percentage_receiving_aid" validate:"omitempty,gte=0,lte=100"`
	NeedBlindAdmission        *bool    `json:"need_blind_admission"`
	ScholarshipsInternational *bool    `json:"scholarships_international"`
	MinGPA                    *float64 `json:"min_gpa" validate:"omitempty,gte=0,lte=4"`
	RequiredTests             []string `json:"required_tests"`
	PostGradVisaStrength      *float64 `json:"post_grad_visa_strength" validate:"omitempty,gte=0"`
	PostStudyWorkVisaMonths   *float64 `json:"post_study_work_visa_months" validate:"omitempty,gte=0"`
	RankingGlobal             *int     `json:"ranking_global" validate:"omitempty,gt=0"`
	RankingWorld              *int     `json:"ranking_world" validate:"omitempty,gt=0"`
}

func (r UniversityRequest) toDomain(id uuid.UUID) *domain.University {
	return &domain.University{
		ID:                        id,
		Name:                      r.Name,
		Country:                   r.Country,
		Type:                      r.Type,
		TuitionInternational:      r.TuitionInternational,
		TuitionOutOfState:         r.TuitionOutOfState,
		TuitionInState:            r.TuitionInState,
		AvgTuitionPerYear:         r.AvgTuitionPerYear,
		CostOfLivingEst:           r.CostOfLivingEst,
		AvgFinancialAidPackage:    r.AvgFinancialAidPackage,
		PercentageReceivingAid:    r.PercentageReceivingAid,
		NeedBlindAdmission:        r.NeedBlindAdmission,
		ScholarshipsInternational: r.ScholarshipsInternational,
		MinGPA:                    r.MinGPA,
		RequiredTests:             datatypes.JSONSlice[string](r.RequiredTests),
		PostGradVisaStrength:      r.PostGradVisaStrength,
		PostStudyWorkVisaMonths:   r.PostStudyWorkVisaMonths,
		RankingGlobal:             r.RankingGlobal,
		RankingWorld:              r.RankingWorld,
	}
}

func (h *UniversityHandler) GetAllUniversities(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	universities, err := h.universityService.GetAllUniversities(ctx)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(universities))
}

func (h *UniversityHandler) GetUniversityByID(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid university id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	university, err := h.universityService.GetUniversityByID(ctx, id)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(university))
}

func (h *UniversityHandler) CreateUniversity(c echo.Context) error {
	var req UniversityRequest
	if err := c.Bind(&req); err != nil {
		logger.Warn("failed to bind university request", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	created, err := h.universityService.CreateUniversity(ctx, req.toDomain(uuid.Nil))
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(created))
}

func (h *UniversityHandler) UpdateUniversity(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid university id"})
	}

	var req UniversityRequest
	if err := c.Bind(&req); err != nil {
		logger.Warn("failed to bind university request", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	updated, err := h.universityService.UpdateUniversity(ctx, req.toDomain(id))
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(updated))
}

func (h *UniversityHandler) DeleteUniversity(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid university id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.universityService.DeleteUniversity(ctx, id); err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK("University deleted successfully"))
}
