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

type ProfileService interface {
	GetProfile(ctx context.Context, studentID uuid.UUID) (*domain.StudentProfile, error)
	UpsertProfile(ctx context.Context, profile *domain.StudentProfile) (*domain.StudentProfile, error)
}

type ProfileHandler struct {
	profileService ProfileService
	validator      *validator.Validate
	timeout        time.Duration
}

func NewProfileHandler(profileService ProfileService) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		validator:      validator.New(),
		timeout:        10 * time.Second,
	}
}

type ProfileRequest struct {
	GPA                  *float64 `json:"gpa" validate:"omitempty,gte=0,lte=4"`
	SATScore             *int     `json:"sat_score" validate:"omitempty,gte=400,lte=1600"`
	ACTScore             *int     `json:"act_score" validate:"omitempty,gte=1,lte=36"`
	FamilyIncome         *float64 `json:"family_income" validate:"omitempty,gte=0"`
	Dependents           *int     `json:"dependents" validate:"omitempty,gte=0"`
	InternationalStudent *bool    `json:"international_student"`
	InState              *bool    `json:"in_state"`
	FirstGeneration      *bool    `json:"first_generation"`
	SpecialTalents       []string `json:"special_talents"`
}

func (h *ProfileHandler) GetProfile(c echo.Context) error {
	studentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid student id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	p, err := h.profileService.GetProfile(ctx, studentID)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(p))
}

func (h *ProfileHandler) UpsertProfile(c echo.Context) error {
	studentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid student id"})
	}

	var req ProfileRequest
	if err := c.Bind(&req); err != nil {
		logger.Warn("failed to bind profile request", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	saved, err := h.profileService.UpsertProfile(ctx, &domain.StudentProfile{
		StudentID:            studentID,
		GPA:                  req.GPA,
		SATScore:             req.SATScore,
		ACTScore:             req.ACTScore,
		FamilyIncome:         req.FamilyIncome,
		Dependents:           req.Dependents,
		InternationalStudent: req.InternationalStudent,
		InState:              req.InState,
		FirstGeneration:      req.FirstGeneration,
		SpecialTalents:       datatypes.JSONSlice[string](req.SpecialTalents),
	})
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(saved))
}
