package rest

import (
	"context"
	"net/http"
	"strings"
	"time"

	"uniFinder/business/finaid"
	"uniFinder/domain"
	"uniFinder/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type PredictService interface {
	PredictForStudent(ctx context.Context, in finaid.PredictInput) (*domain.Prediction, *domain.StudentProfile, error)
	PredictBatchForStudent(ctx context.Context, studentID uuid.UUID, universityIDs []uuid.UUID) ([]domain.BatchPrediction, error)
}

type PredictHandler struct {
	predictService PredictService
	validator      *validator.Validate
	timeout        time.Duration
}

func NewPredictHandler(predictService PredictService) *PredictHandler {
	return &PredictHandler{
		predictService: predictService,
		validator:      validator.New(),
		timeout:        10 * time.Second,
	}
}

type PredictRequest struct {
	StudentID      string             `json:"student_id" validate:"required,uuid"`
	UniversityID   string             `json:"university_id" validate:"required_without=UniversityData"`
	UniversityData *domain.University `json:"university_data"`
}

type BatchPredictRequest struct {
	StudentID     string   `json:"student_id" validate:"required,uuid"`
	UniversityIDs []string `json:"university_ids" validate:"required,min=1,max=20,dive,uuid"`
}

// ProfileSummary echoes the inputs a prediction used without the raw income.
type ProfileSummary struct {
	StudentID            uuid.UUID `json:"student_id"`
	GPA                  *float64  `json:"gpa"`
	SATScore             *int      `json:"sat_score"`
	ACTScore             *int      `json:"act_score"`
	Dependents           *int      `json:"dependents"`
	InternationalStudent *bool     `json:"international_student"`
	InState              *bool     `json:"in_state"`
	FirstGeneration      *bool     `json:"first_generation"`
	SpecialTalents       int       `json:"special_talents_count"`
	HasFamilyIncome      bool      `json:"has_family_income"`
	IncomeBracket        string    `json:"income_bracket"`
}

type PredictResponse struct {
	Prediction *domain.Prediction `json:"prediction"`
	Profile    ProfileSummary     `json:"profile"`
}

func incomeBracket(income *float64) string {
	if income == nil {
		return "unknown"
	}
	switch v := *income; {
	case v < 30000:
		return "under_30k"
	case v < 75000:
		return "30k_75k"
	case v < 150000:
		return "75k_150k"
	default:
		return "150k_plus"
	}
}

func summarize(p *domain.StudentProfile) ProfileSummary {
	return ProfileSummary{
		StudentID:            p.StudentID,
		GPA:                  p.GPA,
		SATScore:             p.SATScore,
		ACTScore:             p.ACTScore,
		Dependents:           p.Dependents,
		InternationalStudent: p.InternationalStudent,
		InState:              p.InState,
		FirstGeneration:      p.FirstGeneration,
		SpecialTalents:       len(p.SpecialTalents),
		HasFamilyIncome:      p.FamilyIncome != nil,
		IncomeBracket:        incomeBracket(p.FamilyIncome),
	}
}

func (h *PredictHandler) Predict(c echo.Context) error {
	var req PredictRequest
	if err := c.Bind(&req); err != nil {
		logger.Warn("failed to bind predict request", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if req.UniversityData != nil {
		if err := finaid.ValidateAmounts(req.UniversityData); err != nil {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
	}

	in := finaid.PredictInput{
		StudentID:      uuid.MustParse(req.StudentID),
		UniversityData: req.UniversityData,
	}
	if req.UniversityID != "" {
		id, err := uuid.Parse(req.UniversityID)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid university_id"})
		}
		in.UniversityID = id
	}

	if !canActFor(c, in.StudentID) {
		return c.JSON(http.StatusForbidden, ResponseError{Message: "you can only predict for your own profile"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	prediction, profile, err := h.predictService.PredictForStudent(ctx, in)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(PredictResponse{
		Prediction: prediction,
		Profile:    summarize(profile),
	}))
}

func (h *PredictHandler) PredictBatch(c echo.Context) error {
	var req BatchPredictRequest
	if err := c.Bind(&req); err != nil {
		logger.Warn("failed to bind batch predict request", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	studentID := uuid.MustParse(req.StudentID)
	if !canActFor(c, studentID) {
		return c.JSON(http.StatusForbidden, ResponseError{Message: "you can only predict for your own profile"})
	}

	ids := make([]uuid.UUID, 0, len(req.UniversityIDs))
	for _, raw := range req.UniversityIDs {
		ids = append(ids, uuid.MustParse(raw))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	predictions, err := h.predictService.PredictBatchForStudent(ctx, studentID, ids)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(predictions))
}

// canActFor reports whether the caller may act on studentID. Requests that
// did not pass through the auth middleware carry no user and are allowed.
func canActFor(c echo.Context, studentID uuid.UUID) bool {
	userID, ok := c.Get("user_id").(string)
	if !ok {
		return true
	}
	if role, _ := c.Get("role").(string); isAdminRole(role) {
		return true
	}
	return userID == studentID.String()
}

func isAdminRole(role string) bool {
	return strings.EqualFold(role, "admin")
}
