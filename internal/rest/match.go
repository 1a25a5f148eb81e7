package rest

import (
	"context"
	"net/http"
	"time"

	"uniFinder/domain"
	"uniFinder/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/labstack/echo/v4"
)

type MatchService interface {
	MatchUniversities(ctx context.Context, criteria domain.MatchCriteria, topN int) ([]domain.UniversityMatch, error)
}

type MatchHandler struct {
	matchService MatchService
	defaultTopN  int
	timeout      time.Duration
}

func NewMatchHandler(matchService MatchService, defaultTopN int) *MatchHandler {
	return &MatchHandler{
		matchService: matchService,
		defaultTopN:  defaultTopN,
		timeout:      10 * time.Second,
	}
}

// MatchRequest is the criteria object plus an optional topN. Malformed leaves
// are ignored rather than rejected.
type MatchRequest struct {
	domain.MatchCriteria
	TopN domain.Optional[int] `json:"topN"`
}

func (h *MatchHandler) Match(c echo.Context) error {
	var req MatchRequest
	if err := c.Bind(&req); err != nil {
		logger.Warn("failed to bind match request", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	topN, ok := req.TopN.Get()
	if !ok {
		topN = h.defaultTopN
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	matches, err := h.matchService.MatchUniversities(ctx, req.MatchCriteria, topN)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(matches))
}
