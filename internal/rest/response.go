package rest

import (
	"errors"
	"net/http"

	"uniFinder/business/finaid"
	"uniFinder/business/profile"
	"uniFinder/business/university"
	"uniFinder/domain"

	"github.com/labstack/echo/v4"
)

// ResponseError represent the response error struct
type ResponseError struct {
	Message string `json:"message"`
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, finaid.ErrInvalidInput),
		errors.Is(err, university.ErrInvalidUniversity),
		errors.Is(err, profile.ErrInvalidProfile):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUniversityNotFound),
		errors.Is(err, domain.ErrProfileNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func errorJSON(c echo.Context, err error) error {
	return c.JSON(statusFor(err), ResponseError{Message: err.Error()})
}
