package middleware

import (
	"errors"
	"net/http"
	"strings"

	"uniFinder/pkg/logger"
	jsonres "uniFinder/pkg/response"
	"uniFinder/pkg/utils"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Context keys set by AuthMiddleware and read by handlers.
const (
	ContextUserID = "user_id"
	ContextRole   = "role"
)

const roleAdmin = "admin"

var (
	errMissingHeader = errors.New("missing authorization header")
	errBadScheme     = errors.New("invalid authorization format")
)

func reject(c echo.Context, status int, code, message string) error {
	return c.JSON(status, jsonres.Error(code, message, nil))
}

// bearerToken extracts the token from an "Authorization: Bearer <token>" header.
func bearerToken(header string) (string, error) {
	if header == "" {
		return "", errMissingHeader
	}
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" || strings.Contains(token, " ") {
		return "", errBadScheme
	}
	return token, nil
}

func isAdmin(c echo.Context) bool {
	role, _ := c.Get(ContextRole).(string)
	return strings.EqualFold(role, roleAdmin)
}

// AuthMiddleware authenticates the student or admin behind a request. The
// token must carry an expiry and a student UUID as its subject.
func AuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if err != nil {
				return reject(c, http.StatusUnauthorized, "UNAUTHORIZED", err.Error())
			}

			claims, err := utils.ParseJWT(token)
			if err != nil {
				logger.Debug("rejected token", "error", err)
				return reject(c, http.StatusUnauthorized, "UNAUTHORIZED", "invalid or expired token")
			}

			if exp, err := claims.GetExpirationTime(); err != nil || exp == nil {
				return reject(c, http.StatusForbidden, "FORBIDDEN", "token has no expiry")
			}

			studentID, err := uuid.Parse(claims.UserID)
			if err != nil {
				logger.Warn("token subject is not a student id", "user_id", claims.UserID)
				return reject(c, http.StatusForbidden, "FORBIDDEN", "token subject is not a student id")
			}

			c.Set(ContextUserID, studentID.String())
			c.Set(ContextRole, claims.Role)

			return next(c)
		}
	}
}

// AdminOnly guards catalog mutations.
func AdminOnly() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !isAdmin(c) {
				return reject(c, http.StatusForbidden, "FORBIDDEN", "admin access required")
			}
			return next(c)
		}
	}
}

// SelfOrAdmin lets a student reach only the profile under their own :id.
func SelfOrAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			caller, ok := c.Get(ContextUserID).(string)
			if !ok {
				return reject(c, http.StatusUnauthorized, "UNAUTHORIZED", "student not authenticated")
			}
			if isAdmin(c) {
				return next(c)
			}

			requested, err := uuid.Parse(c.Param("id"))
			if err != nil {
				return reject(c, http.StatusBadRequest, "BAD_REQUEST", "invalid student id")
			}
			if requested.String() != caller {
				return reject(c, http.StatusForbidden, "FORBIDDEN", "students can only access their own profile")
			}

			return next(c)
		}
	}
}
