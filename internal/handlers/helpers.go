package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/penpalsapp/backend/internal/models"
	"github.com/penpalsapp/backend/internal/search"
	"github.com/penpalsapp/backend/internal/services"
)

// getAccountIDFromContext reads the account ID set by the JWT middleware.
// Returns 0 when unauthenticated.
func getAccountIDFromContext(c echo.Context) uint {
	claims, ok := c.Get("account").(*models.JwtCustomClaims)
	if !ok || claims == nil {
		return 0
	}
	return claims.AccountID
}

// engineHTTPError maps engine and search errors onto HTTP status codes.
func engineHTTPError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, services.ErrSelfConnection),
		errors.Is(err, services.ErrSelfRequest),
		errors.Is(err, search.ErrEmptyQuery):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrClassroomNotFound),
		errors.Is(err, services.ErrRequestNotFound),
		errors.Is(err, services.ErrNotConnected):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case errors.Is(err, services.ErrAlreadyConnected),
		errors.Is(err, services.ErrAlreadyFriends),
		errors.Is(err, services.ErrDuplicatePending),
		errors.Is(err, services.ErrAlreadyResolved):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, search.ErrIndexUnavailable):
		return echo.NewHTTPError(http.StatusServiceUnavailable, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
