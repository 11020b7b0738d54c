package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/penpalsapp/backend/internal/search"
)

// AdminHandler exposes operational endpoints
type AdminHandler struct {
	interestIndex *search.InterestIndex
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(interestIndex *search.InterestIndex) *AdminHandler {
	return &AdminHandler{interestIndex: interestIndex}
}

// RegisterAdminRoutes registers operational routes
func (h *AdminHandler) RegisterAdminRoutes(g *echo.Group) {
	g.POST("/admin/reindex", h.Reindex)
}

// Reindex wipes the interest index and rebuilds it from the relational store
func (h *AdminHandler) Reindex(c echo.Context) error {
	indexed, err := h.interestIndex.Rebuild(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Index rebuilt", "indexed": indexed})
}
