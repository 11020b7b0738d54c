package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/penpalsapp/backend/internal/matching"
	"github.com/penpalsapp/backend/internal/models"
	"github.com/penpalsapp/backend/internal/repositories"
	"github.com/penpalsapp/backend/internal/search"
)

// maxListLimit bounds the classroom listing page size.
const maxListLimit = 100

// ClassroomHandler handles HTTP requests related to classroom profiles
type ClassroomHandler struct {
	classroomRepository repositories.ClassroomRepository
	interestIndex       *search.InterestIndex
	matchFinder         *search.MatchFinder
}

// NewClassroomHandler creates a new ClassroomHandler
func NewClassroomHandler(classroomRepo repositories.ClassroomRepository, interestIndex *search.InterestIndex, matchFinder *search.MatchFinder) *ClassroomHandler {
	return &ClassroomHandler{
		classroomRepository: classroomRepo,
		interestIndex:       interestIndex,
		matchFinder:         matchFinder,
	}
}

// RegisterClassroomRoutes registers classroom-related routes
func (h *ClassroomHandler) RegisterClassroomRoutes(g *echo.Group) {
	g.POST("/classrooms", h.CreateClassroom)
	g.GET("/classrooms", h.GetClassrooms)
	g.GET("/classrooms/:id", h.GetClassroom)
	g.PUT("/classrooms/:id", h.UpdateClassroom)
	g.DELETE("/classrooms/:id", h.DeleteClassroom)
	g.POST("/classrooms/search", h.SearchClassrooms)
}

// SearchClassroomsRequest defines the request body for interest search
type SearchClassroomsRequest struct {
	Interests []string `json:"interests" validate:"required,min=1"`
	Limit     int      `json:"limit,omitempty" validate:"omitempty,min=1"`
}

// CreateClassroom creates the classroom profile for the authenticated account
func (h *ClassroomHandler) CreateClassroom(c echo.Context) error {
	accountID := getAccountIDFromContext(c)

	var req models.CreateClassroomRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	classroom := &models.Classroom{
		AccountID:    accountID,
		Name:         req.Name,
		Location:     req.Location,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		ClassSize:    req.ClassSize,
		Timezone:     req.Timezone,
		Availability: req.Availability,
		Interests:    matching.SanitizeInterests(req.Interests),
	}

	if err := h.classroomRepository.CreateClassroom(classroom); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	// Index after commit; index failures never roll the classroom back.
	h.interestIndex.Sync(c.Request().Context(), classroom)

	return c.JSON(http.StatusCreated, classroom)
}

// GetClassrooms lists classrooms, newest first
func (h *ClassroomHandler) GetClassrooms(c echo.Context) error {
	limit := 20
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid limit")
		}
		limit = parsed
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	classrooms, err := h.classroomRepository.GetClassrooms(limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, classrooms)
}

// GetClassroom returns a single classroom by ID
func (h *ClassroomHandler) GetClassroom(c echo.Context) error {
	id, httpErr := parseIDParam(c)
	if httpErr != nil {
		return httpErr
	}

	classroom, err := h.classroomRepository.GetClassroomByID(id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Classroom not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, classroom)
}

// UpdateClassroom updates the caller's classroom. The index entry is re-synced
// only when the interest set changed.
func (h *ClassroomHandler) UpdateClassroom(c echo.Context) error {
	accountID := getAccountIDFromContext(c)

	id, httpErr := parseIDParam(c)
	if httpErr != nil {
		return httpErr
	}

	var req models.UpdateClassroomRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	classroom, err := h.classroomRepository.GetClassroomByID(id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Classroom not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if classroom.AccountID != accountID {
		return echo.NewHTTPError(http.StatusForbidden, "Not your classroom")
	}

	if req.Name != nil {
		classroom.Name = *req.Name
	}
	if req.Location != nil {
		classroom.Location = *req.Location
	}
	if req.Latitude != nil {
		classroom.Latitude = *req.Latitude
	}
	if req.Longitude != nil {
		classroom.Longitude = *req.Longitude
	}
	if req.ClassSize != nil {
		classroom.ClassSize = req.ClassSize
	}
	if req.Timezone != nil {
		classroom.Timezone = *req.Timezone
	}
	if req.Availability != nil {
		classroom.Availability = *req.Availability
	}

	interestsChanged := false
	if req.Interests != nil {
		classroom.Interests = matching.SanitizeInterests(*req.Interests)
		interestsChanged = true
	}

	if err := h.classroomRepository.UpdateClassroom(classroom); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if interestsChanged {
		h.interestIndex.Sync(c.Request().Context(), classroom)
	}

	return c.JSON(http.StatusOK, classroom)
}

// DeleteClassroom removes the caller's classroom, its relation edges, friend
// requests and index entry
func (h *ClassroomHandler) DeleteClassroom(c echo.Context) error {
	accountID := getAccountIDFromContext(c)

	id, httpErr := parseIDParam(c)
	if httpErr != nil {
		return httpErr
	}

	classroom, err := h.classroomRepository.GetClassroomByID(id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Classroom not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if classroom.AccountID != accountID {
		return echo.NewHTTPError(http.StatusForbidden, "Not your classroom")
	}

	if err := h.classroomRepository.DeleteClassroom(id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h.interestIndex.Remove(c.Request().Context(), id)

	return c.JSON(http.StatusOK, echo.Map{"message": "Classroom deleted"})
}

// SearchClassrooms finds classrooms by interest similarity
func (h *ClassroomHandler) SearchClassrooms(c echo.Context) error {
	var req SearchClassroomsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	matches, err := h.matchFinder.Search(c.Request().Context(), req.Interests, req.Limit)
	if err != nil {
		return engineHTTPError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"matches": matches, "count": len(matches)})
}

// parseIDParam parses the :id path parameter.
func parseIDParam(c echo.Context) (uint, *echo.HTTPError) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid ID")
	}
	return uint(id), nil
}
