package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/penpalsapp/backend/internal/models"
	"github.com/penpalsapp/backend/internal/repositories"
	"github.com/penpalsapp/backend/internal/services"
)

// FriendshipHandler handles HTTP requests for connections and friend requests
type FriendshipHandler struct {
	relationGraph       *services.RelationGraphService
	friendRequests      *services.FriendRequestService
	classroomRepository repositories.ClassroomRepository
}

// NewFriendshipHandler creates a new FriendshipHandler
func NewFriendshipHandler(relationGraph *services.RelationGraphService, friendRequests *services.FriendRequestService, classroomRepo repositories.ClassroomRepository) *FriendshipHandler {
	return &FriendshipHandler{
		relationGraph:       relationGraph,
		friendRequests:      friendRequests,
		classroomRepository: classroomRepo,
	}
}

// RegisterFriendshipRoutes registers connection and friend-request routes
func (h *FriendshipHandler) RegisterFriendshipRoutes(g *echo.Group) {
	g.POST("/classrooms/:id/connect", h.Connect)
	g.DELETE("/classrooms/:id/connect", h.Disconnect)
	g.GET("/classrooms/:id/friends", h.GetFriends)
	g.POST("/friends/request", h.SendFriendRequest)
	g.GET("/friends/requests/pending", h.GetPendingFriendRequests)
	g.POST("/friends/request/:id/accept", h.AcceptFriendRequest)
	g.POST("/friends/request/:id/reject", h.RejectFriendRequest)
	g.POST("/friends/request/:id/cancel", h.CancelFriendRequest)
}

// Connect creates a direct friendship between the caller's classroom and the
// target classroom
func (h *FriendshipHandler) Connect(c echo.Context) error {
	toID, httpErr := parseIDParam(c)
	if httpErr != nil {
		return httpErr
	}

	var req models.ConnectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.requireOwnClassroom(c, req.FromClassroomID); err != nil {
		return err
	}

	if err := h.relationGraph.Connect(req.FromClassroomID, toID); err != nil {
		return engineHTTPError(err)
	}

	return c.JSON(http.StatusCreated, echo.Map{"message": "Classrooms connected"})
}

// Disconnect removes the friendship between the caller's classroom and the
// target classroom
func (h *FriendshipHandler) Disconnect(c echo.Context) error {
	toID, httpErr := parseIDParam(c)
	if httpErr != nil {
		return httpErr
	}

	var req models.ConnectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.requireOwnClassroom(c, req.FromClassroomID); err != nil {
		return err
	}

	if err := h.relationGraph.Disconnect(req.FromClassroomID, toID); err != nil {
		return engineHTTPError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Classrooms disconnected"})
}

// GetFriends lists the caller's friends with interest similarity scores
func (h *FriendshipHandler) GetFriends(c echo.Context) error {
	classroomID, httpErr := parseIDParam(c)
	if httpErr != nil {
		return httpErr
	}

	if err := h.requireOwnClassroom(c, classroomID); err != nil {
		return err
	}

	friends, err := h.relationGraph.ListFriends(classroomID)
	if err != nil {
		return engineHTTPError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"friends": friends, "count": len(friends)})
}

// SendFriendRequest sends a friend request from the caller's classroom. When
// a reverse pending request exists the two are resolved into a friendship and
// the response carries status accepted.
func (h *FriendshipHandler) SendFriendRequest(c echo.Context) error {
	var req models.SendFriendRequestBody
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.requireOwnClassroom(c, req.SenderClassroomID); err != nil {
		return err
	}

	request, err := h.friendRequests.Send(c.Request().Context(), req.SenderClassroomID, req.ReceiverClassroomID)
	if err != nil {
		return engineHTTPError(err)
	}

	return c.JSON(http.StatusCreated, request)
}

// GetPendingFriendRequests lists incoming pending requests for a classroom
func (h *FriendshipHandler) GetPendingFriendRequests(c echo.Context) error {
	classroomID, err := strconv.ParseUint(c.QueryParam("classroom_id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid classroom_id")
	}

	if err := h.requireOwnClassroom(c, uint(classroomID)); err != nil {
		return err
	}

	requests, svcErr := h.friendRequests.PendingForClassroom(uint(classroomID))
	if svcErr != nil {
		return engineHTTPError(svcErr)
	}

	return c.JSON(http.StatusOK, requests)
}

// AcceptFriendRequest accepts a pending friend request
func (h *FriendshipHandler) AcceptFriendRequest(c echo.Context) error {
	return h.resolveFriendRequest(c, h.friendRequests.Accept)
}

// RejectFriendRequest rejects a pending friend request
func (h *FriendshipHandler) RejectFriendRequest(c echo.Context) error {
	return h.resolveFriendRequest(c, h.friendRequests.Reject)
}

// CancelFriendRequest cancels a pending friend request the caller sent
func (h *FriendshipHandler) CancelFriendRequest(c echo.Context) error {
	return h.resolveFriendRequest(c, h.friendRequests.Cancel)
}

func (h *FriendshipHandler) resolveFriendRequest(c echo.Context, resolve func(ctx context.Context, requestID, actingClassroomID uint) (*models.FriendRequest, error)) error {
	requestID, httpErr := parseIDParam(c)
	if httpErr != nil {
		return httpErr
	}

	var req models.ResolveFriendRequestBody
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.requireOwnClassroom(c, req.ClassroomID); err != nil {
		return err
	}

	request, err := resolve(c.Request().Context(), requestID, req.ClassroomID)
	if err != nil {
		return engineHTTPError(err)
	}

	return c.JSON(http.StatusOK, request)
}

// requireOwnClassroom verifies the classroom exists and belongs to the
// authenticated account.
func (h *FriendshipHandler) requireOwnClassroom(c echo.Context, classroomID uint) error {
	classroom, err := h.classroomRepository.GetClassroomByID(classroomID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Classroom not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if classroom.AccountID != getAccountIDFromContext(c) {
		return echo.NewHTTPError(http.StatusForbidden, "Not your classroom")
	}
	return nil
}
