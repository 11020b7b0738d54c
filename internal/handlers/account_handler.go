package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/penpalsapp/backend/internal/models"
	"github.com/penpalsapp/backend/internal/repositories"
	"github.com/penpalsapp/backend/internal/search"
)

// AccountHandler handles HTTP requests for the authenticated account
type AccountHandler struct {
	accountRepository   repositories.AccountRepository
	classroomRepository repositories.ClassroomRepository
	interestIndex       *search.InterestIndex
}

// NewAccountHandler creates a new AccountHandler
func NewAccountHandler(accountRepo repositories.AccountRepository, classroomRepo repositories.ClassroomRepository, interestIndex *search.InterestIndex) *AccountHandler {
	return &AccountHandler{
		accountRepository:   accountRepo,
		classroomRepository: classroomRepo,
		interestIndex:       interestIndex,
	}
}

// RegisterAccountRoutes registers account-related routes
func (h *AccountHandler) RegisterAccountRoutes(g *echo.Group) {
	g.GET("/account", h.GetAccount)
	g.PUT("/account", h.UpdateAccount)
	g.DELETE("/account", h.DeleteAccount)
}

// GetAccount returns the authenticated account
func (h *AccountHandler) GetAccount(c echo.Context) error {
	accountID := getAccountIDFromContext(c)

	account, err := h.accountRepository.GetAccountByID(accountID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Account not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, account)
}

// UpdateAccount updates the authenticated account
func (h *AccountHandler) UpdateAccount(c echo.Context) error {
	accountID := getAccountIDFromContext(c)

	var req models.UpdateAccountRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	account, err := h.accountRepository.GetAccountByID(accountID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Account not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if req.Organization != nil {
		account.Organization = *req.Organization
	}

	if err := h.accountRepository.UpdateAccount(account); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, account)
}

// DeleteAccount removes the authenticated account, its classrooms and their
// index entries.
func (h *AccountHandler) DeleteAccount(c echo.Context) error {
	accountID := getAccountIDFromContext(c)

	classrooms, err := h.classroomRepository.GetClassroomsByAccountID(accountID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	for _, classroom := range classrooms {
		if err := h.classroomRepository.DeleteClassroom(classroom.ID); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		h.interestIndex.Remove(c.Request().Context(), classroom.ID)
	}

	if err := h.accountRepository.DeleteAccount(accountID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Account deleted"})
}
