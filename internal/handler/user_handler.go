package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"inkpress/internal/service"
)

// UserHandler handles user and auth endpoints.
type UserHandler struct {
	svc service.UserService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Name      string `json:"name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required"`
	Password2 string `json:"password2" validate:"required"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse represents a successful login.
type LoginResponse struct {
	Token string `json:"token"`
	ID    uint   `json:"id"`
	Name  string `json:"name"`
}

// EditUserRequest represents a profile edit request.
type EditUserRequest struct {
	Name               string `json:"name" validate:"required"`
	Email              string `json:"email" validate:"required,email"`
	CurrentPassword    string `json:"currentPassword" validate:"required"`
	NewPassword        string `json:"newPassword" validate:"required"`
	NewConfirmPassword string `json:"newConfirmPassword" validate:"required"`
}

// Register godoc
// @Summary Register a new user
// @Tags users
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 201 {object} map[string]string
// @Failure 422 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /users/register [post]
func (h *UserHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	user, err := h.svc.Register(c.Request().Context(), req.Name, req.Email, req.Password, req.Password2)
	if err != nil {
		return renderError(err)
	}

	// Confirmation only; the record carries the password hash internally.
	return c.JSON(http.StatusCreated, map[string]string{
		"message": "user " + user.Email + " registered",
	})
}

// Login godoc
// @Summary Login and receive a bearer token
// @Tags users
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} LoginResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /users/login [post]
func (h *UserHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	token, user, err := h.svc.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return renderError(err)
	}

	return c.JSON(http.StatusOK, LoginResponse{
		Token: token,
		ID:    user.ID,
		Name:  user.Name,
	})
}

// GetUser godoc
// @Summary Get a user profile by id
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} model.User
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	user, err := h.svc.GetUser(c.Request().Context(), uint(id))
	if err != nil {
		return renderError(err)
	}
	return c.JSON(http.StatusOK, user)
}

// ListAuthors godoc
// @Summary List all authors with live post counts
// @Tags users
// @Produce json
// @Success 200 {array} model.Author
// @Router /users [get]
func (h *UserHandler) ListAuthors(c echo.Context) error {
	authors, err := h.svc.ListAuthors(c.Request().Context())
	if err != nil {
		return renderError(err)
	}
	return c.JSON(http.StatusOK, authors)
}

// ChangeAvatar godoc
// @Summary Replace the authenticated user's avatar
// @Tags users
// @Accept multipart/form-data
// @Produce json
// @Param avatar formData file true "Avatar image, max 500KB"
// @Success 200 {object} model.User
// @Failure 401 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /users/change-avatar [post]
func (h *UserHandler) ChangeAvatar(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	avatar, err := c.FormFile("avatar")
	if err != nil {
		avatar = nil // service reports the missing file
	}

	user, err := h.svc.ChangeAvatar(c.Request().Context(), claims.UserID, avatar)
	if err != nil {
		return renderError(err)
	}
	return c.JSON(http.StatusOK, user)
}

// EditUser godoc
// @Summary Edit the authenticated user's profile
// @Tags users
// @Accept json
// @Produce json
// @Param request body EditUserRequest true "Profile changes"
// @Success 200 {object} model.User
// @Failure 401 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /users/edit-user [patch]
func (h *UserHandler) EditUser(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	var req EditUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	user, err := h.svc.EditUser(c.Request().Context(), claims.UserID, req.Name, req.Email, req.CurrentPassword, req.NewPassword, req.NewConfirmPassword)
	if err != nil {
		return renderError(err)
	}
	return c.JSON(http.StatusOK, user)
}
