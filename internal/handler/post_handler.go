package handler

import (
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"inkpress/internal/model"
	"inkpress/internal/service"
)

// PostHandler handles post lifecycle endpoints.
type PostHandler struct {
	svc service.PostService
}

// NewPostHandler creates a new post handler.
func NewPostHandler(svc service.PostService) *PostHandler {
	return &PostHandler{svc: svc}
}

// formThumbnail returns the optional thumbnail file from a multipart form.
func formThumbnail(c echo.Context) *multipart.FileHeader {
	file, err := c.FormFile("thumbnail")
	if err != nil {
		return nil
	}
	return file
}

// CreatePost godoc
// @Summary Create a post
// @Tags posts
// @Accept multipart/form-data
// @Produce json
// @Param title formData string true "Title"
// @Param category formData string true "Category"
// @Param description formData string true "Description (HTML)"
// @Param thumbnail formData file true "Thumbnail image, max 2MB"
// @Success 201 {object} model.Post
// @Failure 401 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /posts [post]
func (h *PostHandler) CreatePost(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	post, err := h.svc.CreatePost(
		c.Request().Context(),
		claims.UserID,
		c.FormValue("title"),
		model.Category(c.FormValue("category")),
		c.FormValue("description"),
		formThumbnail(c),
	)
	if err != nil {
		return renderError(err)
	}
	return c.JSON(http.StatusCreated, post)
}

// GetPost godoc
// @Summary Get a post by id
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} model.Post
// @Failure 404 {object} errors.ErrorResponse
// @Router /posts/{id} [get]
func (h *PostHandler) GetPost(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	post, err := h.svc.GetPost(c.Request().Context(), uint(id))
	if err != nil {
		return renderError(err)
	}
	return c.JSON(http.StatusOK, post)
}

// ListPosts godoc
// @Summary List posts, newest first
// @Tags posts
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {array} model.Post
// @Router /posts [get]
func (h *PostHandler) ListPosts(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	posts, err := h.svc.ListPosts(c.Request().Context(), page, limit)
	if err != nil {
		return renderError(err)
	}
	return c.JSON(http.StatusOK, posts)
}

// ListByCategory godoc
// @Summary List posts in a category, newest first
// @Tags posts
// @Produce json
// @Param category path string true "Category"
// @Success 200 {array} model.Post
// @Failure 422 {object} errors.ErrorResponse
// @Router /posts/categories/{category} [get]
func (h *PostHandler) ListByCategory(c echo.Context) error {
	posts, err := h.svc.ListByCategory(c.Request().Context(), model.Category(c.Param("category")))
	if err != nil {
		return renderError(err)
	}
	return c.JSON(http.StatusOK, posts)
}

// ListByCreator godoc
// @Summary List a user's posts, newest first
// @Tags posts
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {array} model.Post
// @Router /posts/users/{id} [get]
func (h *PostHandler) ListByCreator(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	posts, err := h.svc.ListByCreator(c.Request().Context(), uint(id))
	if err != nil {
		return renderError(err)
	}
	return c.JSON(http.StatusOK, posts)
}

// UpdatePost godoc
// @Summary Update a post (creator only)
// @Tags posts
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Post ID"
// @Param title formData string true "Title"
// @Param category formData string true "Category"
// @Param description formData string true "Description (HTML)"
// @Param thumbnail formData file false "Replacement thumbnail, max 2MB"
// @Success 200 {object} model.Post
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /posts/{id} [patch]
func (h *PostHandler) UpdatePost(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	post, err := h.svc.UpdatePost(
		c.Request().Context(),
		claims.UserID,
		uint(id),
		c.FormValue("title"),
		model.Category(c.FormValue("category")),
		c.FormValue("description"),
		formThumbnail(c),
	)
	if err != nil {
		return renderError(err)
	}
	return c.JSON(http.StatusOK, post)
}

// DeletePost godoc
// @Summary Delete a post (creator only)
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} map[string]string
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /posts/{id} [delete]
func (h *PostHandler) DeletePost(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if err := h.svc.DeletePost(c.Request().Context(), claims.UserID, uint(id)); err != nil {
		return renderError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "post " + strconv.Itoa(id) + " deleted",
	})
}
