package public

import (
	"errors"
	"net/http"

	"github.com/blogicum-next/internal/http/handlers/shared"
	"github.com/blogicum-next/internal/http/response"
	"github.com/blogicum-next/internal/service"

	"github.com/gin-gonic/gin"
)

// ListCategories serves published categories.
func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.CategoryService.ListPublic()
	if err != nil {
		respondError(c, response.CodeInternal, "list categories failed", err)
		return
	}
	response.Success(c, categories)
}

// GetCategoryPosts serves one category page with its visible posts.
// Unknown or unpublished categories answer not found.
func (h *Handler) GetCategoryPosts(c *gin.Context) {
	slug := c.Param("slug")
	page := shared.ParsePage(c)
	viewerID := shared.OptionalUserID(c)

	category, posts, total, resolvedPage, err := h.PostService.ListByCategory(slug, viewerID, page)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "category not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "list category posts failed", err)
		return
	}

	c.JSON(http.StatusOK, response.PageResponse{
		StatusCode: 0,
		Msg:        "success",
		Data: gin.H{
			"category": category,
			"posts":    posts,
		},
		Pagination: shared.BuildPagination(resolvedPage, h.PostService.PageSize(), total),
	})
}

// ListLocations serves published locations.
func (h *Handler) ListLocations(c *gin.Context) {
	locations, err := h.LocationService.ListPublic()
	if err != nil {
		respondError(c, response.CodeInternal, "list locations failed", err)
		return
	}
	response.Success(c, locations)
}
