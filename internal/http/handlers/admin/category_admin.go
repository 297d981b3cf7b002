package admin

import (
	"errors"
	"strconv"

	"github.com/blogicum-next/internal/http/handlers/shared"
	"github.com/blogicum-next/internal/http/response"
	"github.com/blogicum-next/internal/service"

	"github.com/gin-gonic/gin"
)

// CategoryMutationRequest carries category create/update payloads.
type CategoryMutationRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Slug        string `json:"slug" binding:"required"`
	IsPublished *bool  `json:"is_published"`
}

func (r CategoryMutationRequest) toInput() service.CategoryMutationInput {
	return service.CategoryMutationInput{
		Title:       r.Title,
		Description: r.Description,
		Slug:        r.Slug,
		IsPublished: r.IsPublished,
	}
}

// GetCategories lists all categories for the panel.
func (h *Handler) GetCategories(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)
	search := c.Query("search")

	categories, total, err := h.CategoryService.ListAdmin(search, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "list categories failed", err)
		return
	}
	response.SuccessWithPage(c, categories, shared.BuildPagination(page, pageSize, total))
}

// CreateCategory creates a category.
func (h *Handler) CreateCategory(c *gin.Context) {
	var req CategoryMutationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	category, err := h.CategoryService.Create(req.toInput())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSlugExists):
			respondError(c, response.CodeBadRequest, "slug already taken", nil)
		case errors.Is(err, service.ErrValidation):
			respondError(c, response.CodeBadRequest, "invalid input", nil)
		default:
			respondError(c, response.CodeInternal, "create category failed", err)
		}
		return
	}
	response.Success(c, category)
}

// UpdateCategory edits a category.
func (h *Handler) UpdateCategory(c *gin.Context) {
	id, ok := shared.ParseUintParam(c, "id")
	if !ok {
		return
	}

	var req CategoryMutationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	category, err := h.CategoryService.Update(id, req.toInput())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "category not found", nil)
		case errors.Is(err, service.ErrSlugExists):
			respondError(c, response.CodeBadRequest, "slug already taken", nil)
		case errors.Is(err, service.ErrValidation):
			respondError(c, response.CodeBadRequest, "invalid input", nil)
		default:
			respondError(c, response.CodeInternal, "update category failed", err)
		}
		return
	}
	response.Success(c, category)
}

// DeleteCategory removes a category. Posts referencing it survive
// with the reference cleared.
func (h *Handler) DeleteCategory(c *gin.Context) {
	id, ok := shared.ParseUintParam(c, "id")
	if !ok {
		return
	}

	if err := h.CategoryService.Delete(id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "category not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "delete category failed", err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
