package admin

import (
	"errors"
	"strconv"

	"github.com/blogicum-next/internal/http/handlers/shared"
	"github.com/blogicum-next/internal/http/response"
	"github.com/blogicum-next/internal/service"

	"github.com/gin-gonic/gin"
)

// LocationMutationRequest carries location create/update payloads.
type LocationMutationRequest struct {
	Name        string `json:"name" binding:"required"`
	IsPublished *bool  `json:"is_published"`
}

// GetLocations lists all locations for the panel.
func (h *Handler) GetLocations(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)
	search := c.Query("search")

	locations, total, err := h.LocationService.ListAdmin(search, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "list locations failed", err)
		return
	}
	response.SuccessWithPage(c, locations, shared.BuildPagination(page, pageSize, total))
}

// CreateLocation creates a location.
func (h *Handler) CreateLocation(c *gin.Context) {
	var req LocationMutationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	location, err := h.LocationService.Create(service.LocationMutationInput{
		Name:        req.Name,
		IsPublished: req.IsPublished,
	})
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			respondError(c, response.CodeBadRequest, "invalid input", nil)
			return
		}
		respondError(c, response.CodeInternal, "create location failed", err)
		return
	}
	response.Success(c, location)
}

// UpdateLocation edits a location.
func (h *Handler) UpdateLocation(c *gin.Context) {
	id, ok := shared.ParseUintParam(c, "id")
	if !ok {
		return
	}

	var req LocationMutationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	location, err := h.LocationService.Update(id, service.LocationMutationInput{
		Name:        req.Name,
		IsPublished: req.IsPublished,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "location not found", nil)
		case errors.Is(err, service.ErrValidation):
			respondError(c, response.CodeBadRequest, "invalid input", nil)
		default:
			respondError(c, response.CodeInternal, "update location failed", err)
		}
		return
	}
	response.Success(c, location)
}

// DeleteLocation removes a location. Posts referencing it survive
// with the reference cleared.
func (h *Handler) DeleteLocation(c *gin.Context) {
	id, ok := shared.ParseUintParam(c, "id")
	if !ok {
		return
	}

	if err := h.LocationService.Delete(id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "location not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "delete location failed", err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
