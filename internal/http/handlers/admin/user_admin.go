package admin

import (
	"strconv"

	"github.com/blogicum-next/internal/http/handlers/shared"
	"github.com/blogicum-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetUsers lists reader accounts for the panel.
func (h *Handler) GetUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)
	keyword := c.Query("keyword")

	users, total, err := h.UserAuthService.ListUsers(keyword, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "list users failed", err)
		return
	}
	response.SuccessWithPage(c, users, shared.BuildPagination(page, pageSize, total))
}
