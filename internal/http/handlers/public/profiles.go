package public

import (
	"errors"
	"net/http"

	"github.com/blogicum-next/internal/http/handlers/shared"
	"github.com/blogicum-next/internal/http/response"
	"github.com/blogicum-next/internal/models"
	"github.com/blogicum-next/internal/service"

	"github.com/gin-gonic/gin"
)

// profileView is the public shape of an account.
type profileView struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func newProfileView(user *models.User) profileView {
	return profileView{
		ID:        user.ID,
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}
}

// GetProfile serves an author page. The owner sees every post they
// wrote, visitors only the visible ones.
func (h *Handler) GetProfile(c *gin.Context) {
	username := c.Param("username")
	page := shared.ParsePage(c)
	viewerID := shared.OptionalUserID(c)

	user, posts, total, resolvedPage, err := h.PostService.ListByAuthor(username, viewerID, page)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "profile not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "get profile failed", err)
		return
	}

	c.JSON(http.StatusOK, response.PageResponse{
		StatusCode: 0,
		Msg:        "success",
		Data: gin.H{
			"profile": newProfileView(user),
			"posts":   posts,
		},
		Pagination: shared.BuildPagination(resolvedPage, h.PostService.PageSize(), total),
	})
}
