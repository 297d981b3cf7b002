package public

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/blogicum-next/internal/http/handlers/shared"
	"github.com/blogicum-next/internal/http/response"
	"github.com/blogicum-next/internal/service"

	"github.com/gin-gonic/gin"
)

// ListPosts serves the home feed.
func (h *Handler) ListPosts(c *gin.Context) {
	page := shared.ParsePage(c)
	viewerID := shared.OptionalUserID(c)

	posts, total, resolvedPage, err := h.PostService.ListFeed(viewerID, page)
	if err != nil {
		respondError(c, response.CodeInternal, "list posts failed", err)
		return
	}
	response.SuccessWithPage(c, posts, shared.BuildPagination(resolvedPage, h.PostService.PageSize(), total))
}

// GetPost serves one post with its comments.
func (h *Handler) GetPost(c *gin.Context) {
	id, ok := shared.ParseUintParam(c, "id")
	if !ok {
		return
	}
	viewerID := shared.OptionalUserID(c)

	post, err := h.PostService.GetDetail(id, viewerID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "post not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "get post failed", err)
		return
	}

	comments, _, err := h.CommentService.ListByPost(id, viewerID)
	if err != nil {
		respondError(c, response.CodeInternal, "list comments failed", err)
		return
	}

	response.Success(c, gin.H{
		"post":     post,
		"comments": comments,
	})
}

// PostMutationRequest carries post create/update payloads.
type PostMutationRequest struct {
	Title       string     `json:"title" binding:"required"`
	Text        string     `json:"text" binding:"required"`
	PubDate     *time.Time `json:"pub_date"`
	CategoryID  *uint      `json:"category_id"`
	LocationID  *uint      `json:"location_id"`
	IsPublished *bool      `json:"is_published"`
}

func (r PostMutationRequest) toInput() service.PostMutationInput {
	input := service.PostMutationInput{
		Title:       r.Title,
		Text:        r.Text,
		CategoryID:  r.CategoryID,
		LocationID:  r.LocationID,
		IsPublished: r.IsPublished,
	}
	if r.PubDate != nil {
		input.PubDate = *r.PubDate
	}
	return input
}

// postDetailPath builds the Location target used when a non-owner is
// bounced off a mutation.
func postDetailPath(postID uint) string {
	return fmt.Sprintf("/api/v1/posts/%d", postID)
}

// respondOwnershipRedirect answers 303 See Other pointing at the post
// detail, mirroring the page flow where a denied edit lands the
// visitor on the post itself.
func respondOwnershipRedirect(c *gin.Context, postID uint) {
	c.Header("Location", postDetailPath(postID))
	c.JSON(http.StatusSeeOther, response.Response{
		StatusCode: response.CodeForbidden,
		Msg:        "only the author may do that",
		Data:       gin.H{"redirect": postDetailPath(postID)},
	})
}

// CreatePost creates a post owned by the caller.
func (h *Handler) CreatePost(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	var req PostMutationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	post, err := h.PostService.Create(userID, req.toInput())
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			respondError(c, response.CodeBadRequest, "invalid input", nil)
			return
		}
		respondError(c, response.CodeInternal, "create post failed", err)
		return
	}
	response.Success(c, post)
}

// UpdatePost edits a post. Non-owners are redirected to the detail
// page instead of being served an error page.
func (h *Handler) UpdatePost(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	id, ok := shared.ParseUintParam(c, "id")
	if !ok {
		return
	}

	var req PostMutationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	post, err := h.PostService.Update(id, userID, req.toInput())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "post not found", nil)
		case errors.Is(err, service.ErrPermissionDenied):
			respondOwnershipRedirect(c, id)
		case errors.Is(err, service.ErrValidation):
			respondError(c, response.CodeBadRequest, "invalid input", nil)
		default:
			respondError(c, response.CodeInternal, "update post failed", err)
		}
		return
	}
	response.Success(c, post)
}

// DeletePost removes a post and its comments. Author only.
func (h *Handler) DeletePost(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	id, ok := shared.ParseUintParam(c, "id")
	if !ok {
		return
	}

	if err := h.PostService.Delete(id, userID); err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "post not found", nil)
		case errors.Is(err, service.ErrPermissionDenied):
			respondOwnershipRedirect(c, id)
		default:
			respondError(c, response.CodeInternal, "delete post failed", err)
		}
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
