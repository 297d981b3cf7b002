package public

import (
	"errors"

	"github.com/blogicum-next/internal/http/handlers/shared"
	"github.com/blogicum-next/internal/http/response"
	"github.com/blogicum-next/internal/service"

	"github.com/gin-gonic/gin"
)

// CommentRequest carries comment payloads.
type CommentRequest struct {
	Text string `json:"text" binding:"required"`
}

// ListComments serves a post's comments, oldest first.
func (h *Handler) ListComments(c *gin.Context) {
	postID, ok := shared.ParseUintParam(c, "id")
	if !ok {
		return
	}
	viewerID := shared.OptionalUserID(c)

	comments, total, err := h.CommentService.ListByPost(postID, viewerID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "post not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "list comments failed", err)
		return
	}
	response.Success(c, gin.H{
		"comments": comments,
		"total":    total,
	})
}

// AddComment attaches a comment to a visible post.
func (h *Handler) AddComment(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	postID, ok := shared.ParseUintParam(c, "id")
	if !ok {
		return
	}

	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	comment, err := h.CommentService.Add(postID, userID, req.Text)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "post not found", nil)
		case errors.Is(err, service.ErrValidation):
			respondError(c, response.CodeBadRequest, "comment text is required", nil)
		default:
			respondError(c, response.CodeInternal, "add comment failed", err)
		}
		return
	}
	response.Success(c, comment)
}

// UpdateComment edits a comment. Non-owners are redirected to the
// post detail.
func (h *Handler) UpdateComment(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	postID, ok := shared.ParseUintParam(c, "id")
	if !ok {
		return
	}
	commentID, ok := shared.ParseUintParam(c, "comment_id")
	if !ok {
		return
	}

	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	comment, err := h.CommentService.Update(postID, commentID, userID, req.Text)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "comment not found", nil)
		case errors.Is(err, service.ErrPermissionDenied):
			respondOwnershipRedirect(c, postID)
		case errors.Is(err, service.ErrValidation):
			respondError(c, response.CodeBadRequest, "comment text is required", nil)
		default:
			respondError(c, response.CodeInternal, "update comment failed", err)
		}
		return
	}
	response.Success(c, comment)
}

// DeleteComment removes a comment. Author only.
func (h *Handler) DeleteComment(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	postID, ok := shared.ParseUintParam(c, "id")
	if !ok {
		return
	}
	commentID, ok := shared.ParseUintParam(c, "comment_id")
	if !ok {
		return
	}

	if err := h.CommentService.Delete(postID, commentID, userID); err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "comment not found", nil)
		case errors.Is(err, service.ErrPermissionDenied):
			respondOwnershipRedirect(c, postID)
		default:
			respondError(c, response.CodeInternal, "delete comment failed", err)
		}
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
