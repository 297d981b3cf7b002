package service

import (
	"strings"
	"time"

	"github.com/blogicum-next/internal/models"
	"github.com/blogicum-next/internal/repository"
)

// CommentService owns comment listing and author mutations.
type CommentService struct {
	comments repository.CommentRepository
	posts    repository.PostRepository
}

// NewCommentService creates the comment service.
func NewCommentService(comments repository.CommentRepository, posts repository.PostRepository) *CommentService {
	return &CommentService{comments: comments, posts: posts}
}

// ListByPost returns a post's comments, oldest first. The post must
// be visible to the viewer.
func (s *CommentService) ListByPost(postID uint, viewerID uint) ([]models.Comment, int64, error) {
	if err := s.requireVisiblePost(postID, viewerID); err != nil {
		return nil, 0, err
	}
	return s.comments.ListByPost(repository.CommentListFilter{PostID: postID})
}

// Add attaches a comment to a visible post.
func (s *CommentService) Add(postID uint, authorID uint, text string) (*models.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrValidation
	}
	if err := s.requireVisiblePost(postID, authorID); err != nil {
		return nil, err
	}

	comment := models.Comment{
		Text:     text,
		AuthorID: authorID,
		PostID:   postID,
	}
	if err := s.comments.Create(&comment); err != nil {
		return nil, err
	}
	return s.comments.GetByID(comment.ID)
}

// Update rewrites a comment's text. Only the comment author may edit,
// and the comment must belong to the addressed post.
func (s *CommentService) Update(postID, commentID, actorID uint, text string) (*models.Comment, error) {
	comment, err := s.getOwned(postID, commentID, actorID)
	if err != nil {
		return nil, err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrValidation
	}

	comment.Text = text
	if err := s.comments.Update(comment); err != nil {
		return nil, err
	}
	return s.comments.GetByID(comment.ID)
}

// Delete removes a comment. Author only.
func (s *CommentService) Delete(postID, commentID, actorID uint) error {
	if _, err := s.getOwned(postID, commentID, actorID); err != nil {
		return err
	}
	return s.comments.Delete(commentID)
}

func (s *CommentService) getOwned(postID, commentID, actorID uint) (*models.Comment, error) {
	comment, err := s.comments.GetByID(commentID)
	if err != nil {
		return nil, err
	}
	// A comment addressed under the wrong post does not exist.
	if comment == nil || comment.PostID != postID {
		return nil, ErrNotFound
	}
	if comment.AuthorID != actorID {
		return nil, ErrPermissionDenied
	}
	return comment, nil
}

func (s *CommentService) requireVisiblePost(postID uint, viewerID uint) error {
	post, err := s.posts.GetByID(postID, true)
	if err != nil {
		return err
	}
	if post == nil || !IsPostVisible(post, viewerID, time.Now().UTC()) {
		return ErrNotFound
	}
	return nil
}
