package service

import (
	"time"

	"github.com/blogicum-next/internal/models"
)

// IsPostVisible reports whether a viewer may see a post. The rule is
// the in-memory twin of the repository's visibleScope; the two must
// agree on every post.
//
// A post is visible when it is published, its publication date has
// passed and its category (when set) is published. Authors always see
// their own posts.
func IsPostVisible(post *models.Post, viewerID uint, now time.Time) bool {
	if post == nil {
		return false
	}
	if viewerID > 0 && post.AuthorID == viewerID {
		return true
	}
	if !post.IsPublished {
		return false
	}
	if post.PubDate.After(now) {
		return false
	}
	if post.CategoryID != nil {
		if post.Category == nil || !post.Category.IsPublished {
			return false
		}
	}
	return true
}
