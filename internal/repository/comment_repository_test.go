package repository

import (
	"testing"
	"time"

	"github.com/blogicum-next/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupCommentRepositoryTest(t *testing.T) (*GormCommentRepository, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Category{}, &models.Post{}, &models.Comment{}); err != nil {
		t.Fatalf("migrate blog tables failed: %v", err)
	}
	return NewCommentRepository(db), db
}

func TestCommentListByPostOldestFirst(t *testing.T) {
	repo, db := setupCommentRepositoryTest(t)
	author := createTestUser(t, db, "comment-author")

	post := &models.Post{
		Title:       "post",
		Text:        "body",
		PubDate:     time.Now().UTC().Add(-time.Hour),
		IsPublished: true,
		AuthorID:    author.ID,
	}
	if err := db.Create(post).Error; err != nil {
		t.Fatalf("create post failed: %v", err)
	}

	base := time.Now().UTC().Add(-time.Minute)
	var wantOrder []uint
	for i := 0; i < 3; i++ {
		comment := &models.Comment{
			Text:      "c",
			CreatedAt: base.Add(time.Duration(i) * time.Second),
			AuthorID:  author.ID,
			PostID:    post.ID,
		}
		if err := repo.Create(comment); err != nil {
			t.Fatalf("create comment failed: %v", err)
		}
		wantOrder = append(wantOrder, comment.ID)
	}

	comments, total, err := repo.ListByPost(CommentListFilter{PostID: post.ID})
	if err != nil {
		t.Fatalf("list comments failed: %v", err)
	}
	if total != 3 || len(comments) != 3 {
		t.Fatalf("want 3 comments got total=%d rows=%d", total, len(comments))
	}
	for i, comment := range comments {
		if comment.ID != wantOrder[i] {
			t.Fatalf("order at %d want %d got %d", i, wantOrder[i], comment.ID)
		}
	}
	if comments[0].Author == nil || comments[0].Author.Username != "comment-author" {
		t.Fatalf("author should be preloaded")
	}
}
