package repository

import (
	"testing"
	"time"

	"github.com/blogicum-next/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupPostRepositoryTest(t *testing.T) (*GormPostRepository, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Category{}, &models.Location{}, &models.Post{}, &models.Comment{}); err != nil {
		t.Fatalf("migrate blog tables failed: %v", err)
	}
	return NewPostRepository(db), db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	return user
}

func createTestCategory(t *testing.T, db *gorm.DB, slug string, published bool) *models.Category {
	t.Helper()
	category := &models.Category{
		Title:       "Category " + slug,
		Description: "test",
		Slug:        slug,
		IsPublished: published,
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	if !published {
		if err := db.Model(category).Update("is_published", false).Error; err != nil {
			t.Fatalf("unpublish category failed: %v", err)
		}
	}
	return category
}

func createTestPost(t *testing.T, repo *GormPostRepository, authorID uint, categoryID *uint, pubDate time.Time, published bool) *models.Post {
	t.Helper()
	post := &models.Post{
		Title:       "post",
		Text:        "body",
		PubDate:     pubDate,
		IsPublished: published,
		AuthorID:    authorID,
		CategoryID:  categoryID,
	}
	if err := repo.Create(post); err != nil {
		t.Fatalf("create post failed: %v", err)
	}
	if !published {
		// default:true tag forces an explicit update for drafts
		if err := repo.db.Model(post).Update("is_published", false).Error; err != nil {
			t.Fatalf("unpublish post failed: %v", err)
		}
	}
	return post
}

func TestPostListVisibleScope(t *testing.T) {
	repo, db := setupPostRepositoryTest(t)
	author := createTestUser(t, db, "scope-author")
	stranger := createTestUser(t, db, "scope-stranger")
	published := createTestCategory(t, db, "scope-pub", true)
	hidden := createTestCategory(t, db, "scope-hidden", false)

	now := time.Now().UTC()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	visible := createTestPost(t, repo, author.ID, &published.ID, past, true)
	noCategory := createTestPost(t, repo, author.ID, nil, past, true)
	scheduled := createTestPost(t, repo, author.ID, &published.ID, future, true)
	draft := createTestPost(t, repo, author.ID, &published.ID, past, false)
	hiddenCat := createTestPost(t, repo, author.ID, &hidden.ID, past, true)

	ids := func(posts []models.Post) map[uint]bool {
		set := make(map[uint]bool, len(posts))
		for _, p := range posts {
			set[p.ID] = true
		}
		return set
	}

	posts, total, err := repo.List(PostListFilter{
		AuthorID:    author.ID,
		VisibleOnly: true,
		ViewerID:    stranger.ID,
		Page:        1,
		PageSize:    100,
	})
	if err != nil {
		t.Fatalf("list visible failed: %v", err)
	}
	if total != 2 {
		t.Fatalf("stranger total want 2 got %d", total)
	}
	got := ids(posts)
	if !got[visible.ID] || !got[noCategory.ID] {
		t.Fatalf("stranger should see published posts, got %v", got)
	}
	if got[scheduled.ID] || got[draft.ID] || got[hiddenCat.ID] {
		t.Fatalf("stranger sees hidden posts: %v", got)
	}

	// Author sees everything of their own.
	posts, total, err = repo.List(PostListFilter{
		AuthorID:    author.ID,
		VisibleOnly: true,
		ViewerID:    author.ID,
		Page:        1,
		PageSize:    100,
	})
	if err != nil {
		t.Fatalf("list own failed: %v", err)
	}
	if total != 5 || len(posts) != 5 {
		t.Fatalf("author total want 5 got %d (%d rows)", total, len(posts))
	}
}

func TestPostListOrderAndCommentCount(t *testing.T) {
	repo, db := setupPostRepositoryTest(t)
	author := createTestUser(t, db, "order-author")

	now := time.Now().UTC()
	older := createTestPost(t, repo, author.ID, nil, now.Add(-2*time.Hour), true)
	newer := createTestPost(t, repo, author.ID, nil, now.Add(-time.Hour), true)

	for i := 0; i < 3; i++ {
		comment := &models.Comment{Text: "hi", AuthorID: author.ID, PostID: older.ID}
		if err := db.Create(comment).Error; err != nil {
			t.Fatalf("create comment failed: %v", err)
		}
	}

	posts, _, err := repo.List(PostListFilter{
		AuthorID:    author.ID,
		VisibleOnly: true,
		Page:        1,
		PageSize:    10,
	})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("rows want 2 got %d", len(posts))
	}
	if posts[0].ID != newer.ID || posts[1].ID != older.ID {
		t.Fatalf("order want [%d %d] got [%d %d]", newer.ID, older.ID, posts[0].ID, posts[1].ID)
	}
	if posts[1].CommentCount != 3 {
		t.Fatalf("comment count want 3 got %d", posts[1].CommentCount)
	}
	if posts[0].CommentCount != 0 {
		t.Fatalf("comment count want 0 got %d", posts[0].CommentCount)
	}
}

func TestPostListPagination(t *testing.T) {
	repo, db := setupPostRepositoryTest(t)
	author := createTestUser(t, db, "page-author")

	now := time.Now().UTC()
	for i := 0; i < 12; i++ {
		createTestPost(t, repo, author.ID, nil, now.Add(-time.Duration(i+1)*time.Minute), true)
	}

	posts, total, err := repo.List(PostListFilter{
		AuthorID: author.ID,
		Page:     2,
		PageSize: 10,
	})
	if err != nil {
		t.Fatalf("list page 2 failed: %v", err)
	}
	if total != 12 {
		t.Fatalf("total want 12 got %d", total)
	}
	if len(posts) != 2 {
		t.Fatalf("page 2 rows want 2 got %d", len(posts))
	}
}

func TestPostDeleteRemovesComments(t *testing.T) {
	repo, db := setupPostRepositoryTest(t)
	author := createTestUser(t, db, "delete-author")
	post := createTestPost(t, repo, author.ID, nil, time.Now().UTC().Add(-time.Hour), true)

	for i := 0; i < 2; i++ {
		comment := &models.Comment{Text: "bye", AuthorID: author.ID, PostID: post.ID}
		if err := db.Create(comment).Error; err != nil {
			t.Fatalf("create comment failed: %v", err)
		}
	}

	if err := repo.Delete(post.ID); err != nil {
		t.Fatalf("delete post failed: %v", err)
	}

	got, err := repo.GetByID(post.ID, false)
	if err != nil {
		t.Fatalf("get deleted post failed: %v", err)
	}
	if got != nil {
		t.Fatalf("post should be gone")
	}

	var count int64
	if err := db.Model(&models.Comment{}).Where("post_id = ?", post.ID).Count(&count).Error; err != nil {
		t.Fatalf("count comments failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("comments want 0 got %d", count)
	}
}
