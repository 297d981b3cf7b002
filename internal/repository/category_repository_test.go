package repository

import (
	"testing"
	"time"

	"github.com/blogicum-next/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupCategoryRepositoryTest(t *testing.T) (*GormCategoryRepository, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Category{}, &models.Post{}, &models.Comment{}); err != nil {
		t.Fatalf("migrate blog tables failed: %v", err)
	}
	return NewCategoryRepository(db), db
}

func TestCategoryGetBySlugOnlyPublished(t *testing.T) {
	repo, db := setupCategoryRepositoryTest(t)
	createTestCategory(t, db, "cat-visible", true)
	createTestCategory(t, db, "cat-invisible", false)

	got, err := repo.GetBySlug("cat-visible", true)
	if err != nil {
		t.Fatalf("get visible failed: %v", err)
	}
	if got == nil {
		t.Fatalf("published category should resolve")
	}

	got, err = repo.GetBySlug("cat-invisible", true)
	if err != nil {
		t.Fatalf("get invisible failed: %v", err)
	}
	if got != nil {
		t.Fatalf("unpublished category should not resolve when onlyPublished")
	}

	got, err = repo.GetBySlug("cat-invisible", false)
	if err != nil {
		t.Fatalf("get invisible unrestricted failed: %v", err)
	}
	if got == nil {
		t.Fatalf("unpublished category should resolve without the filter")
	}
}

func TestCategoryDeleteDetachesPosts(t *testing.T) {
	repo, db := setupCategoryRepositoryTest(t)
	author := createTestUser(t, db, "cat-delete-author")
	category := createTestCategory(t, db, "cat-to-delete", true)

	post := &models.Post{
		Title:       "post",
		Text:        "body",
		PubDate:     time.Now().UTC().Add(-time.Hour),
		IsPublished: true,
		AuthorID:    author.ID,
		CategoryID:  &category.ID,
	}
	if err := db.Create(post).Error; err != nil {
		t.Fatalf("create post failed: %v", err)
	}

	if err := repo.Delete(category.ID); err != nil {
		t.Fatalf("delete category failed: %v", err)
	}

	var reloaded models.Post
	if err := db.First(&reloaded, post.ID).Error; err != nil {
		t.Fatalf("post should survive category delete: %v", err)
	}
	if reloaded.CategoryID != nil {
		t.Fatalf("category reference want nil got %v", *reloaded.CategoryID)
	}
}

func TestCategoryCountBySlugExcludesID(t *testing.T) {
	repo, db := setupCategoryRepositoryTest(t)
	category := createTestCategory(t, db, "cat-unique", true)

	count, err := repo.CountBySlug("cat-unique", nil)
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("count want 1 got %d", count)
	}

	count, err = repo.CountBySlug("cat-unique", &category.ID)
	if err != nil {
		t.Fatalf("count with exclude failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("count want 0 got %d", count)
	}
}
