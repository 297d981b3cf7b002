package service

import (
	"testing"
	"time"

	"github.com/blogicum-next/internal/models"
	"github.com/blogicum-next/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Category{}, &models.Location{}, &models.Post{}, &models.Comment{}); err != nil {
		t.Fatalf("migrate blog tables failed: %v", err)
	}
	return db
}

func createServiceTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{Username: username, Email: username + "@example.com", PasswordHash: "x"}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	return user
}

func createServiceTestCategory(t *testing.T, db *gorm.DB, slug string, published bool) *models.Category {
	t.Helper()
	category := &models.Category{Title: "Category " + slug, Slug: slug, IsPublished: published}
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

func createServiceTestPost(t *testing.T, db *gorm.DB, authorID uint, categoryID *uint, pubDate time.Time, published bool) *models.Post {
	t.Helper()
	post := &models.Post{
		Title:       "post",
		Text:        "body",
		PubDate:     pubDate,
		IsPublished: published,
		AuthorID:    authorID,
		CategoryID:  categoryID,
	}
	if err := db.Create(post).Error; err != nil {
		t.Fatalf("create post failed: %v", err)
	}
	if !published {
		if err := db.Model(post).Update("is_published", false).Error; err != nil {
			t.Fatalf("unpublish post failed: %v", err)
		}
	}
	return post
}

// The SQL scope and the in-memory predicate implement the same rule.
// Any post the query returns must satisfy the predicate and vice
// versa, for both an anonymous viewer and the author.
func TestVisibilityPredicateMatchesQueryScope(t *testing.T) {
	db := setupServiceTestDB(t)
	repo := repository.NewPostRepository(db)
	author := createServiceTestUser(t, db, "vis-author")
	stranger := createServiceTestUser(t, db, "vis-stranger")
	publishedCat := createServiceTestCategory(t, db, "vis-pub", true)
	hiddenCat := createServiceTestCategory(t, db, "vis-hidden", false)

	now := time.Now().UTC()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	// every combination of state, date and category
	for _, published := range []bool{true, false} {
		for _, pubDate := range []time.Time{past, future} {
			for _, categoryID := range []*uint{nil, &publishedCat.ID, &hiddenCat.ID} {
				createServiceTestPost(t, db, author.ID, categoryID, pubDate, published)
			}
		}
	}

	var all []models.Post
	if err := db.Preload("Category").Where("author_id = ?", author.ID).Find(&all).Error; err != nil {
		t.Fatalf("load posts failed: %v", err)
	}
	if len(all) != 12 {
		t.Fatalf("fixture posts want 12 got %d", len(all))
	}

	viewers := []uint{0, stranger.ID, author.ID}
	for _, viewerID := range viewers {
		listed, _, err := repo.List(repository.PostListFilter{
			AuthorID:    author.ID,
			ViewerID:    viewerID,
			VisibleOnly: true,
			Page:        1,
			PageSize:    100,
		})
		if err != nil {
			t.Fatalf("list for viewer %d failed: %v", viewerID, err)
		}
		fromQuery := make(map[uint]bool, len(listed))
		for _, p := range listed {
			fromQuery[p.ID] = true
		}

		for _, post := range all {
			want := IsPostVisible(&post, viewerID, now)
			if got := fromQuery[post.ID]; got != want {
				t.Fatalf("viewer %d post %d: query=%v predicate=%v (published=%v pub_date=%v category=%v)",
					viewerID, post.ID, got, want, post.IsPublished, post.PubDate, post.CategoryID)
			}
		}
	}
}

func TestIsPostVisibleNilAndAuthor(t *testing.T) {
	now := time.Now().UTC()
	if IsPostVisible(nil, 1, now) {
		t.Fatalf("nil post should never be visible")
	}

	draft := &models.Post{AuthorID: 7, IsPublished: false, PubDate: now.Add(-time.Hour)}
	if IsPostVisible(draft, 8, now) {
		t.Fatalf("stranger should not see a draft")
	}
	if !IsPostVisible(draft, 7, now) {
		t.Fatalf("author should see their own draft")
	}
}
