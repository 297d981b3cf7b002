package service

import (
	"errors"
	"testing"
	"time"

	"github.com/blogicum-next/internal/repository"

	"gorm.io/gorm"
)

func newPostServiceForTest(t *testing.T, db *gorm.DB) *PostService {
	t.Helper()
	return NewPostService(
		repository.NewPostRepository(db),
		repository.NewCategoryRepository(db),
		repository.NewLocationRepository(db),
		repository.NewUserRepository(db),
		10,
	)
}

func TestPostServicePageClamping(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newPostServiceForTest(t, db)
	author := createServiceTestUser(t, db, "clamp-author")

	now := time.Now().UTC()
	for i := 0; i < 25; i++ {
		createServiceTestPost(t, db, author.ID, nil, now.Add(-time.Duration(i+1)*time.Minute), true)
	}

	// past the end pulls back to the last page
	_, posts, total, page, err := svc.ListByAuthor("clamp-author", 0, 99)
	if err != nil {
		t.Fatalf("list page 99 failed: %v", err)
	}
	if total != 25 {
		t.Fatalf("total want 25 got %d", total)
	}
	if page != 3 {
		t.Fatalf("page want 3 got %d", page)
	}
	if len(posts) != 5 {
		t.Fatalf("last page rows want 5 got %d", len(posts))
	}

	// below the start clamps to 1
	_, posts, _, page, err = svc.ListByAuthor("clamp-author", 0, 0)
	if err != nil {
		t.Fatalf("list page 0 failed: %v", err)
	}
	if page != 1 {
		t.Fatalf("page want 1 got %d", page)
	}
	if len(posts) != 10 {
		t.Fatalf("first page rows want 10 got %d", len(posts))
	}
}

func TestPostServiceProfileOwnerSeesDrafts(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newPostServiceForTest(t, db)
	author := createServiceTestUser(t, db, "profile-owner")
	stranger := createServiceTestUser(t, db, "profile-stranger")

	now := time.Now().UTC()
	createServiceTestPost(t, db, author.ID, nil, now.Add(-time.Hour), true)
	createServiceTestPost(t, db, author.ID, nil, now.Add(time.Hour), true)
	createServiceTestPost(t, db, author.ID, nil, now.Add(-time.Hour), false)

	_, _, total, _, err := svc.ListByAuthor("profile-owner", author.ID, 1)
	if err != nil {
		t.Fatalf("owner list failed: %v", err)
	}
	if total != 3 {
		t.Fatalf("owner total want 3 got %d", total)
	}

	_, _, total, _, err = svc.ListByAuthor("profile-owner", stranger.ID, 1)
	if err != nil {
		t.Fatalf("stranger list failed: %v", err)
	}
	if total != 1 {
		t.Fatalf("stranger total want 1 got %d", total)
	}

	if _, _, _, _, err := svc.ListByAuthor("missing-user", 0, 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown profile want ErrNotFound got %v", err)
	}
}

func TestPostServiceDetailHidesUnpublished(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newPostServiceForTest(t, db)
	author := createServiceTestUser(t, db, "detail-author")
	stranger := createServiceTestUser(t, db, "detail-stranger")

	now := time.Now().UTC()
	scheduled := createServiceTestPost(t, db, author.ID, nil, now.Add(time.Hour), true)

	if _, err := svc.GetDetail(scheduled.ID, stranger.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("stranger want ErrNotFound got %v", err)
	}
	post, err := svc.GetDetail(scheduled.ID, author.ID)
	if err != nil {
		t.Fatalf("author detail failed: %v", err)
	}
	if post.ID != scheduled.ID {
		t.Fatalf("detail id want %d got %d", scheduled.ID, post.ID)
	}
	if _, err := svc.GetDetail(999999, author.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing post want ErrNotFound got %v", err)
	}
}

func TestPostServiceOwnershipGuard(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newPostServiceForTest(t, db)
	author := createServiceTestUser(t, db, "guard-author")
	intruder := createServiceTestUser(t, db, "guard-intruder")

	now := time.Now().UTC()
	post := createServiceTestPost(t, db, author.ID, nil, now.Add(-time.Hour), true)

	input := PostMutationInput{Title: "edited", Text: "edited body", PubDate: now}
	if _, err := svc.Update(post.ID, intruder.ID, input); !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("intruder update want ErrPermissionDenied got %v", err)
	}
	if err := svc.Delete(post.ID, intruder.ID); !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("intruder delete want ErrPermissionDenied got %v", err)
	}

	updated, err := svc.Update(post.ID, author.ID, input)
	if err != nil {
		t.Fatalf("author update failed: %v", err)
	}
	if updated.Title != "edited" {
		t.Fatalf("title want edited got %q", updated.Title)
	}

	if err := svc.Delete(post.ID, author.ID); err != nil {
		t.Fatalf("author delete failed: %v", err)
	}
	if err := svc.Delete(post.ID, author.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("double delete want ErrNotFound got %v", err)
	}
}

func TestPostServiceCreateValidatesReferences(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newPostServiceForTest(t, db)
	author := createServiceTestUser(t, db, "create-author")
	category := createServiceTestCategory(t, db, "create-cat", true)

	if _, err := svc.Create(author.ID, PostMutationInput{Title: "", Text: "body"}); !errors.Is(err, ErrValidation) {
		t.Fatalf("empty title want ErrValidation got %v", err)
	}

	missing := uint(424242)
	if _, err := svc.Create(author.ID, PostMutationInput{
		Title:      "t",
		Text:       "b",
		CategoryID: &missing,
	}); !errors.Is(err, ErrValidation) {
		t.Fatalf("unknown category want ErrValidation got %v", err)
	}

	post, err := svc.Create(author.ID, PostMutationInput{
		Title:      "t",
		Text:       "b",
		CategoryID: &category.ID,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if post.CategoryID == nil || *post.CategoryID != category.ID {
		t.Fatalf("category not attached")
	}
	if !post.IsPublished {
		t.Fatalf("default should publish")
	}
	if post.PubDate.IsZero() {
		t.Fatalf("pub date should default to now")
	}
}
