package service

import (
	"errors"
	"testing"
	"time"

	"github.com/blogicum-next/internal/repository"
)

func TestCommentLifecycleAndOwnership(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewCommentService(repository.NewCommentRepository(db), repository.NewPostRepository(db))
	author := createServiceTestUser(t, db, "cmt-author")
	commenter := createServiceTestUser(t, db, "cmt-commenter")
	intruder := createServiceTestUser(t, db, "cmt-intruder")

	now := time.Now().UTC()
	post := createServiceTestPost(t, db, author.ID, nil, now.Add(-time.Hour), true)

	if _, err := svc.Add(post.ID, commenter.ID, "   "); !errors.Is(err, ErrValidation) {
		t.Fatalf("blank comment want ErrValidation got %v", err)
	}

	comment, err := svc.Add(post.ID, commenter.ID, "first")
	if err != nil {
		t.Fatalf("add comment failed: %v", err)
	}
	if comment.Author == nil || comment.Author.Username != "cmt-commenter" {
		t.Fatalf("comment author should be loaded")
	}

	if _, err := svc.Update(post.ID, comment.ID, intruder.ID, "hack"); !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("intruder edit want ErrPermissionDenied got %v", err)
	}
	if err := svc.Delete(post.ID, comment.ID, intruder.ID); !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("intruder delete want ErrPermissionDenied got %v", err)
	}

	updated, err := svc.Update(post.ID, comment.ID, commenter.ID, "edited")
	if err != nil {
		t.Fatalf("edit failed: %v", err)
	}
	if updated.Text != "edited" {
		t.Fatalf("text want edited got %q", updated.Text)
	}

	if err := svc.Delete(post.ID, comment.ID, commenter.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := svc.Delete(post.ID, comment.ID, commenter.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("double delete want ErrNotFound got %v", err)
	}
}

func TestCommentPostMismatchIsNotFound(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewCommentService(repository.NewCommentRepository(db), repository.NewPostRepository(db))
	author := createServiceTestUser(t, db, "mismatch-author")

	now := time.Now().UTC()
	postA := createServiceTestPost(t, db, author.ID, nil, now.Add(-time.Hour), true)
	postB := createServiceTestPost(t, db, author.ID, nil, now.Add(-time.Hour), true)

	comment, err := svc.Add(postA.ID, author.ID, "on A")
	if err != nil {
		t.Fatalf("add comment failed: %v", err)
	}

	if _, err := svc.Update(postB.ID, comment.ID, author.ID, "moved?"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("wrong post want ErrNotFound got %v", err)
	}
}

func TestCommentOnHiddenPostIsNotFound(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewCommentService(repository.NewCommentRepository(db), repository.NewPostRepository(db))
	author := createServiceTestUser(t, db, "hidden-author")
	stranger := createServiceTestUser(t, db, "hidden-stranger")

	now := time.Now().UTC()
	draft := createServiceTestPost(t, db, author.ID, nil, now.Add(-time.Hour), false)

	if _, err := svc.Add(draft.ID, stranger.ID, "hello?"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("comment on hidden post want ErrNotFound got %v", err)
	}

	// the author may still comment on their own draft
	if _, err := svc.Add(draft.ID, author.ID, "note to self"); err != nil {
		t.Fatalf("author comment failed: %v", err)
	}
}
