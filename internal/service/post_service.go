package service

import (
	"strings"
	"time"

	"github.com/blogicum-next/internal/models"
	"github.com/blogicum-next/internal/repository"
)

// PostService owns post listing, detail and author mutations.
type PostService struct {
	posts      repository.PostRepository
	categories repository.CategoryRepository
	locations  repository.LocationRepository
	users      repository.UserRepository
	pageSize   int
}

// NewPostService creates the post service.
func NewPostService(
	posts repository.PostRepository,
	categories repository.CategoryRepository,
	locations repository.LocationRepository,
	users repository.UserRepository,
	pageSize int,
) *PostService {
	if pageSize <= 0 {
		pageSize = 10
	}
	return &PostService{
		posts:      posts,
		categories: categories,
		locations:  locations,
		users:      users,
		pageSize:   pageSize,
	}
}

// PageSize returns the fixed listing page size.
func (s *PostService) PageSize() int {
	return s.pageSize
}

// PostMutationInput carries create/update fields.
type PostMutationInput struct {
	Title       string
	Text        string
	PubDate     time.Time
	CategoryID  *uint
	LocationID  *uint
	IsPublished *bool
}

// lastPage computes the final page number, never below 1.
func lastPage(total int64, pageSize int) int {
	if pageSize <= 0 {
		return 1
	}
	last := int((total + int64(pageSize) - 1) / int64(pageSize))
	if last < 1 {
		last = 1
	}
	return last
}

// listClamped runs a listing query, pulling out-of-range pages back
// into [1, lastPage]. Returns the rows, total and the resolved page.
func (s *PostService) listClamped(filter repository.PostListFilter) ([]models.Post, int64, int, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	filter.PageSize = s.pageSize
	filter.WithRelations = true

	posts, total, err := s.posts.List(filter)
	if err != nil {
		return nil, 0, 0, err
	}

	if last := lastPage(total, s.pageSize); filter.Page > last {
		filter.Page = last
		posts, total, err = s.posts.List(filter)
		if err != nil {
			return nil, 0, 0, err
		}
	}
	return posts, total, filter.Page, nil
}

// ListFeed returns the home page feed of visible posts.
func (s *PostService) ListFeed(viewerID uint, page int) ([]models.Post, int64, int, error) {
	return s.listClamped(repository.PostListFilter{
		Page:        page,
		ViewerID:    viewerID,
		VisibleOnly: true,
	})
}

// ListByCategory returns one category page. Unknown or unpublished
// categories yield ErrNotFound.
func (s *PostService) ListByCategory(slug string, viewerID uint, page int) (*models.Category, []models.Post, int64, int, error) {
	category, err := s.categories.GetBySlug(slug, true)
	if err != nil {
		return nil, nil, 0, 0, err
	}
	if category == nil {
		return nil, nil, 0, 0, ErrNotFound
	}

	posts, total, resolvedPage, err := s.listClamped(repository.PostListFilter{
		Page:        page,
		ViewerID:    viewerID,
		CategoryID:  category.ID,
		VisibleOnly: true,
	})
	if err != nil {
		return nil, nil, 0, 0, err
	}
	return category, posts, total, resolvedPage, nil
}

// ListByAuthor returns a profile page. Owners see all of their posts
// including drafts and scheduled ones; everyone else gets the visible
// subset.
func (s *PostService) ListByAuthor(username string, viewerID uint, page int) (*models.User, []models.Post, int64, int, error) {
	user, err := s.users.GetByUsername(strings.TrimSpace(username))
	if err != nil {
		return nil, nil, 0, 0, err
	}
	if user == nil {
		return nil, nil, 0, 0, ErrNotFound
	}

	filter := repository.PostListFilter{
		Page:     page,
		AuthorID: user.ID,
	}
	if viewerID != user.ID {
		filter.ViewerID = viewerID
		filter.VisibleOnly = true
	}

	posts, total, resolvedPage, err := s.listClamped(filter)
	if err != nil {
		return nil, nil, 0, 0, err
	}
	return user, posts, total, resolvedPage, nil
}

// GetDetail returns one post when the viewer may see it. Hidden posts
// answer ErrNotFound rather than revealing their existence.
func (s *PostService) GetDetail(id uint, viewerID uint) (*models.Post, error) {
	post, err := s.posts.GetByID(id, true)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrNotFound
	}
	if !IsPostVisible(post, viewerID, time.Now().UTC()) {
		return nil, ErrNotFound
	}
	return post, nil
}

func (s *PostService) validateMutation(input *PostMutationInput) error {
	input.Title = strings.TrimSpace(input.Title)
	input.Text = strings.TrimSpace(input.Text)
	if input.Title == "" || input.Text == "" {
		return ErrValidation
	}
	if input.PubDate.IsZero() {
		input.PubDate = time.Now().UTC()
	}

	if input.CategoryID != nil {
		category, err := s.categories.GetByID(*input.CategoryID)
		if err != nil {
			return err
		}
		if category == nil {
			return ErrValidation
		}
	}
	if input.LocationID != nil {
		location, err := s.locations.GetByID(*input.LocationID)
		if err != nil {
			return err
		}
		if location == nil {
			return ErrValidation
		}
	}
	return nil
}

// Create inserts a post owned by the author.
func (s *PostService) Create(authorID uint, input PostMutationInput) (*models.Post, error) {
	if err := s.validateMutation(&input); err != nil {
		return nil, err
	}

	isPublished := true
	if input.IsPublished != nil {
		isPublished = *input.IsPublished
	}

	post := models.Post{
		Title:       input.Title,
		Text:        input.Text,
		PubDate:     input.PubDate,
		IsPublished: isPublished,
		AuthorID:    authorID,
		CategoryID:  input.CategoryID,
		LocationID:  input.LocationID,
	}
	if err := s.posts.Create(&post); err != nil {
		return nil, err
	}
	return s.posts.GetByID(post.ID, true)
}

// Update rewrites a post. Only the author may edit; everyone else
// gets ErrPermissionDenied so the handler can redirect to the detail
// page.
func (s *PostService) Update(id uint, actorID uint, input PostMutationInput) (*models.Post, error) {
	post, err := s.posts.GetByID(id, false)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrNotFound
	}
	if post.AuthorID != actorID {
		return nil, ErrPermissionDenied
	}

	if err := s.validateMutation(&input); err != nil {
		return nil, err
	}

	post.Title = input.Title
	post.Text = input.Text
	post.PubDate = input.PubDate
	post.CategoryID = input.CategoryID
	post.LocationID = input.LocationID
	if input.IsPublished != nil {
		post.IsPublished = *input.IsPublished
	}

	if err := s.posts.Update(post); err != nil {
		return nil, err
	}
	return s.posts.GetByID(post.ID, true)
}

// Delete removes a post and its comments. Author only.
func (s *PostService) Delete(id uint, actorID uint) error {
	post, err := s.posts.GetByID(id, false)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrNotFound
	}
	if post.AuthorID != actorID {
		return ErrPermissionDenied
	}
	return s.posts.Delete(id)
}
