package service

import (
	"strings"

	"github.com/blogicum-next/internal/models"
	"github.com/blogicum-next/internal/repository"
)

// CategoryService owns the public category surface and panel CRUD.
type CategoryService struct {
	repo repository.CategoryRepository
}

// NewCategoryService creates the category service.
func NewCategoryService(repo repository.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

// CategoryMutationInput carries create/update fields.
type CategoryMutationInput struct {
	Title       string
	Description string
	Slug        string
	IsPublished *bool
}

// ListPublic returns published categories for the public site.
func (s *CategoryService) ListPublic() ([]models.Category, error) {
	categories, _, err := s.repo.List(repository.CategoryListFilter{OnlyPublished: true})
	return categories, err
}

// GetPublicBySlug returns one published category.
func (s *CategoryService) GetPublicBySlug(slug string) (*models.Category, error) {
	category, err := s.repo.GetBySlug(slug, true)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrNotFound
	}
	return category, nil
}

// ListAdmin returns all categories for the panel.
func (s *CategoryService) ListAdmin(search string, page, pageSize int) ([]models.Category, int64, error) {
	return s.repo.List(repository.CategoryListFilter{
		Page:     page,
		PageSize: pageSize,
		Search:   strings.TrimSpace(search),
	})
}

func (s *CategoryService) validateMutation(input *CategoryMutationInput) error {
	input.Title = strings.TrimSpace(input.Title)
	input.Slug = strings.TrimSpace(input.Slug)
	if input.Title == "" || input.Slug == "" {
		return ErrValidation
	}
	return nil
}

// Create inserts a category, enforcing slug uniqueness.
func (s *CategoryService) Create(input CategoryMutationInput) (*models.Category, error) {
	if err := s.validateMutation(&input); err != nil {
		return nil, err
	}

	count, err := s.repo.CountBySlug(input.Slug, nil)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrSlugExists
	}

	isPublished := true
	if input.IsPublished != nil {
		isPublished = *input.IsPublished
	}

	category := models.Category{
		Title:       input.Title,
		Description: input.Description,
		Slug:        input.Slug,
		IsPublished: isPublished,
	}
	if err := s.repo.Create(&category); err != nil {
		return nil, err
	}
	return &category, nil
}

// Update rewrites a category.
func (s *CategoryService) Update(id uint, input CategoryMutationInput) (*models.Category, error) {
	category, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrNotFound
	}

	if err := s.validateMutation(&input); err != nil {
		return nil, err
	}

	count, err := s.repo.CountBySlug(input.Slug, &id)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrSlugExists
	}

	category.Title = input.Title
	category.Description = input.Description
	category.Slug = input.Slug
	if input.IsPublished != nil {
		category.IsPublished = *input.IsPublished
	}

	if err := s.repo.Update(category); err != nil {
		return nil, err
	}
	return category, nil
}

// Delete removes a category. Its posts survive with the reference
// cleared.
func (s *CategoryService) Delete(id uint) error {
	category, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if category == nil {
		return ErrNotFound
	}
	return s.repo.Delete(id)
}
