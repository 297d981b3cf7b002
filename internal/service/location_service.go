package service

import (
	"strings"

	"github.com/blogicum-next/internal/models"
	"github.com/blogicum-next/internal/repository"
)

// LocationService owns location listing and panel CRUD.
type LocationService struct {
	repo repository.LocationRepository
}

// NewLocationService creates the location service.
func NewLocationService(repo repository.LocationRepository) *LocationService {
	return &LocationService{repo: repo}
}

// LocationMutationInput carries create/update fields.
type LocationMutationInput struct {
	Name        string
	IsPublished *bool
}

// ListPublic returns published locations.
func (s *LocationService) ListPublic() ([]models.Location, error) {
	locations, _, err := s.repo.List(repository.LocationListFilter{OnlyPublished: true})
	return locations, err
}

// ListAdmin returns all locations for the panel.
func (s *LocationService) ListAdmin(search string, page, pageSize int) ([]models.Location, int64, error) {
	return s.repo.List(repository.LocationListFilter{
		Page:     page,
		PageSize: pageSize,
		Search:   strings.TrimSpace(search),
	})
}

// Create inserts a location.
func (s *LocationService) Create(input LocationMutationInput) (*models.Location, error) {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return nil, ErrValidation
	}

	isPublished := true
	if input.IsPublished != nil {
		isPublished = *input.IsPublished
	}

	location := models.Location{
		Name:        input.Name,
		IsPublished: isPublished,
	}
	if err := s.repo.Create(&location); err != nil {
		return nil, err
	}
	return &location, nil
}

// Update rewrites a location.
func (s *LocationService) Update(id uint, input LocationMutationInput) (*models.Location, error) {
	location, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, ErrNotFound
	}

	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return nil, ErrValidation
	}

	location.Name = input.Name
	if input.IsPublished != nil {
		location.IsPublished = *input.IsPublished
	}

	if err := s.repo.Update(location); err != nil {
		return nil, err
	}
	return location, nil
}

// Delete removes a location. Its posts survive with the reference
// cleared.
func (s *LocationService) Delete(id uint) error {
	location, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if location == nil {
		return ErrNotFound
	}
	return s.repo.Delete(id)
}
