package repository

import (
	"errors"

	"github.com/blogicum-next/internal/models"

	"gorm.io/gorm"
)

// LocationRepository is the location data access interface.
type LocationRepository interface {
	List(filter LocationListFilter) ([]models.Location, int64, error)
	GetByID(id uint) (*models.Location, error)
	Create(location *models.Location) error
	Update(location *models.Location) error
	Delete(id uint) error
}

// GormLocationRepository is the GORM implementation.
type GormLocationRepository struct {
	db *gorm.DB
}

// NewLocationRepository creates the location repository.
func NewLocationRepository(db *gorm.DB) *GormLocationRepository {
	return &GormLocationRepository{db: db}
}

// List returns locations ordered by name.
func (r *GormLocationRepository) List(filter LocationListFilter) ([]models.Location, int64, error) {
	query := r.db.Model(&models.Location{})

	if filter.OnlyPublished {
		query = query.Where("is_published = ?", true)
	}
	if filter.Search != "" {
		query = query.Where("name LIKE ?", "%"+filter.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var locations []models.Location
	if err := query.Order("name ASC, id ASC").Find(&locations).Error; err != nil {
		return nil, 0, err
	}
	return locations, total, nil
}

// GetByID returns a location by ID.
func (r *GormLocationRepository) GetByID(id uint) (*models.Location, error) {
	var location models.Location
	if err := r.db.First(&location, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &location, nil
}

// Create inserts a location.
func (r *GormLocationRepository) Create(location *models.Location) error {
	return r.db.Create(location).Error
}

// Update saves a location.
func (r *GormLocationRepository) Update(location *models.Location) error {
	return r.db.Save(location).Error
}

// Delete removes a location and detaches its posts in one transaction.
func (r *GormLocationRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Post{}).Where("location_id = ?", id).Update("location_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Location{}, id).Error
	})
}
