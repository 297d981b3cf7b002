package repository

import (
	"errors"
	"time"

	"github.com/blogicum-next/internal/models"

	"gorm.io/gorm"
)

// commentCountSelect annotates each row with the number of comments.
const commentCountSelect = "posts.*, (SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id) AS comment_count"

// PostRepository is the post data access interface.
type PostRepository interface {
	List(filter PostListFilter) ([]models.Post, int64, error)
	GetByID(id uint, withRelations bool) (*models.Post, error)
	Create(post *models.Post) error
	Update(post *models.Post) error
	Delete(id uint) error
}

// GormPostRepository is the GORM implementation.
type GormPostRepository struct {
	db *gorm.DB
}

// NewPostRepository creates the post repository.
func NewPostRepository(db *gorm.DB) *GormPostRepository {
	return &GormPostRepository{db: db}
}

// visibleScope restricts a query to posts the viewer may see: fully
// published ones, or the viewer's own regardless of state. Fully
// published means is_published, pub_date in the past and the category
// (when set) itself published.
func (r *GormPostRepository) visibleScope(query *gorm.DB, viewerID uint, now time.Time) *gorm.DB {
	publishedCategories := r.db.Model(&models.Category{}).Select("id").Where("is_published = ?", true)
	visible := r.db.
		Where("posts.is_published = ?", true).
		Where("posts.pub_date <= ?", now).
		Where("posts.category_id IS NULL OR posts.category_id IN (?)", publishedCategories)

	if viewerID > 0 {
		return query.Where(r.db.Where("posts.author_id = ?", viewerID).Or(visible))
	}
	return query.Where(visible)
}

// List returns one page of posts plus the total match count. Rows are
// annotated with their comment count.
func (r *GormPostRepository) List(filter PostListFilter) ([]models.Post, int64, error) {
	query := r.db.Model(&models.Post{})

	if filter.AuthorID > 0 {
		query = query.Where("posts.author_id = ?", filter.AuthorID)
	}
	if filter.CategoryID > 0 {
		query = query.Where("posts.category_id = ?", filter.CategoryID)
	}
	if filter.CategorySlug != "" {
		query = query.Where("posts.category_id IN (?)",
			r.db.Model(&models.Category{}).Select("id").Where("slug = ?", filter.CategorySlug))
	}
	if filter.VisibleOnly {
		query = r.visibleScope(query, filter.ViewerID, time.Now().UTC())
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	orderBy := filter.OrderBy
	if orderBy == "" {
		orderBy = "posts.pub_date DESC, posts.id DESC"
	}
	query = query.Select(commentCountSelect).Order(orderBy)

	if filter.WithRelations {
		query = query.Preload("Author").Preload("Category").Preload("Location")
	}

	var posts []models.Post
	if err := query.Find(&posts).Error; err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// GetByID returns a post by ID, annotated with its comment count.
func (r *GormPostRepository) GetByID(id uint, withRelations bool) (*models.Post, error) {
	query := r.db.Model(&models.Post{}).Select(commentCountSelect)
	if withRelations {
		query = query.Preload("Author").Preload("Category").Preload("Location")
	}

	var post models.Post
	if err := query.First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

// Create inserts a post.
func (r *GormPostRepository) Create(post *models.Post) error {
	return r.db.Create(post).Error
}

// Update saves a post.
func (r *GormPostRepository) Update(post *models.Post) error {
	return r.db.Save(post).Error
}

// Delete removes a post and its comments in one transaction. The
// explicit comment delete keeps the behavior identical on databases
// that do not enforce foreign key cascades.
func (r *GormPostRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, id).Error
	})
}
